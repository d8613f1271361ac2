package logger

import (
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"
)

// Log является глобальным экземпляром логгера для всего приложения.
// До вызова Init пишет в stderr с уровнем info, чтобы тесты и библиотечный код не падали на nil.
var Log = logrus.New()

// envSettings - настройки логгера из окружения.
type envSettings struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"`
}

// Init инициализирует глобальный логгер из переменных окружения LOG_LEVEL и LOG_FORMAT.
// Вызывается один раз при старте приложения в main.go и в TestMain.
func Init() {
	var s envSettings
	if err := env.Parse(&s); err != nil {
		s = envSettings{Level: "info", Format: "text"}
	}
	Configure(s.Level, s.Format)
}

// Configure переключает уровень и формат. Используется после загрузки конфига.
func Configure(level, format string) {
	// 1. Уровень. Некорректное значение -> info.
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	// 2. Форматтер.
	// "json" - для продакшена и сбора логов.
	// "text" - для удобной разработки.
	if strings.ToLower(format) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	// 3. Пишем в стандартный вывод.
	Log.SetOutput(os.Stdout)
}
