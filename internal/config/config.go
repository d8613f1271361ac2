package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"delve/internal/engine"
	"delve/internal/systems"
	"delve/pkg/dungeon"
)

// Config - все настройки процесса. Порядок: defaults() -> TOML-файл -> переменные DELVE_*.
type Config struct {
	Game    GameConfig    `toml:"game" envPrefix:"GAME_"`
	Storage StorageConfig `toml:"storage" envPrefix:"STORAGE_"`
	Server  ServerConfig  `toml:"server" envPrefix:"SERVER_"`
	Logging LoggingConfig `toml:"logging" envPrefix:"LOG_"`
}

type GameConfig struct {
	// Seed - мастер-зерно, 0 - случайное
	Seed int64 `toml:"seed" env:"SEED"`
	// ContentDir - каталог с YAML-таблицами вместо встроенных
	ContentDir string `toml:"content_dir" env:"CONTENT_DIR"`

	MapWidth    int `toml:"map_width" env:"MAP_WIDTH"`
	MapHeight   int `toml:"map_height" env:"MAP_HEIGHT"`
	MaxRooms    int `toml:"max_rooms" env:"MAX_ROOMS"`
	RoomMinSize int `toml:"room_min_size" env:"ROOM_MIN_SIZE"`
	RoomMaxSize int `toml:"room_max_size" env:"ROOM_MAX_SIZE"`
	MinRooms    int `toml:"min_rooms" env:"MIN_ROOMS"`

	// DamageVariance - разброс урона. Кривая опыта живет в player.yaml.
	DamageVariance int `toml:"damage_variance" env:"DAMAGE_VARIANCE"`
}

type StorageConfig struct {
	SaveDir string `toml:"save_dir" env:"SAVE_DIR"`
	// IndexPath - sqlite-индекс слотов, пусто - без индекса
	IndexPath string `toml:"index_path" env:"INDEX_PATH"`
	// SaveOnExit - сохранять партию при остановке процесса
	SaveOnExit bool `toml:"save_on_exit" env:"SAVE_ON_EXIT"`
}

type ServerConfig struct {
	BindAddress  string        `toml:"bind_address" env:"BIND_ADDRESS"`
	WriteTimeout time.Duration `toml:"write_timeout" env:"WRITE_TIMEOUT"`
	ReadTimeout  time.Duration `toml:"read_timeout" env:"READ_TIMEOUT"`
	// Debug включает /debug/world
	Debug bool `toml:"debug" env:"DEBUG"`
}

type LoggingConfig struct {
	Level  string `toml:"level" env:"LEVEL"`
	Format string `toml:"format" env:"FORMAT"` // "json" или "text"
}

// Load читает конфиг. Пустой путь - только значения по умолчанию и окружение.
func Load(path string) (*Config, error) {
	cfg := defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "DELVE_"}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	gen := dungeon.DefaultConfig()
	rules := systems.DefaultRules()
	return &Config{
		Game: GameConfig{
			MapWidth:       gen.Width,
			MapHeight:      gen.Height,
			MaxRooms:       gen.MaxRooms,
			RoomMinSize:    gen.RoomMinSize,
			RoomMaxSize:    gen.RoomMaxSize,
			MinRooms:       gen.MinRooms,
			DamageVariance: rules.DamageVariance,
		},
		Storage: StorageConfig{
			SaveDir:    "saves",
			IndexPath:  "saves/index.db",
			SaveOnExit: true,
		},
		Server: ServerConfig{
			BindAddress:  "0.0.0.0:8080",
			WriteTimeout: 10 * time.Second,
			ReadTimeout:  60 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate отсекает значения, с которыми генератор или правила не работают
func (c *Config) Validate() error {
	g := c.Game
	switch {
	case g.MapWidth < 20 || g.MapHeight < 20:
		return fmt.Errorf("game: map %dx%d is too small", g.MapWidth, g.MapHeight)
	case g.RoomMinSize < 3 || g.RoomMaxSize < g.RoomMinSize:
		return fmt.Errorf("game: bad room size range %d..%d", g.RoomMinSize, g.RoomMaxSize)
	case g.MinRooms < 2 || g.MaxRooms < g.MinRooms:
		return fmt.Errorf("game: need at least %d room attempts, got %d", g.MinRooms, g.MaxRooms)
	case g.DamageVariance < 0:
		return fmt.Errorf("game: negative damage variance")
	case c.Storage.SaveDir == "":
		return fmt.Errorf("storage: empty save_dir")
	}
	return nil
}

// Engine - параметры движка: правила из таблиц контента плюс настройки игры.
// Нулевой сид заменяется случайным.
func (c *Config) Engine(progression dungeon.ProgressionTable) engine.Config {
	ec := engine.NewConfig().WithProgression(progression)
	if c.Game.Seed != 0 {
		ec.Seed = c.Game.Seed
	}
	ec.Rules.DamageVariance = c.Game.DamageVariance
	return ec
}

// Dungeon - параметры планировки уровней
func (c *Config) Dungeon() dungeon.Config {
	return dungeon.Config{
		Width:       c.Game.MapWidth,
		Height:      c.Game.MapHeight,
		MaxRooms:    c.Game.MaxRooms,
		RoomMinSize: c.Game.RoomMinSize,
		RoomMaxSize: c.Game.RoomMaxSize,
		MinRooms:    c.Game.MinRooms,
	}
}
