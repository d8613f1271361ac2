package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/sirupsen/logrus"

	"delve/internal/config"
	"delve/internal/domain"
	"delve/internal/engine"
	"delve/internal/network"
	"delve/internal/version"
	"delve/pkg/api"
	"delve/pkg/logger"
)

// Server - транспорт к внешнему интерфейсу: команды приходят по websocket,
// снимки после каждого хода рассылаются всем подключенным.
type Server struct {
	cfg      config.ServerConfig
	hub      *network.Broadcaster
	commands chan domain.Command
	debug    *DebugHandler
	done     chan struct{}
	stop     sync.Once
	log      *logrus.Entry
}

func New(cfg config.ServerConfig) *Server {
	return &Server{
		cfg:      cfg,
		hub:      network.NewBroadcaster(),
		commands: make(chan domain.Command, 16),
		debug:    NewDebugHandler(),
		done:     make(chan struct{}),
		log:      logger.Log.WithField("component", "server"),
	}
}

// Attach связывает сервер с партией: возвращает вход для игрового цикла и
// наблюдателя для Run. Оба вызываются в горутине игры, поэтому читать мир там безопасно.
func (s *Server) Attach(g *engine.Game) (*engine.ChannelInput, engine.Observer) {
	publish := func(snap *api.Snapshot) {
		s.debug.Capture(g)
		s.hub.Broadcast(snap)
	}
	return &engine.ChannelInput{C: s.commands, OnPrompt: publish}, publish
}

// Handler - все маршруты сервера
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Регистрируем роуты
	mux.HandleFunc("/ws", enableCORS(s.handleWS))
	mux.HandleFunc("/health", enableCORS(s.handleHealth))
	mux.HandleFunc("/version", enableCORS(s.handleVersion))

	if s.cfg.Debug {
		s.debug.RegisterRoutes(mux)
	}
	return mux
}

// Run слушает адрес из конфига до отмены ctx
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:        s.cfg.BindAddress,
		Handler:     s.Handler(),
		ReadTimeout: s.cfg.ReadTimeout,
		// WriteTimeout на http.Server оборвал бы долгоживущие websocket-соединения
	}

	go func() {
		<-ctx.Done()
		s.Shutdown()
		_ = srv.Shutdown(context.Background())
	}()

	s.log.WithField("addr", s.cfg.BindAddress).Info("Delve server running")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown отключает клиентов. Повторный вызов ничего не делает.
func (s *Server) Shutdown() {
	s.stop.Do(func() {
		close(s.done)
		s.hub.Close()
	})
}

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Разрешаем запросы с фронтенда
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		next(w, r)
	}
}

// handleWS обрабатывает подключение по WebSocket
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Error("Upgrade error")
		return
	}

	client := NewClient(s, conn)

	// Запускаем пампы
	go client.writePump()
	go client.readPump()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(version.Info())
}
