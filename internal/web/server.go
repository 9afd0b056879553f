package web

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/focuskeeper/focuskeeper/internal/config"
	"github.com/focuskeeper/focuskeeper/internal/monitor"
)

type Server struct {
	config  *config.Config
	handler *Handler
	server  *http.Server
	log     zerolog.Logger
}

func NewServer(cfg *config.Config, repo EventStore, mon monitor.StatusProvider, log zerolog.Logger) *Server {
	handler := NewHandler(cfg, repo, mon, log)
	mux := http.NewServeMux()
	handler.SetupRoutes(mux)

	addr := net.JoinHostPort(cfg.Web.Host, fmt.Sprint(cfg.Web.Port))
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		config:  cfg,
		handler: handler,
		server:  httpServer,
		log:     log,
	}
}

// Start blocks serving requests. It returns nil after Shutdown.
func (s *Server) Start() error {
	s.log.Info().Str("addr", "http://"+s.server.Addr).Msg("Starting web server")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "web server failed")
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down web server...")
	return s.server.Shutdown(ctx)
}

func (s *Server) GetAddress() string {
	return s.server.Addr
}
