package api

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/gamestore/admin-backend/pkg/config"
	"github.com/gamestore/admin-backend/pkg/logger"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
)

// Server wraps the HTTP listener with graceful shutdown.
type Server struct {
	http *http.Server
	logg *logger.Logger
}

func NewServer(cfg config.AppConfig, handler http.Handler, logg *logger.Logger) *Server {
	return &Server{
		http: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		logg: logg,
	}
}

// Start blocks serving requests until the listener closes.
func (s *Server) Start(ctx context.Context) error {
	if s.logg != nil {
		s.logg.Info(ctx, "http server listening on "+s.http.Addr)
	}
	if err := s.http.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	return s.http.Shutdown(ctx)
}
