package server

import (
	"context"
	"energy-es/internal/infrastructure/config"
	"energy-es/internal/infrastructure/logging"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Server encapsula la configuración del servidor HTTP
type Server struct {
	httpServer *http.Server
	port       int
}

// NewServer crea el servidor con los timeouts configurados
func NewServer(handler http.Handler, cfg config.ServerConfig) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           handler,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadTimeout,
			// Un request puede esperar una consulta completa a REE
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  60 * time.Second,
		},
		port: cfg.Port,
	}
}

// Start arranca el servidor y bloquea hasta que se cierre. Un cierre ordenado no es un error.
func (s *Server) Start() error {
	ctx := context.Background()

	logging.Info(ctx, "HTTP server starting", logging.Fields{
		"port": s.port,
	})

	logging.Info(ctx, "Available endpoints", logging.Fields{
		"endpoints": []string{
			fmt.Sprintf("GET  http://localhost:%d/health", s.port),
			fmt.Sprintf("GET  http://localhost:%d/ready", s.port),
			fmt.Sprintf("GET  http://localhost:%d/metrics", s.port),
			fmt.Sprintf("GET  http://localhost:%d/swagger/index.html", s.port),
			fmt.Sprintf("GET  http://localhost:%d/api/v1/prices?unit=m", s.port),
			fmt.Sprintf("GET  http://localhost:%d/api/v1/prices/spot?unit=k", s.port),
			fmt.Sprintf("GET  http://localhost:%d/api/v1/prices/pvpc/summary", s.port),
		},
	})

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Stop detiene el servidor de forma ordenada
func (s *Server) Stop(ctx context.Context) error {
	logging.Info(ctx, "Stopping HTTP server gracefully", logging.Fields{
		"port": s.port,
	})

	return s.httpServer.Shutdown(ctx)
}

// GetPort retorna el puerto configurado
func (s *Server) GetPort() int {
	return s.port
}
