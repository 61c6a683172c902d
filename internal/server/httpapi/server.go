// Package httpapi exposes the portfolio content, the AI assistant and the
// admin operations over HTTP using gin.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/neoportfolio/internal/logging"
	"github.com/dmitrijs2005/neoportfolio/internal/metrics"
	"github.com/dmitrijs2005/neoportfolio/internal/services"
)

const shutdownTimeout = 5 * time.Second

// Services groups the use cases the API serves.
type Services struct {
	Admin   *services.AdminService
	Chat    *services.ChatService
	Uploads *services.UploadService
	Content services.ContentStore
}

type Server struct {
	address       string
	services      Services
	metrics       *metrics.Collector
	logger        logging.Logger
	jwtSecret     []byte
	tokenValidity time.Duration
	engine        *gin.Engine
}

func NewServer(a string, l logging.Logger, svc Services, m *metrics.Collector, secretKey string, tokenValidity time.Duration) *Server {
	s := &Server{
		address:       a,
		services:      svc,
		metrics:       m,
		logger:        l.With("module", "http_server"),
		jwtSecret:     []byte(secretKey),
		tokenValidity: tokenValidity,
	}
	s.engine = s.newRouter()
	return s
}

// Handler returns the configured gin engine.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener. It returns only after in-flight
// requests have drained or the shutdown timeout has passed.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", ln.Addr().String())

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	<-stopped
	return nil
}
