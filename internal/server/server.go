// Package server exposes the extraction pipeline over HTTP using gin.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"vidurl/internal/auth"
	"vidurl/internal/extract"
)

// Options holds the server settings taken from config.
type Options struct {
	Listen          string
	ResolveTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// Server routes HTTP requests to the extraction pipeline.
type Server struct {
	opts     Options
	engine   *gin.Engine
	resolver extract.Resolver
	gate     *auth.Gate
	log      *logrus.Logger
}

// New wires the routes. The gate applies to /extract only.
func New(opts Options, resolver extract.Resolver, gate *auth.Gate, log *logrus.Logger) *Server {
	s := &Server{
		opts:     opts,
		engine:   gin.New(),
		resolver: resolver,
		gate:     gate,
		log:      log,
	}

	s.engine.Use(recovery(log), requestLogger(log))

	s.engine.GET("/", s.health)

	ext := s.engine.Group("/extract", s.requireKey())
	ext.GET("", s.extractGet)
	ext.POST("", s.extractPost)

	return s
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Listen,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	s.log.WithField("addr", s.opts.Listen).Info("listening")

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
