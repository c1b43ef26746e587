// Package httpapi exposes the analytics reports as a JSON HTTP API.
package httpapi

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/guckert-dev/shopify-mcp/internal/dependency"
)

// Config is the configuration for the http server
type Config struct {
	Port           string   `mapstructure:"port"`
	Address        string   `mapstructure:"address"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Server is the http server
type Server struct {
	hs   *http.Server
	c    *Config
	rep  dependency.Reporter
	done chan struct{}
}

// New creates a new server
func New(config *Config, rep dependency.Reporter) *Server {
	return &Server{
		c:    config,
		rep:  rep,
		done: make(chan struct{}),
	}
}

// Done returns a channel that is closed when the server exits
func (s *Server) Done() <-chan struct{} {
	return s.done
}

func (s *Server) router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.c.AllowedOrigins,
		AllowedMethods: []string{http.MethodHead, http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/api/reports", func(r chi.Router) {
		r.Get("/analytics", s.getStoreAnalytics)
		r.Get("/forecast", s.getForecast)
		r.Get("/conversion", s.getConversionAnalysis)
		r.Get("/products", s.getProductPerformance)
	})

	return r
}

// Start begins serving in the background; Done is closed when the listener
// exits.
func (s *Server) Start(ctx context.Context) error {
	addr := net.JoinHostPort(s.c.Address, s.c.Port)
	s.hs = &http.Server{
		Addr:              addr,
		Handler:           s.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("cannot listen on %s: %w", addr, err)
	}

	go func() {
		defer close(s.done)
		if err := s.hs.Serve(ln); err != nil && err != http.ErrServerClosed {
			slog.Default().ErrorContext(ctx, "http server exited",
				slog.String("err", err.Error()))
		}
	}()

	slog.Default().InfoContext(ctx, "http server started", slog.String("addr", addr))
	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) {
	if s.hs == nil {
		return
	}
	sctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := s.hs.Shutdown(sctx); err != nil {
		slog.Default().ErrorContext(ctx, "http server shutdown",
			slog.String("err", err.Error()))
	}
}
