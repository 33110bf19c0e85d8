// Package server exposes a running simulation over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"

	"solar-sim/pkg/physics"
	"solar-sim/pkg/simulation"
)

// Engine is the part of the simulator the API drives.
type Engine interface {
	Snapshot() simulation.Snapshot
	Stats() simulation.Stats
	Pick(p physics.Vec2) (simulation.BodyView, bool)
	Pause()
	Resume()
	TogglePause() bool
	StepIfPaused() bool
}

// Config holds server configuration.
type Config struct {
	Bind    string
	Port    int
	LogFile string
	// ControlRate limits POST /api/control per second; zero disables the limit.
	ControlRate  float64
	ControlBurst int
}

// Server wraps the HTTP server and router.
type Server struct {
	cfg    Config
	router *chi.Mux
	engine Engine
	start  time.Time
}

// New returns an initialized server.
func New(cfg Config, engine Engine) (*Server, error) {
	if engine == nil {
		return nil, errors.New("server: nil engine")
	}
	s := &Server{cfg: cfg, engine: engine, start: time.Now()}

	r := chi.NewRouter()
	if cfg.LogFile != "" {
		mw, err := accessLogger(cfg.LogFile)
		if err != nil {
			return nil, err
		}
		r.Use(mw)
	}
	r.Get("/api/status", s.status)
	r.Get("/api/bodies", s.bodies)
	r.Get("/api/pick", s.pick)
	r.With(limit(cfg.ControlRate, cfg.ControlBurst)).Post("/api/control", s.control)

	s.router = r
	return s, nil
}

// Router returns the underlying router, useful for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Addr returns the listening address.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.cfg.Bind, fmt.Sprint(s.cfg.Port))
}

// Start serves until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{Addr: s.Addr(), Handler: s.router}
	go func() {
		<-ctx.Done()
		ctxTo, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(ctxTo)
	}()
	log.Printf("simulation API listening on %s", s.Addr())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func accessLogger(path string) (func(http.Handler) http.Handler, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open access log: %w", err)
	}
	logger := log.New(f, "", log.LstdFlags)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			logger.Printf("%s %s %s", r.RemoteAddr, r.Method, r.URL.Path)
		})
	}, nil
}

func limit(perSecond float64, burst int) func(http.Handler) http.Handler {
	if perSecond <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if burst <= 0 {
		burst = 1
	}
	lim := rate.NewLimiter(rate.Limit(perSecond), burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !lim.Allow() {
				http.Error(w, "too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
