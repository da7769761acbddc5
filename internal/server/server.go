// Package server exposes the conversion service over HTTP: STL uploads in,
// glTF/GLB artifacts out. All conversion work happens in pkg/convert; this
// layer owns request validation, artifact storage and cleanup.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/Faultbox/meshconv/internal/config"
	"github.com/Faultbox/meshconv/internal/storage"
)

// Server is the HTTP front end of the conversion service.
type Server struct {
	cfg   *config.Config
	store storage.Store
	log   *zap.Logger
	srv   *http.Server
}

// New creates a server; nothing listens until Start is called.
func New(cfg *config.Config, store storage.Store, log *zap.Logger) *Server {
	s := &Server{
		cfg:   cfg,
		store: store,
		log:   log,
	}
	s.srv = &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Router builds the HTTP route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	r.Post("/api/convert-stl", s.handleConvert)
	r.Get("/api/conversion-methods", s.handleMethods)
	r.Get("/api/files/{name}", s.handleFile)
	r.Get("/healthz", s.handleHealth)

	return r
}

// Start begins serving and blocks until the listener closes.
func (s *Server) Start() error {
	s.log.Info("http server listening", zap.String("addr", s.cfg.Server.Addr))
	err := s.srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// requestLogger logs one line per request with method, path, status and
// duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
