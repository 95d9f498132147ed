// Package server exposes table comparison over HTTP: an upload page,
// a JSON API and report downloads.
package server

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ukaji3/exdiff-go/internal/config"
	"github.com/ukaji3/exdiff-go/internal/logging"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server serves comparisons of uploaded files.
type Server struct {
	cfg      *config.Config
	logger   *slog.Logger
	metrics  *Metrics
	validate *validator.Validate
	pages    *template.Template
}

// New creates a server from configuration.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	pages, err := template.New("").Funcs(template.FuncMap{
		"changed": func(mask [][]bool, row, col int) bool { return mask[row][col] },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &Server{
		cfg:      cfg,
		logger:   logging.Component(logger, "server"),
		metrics:  NewMetrics(),
		validate: validator.New(),
		pages:    pages,
	}, nil
}

// Routes builds the HTTP router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/", s.Index)
	r.Get("/healthz", s.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{}))

	limiter := NewRateLimiter(s.cfg.Limits.RPS, s.cfg.Limits.Burst, s.logger)
	r.Group(func(r chi.Router) {
		r.Use(limiter.Handler)
		r.Post("/compare", s.ComparePage)
		r.Route("/api/v1", func(r chi.Router) {
			r.Post("/sheets", s.Sheets)
			r.Post("/compare", s.Compare)
			r.Post("/export/{format}", s.Export)
		})
	})

	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.Routes(),
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

// Health reports liveness.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}
