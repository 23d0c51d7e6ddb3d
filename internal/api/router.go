package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"roadIncidents/internal/api/handlers/http/catalog"
	"roadIncidents/internal/api/handlers/http/incidents"
	"roadIncidents/internal/api/handlers/http/system"
	"roadIncidents/internal/config"
	"roadIncidents/internal/middleware"
)

type Server struct {
	logger *slog.Logger
	router *chi.Mux
	cfg    config.Config
}

// Handlers groups the HTTP handlers mounted by the router.
type Handlers struct {
	Incidents *incidents.Handler
	Catalog   *catalog.Handler
	System    *system.Handler
}

func NewServer(ctx context.Context, cfg *config.Config, logger *slog.Logger, h Handlers) *Server {
	return &Server{
		logger: logger,
		router: InitRouter(ctx, cfg, h, logger),
		cfg:    *cfg,
	}
}

func InitRouter(ctx context.Context, cfg *config.Config, h Handlers, logger *slog.Logger) *chi.Mux {
	r := chi.NewMux()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Logger)

	r.Route("/api/v1", func(api chi.Router) {
		api.Group(func(pr chi.Router) {
			pr.Use(middleware.Limit(ctx, cfg.RateLimit.RPS, cfg.RateLimit.Burst, 10*time.Minute, logger))

			pr.Route("/incidents", func(ir chi.Router) {
				ir.Get("/", h.Incidents.IncidentSearch)
				ir.Get("/{id}", h.Incidents.IncidentGet)

				ir.Group(func(wr chi.Router) {
					wr.Use(middleware.APIKeyMiddleware(cfg.APIKey))
					wr.Use(middleware.MaxBodySize(cfg.Http.MaxBodyBytes))
					wr.Use(middleware.RequireJSON)
					wr.Post("/", h.Incidents.IncidentCreate)
				})
			})

			pr.Get("/departments", h.Catalog.DepartmentList)
			pr.Get("/departments/{code}/cities", h.Catalog.CityList)
			pr.Get("/incident-types", h.Catalog.IncidentTypeList)
		})

		api.Get("/health", h.System.SystemHealth)
		api.Get("/ready", h.System.SystemReady)
	})

	return r
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) Run(ctx context.Context) error {
	port := s.cfg.Http.Port
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         port,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Http.ReadTimeout,
		WriteTimeout: s.cfg.Http.WriteTimeout,
		IdleTimeout:  30 * time.Second,
	}

	errChan := make(chan error, 1)

	go func() {
		s.logger.Info("Starting HTTP server",
			slog.String("addr", srv.Addr),
			slog.Duration("read_timeout", s.cfg.Http.ReadTimeout),
			slog.Duration("write_timeout", s.cfg.Http.WriteTimeout),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("ListenAndServe error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down HTTP server", slog.String("reason", ctx.Err().Error()))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Http.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Server shutdown failed", slog.Any("error", err))
			return err
		}
		return nil

	case err := <-errChan:
		return err
	}
}
