package catalog

import (
	"context"
	"log/slog"
	"net/http"

	"roadIncidents/internal/domain"
	"roadIncidents/internal/render"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type Catalog interface {
	ListDepartments(ctx context.Context) ([]domain.Department, error)
	ListCities(ctx context.Context, departmentCode string) ([]domain.City, error)
	ListIncidentTypes(ctx context.Context) ([]domain.IncidentType, error)
}

type Handler struct {
	logger  *slog.Logger
	Catalog Catalog
}

func NewHandler(logger *slog.Logger, catalog Catalog) *Handler {
	return &Handler{
		logger:  logger,
		Catalog: catalog,
	}
}

func (h *Handler) log(r *http.Request) *slog.Logger {
	reqID := chimw.GetReqID(r.Context())
	if reqID == "" {
		return h.logger
	}
	return h.logger.With(slog.String("request_id", reqID))
}

func (h *Handler) DepartmentList(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	deps, err := h.Catalog.ListDepartments(r.Context())
	if err != nil {
		render.Error(w, r, l, err)
		return
	}
	render.JSON(w, http.StatusOK, deps)
}

func (h *Handler) CityList(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	code := chi.URLParam(r, "code")

	cities, err := h.Catalog.ListCities(r.Context(), code)
	if err != nil {
		render.Error(w, r, l, err)
		return
	}
	render.JSON(w, http.StatusOK, cities)
}

func (h *Handler) IncidentTypeList(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	types, err := h.Catalog.ListIncidentTypes(r.Context())
	if err != nil {
		render.Error(w, r, l, err)
		return
	}
	render.JSON(w, http.StatusOK, types)
}
