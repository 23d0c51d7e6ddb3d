package incidents

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"roadIncidents/internal/domain"
	"roadIncidents/internal/render"
	"roadIncidents/pkg/pagination"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type Incidents interface {
	Create(ctx context.Context, req domain.CreateIncidentRequest) (uuid.UUID, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.IncidentView, error)
	Search(ctx context.Context, req domain.SearchIncidentsRequest) (pagination.PageResult[domain.IncidentView], error)
}

type Handler struct {
	logger    *slog.Logger
	Incidents Incidents
}

func NewHandler(logger *slog.Logger, incidents Incidents) *Handler {
	return &Handler{
		logger:    logger,
		Incidents: incidents,
	}
}

func (h *Handler) log(r *http.Request) *slog.Logger {
	reqID := chimw.GetReqID(r.Context())
	if reqID == "" {
		return h.logger
	}
	return h.logger.With(slog.String("request_id", reqID))
}

func (h *Handler) IncidentCreate(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("IncidentCreate", slog.String("remote", r.RemoteAddr))

	var req domain.CreateIncidentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			l.Warn("body too large", slog.Int64("limit", mbe.Limit))
			render.Message(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		l.Warn("invalid JSON", slog.String("error", err.Error()))
		render.Message(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	l.Info("creating incident",
		slog.String("city_code", req.CityCode),
		slog.Int("incident_type_id", req.IncidentTypeID),
		slog.Time("occurred_at", req.OccurredAt),
	)

	id, err := h.Incidents.Create(r.Context(), req)
	if err != nil {
		render.Error(w, r, l, err)
		return
	}

	l.Info("incident created", slog.String("id", id.String()))
	w.Header().Set("Location", "/api/v1/incidents/"+id.String())
	render.JSON(w, http.StatusCreated, map[string]string{"id": id.String()})
}

func (h *Handler) IncidentGet(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("IncidentGet", slog.String("remote", r.RemoteAddr))

	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		l.Warn("invalid id", slog.String("id", idStr), slog.String("error", err.Error()))
		render.Message(w, http.StatusBadRequest, "invalid id")
		return
	}

	incident, err := h.Incidents.Get(r.Context(), id)
	if err != nil {
		render.Error(w, r, l, err)
		return
	}
	if incident == nil {
		render.Message(w, http.StatusNotFound, "not found")
		return
	}

	render.JSON(w, http.StatusOK, incident)
}

func (h *Handler) IncidentSearch(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("IncidentSearch", slog.String("query", r.URL.RawQuery), slog.String("remote", r.RemoteAddr))

	req, fieldErrs := parseSearch(r.URL.Query())
	if len(fieldErrs) > 0 {
		l.Warn("invalid search query", slog.Any("errors", fieldErrs))
		render.Fields(w, fieldErrs)
		return
	}

	res, err := h.Incidents.Search(r.Context(), req)
	if err != nil {
		render.Error(w, r, l, err)
		return
	}

	l.Info("incidents searched",
		slog.Int("count", len(res.Items)),
		slog.Int("total", res.TotalItems),
		slog.Int("page", res.Page),
	)
	render.JSON(w, http.StatusOK, res)
}
