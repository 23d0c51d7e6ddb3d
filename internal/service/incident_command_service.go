package service

import (
	"context"
	"log/slog"

	"roadIncidents/internal/domain"
	"roadIncidents/pkg/e"

	"github.com/google/uuid"
)

type IncidentCommandService struct {
	incidents IncidentRepository
	catalog   CatalogRepository
	events    EventQueue
	logger    *slog.Logger
}

// NewIncidentCommandService builds the creation workflow. events may be nil,
// in which case no notification is published.
func NewIncidentCommandService(
	incidents IncidentRepository,
	catalog CatalogRepository,
	events EventQueue,
	logger *slog.Logger,
) *IncidentCommandService {
	return &IncidentCommandService{
		incidents: incidents,
		catalog:   catalog,
		events:    events,
		logger:    logger,
	}
}

func (s *IncidentCommandService) Create(ctx context.Context, req domain.CreateIncidentRequest) (uuid.UUID, error) {
	const op = "service.Incident.Create"

	cityOK, err := s.catalog.CityExists(ctx, req.CityCode)
	if err != nil {
		return uuid.Nil, e.Wrap(op, err)
	}
	if !cityOK {
		s.logger.Warn("unknown city", slog.String("city_code", req.CityCode))
		return uuid.Nil, e.ErrCityNotFound
	}

	typeOK, err := s.catalog.IncidentTypeExists(ctx, req.IncidentTypeID)
	if err != nil {
		return uuid.Nil, e.Wrap(op, err)
	}
	if !typeOK {
		s.logger.Warn("unknown incident type", slog.Int("incident_type_id", req.IncidentTypeID))
		return uuid.Nil, e.ErrIncidentTypeNotFound
	}

	inc, err := domain.NewIncident(req)
	if err != nil {
		return uuid.Nil, err
	}

	if err := s.incidents.Create(ctx, inc); err != nil {
		return uuid.Nil, e.Wrap(op, err)
	}

	s.logger.Info("incident created",
		slog.String("id", inc.ID.String()),
		slog.String("city_code", inc.CityCode),
		slog.Int("incident_type_id", inc.IncidentTypeID),
	)

	s.publish(ctx, inc)

	return inc.ID, nil
}

func (s *IncidentCommandService) publish(ctx context.Context, inc *domain.Incident) {
	if s.events == nil {
		return
	}
	if err := s.events.Enqueue(ctx, domain.NewIncidentCreatedEvent(inc)); err != nil {
		s.logger.Error("enqueue incident event failed", slog.String("id", inc.ID.String()), slog.Any("error", err))
		return
	}
	s.logger.Debug("incident event enqueued", slog.String("id", inc.ID.String()))
}
