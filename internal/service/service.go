package service

import (
	"context"

	"roadIncidents/internal/domain"
	"roadIncidents/internal/pipeline"
	"roadIncidents/pkg/pagination"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go
type IncidentRepository interface {
	Create(ctx context.Context, incident *domain.Incident) error
	Get(ctx context.Context, id uuid.UUID) (*domain.IncidentView, error)
	// FetchCandidates returns every incident inside the window, newest first,
	// with city, department and type names resolved.
	FetchCandidates(ctx context.Context, window domain.DateWindow) ([]domain.IncidentView, error)
}

type CatalogRepository interface {
	CityExists(ctx context.Context, code string) (bool, error)
	IncidentTypeExists(ctx context.Context, id int) (bool, error)
	ListDepartments(ctx context.Context) ([]domain.Department, error)
	ListCities(ctx context.Context, departmentCode string) ([]domain.City, error)
	ListIncidentTypes(ctx context.Context) ([]domain.IncidentType, error)
}

// IncidentCache returns nil, nil on a miss.
type IncidentCache interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.IncidentView, error)
	Set(ctx context.Context, view domain.IncidentView) error
}

type EventQueue interface {
	Enqueue(ctx context.Context, event domain.IncidentCreatedEvent) error
}

// Service is the entry point used by the transport layer. Every request goes
// through the validation pipeline before reaching its handler.
type Service struct {
	Queries  *IncidentQueryService
	Commands *IncidentCommandService
	Catalog  *CatalogService

	create pipeline.HandlerFunc[domain.CreateIncidentRequest, uuid.UUID]
	get    pipeline.HandlerFunc[domain.GetIncidentRequest, *domain.IncidentView]
	search pipeline.HandlerFunc[domain.SearchIncidentsRequest, pagination.PageResult[domain.IncidentView]]
	cities pipeline.HandlerFunc[domain.ListCitiesRequest, []domain.City]
}

func NewService(
	queries *IncidentQueryService,
	commands *IncidentCommandService,
	catalog *CatalogService,
	registry *pipeline.Registry,
) *Service {
	return &Service{
		Queries:  queries,
		Commands: commands,
		Catalog:  catalog,

		create: pipeline.Wrap[domain.CreateIncidentRequest, uuid.UUID](registry, commands.Create),
		get: pipeline.Wrap[domain.GetIncidentRequest, *domain.IncidentView](registry,
			func(ctx context.Context, req domain.GetIncidentRequest) (*domain.IncidentView, error) {
				return queries.Get(ctx, req.ID)
			}),

		search: pipeline.Wrap[domain.SearchIncidentsRequest, pagination.PageResult[domain.IncidentView]](registry, queries.Search),
		cities: pipeline.Wrap[domain.ListCitiesRequest, []domain.City](registry, catalog.ListCities),
	}
}
