package postgres

import (
	"context"

	"roadIncidents/internal/domain"

	"github.com/google/uuid"
)

type IncidentRepository interface {
	Create(ctx context.Context, incident *domain.Incident) error
	Get(ctx context.Context, id uuid.UUID) (*domain.IncidentView, error)
	FetchCandidates(ctx context.Context, window domain.DateWindow) ([]domain.IncidentView, error)
}

type CatalogRepository interface {
	CityExists(ctx context.Context, code string) (bool, error)
	IncidentTypeExists(ctx context.Context, id int) (bool, error)
	ListDepartments(ctx context.Context) ([]domain.Department, error)
	ListCities(ctx context.Context, departmentCode string) ([]domain.City, error)
	ListIncidentTypes(ctx context.Context) ([]domain.IncidentType, error)
}

var (
	_ IncidentRepository = (*IncidentStore)(nil)
	_ CatalogRepository  = (*CatalogStore)(nil)
)

func (p *Postgres) IncidentRepo() IncidentRepository { return p.Incidents }
func (p *Postgres) CatalogRepo() CatalogRepository   { return p.Catalog }
