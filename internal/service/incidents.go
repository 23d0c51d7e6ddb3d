package service

import (
	"context"

	"roadIncidents/internal/domain"
	"roadIncidents/pkg/pagination"

	"github.com/google/uuid"
)

func (s *Service) Create(ctx context.Context, req domain.CreateIncidentRequest) (uuid.UUID, error) {
	return s.create(ctx, req)
}

// Get returns nil, nil when no incident has the given id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.IncidentView, error) {
	return s.get(ctx, domain.GetIncidentRequest{ID: id})
}

func (s *Service) Search(ctx context.Context, req domain.SearchIncidentsRequest) (pagination.PageResult[domain.IncidentView], error) {
	return s.search(ctx, req)
}

func (s *Service) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	return s.Catalog.ListDepartments(ctx)
}

func (s *Service) ListCities(ctx context.Context, departmentCode string) ([]domain.City, error) {
	return s.cities(ctx, domain.ListCitiesRequest{DepartmentCode: departmentCode})
}

func (s *Service) ListIncidentTypes(ctx context.Context) ([]domain.IncidentType, error) {
	return s.Catalog.ListIncidentTypes(ctx)
}
