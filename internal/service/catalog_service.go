package service

import (
	"context"

	"roadIncidents/internal/domain"
)

type CatalogService struct {
	repo CatalogRepository
}

func NewCatalogService(repo CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	return s.repo.ListDepartments(ctx)
}

// ListCities returns an empty list for an unknown department.
func (s *CatalogService) ListCities(ctx context.Context, req domain.ListCitiesRequest) ([]domain.City, error) {
	cities, err := s.repo.ListCities(ctx, req.DepartmentCode)
	if err != nil {
		return nil, err
	}
	if cities == nil {
		cities = []domain.City{}
	}
	return cities, nil
}

func (s *CatalogService) ListIncidentTypes(ctx context.Context) ([]domain.IncidentType, error) {
	return s.repo.ListIncidentTypes(ctx)
}
