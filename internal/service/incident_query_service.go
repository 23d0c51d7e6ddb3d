package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"roadIncidents/internal/domain"
	"roadIncidents/pkg/e"
	"roadIncidents/pkg/pagination"
	"roadIncidents/pkg/textnorm"

	"github.com/google/uuid"
)

type IncidentQueryService struct {
	repo   IncidentRepository
	cache  IncidentCache
	logger *slog.Logger
}

func NewIncidentQueryService(repo IncidentRepository, cache IncidentCache, logger *slog.Logger) *IncidentQueryService {
	return &IncidentQueryService{repo: repo, cache: cache, logger: logger}
}

// Search filters in two stages. The date window is handed to the store,
// which returns the candidate set; the department and city fragments are
// then matched in memory on normalized names. TotalItems counts the set
// after both stages.
//
// The whole candidate set for the date window is loaded into memory.
func (s *IncidentQueryService) Search(ctx context.Context, req domain.SearchIncidentsRequest) (pagination.PageResult[domain.IncidentView], error) {
	page := pagination.Request{Page: req.Page, PageSize: req.PageSize}.Normalize()

	window := domain.NewDateWindow(req.From, req.To)
	candidates, err := s.repo.FetchCandidates(ctx, window)
	if err != nil {
		s.logger.Error("FetchCandidates failed", slog.Any("error", err))
		return pagination.PageResult[domain.IncidentView]{}, err
	}
	candidates = slices.DeleteFunc(candidates, func(v domain.IncidentView) bool {
		return !window.Contains(v.OccurredAt)
	})

	sortNewestFirst(candidates)
	filtered := FilterByText(candidates, TextFilter{Department: req.Department, City: req.City})

	s.logger.Debug("incident search",
		slog.Int("candidates", len(candidates)),
		slog.Int("matched", len(filtered)),
		slog.Int("page", page.Page),
		slog.Int("page_size", page.PageSize),
	)

	return pagination.Paginate(filtered, len(filtered), page.Page, page.PageSize), nil
}

// TextFilter holds name fragments; an empty fragment does not filter.
type TextFilter struct {
	Department string
	City       string
}

// FilterByText keeps the views whose normalized department and city names
// contain the normalized fragments. Input order is preserved.
func FilterByText(items []domain.IncidentView, f TextFilter) []domain.IncidentView {
	if textnorm.Normalize(f.Department) == "" && textnorm.Normalize(f.City) == "" {
		return items
	}

	out := make([]domain.IncidentView, 0, len(items))
	for _, it := range items {
		if textnorm.Contains(it.Department, f.Department) && textnorm.Contains(it.City, f.City) {
			out = append(out, it)
		}
	}
	return out
}

func sortNewestFirst(items []domain.IncidentView) {
	slices.SortStableFunc(items, func(a, b domain.IncidentView) int {
		return b.OccurredAt.Compare(a.OccurredAt)
	})
}

// Get returns nil, nil when the incident does not exist.
func (s *IncidentQueryService) Get(ctx context.Context, id uuid.UUID) (*domain.IncidentView, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err != nil {
			s.logger.Warn("incident cache read failed", slog.String("id", id.String()), slog.Any("error", err))
		} else if cached != nil {
			return cached, nil
		}
	}

	view, err := s.repo.Get(ctx, id)
	if errors.Is(err, e.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, nil
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, *view); err != nil {
			s.logger.Warn("incident cache write failed", slog.String("id", id.String()), slog.Any("error", err))
		}
	}

	return view, nil
}
