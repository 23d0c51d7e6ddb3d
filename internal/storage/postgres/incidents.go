package postgres

import (
	"context"
	"errors"
	"log/slog"

	"roadIncidents/internal/domain"
	"roadIncidents/pkg/e"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type IncidentStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewIncidentStore(pool *pgxpool.Pool, logger *slog.Logger) *IncidentStore {
	return &IncidentStore{pool: pool, logger: logger}
}

func (p *IncidentStore) Create(ctx context.Context, incident *domain.Incident) error {
	const op = "postgres.Incident.Create"

	query, args, err := buildInsertIncident(incident)
	if err != nil {
		return e.Wrap(op, err)
	}

	if _, err := p.pool.Exec(ctx, query, args...); err != nil {
		p.logger.Error("db exec failed",
			slog.String("op", op),
			slog.Any("error", err),
		)
		return e.WrapError(ctx, op, err)
	}

	return nil
}

func (p *IncidentStore) Get(ctx context.Context, id uuid.UUID) (*domain.IncidentView, error) {
	const op = "postgres.Incident.Get"

	query, args, err := buildGetView(id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	view, err := scanView(p.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		}
		return nil, e.WrapError(ctx, op, err)
	}

	return &view, nil
}

func (p *IncidentStore) FetchCandidates(ctx context.Context, window domain.DateWindow) ([]domain.IncidentView, error) {
	const op = "postgres.Incident.FetchCandidates"

	query, args, err := buildCandidateQuery(window)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	views := make([]domain.IncidentView, 0)
	for rows.Next() {
		v, err := scanView(rows)
		if err != nil {
			p.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		p.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	return views, nil
}

func scanView(row pgx.Row) (domain.IncidentView, error) {
	var v domain.IncidentView
	err := row.Scan(
		&v.ID,
		&v.OccurredAt,
		&v.CityCode,
		&v.City,
		&v.DepartmentCode,
		&v.Department,
		&v.IncidentTypeID,
		&v.IncidentType,
		&v.VehiclesInvolved,
		&v.Victims,
		&v.Note,
	)
	return v, err
}
