package postgres

import (
	"context"
	"log/slog"

	"roadIncidents/internal/domain"
	"roadIncidents/pkg/e"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CatalogStore reads the reference data: departments, cities and incident
// types. The catalog is loaded by migrations and never written at runtime.
type CatalogStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewCatalogStore(pool *pgxpool.Pool, logger *slog.Logger) *CatalogStore {
	return &CatalogStore{pool: pool, logger: logger}
}

func (p *CatalogStore) CityExists(ctx context.Context, code string) (bool, error) {
	const op = "postgres.Catalog.CityExists"

	var ok bool
	err := p.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM cities WHERE code = $1)`, code).Scan(&ok)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return false, e.WrapError(ctx, op, err)
	}
	return ok, nil
}

func (p *CatalogStore) IncidentTypeExists(ctx context.Context, id int) (bool, error) {
	const op = "postgres.Catalog.IncidentTypeExists"

	// SMALLINT column; anything outside its range cannot exist.
	if id <= 0 || id > 32767 {
		return false, nil
	}

	var ok bool
	err := p.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM incident_types WHERE id = $1)`, id).Scan(&ok)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return false, e.WrapError(ctx, op, err)
	}
	return ok, nil
}

func (p *CatalogStore) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	const op = "postgres.Catalog.ListDepartments"

	rows, err := p.pool.Query(ctx, `SELECT code, name FROM departments ORDER BY name`)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Department, error) {
		var d domain.Department
		err := row.Scan(&d.Code, &d.Name)
		return d, err
	})
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return out, nil
}

func (p *CatalogStore) ListCities(ctx context.Context, departmentCode string) ([]domain.City, error) {
	const op = "postgres.Catalog.ListCities"

	rows, err := p.pool.Query(ctx,
		`SELECT code, department_code, name FROM cities WHERE department_code = $1 ORDER BY name`,
		departmentCode,
	)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.City, error) {
		var c domain.City
		err := row.Scan(&c.Code, &c.DepartmentCode, &c.Name)
		return c, err
	})
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return out, nil
}

func (p *CatalogStore) ListIncidentTypes(ctx context.Context) ([]domain.IncidentType, error) {
	const op = "postgres.Catalog.ListIncidentTypes"

	rows, err := p.pool.Query(ctx, `SELECT id, name FROM incident_types ORDER BY id`)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.IncidentType, error) {
		var t domain.IncidentType
		err := row.Scan(&t.ID, &t.Name)
		return t, err
	})
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return out, nil
}
