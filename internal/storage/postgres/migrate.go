package postgres

import (
	"context"
	"embed"
	"io/fs"
	"log/slog"

	"roadIncidents/pkg/e"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Migrate applies every pending migration and returns the resulting schema
// version.
func Migrate(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) (int64, error) {
	const op = "storage.pg.Migrate"

	fsys, err := fs.Sub(embedMigrations, "migrations")
	if err != nil {
		return 0, e.Wrap(op, err)
	}

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, fsys)
	if err != nil {
		return 0, e.Wrap(op+".NewProvider", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		logger.Error("migration failed", slog.String("op", op), slog.Any("error", err))
		return 0, e.Wrap(op+".Up", err)
	}
	for _, r := range results {
		logger.Info("migration applied",
			slog.Int64("version", r.Source.Version),
			slog.Duration("duration", r.Duration),
		)
	}

	version, err := provider.GetDBVersion(ctx)
	if err != nil {
		return 0, e.Wrap(op+".GetDBVersion", err)
	}
	return version, nil
}
