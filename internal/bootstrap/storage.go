package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/UpgradeDraft_Go/internal/catalog"
	"github.com/osse101/UpgradeDraft_Go/internal/config"
	"github.com/osse101/UpgradeDraft_Go/internal/database"
	"github.com/osse101/UpgradeDraft_Go/internal/database/postgres"
	"github.com/osse101/UpgradeDraft_Go/internal/database/sqlite"
	"github.com/osse101/UpgradeDraft_Go/internal/eventlog"
)

// OpenEventStore connects to the configured event log database, applies
// pending migrations and returns the repository with a pool for health checks.
// The caller closes the pool.
func OpenEventStore(ctx context.Context, cfg *config.Config) (eventlog.Repository, database.Pool, error) {
	if cfg.UsesSQLite() {
		db, err := database.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenEventStore, err)
		}
		if err := database.MigrateSQLite(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
		}
		slog.Info(LogMsgEventStoreOpened, "driver", config.DriverSQLite, "path", cfg.SQLitePath)
		return sqlite.NewEventLogRepository(db), database.SQLPool(db), nil
	}

	pool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxIdleTime, cfg.DBMaxLifetime)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenEventStore, err)
	}
	if err := database.MigratePostgres(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
	}
	slog.Info(LogMsgEventStoreOpened, "driver", config.DriverPostgres, "host", cfg.DBHost, "database", cfg.DBName)
	return postgres.NewEventLogRepository(pool), pool, nil
}

// LoadCatalog reads and validates the upgrade catalog
func LoadCatalog(path string) (*catalog.Catalog, error) {
	cat, err := catalog.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
	}
	slog.Info(LogMsgCatalogLoaded,
		"path", path,
		"version", cat.Version(),
		"options", cat.Len(),
		"slots", cat.Slots(),
		"wage", cat.Wage())
	return cat, nil
}
