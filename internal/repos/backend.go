package repos

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"storefront/internal/config"
	applog "storefront/internal/log"
)

const (
	ModeSQL    = "sql"
	ModeMemory = "memory"
)

// Backend is the store chosen once at startup.
type Backend struct {
	Store Store
	Mode  string
	DB    *sqlx.DB
}

// SelectBackend tries the configured database once. Any failure (no DSN,
// unreachable server, schema error) selects memory mode for the life of the
// process. On success the database is primary and mem answers failed calls.
func SelectBackend(ctx context.Context, cfg config.Config, mem *MemoryStore) *Backend {
	if cfg.DBDSN == "" {
		applog.Warn("backend.memory", errors.New("DB_DSN not set"), nil)
		return &Backend{Store: mem, Mode: ModeMemory}
	}
	cctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	db, err := OpenDB(cctx, cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		applog.Warn("backend.memory", err, map[string]any{"driver": cfg.DBDriver})
		return &Backend{Store: mem, Mode: ModeMemory}
	}
	applog.Logger().WithField("driver", cfg.DBDriver).Info("backend.sql")
	return &Backend{
		Store: NewFallbackStore(NewSQLStore(db), mem),
		Mode:  ModeSQL,
		DB:    db,
	}
}

func (b *Backend) Close() error {
	if b.DB == nil {
		return nil
	}
	return b.DB.Close()
}
