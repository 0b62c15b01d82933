package storage

import (
	"fmt"

	"mathgen-hq/mathgen/pkg/config"
	"mathgen-hq/mathgen/pkg/history"
)

// New creates the backend selected by cfg.Backend.
func New(cfg config.HistoryConfig) (history.Store, error) {
	switch cfg.Backend {
	case "memory":
		return NewMemoryStorage(), nil
	case "sqlite", "":
		return NewSQLiteStorage(&SQLiteConfig{
			Path:         cfg.SQLite.Path,
			MaxOpenConns: cfg.SQLite.MaxOpenConns,
			BusyTimeout:  cfg.SQLite.BusyTimeout,
			WALMode:      true,
		})
	default:
		return nil, fmt.Errorf("unknown history backend %q", cfg.Backend)
	}
}
