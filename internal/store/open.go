package store

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/christopherklint97/planr/internal/schedule"
	"github.com/christopherklint97/planr/internal/todo"
)

// Backend is what the CLI needs from any storage driver.
type Backend interface {
	schedule.Repository
	todo.Repository
	Close() error
}

// Open selects a backend by driver name: "sqlite" (default), "postgres",
// "file" or "memory". An empty dsn picks the driver's default location.
func Open(ctx context.Context, driver, dsn string, logger *slog.Logger) (Backend, error) {
	switch strings.ToLower(driver) {
	case "", "sqlite":
		if dsn == "" {
			p, err := DefaultSQLitePath()
			if err != nil {
				return nil, err
			}
			dsn = p
		}
		return OpenSQLite(ctx, dsn, logger)
	case "postgres", "postgresql":
		if dsn == "" {
			return nil, fmt.Errorf("postgres driver needs storage.dsn")
		}
		return OpenPostgres(ctx, dsn, logger)
	case "file", "json":
		if dsn == "" {
			p, err := DefaultFilePath()
			if err != nil {
				return nil, err
			}
			dsn = p
		}
		return closer{NewFile(dsn)}, nil
	case "memory":
		return closer{NewMemory()}, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}

type repository interface {
	schedule.Repository
	todo.Repository
}

type closer struct{ repository }

func (closer) Close() error { return nil }
