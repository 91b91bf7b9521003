package store

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

// DB is a SQL-backed repository for bookings and tasks.
type DB struct {
	*sql.DB
	dialect Dialect
	logger  *slog.Logger
}

// Wrap adapts an open *sql.DB without running migrations.
func Wrap(db *sql.DB, dialect Dialect, logger *slog.Logger) *DB {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &DB{DB: db, dialect: dialect, logger: logger}
}

// DefaultSQLitePath is ~/.config/planr/planr.db.
func DefaultSQLitePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "planr", "planr.db"), nil
}

// OpenSQLite opens (and migrates) the database at path. ":memory:" gives a
// private in-memory database.
func OpenSQLite(ctx context.Context, path string, logger *slog.Logger) (*DB, error) {
	dsn := ":memory:"
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if path == ":memory:" {
		// every pooled connection would otherwise see its own empty database
		sqlDB.SetMaxOpenConns(1)
	}
	return open(ctx, sqlDB, SQLite, logger)
}

// OpenPostgres connects to dsn with lib/pq and migrates the schema.
func OpenPostgres(ctx context.Context, dsn string, logger *slog.Logger) (*DB, error) {
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	sqlDB.SetMaxIdleConns(5)
	return open(ctx, sqlDB, Postgres, logger)
}

func open(ctx context.Context, sqlDB *sql.DB, dialect Dialect, logger *slog.Logger) (*DB, error) {
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	db := Wrap(sqlDB, dialect, logger)
	if err := db.Migrate(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return db, nil
}

func (db *DB) Migrate(ctx context.Context) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS bookings (
			id TEXT PRIMARY KEY,
			owner TEXT NOT NULL,
			label TEXT NOT NULL,
			day TEXT NOT NULL,
			time_from TEXT NOT NULL,
			time_to TEXT NOT NULL,
			start_minute INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS bookings_owner_day ON bookings (owner, day)`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			owner TEXT NOT NULL,
			label TEXT NOT NULL,
			deadline TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'Pending',
			minutes INTEGER NOT NULL,
			priority TEXT NOT NULL DEFAULT 'Medium',
			reminder BOOLEAN NOT NULL DEFAULT FALSE,
			reminded_on TEXT,
			created_at TEXT NOT NULL,
			UNIQUE (owner, label)
		)`,
	}

	for _, m := range migrations {
		if _, err := db.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("executing migration: %w", err)
		}
	}

	db.logger.Debug("migrations applied", "count", len(migrations))
	return nil
}

// rebind rewrites ? placeholders to $n for Postgres.
func (db *DB) rebind(query string) string {
	if db.dialect != Postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
