package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sqlstore "github.com/de-tools/rankboard/pkg/store/sql"
	_ "github.com/jackc/pgx/v5/stdlib"
)

type Settings struct {
	DSN string
	// ConnectTimeout bounds the initial ping (default: 10s)
	ConnectTimeout time.Duration
	MaxOpenConns   int
}

// NewDB opens a pgx backed connection pool and creates the record tables
func NewDB(ctx context.Context, settings Settings) (*sql.DB, error) {
	if settings.DSN == "" {
		return nil, fmt.Errorf("postgres dsn is empty")
	}
	timeout := settings.ConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	db, err := sql.Open("pgx", settings.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	if settings.MaxOpenConns > 0 {
		db.SetMaxOpenConns(settings.MaxOpenConns)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to reach postgres: %w", err)
	}
	if err := EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, query := range sqlstore.Schema {
		if _, err := db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}
