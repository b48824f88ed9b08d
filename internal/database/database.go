// Package database opens the configured database and owns the schema migrations.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"holocron/internal/config"
)

const (
	pingTimeout    = 5 * time.Second
	maxWait        = 30 * time.Second
	initialBackoff = 500 * time.Millisecond
	maxBackoff     = 5 * time.Second
)

// Open connects to the configured database, retrying the initial ping while the
// server comes up.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := openSQL(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return sqlx.NewDb(db, cfg.Driver()), nil
}

func openSQL(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open(cfg.Driver(), cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	deadline := time.Now().Add(maxWait)
	backoff := initialBackoff
	var lastErr error

	for {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		lastErr = db.PingContext(pingCtx)
		cancel()

		if lastErr == nil {
			return db, nil
		}

		if ctx.Err() != nil || time.Now().After(deadline) {
			break
		}

		select {
		case <-ctx.Done():
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}

	_ = db.Close()
	return nil, fmt.Errorf("ping database: %w", lastErr)
}
