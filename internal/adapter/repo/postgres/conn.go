// Package postgres provides PostgreSQL database adapters.
//
// It implements the repository ports for assessments and blog posts on top
// of a minimal pgx pool.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxPool is a minimal subset of pgxpool used by the repos for easy testing.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// NewPool creates a pgx connection pool from the provided DSN and verifies
// connectivity, retrying the initial ping with exponential backoff so that
// the service survives a database that is still coming up.
func NewPool(ctx context.Context, dsn string, maxElapsed time.Duration) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = 10
	cfg.MaxConnIdleTime = 5 * time.Minute
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	expo := backoff.NewExponentialBackOff()
	expo.MaxElapsedTime = maxElapsed
	op := func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := pool.Ping(pingCtx); err != nil {
			slog.Warn("db ping failed, retrying", slog.Any("error", err))
			return err
		}
		return nil
	}
	if err := backoff.Retry(op, backoff.WithContext(expo, ctx)); err != nil {
		pool.Close()
		return nil, fmt.Errorf("op=postgres.connect: %w", err)
	}
	return pool, nil
}
