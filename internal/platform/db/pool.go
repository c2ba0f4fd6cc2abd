// Package db provides the pooled connection the regimen core's store
// gateway reads through, plus the per-phase connection-scoping helper
// in context_seed.go. Unlike the teacher's multi-tenant pool, this core
// always talks to one fixed schema — there is no per-request search_path
// or tenant resolution layered on top of the pool itself.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPool opens a pgx connection pool against databaseURL, sized to
// [minConns, maxConns], and verifies connectivity with a ping before
// returning. Every session identifies itself as "drugregimen" and is
// pinned read-only, since the core only ever selects from the drug
// store.
func NewPool(ctx context.Context, databaseURL string, maxConns, minConns int32) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	cfg.MaxConns = maxConns
	cfg.MinConns = minConns
	cfg.ConnConfig.RuntimeParams["application_name"] = "drugregimen"
	cfg.ConnConfig.RuntimeParams["default_transaction_read_only"] = "on"

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}
