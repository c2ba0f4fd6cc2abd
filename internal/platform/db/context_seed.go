package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// contextKey namespaces values this package stores on a context so they
// cannot collide with keys set by unrelated packages.
type contextKey string

const connKey contextKey = "regimen_db_conn"

// WithPhaseConn acquires one pooled connection, stores it on a derived
// context, runs fn, and releases the connection before returning —
// regardless of whether fn succeeds. Each solve phase (candidate fetch,
// direct-conflict lookup, metabolic-enzyme lookup) calls this once, so a
// phase never holds a connection longer than its own queries take and a
// failed phase cannot leak a connection into the next one.
func WithPhaseConn(ctx context.Context, pool *pgxpool.Pool, fn func(ctx context.Context) error) error {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	phaseCtx := context.WithValue(ctx, connKey, conn)
	return fn(phaseCtx)
}

// ConnFromContext retrieves the connection acquired by WithPhaseConn for
// the current phase, or nil if called outside a phase.
func ConnFromContext(ctx context.Context) *pgxpool.Conn {
	conn, _ := ctx.Value(connKey).(*pgxpool.Conn)
	return conn
}
