// Package database provides PostgreSQL connection management via pgx for the
// attempt store.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/p-n-ai/pai-study/internal/platform/config"
)

// DB wraps a pgx connection pool.
type DB struct {
	Pool *pgxpool.Pool
}

// ParseURL validates a PostgreSQL connection URL.
func ParseURL(url string) (*pgxpool.Config, error) {
	if url == "" {
		return nil, fmt.Errorf("database URL is empty")
	}
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("invalid database URL: %w", err)
	}
	return cfg, nil
}

// New creates a connection pool from the database configuration.
func New(ctx context.Context, dbCfg config.DatabaseConfig) (*DB, error) {
	cfg, err := ParseURL(dbCfg.URL)
	if err != nil {
		return nil, err
	}

	cfg.MaxConns = int32(dbCfg.MaxConns)
	cfg.MinConns = int32(dbCfg.MinConns)
	cfg.MaxConnLifetime = 30 * time.Minute
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// ApplySchema runs DDL against the pool. Statements are expected to be
// idempotent (CREATE TABLE IF NOT EXISTS style).
func (db *DB) ApplySchema(ctx context.Context, ddl string) error {
	if _, err := db.Pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("applying schema: %w", err)
	}
	return nil
}

// Close shuts down the connection pool.
func (db *DB) Close() {
	db.Pool.Close()
}

// HealthCheck verifies the database connection is alive.
func (db *DB) HealthCheck(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}
