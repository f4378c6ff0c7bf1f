package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB owns the pgx connection pool backing the page index.
type DB struct {
	pool *pgxpool.Pool
}

// New parses the database URL, opens a pool sized for the catalog's
// read-mostly traffic, and verifies connectivity with a ping.
func New(ctx context.Context, databaseURL string) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	cfg.MaxConns = 10
	cfg.MinConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	slog.Info("database connected")

	return &DB{pool: pool}, nil
}

// Pool exposes the underlying pool for repositories and transactions.
func (db *DB) Pool() *pgxpool.Pool {
	return db.pool
}

// Close releases every pooled connection.
func (db *DB) Close() {
	db.pool.Close()
	slog.Info("database connection closed")
}
