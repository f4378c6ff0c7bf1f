package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tmplhub/tmplhub/internal/domain"
)

// TokenRepository handles database operations for API tokens.
type TokenRepository struct {
	pool *pgxpool.Pool
}

// NewTokenRepository creates a new TokenRepository.
func NewTokenRepository(pool *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{pool: pool}
}

// Create stores a new API token with the given name and secret.
func (r *TokenRepository) Create(ctx context.Context, name, secret string) (*domain.Token, error) {
	query, args, err := psql.
		Insert("api_tokens").
		Columns("name", "token").
		Values(name, secret).
		Suffix("RETURNING id, name, token, is_active, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Create query for token: %w", err)
	}

	var t domain.Token
	err = r.pool.QueryRow(ctx, query, args...).Scan(&t.ID, &t.Name, &t.Token, &t.IsActive, &t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create token: %w", err)
	}
	return &t, nil
}

// Revoke deactivates every token with the given name.
func (r *TokenRepository) Revoke(ctx context.Context, name string) error {
	query, args, err := psql.
		Update("api_tokens").
		Set("is_active", false).
		Where(sq.Eq{"name": name}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build Revoke query for token: %w", err)
	}

	result, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrTokenNotFound
	}
	return nil
}

// GetByToken retrieves an API token by its secret value.
func (r *TokenRepository) GetByToken(ctx context.Context, token string) (*domain.Token, error) {
	query, args, err := psql.
		Select("id", "name", "token", "is_active", "created_at").
		From("api_tokens").
		Where(sq.Eq{"token": token}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByToken query for token: %w", err)
	}

	var t domain.Token
	err = r.pool.QueryRow(ctx, query, args...).Scan(&t.ID, &t.Name, &t.Token, &t.IsActive, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, fmt.Errorf("get token: %w", err)
	}
	return &t, nil
}
