package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/shortlink-demo/internal/shortener"
)

// PostgresStore is a PostgreSQL implementation of shortener.Repository.
// The bigserial id preserves insertion order for newest-first listing.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed URL store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureSchema creates the short_urls table if it does not exist.
func (p *PostgresStore) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS short_urls (
			id           BIGSERIAL PRIMARY KEY,
			code         TEXT NOT NULL UNIQUE,
			original_url TEXT NOT NULL,
			created_at   TIMESTAMPTZ NOT NULL,
			expires_at   TIMESTAMPTZ NOT NULL,
			clicks       BIGINT NOT NULL DEFAULT 0
		)
	`

	_, err := p.pool.Exec(ctx, query)

	return err
}

func (p *PostgresStore) Save(ctx context.Context, shortURL *shortener.ShortURL) error {
	query := `
		INSERT INTO short_urls (code, original_url, created_at, expires_at, clicks)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (code) DO NOTHING
	`

	tag, err := p.pool.Exec(ctx, query,
		string(shortURL.Code),
		shortURL.OriginalURL,
		shortURL.CreatedAt,
		shortURL.ExpiresAt,
		shortURL.Clicks,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return shortener.ErrCodeExists
	}

	return nil
}

func (p *PostgresStore) GetByCode(ctx context.Context, code shortener.Code) (*shortener.ShortURL, error) {
	query := `
		SELECT code, original_url, created_at, expires_at, clicks
		FROM short_urls
		WHERE code = $1
	`

	var url shortener.ShortURL

	err := p.pool.QueryRow(ctx, query, string(code)).Scan(
		&url.Code,
		&url.OriginalURL,
		&url.CreatedAt,
		&url.ExpiresAt,
		&url.Clicks,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shortener.ErrNotFound
		}

		return nil, err
	}

	return &url, nil
}

func (p *PostgresStore) List(ctx context.Context) ([]*shortener.ShortURL, error) {
	query := `
		SELECT code, original_url, created_at, expires_at, clicks
		FROM short_urls
		ORDER BY id DESC
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*shortener.ShortURL

	for rows.Next() {
		var url shortener.ShortURL

		err = rows.Scan(&url.Code, &url.OriginalURL, &url.CreatedAt, &url.ExpiresAt, &url.Clicks)
		if err != nil {
			return nil, err
		}

		records = append(records, &url)
	}

	return records, rows.Err()
}

func (p *PostgresStore) IncrementClicks(ctx context.Context, code shortener.Code) (int64, error) {
	query := `
		UPDATE short_urls
		SET clicks = clicks + 1
		WHERE code = $1
		RETURNING clicks
	`

	var clicks int64

	err := p.pool.QueryRow(ctx, query, string(code)).Scan(&clicks)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, shortener.ErrNotFound
		}

		return 0, err
	}

	return clicks, nil
}

func (p *PostgresStore) Contains(ctx context.Context, code shortener.Code) (bool, error) {
	var exists bool

	err := p.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM short_urls WHERE code = $1)`,
		string(code),
	).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

// Compile-time check.
var _ shortener.Repository = (*PostgresStore)(nil)
