package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/atinyakov/notekeeper/internal/models"
)

// PostgresWebSearchRepository stores saved web-search results in PostgreSQL.
type PostgresWebSearchRepository struct {
	DB *sql.DB
}

// NewPostgresWebSearchRepository creates a PostgresWebSearchRepository.
func NewPostgresWebSearchRepository(db *sql.DB) *PostgresWebSearchRepository {
	return &PostgresWebSearchRepository{DB: db}
}

const webSearchColumns = `id, user_id, title, content, reference_link, created_at`

func (r *PostgresWebSearchRepository) Create(ctx context.Context, w *models.WebSearch) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO web_searches (`+webSearchColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		w.ID, w.OwnerID, w.Title, w.Content, w.ReferenceLink, w.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert web search: %w", err)
	}
	return nil
}

func (r *PostgresWebSearchRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.WebSearch, error) {
	results, err := queryList(ctx, r.DB, scanWebSearch,
		`SELECT `+webSearchColumns+` FROM web_searches WHERE user_id = $1 AND deleted_at IS NULL ORDER BY created_at`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list web searches: %w", err)
	}
	return results, nil
}

func (r *PostgresWebSearchRepository) GetByID(ctx context.Context, id string) (*models.WebSearch, error) {
	return queryOne(ctx, r.DB, scanWebSearch,
		`SELECT `+webSearchColumns+` FROM web_searches WHERE id = $1 AND deleted_at IS NULL`, id)
}

func (r *PostgresWebSearchRepository) Update(ctx context.Context, w *models.WebSearch) error {
	return execOne(ctx, r.DB,
		`UPDATE web_searches SET title = $2, content = $3, reference_link = $4 WHERE id = $1 AND deleted_at IS NULL`,
		w.ID, w.Title, w.Content, w.ReferenceLink)
}

func (r *PostgresWebSearchRepository) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.DB,
		`UPDATE web_searches SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
}

func scanWebSearch(row rowScanner) (*models.WebSearch, error) {
	var w models.WebSearch
	if err := row.Scan(&w.ID, &w.OwnerID, &w.Title, &w.Content, &w.ReferenceLink, &w.CreatedAt); err != nil {
		return nil, err
	}
	return &w, nil
}
