package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/atinyakov/notekeeper/internal/models"
)

// PostgresTodoRepository stores todos in PostgreSQL.
type PostgresTodoRepository struct {
	DB *sql.DB
}

// NewPostgresTodoRepository creates a PostgresTodoRepository.
func NewPostgresTodoRepository(db *sql.DB) *PostgresTodoRepository {
	return &PostgresTodoRepository{DB: db}
}

const todoColumns = `id, user_id, title, description, is_completed, created_at`

func (r *PostgresTodoRepository) Create(ctx context.Context, t *models.Todo) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO todos (`+todoColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		t.ID, t.OwnerID, t.Title, t.Description, t.IsCompleted, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert todo: %w", err)
	}
	return nil
}

func (r *PostgresTodoRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Todo, error) {
	todos, err := queryList(ctx, r.DB, scanTodo,
		`SELECT `+todoColumns+` FROM todos WHERE user_id = $1 AND deleted_at IS NULL ORDER BY created_at`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

func (r *PostgresTodoRepository) GetByID(ctx context.Context, id string) (*models.Todo, error) {
	return queryOne(ctx, r.DB, scanTodo,
		`SELECT `+todoColumns+` FROM todos WHERE id = $1 AND deleted_at IS NULL`, id)
}

func (r *PostgresTodoRepository) Update(ctx context.Context, t *models.Todo) error {
	return execOne(ctx, r.DB,
		`UPDATE todos SET title = $2, description = $3, is_completed = $4 WHERE id = $1 AND deleted_at IS NULL`,
		t.ID, t.Title, t.Description, t.IsCompleted)
}

func (r *PostgresTodoRepository) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.DB,
		`UPDATE todos SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
}

func scanTodo(row rowScanner) (*models.Todo, error) {
	var t models.Todo
	if err := row.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Description, &t.IsCompleted, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}
