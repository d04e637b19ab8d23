package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/atinyakov/notekeeper/internal/models"
)

// PostgresNoteRepository stores notes in PostgreSQL. Deleted notes are
// soft deleted and invisible to every read.
type PostgresNoteRepository struct {
	DB *sql.DB
}

// NewPostgresNoteRepository creates a PostgresNoteRepository.
func NewPostgresNoteRepository(db *sql.DB) *PostgresNoteRepository {
	return &PostgresNoteRepository{DB: db}
}

const noteColumns = `id, user_id, title, description, tag, created_at`

// Create inserts n.
func (r *PostgresNoteRepository) Create(ctx context.Context, n *models.Note) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO notes (`+noteColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		n.ID, n.OwnerID, n.Title, n.Description, n.Tag, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

// ListByOwner returns the owner's notes, oldest first.
func (r *PostgresNoteRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Note, error) {
	notes, err := queryList(ctx, r.DB, scanNote,
		`SELECT `+noteColumns+` FROM notes WHERE user_id = $1 AND deleted_at IS NULL ORDER BY created_at`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

// GetByID returns a live note or common.ErrNotFound.
func (r *PostgresNoteRepository) GetByID(ctx context.Context, id string) (*models.Note, error) {
	return queryOne(ctx, r.DB, scanNote,
		`SELECT `+noteColumns+` FROM notes WHERE id = $1 AND deleted_at IS NULL`, id)
}

// Update overwrites the mutable fields of n.
func (r *PostgresNoteRepository) Update(ctx context.Context, n *models.Note) error {
	return execOne(ctx, r.DB,
		`UPDATE notes SET title = $2, description = $3, tag = $4 WHERE id = $1 AND deleted_at IS NULL`,
		n.ID, n.Title, n.Description, n.Tag)
}

// Delete soft deletes the note.
func (r *PostgresNoteRepository) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.DB,
		`UPDATE notes SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
}

func scanNote(row rowScanner) (*models.Note, error) {
	var n models.Note
	if err := row.Scan(&n.ID, &n.OwnerID, &n.Title, &n.Description, &n.Tag, &n.CreatedAt); err != nil {
		return nil, err
	}
	return &n, nil
}
