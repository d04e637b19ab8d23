package memory

import (
	"context"
	"testing"
	"time"

	"github.com/atinyakov/notekeeper/internal/common"
	"github.com/atinyakov/notekeeper/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	require.NoError(t, repo.CreateUser(ctx, &models.User{ID: "u1", Email: "a@x.com", Name: "Alice"}))
	assert.ErrorIs(t, repo.CreateUser(ctx, &models.User{ID: "u2", Email: "a@x.com"}), common.ErrDuplicateEmail)

	exists, err := repo.UserExists(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, exists)

	u, err := repo.GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)

	u, err = repo.GetUserByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", u.Name)

	_, err = repo.GetUserByEmail(ctx, "b@x.com")
	assert.ErrorIs(t, err, common.ErrNotFound)
	_, err = repo.GetUserByID(ctx, "u2")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestResourceRepository_ScopedAndCopied(t *testing.T) {
	ctx := context.Background()
	repo := NewNoteRepository()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	second := &models.Note{Record: models.Record{ID: "n2", OwnerID: "u1", CreatedAt: base.Add(time.Minute)}, Title: "second"}
	first := &models.Note{Record: models.Record{ID: "n1", OwnerID: "u1", CreatedAt: base}, Title: "first"}
	other := &models.Note{Record: models.Record{ID: "n3", OwnerID: "u2", CreatedAt: base}, Title: "other"}
	for _, n := range []*models.Note{second, first, other} {
		require.NoError(t, repo.Create(ctx, n))
	}

	list, err := repo.ListByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "n1", list[0].ID)
	assert.Equal(t, "n2", list[1].ID)

	// Mutating a returned value does not touch the store.
	list[0].Title = "changed"
	got, err := repo.GetByID(ctx, "n1")
	require.NoError(t, err)
	assert.Equal(t, "first", got.Title)

	empty, err := repo.ListByOwner(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestResourceRepository_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewTodoRepository()

	todo := &models.Todo{Record: models.Record{ID: "t1", OwnerID: "u1"}, Title: "buy"}
	require.NoError(t, repo.Create(ctx, todo))

	todo.IsCompleted = true
	require.NoError(t, repo.Update(ctx, todo))
	got, err := repo.GetByID(ctx, "t1")
	require.NoError(t, err)
	assert.True(t, got.IsCompleted)

	require.NoError(t, repo.Delete(ctx, "t1"))
	assert.ErrorIs(t, repo.Delete(ctx, "t1"), common.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, todo), common.ErrNotFound)
	_, err = repo.GetByID(ctx, "t1")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestWebSearchRepository_Create(t *testing.T) {
	repo := NewWebSearchRepository()
	ws := &models.WebSearch{Record: models.Record{ID: "w1", OwnerID: "u1"}, ReferenceLink: "https://go.dev"}
	require.NoError(t, repo.Create(context.Background(), ws))

	ws.ReferenceLink = "mutated"
	got, err := repo.GetByID(context.Background(), "w1")
	require.NoError(t, err)
	assert.Equal(t, "https://go.dev", got.ReferenceLink)
}
