package filestore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipebox/internal/model"
	"recipebox/internal/store"
)

func tempStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recipes.json")
	s, err := Open(path)
	require.NoError(t, err)
	return s, path
}

func mins(n int) *int { return &n }

func TestCreateAssignsIDAndTimestamp(t *testing.T) {
	s, _ := tempStore(t)

	r, err := s.Create(context.Background(), model.Draft{
		Title: "Tomato Soup", Ingredients: "Tomato\nSalt", Instructions: "Boil\nBlend",
		Time: mins(20), Category: "Soup",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, r.ID)
	assert.False(t, r.CreatedAt.IsZero())
	assert.Equal(t, "Tomato Soup", r.Title)
	assert.Equal(t, 20, *r.Time)
}

func TestListNewestFirst(t *testing.T) {
	s, _ := tempStore(t)
	ctx := context.Background()

	first, err := s.Create(ctx, model.Draft{Title: "First", Ingredients: "a", Instructions: "b"})
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	second, err := s.Create(ctx, model.Draft{Title: "Second", Ingredients: "a", Instructions: "b"})
	require.NoError(t, err)

	recipes, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, recipes, 2)
	assert.Equal(t, second.ID, recipes[0].ID)
	assert.Equal(t, first.ID, recipes[1].ID)
}

func TestUpdatePreservesCreatedAt(t *testing.T) {
	s, _ := tempStore(t)
	ctx := context.Background()

	r, err := s.Create(ctx, model.Draft{Title: "Old", Ingredients: "a", Instructions: "b"})
	require.NoError(t, err)

	updated, err := s.Update(ctx, r.ID, model.Draft{Title: "New", Ingredients: "a", Instructions: "b"})
	require.NoError(t, err)

	assert.Equal(t, r.ID, updated.ID)
	assert.Equal(t, "New", updated.Title)
	assert.True(t, updated.CreatedAt.Equal(r.CreatedAt))
}

func TestUpdateUnknownID(t *testing.T) {
	s, _ := tempStore(t)

	_, err := s.Update(context.Background(), "ghost", model.Draft{Title: "x", Ingredients: "a", Instructions: "b"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteRemovesAndUnknownIsNoOp(t *testing.T) {
	s, _ := tempStore(t)
	ctx := context.Background()

	r, err := s.Create(ctx, model.Draft{Title: "Doomed", Ingredients: "a", Instructions: "b"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, r.ID))
	require.NoError(t, s.Delete(ctx, r.ID)) // already gone: silent no-op
	require.NoError(t, s.Delete(ctx, "never-existed"))

	recipes, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, recipes)
}

func TestPersistsAcrossReopen(t *testing.T) {
	s, path := tempStore(t)
	ctx := context.Background()

	r, err := s.Create(ctx, model.Draft{
		Title: "Keeper", Summary: "stays", Time: mins(5), Category: "Snack",
		Ingredients: "a", Instructions: "b",
	})
	require.NoError(t, err)

	reopened, err := Open(path)
	require.NoError(t, err)

	recipes, err := reopened.List(ctx)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, r.ID, recipes[0].ID)
	assert.Equal(t, "Keeper", recipes[0].Title)
	assert.Equal(t, "stays", recipes[0].Summary)
	assert.Equal(t, 5, *recipes[0].Time)
	assert.True(t, recipes[0].CreatedAt.Equal(r.CreatedAt))
}

func TestOpenMissingFileStartsEmpty(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "nope", "recipes.json"))
	require.NoError(t, err)

	recipes, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, recipes)
}
