package gormstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipebox/internal/model"
	"recipebox/internal/store"
)

func memStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("sqlite", "file::memory:?cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	// Shared-cache memory databases persist between tests in the same
	// process; start each test clean.
	recipes, err := s.List(context.Background())
	require.NoError(t, err)
	for _, r := range recipes {
		require.NoError(t, s.Delete(context.Background(), r.ID))
	}
	return s
}

func mins(n int) *int { return &n }

func TestCreateThenListRoundTrip(t *testing.T) {
	s := memStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, model.Draft{
		Title: "Tomato Soup", Summary: "warming", Time: mins(20), Category: "Soup",
		Ingredients: "Tomato\nSalt", Instructions: "Boil\nBlend",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	recipes, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, recipes, 1)

	got := recipes[0]
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Tomato Soup", got.Title)
	assert.Equal(t, "warming", got.Summary)
	assert.Equal(t, 20, *got.Time)
	assert.Equal(t, "Soup", got.Category)
	assert.Equal(t, "Tomato\nSalt", got.Ingredients)
	assert.Equal(t, "Boil\nBlend", got.Instructions)
}

func TestListNewestFirst(t *testing.T) {
	s := memStore(t)
	ctx := context.Background()

	first, err := s.Create(ctx, model.Draft{Title: "First", Ingredients: "a", Instructions: "b"})
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	second, err := s.Create(ctx, model.Draft{Title: "Second", Ingredients: "a", Instructions: "b"})
	require.NoError(t, err)

	recipes, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, recipes, 2)
	assert.Equal(t, second.ID, recipes[0].ID)
	assert.Equal(t, first.ID, recipes[1].ID)
}

func TestUpdateChangesFieldsPreservesIdentity(t *testing.T) {
	s := memStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, model.Draft{
		Title: "Old", Summary: "to be cleared", Ingredients: "a", Instructions: "b",
	})
	require.NoError(t, err)

	updated, err := s.Update(ctx, created.ID, model.Draft{
		Title: "New", Ingredients: "a", Instructions: "b",
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "New", updated.Title)
	// Cleared optional fields actually clear.
	assert.Empty(t, updated.Summary)
	assert.Nil(t, updated.Time)
	assert.WithinDuration(t, created.CreatedAt, updated.CreatedAt, time.Second)
}

func TestUpdateUnknownID(t *testing.T) {
	s := memStore(t)
	_, err := s.Update(context.Background(), "3f5a0000-0000-0000-0000-000000000000",
		model.Draft{Title: "x", Ingredients: "a", Instructions: "b"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteThenListExcludes(t *testing.T) {
	s := memStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, model.Draft{Title: "Doomed", Ingredients: "a", Instructions: "b"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, created.ID))

	recipes, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, recipes)

	// Second delete of the same id reports not found.
	assert.ErrorIs(t, s.Delete(ctx, created.ID), store.ErrNotFound)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open("oracle", "dsn")
	assert.Error(t, err)
}
