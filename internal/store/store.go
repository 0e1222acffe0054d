// Package store defines the persistence contract shared by every backend:
// a request/response CRUD endpoint, a device-local file, or a realtime
// key-value store. Callers never branch on which one they got.
package store

import (
	"context"
	"sort"

	"recipebox/internal/model"
)

// Store is the persistence contract. Implementations assign IDs and creation
// timestamps on Create and preserve CreatedAt across Update.
type Store interface {
	// List returns every recipe, newest-first.
	List(ctx context.Context) ([]model.Recipe, error)

	// Create persists a new recipe from the draft and returns it with its
	// assigned ID and CreatedAt.
	Create(ctx context.Context, draft model.Draft) (model.Recipe, error)

	// Update replaces the editable fields of an existing recipe. Returns
	// ErrNotFound when no record has the given id.
	Update(ctx context.Context, id string, draft model.Draft) (model.Recipe, error)

	// Delete removes a recipe. Deleting an unknown id may return nil or
	// ErrNotFound depending on the backend; callers treating the record as
	// gone should accept both.
	Delete(ctx context.Context, id string) error

	Close() error
}

// Watcher is implemented by push-capable stores. The callback receives the
// full current collection (never a diff) after every mutation, including
// mutations made by other clients.
type Watcher interface {
	Subscribe(ctx context.Context, fn func([]model.Recipe)) (stop func(), err error)
}

// SortNewestFirst orders recipes descending by creation time, in place.
// Records without a timestamp sort as oldest; ties break on ID so renders
// stay stable across refreshes.
func SortNewestFirst(recipes []model.Recipe) {
	sort.SliceStable(recipes, func(i, j int) bool {
		a, b := recipes[i].CreatedAt, recipes[j].CreatedAt
		if !a.Equal(b) {
			return a.After(b)
		}
		return recipes[i].ID < recipes[j].ID
	})
}
