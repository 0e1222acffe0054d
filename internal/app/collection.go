// Package app holds the UI-independent application state: the in-memory
// collection, the search filter and the modal controller. The terminal
// front-end renders from here and pushes events back in.
package app

import (
	"sync"

	"recipebox/internal/model"
	"recipebox/internal/store"
)

// Collection is the single in-memory owner of the recipe list. It is only
// ever replaced wholesale by a snapshot, never patched field-by-field, and
// snapshots that arrive out of order are dropped.
type Collection struct {
	mu      sync.RWMutex
	recipes []model.Recipe
	lastSeq uint64
}

// Apply replaces the collection with the snapshot's contents, sorted
// newest-first. Returns false when the snapshot is stale, i.e. an earlier
// one has already been superseded.
func (c *Collection) Apply(snap store.Snapshot) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if snap.Seq <= c.lastSeq {
		return false
	}
	c.lastSeq = snap.Seq

	c.recipes = make([]model.Recipe, len(snap.Recipes))
	copy(c.recipes, snap.Recipes)
	store.SortNewestFirst(c.recipes)
	return true
}

// Clear empties the collection, used when a read fails and the display
// degrades to an error message.
func (c *Collection) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recipes = nil
}

// Recipes returns a copy of the current ordered list.
func (c *Collection) Recipes() []model.Recipe {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]model.Recipe, len(c.recipes))
	copy(out, c.recipes)
	return out
}

// Find returns the record with the given id, if present.
func (c *Collection) Find(id string) (model.Recipe, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, r := range c.recipes {
		if r.ID == id {
			return r, true
		}
	}
	return model.Recipe{}, false
}

// Len reports the number of recipes.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.recipes)
}
