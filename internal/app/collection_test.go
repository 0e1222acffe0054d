package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"recipebox/internal/model"
	"recipebox/internal/store"
)

func snap(seq uint64, recipes ...model.Recipe) store.Snapshot {
	return store.Snapshot{Seq: seq, Recipes: recipes}
}

func TestCollectionSortsNewestFirst(t *testing.T) {
	var c Collection
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	applied := c.Apply(snap(1,
		model.Recipe{ID: "old", CreatedAt: base},
		model.Recipe{ID: "new", CreatedAt: base.Add(time.Hour)},
		model.Recipe{ID: "mid", CreatedAt: base.Add(time.Minute)},
	))
	assert.True(t, applied)

	recipes := c.Recipes()
	assert.Equal(t, "new", recipes[0].ID)
	assert.Equal(t, "mid", recipes[1].ID)
	assert.Equal(t, "old", recipes[2].ID)
}

func TestCollectionZeroTimestampSortsOldest(t *testing.T) {
	var c Collection
	c.Apply(snap(1,
		model.Recipe{ID: "untimed"},
		model.Recipe{ID: "timed", CreatedAt: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
	))

	recipes := c.Recipes()
	assert.Equal(t, "timed", recipes[0].ID)
	assert.Equal(t, "untimed", recipes[1].ID)
}

func TestCollectionDiscardsStaleSnapshots(t *testing.T) {
	var c Collection

	assert.True(t, c.Apply(snap(2, model.Recipe{ID: "later"})))

	// A slower fetch that started earlier finally lands: dropped.
	assert.False(t, c.Apply(snap(1, model.Recipe{ID: "earlier"})))

	recipes := c.Recipes()
	assert.Len(t, recipes, 1)
	assert.Equal(t, "later", recipes[0].ID)

	// Replaying the current snapshot is also a no-op.
	assert.False(t, c.Apply(snap(2, model.Recipe{ID: "replay"})))
}

func TestCollectionFind(t *testing.T) {
	var c Collection
	c.Apply(snap(1, model.Recipe{ID: "a", Title: "A"}, model.Recipe{ID: "b", Title: "B"}))

	r, ok := c.Find("b")
	assert.True(t, ok)
	assert.Equal(t, "B", r.Title)

	_, ok = c.Find("missing")
	assert.False(t, ok)
}

func TestCollectionClear(t *testing.T) {
	var c Collection
	c.Apply(snap(1, model.Recipe{ID: "a"}))
	c.Clear()
	assert.Zero(t, c.Len())

	// Clearing does not reset the sequence guard.
	assert.False(t, c.Apply(snap(1, model.Recipe{ID: "a"})))
	assert.True(t, c.Apply(snap(2, model.Recipe{ID: "a"})))
}
