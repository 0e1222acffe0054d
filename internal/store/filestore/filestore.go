// Package filestore keeps the whole collection as one JSON blob at a fixed
// path, the device-local backend. Load-modify-persist under a single lock is
// plenty at this collection size.
package filestore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"recipebox/internal/model"
	"recipebox/internal/store"
)

// Store persists recipes in a single file.
type Store struct {
	path string

	mu      sync.Mutex
	recipes []model.Recipe
}

// Open reads the blob at path, creating an empty collection when the file
// does not exist yet.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, &store.ConnectivityError{Op: "read recipe file", Err: err}
	}
	if err := json.Unmarshal(data, &s.recipes); err != nil {
		return nil, &store.ConnectivityError{Op: "decode recipe file", Err: fmt.Errorf("%s: %w", path, err)}
	}
	return s, nil
}

func (s *Store) List(ctx context.Context) ([]model.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Recipe, len(s.recipes))
	copy(out, s.recipes)
	store.SortNewestFirst(out)
	return out, nil
}

func (s *Store) Create(ctx context.Context, draft model.Draft) (model.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recipe := model.Recipe{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
	}
	draft.Apply(&recipe)

	s.recipes = append(s.recipes, recipe)
	if err := s.persist(); err != nil {
		s.recipes = s.recipes[:len(s.recipes)-1]
		return model.Recipe{}, err
	}
	return recipe, nil
}

func (s *Store) Update(ctx context.Context, id string, draft model.Draft) (model.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.recipes {
		if s.recipes[i].ID != id {
			continue
		}
		prev := s.recipes[i]
		draft.Apply(&s.recipes[i])
		if err := s.persist(); err != nil {
			s.recipes[i] = prev
			return model.Recipe{}, err
		}
		return s.recipes[i], nil
	}
	return model.Recipe{}, store.ErrNotFound
}

// Delete removes the record if present. Unknown ids are a silent no-op,
// matching how removing a missing entry from a local blob behaves.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.recipes {
		if s.recipes[i].ID == id {
			prev := s.recipes
			s.recipes = append(s.recipes[:i:i], s.recipes[i+1:]...)
			if err := s.persist(); err != nil {
				s.recipes = prev
				return err
			}
			return nil
		}
	}
	return nil
}

func (s *Store) Close() error {
	return nil
}

// persist writes the blob to a temp file and renames it into place, so a
// crash mid-write never corrupts the collection.
func (s *Store) persist() error {
	data, err := json.MarshalIndent(s.recipes, "", "  ")
	if err != nil {
		return &store.ConnectivityError{Op: "encode recipes", Err: err}
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &store.ConnectivityError{Op: "create data directory", Err: err}
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return &store.ConnectivityError{Op: "write recipe file", Err: err}
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return &store.ConnectivityError{Op: "replace recipe file", Err: err}
	}
	return nil
}
