// Package redisstore is the realtime backend: each recipe lives as one field
// of a redis hash, and every mutation publishes on a change channel so all
// subscribed clients converge on the same snapshot.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"recipebox/internal/model"
	"recipebox/internal/store"
)

const (
	hashKey       = "recipebox:recipes"
	changeChannel = "recipebox:recipes:changed"
)

// Store keeps recipes in redis and implements store.Watcher.
type Store struct {
	client *redis.Client
}

// Connect builds a client from either a redis URL or addr/password/db,
// verifies the connection, and returns the store. URL wins when both are
// set, mirroring production deployments that inject a single REDIS_URL.
func Connect(url, addr, password string, db int) (*Store, error) {
	opts := &redis.Options{Addr: addr, Password: password, DB: db}
	if url != "" {
		parsed, err := redis.ParseURL(url)
		if err != nil {
			return nil, fmt.Errorf("parse redis URL: %w", err)
		}
		opts = parsed
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, &store.ConnectivityError{Op: "connect to redis", Err: err}
	}
	return New(client), nil
}

// New wraps an existing client.
func New(client *redis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) List(ctx context.Context) ([]model.Recipe, error) {
	fields, err := s.client.HGetAll(ctx, hashKey).Result()
	if err != nil {
		return nil, &store.ConnectivityError{Op: "list recipes", Err: err}
	}

	recipes := make([]model.Recipe, 0, len(fields))
	for id, raw := range fields {
		var recipe model.Recipe
		if err := json.Unmarshal([]byte(raw), &recipe); err != nil {
			return nil, &store.ConnectivityError{Op: "decode recipe", Err: fmt.Errorf("%s: %w", id, err)}
		}
		recipes = append(recipes, recipe)
	}
	store.SortNewestFirst(recipes)
	return recipes, nil
}

func (s *Store) Create(ctx context.Context, draft model.Draft) (model.Recipe, error) {
	recipe := model.Recipe{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
	}
	draft.Apply(&recipe)

	if err := s.put(ctx, recipe); err != nil {
		return model.Recipe{}, err
	}
	s.notify(ctx)
	return recipe, nil
}

func (s *Store) Update(ctx context.Context, id string, draft model.Draft) (model.Recipe, error) {
	raw, err := s.client.HGet(ctx, hashKey, id).Result()
	if errors.Is(err, redis.Nil) {
		return model.Recipe{}, store.ErrNotFound
	}
	if err != nil {
		return model.Recipe{}, &store.ConnectivityError{Op: "load recipe", Err: err}
	}

	var recipe model.Recipe
	if err := json.Unmarshal([]byte(raw), &recipe); err != nil {
		return model.Recipe{}, &store.ConnectivityError{Op: "decode recipe", Err: err}
	}
	draft.Apply(&recipe)

	if err := s.put(ctx, recipe); err != nil {
		return model.Recipe{}, err
	}
	s.notify(ctx)
	return recipe, nil
}

// Delete removes the hash field. Removing a missing field is a no-op, so
// deleting an already-gone record succeeds silently.
func (s *Store) Delete(ctx context.Context, id string) error {
	removed, err := s.client.HDel(ctx, hashKey, id).Result()
	if err != nil {
		return &store.ConnectivityError{Op: "delete recipe", Err: err}
	}
	if removed > 0 {
		s.notify(ctx)
	}
	return nil
}

// Subscribe delivers the current snapshot immediately, then a fresh one per
// change notification. Fetches run serially in one goroutine and pending
// notifications are coalesced first, so a later snapshot can never be
// overtaken by an earlier fetch still in flight.
func (s *Store) Subscribe(ctx context.Context, fn func([]model.Recipe)) (func(), error) {
	pubsub := s.client.Subscribe(ctx, changeChannel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, &store.ConnectivityError{Op: "subscribe to changes", Err: err}
	}

	done := make(chan struct{})
	go func() {
		ch := pubsub.Channel()
		if recipes, err := s.List(ctx); err == nil {
			fn(recipes)
		}
		for {
			select {
			case <-done:
				return
			case _, ok := <-ch:
				if !ok {
					return
				}
				// Coalesce bursts into a single fetch.
				for drained := false; !drained; {
					select {
					case _, ok = <-ch:
						if !ok {
							return
						}
					default:
						drained = true
					}
				}
				if recipes, err := s.List(ctx); err == nil {
					fn(recipes)
				}
			}
		}
	}()

	stop := func() {
		close(done)
		_ = pubsub.Close()
	}
	return stop, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) put(ctx context.Context, recipe model.Recipe) error {
	data, err := json.Marshal(recipe)
	if err != nil {
		return &store.ConnectivityError{Op: "encode recipe", Err: err}
	}
	if err := s.client.HSet(ctx, hashKey, recipe.ID, data).Err(); err != nil {
		return &store.ConnectivityError{Op: "save recipe", Err: err}
	}
	return nil
}

func (s *Store) notify(ctx context.Context) {
	// Best effort: a lost notification only delays convergence until the
	// next one.
	_ = s.client.Publish(ctx, changeChannel, "changed").Err()
}
