package store

import (
	"context"
	"sync/atomic"

	"recipebox/internal/model"
)

// Snapshot is a full point-in-time copy of the collection. Seq increases
// with every emission so consumers can discard snapshots that arrive out of
// order.
type Snapshot struct {
	Seq     uint64
	Recipes []model.Recipe
}

// Feed unifies pull and push refresh behind one subscription. Push-capable
// stores emit a snapshot whenever their subscription fires; for everything
// else each Refresh call is a one-shot subscription producing exactly one
// snapshot. Consumers read Snapshots and never ask which mode they are in.
type Feed struct {
	store Store
	snaps chan Snapshot
	seq   atomic.Uint64
	push  bool
	stop  func()
}

// Watch wraps a store in a Feed. For Watcher stores the subscription starts
// immediately and delivers the initial snapshot; otherwise the caller drives
// the feed with Refresh.
func Watch(ctx context.Context, s Store) (*Feed, error) {
	f := &Feed{
		store: s,
		snaps: make(chan Snapshot, 1),
	}
	if w, ok := s.(Watcher); ok {
		stop, err := w.Subscribe(ctx, f.emit)
		if err != nil {
			return nil, err
		}
		f.push = true
		f.stop = stop
	}
	return f, nil
}

// Snapshots delivers collection snapshots. Only the latest unconsumed
// snapshot is retained; a slow consumer sees the newest state, not a replay.
func (f *Feed) Snapshots() <-chan Snapshot {
	return f.snaps
}

// Push reports whether the underlying store notifies on its own. When true,
// local mutations must not refresh the collection directly; the subsequent
// push does.
func (f *Feed) Push() bool {
	return f.push
}

// Refresh lists the store and emits the result as a snapshot. In push mode
// it is a no-op: the subscription is the only source of truth.
func (f *Feed) Refresh(ctx context.Context) error {
	if f.push {
		return nil
	}
	recipes, err := f.store.List(ctx)
	if err != nil {
		return err
	}
	f.emit(recipes)
	return nil
}

// Close stops the subscription, if any. The underlying store is left open.
func (f *Feed) Close() {
	if f.stop != nil {
		f.stop()
	}
}

func (f *Feed) emit(recipes []model.Recipe) {
	snap := Snapshot{Seq: f.seq.Add(1), Recipes: recipes}
	for {
		select {
		case f.snaps <- snap:
			return
		default:
			// Drop the stale queued snapshot; last write wins.
			select {
			case <-f.snaps:
			default:
			}
		}
	}
}
