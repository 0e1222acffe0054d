package app

import (
	"context"
	"errors"
	"sync"

	"recipebox/internal/model"
	"recipebox/internal/store"
)

// Modal identifies which dialog is open. Exactly one is open at a time.
type Modal int

const (
	ModalClosed Modal = iota
	ModalForm
	ModalAction
	ModalDetail
)

// FormMode distinguishes the blank add form from an edit form bound to an
// existing record.
type FormMode int

const (
	FormAdd FormMode = iota
	FormEdit
)

// Controller owns the collection and the modal state machine, and is the
// only component that talks to the store for mutations. Store calls run off
// the UI loop, so all state access is behind one mutex; the reconcile step
// after a store call re-checks the modal state, which is how a response
// arriving after the user closed the modal gets absorbed silently.
type Controller struct {
	store store.Store
	feed  *store.Feed
	col   Collection

	mu         sync.RWMutex
	modal      Modal
	formMode   FormMode
	editID     string
	activeID   string
	selectedID string
	loadErr    error
	formErr    error
	actionErr  error
}

// NewController builds a controller over the store. Call Start before use.
func NewController(s store.Store) *Controller {
	return &Controller{store: s}
}

// Start opens the snapshot feed. Pull-only stores get an initial refresh;
// push stores deliver their initial snapshot through Snapshots.
func (c *Controller) Start(ctx context.Context) error {
	feed, err := store.Watch(ctx, c.store)
	if err != nil {
		return err
	}
	c.feed = feed
	if !feed.Push() {
		c.Refresh(ctx)
	}
	return nil
}

// Stop closes the feed.
func (c *Controller) Stop() {
	if c.feed != nil {
		c.feed.Close()
	}
}

// Snapshots exposes the feed for the UI loop to wait on.
func (c *Controller) Snapshots() <-chan store.Snapshot {
	return c.feed.Snapshots()
}

// Apply folds a snapshot into the collection and clears any earlier read
// error. Stale snapshots are dropped.
func (c *Controller) Apply(snap store.Snapshot) bool {
	applied := c.col.Apply(snap)
	if applied {
		c.mu.Lock()
		c.loadErr = nil
		c.mu.Unlock()
	}
	return applied
}

// Refresh re-reads the store (pull mode only). On failure the collection
// degrades to empty and the error is kept for the renderer; stale cards are
// never shown as if they were current.
func (c *Controller) Refresh(ctx context.Context) {
	if err := c.feed.Refresh(ctx); err != nil {
		c.col.Clear()
		c.mu.Lock()
		c.loadErr = err
		c.mu.Unlock()
		return
	}
	c.applyPending()
}

// applyPending drains an already-emitted snapshot, so pull-mode refreshes
// take effect without a round-trip through the UI loop.
func (c *Controller) applyPending() {
	select {
	case snap := <-c.feed.Snapshots():
		c.Apply(snap)
	default:
	}
}

// Visible returns the collection filtered by the search query.
func (c *Controller) Visible(query string) []model.Recipe {
	return Filter(c.col.Recipes(), query)
}

// Find looks a record up in the in-memory collection.
func (c *Controller) Find(id string) (model.Recipe, bool) {
	return c.col.Find(id)
}

// OpenAdd opens the form modal blank.
func (c *Controller) OpenAdd() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.modal = ModalForm
	c.formMode = FormAdd
	c.editID = ""
	c.formErr = nil
}

// OpenEdit opens the form pre-populated from the in-memory record. When the
// record has vanished (deleted concurrently) the transition is a no-op.
func (c *Controller) OpenEdit(id string) (model.Draft, bool) {
	recipe, ok := c.col.Find(id)
	if !ok {
		return model.Draft{}, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.modal = ModalForm
	c.formMode = FormEdit
	c.editID = id
	c.formErr = nil
	return model.DraftOf(recipe), true
}

// LongPress marks the card selected and opens the action modal for it. Any
// prior selection is cleared; only one card is ever selected.
func (c *Controller) LongPress(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selectedID = id
	c.activeID = id
	c.modal = ModalAction
	c.actionErr = nil
}

// OpenDetail opens the read-only view. Unknown ids are a no-op.
func (c *Controller) OpenDetail(id string) (model.Recipe, bool) {
	recipe, ok := c.col.Find(id)
	if !ok {
		return model.Recipe{}, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.modal = ModalDetail
	c.activeID = id
	return recipe, true
}

// ChooseEdit is the action modal's edit choice: close it and open the edit
// form for the bound record.
func (c *Controller) ChooseEdit() (model.Draft, bool) {
	c.mu.Lock()
	id := c.activeID
	c.mu.Unlock()
	return c.OpenEdit(id)
}

// Delete is the action modal's delete choice. Without confirmation nothing
// happens and no store call is made. Confirmed deletes treat a vanished
// record as success; any other failure keeps the modal open with the error.
func (c *Controller) Delete(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return nil
	}

	c.mu.Lock()
	id := c.activeID
	c.mu.Unlock()

	err := c.store.Delete(ctx, id)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		c.mu.Lock()
		if c.modal == ModalAction {
			c.actionErr = err
		}
		c.mu.Unlock()
		return err
	}

	c.mu.Lock()
	if c.modal == ModalAction {
		c.reset()
	}
	c.mu.Unlock()

	if !c.feed.Push() {
		c.Refresh(ctx)
	}
	return nil
}

// Submit validates the draft and creates or updates depending on whether the
// form was opened for editing. Validation failures never reach the store.
// On success the form closes; on failure it stays open with the error, but
// only if the user hasn't closed it in the meantime.
func (c *Controller) Submit(ctx context.Context, draft model.Draft) error {
	if missing := draft.Missing(); len(missing) > 0 {
		err := &store.ValidationError{Missing: missing}
		c.mu.Lock()
		if c.modal == ModalForm {
			c.formErr = err
		}
		c.mu.Unlock()
		return err
	}

	c.mu.Lock()
	editID := c.editID
	c.mu.Unlock()

	var err error
	if editID != "" {
		_, err = c.store.Update(ctx, editID, draft)
	} else {
		_, err = c.store.Create(ctx, draft)
	}

	c.mu.Lock()
	if err != nil {
		if c.modal == ModalForm {
			c.formErr = err
		}
		c.mu.Unlock()
		return err
	}
	if c.modal == ModalForm {
		c.reset()
	}
	c.mu.Unlock()

	if !c.feed.Push() {
		c.Refresh(ctx)
	}
	return nil
}

// CloseModal closes whichever modal is open. The form's edit binding and
// errors are always cleared so an edit context can't leak into a later add.
func (c *Controller) CloseModal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}

// reset must be called with the lock held.
func (c *Controller) reset() {
	c.modal = ModalClosed
	c.formMode = FormAdd
	c.editID = ""
	c.activeID = ""
	c.selectedID = ""
	c.formErr = nil
	c.actionErr = nil
}

func (c *Controller) Modal() Modal {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.modal
}

func (c *Controller) FormMode() FormMode {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.formMode
}

func (c *Controller) EditID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.editID
}

// ActiveID is the record the open action or detail modal is bound to.
func (c *Controller) ActiveID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.activeID
}

// SelectedID is the card marked by the last long-press, if any.
func (c *Controller) SelectedID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.selectedID
}

func (c *Controller) LoadErr() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadErr
}

func (c *Controller) FormErr() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.formErr
}

func (c *Controller) ActionErr() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.actionErr
}
