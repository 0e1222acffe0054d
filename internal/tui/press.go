package tui

import "time"

// longPressThreshold is how long a press must be held before it counts as a
// long-press rather than a click.
const longPressThreshold = 600 * time.Millisecond

// pressTracker turns press/release events into at most one pending
// long-press timer. Each press mints a new token; an expiry carrying a stale
// token belongs to an earlier press and is ignored, which is what clearing a
// timeout would do. Starting a new press implicitly cancels the previous one.
type pressTracker struct {
	id     string
	token  int
	active bool
}

// press records the start of a press on the given card and returns the token
// the expiry must present.
func (p *pressTracker) press(id string) int {
	p.token++
	p.id = id
	p.active = true
	return p.token
}

// release cancels the pending press, if any.
func (p *pressTracker) release() {
	p.active = false
}

// expire resolves a timer firing. It reports the pressed card only when the
// token is current and the press is still held.
func (p *pressTracker) expire(token int) (string, bool) {
	if !p.active || token != p.token {
		return "", false
	}
	p.active = false
	return p.id, true
}

// held reports whether a press is in flight on the given card.
func (p *pressTracker) held() (string, bool) {
	if !p.active {
		return "", false
	}
	return p.id, true
}
