package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPressFiresAfterThreshold(t *testing.T) {
	var p pressTracker

	token := p.press("card-1")
	id, ok := p.expire(token)
	assert.True(t, ok)
	assert.Equal(t, "card-1", id)

	// A timer only fires once.
	_, ok = p.expire(token)
	assert.False(t, ok)
}

func TestReleaseBeforeThresholdCancels(t *testing.T) {
	var p pressTracker

	token := p.press("card-1")
	p.release()

	_, ok := p.expire(token)
	assert.False(t, ok)
}

func TestNewPressInvalidatesPendingTimer(t *testing.T) {
	var p pressTracker

	first := p.press("card-1")
	second := p.press("card-2")

	// The first timer fires late: stale token, ignored.
	_, ok := p.expire(first)
	assert.False(t, ok)

	// The second press is still live.
	id, ok := p.expire(second)
	assert.True(t, ok)
	assert.Equal(t, "card-2", id)
}

func TestHeldReportsCurrentPress(t *testing.T) {
	var p pressTracker

	_, held := p.held()
	assert.False(t, held)

	p.press("card-1")
	id, held := p.held()
	assert.True(t, held)
	assert.Equal(t, "card-1", id)

	p.release()
	_, held = p.held()
	assert.False(t, held)
}
