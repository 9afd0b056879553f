package snapshot

import (
	"time"

	"github.com/pkg/errors"

	"github.com/focuskeeper/focuskeeper/pkg/window"
)

// DefaultValidity is how long an enumeration is reused.
const DefaultValidity = 50 * time.Millisecond

// Cache serves a memoized window snapshot for a fixed validity window.
// It only expires by age and is meant for a single owner.
type Cache struct {
	enumerator window.Enumerator
	validity   time.Duration
	now        func() time.Time

	snapshot   window.Snapshot
	lastUpdate time.Time
	primed     bool
	refreshes  int
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// New wraps enumerator. With a zero validity every call that observes a
// later clock reading enumerates again.
func New(enumerator window.Enumerator, validity time.Duration, opts ...Option) *Cache {
	c := &Cache{
		enumerator: enumerator,
		validity:   validity,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the stored snapshot, enumerating again when it is older than
// the validity window. The first call always enumerates. On failure the
// previous snapshot is kept and the error is returned.
func (c *Cache) Get() (window.Snapshot, error) {
	now := c.now()
	if c.primed && now.Sub(c.lastUpdate) <= c.validity {
		return c.snapshot, nil
	}

	snap, err := c.enumerator.Enumerate()
	if err != nil {
		return window.Snapshot{}, errors.Wrap(err, "failed to refresh window snapshot")
	}
	if snap.CapturedAt.IsZero() {
		snap.CapturedAt = now
	}

	c.snapshot = snap
	c.lastUpdate = now
	c.primed = true
	c.refreshes++
	return c.snapshot, nil
}

// Refreshes returns how many enumerations the cache has performed.
func (c *Cache) Refreshes() int {
	return c.refreshes
}
