package snapshot

import (
	"fmt"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/focuskeeper/focuskeeper/pkg/window"
)

type fakeEnumerator struct {
	calls int
	err   error
}

func (f *fakeEnumerator) Enumerate() (window.Snapshot, error) {
	f.calls++
	if f.err != nil {
		return window.Snapshot{}, f.err
	}
	return window.Snapshot{Records: []window.Record{
		{Handle: window.Handle(f.calls), Title: fmt.Sprintf("pass %d", f.calls)},
	}}, nil
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestCache(enum *fakeEnumerator) (*Cache, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	return New(enum, DefaultValidity, WithClock(clock.Now)), clock
}

func TestFirstCallAlwaysEnumerates(t *testing.T) {
	enum := &fakeEnumerator{}
	cache, clock := newTestCache(enum)

	snap, err := cache.Get()
	require.NoError(t, err)
	assert.Equal(t, 1, enum.calls)
	assert.Equal(t, "pass 1", snap.Records[0].Title)
	assert.Equal(t, clock.Now(), snap.CapturedAt)
}

func TestCallsWithinValidityShareOneEnumeration(t *testing.T) {
	enum := &fakeEnumerator{}
	cache, clock := newTestCache(enum)

	first, err := cache.Get()
	require.NoError(t, err)

	clock.Advance(10 * time.Millisecond)
	second, err := cache.Get()
	require.NoError(t, err)

	assert.Equal(t, 1, enum.calls)
	assert.Equal(t, first, second)
}

func TestBoundaryIsStillFresh(t *testing.T) {
	enum := &fakeEnumerator{}
	cache, clock := newTestCache(enum)

	_, err := cache.Get()
	require.NoError(t, err)

	clock.Advance(DefaultValidity)
	_, err = cache.Get()
	require.NoError(t, err)
	assert.Equal(t, 1, enum.calls)
}

func TestCallsSpanningValidityEnumerateAgain(t *testing.T) {
	enum := &fakeEnumerator{}
	cache, clock := newTestCache(enum)

	_, err := cache.Get()
	require.NoError(t, err)

	clock.Advance(DefaultValidity + time.Millisecond)
	snap, err := cache.Get()
	require.NoError(t, err)

	assert.Equal(t, 2, enum.calls)
	assert.Equal(t, 2, cache.Refreshes())
	assert.Equal(t, "pass 2", snap.Records[0].Title)
}

func TestFailedRefreshKeepsPreviousSnapshot(t *testing.T) {
	enum := &fakeEnumerator{}
	cache, clock := newTestCache(enum)

	_, err := cache.Get()
	require.NoError(t, err)

	boom := &window.EnumerationError{Op: "list clients", Err: errors.New("connection lost")}
	enum.err = boom
	clock.Advance(time.Second)

	_, err = cache.Get()
	require.Error(t, err)
	var enumErr *window.EnumerationError
	assert.True(t, errors.As(err, &enumErr))

	// The failed pass did not move the timestamp, so the next call retries.
	enum.err = nil
	snap, err := cache.Get()
	require.NoError(t, err)
	assert.Equal(t, 3, enum.calls)
	assert.Equal(t, "pass 3", snap.Records[0].Title)
}

func TestFirstCallFailureLeavesCacheUnprimed(t *testing.T) {
	enum := &fakeEnumerator{err: errors.New("no display")}
	cache, _ := newTestCache(enum)

	_, err := cache.Get()
	require.Error(t, err)

	enum.err = nil
	_, err = cache.Get()
	require.NoError(t, err)
	assert.Equal(t, 2, enum.calls)
}

func TestZeroValidityAlwaysEnumerates(t *testing.T) {
	enum := &fakeEnumerator{}
	clock := &fakeClock{t: time.Now()}
	cache := New(enum, 0, WithClock(clock.Now))

	_, _ = cache.Get()
	clock.Advance(time.Nanosecond)
	_, _ = cache.Get()

	assert.Equal(t, 2, enum.calls)
}
