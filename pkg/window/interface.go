package window

import (
	"fmt"
	"time"
)

// Handle identifies a top-level window. It is owned by the window manager;
// the value may be reused once the window is destroyed.
type Handle uint64

// String returns the handle in the hex form window managers print.
func (h Handle) String() string {
	return fmt.Sprintf("0x%x", uint64(h))
}

// Record is one window as seen during a single enumeration pass.
type Record struct {
	Handle    Handle
	Title     string
	ClassName string
	PID       int32 // 0 when the backend cannot tell
	Truncated bool  // title was cut at MaxTextUnits
}

// Snapshot is a point-in-time list of visible top-level windows.
// Records must not be modified once the snapshot is handed out.
type Snapshot struct {
	Records    []Record
	CapturedAt time.Time
}

// Find returns the record with the given handle.
func (s Snapshot) Find(h Handle) (Record, bool) {
	for _, r := range s.Records {
		if r.Handle == h {
			return r, true
		}
	}
	return Record{}, false
}

// Len returns the number of windows in the snapshot.
func (s Snapshot) Len() int {
	return len(s.Records)
}

// Enumerator lists the visible, parentless top-level windows that carry a title.
type Enumerator interface {
	Enumerate() (Snapshot, error)
}

// FocusReader reports the window that currently has input focus.
type FocusReader interface {
	FocusedWindow() (Handle, error)
}

// Actuator changes the state of a window.
type Actuator interface {
	Minimize(h Handle) error
}

// Backend is the interface that all platform implementations must satisfy
type Backend interface {
	Enumerator
	FocusReader
	Actuator

	// IsAvailable checks if this backend can run on the current system
	IsAvailable() bool

	// GetDisplayServer returns the session type ("x11" or "win32")
	GetDisplayServer() string

	// Close cleans up any resources used by the backend
	Close() error
}
