package monitor

import (
	"time"

	"github.com/focuskeeper/focuskeeper/pkg/window"
)

// Status is a copy of the monitor's counters and last observations.
type Status struct {
	Running           bool          `json:"running"`
	StartedAt         time.Time     `json:"started_at"`
	DisplayServer     string        `json:"display_server"`
	FocusedHandle     window.Handle `json:"focused_handle"`
	FocusedTitle      string        `json:"focused_title"`
	FocusedClass      string        `json:"focused_class"`
	LastTarget        string        `json:"last_target,omitempty"`
	LastTargetAt      time.Time     `json:"last_target_at,omitempty"`
	FocusChanges      int64         `json:"focus_changes"`
	TargetActivations int64         `json:"target_activations"`
	Minimized         int64         `json:"minimized"`
	Failed            int64         `json:"failed"`
	EnumerationErrors int64         `json:"enumeration_errors"`
}

// StatusProvider exposes the live monitor state to other goroutines.
type StatusProvider interface {
	Status() Status
}

// Status returns a consistent copy of the current counters.
func (s *Service) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.status
	st.Running = s.running.Load()
	return st
}

func (s *Service) updateStatus(fn func(*Status)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.status)
}
