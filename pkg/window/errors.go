package window

import "fmt"

// EnumerationError reports that the window system failed to list windows.
type EnumerationError struct {
	Op  string
	Err error
}

func (e *EnumerationError) Error() string {
	return fmt.Sprintf("enumerate windows: %s: %v", e.Op, e.Err)
}

func (e *EnumerationError) Unwrap() error {
	return e.Err
}

// ActuationError reports that a single minimize request failed.
type ActuationError struct {
	Handle Handle
	Title  string
	Err    error
}

func (e *ActuationError) Error() string {
	if e.Title != "" {
		return fmt.Sprintf("minimize %s (%q): %v", e.Handle, e.Title, e.Err)
	}
	return fmt.Sprintf("minimize %s: %v", e.Handle, e.Err)
}

func (e *ActuationError) Unwrap() error {
	return e.Err
}
