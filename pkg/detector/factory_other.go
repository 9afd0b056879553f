//go:build !windows

package detector

import (
	"github.com/pkg/errors"

	"github.com/focuskeeper/focuskeeper/pkg/integrations/x11"
	"github.com/focuskeeper/focuskeeper/pkg/window"
)

// ErrUnsupported is returned when the session cannot be driven. Wayland
// does not let clients list or minimize other clients' windows.
var ErrUnsupported = errors.New("unsupported display server")

// New returns the backend for the current session.
func New() (window.Backend, error) {
	switch ds := DetectDisplayServer(); ds {
	case "x11":
		d, err := x11.NewDetector()
		if err != nil {
			return nil, err
		}
		return d, nil
	default:
		return nil, errors.Wrapf(ErrUnsupported, "session type %q", ds)
	}
}
