//go:build windows

package detector

import (
	"github.com/focuskeeper/focuskeeper/pkg/integrations/win32"
	"github.com/focuskeeper/focuskeeper/pkg/window"
)

// New returns the user32 backend.
func New() (window.Backend, error) {
	d, err := win32.NewDetector()
	if err != nil {
		return nil, err
	}
	return d, nil
}
