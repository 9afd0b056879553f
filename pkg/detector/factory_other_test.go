//go:build !windows

package detector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRejectsUnsupportedSessions(t *testing.T) {
	for _, session := range []string{"wayland", ""} {
		t.Run("session="+session, func(t *testing.T) {
			t.Setenv("XDG_SESSION_TYPE", session)
			t.Setenv("WAYLAND_DISPLAY", "")
			t.Setenv("DISPLAY", "")

			backend, err := New()
			assert.Nil(t, backend)
			assert.ErrorIs(t, err, ErrUnsupported)
		})
	}
}
