//go:build windows

package win32

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/focuskeeper/focuskeeper/pkg/window"
)

func TestDetector(t *testing.T) {
	d, err := NewDetector()
	require.NoError(t, err)
	defer d.Close()

	assert.True(t, d.IsAvailable())
	assert.Equal(t, "win32", d.GetDisplayServer())

	snap, err := d.Enumerate()
	require.NoError(t, err)
	for _, rec := range snap.Records {
		assert.NotEmpty(t, rec.Title)
	}
}

func TestMinimizeVanishedWindow(t *testing.T) {
	d, err := NewDetector()
	require.NoError(t, err)

	err = d.Minimize(window.Handle(0))
	var actErr *window.ActuationError
	assert.ErrorAs(t, err, &actErr)
}
