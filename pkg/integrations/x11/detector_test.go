package x11

import (
	"os"
	"strings"
	"testing"

	"github.com/jezek/xgb/xproto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/focuskeeper/focuskeeper/pkg/window"
)

func TestParseWMClass(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"instance and class", "navigator\x00Firefox\x00", "Firefox"},
		{"without trailing nul", "code\x00Code", "Code"},
		{"empty class", "xterm\x00\x00", "xterm"},
		{"instance only", "xclock\x00", "xclock"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseWMClass([]byte(tt.raw), window.DecodeLatin1))
		})
	}
}

func TestParseWMClassCutsLongValues(t *testing.T) {
	raw := "a\x00" + strings.Repeat("C", 400) + "\x00"
	assert.Len(t, parseWMClass([]byte(raw), window.DecodeLatin1), 256)
}

func TestParseWMClassEncodings(t *testing.T) {
	latin1 := []byte{'c', 'a', 'f', 'e', 0, 'C', 'a', 'f', 0xe9, 0}
	assert.Equal(t, "Café", parseWMClass(latin1, window.DecodeLatin1))

	utf8 := []byte("cafe\x00Café\x00")
	assert.Equal(t, "Café", parseWMClass(utf8, window.DecodeUTF8))
}

func TestDecodeTextByPropertyType(t *testing.T) {
	d := &Detector{atoms: map[string]xproto.Atom{"UTF8_STRING": 300}}

	title, _ := d.decodeText(xproto.AtomString)([]byte{'C', 'a', 'f', 0xe9}, window.MaxTextUnits)
	assert.Equal(t, "Café", title)

	title, _ = d.decodeText(300)([]byte("Café"), window.MaxTextUnits)
	assert.Equal(t, "Café", title)
}

func TestDecodeWindows(t *testing.T) {
	raw := []byte{
		0x01, 0x00, 0x40, 0x00,
		0xff, 0xff, 0xff, 0x07,
		0x02, 0x00, // partial trailing unit
	}

	assert.Equal(t, []xproto.Window{0x400001, 0x7ffffff}, decodeWindows(raw))
	assert.Empty(t, decodeWindows(nil))
}

func TestTextLengthCoversLimit(t *testing.T) {
	assert.Greater(t, textLength*4, 256)
}

func TestDetectorAgainstLiveDisplay(t *testing.T) {
	if os.Getenv("DISPLAY") == "" {
		t.Skip("no X display")
	}

	d, err := NewDetector()
	if err != nil {
		t.Skipf("X server not reachable: %v", err)
	}
	defer d.Close()

	assert.True(t, d.IsAvailable())
	assert.Equal(t, "x11", d.GetDisplayServer())

	snap, err := d.Enumerate()
	require.NoError(t, err)
	for _, rec := range snap.Records {
		assert.NotEmpty(t, rec.Title)
		assert.NotZero(t, rec.Handle)
	}

	_, err = d.FocusedWindow()
	assert.NoError(t, err)
}
