package window

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// MaxTextUnits bounds how much of a title or class name is read from the
// window system. Longer text is cut, which is not an error.
const MaxTextUnits = 256

// TextBufferUnits sizes a NUL-terminated UTF-16 buffer with one unit past
// MaxTextUnits, so a cut title can be told apart from one that fits exactly.
const TextBufferUnits = MaxTextUnits + 2

func trimNUL(raw []byte) []byte {
	for len(raw) > 0 && raw[len(raw)-1] == 0 {
		raw = raw[:len(raw)-1]
	}
	return raw
}

// DecodeUTF8 turns a raw property value into text of at most limit bytes.
// Trailing NULs are dropped and invalid sequences become U+FFFD. The flag
// reports whether the value was cut.
func DecodeUTF8(raw []byte, limit int) (string, bool) {
	raw = trimNUL(raw)

	truncated := false
	if limit >= 0 && len(raw) > limit {
		truncated = true
		cut := limit
		for cut > 0 && !utf8.RuneStart(raw[cut]) {
			cut--
		}
		raw = raw[:cut]
	}

	return strings.ToValidUTF8(string(raw), "�"), truncated
}

// DecodeLatin1 turns an ISO-8859-1 value into text of at most limit
// characters. Trailing NULs are dropped.
func DecodeLatin1(raw []byte, limit int) (string, bool) {
	raw = trimNUL(raw)

	truncated := false
	if limit >= 0 && len(raw) > limit {
		truncated = true
		raw = raw[:limit]
	}

	// Every byte maps to a code point, so decoding cannot fail.
	out, _ := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	return string(out), truncated
}

// DecodeUTF16 turns the first n units of buf into text of at most limit
// units. The flag reports whether n exceeded limit; a high surrogate left
// dangling by the cut is dropped.
func DecodeUTF16(buf []uint16, n, limit int) (string, bool) {
	n = max(0, min(n, len(buf)))

	truncated := limit >= 0 && n > limit
	units := buf[:n]
	if truncated {
		units = units[:limit]
		if len(units) > 0 && utf16.IsSurrogate(rune(units[len(units)-1])) && units[len(units)-1] < 0xdc00 {
			units = units[:len(units)-1]
		}
	}

	return string(utf16.Decode(units)), truncated
}
