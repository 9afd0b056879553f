package monitor

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrinterBanner(t *testing.T) {
	var out bytes.Buffer
	NewPrinter(&out).Banner([]string{"Trae"}, []string{"WhatsApp", "Slack"})

	assert.Equal(t, "Starting window monitoring...\n"+
		"Target keywords: [\"Trae\"]\n"+
		"Ignored keywords: [\"WhatsApp\" \"Slack\"]\n"+
		"Press Ctrl+C to stop the program\n\n", out.String())
}

func TestPrinterSummary(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out)

	p.Summary(0)
	assert.Equal(t, "No other windows need to be minimized\n\n", out.String())

	out.Reset()
	p.Summary(3)
	assert.Equal(t, "Total 3 windows minimized\n\n", out.String())
}

func TestNilPrinterWriterDiscards(t *testing.T) {
	p := NewPrinter(nil)
	assert.NotPanics(t, func() {
		p.ActiveWindow("Notepad")
		p.NotTarget()
	})
}
