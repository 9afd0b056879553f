package monitor

import (
	"fmt"
	"io"
	"sync"
)

// Printer writes the human-readable status lines of the monitor. The
// wording is for people; nothing should parse it.
type Printer struct {
	mu  sync.Mutex
	out io.Writer
}

// NewPrinter returns a Printer writing to w. A nil w discards output.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = io.Discard
	}
	return &Printer{out: w}
}

func (p *Printer) printf(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, format, args...)
}

func (p *Printer) Banner(targets, ignored []string) {
	p.printf("Starting window monitoring...\n")
	p.printf("Target keywords: %q\n", targets)
	p.printf("Ignored keywords: %q\n", ignored)
	p.printf("Press Ctrl+C to stop the program\n\n")
}

func (p *Printer) ActiveWindow(title string) {
	p.printf("Active window: %s\n", title)
}

func (p *Printer) TargetDetected(title string) {
	p.printf("✓ Target window detected: %s\n", title)
}

func (p *Printer) NotTarget() {
	p.printf("This window is not a target window\n\n")
}

func (p *Printer) Minimized(title string) {
	p.printf("  → Minimized: %s\n", title)
}

func (p *Printer) Summary(minimized int) {
	if minimized > 0 {
		p.printf("Total %d windows minimized\n\n", minimized)
		return
	}
	p.printf("No other windows need to be minimized\n\n")
}
