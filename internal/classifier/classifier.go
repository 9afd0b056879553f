package classifier

import (
	"fmt"
	"strings"

	"github.com/focuskeeper/focuskeeper/pkg/window"
)

// Shell chrome that is never minimized, whatever the keyword lists say.
var (
	shellTitles  = []string{"Program Manager", "Desktop"}
	shellClasses = []string{"Shell_TrayWnd"}
)

// Class is the role a window plays when focus changes.
type Class int

const (
	ClassOrdinary Class = iota
	ClassTarget
	ClassProtected
)

func (c Class) String() string {
	switch c {
	case ClassTarget:
		return "target"
	case ClassProtected:
		return "protected"
	default:
		return "ordinary"
	}
}

// KeywordTable maps each configured keyword to its lowercase form.
// It is built once and only read afterwards.
type KeywordTable struct {
	keywords []string
	lower    map[string]string
}

// NewKeywordTable precomputes the lowercase form of every keyword.
func NewKeywordTable(keywords []string) *KeywordTable {
	t := &KeywordTable{
		keywords: append([]string(nil), keywords...),
		lower:    make(map[string]string, len(keywords)),
	}
	for _, k := range keywords {
		t.lower[k] = strings.ToLower(k)
	}
	return t
}

// Keywords returns the keywords the table was built from, in order.
func (t *KeywordTable) Keywords() []string {
	return append([]string(nil), t.keywords...)
}

// Lower returns the precomputed lowercase form of keyword. Asking for a
// keyword the table was not built with is a programming error and panics.
func (t *KeywordTable) Lower(keyword string) string {
	lower, ok := t.lower[keyword]
	if !ok {
		panic(fmt.Sprintf("classifier: keyword %q is not in the keyword table", keyword))
	}
	return lower
}

// IsTarget reports whether the lowercased title contains any of keywords.
func IsTarget(rec window.Record, keywords []string, table *KeywordTable) bool {
	return containsAny(strings.ToLower(rec.Title), keywords, table)
}

// ShouldSkip reports whether rec must never be minimized: untitled windows,
// desktop shell chrome and windows matching an ignored keyword.
func ShouldSkip(rec window.Record, ignored []string, table *KeywordTable) bool {
	if rec.Title == "" {
		return true
	}
	for _, s := range shellTitles {
		if strings.Contains(rec.Title, s) {
			return true
		}
	}
	for _, s := range shellClasses {
		if strings.Contains(rec.ClassName, s) {
			return true
		}
	}
	return containsAny(strings.ToLower(rec.Title), ignored, table)
}

func containsAny(titleLower string, keywords []string, table *KeywordTable) bool {
	for _, k := range keywords {
		if strings.Contains(titleLower, table.Lower(k)) {
			return true
		}
	}
	return false
}

// Classifier holds the target and ignored keyword tables.
type Classifier struct {
	targets []string
	ignored []string

	targetTable  *KeywordTable
	ignoredTable *KeywordTable
}

// New builds both keyword tables up front.
func New(targets, ignored []string) *Classifier {
	c := &Classifier{
		targetTable:  NewKeywordTable(targets),
		ignoredTable: NewKeywordTable(ignored),
	}
	c.targets = c.targetTable.Keywords()
	c.ignored = c.ignoredTable.Keywords()
	return c
}

func (c *Classifier) Targets() []string { return append([]string(nil), c.targets...) }
func (c *Classifier) Ignored() []string { return append([]string(nil), c.ignored...) }

func (c *Classifier) IsTarget(rec window.Record) bool {
	return IsTarget(rec, c.targets, c.targetTable)
}

func (c *Classifier) ShouldSkip(rec window.Record) bool {
	return ShouldSkip(rec, c.ignored, c.ignoredTable)
}

// Classify reports a window's role. A window matching both a target and an
// ignored keyword is a target; it is still never minimized.
func (c *Classifier) Classify(rec window.Record) Class {
	if c.IsTarget(rec) {
		return ClassTarget
	}
	if c.ShouldSkip(rec) {
		return ClassProtected
	}
	return ClassOrdinary
}

// Eligible returns the windows of snap to minimize while focused is active:
// every window other than focused that is neither a target nor skipped.
func (c *Classifier) Eligible(snap window.Snapshot, focused window.Handle) []window.Record {
	var out []window.Record
	for _, rec := range snap.Records {
		if rec.Handle == focused {
			continue
		}
		if c.IsTarget(rec) {
			continue
		}
		if c.ShouldSkip(rec) {
			continue
		}
		out = append(out, rec)
	}
	return out
}
