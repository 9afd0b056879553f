package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/focuskeeper/focuskeeper/pkg/window"
)

func rec(h window.Handle, title, class string) window.Record {
	return window.Record{Handle: h, Title: title, ClassName: class}
}

func TestIsTarget(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		keywords []string
		want     bool
	}{
		{name: "exact case", title: "Trae - project", keywords: []string{"Trae"}, want: true},
		{name: "upper title", title: "TRAE Editor", keywords: []string{"trae"}, want: true},
		{name: "mixed keyword", title: "trae editor", keywords: []string{"tRaE"}, want: true},
		{name: "substring", title: "Untraeable", keywords: []string{"trae"}, want: true},
		{name: "second keyword", title: "Visual Studio Code", keywords: []string{"Trae", "code"}, want: true},
		{name: "no match", title: "Notepad", keywords: []string{"Trae"}, want: false},
		{name: "no keywords", title: "Trae", keywords: nil, want: false},
		{name: "empty title", title: "", keywords: []string{"Trae"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := NewKeywordTable(tt.keywords)
			got := IsTarget(rec(1, tt.title, ""), tt.keywords, table)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestShouldSkip(t *testing.T) {
	ignored := []string{"WhatsApp"}
	table := NewKeywordTable(ignored)
	empty := NewKeywordTable(nil)

	tests := []struct {
		name    string
		record  window.Record
		ignored []string
		table   *KeywordTable
		want    bool
	}{
		{name: "empty title", record: rec(1, "", "Notepad"), ignored: ignored, table: table, want: true},
		{name: "empty title no keywords", record: rec(1, "", ""), table: empty, want: true},
		{name: "program manager", record: rec(1, "Program Manager", "Progman"), table: empty, want: true},
		{name: "desktop in title", record: rec(1, "Remote Desktop Connection", "TscShellContainerClass"), table: empty, want: true},
		{name: "tray class", record: rec(1, "Taskbar", "Shell_TrayWnd"), table: empty, want: true},
		{name: "secondary tray class", record: rec(1, "x", "Shell_TrayWnd2"), table: empty, want: true},
		{name: "ignored keyword", record: rec(1, "WhatsApp", "Chrome_WidgetWin_1"), ignored: ignored, table: table, want: true},
		{name: "ignored keyword case", record: rec(1, "(3) whatsapp web", ""), ignored: ignored, table: table, want: true},
		{name: "shell literal is case sensitive", record: rec(1, "my desktop notes", ""), table: empty, want: false},
		{name: "ordinary", record: rec(1, "Notepad", "Notepad"), ignored: ignored, table: table, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldSkip(tt.record, tt.ignored, tt.table))
		})
	}
}

func TestKeywordTableLowerPanicsOnUnknownKeyword(t *testing.T) {
	table := NewKeywordTable([]string{"Trae"})

	assert.Equal(t, "trae", table.Lower("Trae"))
	assert.PanicsWithValue(t, `classifier: keyword "trae" is not in the keyword table`, func() {
		table.Lower("trae")
	})
	assert.Panics(t, func() {
		IsTarget(rec(1, "Notepad", ""), []string{"Notepad"}, table)
	})
}

func TestKeywordTableIsACopy(t *testing.T) {
	keywords := []string{"Trae"}
	table := NewKeywordTable(keywords)
	keywords[0] = "Other"

	assert.Equal(t, []string{"Trae"}, table.Keywords())
}

func TestClassify(t *testing.T) {
	c := New([]string{"Trae"}, []string{"WhatsApp"})

	assert.Equal(t, ClassTarget, c.Classify(rec(1, "Trae - project", "")))
	assert.Equal(t, ClassProtected, c.Classify(rec(2, "WhatsApp", "")))
	assert.Equal(t, ClassProtected, c.Classify(rec(3, "Program Manager", "Progman")))
	assert.Equal(t, ClassOrdinary, c.Classify(rec(4, "Notepad", "Notepad")))
	// Matching both lists keeps the target role.
	assert.Equal(t, ClassTarget, c.Classify(rec(5, "Trae on WhatsApp", "")))

	assert.Equal(t, "target", ClassTarget.String())
	assert.Equal(t, "protected", ClassProtected.String())
	assert.Equal(t, "ordinary", ClassOrdinary.String())
}

func TestEligible(t *testing.T) {
	c := New([]string{"Trae"}, []string{"WhatsApp"})

	snap := window.Snapshot{Records: []window.Record{
		rec(1, "Trae — project", "Trae"),
		rec(2, "WhatsApp", "Chrome_WidgetWin_1"),
		rec(3, "Notepad", "Notepad"),
		rec(4, "Program Manager", "Progman"),
		rec(5, "Trae — other", "Trae"),
		rec(6, "Trae Desktop", "Trae"),
		rec(7, "Taskbar", "Shell_TrayWnd"),
		rec(8, "Calculator", "ApplicationFrameWindow"),
	}}

	got := c.Eligible(snap, 1)

	var titles []string
	for _, r := range got {
		titles = append(titles, r.Title)
		assert.NotEqual(t, window.Handle(1), r.Handle)
		assert.False(t, c.IsTarget(r))
		assert.False(t, c.ShouldSkip(r))
	}
	assert.Equal(t, []string{"Notepad", "Calculator"}, titles)
}

func TestEligibleExcludesFocusedEvenWhenOrdinary(t *testing.T) {
	c := New([]string{"Trae"}, nil)
	snap := window.Snapshot{Records: []window.Record{
		rec(1, "Notepad", "Notepad"),
		rec(2, "Calculator", "Calc"),
	}}

	got := c.Eligible(snap, 1)
	assert.Equal(t, []window.Record{rec(2, "Calculator", "Calc")}, got)
}
