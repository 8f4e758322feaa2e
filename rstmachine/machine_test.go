package rstmachine

import (
	"testing"

	"github.com/grove-platform/docparse/rstline"
)

func TestMachine_CursorOperations(t *testing.T) {
	lines := rstline.FromSource("first\n\nthird", 4, true, "doc.rst")
	m := NewMachine(lines, &Memo{})

	if m.IsNextLineBlank() {
		t.Fatalf("line 0 (%q) is not blank", "first")
	}
	text, err := m.NextLine()
	if err != nil || text != "first" {
		t.Fatalf("NextLine() = %q, %v; want %q, nil", text, err, "first")
	}
	if m.IsNextLineBlank() != true {
		t.Fatalf("expected line 1 (blank) to report blank")
	}
	if m.AtEOF() {
		t.Fatalf("did not expect AtEOF after first line")
	}

	source, lineNo := m.GetSourceAndLine()
	if source != "doc.rst" || lineNo != 1 {
		t.Fatalf("GetSourceAndLine() = %q, %d; want %q, 1", source, lineNo, "doc.rst")
	}

	if _, err := m.NextLine(); err != nil {
		t.Fatalf("unexpected error advancing to blank line: %v", err)
	}
	if _, err := m.NextLine(); err != nil {
		t.Fatalf("unexpected error advancing to third line: %v", err)
	}
	if !m.AtEOF() {
		t.Fatalf("expected AtEOF on the last line")
	}
	if _, err := m.NextLine(); err != ErrEOF {
		t.Fatalf("expected ErrEOF past the last line, got %v", err)
	}

	m.PreviousLine()
	if got := m.CurrentLine(); got != "third" {
		t.Fatalf("after PreviousLine, CurrentLine() = %q, want %q", got, "third")
	}
}

func TestMachine_NestedMachineReusePool(t *testing.T) {
	outerLines := rstline.FromSource("a", 4, true, "doc.rst")
	outer := NewMachine(outerLines, &Memo{})

	innerLines := rstline.FromSource("b", 4, true, "doc.rst")
	sub := outer.NestedMachine(innerLines, true)
	outer.ReleaseNested(sub, true)

	moreLines := rstline.FromSource("c", 4, true, "doc.rst")
	reused := outer.NestedMachine(moreLines, true)
	if reused != sub {
		t.Fatalf("expected the pooled machine to be reused")
	}
	if reused.Lines != moreLines {
		t.Fatalf("expected the reused machine to be repointed at the new lines")
	}
}
