package rst

import (
	"strings"
	"testing"

	"github.com/grove-platform/docparse/rstast"
)

func TestParseSimpleParagraph(t *testing.T) {
	doc, _, err := Parse("test.rst", "Hello *world*.\n", DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	paras := doc.FindAll(rstast.KindParagraph)
	if len(paras) != 1 {
		t.Fatalf("expected one paragraph, got %d", len(paras))
	}
	emph := doc.FindAll(rstast.KindEmphasis)
	if len(emph) != 1 {
		t.Fatalf("expected one emphasis node, got %d", len(emph))
	}
}

// TestParseFieldListTitleNestedBulletList covers the seed scenario from
// spec.md §8: a field list followed by a section title followed by a
// nested bullet list.
func TestParseFieldListTitleNestedBulletList(t *testing.T) {
	source := strings.Join([]string{
		":author: Ada",
		":version: 1.0",
		"",
		"Section Title",
		"=============",
		"",
		"- top item",
		"",
		"  - nested item",
		"",
	}, "\n")

	doc, _, err := Parse("test.rst", source, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fl := doc.FindAll(rstast.KindFieldList); len(fl) != 1 {
		t.Fatalf("expected one field list, got %d", len(fl))
	}
	sections := doc.FindAll(rstast.KindSection)
	if len(sections) != 1 {
		t.Fatalf("expected one section, got %d", len(sections))
	}
	if got := sections[0].Children[0].AstText(); got != "Section Title" {
		t.Errorf("section title text = %q", got)
	}
	lists := doc.FindAll(rstast.KindBulletList)
	if len(lists) != 2 {
		t.Fatalf("expected a top-level list and a nested list, got %d", len(lists))
	}
}

func TestParseEnumeratedListStartNotOne(t *testing.T) {
	source := "3. third\n4. fourth\n"
	doc, messages, err := Parse("test.rst", source, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lists := doc.FindAll(rstast.KindEnumeratedList)
	if len(lists) != 1 {
		t.Fatalf("expected one enumerated list, got %d", len(lists))
	}
	list := lists[0]

	if enumtype := list.AttrStringOr("enumtype", ""); enumtype != "arabic" {
		t.Errorf("enumtype = %q, want \"arabic\"", enumtype)
	}
	if prefix := list.AttrStringOr("prefix", "missing"); prefix != "" {
		t.Errorf("prefix = %q, want \"\"", prefix)
	}
	if suffix := list.AttrStringOr("suffix", ""); suffix != "." {
		t.Errorf("suffix = %q, want \".\"", suffix)
	}
	startAttr, ok := list.Attr("start")
	if !ok {
		t.Fatal("expected a start attribute")
	}
	if start, ok := startAttr.Int(); !ok || start != 3 {
		t.Errorf("start = %v (ok=%v), want 3", start, ok)
	}

	found := false
	for _, m := range messages {
		if strings.Contains(m.Text, "Enumerated list start value not ordinal-1") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an info diagnostic about the non-ordinal-1 start, got %v", messages)
	}
}

func TestParseDirectiveWithOptions(t *testing.T) {
	source := strings.Join([]string{
		".. code-block:: go",
		"   :linenos:",
		"",
		"   fmt.Println(\"hi\")",
		"",
	}, "\n")
	doc, _, err := Parse("test.rst", source, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	code := doc.FindAll(rstast.KindCode)
	if len(code) != 1 {
		t.Fatalf("expected one code node, got %d", len(code))
	}
	if lang := code[0].AttrStringOr("language", ""); lang != "go" {
		t.Errorf("language = %q, want \"go\"", lang)
	}
	if !code[0].AttrBoolOr("linenos", false) {
		t.Error("expected linenos to be true")
	}
}

func TestParseTitleUnderlineTooShortStillOpensSection(t *testing.T) {
	source := "A Longer Title\n===\n\nBody text.\n"
	doc, messages, err := Parse("test.rst", source, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sections := doc.FindAll(rstast.KindSection)
	if len(sections) != 1 {
		t.Fatalf("expected one section despite the short underline, got %d", len(sections))
	}
	titles := doc.FindAll(rstast.KindTitle)
	if len(titles) != 1 {
		t.Fatalf("expected one title, got %d", len(titles))
	}

	found := false
	for _, m := range messages {
		if strings.Contains(m.Text, "Title underline too short") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a warning about the short underline, got %v", messages)
	}
}

func TestParseLiteralincludeResolvesLanguageFromPath(t *testing.T) {
	source := ".. literalinclude:: examples/snippet.py\n"
	doc, _, err := Parse("test.rst", source, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	directives := doc.FindAll(rstast.KindDirective)
	if len(directives) != 1 {
		t.Fatalf("expected one directive node, got %d", len(directives))
	}
	if lang := directives[0].AttrStringOr("language", ""); lang != "python" {
		t.Errorf("language = %q, want \"python\" (inferred from .py path)", lang)
	}
}

func TestParseUnterminatedEmphasisReportsDiagnostic(t *testing.T) {
	_, messages, err := Parse("test.rst", "an *unterminated emphasis\n", DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := false
	for _, m := range messages {
		if strings.Contains(m.Text, "start-string without end-string") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an unterminated-emphasis diagnostic, got %v", messages)
	}
}

func TestParseHaltsAtConfiguredLevel(t *testing.T) {
	options := DefaultOptions()
	options.HaltLevel = int(rstast.SeverityWarning)
	_, _, err := Parse("test.rst", "an *unterminated emphasis\n", options)
	if err == nil {
		t.Fatalf("expected halt-level error to propagate (unterminated emphasis reports a warning, which meets the warning halt level)")
	}
}

func TestParseIDUniqueness(t *testing.T) {
	source := "Same Title\n==========\n\nSame Title\n==========\n"
	doc, _, err := Parse("test.rst", source, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	seen := map[string]bool{}
	for id := range doc.IDToElement {
		if seen[id] {
			t.Errorf("duplicate id %q in IDToElement", id)
		}
		seen[id] = true
	}
}
