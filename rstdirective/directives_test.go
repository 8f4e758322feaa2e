package rstdirective

import (
	"testing"

	"github.com/grove-platform/docparse/rstast"
	"github.com/grove-platform/docparse/rstline"
	"github.com/grove-platform/docparse/rstmachine"
)

func newInvocation(t *testing.T, name string, args []string, content string) *Invocation {
	t.Helper()
	ctx := newTestContext(t)
	var store *rstline.LineStore
	if content != "" {
		store = rstline.FromSource(content, 8, true, "test.rst")
	}
	return &Invocation{
		Name: name, Arguments: args, Options: map[string]any{},
		Content: store, SourceID: "test.rst", Line: 1, Ctx: ctx,
		NestedParse: func(lines *rstline.LineStore) []*rstast.Node {
			holder := rstast.NewNode(rstast.KindRoot)
			if lines != nil {
				p := rstast.NewNode(rstast.KindParagraph)
				p.Text = lines.Join()
				holder.Append(p)
			}
			return holder.Children
		},
	}
}

func TestAdmonitionDirectiveNestsContent(t *testing.T) {
	inv := newInvocation(t, "note", nil, "Body text.")
	nodes, err := admonitionDirective("note")(inv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nodes) != 1 || len(nodes[0].Children) != 1 {
		t.Fatalf("expected one directive node with one nested child, got %#v", nodes)
	}
	if got := nodes[0].AttrStringOr("directive", ""); got != "note" {
		t.Errorf("directive attr = %q, want \"note\"", got)
	}
}

func TestUnicodeDirectiveDecodesCodePoints(t *testing.T) {
	inv := newInvocation(t, "unicode", []string{"U+00A9"}, "")
	nodes, err := unicodeDirective(inv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nodes) != 1 || nodes[0].Text != "©" {
		t.Fatalf("got %#v, want a single copyright-sign text node", nodes)
	}
}

func TestUnicodeDirectiveKeepsUnresolvedTokenLiteral(t *testing.T) {
	inv := newInvocation(t, "unicode", []string{".."}, "")
	nodes, err := unicodeDirective(inv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if nodes[0].Text != ".." {
		t.Errorf("got %q, want literal \"..\" kept as-is", nodes[0].Text)
	}
}

func TestReplaceDirectiveTokenizesContent(t *testing.T) {
	inv := newInvocation(t, "replace", nil, "plain text")
	nodes, err := replaceDirective(inv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nodes) == 0 {
		t.Fatal("expected at least one inline node")
	}
}

func TestCodeBlockDirectiveRejectsTooManyArguments(t *testing.T) {
	var b Builder
	RegisterDefaultDirectives(&b, "")
	reg := b.Build("")
	rt := NewRuntime(reg.LookupDirective)

	ctx := newTestContext(t)
	req := rstmachine.DirectiveRequest{
		Name: "code-block", Arguments: []string{"go", "extra"},
		SourceID: "test.rst", Line: 1, Ctx: ctx,
	}
	nodes, messages := rt.Invoke(req)
	if nodes != nil {
		t.Fatalf("expected no nodes, got %#v", nodes)
	}
	if len(messages) != 2 {
		t.Fatalf("expected error message + literal copy, got %#v", messages)
	}
}
