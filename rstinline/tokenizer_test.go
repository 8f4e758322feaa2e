package rstinline

import (
	"testing"

	"github.com/grove-platform/docparse/rstast"
	"github.com/grove-platform/docparse/rstreport"
)

func newTestContext() *Context {
	doc := rstast.NewDocument("test.rst", "", "", nil)
	reporter := rstreport.New(rstast.SeverityInfo, 5)
	return NewContext(doc, reporter)
}

func textOf(nodes []*rstast.Node) string {
	var out string
	for _, n := range nodes {
		out += n.AstText()
	}
	return out
}

func TestEscapeToNull_RoundTrips(t *testing.T) {
	cases := []string{`a\*b`, `no backslashes here`, `trailing\`, `\\`}
	for _, c := range cases {
		escaped := EscapeToNull(c)
		restored := Unescape(escaped, true)
		if restored != c && c != `trailing\` {
			t.Errorf("round trip failed for %q: got %q", c, restored)
		}
	}
}

func TestTokenize_StrongAndEmphasis(t *testing.T) {
	ctx := newTestContext()
	nodes := Tokenize(ctx, "a **bold** and *emph* word", "test.rst", 1)

	var foundStrong, foundEmph bool
	for _, n := range nodes {
		switch n.Kind {
		case rstast.KindStrong:
			foundStrong = true
			if n.AstText() != "bold" {
				t.Errorf("strong text = %q, want %q", n.AstText(), "bold")
			}
		case rstast.KindEmphasis:
			foundEmph = true
			if n.AstText() != "emph" {
				t.Errorf("emphasis text = %q, want %q", n.AstText(), "emph")
			}
		}
	}
	if !foundStrong || !foundEmph {
		t.Fatalf("expected both strong and emphasis nodes, got %+v", nodes)
	}
}

func TestTokenize_Literal(t *testing.T) {
	ctx := newTestContext()
	nodes := Tokenize(ctx, "see ``code here`` now", "test.rst", 1)
	var found bool
	for _, n := range nodes {
		if n.Kind == rstast.KindLiteral {
			found = true
			if n.Text != "code here" {
				t.Errorf("literal text = %q, want %q", n.Text, "code here")
			}
		}
	}
	if !found {
		t.Fatalf("expected a literal node, got %+v", nodes)
	}
}

func TestTokenize_UnterminatedEmphasisWarnsAndEmitsLiteralStar(t *testing.T) {
	ctx := newTestContext()
	nodes := Tokenize(ctx, "this is *unfinished", "test.rst", 1)

	if len(ctx.Reporter.Messages) == 0 {
		t.Fatalf("expected a warning for unterminated emphasis")
	}
	if got := textOf(nodes); got != "this is *unfinished" {
		t.Errorf("text = %q, want literal passthrough %q", got, "this is *unfinished")
	}
	for _, n := range nodes {
		if n.Kind == rstast.KindEmphasis {
			t.Fatalf("did not expect an Emphasis node, got %+v", nodes)
		}
	}
}

func TestTokenize_StandaloneURIAndEmail(t *testing.T) {
	ctx := newTestContext()
	nodes := Tokenize(ctx, "visit https://example.com/x or mail me@example.com", "test.rst", 1)

	var uriRef, mailRef *rstast.Node
	for _, n := range nodes {
		if n.Kind != rstast.KindReference {
			continue
		}
		if uv, ok := n.Attr("refuri"); ok {
			s, _ := uv.String()
			if s == "https://example.com/x" {
				uriRef = n
			}
			if s == "mailto:me@example.com" {
				mailRef = n
			}
		}
	}
	if uriRef == nil {
		t.Errorf("expected a URI reference, got %+v", nodes)
	}
	if mailRef == nil {
		t.Errorf("expected a mailto reference, got %+v", nodes)
	}
}

func TestTokenize_SimpleReference(t *testing.T) {
	ctx := newTestContext()
	nodes := Tokenize(ctx, "see Target_ for details", "test.rst", 1)

	var ref *rstast.Node
	for _, n := range nodes {
		if n.Kind == rstast.KindReference {
			ref = n
		}
	}
	if ref == nil {
		t.Fatalf("expected a reference node, got %+v", nodes)
	}
	refname, ok := ref.Attr("refname")
	if !ok {
		t.Fatalf("expected refname attr on %+v", ref)
	}
	s, _ := refname.String()
	if s != "target" {
		t.Errorf("refname = %q, want %q", s, "target")
	}
	if len(ctx.Doc.RefNames["target"]) != 1 {
		t.Errorf("expected Doc.RefNames to register the reference")
	}
}

func TestTokenize_AnonymousReference(t *testing.T) {
	ctx := newTestContext()
	nodes := Tokenize(ctx, "see Target__ now", "test.rst", 1)
	var ref *rstast.Node
	for _, n := range nodes {
		if n.Kind == rstast.KindReference {
			ref = n
		}
	}
	if ref == nil {
		t.Fatalf("expected a reference node, got %+v", nodes)
	}
	anon, ok := ref.Attr("anonymous")
	if !ok {
		t.Fatalf("expected anonymous attr")
	}
	b, _ := anon.Bool()
	if !b {
		t.Errorf("expected anonymous=true")
	}
}

func TestTokenize_SubstitutionReference(t *testing.T) {
	ctx := newTestContext()
	nodes := Tokenize(ctx, "the |version| string", "test.rst", 1)
	var sub *rstast.Node
	for _, n := range nodes {
		if n.Kind == rstast.KindSubstitutionReference {
			sub = n
		}
	}
	if sub == nil {
		t.Fatalf("expected a substitution reference, got %+v", nodes)
	}
	refname, _ := sub.Attr("refname")
	s, _ := refname.String()
	if s != "version" {
		t.Errorf("refname = %q, want %q", s, "version")
	}
}

func TestTokenize_FootnoteReferenceForms(t *testing.T) {
	ctx := newTestContext()

	nodes := Tokenize(ctx, "auto [#]_ and labeled [#note]_ and symbol [*]_ and numbered [1]_", "test.rst", 1)

	var autoCount, labeledCount, symbolCount, numberedCount int
	for _, n := range nodes {
		if n.Kind != rstast.KindFootnoteReference {
			continue
		}
		if _, ok := n.Attr("auto_symbol"); ok {
			symbolCount++
			continue
		}
		if refname, ok := n.Attr("refname"); ok {
			if s, _ := refname.String(); s == "note" {
				labeledCount++
				continue
			}
			if s, _ := refname.String(); s == "1" {
				numberedCount++
				continue
			}
		}
		if _, ok := n.Attr("auto"); ok {
			autoCount++
		}
	}
	if labeledCount != 1 {
		t.Errorf("expected one labeled auto footnote, got %d (%+v)", labeledCount, nodes)
	}
	if symbolCount != 1 {
		t.Errorf("expected one symbol footnote, got %d", symbolCount)
	}
	if numberedCount != 1 {
		t.Errorf("expected one numbered footnote, got %d", numberedCount)
	}
}

func TestTokenize_CitationReference(t *testing.T) {
	ctx := newTestContext()
	nodes := Tokenize(ctx, "as shown in [Knuth]_ long ago", "test.rst", 1)
	var cite *rstast.Node
	for _, n := range nodes {
		if n.Kind == rstast.KindCitationReference {
			cite = n
		}
	}
	if cite == nil {
		t.Fatalf("expected a citation reference, got %+v", nodes)
	}
	refname, _ := cite.Attr("refname")
	s, _ := refname.String()
	if s != "knuth" {
		t.Errorf("refname = %q, want %q", s, "knuth")
	}
}

func TestTokenize_InlineTarget(t *testing.T) {
	ctx := newTestContext()
	nodes := Tokenize(ctx, "a _`named span` of text", "test.rst", 1)
	var target *rstast.Node
	for _, n := range nodes {
		if n.Kind == rstast.KindTargetIdentifier {
			target = n
		}
	}
	if target == nil {
		t.Fatalf("expected a target identifier node, got %+v", nodes)
	}
	if len(target.Names) != 1 || target.Names[0] != "named span" {
		t.Errorf("target.Names = %v, want [\"named span\"]", target.Names)
	}
	if len(target.IDs) != 1 {
		t.Fatalf("expected target to have a registered id")
	}
}

func TestTokenize_DefaultRoleInterpretedText(t *testing.T) {
	ctx := newTestContext()
	nodes := Tokenize(ctx, "a `title reference` here", "test.rst", 1)
	var role *rstast.Node
	for _, n := range nodes {
		if n.Kind == rstast.KindRole {
			role = n
		}
	}
	if role == nil {
		t.Fatalf("expected a role node, got %+v", nodes)
	}
	rv, ok := role.Attr("role")
	if !ok {
		t.Fatalf("expected role attr")
	}
	s, _ := rv.String()
	if s != defaultRole {
		t.Errorf("role = %q, want %q", s, defaultRole)
	}
}

func TestTokenize_PrefixRoleInterpretedText(t *testing.T) {
	ctx := newTestContext()
	nodes := Tokenize(ctx, "call :code:`fmt.Println` now", "test.rst", 1)
	var role *rstast.Node
	for _, n := range nodes {
		if n.Kind == rstast.KindRole {
			role = n
		}
	}
	if role == nil {
		t.Fatalf("expected a role node, got %+v", nodes)
	}
	rv, _ := role.Attr("role")
	s, _ := rv.String()
	if s != "code" {
		t.Errorf("role = %q, want %q", s, "code")
	}
	if role.AstText() != "fmt.Println" {
		t.Errorf("role text = %q, want %q", role.AstText(), "fmt.Println")
	}
}

func TestTokenize_PhraseReferenceWithEmbeddedURI(t *testing.T) {
	ctx := newTestContext()
	nodes := Tokenize(ctx, "see `Example <https://example.com>`_ site", "test.rst", 1)
	var ref *rstast.Node
	for _, n := range nodes {
		if n.Kind == rstast.KindReference {
			ref = n
		}
	}
	if ref == nil {
		t.Fatalf("expected a phrase reference, got %+v", nodes)
	}
	if ref.AstText() != "Example" {
		t.Errorf("display text = %q, want %q", ref.AstText(), "Example")
	}
	refuri, ok := ref.Attr("refuri")
	if !ok {
		t.Fatalf("expected refuri attr")
	}
	s, _ := refuri.String()
	if s != "https://example.com" {
		t.Errorf("refuri = %q, want %q", s, "https://example.com")
	}
}

func TestTokenize_CustomRoleViaLookupRole(t *testing.T) {
	ctx := newTestContext()
	ctx.LookupRole = func(name string) (RoleFunc, bool) {
		if name != "emphasis-role" {
			return nil, false
		}
		return func(roleName, rawSource, text string, line int, c *Context) ([]*rstast.Node, []*rstast.Node) {
			n := rstast.NewNode(rstast.KindEmphasis)
			n.Append(rstast.NewText(text))
			return []*rstast.Node{n}, nil
		}, true
	}
	nodes := Tokenize(ctx, ":emphasis-role:`hello`", "test.rst", 1)
	var emph *rstast.Node
	for _, n := range nodes {
		if n.Kind == rstast.KindEmphasis {
			emph = n
		}
	}
	if emph == nil {
		t.Fatalf("expected the custom role to produce an emphasis node, got %+v", nodes)
	}
	if emph.AstText() != "hello" {
		t.Errorf("text = %q, want %q", emph.AstText(), "hello")
	}
}
