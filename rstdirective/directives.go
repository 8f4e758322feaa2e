package rstdirective

import (
	"strings"

	"github.com/grove-platform/docparse/internal/language"
	"github.com/grove-platform/docparse/rstast"
	"github.com/grove-platform/docparse/rstinline"
)

// directiveNode builds a generic KindDirective node tagged with its
// directive name, for the many directives whose AST shape is just
// "some options as attributes, nested content or an argument" rather
// than a dedicated Kind of its own.
func directiveNode(inv *Invocation, name string) *rstast.Node {
	n := rstast.NewNode(rstast.KindDirective)
	n.SourceID, n.Line = inv.SourceID, inv.Line
	n.SetAttr("directive", rstast.AttrString(name))
	return n
}

func setStringOpt(n *rstast.Node, inv *Invocation, key string) {
	if v, ok := inv.Options[key]; ok {
		if s, ok := v.(string); ok {
			n.SetAttr(key, rstast.AttrString(s))
		}
	}
}

func setBoolOpt(n *rstast.Node, inv *Invocation, key string) {
	if v, ok := inv.Options[key]; ok {
		if b, ok := v.(bool); ok {
			n.SetAttr(key, rstast.AttrBool(b))
		}
	}
}

func setListOpt(n *rstast.Node, inv *Invocation, key string) {
	if v, ok := inv.Options[key]; ok {
		if l, ok := v.([]string); ok {
			n.SetAttr(key, rstast.AttrStringList(l))
		}
	}
}

func tokenize(inv *Invocation, parent *rstast.Node, text string) {
	nodes := rstinline.Tokenize(inv.Ctx.Memo.Inline, text, inv.SourceID, inv.Line)
	parent.AppendAll(nodes...)
}

// codeBlockDirective implements "code-block"/"sourcecode" (spec.md §8
// seed scenario 5: a directive with options): the argument (if any)
// names the language, the body is kept verbatim as a KindCode leaf.
func codeBlockDirective(inv *Invocation) ([]*rstast.Node, error) {
	n := directiveNode(inv, "code-block")
	n.Kind = rstast.KindCode
	if len(inv.Arguments) > 0 {
		n.SetAttr("language", rstast.AttrString(language.Normalize(inv.Arguments[0])))
	}
	setBoolOpt(n, inv, "linenos")
	setStringOpt(n, inv, "caption")
	setStringOpt(n, inv, "emphasize-lines")
	if inv.Content != nil {
		n.Text = inv.Content.Join()
	}
	return []*rstast.Node{n}, nil
}

// unicodeDirective implements ".. unicode::" (spec.md §8 seed scenario
// 3): each whitespace-separated argument token is either a literal
// character, a "U+XXXX"/"0xXXXX" code point, or one of the two "strip"
// comment markers ".." — this handler resolves code points only; full
// entity-name lookup is the post-processing-time job spec.md §1 keeps
// out of the core, so an unresolved token is kept as literal text.
func unicodeDirective(inv *Invocation) ([]*rstast.Node, error) {
	var b strings.Builder
	for i, tok := range inv.Arguments {
		if i > 0 {
			b.WriteByte(' ')
		}
		if r, ok := decodeUnicodeToken(tok); ok {
			b.WriteRune(r)
		} else {
			b.WriteString(tok)
		}
	}
	n := rstast.NewText(b.String())
	n.SourceID, n.Line = inv.SourceID, inv.Line
	return []*rstast.Node{n}, nil
}

func decodeUnicodeToken(tok string) (rune, bool) {
	var hex string
	switch {
	case strings.HasPrefix(tok, "U+") || strings.HasPrefix(tok, "u+"):
		hex = tok[2:]
	case strings.HasPrefix(tok, "0x") || strings.HasPrefix(tok, "0X"):
		hex = tok[2:]
	case strings.HasPrefix(tok, "\\u"):
		hex = tok[2:]
	default:
		return 0, false
	}
	var v rune
	for _, c := range hex {
		d, ok := hexDigit(c)
		if !ok {
			return 0, false
		}
		v = v*16 + rune(d)
	}
	return v, true
}

func hexDigit(c rune) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	default:
		return 0, false
	}
}

// includeDirective emits a placeholder node carrying the requested
// path: the file read itself is the kind of external I/O spec.md §5
// assigns to collaborators outside the parser core, so this directive
// never opens a file — an external pass is expected to resolve the
// "path" attribute and splice in the included source's own parse.
func includeDirective(inv *Invocation) ([]*rstast.Node, error) {
	n := directiveNode(inv, "include")
	if len(inv.Arguments) > 0 {
		n.SetAttr("path", rstast.AttrString(inv.Arguments[0]))
	}
	setStringOpt(n, inv, "start-after")
	setStringOpt(n, inv, "end-before")
	return []*rstast.Node{n}, nil
}

// literalincludeDirective is the MongoDB-flavored cousin of include
// that additionally carries a language hint, used for embedding code
// samples with syntax highlighting (teacher's directive_regex.go names
// it alongside the rest of the docs-tooling directive set).
func literalincludeDirective(inv *Invocation) ([]*rstast.Node, error) {
	n := directiveNode(inv, "literalinclude")
	var path string
	if len(inv.Arguments) > 0 {
		path = inv.Arguments[0]
		n.SetAttr("path", rstast.AttrString(path))
	}
	n.SetAttr("language", rstast.AttrString(language.Resolve("", stringOpt(inv, "language"), path)))
	setStringOpt(n, inv, "start-after")
	setStringOpt(n, inv, "end-before")
	setBoolOpt(n, inv, "linenos")
	return []*rstast.Node{n}, nil
}

// stringOpt reads a validated string option's value, or "" when the
// option wasn't given, for callers (like literalinclude's language
// resolution below) that need the raw value rather than a conditional
// node attribute.
func stringOpt(inv *Invocation, key string) string {
	if v, ok := inv.Options[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func imageDirective(inv *Invocation) ([]*rstast.Node, error) {
	n := directiveNode(inv, "image")
	if len(inv.Arguments) > 0 {
		n.SetAttr("uri", rstast.AttrString(inv.Arguments[0]))
	}
	setStringOpt(n, inv, "alt")
	setStringOpt(n, inv, "width")
	setStringOpt(n, inv, "height")
	setStringOpt(n, inv, "scale")
	setStringOpt(n, inv, "align")
	setStringOpt(n, inv, "target")
	setListOpt(n, inv, "class")
	return []*rstast.Node{n}, nil
}

// figureDirective nests its entire content (image caption paragraph
// plus any legend paragraphs) as ordinary body content under the
// figure node, rather than splitting the first paragraph out into a
// dedicated KindCaption: distinguishing "caption" from "legend" needs
// blank-line-delimited paragraph boundaries inside an already-carved
// block, which the content LineStore handed to a directive no longer
// preserves distinctly from NestedParse's point of view.
func figureDirective(inv *Invocation) ([]*rstast.Node, error) {
	n := directiveNode(inv, "figure")
	if len(inv.Arguments) > 0 {
		n.SetAttr("uri", rstast.AttrString(inv.Arguments[0]))
	}
	setStringOpt(n, inv, "alt")
	setStringOpt(n, inv, "width")
	setStringOpt(n, inv, "align")
	if inv.Content != nil {
		for _, child := range inv.NestedParse(inv.Content) {
			n.Append(child)
		}
	}
	return []*rstast.Node{n}, nil
}

// admonitionDirective builds a generic admonition handler for one of
// the fixed set of names (note, warning, tip, important, caution,
// danger, error, hint, attention) sharing the same shape: nested body
// content under a KindDirective tagged with its own name.
func admonitionDirective(name string) DirectiveFunc {
	return func(inv *Invocation) ([]*rstast.Node, error) {
		n := directiveNode(inv, name)
		if inv.Content != nil {
			for _, child := range inv.NestedParse(inv.Content) {
				n.Append(child)
			}
		}
		return []*rstast.Node{n}, nil
	}
}

func topicLikeDirective(name string) DirectiveFunc {
	return func(inv *Invocation) ([]*rstast.Node, error) {
		n := directiveNode(inv, name)
		if len(inv.Arguments) > 0 {
			title := rstast.NewNode(rstast.KindTitle)
			title.SourceID, title.Line = inv.SourceID, inv.Line
			tokenize(inv, title, inv.Arguments[0])
			n.Append(title)
		}
		setListOpt(n, inv, "class")
		if inv.Content != nil {
			for _, child := range inv.NestedParse(inv.Content) {
				n.Append(child)
			}
		}
		return []*rstast.Node{n}, nil
	}
}

func epigraphDirective(inv *Invocation) ([]*rstast.Node, error) {
	return topicLikeDirective("epigraph")(inv)
}

func contentsDirective(inv *Invocation) ([]*rstast.Node, error) {
	n := directiveNode(inv, "contents")
	if len(inv.Arguments) > 0 {
		n.SetAttr("title", rstast.AttrString(inv.Arguments[0]))
	}
	if v, ok := inv.Options["depth"]; ok {
		if d, ok := v.(int); ok {
			n.SetAttr("depth", rstast.AttrInt(d))
		}
	}
	setBoolOpt(n, inv, "local")
	return []*rstast.Node{n}, nil
}

func rawDirective(inv *Invocation) ([]*rstast.Node, error) {
	n := directiveNode(inv, "raw")
	n.Kind = rstast.KindLiteralBlock
	if len(inv.Arguments) > 0 {
		n.SetAttr("format", rstast.AttrStringList(inv.Arguments))
	}
	if inv.Content != nil {
		n.Text = inv.Content.Join()
	}
	return []*rstast.Node{n}, nil
}

func mathDirective(inv *Invocation) ([]*rstast.Node, error) {
	n := directiveNode(inv, "math")
	n.Kind = rstast.KindCode
	n.SetAttr("language", rstast.AttrString("math"))
	text := strings.Join(inv.Arguments, " ")
	if inv.Content != nil && inv.Content.Len() > 0 {
		if text != "" {
			text += "\n"
		}
		text += inv.Content.Join()
	}
	n.Text = text
	return []*rstast.Node{n}, nil
}

func rubricDirective(inv *Invocation) ([]*rstast.Node, error) {
	n := directiveNode(inv, "rubric")
	n.Kind = rstast.KindTitle
	setListOpt(n, inv, "class")
	if len(inv.Arguments) > 0 {
		tokenize(inv, n, inv.Arguments[0])
	}
	return []*rstast.Node{n}, nil
}

// replaceDirective implements the payload of a substitution definition
// (spec.md §4.E's SubstitutionDef state): its content is parsed as a
// single paragraph's worth of inline markup, and the inline nodes
// themselves (not a wrapping block) become the substitution's children.
func replaceDirective(inv *Invocation) ([]*rstast.Node, error) {
	text := strings.Join(inv.Arguments, " ")
	if inv.Content != nil && inv.Content.Len() > 0 {
		text = inv.Content.Join()
	}
	return rstinline.Tokenize(inv.Ctx.Memo.Inline, strings.TrimSpace(text), inv.SourceID, inv.Line), nil
}

// classDirective attaches a class-name list for the post-processor to
// propagate onto the directive's sibling content; propagation itself
// (applying the class to whichever node follows) is left to that later
// pass, out of the core parser's scope.
func classDirective(inv *Invocation) ([]*rstast.Node, error) {
	n := directiveNode(inv, "class")
	n.SetAttr("class", rstast.AttrStringList(inv.Arguments))
	return []*rstast.Node{n}, nil
}

// defaultRoleDirective and roleDirective are recognized but cannot
// mutate a built Registry (spec.md §4.F: "the registry is immutable
// after build"); they report that limitation as an info diagnostic
// instead of silently dropping the construct.
func defaultRoleDirective(inv *Invocation) ([]*rstast.Node, error) {
	msg := inv.Ctx.Memo.Reporter.Info(inv.SourceID, inv.Line,
		"default-role directive recognized; dynamic role registration is not supported at parse time")
	return []*rstast.Node{msg}, nil
}

func roleDirective(inv *Invocation) ([]*rstast.Node, error) {
	msg := inv.Ctx.Memo.Reporter.Info(inv.SourceID, inv.Line,
		"role directive recognized; dynamic role registration is not supported at parse time")
	return []*rstast.Node{msg}, nil
}

// RegisterDefaultDirectives adds the generic docutils-shaped directive
// set (spec.md §6 + SPEC_FULL.md §6's supplemented list) to b under
// domain.
func RegisterDefaultDirectives(b *Builder, domain string) {
	admonitionNames := []string{"note", "warning", "tip", "important", "caution", "danger", "error", "hint", "attention", "admonition"}
	for _, name := range admonitionNames {
		b.RegisterDirective(domain, name, DirectiveSpec{
			OptionalArgs: 1, FinalArgWhitespace: true, HasContent: true,
			OptionSpec: map[string]OptionValidator{"class": ClassOption},
			Run:        admonitionDirective(name),
		})
	}

	b.RegisterDirective(domain, "code-block", DirectiveSpec{
		OptionalArgs: 1, HasContent: true,
		OptionSpec: map[string]OptionValidator{
			"linenos": Flag, "caption": Unchanged, "emphasize-lines": Unchanged,
		},
		Run: codeBlockDirective,
	})
	b.RegisterDirective(domain, "sourcecode", b.directivesSnapshot(domain, "code-block"))

	b.RegisterDirective(domain, "unicode", DirectiveSpec{
		RequiredArgs: 1, OptionalArgs: 64, FinalArgWhitespace: true,
		Run: unicodeDirective,
	})

	b.RegisterDirective(domain, "include", DirectiveSpec{
		RequiredArgs: 1,
		OptionSpec:   map[string]OptionValidator{"start-after": Unchanged, "end-before": Unchanged},
		Run:          includeDirective,
	})
	b.RegisterDirective(domain, "literalinclude", DirectiveSpec{
		RequiredArgs: 1,
		OptionSpec: map[string]OptionValidator{
			"language": Language, "start-after": Unchanged, "end-before": Unchanged, "linenos": Flag,
		},
		Run: literalincludeDirective,
	})

	b.RegisterDirective(domain, "image", DirectiveSpec{
		RequiredArgs: 1, FinalArgWhitespace: true,
		OptionSpec: map[string]OptionValidator{
			"alt": Unchanged, "width": Unchanged, "height": Unchanged,
			"scale": NonNegativeInt, "align": ChoiceOf("left", "center", "right", "top", "middle", "bottom"),
			"target": Unchanged, "class": ClassOption,
		},
		Run: imageDirective,
	})
	b.RegisterDirective(domain, "figure", DirectiveSpec{
		RequiredArgs: 1, FinalArgWhitespace: true, HasContent: true,
		OptionSpec: map[string]OptionValidator{
			"alt": Unchanged, "width": Unchanged, "align": ChoiceOf("left", "center", "right"),
		},
		Run: figureDirective,
	})

	b.RegisterDirective(domain, "contents", DirectiveSpec{
		OptionalArgs: 1, FinalArgWhitespace: true,
		OptionSpec: map[string]OptionValidator{"depth": NonNegativeInt, "local": Flag},
		Run:        contentsDirective,
	})
	b.RegisterDirective(domain, "raw", DirectiveSpec{
		RequiredArgs: 1, OptionalArgs: 64, FinalArgWhitespace: true, HasContent: true,
		Run: rawDirective,
	})
	b.RegisterDirective(domain, "math", DirectiveSpec{
		OptionalArgs: 64, FinalArgWhitespace: true, HasContent: true,
		Run: mathDirective,
	})
	b.RegisterDirective(domain, "rubric", DirectiveSpec{
		RequiredArgs: 1, FinalArgWhitespace: true,
		OptionSpec: map[string]OptionValidator{"class": ClassOption},
		Run:        rubricDirective,
	})
	b.RegisterDirective(domain, "epigraph", DirectiveSpec{HasContent: true, Run: epigraphDirective})
	b.RegisterDirective(domain, "topic", DirectiveSpec{
		RequiredArgs: 1, FinalArgWhitespace: true, HasContent: true,
		OptionSpec: map[string]OptionValidator{"class": ClassOption},
		Run:        topicLikeDirective("topic"),
	})
	b.RegisterDirective(domain, "sidebar", DirectiveSpec{
		RequiredArgs: 1, FinalArgWhitespace: true, HasContent: true,
		OptionSpec: map[string]OptionValidator{"class": ClassOption, "subtitle": Unchanged},
		Run:        topicLikeDirective("sidebar"),
	})
	b.RegisterDirective(domain, "replace", DirectiveSpec{OptionalArgs: 64, FinalArgWhitespace: true, HasContent: true, Run: replaceDirective})
	b.RegisterDirective(domain, "class", DirectiveSpec{RequiredArgs: 1, OptionalArgs: 63, Run: classDirective})
	b.RegisterDirective(domain, "default-role", DirectiveSpec{OptionalArgs: 1, Run: defaultRoleDirective})
	b.RegisterDirective(domain, "role", DirectiveSpec{RequiredArgs: 1, OptionalArgs: 1, HasContent: true, Run: roleDirective})

	RegisterMongoDBDirectives(b, domain)
}

// directivesSnapshot is a tiny convenience used once above to alias
// "sourcecode" onto the already-registered "code-block" spec without
// duplicating its literal struct.
func (b *Builder) directivesSnapshot(domain, name string) DirectiveSpec {
	return b.directives[domain][name]
}
