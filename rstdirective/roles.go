package rstdirective

import (
	"github.com/grove-platform/docparse/rstast"
	"github.com/grove-platform/docparse/rstinline"
)

// literalRole implements ":literal:`text`" as a plain KindLiteral leaf,
// the same node an inline double-backtick produces.
func literalRole(roleName, rawSource, text string, line int, ctx *rstinline.Context) ([]*rstast.Node, []*rstast.Node) {
	n := rstast.NewText(text)
	n.Kind = rstast.KindLiteral
	n.Line = line
	return []*rstast.Node{n}, nil
}

// titleReferenceRole is the default interpreted-text role: plain text
// tagged as a title reference (docutils' "cite this book/section"
// convention), carried as an attribute rather than a distinct Kind
// since it behaves like emphasis with a semantic flavor, not a new
// inline shape.
func titleReferenceRole(roleName, rawSource, text string, line int, ctx *rstinline.Context) ([]*rstast.Node, []*rstast.Node) {
	n := rstast.NewText(text)
	n.Line = line
	n.SetAttr("role", rstast.AttrString("title-reference"))
	return []*rstast.Node{n}, nil
}

func mathRole(roleName, rawSource, text string, line int, ctx *rstinline.Context) ([]*rstast.Node, []*rstast.Node) {
	n := rstast.NewNode(rstast.KindRole)
	n.Line = line
	n.Text = text
	n.SetAttr("role", rstast.AttrString("math"))
	return []*rstast.Node{n}, nil
}

func subscriptRole(roleName, rawSource, text string, line int, ctx *rstinline.Context) ([]*rstast.Node, []*rstast.Node) {
	n := rstast.NewNode(rstast.KindRole)
	n.Line = line
	n.Text = text
	n.SetAttr("role", rstast.AttrString("subscript"))
	return []*rstast.Node{n}, nil
}

func superscriptRole(roleName, rawSource, text string, line int, ctx *rstinline.Context) ([]*rstast.Node, []*rstast.Node) {
	n := rstast.NewNode(rstast.KindRole)
	n.Line = line
	n.Text = text
	n.SetAttr("role", rstast.AttrString("superscript"))
	return []*rstast.Node{n}, nil
}

// RegisterDefaultRoles adds the standard inline roles (spec.md §6's
// role interface; SPEC_FULL.md §6's supplemented list) to b under
// domain: :math:, :sub:, :sup:, :title-reference:, :literal:.
func RegisterDefaultRoles(b *Builder, domain string) {
	b.RegisterRole(domain, "math", mathRole)
	b.RegisterRole(domain, "sub", subscriptRole)
	b.RegisterRole(domain, "subscript", subscriptRole)
	b.RegisterRole(domain, "sup", superscriptRole)
	b.RegisterRole(domain, "superscript", superscriptRole)
	b.RegisterRole(domain, "title-reference", titleReferenceRole)
	b.RegisterRole(domain, "title", titleReferenceRole)
	b.RegisterRole(domain, "literal", literalRole)
}

// BuildCustomRole constructs an rstinline.RoleFunc for a "derived" role built
// from a base role plus a fixed class list, the shape a ".. role::"
// directive produces in docutils. Since Registry is immutable after
// Build (spec.md §4.F), this helper is meant to be called while still
// assembling a Builder (e.g. from rstdirective.LoadSpecTable-driven
// registration), not from a directive handler mid-parse.
func BuildCustomRole(base rstinline.RoleFunc, classes []string) rstinline.RoleFunc {
	return func(roleName, rawSource, text string, line int, ctx *rstinline.Context) ([]*rstast.Node, []*rstast.Node) {
		nodes, messages := base(roleName, rawSource, text, line, ctx)
		for _, n := range nodes {
			if len(classes) > 0 {
				n.SetAttr("class", rstast.AttrStringList(classes))
			}
		}
		return nodes, messages
	}
}
