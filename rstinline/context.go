package rstinline

import (
	"github.com/grove-platform/docparse/rstast"
	"github.com/grove-platform/docparse/rstreport"
)

// RoleFunc is the role handler shape from spec.md §6: given the raw
// source of a `:name:`text`` construct, it returns the nodes to splice
// in and any system messages produced along the way.
type RoleFunc func(roleName, rawSource, text string, line int, ctx *Context) ([]*rstast.Node, []*rstast.Node)

// Context bundles everything the inline tokenizer needs beyond the raw
// text: the owning Document (for cross-reference bookkeeping and auto
// ids), the Reporter (for warnings/errors), and the small set of
// OptionParser switches spec.md §6 lists as affecting inline parsing.
type Context struct {
	Doc      *rstast.Document
	Reporter *rstreport.Reporter

	TrimFootnoteReferenceSpace bool
	CharacterLevelInlineMarkup bool

	LookupRole func(name string) (RoleFunc, bool)

	autoFootnoteCounter int
	autoSymbolCounter   int
}

// NewContext builds a Context with no role lookup: interpreted text
// becomes a Role node named after its explicit role, or after the
// default role when none is given, without calling a role handler.
func NewContext(doc *rstast.Document, reporter *rstreport.Reporter) *Context {
	return &Context{Doc: doc, Reporter: reporter}
}

func (c *Context) nextAutoFootnoteNumber() int {
	c.autoFootnoteCounter++
	return c.autoFootnoteCounter
}

var symbolSequence = []rune("*†‡§¶#♦♣♥♠")

func (c *Context) nextAutoSymbol() string {
	idx := c.autoSymbolCounter % len(symbolSequence)
	repeats := c.autoSymbolCounter/len(symbolSequence) + 1
	c.autoSymbolCounter++
	out := make([]rune, repeats)
	for i := range out {
		out[i] = symbolSequence[idx]
	}
	return string(out)
}
