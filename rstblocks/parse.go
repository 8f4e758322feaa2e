package rstblocks

import (
	"github.com/grove-platform/docparse/rstast"
	"github.com/grove-platform/docparse/rstinline"
	"github.com/grove-platform/docparse/rstline"
	"github.com/grove-platform/docparse/rstmachine"
)

// states is the single BlockStates configuration every machine in a
// parse runs with: just "body", since rstblocks folds the list/field/
// option/line-block/explicit specializations spec.md §4.E describes as
// separate sub-states into direct transition-handler loops rather than
// a full second tier of registered States.
var states = map[string]rstmachine.State{"body": bodyState{}}

// ParseDocument runs the Body state over the whole of lines, appending
// the resulting block-level nodes directly to the Document's root node.
func ParseDocument(lines *rstline.LineStore, memo *rstmachine.Memo) error {
	m := rstmachine.NewMachine(lines, memo)
	ctx := &rstmachine.Context{Memo: memo, Parent: memo.Doc.Node, SectionRoot: memo.Doc.Node}
	_, err := rstmachine.Run(m, states, "body", ctx)
	return err
}

// parseNested parses lines as body content under parent, sharing the
// outer machine's Memo and reuse pool, for block constructs (block
// quotes, list items, directive content, footnote/citation bodies)
// whose content is itself ordinary body-level RST.
func parseNested(m *rstmachine.Machine, parent *rstast.Node, sectionLevel int, lines *rstline.LineStore) []*rstast.Node {
	sub := m.NestedMachine(lines, true)
	ctx := &rstmachine.Context{Memo: m.Memo, Parent: parent, SectionRoot: parent, SectionLevel: sectionLevel}
	rstmachine.Run(sub, states, "body", ctx)
	m.ReleaseNested(sub, true)
	return parent.Children
}

// tokenizeInline runs the inline tokenizer over one logical line of text
// (already joined from a wrapped paragraph/title/etc.) and appends the
// resulting inline nodes to parent.
func tokenizeInline(memo *rstmachine.Memo, parent *rstast.Node, text, sourceID string, line int) {
	nodes := rstinline.Tokenize(memo.Inline, text, sourceID, line)
	parent.AppendAll(nodes...)
}

func newBlock(kind rstast.Kind, sourceID string, line int) *rstast.Node {
	n := rstast.NewNode(kind)
	n.SourceID = sourceID
	n.Line = line
	return n
}
