package rstblocks

import (
	"github.com/grove-platform/docparse/rstast"
	"github.com/grove-platform/docparse/rstindent"
	"github.com/grove-platform/docparse/rstline"
	"github.com/grove-platform/docparse/rstmachine"
)

// bodyState is the Body state from spec.md §4.E: the workhorse with the
// twelve ordered transitions listed there. It is stateless — every
// transition's effect lives entirely in Context/Document/Machine — so a
// single zero-value instance is shared across every machine in a parse.
type bodyState struct{ rstmachine.BaseState }

func (bodyState) Name() string { return "body" }

func (bodyState) Transitions() []rstmachine.Transition {
	return []rstmachine.Transition{
		{Name: "blank", Pattern: blankPattern, Run: blankTransition},
		{Name: "indent", Pattern: indentPattern, Run: indentTransition},
		{Name: "bullet", Pattern: bulletPattern, Run: bulletTransition},
		{Name: "enumerator", Pattern: enumeratorPattern, Run: enumeratorTransition},
		{Name: "field_marker", Pattern: fieldPattern, Run: fieldMarkerTransition},
		{Name: "option_marker", Pattern: optionPattern, Run: optionMarkerTransition},
		{Name: "doctest", Pattern: doctestPattern, Run: doctestTransition},
		{Name: "line_block", Pattern: lineBlockMark, Run: lineBlockTransition},
		{Name: "explicit_markup", Pattern: explicitMark, Run: explicitMarkupTransition},
		{Name: "anonymous", Pattern: anonymousMark, Run: anonymousTransition},
		{Name: "line", Pattern: linePattern, Run: lineTransition},
		{Name: "text", Pattern: textFallbackPattern, Run: textTransition},
	}
}

func blankTransition(m *rstmachine.Machine, ctx *rstmachine.Context, line string, match []string) rstmachine.TransitionResult {
	return rstmachine.TransitionResult{Context: ctx, NextState: "body"}
}

func indentTransition(m *rstmachine.Machine, ctx *rstmachine.Context, line string, match []string) rstmachine.TransitionResult {
	sourceID, lineNo := m.GetSourceAndLine()
	start := m.Index()
	res := rstindent.Indented(m.Lines, start, rstindent.Options{StripIndent: true, BlockIndent: rstindent.NoBlockIndent, FirstIndent: rstindent.NoFirstIndent})

	var block *rstast.Node
	if ctx.LiteralPending {
		block = newBlock(rstast.KindLiteralBlock, sourceID, lineNo)
		block.Text = res.Block.Join()
		ctx.Parent.Append(block)
	} else {
		block = newBlock(rstast.KindBlockQuote, sourceID, lineNo)
		ctx.Parent.Append(block)
		parseNested(m, block, ctx.SectionLevel, res.Block)
	}
	ctx.LiteralPending = false
	consumeBlock(m, start, res.Block.Len())
	return rstmachine.TransitionResult{Context: ctx, NextState: "body"}
}

func bulletTransition(m *rstmachine.Machine, ctx *rstmachine.Context, line string, match []string) rstmachine.TransitionResult {
	sourceID, lineNo := m.GetSourceAndLine()
	bulletChar := match[1]

	list := newBlock(rstast.KindBulletList, sourceID, lineNo)
	list.SetAttr("bullet", rstast.AttrString(bulletChar))
	ctx.Parent.Append(list)

	origStart := m.Index()
	cur := origStart
	for {
		text := m.Lines.MustText(cur)
		loc := bulletPattern.FindStringSubmatchIndex(text)
		if loc == nil || text[loc[2]:loc[3]] != bulletChar {
			break
		}
		markerWidth := loc[1]
		first := text[markerWidth:]
		var rest *rstindent.Result
		if cur+1 < m.Lines.Len() {
			r := rstindent.Indented(m.Lines, cur+1, rstindent.Options{StripIndent: true, BlockIndent: markerWidth, FirstIndent: rstindent.NoFirstIndent})
			rest = &r
		}
		itemSrc, itemLine := m.GetSourceAndLine(cur)
		item := newBlock(rstast.KindListItem, itemSrc, itemLine)
		list.Append(item)
		var restBlock *rstline.LineStore
		if rest != nil {
			restBlock = rest.Block
		}
		block := syntheticBlock(m.Memo, sourceID, first, restBlock)
		parseNested(m, item, ctx.SectionLevel, block)

		next := cur + 1
		if rest != nil {
			next = cur + 1 + rest.Block.Len()
		}
		if next >= m.Lines.Len() {
			cur = next
			break
		}
		if isBlank(m.Lines.MustText(next)) && next+1 < m.Lines.Len() {
			peekLoc := bulletPattern.FindStringSubmatchIndex(m.Lines.MustText(next + 1))
			if peekLoc != nil && m.Lines.MustText(next+1)[peekLoc[2]:peekLoc[3]] == bulletChar {
				cur = next + 1
				continue
			}
		}
		cur = next
		break
	}
	consumeBlock(m, origStart, cur-origStart)
	return rstmachine.TransitionResult{Context: ctx, NextState: "body"}
}
