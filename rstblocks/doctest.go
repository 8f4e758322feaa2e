package rstblocks

import (
	"github.com/grove-platform/docparse/rstast"
	"github.com/grove-platform/docparse/rstmachine"
)

func doctestTransition(m *rstmachine.Machine, ctx *rstmachine.Context, line string, match []string) rstmachine.TransitionResult {
	sourceID, lineNo := m.GetSourceAndLine()
	start := m.Index()
	end := start
	for end < m.Lines.Len() && !isBlank(m.Lines.MustText(end)) {
		end++
	}
	block, _ := m.Lines.Slice(start, end)

	node := newBlock(rstast.KindDoctestBlock, sourceID, lineNo)
	node.Text = block.Join()
	ctx.Parent.Append(node)

	consumeBlock(m, start, block.Len())
	return rstmachine.TransitionResult{Context: ctx, NextState: "body"}
}

func lineBlockTransition(m *rstmachine.Machine, ctx *rstmachine.Context, line string, match []string) rstmachine.TransitionResult {
	sourceID, lineNo := m.GetSourceAndLine()
	block := newBlock(rstast.KindLineBlock, sourceID, lineNo)
	ctx.Parent.Append(block)

	start := m.Index()
	cur := start
	for cur < m.Lines.Len() {
		text := m.Lines.MustText(cur)
		loc := lineBlockMark.FindStringSubmatchIndex(text)
		if loc == nil {
			break
		}
		content := text[loc[1]:]
		lnSrc, lnLine := m.GetSourceAndLine(cur)
		lineNode := newBlock(rstast.KindLine, lnSrc, lnLine)
		block.Append(lineNode)
		tokenizeInline(m.Memo, lineNode, content, lnSrc, lnLine)
		cur++
	}
	consumeBlock(m, start, cur-start)
	return rstmachine.TransitionResult{Context: ctx, NextState: "body"}
}
