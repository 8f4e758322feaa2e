package rstblocks

import (
	"strings"

	"github.com/grove-platform/docparse/rstast"
	"github.com/grove-platform/docparse/rstindent"
	"github.com/grove-platform/docparse/rstline"
	"github.com/grove-platform/docparse/rstmachine"
)

func fieldMarkerTransition(m *rstmachine.Machine, ctx *rstmachine.Context, line string, match []string) rstmachine.TransitionResult {
	sourceID, lineNo := m.GetSourceAndLine()
	list := newBlock(rstast.KindFieldList, sourceID, lineNo)
	ctx.Parent.Append(list)

	origStart := m.Index()
	cur := origStart
	for {
		text := m.Lines.MustText(cur)
		loc := fieldPattern.FindStringSubmatchIndex(text)
		if loc == nil {
			break
		}
		name := text[loc[2]:loc[3]]
		width := loc[1]
		first := text[width:]

		var rest *rstindent.Result
		if cur+1 < m.Lines.Len() {
			r := rstindent.Indented(m.Lines, cur+1, rstindent.Options{StripIndent: true, BlockIndent: width, FirstIndent: rstindent.NoFirstIndent})
			rest = &r
		}

		fieldSrc, fieldLine := m.GetSourceAndLine(cur)
		field := newBlock(rstast.KindField, fieldSrc, fieldLine)
		list.Append(field)

		fname := newBlock(rstast.KindFieldName, fieldSrc, fieldLine)
		field.Append(fname)
		tokenizeInline(m.Memo, fname, unescapeFieldName(name), fieldSrc, fieldLine)

		fbody := newBlock(rstast.KindFieldBody, fieldSrc, fieldLine)
		field.Append(fbody)
		var restBlock *rstline.LineStore
		if rest != nil {
			restBlock = rest.Block
		}
		block := syntheticBlock(m.Memo, sourceID, first, restBlock)
		parseNested(m, fbody, ctx.SectionLevel, block)

		next := cur + 1
		if rest != nil {
			next = cur + 1 + rest.Block.Len()
		}
		if next >= m.Lines.Len() {
			cur = next
			break
		}
		if fieldPattern.MatchString(m.Lines.MustText(next)) {
			cur = next
			continue
		}
		cur = next
		break
	}
	consumeBlock(m, origStart, cur-origStart)
	return rstmachine.TransitionResult{Context: ctx, NextState: "body"}
}

func unescapeFieldName(s string) string {
	return strings.ReplaceAll(s, `\:`, ":")
}

// optionMarkerTransition opens an OptionList and adds one item per
// consecutive option-list marker line, splitting each "-a, --all=ARG"
// option group into Option nodes.
func optionMarkerTransition(m *rstmachine.Machine, ctx *rstmachine.Context, line string, match []string) rstmachine.TransitionResult {
	sourceID, lineNo := m.GetSourceAndLine()
	list := newBlock(rstast.KindOptionList, sourceID, lineNo)
	ctx.Parent.Append(list)

	origStart := m.Index()
	cur := origStart
	for {
		text := m.Lines.MustText(cur)
		if !optionPattern.MatchString(text) {
			break
		}
		markerPart, descPart := splitTwoSpaces(text)

		itemSrc, itemLine := m.GetSourceAndLine(cur)
		item := newBlock(rstast.KindOptionListItem, itemSrc, itemLine)
		list.Append(item)

		group := newBlock(rstast.KindOptionGroup, itemSrc, itemLine)
		item.Append(group)
		for _, tok := range strings.Split(markerPart, ", ") {
			tok = strings.TrimSpace(tok)
			if tok == "" {
				continue
			}
			opt := newBlock(rstast.KindOption, itemSrc, itemLine)
			group.Append(opt)
			name, arg := splitOptionToken(tok)
			optStr := newBlock(rstast.KindOptionString, itemSrc, itemLine)
			optStr.Text = name
			opt.Append(optStr)
			if arg != "" {
				optArg := newBlock(rstast.KindOptionArgument, itemSrc, itemLine)
				optArg.Text = arg
				opt.Append(optArg)
			}
		}

		desc := newBlock(rstast.KindDescription, itemSrc, itemLine)
		item.Append(desc)

		var rest *rstindent.Result
		if cur+1 < m.Lines.Len() {
			r := rstindent.Indented(m.Lines, cur+1, rstindent.Options{StripIndent: true, BlockIndent: len(text) - len(strings.TrimLeft(text, " ")) + 2, FirstIndent: rstindent.NoFirstIndent})
			rest = &r
		}
		var restBlock *rstline.LineStore
		if rest != nil {
			restBlock = rest.Block
		}
		block := syntheticBlock(m.Memo, sourceID, descPart, restBlock)
		parseNested(m, desc, ctx.SectionLevel, block)

		next := cur + 1
		if rest != nil {
			next = cur + 1 + rest.Block.Len()
		}
		if next >= m.Lines.Len() || !optionPattern.MatchString(safeText(m.Lines, next)) {
			cur = next
			break
		}
		cur = next
	}
	consumeBlock(m, origStart, cur-origStart)
	return rstmachine.TransitionResult{Context: ctx, NextState: "body"}
}

func safeText(store *rstline.LineStore, i int) string {
	if i < 0 || i >= store.Len() {
		return ""
	}
	return store.MustText(i)
}

func splitOptionToken(tok string) (name, arg string) {
	if idx := strings.IndexAny(tok, "= "); idx >= 0 {
		return tok[:idx], strings.TrimSpace(tok[idx+1:])
	}
	return tok, ""
}
