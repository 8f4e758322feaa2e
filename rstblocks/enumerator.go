package rstblocks

import (
	"github.com/grove-platform/docparse/rstast"
	"github.com/grove-platform/docparse/rstindent"
	"github.com/grove-platform/docparse/rstline"
	"github.com/grove-platform/docparse/rstmachine"
)

// enumeratorFields reads whichever of the pattern's three named
// alternatives (parens/rparen/period) matched, returning the ordinal
// text and a format tag plus the full match width.
func enumeratorFields(text string) (ordinal, format string, width int) {
	loc := enumeratorPattern.FindStringSubmatchIndex(text)
	if loc == nil {
		return "", "", 0
	}
	names := enumeratorPattern.SubexpNames()
	for i, name := range names {
		if name == "" || loc[2*i] < 0 {
			continue
		}
		if name == "parens" || name == "rparen" || name == "period" {
			return text[loc[2*i]:loc[2*i+1]], name, loc[1]
		}
	}
	return "", "", 0
}

// enumeratorPrefixSuffix maps enumeratorFields' format tag to the
// actual bracketing characters docutils records on an EnumeratedList
// node: "(1)" is prefix "(" suffix ")", "1)" is prefix "" suffix ")",
// "1." is prefix "" suffix ".".
func enumeratorPrefixSuffix(format string) (prefix, suffix string) {
	switch format {
	case "parens":
		return "(", ")"
	case "rparen":
		return "", ")"
	default: // "period"
		return "", "."
	}
}

func enumeratorTransition(m *rstmachine.Machine, ctx *rstmachine.Context, line string, match []string) rstmachine.TransitionResult {
	sourceID, lineNo := m.GetSourceAndLine()
	ordinal, format, _ := enumeratorFields(line)
	startVal, kind := ordinalValue(ordinal)
	prefix, suffix := enumeratorPrefixSuffix(format)

	list := newBlock(rstast.KindEnumeratedList, sourceID, lineNo)
	list.SetAttr("enumtype", rstast.AttrString(kind))
	list.SetAttr("prefix", rstast.AttrString(prefix))
	list.SetAttr("suffix", rstast.AttrString(suffix))
	list.SetAttr("start", rstast.AttrInt(startVal))
	ctx.Parent.Append(list)

	if kind != "auto" && startVal != 1 {
		m.Memo.Reporter.Info(sourceID, lineNo, "Enumerated list start value not ordinal-1")
	}

	origStart := m.Index()
	cur := origStart
	lastVal := startVal - 1
	for {
		text := m.Lines.MustText(cur)
		ord, fmtTag, width := enumeratorFields(text)
		if fmtTag == "" || fmtTag != format {
			break
		}
		val, vkind := ordinalValue(ord)
		if vkind != "auto" && vkind != kind {
			break
		}
		if vkind != "auto" && val != lastVal+1 && cur != origStart {
			break
		}
		if vkind != "auto" {
			lastVal = val
		} else {
			lastVal++
		}

		first := text[width:]
		var rest *rstindent.Result
		if cur+1 < m.Lines.Len() {
			r := rstindent.Indented(m.Lines, cur+1, rstindent.Options{StripIndent: true, BlockIndent: width, FirstIndent: rstindent.NoFirstIndent})
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
		if nord, nfmt, _ := enumeratorFields(m.Lines.MustText(next)); nfmt == format {
			if _, nkind := ordinalValue(nord); nkind == kind || nkind == "auto" {
				cur = next
				continue
			}
		}
		if isBlank(m.Lines.MustText(next)) && next+1 < m.Lines.Len() {
			nord, nfmt, _ := enumeratorFields(m.Lines.MustText(next + 1))
			if nfmt == format {
				if _, nkind := ordinalValue(nord); nkind == kind || nkind == "auto" {
					cur = next + 1
					continue
				}
			}
		}
		cur = next
		break
	}
	consumeBlock(m, origStart, cur-origStart)
	return rstmachine.TransitionResult{Context: ctx, NextState: "body"}
}
