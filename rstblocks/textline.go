package rstblocks

import (
	"strings"
	"unicode/utf8"

	"github.com/grove-platform/docparse/rstast"
	"github.com/grove-platform/docparse/rstindent"
	"github.com/grove-platform/docparse/rstline"
	"github.com/grove-platform/docparse/rstmachine"
)

// lineTransition handles Body's "line" entry (spec.md §4.E transition
// 11): a run of repeated punctuation that is either the overline of a
// title, a lone transition marker, or — if neither pans out — ordinary
// text reprocessed by the same logic as the "text" transition.
func lineTransition(m *rstmachine.Machine, ctx *rstmachine.Context, line string, match []string) rstmachine.TransitionResult {
	start := m.Index()
	style, _ := utf8.DecodeRuneInString(strings.TrimSpace(line))

	if start+2 < m.Lines.Len() {
		titleLine := m.Lines.MustText(start + 1)
		underline := m.Lines.MustText(start + 2)
		if !isBlank(titleLine) && leadingSpaces(titleLine) == 0 && isUniformLine(underline) {
			uStyle, _ := utf8.DecodeRuneInString(strings.TrimSpace(underline))
			if uStyle == style && runeLen(underline) >= runeLen(titleLine) {
				sourceID, lineNo := m.GetSourceAndLine(start + 1)
				openSection(m, ctx, style, titleLine, sourceID, lineNo)
				consumeBlock(m, start, 3)
				return rstmachine.TransitionResult{Context: ctx, NextState: "body"}
			}
		}
	}

	isIsolated := (start == 0 || isBlank(m.Lines.MustText(start-1))) &&
		(start+1 >= m.Lines.Len() || isBlank(m.Lines.MustText(start+1)))
	if isIsolated {
		sourceID, lineNo := m.GetSourceAndLine()
		ctx.Parent.Append(newBlock(rstast.KindTransition, sourceID, lineNo))
		consumeBlock(m, start, 1)
		return rstmachine.TransitionResult{Context: ctx, NextState: "body"}
	}

	return textTransition(m, ctx, line, match)
}

func runeLen(s string) int { return utf8.RuneCountInString(strings.TrimRight(s, " \t")) }

// openSection resolves titleText's underline style against the styles
// already seen at this point in the document (spec.md §4.E: "a new
// style registers a new subsection level, a known style bubbles up"),
// builds the Section/Title nodes, and repoints ctx.Parent at the new
// section so following body content nests inside it.
func openSection(m *rstmachine.Machine, ctx *rstmachine.Context, style rune, titleText, sourceID string, lineNo int) {
	level := -1
	for i, s := range ctx.SectionStyles {
		if s == style {
			level = i
			break
		}
	}
	if level < 0 {
		level = len(ctx.SectionStyles)
		ctx.SectionStyles = append(ctx.SectionStyles, style)
	} else {
		ctx.SectionStyles = ctx.SectionStyles[:level+1]
		ctx.SectionStack = ctx.SectionStack[:level]
	}

	parent := ctx.SectionRoot
	if level > 0 {
		parent = ctx.SectionStack[level-1]
	}

	section := newBlock(rstast.KindSection, sourceID, lineNo)
	parent.Append(section)
	ctx.SectionStack = append(ctx.SectionStack, section)

	title := newBlock(rstast.KindTitle, sourceID, lineNo)
	section.Append(title)
	tokenizeInline(m.Memo, title, strings.TrimSpace(titleText), sourceID, lineNo)

	name := strings.TrimSpace(titleText)
	section.Names = []string{name}
	section.IDs = []string{m.Memo.Doc.NewAutoID(name)}
	m.Memo.Doc.RegisterElement(section, false)

	ctx.Parent = section
	ctx.SectionLevel = level + 1
}

// textTransition handles Body's fallback "text" entry: a flush-left
// text block that textTransition classifies as an ordinary paragraph,
// a single-line section title (underline with no overline), or a
// definition-list term.
func textTransition(m *rstmachine.Machine, ctx *rstmachine.Context, line string, match []string) rstmachine.TransitionResult {
	sourceID, lineNo := m.GetSourceAndLine()
	start := m.Index()

	block, err := rstindent.TextBlock(m.Lines, start, true)
	if err != nil {
		if ind, ok := err.(*rstindent.ErrUnexpectedIndentation); ok && ind.Partial.Len() >= 1 {
			consumeDefinitionListItem(m, ctx, sourceID, lineNo, start, ind.Partial)
			return rstmachine.TransitionResult{Context: ctx, NextState: "body"}
		}
		m.Memo.Reporter.Error(sourceID, lineNo, "Unexpected indentation.")
		consumeBlock(m, start, 1)
		return rstmachine.TransitionResult{Context: ctx, NextState: "body"}
	}

	if block.Len() >= 2 && isUniformLine(block.MustText(1)) {
		underline := block.MustText(1)
		style, _ := utf8.DecodeRuneInString(underline)
		isAlnum := (style >= '0' && style <= '9') || (style >= 'A' && style <= 'Z') || (style >= 'a' && style <= 'z')
		if style < utf8.RuneSelf && !isAlnum {
			if runeLen(underline) < runeLen(block.MustText(0)) {
				m.Memo.Reporter.Warning(sourceID, lineNo, "Title underline too short.")
			}
			openSection(m, ctx, style, block.MustText(0), sourceID, lineNo)
			consumeBlock(m, start, 2)
			return rstmachine.TransitionResult{Context: ctx, NextState: "body"}
		}
	}

	text, literalAnnounced := stripLiteralAnnouncement(block.Join())
	para := newBlock(rstast.KindParagraph, sourceID, lineNo)
	ctx.Parent.Append(para)
	tokenizeInline(m.Memo, para, text, sourceID, lineNo)
	ctx.LiteralPending = literalAnnounced

	consumeBlock(m, start, block.Len())
	return rstmachine.TransitionResult{Context: ctx, NextState: "body"}
}

// stripLiteralAnnouncement implements the "::" paragraph-final literal
// block cue from spec.md §4.E's Text-state description: a paragraph
// ending in a lone "::" drops the marker entirely, one ending in "x::"
// becomes "x:".
func stripLiteralAnnouncement(text string) (stripped string, announced bool) {
	trimmed := strings.TrimRight(text, " \t")
	if !strings.HasSuffix(trimmed, "::") {
		return text, false
	}
	before := trimmed[:len(trimmed)-2]
	if before == "" || strings.HasSuffix(before, "\n") {
		return strings.TrimRight(before, "\n \t"), true
	}
	if strings.HasSuffix(before, " ") {
		return strings.TrimRight(before, " "), true
	}
	return before + ":", true
}

// consumeDefinitionListItem builds one definition-list term/definition
// pair out of term (the flush-left lines collected before the first
// indented line) and the indented block that follows it, merging into
// ctx.Parent's trailing DefinitionList node when the previous sibling
// is one (consecutive terms share a single list, per spec.md §4.E).
func consumeDefinitionListItem(m *rstmachine.Machine, ctx *rstmachine.Context, sourceID string, lineNo, start int, term *rstline.LineStore) {
	defStart := start + term.Len()
	res := rstindent.Indented(m.Lines, defStart, rstindent.Options{StripIndent: true, BlockIndent: rstindent.NoBlockIndent, FirstIndent: rstindent.NoFirstIndent})

	var list *rstast.Node
	if n := len(ctx.Parent.Children); n > 0 && ctx.Parent.Children[n-1].Kind == rstast.KindDefinitionList {
		list = ctx.Parent.Children[n-1]
	} else {
		list = newBlock(rstast.KindDefinitionList, sourceID, lineNo)
		ctx.Parent.Append(list)
	}

	item := newBlock(rstast.KindDefinitionListItem, sourceID, lineNo)
	list.Append(item)

	termNode := newBlock(rstast.KindTerm, sourceID, lineNo)
	item.Append(termNode)
	tokenizeInline(m.Memo, termNode, term.Join(), sourceID, lineNo)

	def := newBlock(rstast.KindDefinition, sourceID, lineNo)
	item.Append(def)
	parseNested(m, def, ctx.SectionLevel, res.Block)

	consumeBlock(m, start, term.Len()+res.Block.Len())
}
