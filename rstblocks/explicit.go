package rstblocks

import (
	"regexp"
	"strings"

	"github.com/grove-platform/docparse/rstast"
	"github.com/grove-platform/docparse/rstindent"
	"github.com/grove-platform/docparse/rstline"
	"github.com/grove-platform/docparse/rstmachine"
)

var (
	directiveDefPattern    = regexp.MustCompile(`^\.\.\s+([A-Za-z][A-Za-z0-9_.+:-]*)::(?:\s+(.*))?$`)
	targetDefPattern       = regexp.MustCompile(`^\.\.\s+_((?:\\.|[^:\\])*):(?:\s*(.*))?$`)
	substitutionDefPattern = regexp.MustCompile(`^\.\.\s+\|((?:[^|\\]|\\.)*)\|\s+([A-Za-z][A-Za-z0-9_.+:-]*)::(?:\s+(.*))?$`)
	footnoteDefPattern     = regexp.MustCompile(`^\.\.\s+\[(#[A-Za-z][A-Za-z0-9_.+-]*|#|\*|[0-9]+)\](?:\s+(.*))?$`)
	citationDefPattern     = regexp.MustCompile(`^\.\.\s+\[([A-Za-z][A-Za-z0-9_.+-]*)\](?:\s+(.*))?$`)
)

// explicitBody carves the rest of an explicit-markup construct after its
// first line's marker: the remainder of the first line plus any lines
// indented to the marker's column (".. " is always 3 columns wide).
func explicitBody(m *rstmachine.Machine, start int, firstRest string) (text *rstline.LineStore, consumed int) {
	const markerWidth = 3
	sourceID, _ := m.GetSourceAndLine(start)
	var rest *rstindent.Result
	if start+1 < m.Lines.Len() {
		r := rstindent.Indented(m.Lines, start+1, rstindent.Options{StripIndent: true, BlockIndent: markerWidth, FirstIndent: rstindent.NoFirstIndent})
		rest = &r
	}
	var restBlock *rstline.LineStore
	n := 1
	if rest != nil {
		restBlock = rest.Block
		n += rest.Block.Len()
	}
	return syntheticBlock(m.Memo, sourceID, strings.TrimSpace(firstRest), restBlock), n
}

func explicitMarkupTransition(m *rstmachine.Machine, ctx *rstmachine.Context, line string, match []string) rstmachine.TransitionResult {
	sourceID, lineNo := m.GetSourceAndLine()
	start := m.Index()

	if loc := directiveDefPattern.FindStringSubmatch(line); loc != nil {
		consumed := runDirective(m, ctx, sourceID, lineNo, start, loc[1], loc[2])
		consumeBlock(m, start, consumed)
		return rstmachine.TransitionResult{Context: ctx, NextState: "body"}
	}
	if loc := targetDefPattern.FindStringSubmatch(line); loc != nil {
		consumed := runTargetDef(m, ctx, sourceID, lineNo, start, loc[1], loc[2])
		consumeBlock(m, start, consumed)
		return rstmachine.TransitionResult{Context: ctx, NextState: "body"}
	}
	if loc := substitutionDefPattern.FindStringSubmatch(line); loc != nil {
		consumed := runSubstitutionDef(m, ctx, sourceID, lineNo, start, loc[1], loc[2], loc[3])
		consumeBlock(m, start, consumed)
		return rstmachine.TransitionResult{Context: ctx, NextState: "body"}
	}
	if loc := footnoteDefPattern.FindStringSubmatch(line); loc != nil {
		consumed := runFootnoteDef(m, ctx, sourceID, lineNo, start, loc[1], loc[2])
		consumeBlock(m, start, consumed)
		return rstmachine.TransitionResult{Context: ctx, NextState: "body"}
	}
	if loc := citationDefPattern.FindStringSubmatch(line); loc != nil {
		consumed := runCitationDef(m, ctx, sourceID, lineNo, start, loc[1], loc[2])
		consumeBlock(m, start, consumed)
		return rstmachine.TransitionResult{Context: ctx, NextState: "body"}
	}

	// Comment: anything else beginning ".. ".
	rest := strings.TrimPrefix(line, "..")
	rest = strings.TrimLeft(rest, " ")
	block, consumed := explicitBody(m, start, rest)
	comment := newBlock(rstast.KindComment, sourceID, lineNo)
	comment.Text = block.Join()
	ctx.Parent.Append(comment)
	consumeBlock(m, start, consumed)
	return rstmachine.TransitionResult{Context: ctx, NextState: "body"}
}

func runDirective(m *rstmachine.Machine, ctx *rstmachine.Context, sourceID string, lineNo, start int, name, argLine string) int {
	block, consumed := explicitBody(m, start, "")
	arguments, options, content, contentOffset := splitDirectiveBlock(argLine, block)

	if m.Memo.Directives == nil {
		msg := m.Memo.Reporter.Error(sourceID, lineNo, "Unknown directive type %q.", name)
		ctx.Parent.Append(msg)
		return consumed
	}

	nested := func(lines *rstline.LineStore) []*rstast.Node {
		holder := rstast.NewNode(rstast.KindRoot)
		parseNested(m, holder, ctx.SectionLevel, lines)
		return holder.Children
	}

	nodes, messages := m.Memo.Directives.Invoke(rstmachine.DirectiveRequest{
		Name:          name,
		Arguments:     arguments,
		Options:       options,
		Content:       content,
		ContentOffset: contentOffset,
		BlockText:     block.Join(),
		SourceID:      sourceID,
		Line:          lineNo,
		Ctx:           ctx,
		NestedParse:   nested,
	})
	ctx.Parent.AppendAll(nodes...)
	ctx.Parent.AppendAll(messages...)
	return consumed
}

// splitDirectiveBlock separates a directive's argument line(s), field
// list of options, and body content, per spec.md §4.B/§6: the content
// block starts at the first blank line after any argument/option lines
// (or right away if the first body line isn't a field marker).
func splitDirectiveBlock(argLine string, block *rstline.LineStore) (arguments []string, options map[string]rstast.AttrValue, content *rstline.LineStore, contentOffset int) {
	options = map[string]rstast.AttrValue{}
	if strings.TrimSpace(argLine) != "" {
		for _, a := range strings.Fields(argLine) {
			arguments = append(arguments, a)
		}
	}

	idx := 0
	for idx < block.Len() && fieldPattern.MatchString(block.MustText(idx)) {
		loc := fieldPattern.FindStringSubmatchIndex(block.MustText(idx))
		name := block.MustText(idx)[loc[2]:loc[3]]
		value := strings.TrimSpace(block.MustText(idx)[loc[1]:])
		options[name] = rstast.AttrString(value)
		idx++
	}
	for idx < block.Len() && isBlank(block.MustText(idx)) {
		idx++
	}
	content, _ = block.Slice(idx, block.Len())
	return arguments, options, content, idx
}

func runTargetDef(m *rstmachine.Machine, ctx *rstmachine.Context, sourceID string, lineNo, start int, rawName, uri string) int {
	block, consumed := explicitBody(m, start, uri)
	name := unescapeSimple(rawName)
	target := newBlock(rstast.KindTarget, sourceID, lineNo)
	target.Names = []string{name}
	refuri := strings.TrimSpace(block.Join())
	if refuri != "" {
		target.SetAttr("refuri", rstast.AttrString(refuri))
	} else {
		target.IDs = []string{m.Memo.Doc.NewAutoID(name)}
	}
	ctx.Parent.Append(target)
	m.Memo.Doc.RegisterElement(target, true)
	return consumed
}

func runSubstitutionDef(m *rstmachine.Machine, ctx *rstmachine.Context, sourceID string, lineNo, start int, rawName, directiveName, argLine string) int {
	block, consumed := explicitBody(m, start, "")
	arguments, options, content, contentOffset := splitDirectiveBlock(argLine, block)

	def := newBlock(rstast.KindSubstitutionDefinition, sourceID, lineNo)
	def.Names = []string{unescapeSimple(rawName)}
	ctx.Parent.Append(def)
	m.Memo.Doc.RegisterElement(def, true)

	if m.Memo.Directives != nil {
		nested := func(lines *rstline.LineStore) []*rstast.Node {
			holder := rstast.NewNode(rstast.KindRoot)
			parseNested(m, holder, ctx.SectionLevel, lines)
			return holder.Children
		}
		nodes, messages := m.Memo.Directives.Invoke(rstmachine.DirectiveRequest{
			Name: directiveName, Arguments: arguments, Options: options,
			Content: content, ContentOffset: contentOffset, BlockText: block.Join(),
			SourceID: sourceID, Line: lineNo, Ctx: ctx, NestedParse: nested,
		})
		def.AppendAll(nodes...)
		ctx.Parent.AppendAll(messages...)
	}
	return consumed
}

func runFootnoteDef(m *rstmachine.Machine, ctx *rstmachine.Context, sourceID string, lineNo, start int, label, firstText string) int {
	block, consumed := explicitBody(m, start, firstText)
	note := newBlock(rstast.KindFootnote, sourceID, lineNo)
	switch {
	case label == "#":
		note.SetAttr("auto", rstast.AttrBool(true))
		note.IDs = []string{m.Memo.Doc.NewAutoID("footnote")}
	case strings.HasPrefix(label, "#"):
		name := label[1:]
		note.SetAttr("auto", rstast.AttrBool(true))
		note.Names = []string{name}
	case label == "*":
		note.SetAttr("auto", rstast.AttrBool(true))
		note.SetAttr("symbol", rstast.AttrBool(true))
	default:
		note.Names = []string{label}
	}
	ctx.Parent.Append(note)
	if len(note.Names) > 0 {
		m.Memo.Doc.RegisterElement(note, true)
	}
	parseNested(m, note, ctx.SectionLevel, block)
	return consumed
}

func runCitationDef(m *rstmachine.Machine, ctx *rstmachine.Context, sourceID string, lineNo, start int, label, firstText string) int {
	block, consumed := explicitBody(m, start, firstText)
	cite := newBlock(rstast.KindCitation, sourceID, lineNo)
	cite.Names = []string{label}
	ctx.Parent.Append(cite)
	m.Memo.Doc.RegisterElement(cite, true)
	parseNested(m, cite, ctx.SectionLevel, block)
	return consumed
}

func anonymousTransition(m *rstmachine.Machine, ctx *rstmachine.Context, line string, match []string) rstmachine.TransitionResult {
	sourceID, lineNo := m.GetSourceAndLine()
	start := m.Index()
	rest := strings.TrimPrefix(line, "__")
	block, consumed := explicitBody(m, start, rest)

	target := newBlock(rstast.KindTarget, sourceID, lineNo)
	target.SetAttr("anonymous", rstast.AttrBool(true))
	refuri := strings.TrimSpace(block.Join())
	if refuri != "" {
		target.SetAttr("refuri", rstast.AttrString(refuri))
	}
	ctx.Parent.Append(target)
	consumeBlock(m, start, consumed)
	return rstmachine.TransitionResult{Context: ctx, NextState: "body"}
}
