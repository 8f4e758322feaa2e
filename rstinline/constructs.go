package rstinline

import (
	"regexp"
	"strings"

	"github.com/grove-platform/docparse/rstast"
)

// --- interpreted text / phrase references -----------------------------------------

var roleStartPattern = regexp.MustCompile(`^:[A-Za-z][A-Za-z0-9_+.-]*:`)

// atRoleStart reports whether the text at s.pos begins a `:name:`
// prefix immediately followed by a backtick (the prefix-role form of
// interpreted text).
func (s *scanner) atRoleStart() bool {
	remaining := string(s.runes[s.pos:])
	loc := roleStartPattern.FindStringIndex(remaining)
	if loc == nil {
		return false
	}
	return loc[1] < len(remaining) && remaining[loc[1]] == '`'
}

func (s *scanner) tryRolePrefixed() bool {
	remaining := string(s.runes[s.pos:])
	loc := roleStartPattern.FindStringIndex(remaining)
	if loc == nil {
		return false
	}
	roleName := strings.Trim(remaining[loc[0]:loc[1]], ":")
	skip := len([]rune(remaining[:loc[1]]))
	savedPos := s.pos
	s.pos += skip
	if !s.tryInterpretedOrPhraseRef(roleName) {
		s.pos = savedPos
		return false
	}
	return true
}

// suffixRolePattern matches a `:name:` role suffix immediately after an
// interpreted-text construct's closing backtick.
var suffixRolePattern = regexp.MustCompile(`^:([A-Za-z][A-Za-z0-9_+.-]*):`)

// embeddedURIPattern splits "display text <target>" into its display
// and embedded-target parts, for phrase references of the form
// `text <URI>`_ or `text <alias_>`_.
var embeddedURIPattern = regexp.MustCompile(`^(.*?)\s*<([^<>]+)>$`)

func (s *scanner) tryInterpretedOrPhraseRef(prefixRole string) bool {
	start := s.pos
	if s.runes[start] != '`' {
		return false
	}
	beforeIdx := start - prefixRolePrefixLen(prefixRole)
	if beforeIdx < 0 {
		beforeIdx = 0
	}
	before := s.runes[:beforeIdx]
	if !precededByOpenQuoting(before) {
		return false
	}

	contentStart := start + 1
	end := s.findDelimiter([]rune{'`'}, contentStart)
	if end < 0 {
		s.warn("Inline interpreted text or phrase reference start-string without end-string.")
		return false
	}
	content := string(s.runes[contentStart:end])
	cursor := end + 1

	suffixRole := ""
	isRef := false
	anonymous := false
	if cursor < len(s.runes) {
		remaining := string(s.runes[cursor:])
		if m := suffixRolePattern.FindStringSubmatch(remaining); m != nil {
			suffixRole = m[1]
			cursor += len([]rune(m[0]))
		} else if s.runes[cursor] == '_' {
			isRef = true
			cursor++
			if cursor < len(s.runes) && s.runes[cursor] == '_' {
				anonymous = true
				cursor++
			}
		}
	}

	after := s.runes[cursor:]
	if !followedByCloseQuoting(after) {
		s.warn("Inline interpreted text or phrase reference end-string without close quoting.")
		return false
	}

	if prefixRole != "" && suffixRole != "" && prefixRole != suffixRole {
		s.warn("Multiple roles in interpreted text (both prefix and suffix present: %q and %q).", prefixRole, suffixRole)
	}

	content = Unescape(content, false)

	var node *rstast.Node
	if isRef {
		node = s.buildPhraseReference(content, anonymous)
	} else {
		roleName := prefixRole
		if roleName == "" {
			roleName = suffixRole
		}
		node = s.buildInterpreted(roleName, content)
	}
	s.emitConstruct(node)
	s.pos = cursor
	return true
}

// prefixRolePrefixLen accounts for the `:name:` prefix already consumed
// by tryRolePrefixed when computing the "preceding character" for the
// open-quoting check: that check must look before the whole role
// prefix, not just before the backtick.
func prefixRolePrefixLen(prefixRole string) int {
	if prefixRole == "" {
		return 0
	}
	return len(prefixRole) + 2
}

func (s *scanner) buildPhraseReference(content string, anonymous bool) *rstast.Node {
	display := content
	refuri := ""
	refname := ""
	if m := embeddedURIPattern.FindStringSubmatch(content); m != nil {
		display = strings.TrimSpace(m[1])
		target := m[2]
		if strings.HasSuffix(target, "_") {
			refname = fullyNormalize(strings.TrimSuffix(target, "_"))
		} else {
			refuri = target
		}
	}
	if display == "" {
		display = content
	}

	node := rstast.NewNode(rstast.KindReference)
	node.SourceID = s.sourceID
	node.Line = s.line
	node.Append(rstast.NewText(display))
	switch {
	case refuri != "":
		node.SetAttr("refuri", rstast.AttrString(refuri))
	case refname != "":
		node.SetAttr("refname", rstast.AttrString(refname))
		s.ctx.Doc.RefNames[refname] = append(s.ctx.Doc.RefNames[refname], node)
	case anonymous:
		node.SetAttr("anonymous", rstast.AttrBool(true))
	default:
		name := fullyNormalize(display)
		node.SetAttr("refname", rstast.AttrString(name))
		node.Names = []string{name}
		s.ctx.Doc.RefNames[name] = append(s.ctx.Doc.RefNames[name], node)
	}
	return node
}

// defaultRole is applied to interpreted text with no prefix or suffix
// role, matching docutils' built-in default: title-reference.
const defaultRole = "title-reference"

func (s *scanner) buildInterpreted(roleName, content string) *rstast.Node {
	if roleName == "" {
		roleName = defaultRole
	}
	if s.ctx.LookupRole != nil {
		if fn, ok := s.ctx.LookupRole(roleName); ok {
			nodes, messages := fn(roleName, content, content, s.line, s.ctx)
			s.out = append(s.out, messages...)
			if len(nodes) == 1 {
				return nodes[0]
			}
			wrapper := rstast.NewNode(rstast.KindRole)
			wrapper.AppendAll(nodes...)
			return wrapper
		}
	}
	node := rstast.NewNode(rstast.KindRole)
	node.SourceID = s.sourceID
	node.Line = s.line
	node.SetAttr("role", rstast.AttrString(roleName))
	node.Append(rstast.NewText(content))
	return node
}

// --- inline targets -----------------------------------------------------------------

func (s *scanner) tryInlineTarget() bool {
	start := s.pos
	before := s.runes[:start]
	if !precededByOpenQuoting(before) {
		return false
	}
	contentStart := start + 2
	end := s.findDelimiter([]rune{'`'}, contentStart)
	if end < 0 {
		s.warn("Inline internal target start-string without end-string.")
		return false
	}
	after := s.runes[end+1:]
	if !followedByCloseQuoting(after) {
		return false
	}
	content := Unescape(string(s.runes[contentStart:end]), false)
	name := fullyNormalize(content)

	node := rstast.NewNode(rstast.KindTargetIdentifier)
	node.SourceID = s.sourceID
	node.Line = s.line
	node.Append(rstast.NewText(content))
	node.Names = []string{name}
	node.IDs = []string{s.ctx.Doc.NewAutoID(name)}
	s.ctx.Doc.RegisterElement(node, true)

	s.emitConstruct(node)
	s.pos = end + 1
	return true
}

// --- substitution references ---------------------------------------------------------

func (s *scanner) trySubstitution() bool {
	start := s.pos
	before := s.runes[:start]
	if !precededByOpenQuoting(before) {
		return false
	}
	end := s.findDelimiter([]rune{'|'}, start+1)
	if end < 0 {
		s.warn("Inline substitution_reference start-string without end-string.")
		return false
	}
	cursor := end + 1
	anonymous := false
	isRef := cursor < len(s.runes) && s.runes[cursor] == '_'
	if isRef {
		cursor++
		if cursor < len(s.runes) && s.runes[cursor] == '_' {
			anonymous = true
			cursor++
		}
	}
	after := s.runes[cursor:]
	if !followedByCloseQuoting(after) {
		return false
	}
	content := Unescape(string(s.runes[start+1:end]), false)
	name := fullyNormalize(content)

	node := rstast.NewNode(rstast.KindSubstitutionReference)
	node.SourceID = s.sourceID
	node.Line = s.line
	node.Append(rstast.NewText(content))
	node.SetAttr("refname", rstast.AttrString(name))
	if isRef {
		node.SetAttr("is_reference", rstast.AttrBool(true))
		node.SetAttr("anonymous", rstast.AttrBool(anonymous))
	}
	s.emitConstruct(node)
	s.pos = cursor
	return true
}

// --- footnote / citation references ---------------------------------------------------

var footnoteLabelPattern = regexp.MustCompile(`^\[([0-9]+|#[A-Za-z][A-Za-z0-9_.+-]*|#|\*|[A-Za-z][A-Za-z0-9_.+-]*)\]_`)

func (s *scanner) tryFootnoteRef() bool {
	before := s.runes[:s.pos]
	if !precededByOpenQuoting(before) {
		return false
	}
	remaining := string(s.runes[s.pos:])
	m := footnoteLabelPattern.FindStringSubmatch(remaining)
	if m == nil {
		return false
	}
	label := m[1]
	matchedRunes := len([]rune(m[0]))
	afterIdx := s.pos + matchedRunes
	after := s.runes[afterIdx:]
	if !followedByCloseQuoting(after) {
		return false
	}

	var node *rstast.Node
	switch {
	case label == "#":
		node = rstast.NewNode(rstast.KindFootnoteReference)
		node.SetAttr("auto", rstast.AttrInt(s.ctx.nextAutoFootnoteNumber()))
		s.ctx.Doc.AutoFootnotes = append(s.ctx.Doc.AutoFootnotes, node)

	case strings.HasPrefix(label, "#"):
		name := fullyNormalize(strings.TrimPrefix(label, "#"))
		node = rstast.NewNode(rstast.KindFootnoteReference)
		node.SetAttr("auto", rstast.AttrInt(s.ctx.nextAutoFootnoteNumber()))
		node.SetAttr("refname", rstast.AttrString(name))
		s.ctx.Doc.FootnoteRefs[name] = append(s.ctx.Doc.FootnoteRefs[name], node)

	case label == "*":
		node = rstast.NewNode(rstast.KindFootnoteReference)
		symbol := s.ctx.nextAutoSymbol()
		node.SetAttr("auto_symbol", rstast.AttrString(symbol))
		s.ctx.Doc.SymbolFootnotes = append(s.ctx.Doc.SymbolFootnotes, node)

	case isDigits(label):
		node = rstast.NewNode(rstast.KindFootnoteReference)
		node.SetAttr("refname", rstast.AttrString(label))
		node.Append(rstast.NewText(label))
		s.ctx.Doc.FootnoteRefs[label] = append(s.ctx.Doc.FootnoteRefs[label], node)

	default:
		name := fullyNormalize(label)
		node = rstast.NewNode(rstast.KindCitationReference)
		node.SetAttr("refname", rstast.AttrString(name))
		node.Append(rstast.NewText(label))
		s.ctx.Doc.CitationRefs[name] = append(s.ctx.Doc.CitationRefs[name], node)
	}
	node.SourceID = s.sourceID
	node.Line = s.line

	s.emitConstruct(node)
	s.pos = afterIdx
	return true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// --- simple hyperlink references -------------------------------------------------------

var simpleRefPattern = regexp.MustCompile(`^([A-Za-z0-9][A-Za-z0-9.+-]*)(__|_)`)

func (s *scanner) trySimpleReference() bool {
	before := s.runes[:s.pos]
	if !precededByOpenQuoting(before) {
		return false
	}
	remaining := string(s.runes[s.pos:])
	m := simpleRefPattern.FindStringSubmatch(remaining)
	if m == nil {
		return false
	}
	matchedRunes := len([]rune(m[0]))
	afterIdx := s.pos + matchedRunes
	after := s.runes[afterIdx:]
	if !followedByCloseQuoting(after) {
		return false
	}

	name := m[1]
	anonymous := m[2] == "__"

	node := rstast.NewNode(rstast.KindReference)
	node.SourceID = s.sourceID
	node.Line = s.line
	node.Append(rstast.NewText(name))
	if anonymous {
		node.SetAttr("anonymous", rstast.AttrBool(true))
	} else {
		refname := fullyNormalize(name)
		node.SetAttr("refname", rstast.AttrString(refname))
		s.ctx.Doc.RefNames[refname] = append(s.ctx.Doc.RefNames[refname], node)
	}

	s.emitConstruct(node)
	s.pos = afterIdx
	return true
}
