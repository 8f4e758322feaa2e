// Package rstinline implements the InlineTokenizer from spec.md §4.C:
// inline markup recognition (emphasis, strong, literal, interpreted
// text, references, footnotes, substitutions, inline targets,
// standalone URIs) over a null-escaped string.
package rstinline

import (
	"regexp"
	"strings"

	"github.com/grove-platform/docparse/internal/rstid"
	"github.com/grove-platform/docparse/rstast"
)

// Tokenize scans text (ordinary, non-escaped source text, as it
// appears in the document) and returns the inline nodes it produces,
// per spec.md §4.C. Any SystemMessage nodes produced along the way are
// appended to the returned slice as siblings of the inline nodes around
// the point of failure, matching "for syntax diagnostics the AST always
// completes" (spec.md §7) and "SystemMessage nodes appearing anywhere
// in the tree" (spec.md §9 open questions).
func Tokenize(ctx *Context, text, sourceID string, line int) []*rstast.Node {
	s := &scanner{
		ctx:      ctx,
		runes:    []rune(EscapeToNull(text)),
		sourceID: sourceID,
		line:     line,
	}
	s.run()
	s.flushPending()
	return s.out
}

type scanner struct {
	ctx      *Context
	runes    []rune
	pos      int
	sourceID string
	line     int

	out     []*rstast.Node
	pending []rune // plain text accumulated since the last construct
}

func (s *scanner) run() {
	for s.pos < len(s.runes) {
		r := s.runes[s.pos]

		if r == nul {
			// An escaped character: emit literally, never as markup.
			if s.pos+1 < len(s.runes) {
				s.pending = append(s.pending, s.runes[s.pos+1])
				s.pos += 2
			} else {
				s.pos++
			}
			continue
		}

		switch {
		case r == '*' && s.peek(1) == '*':
			if s.tryStrong() {
				continue
			}
		case r == '*':
			if s.tryEmphasis() {
				continue
			}
		case r == '`' && s.peek(1) == '`':
			if s.tryLiteral() {
				continue
			}
		case r == '`':
			if s.tryInterpretedOrPhraseRef("") {
				continue
			}
		case r == '_' && s.peek(1) == '`':
			if s.tryInlineTarget() {
				continue
			}
		case r == ':' && s.atRoleStart():
			if s.tryRolePrefixed() {
				continue
			}
		case r == '|':
			if s.trySubstitution() {
				continue
			}
		case r == '[':
			if s.tryFootnoteRef() {
				continue
			}
		case isWordChar(r) && s.atWordBoundary():
			if s.trySimpleReference() {
				continue
			}
		}

		s.pending = append(s.pending, r)
		s.pos++
	}
}

func (s *scanner) peek(offset int) rune {
	if s.pos+offset >= len(s.runes) {
		return 0
	}
	return s.runes[s.pos+offset]
}

func (s *scanner) lastEmitted() rune {
	if len(s.pending) > 0 {
		return s.pending[len(s.pending)-1]
	}
	if len(s.out) > 0 {
		if t := s.out[len(s.out)-1].AstText(); t != "" {
			r := []rune(t)
			return r[len(r)-1]
		}
	}
	return 0
}

func (s *scanner) atWordBoundary() bool {
	prev := s.lastEmitted()
	return prev == 0 || !isWordChar(prev)
}

// flushPending closes out the plain-text buffer accumulated since the
// last construct, running implicit standalone-URI/email detection over
// it before emitting a Text node, per spec.md §4.C ("after every
// non-matching region, applies implicit inline").
func (s *scanner) flushPending() {
	if len(s.pending) == 0 {
		return
	}
	text := Unescape(string(s.pending), false)
	s.pending = nil
	s.out = append(s.out, applyImplicit(text)...)
}

func (s *scanner) emitConstruct(nodes ...*rstast.Node) {
	s.flushPending()
	s.out = append(s.out, nodes...)
}

func (s *scanner) warn(format string, args ...any) *rstast.Node {
	return s.ctx.Reporter.Warning(s.sourceID, s.line, format, args...)
}

// --- strong / emphasis / literal -------------------------------------------------

func (s *scanner) tryStrong() bool {
	return s.tryDelimited("**", rstast.KindStrong, "Inline strong start-string without end-string.")
}

func (s *scanner) tryEmphasis() bool {
	// A run of 2+ asterisks is strong's territory, not emphasis'.
	if s.peek(1) == '*' {
		return false
	}
	return s.tryDelimited("*", rstast.KindEmphasis, "Inline emphasis start-string without end-string.")
}

func (s *scanner) tryLiteral() bool {
	start := s.pos
	before := s.runes[:start]
	if !precededByOpenQuoting(before) {
		return false
	}
	contentStart := start + 2
	end := s.findLiteral(contentStart)
	if end < 0 {
		return false
	}
	after := s.runes[end+2:]
	if !followedByCloseQuoting(after) {
		return false
	}
	content := Unescape(string(s.runes[contentStart:end]), false)
	node := rstast.NewNode(rstast.KindLiteral)
	node.Text = content
	node.SourceID = s.sourceID
	node.Line = s.line
	s.emitConstruct(node)
	s.pos = end + 2
	return true
}

func (s *scanner) findLiteral(from int) int {
	for i := from; i+1 < len(s.runes); i++ {
		if s.runes[i] == '`' && s.runes[i+1] == '`' && (i == 0 || s.runes[i-1] != nul) {
			return i
		}
	}
	return -1
}

// tryDelimited implements the shared shape of strong/emphasis: a
// literal delimiter string opening and closing a run of text, each side
// quoting-checked per spec.md §4.C.
func (s *scanner) tryDelimited(delim string, kind rstast.Kind, failMsg string) bool {
	start := s.pos
	dr := []rune(delim)
	before := s.runes[:start]
	if !precededByOpenQuoting(before) {
		return false
	}
	contentStart := start + len(dr)
	if contentStart < len(s.runes) && s.runes[contentStart] == ' ' {
		return false // start-string immediately followed by whitespace never opens
	}
	end := s.findDelimiter(dr, contentStart)
	if end < 0 {
		s.warn("%s", failMsg)
		return false
	}
	if end > contentStart && s.runes[end-1] == ' ' {
		// end-string immediately preceded by whitespace: keep
		// searching further along for a legal close.
		next := s.findDelimiter(dr, end+len(dr))
		for next >= 0 && s.runes[next-1] == ' ' {
			next = s.findDelimiter(dr, next+len(dr))
		}
		end = next
		if end < 0 {
			s.warn("%s", failMsg)
			return false
		}
	}
	after := s.runes[end+len(dr):]
	if !followedByCloseQuoting(after) {
		s.warn("%s", failMsg)
		return false
	}

	content := Unescape(string(s.runes[contentStart:end]), false)
	node := rstast.NewNode(kind)
	node.SourceID = s.sourceID
	node.Line = s.line
	node.Append(rstast.NewText(content))
	s.emitConstruct(node)
	s.pos = end + len(dr)
	return true
}

func (s *scanner) findDelimiter(delim []rune, from int) int {
	n := len(delim)
outer:
	for i := from; i+n <= len(s.runes); i++ {
		if i > 0 && s.runes[i-1] == nul {
			continue
		}
		for j := 0; j < n; j++ {
			if s.runes[i+j] != delim[j] {
				continue outer
			}
		}
		return i
	}
	return -1
}

// --- standalone URI / email (implicit) --------------------------------------------

var (
	knownSchemes   = `(?:https?|ftp|mailto|file|git|ssh|gopher|telnet)`
	standaloneURI  = regexp.MustCompile(knownSchemes + `://[^\s<>"']+[^\s<>"'.,;:!?)\]]`)
	standaloneMail = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
)

// applyImplicit scans plain text for standalone URIs/emails, turning
// them into Reference nodes (emails get a mailto: scheme), and wraps
// the rest in Text nodes, per spec.md §4.C.
func applyImplicit(text string) []*rstast.Node {
	type match = struct {
		start, end int
		uri        string
		isEmail    bool
	}
	var matches []match
	for _, m := range standaloneURI.FindAllStringIndex(text, -1) {
		matches = append(matches, match{start: m[0], end: m[1], uri: text[m[0]:m[1]]})
	}
	for _, m := range standaloneMail.FindAllStringIndex(text, -1) {
		overlaps := false
		for _, existing := range matches {
			if m[0] < existing.end && existing.start < m[1] {
				overlaps = true
				break
			}
		}
		if !overlaps {
			matches = append(matches, match{start: m[0], end: m[1], uri: text[m[0]:m[1]], isEmail: true})
		}
	}
	if len(matches) == 0 {
		return []*rstast.Node{rstast.NewText(text)}
	}
	sortMatches(matches)

	var out []*rstast.Node
	cursor := 0
	for _, m := range matches {
		if m.start < cursor {
			continue
		}
		if m.start > cursor {
			out = append(out, rstast.NewText(text[cursor:m.start]))
		}
		ref := rstast.NewNode(rstast.KindReference)
		ref.Append(rstast.NewText(m.uri))
		if m.isEmail {
			ref.SetAttr("refuri", rstast.AttrString("mailto:"+m.uri))
		} else {
			ref.SetAttr("refuri", rstast.AttrString(m.uri))
		}
		out = append(out, ref)
		cursor = m.end
	}
	if cursor < len(text) {
		out = append(out, rstast.NewText(text[cursor:]))
	}
	return out
}

func sortMatches(m []struct {
	start, end int
	uri        string
	isEmail    bool
}) {
	for i := 1; i < len(m); i++ {
		for j := i; j > 0 && m[j-1].start > m[j].start; j-- {
			m[j-1], m[j] = m[j], m[j-1]
		}
	}
}

// fullyNormalize is the tokenizer's local handle onto the shared name
// normalization rule (spec.md §4.I), reused for refnames and
// substitution/footnote/citation labels.
func fullyNormalize(s string) string { return rstid.FullyNormalizeName(s) }

func trimRight(s string) string { return strings.TrimRight(s, " \t") }
