// Package rstline implements the LineStore described in spec.md §4.A:
// an immutable-feeling, slice-capable line buffer that remembers each
// line's source provenance and supports the in-place trims, pops, and
// removals the state machine needs as it consumes a document.
package rstline

import (
	"fmt"
	"strings"
)

// Offset identifies a line's original position before any tab
// expansion or whitespace trimming: the line is left empty at
// one-past-end, matching spec.md §4.A's info(len) behavior.
type Offset struct {
	Line int
	// Empty reports whether this Offset carries no real line
	// information (the one-past-end case).
	Empty bool
}

// ErrOutOfRange is returned by indexed accessors given an index outside
// [0, Len()).
type ErrOutOfRange struct {
	Index, Len int
}

func (e *ErrOutOfRange) Error() string {
	return fmt.Sprintf("line index %d out of range [0, %d)", e.Index, e.Len)
}

// ErrBadTrim is returned by TrimStart/TrimEnd given a count outside
// [0, Len()].
type ErrBadTrim struct {
	N, Len int
}

func (e *ErrBadTrim) Error() string {
	return fmt.Sprintf("trim count %d out of range [0, %d]", e.N, e.Len)
}

// line is one normalized line of text plus its provenance.
type line struct {
	text     string
	sourceID string
	offset   int // original line number within sourceID, 0-based
}

// LineStore is an ordered sequence of Lines with constant-time indexed
// access. A child view produced by Slice shares the backing lines slice
// of its root and remembers a parentOffset so writes with propagation
// reach the parent; disconnect() severs that link.
type LineStore struct {
	lines        []line
	parent       *LineStore
	parentOffset int
}

// FromSource splits text into a LineStore: split on '\n', each tab
// expanded to tabWidth spaces, each line right-trimmed, and — when
// convertWhitespace is set — vertical-tab and form-feed characters
// replaced with an ordinary space, per spec.md §3/§4.A.
func FromSource(text string, tabWidth int, convertWhitespace bool, sourceID string) *LineStore {
	if tabWidth < 1 {
		tabWidth = 1
	}
	rawLines := strings.Split(text, "\n")
	out := make([]line, len(rawLines))
	for i, raw := range rawLines {
		expanded := expandTabs(raw, tabWidth)
		if convertWhitespace {
			expanded = strings.Map(func(r rune) rune {
				if r == '\v' || r == '\f' {
					return ' '
				}
				return r
			}, expanded)
		}
		expanded = strings.TrimRight(expanded, " \t")
		out[i] = line{text: expanded, sourceID: sourceID, offset: i}
	}
	return &LineStore{lines: out}
}

// expandTabs replaces each tab with enough spaces to reach the next
// tabWidth-column stop, tracking visual column rather than byte index
// so multi-byte runes before a tab are counted once each.
func expandTabs(s string, tabWidth int) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			spaces := tabWidth - (col % tabWidth)
			b.WriteString(strings.Repeat(" ", spaces))
			col += spaces
			continue
		}
		b.WriteRune(r)
		col++
	}
	return b.String()
}

// Len returns the number of lines currently in the view.
func (s *LineStore) Len() int { return len(s.lines) }

// Text returns line i's normalized text.
func (s *LineStore) Text(i int) (string, error) {
	if i < 0 || i >= len(s.lines) {
		return "", &ErrOutOfRange{Index: i, Len: len(s.lines)}
	}
	return s.lines[i].text, nil
}

// MustText is Text without the error return, for call sites that have
// already range-checked i (e.g. a loop bounded by Len()).
func (s *LineStore) MustText(i int) string {
	t, err := s.Text(i)
	if err != nil {
		panic(err)
	}
	return t
}

// Info returns (sourceID, offset) for line i. When i == Len(), it
// returns the previous line's sourceID with an empty Offset, per
// spec.md §4.A; on an empty store this is the store's own sourceID (or
// "" if it has never held a line) with an empty Offset.
func (s *LineStore) Info(i int) (string, Offset) {
	n := len(s.lines)
	if i >= 0 && i < n {
		ln := s.lines[i]
		return ln.sourceID, Offset{Line: ln.offset, Empty: false}
	}
	if n > 0 {
		last := s.lines[n-1]
		return last.sourceID, Offset{Empty: true}
	}
	return "", Offset{Empty: true}
}

// Slice returns a child view over [start, end); removals performed on
// the child with Pop or RemoveRange also remove the lines from the
// parent at the mapped indices, while TrimStart/TrimEnd do not.
func (s *LineStore) Slice(start, end int) (*LineStore, error) {
	if start < 0 || end > len(s.lines) || start > end {
		return nil, &ErrOutOfRange{Index: start, Len: len(s.lines)}
	}
	child := &LineStore{
		lines:        s.lines[start:end:end],
		parent:       s,
		parentOffset: start,
	}
	return child, nil
}

// Disconnect drops this view's parent link, stopping future
// propagating mutations from reaching it.
func (s *LineStore) Disconnect() { s.parent = nil }

// TrimStart removes n lines from the front of the view without parent
// propagation.
func (s *LineStore) TrimStart(n int) error {
	if n < 0 || n > len(s.lines) {
		return &ErrBadTrim{N: n, Len: len(s.lines)}
	}
	s.lines = s.lines[n:]
	return nil
}

// TrimEnd removes n lines from the back of the view without parent
// propagation.
func (s *LineStore) TrimEnd(n int) error {
	if n < 0 || n > len(s.lines) {
		return &ErrBadTrim{N: n, Len: len(s.lines)}
	}
	s.lines = s.lines[:len(s.lines)-n]
	return nil
}

// Pop removes the line at index i, propagating the removal to the
// parent view (if any) at the mapped index.
func (s *LineStore) Pop(i int) error {
	return s.RemoveRange(i, 1)
}

// RemoveRange removes the n lines starting at index i, propagating the
// removal to the parent view (if any) at the mapped index range.
func (s *LineStore) RemoveRange(i, n int) error {
	if i < 0 || n < 0 || i+n > len(s.lines) {
		return &ErrOutOfRange{Index: i, Len: len(s.lines)}
	}
	s.lines = append(s.lines[:i:i], s.lines[i+n:]...)
	if s.parent != nil {
		parentIdx := s.parentOffset + i
		if err := s.parent.RemoveRange(parentIdx, n); err != nil {
			return err
		}
		// Every index in this view after i shifted by n in the
		// parent's backing array too, but child views only ever read
		// parentOffset for the *first* propagated remove because
		// lines past i were already dropped from s.lines above; no
		// further index bookkeeping is needed here.
	}
	return nil
}

// Lines returns every line's text, in order — used by callers (and
// tests) that want the whole view as a string slice rather than
// indexing one line at a time.
func (s *LineStore) Lines() []string {
	out := make([]string, len(s.lines))
	for i, ln := range s.lines {
		out[i] = ln.text
	}
	return out
}

// Join renders the view back into a single newline-joined string.
func (s *LineStore) Join() string {
	return strings.Join(s.Lines(), "\n")
}

// TrimLeftN removes up to n leading space characters from every line in
// the view in place (used by the indented-block strip_indent path in
// rstindent). first, if non-negative, overrides n for line 0 only.
func (s *LineStore) TrimLeftN(n int, first int) {
	for i := range s.lines {
		strip := n
		if i == 0 && first >= 0 {
			strip = first
		}
		text := s.lines[i].text
		trimmed := 0
		for trimmed < strip && trimmed < len(text) && text[trimmed] == ' ' {
			trimmed++
		}
		s.lines[i].text = text[trimmed:]
	}
}
