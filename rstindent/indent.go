// Package rstindent implements the IndentEngine from spec.md §4.B: the
// two algorithms block states use to carve contiguous text blocks and
// indented blocks out of a LineStore, anchored at the state machine's
// current line cursor.
package rstindent

import (
	"strings"

	"github.com/grove-platform/docparse/rstline"
)

// ErrUnexpectedIndentation is raised by TextBlock when flushLeft is set
// and some line in the contiguous run begins with a space. It carries
// the partial block collected before the offending line so the caller
// (TextState, per spec.md §4.E) can still make use of what was
// gathered.
type ErrUnexpectedIndentation struct {
	Partial  *rstline.LineStore
	SourceID string
	Line     int
}

func (e *ErrUnexpectedIndentation) Error() string {
	return "unexpected indentation"
}

// leadingSpaces returns the count of leading ' ' characters in s.
func leadingSpaces(s string) int {
	n := 0
	for n < len(s) && s[n] == ' ' {
		n++
	}
	return n
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// TextBlock returns the maximal contiguous run of non-blank lines of
// store starting at start. When flushLeft is set and any line in the
// run begins with a space, it returns ErrUnexpectedIndentation carrying
// the lines collected before the offending one.
func TextBlock(store *rstline.LineStore, start int, flushLeft bool) (*rstline.LineStore, error) {
	end := start
	for end < store.Len() && !isBlank(store.MustText(end)) {
		line := store.MustText(end)
		if flushLeft && leadingSpaces(line) > 0 {
			partial, _ := store.Slice(start, end)
			src, off := store.Info(end)
			return nil, &ErrUnexpectedIndentation{Partial: partial, SourceID: src, Line: off.Line}
		}
		end++
	}
	block, _ := store.Slice(start, end)
	return block, nil
}

// Result is the outcome of Indented: the carved block, its common
// indent width, and whether the block terminated because it ran off
// the end of the store or its last consumed line was blank.
type Result struct {
	Block       *rstline.LineStore
	Indent      int
	BlankFinish bool
}

// Options configures Indented's terminator and stripping behavior, per
// spec.md §4.B.
type Options struct {
	UntilBlank  bool
	StripIndent bool
	// BlockIndent, when >= 0, fixes the terminator column and the
	// reported indent instead of computing the minimum indent from the
	// block's own lines.
	BlockIndent int
	// FirstIndent, when >= 0, is the number of columns stripped from
	// the block's first line instead of Indent/BlockIndent.
	FirstIndent int
}

const unset = -1

// NoBlockIndent and NoFirstIndent are the Options field values meaning
// "not provided", matching the optional `block_indent?`/`first_indent?`
// parameters in spec.md §4.B.
const (
	NoBlockIndent = unset
	NoFirstIndent = unset
)

// DefaultOptions returns an Options with BlockIndent and FirstIndent
// set to "not provided". Options{} alone is NOT safe to pass to
// Indented, because a zero BlockIndent/FirstIndent would be
// indistinguishable from an explicit 0; callers build on top of
// DefaultOptions() instead.
func DefaultOptions() Options {
	return Options{BlockIndent: unset, FirstIndent: unset}
}

// Indented walks forward from start, collecting an indented block per
// spec.md §4.B: a line terminates the block when it is non-blank and
// either has no leading space or, when BlockIndent is set, the first
// BlockIndent columns contain non-space; a blank line also terminates
// when UntilBlank is set.
func Indented(store *rstline.LineStore, start int, opts Options) Result {
	end := start
	minIndent := -1
	lastBlank := false

	for end < store.Len() {
		text := store.MustText(end)
		blank := isBlank(text)

		if blank {
			lastBlank = true
			if opts.UntilBlank {
				break
			}
			end++
			continue
		}
		lastBlank = false

		indent := leadingSpaces(text)
		if opts.BlockIndent != unset {
			if indent < opts.BlockIndent {
				break
			}
		} else if indent == 0 {
			break
		}

		if opts.BlockIndent == unset {
			if minIndent == -1 || indent < minIndent {
				minIndent = indent
			}
		}
		end++
	}

	indent := opts.BlockIndent
	if indent == unset {
		if minIndent == -1 {
			indent = 0
		} else {
			indent = minIndent
		}
	}

	blankFinish := end >= store.Len() || lastBlank

	block, _ := store.Slice(start, end)

	if opts.StripIndent && block.Len() > 0 {
		first := unset
		if opts.FirstIndent != unset {
			first = opts.FirstIndent
		}
		block.TrimLeftN(indent, first)
	}

	return Result{Block: block, Indent: indent, BlankFinish: blankFinish}
}

// KnownIndent is the convenience form for when the whole block's indent
// is already known (e.g. a directive body carved at a fixed column):
// equivalent to Indented with BlockIndent fixed at indent.
func KnownIndent(store *rstline.LineStore, start, indent int, untilBlank, stripIndent bool) Result {
	return Indented(store, start, Options{
		UntilBlank:  untilBlank,
		StripIndent: stripIndent,
		BlockIndent: indent,
		FirstIndent: unset,
	})
}

// FirstKnownIndent is the convenience form for when only the first
// line's indent is known (e.g. a definition-list definition whose
// first line's indent fixes the block but later lines may vary, or a
// directive body's first content line): it strips firstIndent from
// line 0 and otherwise measures/strips the common indent normally.
func FirstKnownIndent(store *rstline.LineStore, start, firstIndent int, untilBlank, stripIndent bool) Result {
	return Indented(store, start, Options{
		UntilBlank:  untilBlank,
		StripIndent: stripIndent,
		BlockIndent: unset,
		FirstIndent: firstIndent,
	})
}
