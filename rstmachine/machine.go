package rstmachine

import (
	"strings"

	"github.com/grove-platform/docparse/rstline"
)

// ErrEOF is returned by NextLine once the LineStore is exhausted.
var ErrEOF errEOF

type errEOF struct{}

func (errEOF) Error() string { return "EOF" }

// Machine is the line cursor plus dispatch loop from spec.md §4.D. A
// Machine owns one LineStore and walks it one line at a time; nested
// sub-machines are created with NestedMachine and share the parent's
// Memo (Document, Reporter, inline Context).
type Machine struct {
	Lines *rstline.LineStore
	Memo  *Memo

	index int // index of the current line; -1 before the first NextLine call

	observers []Observer
	pool      *reusePool
}

// NewMachine builds a Machine over lines, sharing memo with any
// sibling/parent machines in the same parse.
func NewMachine(lines *rstline.LineStore, memo *Memo) *Machine {
	return &Machine{Lines: lines, Memo: memo, index: -1, pool: &reusePool{}}
}

// AddObserver registers obs to be called with (sourceID, line) on every
// cursor move, per spec.md §4.D.
func (m *Machine) AddObserver(obs Observer) {
	m.observers = append(m.observers, obs)
}

func (m *Machine) notify() {
	if len(m.observers) == 0 {
		return
	}
	source, line := m.GetSourceAndLine()
	for _, obs := range m.observers {
		obs(source, line)
	}
}

// NextLine advances the cursor and returns the new current line's text,
// or ErrEOF if the LineStore is exhausted.
func (m *Machine) NextLine() (string, error) {
	if m.index+1 >= m.Lines.Len() {
		m.index = m.Lines.Len()
		return "", ErrEOF
	}
	m.index++
	m.notify()
	return m.Lines.MustText(m.index), nil
}

// PreviousLine rewinds the cursor by one line, for a transition that
// needs the current line re-offered (TransitionCorrection,
// StateCorrection, or a sub-state's artificial EOF).
func (m *Machine) PreviousLine() {
	m.index--
	m.notify()
}

// GotoLine moves the cursor directly to an absolute line index.
func (m *Machine) GotoLine(absOffset int) {
	m.index = absOffset
	m.notify()
}

// Index returns the LineStore index of the current line, for callers
// (rstblocks' IndentEngine-driven block carving) that need to hand a
// start position to rstindent alongside m.Lines.
func (m *Machine) Index() int { return m.index }

// AtEOF reports whether the cursor has no more lines to offer.
func (m *Machine) AtEOF() bool {
	return m.index+1 >= m.Lines.Len()
}

// IsNextLineBlank reports whether the line after the current one is
// blank, treating end-of-input as blank (matching docutils' use of this
// check to decide whether a list item's body is well-formed).
func (m *Machine) IsNextLineBlank() bool {
	if m.index+1 >= m.Lines.Len() {
		return true
	}
	return strings.TrimSpace(m.Lines.MustText(m.index+1)) == ""
}

// CurrentLine returns the current line's text. It panics if called
// before the first NextLine or after EOF, matching MustText's contract.
func (m *Machine) CurrentLine() string {
	return m.Lines.MustText(m.index)
}

// AbsLineOffset returns the 0-based offset of the current line within
// its original source.
func (m *Machine) AbsLineOffset() int {
	_, off := m.Lines.Info(m.index)
	return off.Line
}

// AbsLineNumber returns the 1-based line number of the current line
// within its original source.
func (m *Machine) AbsLineNumber() int {
	return m.AbsLineOffset() + 1
}

// GetSourceAndLine returns the source id and 1-based line number for
// line (the current line if line is omitted), per spec.md §4.D.
func (m *Machine) GetSourceAndLine(line ...int) (string, int) {
	idx := m.index
	if len(line) > 0 {
		idx = line[0]
	}
	source, off := m.Lines.Info(idx)
	if off.Empty {
		return source, 0
	}
	return source, off.Line + 1
}

// reusePool is the 1-slot LRU cache spec.md §4.D describes for
// sub-machines built with the default state configuration: "a small LRU
// cache of 1 reuses the machine when the default configuration is
// used".
type reusePool struct {
	cached *Machine
}

// NestedMachine returns a Machine over lines for a state to recurse
// into a contiguous sub-block. When useDefault is true (the sub-machine
// will run with the same state configuration most callers use), a
// previously released Machine is reused if one is cached; the caller
// must call ReleaseNested when done to make the Machine available for
// reuse by the next caller.
func (m *Machine) NestedMachine(lines *rstline.LineStore, useDefault bool) *Machine {
	if useDefault && m.pool.cached != nil {
		sub := m.pool.cached
		m.pool.cached = nil
		sub.Lines = lines
		sub.index = -1
		sub.observers = nil
		return sub
	}
	return NewMachine(lines, m.Memo)
}

// ReleaseNested returns sub to the reuse pool if it was built with the
// default configuration, for the next NestedMachine(..., true) call to
// pick up.
func (m *Machine) ReleaseNested(sub *Machine, useDefault bool) {
	if useDefault {
		m.pool.cached = sub
	}
}
