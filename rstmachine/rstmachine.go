// Package rstmachine implements the StateMachine from spec.md §4.D: a
// line-cursor-driven dispatcher that walks a LineStore one line at a
// time, running each line through the current State's ordered
// transition list and switching states (or nesting a sub-machine) as
// transitions direct.
package rstmachine

import (
	"github.com/grove-platform/docparse/rstast"
	"github.com/grove-platform/docparse/rstinline"
	"github.com/grove-platform/docparse/rstline"
	"github.com/grove-platform/docparse/rstreport"
)

// Memo is the small bundle of parse-wide collaborators a sub-machine
// shares with its parent (spec.md §4.D: "a sub-machine shares the
// Document, reporter, and inliner via a shared memo record").
type Memo struct {
	Doc        *rstast.Document
	Reporter   *rstreport.Reporter
	Inline     *rstinline.Context
	TabWidth   int
	Directives DirectiveRuntime
}

// DirectiveRuntime is the narrow interface rstblocks' explicit-markup
// transition uses to invoke a registered directive by name. Declared
// here rather than in rstdirective so that rstblocks can depend on
// rstmachine without rstmachine depending on rstdirective: rstdirective
// depends on rstmachine (for Context/Memo), not the other way around,
// and rstblocks is handed a DirectiveRuntime implementation through
// Memo.Directives at the top of a parse.
type DirectiveRuntime interface {
	Invoke(req DirectiveRequest) (nodes []*rstast.Node, messages []*rstast.Node)
}

// DirectiveRequest is everything a directive handler needs: the parsed
// argument/option/content blocks (already split out by the caller's
// IndentEngine work) plus a NestedParse callback so a directive that
// embeds body content (admonitions, topic, sidebar) can recurse back
// into the BlockStates without rstdirective importing rstblocks.
type DirectiveRequest struct {
	Name          string
	Arguments     []string
	Options       map[string]rstast.AttrValue
	Content       *rstline.LineStore
	ContentOffset int
	BlockText     string
	SourceID      string
	Line          int
	Ctx           *Context
	NestedParse   func(content *rstline.LineStore) []*rstast.Node
}

// Context is the mutable per-line state threaded through transition
// methods: which node new children are appended to, and the section
// nesting depth used to decide whether a title's underline style opens
// a new subsection or belongs to an ancestor.
type Context struct {
	Memo   *Memo
	Parent *rstast.Node

	// SectionRoot is the container a level-0 section title attaches to:
	// fixed once at Context construction, since Parent itself gets
	// repointed at the deepest open section as titles are encountered.
	SectionRoot *rstast.Node

	SectionLevel   int
	SectionStyles  []rune         // underline/overline characters seen, indexed by level
	SectionStack   []*rstast.Node // open section nodes, indexed by level (parallel to SectionStyles)
	LiteralPending bool           // previous paragraph ended in "::"
}

// Child returns a copy of ctx with Parent replaced, for descending into
// a freshly created node without disturbing the caller's Context.
func (ctx *Context) Child(parent *rstast.Node) *Context {
	cp := *ctx
	cp.Parent = parent
	return &cp
}

// SignalKind distinguishes the three non-error control-flow exceptions
// spec.md §9 calls out as algorithmic, not erroneous: a transition
// method can hand back a Signal instead of (or alongside) an ordinary
// next-state name to ask the run loop to backtrack.
type SignalKind int

const (
	// SignalNone means the transition completed normally; NextState
	// names the state to run next.
	SignalNone SignalKind = iota
	// SignalEOF asks the run loop to end the current machine's run,
	// invoking the current state's EOF hook. Raised naturally when the
	// LineStore is exhausted, and also by specialized sub-states that
	// meet a line outside what they track (spec.md §4.E: "anything
	// other than the marker kind they track reverts to the parent via
	// EOF"); in the latter case the transition must call
	// Machine.PreviousLine before returning so the unconsumed line is
	// re-offered to the parent machine.
	SignalEOF
	// SignalTransitionCorrection asks the run loop to re-examine the
	// same line, restricted to the single named transition of the
	// current state. The transition must call Machine.PreviousLine
	// before returning.
	SignalTransitionCorrection
	// SignalStateCorrection is like SignalTransitionCorrection but
	// additionally switches the current state to NewState before
	// retrying.
	SignalStateCorrection
)

// Signal is the result type spec.md §9 prescribes in place of
// exceptions for EOF/TransitionCorrection/StateCorrection.
type Signal struct {
	Kind       SignalKind
	RestrictTo string // transition name to retry; empty means unrestricted
	NewState   string // only meaningful for SignalStateCorrection
}

// InternalError marks a programming-error condition (spec.md §4.D: "no
// transition pattern match is a programming error"). It is panicked by
// checkLine and recovered exactly once, at the top of Run, which turns
// it into a returned error — the three-axis error/signal/panic split
// spec.md §7 calls for.
type InternalError struct {
	Message string
}

func (e InternalError) Error() string { return e.Message }

// Observer receives (sourceID, line) on every cursor move, per
// spec.md §4.D.
type Observer func(sourceID string, line int)
