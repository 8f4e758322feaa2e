// Package rstdirective implements the DirectiveRegistry and
// DirectiveRuntime from spec.md §4.F/§4.G: a domain-qualified lookup of
// directive and role handlers, plus the runtime that validates a
// matched directive's arguments and options against its spec and
// dispatches to the handler.
package rstdirective

import (
	"github.com/grove-platform/docparse/rstast"
)

// DirectiveError is how a handler signals a recoverable, user-facing
// problem (spec.md §4.G/§7): the runtime converts it into a
// SystemMessage node carrying a literal-block copy of the offending
// source, rather than failing the parse.
type DirectiveError struct {
	Level   rstast.Severity
	Message string
}

func (e *DirectiveError) Error() string { return e.Message }

// OptionValidator converts one option's raw string value (has is false
// when the field body was empty, i.e. a flag-shaped option) into a
// typed Go value, or returns an error naming what was wrong with it.
type OptionValidator func(raw string, has bool) (any, error)

// DirectiveFunc is the Go shape of spec.md §6's directive `run`
// function: given a fully validated Invocation, it returns the nodes to
// splice into the tree, or a *DirectiveError for a recoverable failure.
type DirectiveFunc func(inv *Invocation) ([]*rstast.Node, error)

// DirectiveSpec mirrors spec.md §4.G's DirectiveSpec record.
type DirectiveSpec struct {
	RequiredArgs       int
	OptionalArgs       int
	FinalArgWhitespace bool
	HasContent         bool
	OptionSpec         map[string]OptionValidator
	Run                DirectiveFunc
}
