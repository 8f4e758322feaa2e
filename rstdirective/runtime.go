package rstdirective

import (
	"fmt"
	"strings"

	"github.com/grove-platform/docparse/rstast"
	"github.com/grove-platform/docparse/rstline"
	"github.com/grove-platform/docparse/rstmachine"
)

// Invocation is everything a DirectiveFunc needs to build its nodes,
// already validated against its DirectiveSpec: arguments counted and
// joined per FinalArgWhitespace, options converted through their
// validators, content present only if HasContent allows it.
type Invocation struct {
	Name          string
	Arguments     []string
	Options       map[string]any
	Content       *rstline.LineStore
	ContentOffset int
	BlockText     string
	SourceID      string
	Line          int
	Ctx           *rstmachine.Context
	NestedParse   func(content *rstline.LineStore) []*rstast.Node
}

// Lookup is the directive-resolution callback shape spec.md §6's
// OptionParser names "lookup_directive". Registry.LookupDirective
// satisfies it directly; Runtime accepts any function of this shape so
// a caller can substitute a narrower or test-specific resolver without
// building a whole Registry.
type Lookup func(name string) (DirectiveSpec, bool)

// Runtime implements rstmachine.DirectiveRuntime against a Lookup,
// turning a matched ".. name:: ..." construct into AST nodes (spec.md
// §4.G). It is immutable and safe to share across parses, same as the
// Registry a Lookup is typically bound to.
type Runtime struct {
	Lookup Lookup
}

// NewRuntime wraps lookup as an rstmachine.DirectiveRuntime.
func NewRuntime(lookup Lookup) *Runtime {
	return &Runtime{Lookup: lookup}
}

// Invoke implements rstmachine.DirectiveRuntime.
func (rt *Runtime) Invoke(req rstmachine.DirectiveRequest) ([]*rstast.Node, []*rstast.Node) {
	reporter := req.Ctx.Memo.Reporter

	spec, ok := rt.Lookup(req.Name)
	if !ok {
		msg := reporter.Error(req.SourceID, req.Line, "Unknown directive type %q.", req.Name)
		return nil, []*rstast.Node{msg, literalCopy(req.SourceID, req.Line, req.BlockText)}
	}

	arguments, err := validateArguments(spec, req.Arguments)
	if err != nil {
		return nil, rt.fail(req, err)
	}

	if !spec.HasContent && req.Content != nil && req.Content.Len() > 0 {
		return nil, rt.fail(req, &DirectiveError{Level: rstast.SeverityError,
			Message: fmt.Sprintf("Error in %q directive: no content permitted.", req.Name)})
	}

	options, err := validateOptions(spec, req.Options)
	if err != nil {
		return nil, rt.fail(req, err)
	}

	inv := &Invocation{
		Name: req.Name, Arguments: arguments, Options: options,
		Content: req.Content, ContentOffset: req.ContentOffset, BlockText: req.BlockText,
		SourceID: req.SourceID, Line: req.Line, Ctx: req.Ctx, NestedParse: req.NestedParse,
	}

	nodes, runErr := spec.Run(inv)
	if runErr != nil {
		return nodes, rt.fail(req, runErr)
	}
	return nodes, nil
}

// fail converts any error from argument/option validation or a handler
// body into a SystemMessage plus a literal-block copy of the source,
// per spec.md §4.G: "Handler errors ... are converted to SystemMessage
// nodes carrying a LiteralBlock copy of the source."
func (rt *Runtime) fail(req rstmachine.DirectiveRequest, err error) []*rstast.Node {
	reporter := req.Ctx.Memo.Reporter
	level := rstast.SeverityError
	if de, ok := err.(*DirectiveError); ok {
		level = de.Level
	}
	msg := reporter.SystemMessage(level, fmt.Sprintf("Error in %q directive: %s.", req.Name, err), req.SourceID, req.Line)
	return []*rstast.Node{msg, literalCopy(req.SourceID, req.Line, req.BlockText)}
}

func literalCopy(sourceID string, line int, text string) *rstast.Node {
	n := rstast.NewNode(rstast.KindLiteralBlock)
	n.SourceID = sourceID
	n.Line = line
	n.Text = text
	return n
}

// validateArguments implements spec.md §4.G step 5: arguments are
// already whitespace-split by the caller; here they are counted against
// RequiredArgs/OptionalArgs and, for FinalArgWhitespace directives,
// tokens past the allowed count are rejoined onto the last argument
// with spaces instead of being rejected.
func validateArguments(spec DirectiveSpec, arguments []string) ([]string, error) {
	if len(arguments) < spec.RequiredArgs {
		return nil, &DirectiveError{Level: rstast.SeverityError, Message: fmt.Sprintf(
			"%d argument(s) required, %d supplied", spec.RequiredArgs, len(arguments))}
	}
	max := spec.RequiredArgs + spec.OptionalArgs
	if len(arguments) <= max {
		return arguments, nil
	}
	if !spec.FinalArgWhitespace {
		return nil, &DirectiveError{Level: rstast.SeverityError, Message: fmt.Sprintf(
			"maximum %d argument(s) allowed, %d supplied", max, len(arguments))}
	}
	if max == 0 {
		return []string{strings.Join(arguments, " ")}, nil
	}
	joined := append([]string{}, arguments[:max-1]...)
	joined = append(joined, strings.Join(arguments[max-1:], " "))
	return joined, nil
}

// validateOptions implements spec.md §4.G step 4's validator pass:
// every supplied option name must be in the spec's OptionSpec, and its
// validator is run against the raw string value. Unknown names and
// validator errors both fail the directive.
func validateOptions(spec DirectiveSpec, raw map[string]rstast.AttrValue) (map[string]any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(map[string]any, len(raw))
	for name, value := range raw {
		validator, known := spec.OptionSpec[name]
		if !known {
			return nil, &DirectiveError{Level: rstast.SeverityError, Message: fmt.Sprintf(
				`unknown option: "%s"`, name)}
		}
		str, _ := value.String()
		converted, err := validator(str, str != "")
		if err != nil {
			return nil, &DirectiveError{Level: rstast.SeverityError, Message: fmt.Sprintf(
				`invalid option value: (option: "%s") %s`, name, err)}
		}
		out[name] = converted
	}
	return out, nil
}
