// Package rst is the parser's external interface (spec.md §6): a
// single Parse entry point wiring LineStore, StateMachine, BlockStates,
// InlineTokenizer, and DirectiveRuntime into the Document each of those
// components builds up piece by piece.
package rst

import (
	"github.com/grove-platform/docparse/rstast"
	"github.com/grove-platform/docparse/rstblocks"
	"github.com/grove-platform/docparse/rstdirective"
	"github.com/grove-platform/docparse/rstinline"
	"github.com/grove-platform/docparse/rstline"
	"github.com/grove-platform/docparse/rstmachine"
	"github.com/grove-platform/docparse/rstreport"
)

// Options is the Go name for spec.md §6's OptionParser: every switch a
// caller can set before a parse.
type Options struct {
	TabWidth                   int
	TrimFootnoteReferenceSpace bool
	IDPrefix                   string
	AutoIDPrefix               string
	ReportLevel                rstast.Severity
	HaltLevel                  int
	CharacterLevelInlineMarkup bool

	LookupDirective rstdirective.Lookup
	LookupRole      func(name string) (rstinline.RoleFunc, bool)
}

// DefaultOptions returns the spec.md §6 defaults, seeded with the
// supplemented directive/role set from rstdirective.NewDefaultRegistry
// (SPEC_FULL.md §6).
func DefaultOptions() Options {
	registry := rstdirective.NewDefaultRegistry()
	return Options{
		TabWidth:        8,
		AutoIDPrefix:    "id",
		ReportLevel:     rstast.SeverityInfo,
		HaltLevel:       5,
		LookupDirective: registry.LookupDirective,
		LookupRole:      registry.LookupRole,
	}
}

// Parse runs the full pipeline over text and returns the resulting
// Document, a flat diagnostics log, and a non-nil error only for a
// halted parse or an internal programming-error condition (spec.md §7:
// "no partial AST is returned on programming errors").
func Parse(sourceID, text string, options Options) (*rstast.Document, []rstreport.Message, error) {
	reporter := rstreport.New(options.ReportLevel, options.HaltLevel)
	doc := rstast.NewDocument(sourceID, options.IDPrefix, options.AutoIDPrefix, reporter)

	inlineCtx := rstinline.NewContext(doc, reporter)
	inlineCtx.TrimFootnoteReferenceSpace = options.TrimFootnoteReferenceSpace
	inlineCtx.CharacterLevelInlineMarkup = options.CharacterLevelInlineMarkup
	inlineCtx.LookupRole = options.LookupRole

	tabWidth := options.TabWidth
	if tabWidth < 1 {
		tabWidth = 8
	}

	memo := &rstmachine.Memo{
		Doc:      doc,
		Reporter: reporter,
		Inline:   inlineCtx,
		TabWidth: tabWidth,
	}
	if options.LookupDirective != nil {
		memo.Directives = rstdirective.NewRuntime(options.LookupDirective)
	}

	lines := rstline.FromSource(text, tabWidth, true, sourceID)
	err := rstblocks.ParseDocument(lines, memo)
	return doc, reporter.Messages, err
}
