package rstmachine

import (
	"regexp"
	"testing"

	"github.com/grove-platform/docparse/rstast"
	"github.com/grove-platform/docparse/rstline"
)

// countingState is a minimal State that counts blank vs. text lines,
// used to exercise the run loop's ordinary advancement and EOF
// handling without pulling in rstblocks.
type countingState struct {
	BaseState
	blanks, texts *int
}

func (s *countingState) Name() string { return "counting" }

func (s *countingState) Transitions() []Transition {
	return []Transition{
		{
			Name:    "blank",
			Pattern: regexp.MustCompile(`^\s*$`),
			Run: func(m *Machine, ctx *Context, line string, match []string) TransitionResult {
				*s.blanks++
				return TransitionResult{Context: ctx, NextState: "counting"}
			},
		},
		{
			Name:    "text",
			Pattern: regexp.MustCompile(`^.+$`),
			Run: func(m *Machine, ctx *Context, line string, match []string) TransitionResult {
				*s.texts++
				return TransitionResult{Context: ctx, NextState: "counting"}
			},
		},
	}
}

func TestRun_AdvancesUntilEOF(t *testing.T) {
	lines := rstline.FromSource("one\n\ntwo\nthree", 4, true, "test.rst")
	m := NewMachine(lines, &Memo{})
	var blanks, texts int
	state := &countingState{blanks: &blanks, texts: &texts}
	states := map[string]State{"counting": state}

	doc := rstast.NewDocument("test.rst", "", "", nil)
	ctx := &Context{Memo: m.Memo, Parent: doc.Node}

	if _, err := Run(m, states, "counting", ctx); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if blanks != 1 {
		t.Errorf("blanks = %d, want 1", blanks)
	}
	if texts != 3 {
		t.Errorf("texts = %d, want 3", texts)
	}
}

func TestRun_NoMatchPanicsBecomesError(t *testing.T) {
	lines := rstline.FromSource("x", 4, true, "test.rst")
	m := NewMachine(lines, &Memo{})
	states := map[string]State{"counting": noMatchState{}}
	doc := rstast.NewDocument("test.rst", "", "", nil)
	ctx := &Context{Memo: m.Memo, Parent: doc.Node}

	_, err := Run(m, states, "counting", ctx)
	if err == nil {
		t.Fatalf("expected an InternalError, got nil")
	}
	if _, ok := err.(InternalError); !ok {
		t.Fatalf("expected InternalError, got %T: %v", err, err)
	}
}

type noMatchState struct{ BaseState }

func (noMatchState) Name() string { return "counting" }
func (noMatchState) Transitions() []Transition {
	return []Transition{
		{
			Name:    "never",
			Pattern: regexp.MustCompile(`^NEVER_MATCHES_ANYTHING_XYZ$`),
			Run: func(m *Machine, ctx *Context, line string, match []string) TransitionResult {
				return TransitionResult{Context: ctx, NextState: "counting"}
			},
		},
	}
}

func TestRun_TransitionCorrectionRestrictsRetry(t *testing.T) {
	lines := rstline.FromSource("1.\nnot a list item after all", 4, true, "test.rst")
	m := NewMachine(lines, &Memo{})
	var sawCorrectedText bool

	enumerator := Transition{
		Name:    "enumerator",
		Pattern: regexp.MustCompile(`^\d+\.\s*$`),
		Run: func(m *Machine, ctx *Context, line string, match []string) TransitionResult {
			// Pretend validation fails and this should have been text.
			m.PreviousLine()
			return TransitionResult{Context: ctx, Signal: Signal{Kind: SignalTransitionCorrection, RestrictTo: "text"}}
		},
	}
	text := Transition{
		Name:    "text",
		Pattern: regexp.MustCompile(`^.*$`),
		Run: func(m *Machine, ctx *Context, line string, match []string) TransitionResult {
			sawCorrectedText = true
			return TransitionResult{Context: ctx, NextState: "body"}
		},
	}
	states := map[string]State{
		"body": fixedState{name: "body", transitions: []Transition{enumerator, text}},
	}
	doc := rstast.NewDocument("test.rst", "", "", nil)
	ctx := &Context{Memo: m.Memo, Parent: doc.Node}

	if _, err := Run(m, states, "body", ctx); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !sawCorrectedText {
		t.Fatalf("expected the correction to retry against the text transition")
	}
}

type fixedState struct {
	BaseState
	name        string
	transitions []Transition
}

func (s fixedState) Name() string               { return s.name }
func (s fixedState) Transitions() []Transition { return s.transitions }
