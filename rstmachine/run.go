package rstmachine

import (
	"fmt"
	"regexp"
)

// TransitionResult is what a transition method hands back to the run
// loop: the (possibly updated) Context, the name of the state to run
// next, and a Signal overriding normal advancement when non-zero.
type TransitionResult struct {
	Context   *Context
	NextState string
	Signal    Signal
}

// TransitionFunc implements one transition's effect: given the current
// line and its start-anchored regex submatches, mutate the Document (by
// way of ctx) and decide what happens next.
type TransitionFunc func(m *Machine, ctx *Context, line string, match []string) TransitionResult

// Transition is one entry of a State's ordered transition list,
// per spec.md §4.E: "(name, pattern, method, next_state)". Pattern is
// matched start-anchored; next_state is the TransitionResult's default
// when the function doesn't override it by returning its own
// NextState (most transitions simply return the owning State's name
// for self-loops, or a named next state for moving on).
type Transition struct {
	Name    string
	Pattern *regexp.Regexp
	Run     TransitionFunc
}

// State is one node of the StateMachine's StateConfiguration: an
// ordered transition list plus begin/end-of-block hooks, per spec.md
// §4.D/§4.E.
type State interface {
	Name() string
	Transitions() []Transition
	BOF(ctx *Context) *Context
	EOF(ctx *Context)
}

// BaseState provides no-op BOF/EOF hooks for states that don't need
// them, so concrete states only implement what they use.
type BaseState struct{}

func (BaseState) BOF(ctx *Context) *Context { return ctx }
func (BaseState) EOF(ctx *Context)          {}

// checkLine runs state's transitions (or, if restrict is non-empty,
// only the named ones) against line in order, invoking the first
// match. No match is a programming error per spec.md §4.D.
func (m *Machine) checkLine(state State, ctx *Context, line string, restrict []string) TransitionResult {
	for _, t := range state.Transitions() {
		if len(restrict) > 0 && !containsName(restrict, t.Name) {
			continue
		}
		loc := t.Pattern.FindStringSubmatchIndex(line)
		if loc == nil {
			continue
		}
		match := submatches(line, loc)
		return t.Run(m, ctx, line, match)
	}
	panic(InternalError{Message: fmt.Sprintf("no transition pattern match in state %q for line %q", state.Name(), line)})
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

func submatches(line string, loc []int) []string {
	out := make([]string, len(loc)/2)
	for i := range out {
		s, e := loc[2*i], loc[2*i+1]
		if s < 0 {
			continue
		}
		out[i] = line[s:e]
	}
	return out
}

// Run drives m through states starting at initialState, beginning with
// that state's BOF hook and ending when the LineStore is exhausted (or
// a transition signals EOF), per the run loop in spec.md §4.D. It
// returns the final Context and an error if a transition panicked with
// an InternalError (recovered here, exactly once, per spec.md §7's
// programming-error/signal/ordinary-error three-way split).
func Run(m *Machine, states map[string]State, initialState string, ctx *Context) (final *Context, err error) {
	defer func() {
		if r := recover(); r != nil {
			if ie, ok := r.(InternalError); ok {
				err = ie
				return
			}
			panic(r)
		}
	}()

	stateName := initialState
	state := states[stateName]
	ctx = state.BOF(ctx)

	var restrict []string
	for {
		// On a correction retry the signaling transition already called
		// PreviousLine, so this NextLine re-offers the same line.
		if _, nerr := m.NextLine(); nerr == ErrEOF {
			state.EOF(ctx)
			return ctx, nil
		}

		result := m.checkLine(state, ctx, m.CurrentLine(), restrict)
		ctx = result.Context
		restrict = nil

		if ctx.Memo != nil && ctx.Memo.Reporter != nil {
			if haltErr := ctx.Memo.Reporter.Check(); haltErr != nil {
				return ctx, haltErr
			}
		}

		switch result.Signal.Kind {
		case SignalNone:
			stateName = result.NextState
			state = states[stateName]

		case SignalEOF:
			state.EOF(ctx)
			return ctx, nil

		case SignalTransitionCorrection:
			restrict = []string{result.Signal.RestrictTo}

		case SignalStateCorrection:
			stateName = result.Signal.NewState
			state = states[stateName]
			if result.Signal.RestrictTo != "" {
				restrict = []string{result.Signal.RestrictTo}
			}
		}
	}
}
