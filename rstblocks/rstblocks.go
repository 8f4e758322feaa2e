// Package rstblocks implements the BlockStates from spec.md §4.E: the
// Body state and its specialized sub-states (bullet lists, enumerated
// lists, field lists, option lists, line blocks, explicit markup,
// substitution definitions, extension options), plus the Text and Line
// states that disambiguate paragraphs, definition lists, and section
// titles.
package rstblocks

import (
	"regexp"
	"strings"
)

// Patterns matched start-anchored against a normalized line, per
// spec.md §4.E's transition table. Named so each Transition's Pattern
// field reads as a cross-reference back to the table.
var (
	blankPattern   = regexp.MustCompile(`^\s*$`)
	indentPattern  = regexp.MustCompile(`^ +\S`)
	bulletPattern  = regexp.MustCompile(`^([-+*\x{2022}\x{2023}\x{2043}])( +|$)`)
	fieldPattern   = regexp.MustCompile(`^:((?:[^:\\]|\\.)*):( +|$)`)
	optionPattern  = regexp.MustCompile(`^(-[a-zA-Z0-9]|--[a-zA-Z0-9][a-zA-Z0-9-]*|/[a-zA-Z0-9]+)`)
	doctestPattern = regexp.MustCompile(`^>>>( +|$)`)
	lineBlockMark  = regexp.MustCompile(`^\|( +|$)`)
	explicitMark   = regexp.MustCompile(`^\.\.( +|$)`)
	anonymousMark  = regexp.MustCompile(`^__( +|$)`)

	// linePattern matches 4+ punctuation characters from docutils'
	// adornment set followed by optional trailing whitespace; isUniformLine
	// additionally verifies every non-space rune is identical, since RE2
	// has no backreferences to express that in the pattern itself.
	linePattern = regexp.MustCompile(`^[!-/:-@\[-` + "`" + `{-~]{4,}\s*$`)
)

// isUniformLine reports whether every non-space rune in line is the same,
// the extra check linePattern alone can't express (spec.md §9 notes RE2
// has no backreferences).
func isUniformLine(line string) bool {
	trimmed := strings.TrimRight(line, " \t")
	if trimmed == "" {
		return false
	}
	first := rune(trimmed[0])
	for _, r := range trimmed {
		if r != first {
			return false
		}
	}
	return true
}

// enumeratorPattern recognizes the three bracketing formats spec.md
// §4.E transition 4 names (parens, rparen, period) with an ordinal of
// arabic digits, a-z/A-Z, lower/upper Roman numerals, or "#" for auto.
var enumeratorPattern = regexp.MustCompile(
	`^(?:\((?P<parens>[0-9]+|[a-zA-Z]|#)\)|(?P<rparen>[0-9]+|[a-zA-Z]|#)\)|(?P<period>[0-9]+|[a-zA-Z]|#)\.)( +|$)`)

// textFallbackPattern is the Body state's final, catch-all transition:
// anything reaching it is a non-blank line none of the earlier
// transitions claimed.
var textFallbackPattern = regexp.MustCompile(`^.*\S.*$`)

func isBlank(line string) bool { return strings.TrimSpace(line) == "" }

func leadingSpaces(line string) int {
	n := 0
	for n < len(line) && line[n] == ' ' {
		n++
	}
	return n
}
