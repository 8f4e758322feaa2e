package rstdirective

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/grove-platform/docparse/internal/language"
)

// Language normalizes a ":language:" option value through the same
// alias table code-block's argument form uses ("ts" -> "typescript",
// "golang" -> "go"), so both spellings converge on one canonical name.
func Language(raw string, has bool) (any, error) {
	return language.Normalize(raw), nil
}

// Flag accepts only an empty value (a bare ":option:" marker with no
// body) and returns true; used for boolean switches like code-block's
// "linenos".
func Flag(raw string, has bool) (any, error) {
	if has {
		return nil, fmt.Errorf("no argument is allowed; %q supplied", raw)
	}
	return true, nil
}

// Unchanged returns the raw string untouched, even when empty.
func Unchanged(raw string, has bool) (any, error) {
	return raw, nil
}

// UnchangedRequired is Unchanged but rejects an empty/absent value.
func UnchangedRequired(raw string, has bool) (any, error) {
	if !has {
		return nil, fmt.Errorf("argument required but none supplied")
	}
	return raw, nil
}

// Boolean parses "true"/"yes"/"on"/"1" and "false"/"no"/"off"/"0"
// (case-insensitively); any other value is an error.
func Boolean(raw string, has bool) (any, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	default:
		return nil, fmt.Errorf("%q unknown; choose from %q, %q", raw, "true", "false")
	}
}

// NonNegativeInt parses a base-10 integer and rejects negative values.
func NonNegativeInt(raw string, has bool) (any, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid literal for int(): %q", raw)
	}
	if n < 0 {
		return nil, fmt.Errorf("negative value; must be positive or zero")
	}
	return n, nil
}

// PositiveInt is NonNegativeInt with zero also rejected.
func PositiveInt(raw string, has bool) (any, error) {
	v, err := NonNegativeInt(raw, has)
	if err != nil {
		return nil, err
	}
	if v.(int) == 0 {
		return nil, fmt.Errorf("negative or zero value; must be positive")
	}
	return v, nil
}

// ClassOption splits raw on whitespace and id-normalizes each token,
// for options like ":class:" whose value becomes a list of CSS-style
// class names attached to the resulting node.
func ClassOption(raw string, has bool) (any, error) {
	fields := strings.Fields(raw)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, classToken(f))
	}
	return out, nil
}

// classToken lowercases and hyphen-normalizes one class-option token
// the same way rstid.MakeID would, without pulling the Unicode
// normalization dependency in for what is always ASCII source text in
// practice (directive option names and values come from the RST source
// itself, not arbitrary user content).
func classToken(s string) string {
	var b strings.Builder
	prevDash := false
	for _, r := range strings.ToLower(s) {
		ok := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if ok {
			b.WriteRune(r)
			prevDash = false
			continue
		}
		if !prevDash {
			b.WriteByte('-')
			prevDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}

// SingleCharOrWhitespace accepts either a single character or the
// literal words "tab" or "space" (the shape of line-block/csv-table
// style delimiter options). No directive registered in this package
// uses it.
func SingleCharOrWhitespace(raw string, has bool) (any, error) {
	switch raw {
	case "tab":
		return "\t", nil
	case "space":
		return " ", nil
	}
	if len([]rune(raw)) != 1 {
		return nil, fmt.Errorf("%q must be a single character or one of \"tab\" or \"space\"", raw)
	}
	return raw, nil
}

// ChoiceOf builds a validator accepting only the given (case-sensitive)
// values, for options like code-block's eventual ":emphasize-lines:"
// cousins that enumerate a fixed vocabulary.
func ChoiceOf(values ...string) OptionValidator {
	return func(raw string, has bool) (any, error) {
		trimmed := strings.TrimSpace(raw)
		for _, v := range values {
			if trimmed == v {
				return trimmed, nil
			}
		}
		return nil, fmt.Errorf("%q unknown; choose from %q", raw, values)
	}
}
