// Package rstid implements the identifier-normalization rules from
// spec.md §4.I: MakeID (for element ids) and FullyNormalizeName (for
// cross-reference names). It is kept internal because these are
// implementation details of rstast.Document's bookkeeping, not part of
// the parser's public surface.
package rstid

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// MakeID converts text into a valid, URL/anchor-safe identifier:
// lowercase, Unicode-NFKD decomposed, runs of non-[a-z0-9] characters
// replaced with a single hyphen, leading digits/hyphens trimmed, and
// trailing hyphens trimmed. golang.org/x/text/unicode/norm supplies the
// NFKD decomposition the standard library has no equivalent for.
func MakeID(text string) string {
	decomposed := norm.NFKD.String(strings.ToLower(text))

	var b strings.Builder
	inRun := false
	for _, r := range decomposed {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
			inRun = false
			continue
		}
		if !inRun {
			b.WriteByte('-')
			inRun = true
		}
	}

	id := b.String()
	id = strings.TrimLeft(id, "-0123456789")
	id = strings.TrimRight(id, "-")
	return id
}

// FullyNormalizeName lowercases text and collapses every run of
// whitespace to a single ordinary space, trimming leading/trailing
// whitespace. Used to normalize cross-reference names (refnames,
// substitution names, footnote/citation labels) so that "My   Target"
// and "my target" resolve to the same name.
func FullyNormalizeName(text string) string {
	fields := strings.FieldsFunc(strings.ToLower(text), unicode.IsSpace)
	return strings.Join(fields, " ")
}
