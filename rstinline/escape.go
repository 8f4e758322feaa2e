package rstinline

import "strings"

const nul = '\x00'

// EscapeToNull replaces every backslash escape `\X` with NUL followed
// by X, per spec.md §4.C: "every backslash escape \X is replaced by
// NUL X before scanning". A trailing lone backslash (no following
// character) is dropped, matching docutils' treatment of a backslash at
// end-of-string.
func EscapeToNull(text string) string {
	if !strings.ContainsRune(text, '\\') {
		return text
	}
	runes := []rune(text)
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(runes); i++ {
		if runes[i] == '\\' {
			if i+1 < len(runes) {
				b.WriteRune(nul)
				b.WriteRune(runes[i+1])
				i++
				continue
			}
			// trailing lone backslash: drop it
			continue
		}
		b.WriteRune(runes[i])
	}
	return b.String()
}

// Unescape reverses EscapeToNull. When restoreBackslashes is true, each
// NUL-X pair becomes \X again (used when a construct fails to match and
// its text must be emitted literally with the user's original
// escaping); otherwise the NUL is simply stripped, leaving X bare (used
// once a construct has successfully matched and its text is final).
func Unescape(text string, restoreBackslashes bool) string {
	if !strings.ContainsRune(text, nul) {
		return text
	}
	runes := []rune(text)
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(runes); i++ {
		if runes[i] == nul {
			if restoreBackslashes {
				b.WriteByte('\\')
			}
			if i+1 < len(runes) {
				b.WriteRune(runes[i+1])
				i++
			}
			continue
		}
		b.WriteRune(runes[i])
	}
	return b.String()
}
