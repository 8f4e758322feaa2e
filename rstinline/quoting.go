package rstinline

import "unicode"

// precededByOpenQuoting reports whether a construct's start-string is
// legally placed: either there is no preceding character (start of
// string), or the preceding character is whitespace or punctuation. A
// start-string directly abutting a word character is never legal — it
// would merge into the preceding word — so that case alone returns
// false.
func precededByOpenQuoting(before []rune) bool {
	if len(before) == 0 {
		return true
	}
	return !isWordChar(before[len(before)-1])
}

// followedByCloseQuoting reports whether a construct's end-string is
// legally placed: either end-of-string was reached (spec.md §4.C:
// "failure at end-of-string also counts as quoted"), or the following
// character is whitespace or punctuation. An end-string directly
// abutting a word character is never legal.
func followedByCloseQuoting(after []rune) bool {
	if len(after) == 0 {
		return true
	}
	return !isWordChar(after[0])
}

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
