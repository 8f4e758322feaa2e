package rstblocks

import (
	"strconv"
	"strings"

	"github.com/grove-platform/docparse/rstline"
	"github.com/grove-platform/docparse/rstmachine"
)

// consumeBlock repositions m's cursor so that the next NextLine call
// returns the line immediately after a block of blockLen lines starting
// at start, for handlers that carve a multi-line region directly out of
// m.Lines instead of advancing one NextLine call at a time.
func consumeBlock(m *rstmachine.Machine, start, blockLen int) {
	if blockLen <= 0 {
		return
	}
	m.GotoLine(start + blockLen - 1)
}

func tabWidthOf(memo *rstmachine.Memo) int {
	if memo.TabWidth <= 0 {
		return 8
	}
	return memo.TabWidth
}

// syntheticBlock rebuilds a LineStore for a block whose first physical
// line has had a marker column-stripped off (list item text following
// its bullet, a field body following its marker, and so on), joining it
// with any already-indent-stripped continuation lines. Line-number
// provenance for the synthesized lines is anchored on sourceID but not
// individually preserved per physical source line.
func syntheticBlock(memo *rstmachine.Memo, sourceID, firstLine string, rest *rstline.LineStore) *rstline.LineStore {
	text := firstLine
	if rest != nil && rest.Len() > 0 {
		if text != "" {
			text += "\n"
		}
		text += rest.Join()
	}
	return rstline.FromSource(text, tabWidthOf(memo), true, sourceID)
}

// unescapeSimple drops a backslash preceding any character, for target/
// substitution names carried in explicit markup (full inline escaping
// semantics live in rstinline; this is the plain-text cousin used for
// names that never go through the inline tokenizer).
func unescapeSimple(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if runes[i] == '\\' && i+1 < len(runes) {
			b.WriteRune(runes[i+1])
			i++
			continue
		}
		b.WriteRune(runes[i])
	}
	return b.String()
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ordinalValue classifies an enumerator's ordinal string the way
// spec.md §6 describes the OptionParser's auto-numbering sequences:
// arabic digits, single-letter alpha, or Roman numerals, plus "#" for
// auto-numbered items.
func ordinalValue(s string) (value int, kind string) {
	if s == "#" {
		return 0, "auto"
	}
	if isDigits(s) {
		v, _ := strconv.Atoi(s)
		return v, "arabic"
	}
	// A lone "i"/"I" is alphabetically valid but spec.md's enumerator
	// rule disambiguates it toward Roman, since list numbering that
	// starts at "i." almost always means "1." in Roman numerals.
	if s == "i" {
		return 1, "lowerroman"
	}
	if s == "I" {
		return 1, "upperroman"
	}
	if len(s) == 1 {
		r := s[0]
		switch {
		case r >= 'a' && r <= 'z':
			return int(r-'a') + 1, "loweralpha"
		case r >= 'A' && r <= 'Z':
			return int(r-'A') + 1, "upperalpha"
		}
	}
	if v, ok := romanToArabic(strings.ToUpper(s)); ok {
		if s == strings.ToUpper(s) {
			return v, "upperroman"
		}
		return v, "lowerroman"
	}
	return 0, "unknown"
}

// splitTwoSpaces splits s at the first run of two or more spaces,
// matching docutils' option-list "marker  description" column
// convention and the definition-list term/classifier separator's
// cousin for option descriptions.
func splitTwoSpaces(s string) (left, right string) {
	idx := strings.Index(s, "  ")
	if idx < 0 {
		return s, ""
	}
	return s[:idx], strings.TrimLeft(s[idx:], " ")
}
