package rstblocks

import "strings"

var romanValues = []struct {
	sym string
	val int
}{
	{"M", 1000}, {"CM", 900}, {"D", 500}, {"CD", 400},
	{"C", 100}, {"XC", 90}, {"L", 50}, {"XL", 40},
	{"X", 10}, {"IX", 9}, {"V", 5}, {"IV", 4}, {"I", 1},
}

// romanToArabic parses an uppercase Roman numeral (e.g. "XIV") into its
// integer value, per the enumerator-ordinal disambiguation spec.md §6
// names as one of the OptionParser's auto-numbering sequences. It
// rejects anything that doesn't round-trip through arabicToRoman, which
// also rejects the empty string and non-Roman letters.
func romanToArabic(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	total, i := 0, 0
	for _, rv := range romanValues {
		for strings.HasPrefix(s[i:], rv.sym) {
			total += rv.val
			i += len(rv.sym)
		}
	}
	if i != len(s) || total == 0 {
		return 0, false
	}
	if arabicToRoman(total) != s {
		return 0, false
	}
	return total, true
}

// arabicToRoman renders n (1..3999) as an uppercase Roman numeral.
func arabicToRoman(n int) string {
	if n <= 0 || n > 3999 {
		return ""
	}
	var b strings.Builder
	for _, rv := range romanValues {
		for n >= rv.val {
			b.WriteString(rv.sym)
			n -= rv.val
		}
	}
	return b.String()
}
