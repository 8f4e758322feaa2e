package rstblocks

import "testing"

func TestArabicToRoman(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "I"},
		{4, "IV"},
		{9, "IX"},
		{14, "XIV"},
		{40, "XL"},
		{90, "XC"},
		{444, "CDXLIV"},
		{1994, "MCMXCIV"},
		{3999, "MMMCMXCIX"},
		{0, ""},
		{4000, ""},
		{-1, ""},
	}
	for _, tt := range tests {
		if got := arabicToRoman(tt.n); got != tt.want {
			t.Errorf("arabicToRoman(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestRomanToArabic(t *testing.T) {
	tests := []struct {
		s      string
		want   int
		wantOK bool
	}{
		{"I", 1, true},
		{"IV", 4, true},
		{"IX", 9, true},
		{"XIV", 14, true},
		{"MCMXCIV", 1994, true},
		{"", 0, false},
		{"IIII", 0, false},
		{"ABC", 0, false},
		{"VX", 0, false},
	}
	for _, tt := range tests {
		got, ok := romanToArabic(tt.s)
		if ok != tt.wantOK {
			t.Errorf("romanToArabic(%q) ok = %v, want %v", tt.s, ok, tt.wantOK)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("romanToArabic(%q) = %d, want %d", tt.s, got, tt.want)
		}
	}
}

func TestRomanRoundTrip(t *testing.T) {
	for n := 1; n <= 3999; n += 37 {
		s := arabicToRoman(n)
		got, ok := romanToArabic(s)
		if !ok || got != n {
			t.Errorf("round trip failed for %d: roman=%q got=%d ok=%v", n, s, got, ok)
		}
	}
}
