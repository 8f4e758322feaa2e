package rstblocks

import "testing"

func TestOrdinalValue(t *testing.T) {
	tests := []struct {
		s        string
		wantVal  int
		wantKind string
	}{
		{"#", 0, "auto"},
		{"1", 1, "arabic"},
		{"42", 42, "arabic"},
		{"a", 1, "loweralpha"},
		{"z", 26, "loweralpha"},
		{"A", 1, "upperalpha"},
		{"Z", 26, "upperalpha"},
		{"i", 1, "lowerroman"},
		{"I", 1, "upperroman"},
		{"iv", 4, "lowerroman"},
		{"IV", 4, "upperroman"},
		{"xiv", 14, "lowerroman"},
		{"!!", 0, "unknown"},
	}
	for _, tt := range tests {
		val, kind := ordinalValue(tt.s)
		if val != tt.wantVal || kind != tt.wantKind {
			t.Errorf("ordinalValue(%q) = (%d, %q), want (%d, %q)", tt.s, val, kind, tt.wantVal, tt.wantKind)
		}
	}
}

func TestUnescapeSimple(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{`a\_b`, "a_b"},
		{`\\`, `\`},
		{`trailing\`, `trailing\`},
		{"", ""},
	}
	for _, tt := range tests {
		if got := unescapeSimple(tt.in); got != tt.want {
			t.Errorf("unescapeSimple(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsDigits(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"123", true},
		{"", false},
		{"12a", false},
		{"0", true},
	}
	for _, tt := range tests {
		if got := isDigits(tt.in); got != tt.want {
			t.Errorf("isDigits(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSplitTwoSpaces(t *testing.T) {
	tests := []struct {
		in        string
		wantLeft  string
		wantRight string
	}{
		{"-f FILE  read from FILE", "-f FILE", "read from FILE"},
		{"--verbose", "--verbose", ""},
		{"a    b", "a", "b"},
	}
	for _, tt := range tests {
		left, right := splitTwoSpaces(tt.in)
		if left != tt.wantLeft || right != tt.wantRight {
			t.Errorf("splitTwoSpaces(%q) = (%q, %q), want (%q, %q)", tt.in, left, right, tt.wantLeft, tt.wantRight)
		}
	}
}

func TestIsBlank(t *testing.T) {
	if !isBlank("   ") || !isBlank("") {
		t.Error("expected whitespace-only and empty strings to be blank")
	}
	if isBlank("  x ") {
		t.Error("expected a non-whitespace line to not be blank")
	}
}

func TestLeadingSpaces(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"no indent", 0},
		{"  two", 2},
		{"    four", 4},
		{"", 0},
	}
	for _, tt := range tests {
		if got := leadingSpaces(tt.in); got != tt.want {
			t.Errorf("leadingSpaces(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestIsUniformLine(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"====", true},
		{"----", true},
		{"", false},
		{"--==", false},
		{"~~~   ", true},
	}
	for _, tt := range tests {
		if got := isUniformLine(tt.in); got != tt.want {
			t.Errorf("isUniformLine(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
