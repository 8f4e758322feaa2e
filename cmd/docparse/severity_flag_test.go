package main

import (
	"testing"

	"github.com/grove-platform/docparse/rstast"
)

func TestSeverityFlagSet(t *testing.T) {
	tests := []struct {
		raw     string
		want    rstast.Severity
		wantErr bool
	}{
		{"info", rstast.SeverityInfo, false},
		{"WARNING", rstast.SeverityWarning, false},
		{"error", rstast.SeverityError, false},
		{"severe", rstast.SeveritySevere, false},
		{"bogus", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			f := newSeverityFlag(rstast.SeverityInfo)
			err := f.Set(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && f.value != tt.want {
				t.Errorf("value = %v, want %v", f.value, tt.want)
			}
		})
	}
}

func TestSeverityFlagStringRoundTrip(t *testing.T) {
	f := newSeverityFlag(rstast.SeverityWarning)
	if f.String() != "warning" {
		t.Errorf("String() = %q, want \"warning\"", f.String())
	}
	if f.Type() != "severity" {
		t.Errorf("Type() = %q, want \"severity\"", f.Type())
	}
}
