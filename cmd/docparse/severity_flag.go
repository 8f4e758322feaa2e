package main

import (
	"fmt"
	"strings"

	"github.com/grove-platform/docparse/rstast"
)

// severityFlag is a pflag.Value wrapping rstast.Severity so
// --report-level/--halt-level take the names the diagnostics
// themselves are printed with ("info", "warning", "error", "severe")
// instead of bare integers.
type severityFlag struct {
	value rstast.Severity
}

func newSeverityFlag(def rstast.Severity) *severityFlag {
	return &severityFlag{value: def}
}

func (f *severityFlag) String() string {
	if f == nil {
		return ""
	}
	return strings.ToLower(f.value.String())
}

func (f *severityFlag) Set(raw string) error {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "info":
		f.value = rstast.SeverityInfo
	case "warning":
		f.value = rstast.SeverityWarning
	case "error":
		f.value = rstast.SeverityError
	case "severe":
		f.value = rstast.SeveritySevere
	default:
		return fmt.Errorf("%q unknown; choose from \"info\", \"warning\", \"error\", \"severe\"", raw)
	}
	return nil
}

func (f *severityFlag) Type() string {
	return "severity"
}
