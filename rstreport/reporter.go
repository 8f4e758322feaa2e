// Package rstreport implements the Reporter described in spec.md §7: a
// small severity-gated sink that turns a parse-time diagnostic into a
// SystemMessage node and, optionally, a parallel flat log a caller can
// render without walking the tree.
package rstreport

import (
	"fmt"

	"github.com/grove-platform/docparse/rstast"
)

// Message is one entry of a Reporter's flat diagnostic log, mirroring
// the fields carried by the SystemMessage node it is paired with.
type Message struct {
	Level    rstast.Severity
	Text     string
	SourceID string
	Line     int
}

// String renders a Message the way cmd/docparse prints diagnostics to
// stderr: "SOURCE:LINE: LEVEL: text".
func (m Message) String() string {
	if m.Line > 0 {
		return fmt.Sprintf("%s:%d: %s: %s", m.SourceID, m.Line, m.Level, m.Text)
	}
	return fmt.Sprintf("%s: %s: %s", m.SourceID, m.Level, m.Text)
}

// HaltError is returned by Reporter.SystemMessage's caller-visible
// counterpart, Reporter.Check, when a message at or above the
// configured halt level has been reported — it carries the message
// that tripped the halt so callers can report why the parse stopped.
type HaltError struct {
	Message Message
}

func (e *HaltError) Error() string {
	return fmt.Sprintf("halted at %s", e.Message)
}

// Reporter is the concrete rstast.Reporter implementation used by a
// real parse. ReportLevel gates which severities produce a non-empty
// flat log entry (spec.md's report_level option); HaltLevel gates which
// severities should abort the parse (spec.md's halt_level option, 5 =
// never, matching the "severe" top severity plus one so halting is
// effectively disabled by default).
type Reporter struct {
	ReportLevel rstast.Severity
	HaltLevel   int

	Messages []Message
	Halted   *HaltError
}

// New builds a Reporter at the given report/halt levels. reportLevel
// and haltLevel use the spec.md §6 OptionParser defaults when zero:
// report_level=1 (info), halt_level=5 (never).
func New(reportLevel rstast.Severity, haltLevel int) *Reporter {
	if reportLevel == 0 {
		reportLevel = rstast.SeverityInfo
	}
	if haltLevel == 0 {
		haltLevel = 5
	}
	return &Reporter{ReportLevel: reportLevel, HaltLevel: haltLevel}
}

// SystemMessage implements rstast.Reporter. It always builds and
// returns a SystemMessage node (spec.md §7: "for syntax diagnostics the
// AST always completes"), appends to the flat Messages log when level
// is at or above ReportLevel, and records a HaltError the first time a
// message at or above HaltLevel is seen, for rstmachine.Run to observe
// between lines.
func (r *Reporter) SystemMessage(level rstast.Severity, message string, sourceID string, line int) *rstast.Node {
	msg := Message{Level: level, Text: message, SourceID: sourceID, Line: line}

	if level >= r.ReportLevel {
		r.Messages = append(r.Messages, msg)
	}
	if int(level) >= r.HaltLevel && r.Halted == nil {
		r.Halted = &HaltError{Message: msg}
	}

	n := rstast.NewNode(rstast.KindSystemMessage)
	n.SourceID = sourceID
	n.Line = line
	n.Text = message
	n.SetAttr("level", rstast.AttrInt(int(level)))
	return n
}

// Check returns the halt error recorded by a prior SystemMessage call,
// or nil if the parse has not been asked to halt.
func (r *Reporter) Check() error {
	if r.Halted == nil {
		return nil
	}
	return r.Halted
}

// Info, Warning, Error, and Severe are convenience wrappers used
// throughout rstblocks/rstdirective so call sites read as
// reporter.Warning(elem, "message") rather than repeating the severity
// constant at every call site.
func (r *Reporter) Info(sourceID string, line int, format string, args ...any) *rstast.Node {
	return r.SystemMessage(rstast.SeverityInfo, fmt.Sprintf(format, args...), sourceID, line)
}

func (r *Reporter) Warning(sourceID string, line int, format string, args ...any) *rstast.Node {
	return r.SystemMessage(rstast.SeverityWarning, fmt.Sprintf(format, args...), sourceID, line)
}

func (r *Reporter) Error(sourceID string, line int, format string, args ...any) *rstast.Node {
	return r.SystemMessage(rstast.SeverityError, fmt.Sprintf(format, args...), sourceID, line)
}

func (r *Reporter) Severe(sourceID string, line int, format string, args ...any) *rstast.Node {
	return r.SystemMessage(rstast.SeveritySevere, fmt.Sprintf(format, args...), sourceID, line)
}
