// Package diag collects structured diagnostics produced while compiling
// doclets into declarations.
//
// Every diagnostic names the offending longname and, when the doclet carried
// meta information, its source location. Recoverable diagnostics let the
// compilation continue with degraded output; fatal ones abort it.
package diag

import (
	"fmt"
	"strings"

	"github.com/teranos/dtsgen/errors"
	"github.com/teranos/dtsgen/logger"
)

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Kind classifies diagnostics for filtering and for tests.
type Kind string

// Recoverable kinds: compilation continues and output is still produced.
const (
	KindUnresolvedParent    Kind = "unresolved-parent"
	KindUnresolvedType      Kind = "unresolved-type"
	KindUnresolvedSupertype Kind = "unresolved-supertype"
	KindNameCollision       Kind = "name-collision"
	KindReservedWord        Kind = "reserved-word"
	KindUnsupportedKind     Kind = "unsupported-kind"
	KindMalformedType       Kind = "malformed-type"
	KindDuplicate           Kind = "duplicate-declaration"
	KindMissingRootParam    Kind = "missing-root-param"
	KindInvalidSince        Kind = "invalid-since"
	KindMemberChildren      Kind = "member-children"
)

// Fatal kinds: the run aborts and no output is emitted.
const (
	KindCyclicMemberof   Kind = "cyclic-memberof"
	KindConflictingKinds Kind = "conflicting-kinds"
	KindEmptySignatures  Kind = "empty-signatures"
	KindInvalidInput     Kind = "invalid-input"
)

// Location is the source position a doclet was extracted from.
type Location struct {
	File string // source file path
	Line int    // 1-based line number (0 = unknown)
}

// Diagnostic represents a structured diagnostic message.
type Diagnostic struct {
	Severity Severity
	Kind     Kind
	Longname string
	Location
	Message string
	Hint    string // optional suggestion for fixing the issue
}

// String formats the diagnostic for display.
func (d Diagnostic) String() string {
	var sb strings.Builder

	if d.File != "" {
		sb.WriteString(d.File)
		if d.Line > 0 {
			sb.WriteString(fmt.Sprintf(":%d", d.Line))
		}
		sb.WriteString(" - ")
	}

	sb.WriteString(d.Severity.String())
	sb.WriteString(": ")

	if d.Kind != "" {
		sb.WriteString("[")
		sb.WriteString(string(d.Kind))
		sb.WriteString("] ")
	}

	if d.Longname != "" {
		sb.WriteString(d.Longname)
		sb.WriteString(": ")
	}

	sb.WriteString(d.Message)

	if d.Hint != "" {
		sb.WriteString("\n  hint: ")
		sb.WriteString(d.Hint)
	}

	return sb.String()
}

// Collector collects diagnostics during a compilation run.
//
// A nil *Collector is valid and discards everything, so components can be
// exercised without one.
type Collector struct {
	diagnostics []Diagnostic
	fatal       []int // indexes of diagnostics raised through Error
	strict      bool  // if true, warnings become errors
}

// NewCollector creates a new diagnostic collector.
func NewCollector(strict bool) *Collector {
	return &Collector{strict: strict}
}

// Warn adds a recoverable diagnostic.
func (c *Collector) Warn(kind Kind, longname string, loc Location, format string, args ...interface{}) {
	c.WarnWithHint(kind, longname, loc, "", format, args...)
}

// WarnWithHint adds a recoverable diagnostic with a suggestion.
func (c *Collector) WarnWithHint(kind Kind, longname string, loc Location, hint, format string, args ...interface{}) {
	if c == nil {
		return
	}
	sev := SeverityWarning
	if c.strict {
		sev = SeverityError
	}
	c.add(Diagnostic{
		Severity: sev,
		Kind:     kind,
		Longname: longname,
		Location: loc,
		Message:  fmt.Sprintf(format, args...),
		Hint:     hint,
	})
}

// Error adds a fatal diagnostic.
func (c *Collector) Error(kind Kind, longname string, loc Location, format string, args ...interface{}) {
	if c == nil {
		return
	}
	c.fatal = append(c.fatal, len(c.diagnostics))
	c.add(Diagnostic{
		Severity: SeverityError,
		Kind:     kind,
		Longname: longname,
		Location: loc,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Info adds an informational diagnostic.
func (c *Collector) Info(kind Kind, longname string, loc Location, format string, args ...interface{}) {
	if c == nil {
		return
	}
	c.add(Diagnostic{
		Severity: SeverityInfo,
		Kind:     kind,
		Longname: longname,
		Location: loc,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (c *Collector) add(d Diagnostic) {
	c.diagnostics = append(c.diagnostics, d)
	logger.Named("diag").Debugw(d.Message,
		logger.FieldSeverity, d.Severity.String(),
		logger.FieldDiagnostic, string(d.Kind),
		logger.FieldLongname, d.Longname,
		logger.FieldFile, d.File,
		logger.FieldLine, d.Line)
}

// Diagnostics returns all collected diagnostics in the order they were added.
func (c *Collector) Diagnostics() []Diagnostic {
	if c == nil {
		return nil
	}
	return c.diagnostics
}

// OfKind returns the collected diagnostics with the given kind.
func (c *Collector) OfKind(kind Kind) []Diagnostic {
	var out []Diagnostic
	for _, d := range c.Diagnostics() {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}

// HasErrors returns true if any error-level diagnostics exist.
func (c *Collector) HasErrors() bool {
	return c.ErrorCount() > 0
}

// ErrorCount returns the number of error diagnostics.
func (c *Collector) ErrorCount() int {
	count := 0
	for _, d := range c.Diagnostics() {
		if d.Severity == SeverityError {
			count++
		}
	}
	return count
}

// WarningCount returns the number of warning diagnostics.
func (c *Collector) WarningCount() int {
	count := 0
	for _, d := range c.Diagnostics() {
		if d.Severity == SeverityWarning {
			count++
		}
	}
	return count
}

// Err returns a *FatalError marked with errors.ErrFatal when any
// error-level diagnostic was collected, nil otherwise.
func (c *Collector) Err() error {
	if !c.HasErrors() {
		return nil
	}
	var fatal []Diagnostic
	for _, d := range c.Diagnostics() {
		if d.Severity == SeverityError {
			fatal = append(fatal, d)
		}
	}
	return errors.Mark(&FatalError{Diagnostics: fatal}, errors.ErrFatal)
}

// Fatal is like Err but ignores warnings promoted by strict mode. Phases
// use it to stop only when the tree cannot be built any further.
func (c *Collector) Fatal() error {
	if c == nil || len(c.fatal) == 0 {
		return nil
	}
	fatal := make([]Diagnostic, 0, len(c.fatal))
	for _, i := range c.fatal {
		fatal = append(fatal, c.diagnostics[i])
	}
	return errors.Mark(&FatalError{Diagnostics: fatal}, errors.ErrFatal)
}

// FatalError is returned when a compilation cannot produce output.
type FatalError struct {
	Diagnostics []Diagnostic
}

func (e *FatalError) Error() string {
	if len(e.Diagnostics) == 1 {
		return e.Diagnostics[0].String()
	}
	lines := make([]string, 0, len(e.Diagnostics)+1)
	lines = append(lines, fmt.Sprintf("%d fatal diagnostics:", len(e.Diagnostics)))
	for _, d := range e.Diagnostics {
		lines = append(lines, "  "+d.String())
	}
	return strings.Join(lines, "\n")
}
