package diagnostic

import (
	"cmp"
	"errors"
	"fmt"
	"go/token"
	"slices"
	"strings"

	"ctor-generator/internal/common"
)

// Diagnostics holds all diagnostic information from planning.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Pos anchors the diagnostic at the offending source location (if known).
	Pos token.Position
	// TypeName identifies which declaration this relates to (if any).
	TypeName string
	// FieldPath identifies which field this relates to (if any).
	FieldPath string
	// Related lists further locations that contribute to the diagnostic.
	Related []token.Position
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// Add files diag under its severity.
func (d *Diagnostics) Add(diag Diagnostic) {
	switch diag.Severity {
	case DiagnosticError:
		d.Errors = append(d.Errors, diag)
	case DiagnosticWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

func (d *Diagnostics) add(sev DiagnosticSeverity, code, message string, pos token.Position, typeName, fieldPath string) {
	d.Add(Diagnostic{Severity: sev, Code: code, Message: message, Pos: pos, TypeName: typeName, FieldPath: fieldPath})
}

// AddError records an error against typeName and, when set, fieldPath.
func (d *Diagnostics) AddError(code, message string, pos token.Position, typeName, fieldPath string) {
	d.add(DiagnosticError, code, message, pos, typeName, fieldPath)
}

// AddWarning records a warning.
func (d *Diagnostics) AddWarning(code, message string, pos token.Position, typeName, fieldPath string) {
	d.add(DiagnosticWarning, code, message, pos, typeName, fieldPath)
}

func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge appends every diagnostic of other.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// Sort orders each severity by source position.
func (d *Diagnostics) Sort() {
	byPos := func(a, b Diagnostic) int {
		return cmp.Or(
			cmp.Compare(a.Pos.Filename, b.Pos.Filename),
			cmp.Compare(a.Pos.Line, b.Pos.Line),
			cmp.Compare(a.Pos.Column, b.Pos.Column),
		)
	}

	slices.SortStableFunc(d.Errors, byPos)
	slices.SortStableFunc(d.Warnings, byPos)
	slices.SortStableFunc(d.Infos, byPos)
}

// All returns errors first, then warnings, then infos.
func (d *Diagnostics) All() []Diagnostic {
	return slices.Concat(d.Errors, d.Warnings, d.Infos)
}

// Error joins the error diagnostics, one per line. It is nil when there are
// none.
func (d *Diagnostics) Error() error {
	errs := make([]error, len(d.Errors))
	for i, e := range d.Errors {
		errs[i] = errors.New(e.String())
	}

	return errors.Join(errs...)
}

// String returns a formatted diagnostic string.
//
// With a known position the format is "file:line:col: [code] message",
// otherwise "[Type] field: [code] message".
func (d Diagnostic) String() string {
	var prefix []string
	if d.Pos.IsValid() {
		prefix = append(prefix, d.Pos.String()+":")
	} else {
		if d.TypeName != "" {
			prefix = append(prefix, "["+d.TypeName+"]")
		}

		if d.FieldPath != "" {
			prefix = append(prefix, d.FieldPath+":")
		} else if len(prefix) > 0 {
			prefix[0] += ":"
		}
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(quoteAll(d.Suggestions), " or ") + "?)"
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + " " + msg
	}

	return msg
}

func quoteAll(s []string) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[i] = fmt.Sprintf("%q", v)
	}

	return out
}
