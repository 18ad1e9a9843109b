package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"crud-generator/internal/common"
)

// Diagnostics holds all diagnostic information collected during a run.
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
	// Entity names the entity this relates to (if any).
	Entity string
	// Member names the member this relates to (if any).
	Member string
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

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, entity, member string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: DiagnosticError,
		Code:     code,
		Message:  message,
		Entity:   entity,
		Member:   member,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, entity, member string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: DiagnosticWarning,
		Code:     code,
		Message:  message,
		Entity:   entity,
		Member:   member,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, entity, member string) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity: DiagnosticInfo,
		Code:     code,
		Message:  message,
		Entity:   entity,
		Member:   member,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// HasWarnings returns true if there are any warning diagnostics.
func (d *Diagnostics) HasWarnings() bool {
	return len(d.Warnings) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Error returns a combined error from all error diagnostics, or nil if valid.
// Each error diagnostic is wrapped as *Error so HasCode can inspect the result.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	if len(d.Errors) == 1 {
		return &Error{Diagnostic: d.Errors[0]}
	}

	errs := make([]error, 0, len(d.Errors))
	for _, e := range d.Errors {
		errs = append(errs, &Error{Diagnostic: e})
	}

	return errors.Join(errs...)
}

// String returns a formatted diagnostic string:
// "[Entity] Member: [CODE] message (did you mean: A, B?)".
func (d Diagnostic) String() string {
	var prefix []string
	if d.Entity != "" {
		prefix = append(prefix, "["+d.Entity+"]")
	}

	if d.Member != "" {
		prefix = append(prefix, d.Member)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean: " + strings.Join(d.Suggestions, ", ") + "?)"
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}

// Error is a terminal failure of a run.
type Error struct {
	Diagnostic
}

// NewError creates an error diagnostic for the given entity and member.
func NewError(code, entity, member, format string, args ...any) *Error {
	return &Error{Diagnostic: Diagnostic{
		Severity: DiagnosticError,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Entity:   entity,
		Member:   member,
	}}
}

// WithSuggestions attaches "did you mean" candidates and returns e.
func (e *Error) WithSuggestions(suggestions ...string) *Error {
	e.Suggestions = append(e.Suggestions, suggestions...)

	return e
}

// WithEntity fills in the entity and member when they are not already set.
func (e *Error) WithEntity(entity, member string) *Error {
	if e.Entity == "" {
		e.Entity = entity
	}

	if e.Member == "" {
		e.Member = member
	}

	return e
}

func (e *Error) Error() string {
	return e.String()
}

// AsWarning converts the error to a warning with the same content.
func (e *Error) AsWarning() Diagnostic {
	d := e.Diagnostic
	d.Severity = DiagnosticWarning

	return d
}

// HasCode reports whether err, or any error it wraps, is an *Error with code.
func HasCode(err error, code string) bool {
	switch e := err.(type) {
	case nil:
		return false
	case *Error:
		return e.Code == code
	case interface{ Unwrap() []error }:
		for _, inner := range e.Unwrap() {
			if HasCode(inner, code) {
				return true
			}
		}

		return false
	case interface{ Unwrap() error }:
		return HasCode(e.Unwrap(), code)
	default:
		return false
	}
}

// CodeOf returns the code of the first *Error in err's chain, or "".
func CodeOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}

	return ""
}
