// =============================================================================
// Statutes at Large Tools - Workbook Validation
// =============================================================================
//
// This module checks a loaded sheet for records that would audit or publish
// badly, before anyone spends time on the audit.
//
// CHECKS (per row):
//   - PDF Start is present and an integer               (error)
//   - Type is present                                   (warning, row skipped)
//   - Type has a formatter in the generator map         (warning, empty cells)
//   - Public/Private is blank, "Public" or "Private"    (warning)
//   - a Law names Public or Private                     (warning, public link)
//   - the row follows a Session heading                 (warning)
//
// ERROR HANDLING:
//   - Problems are collected, never returned early unless StopOnFirstError
//   - Each problem carries the spreadsheet line, column and value
//   - Warnings do not make a sheet invalid unless TreatWarningsAsErrors
//
// =============================================================================

package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ginjaninja78/loc-sal-tools/internal/htmlgen"
	"github.com/ginjaninja78/loc-sal-tools/internal/statute"
)

// Severity levels.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Rule names.
const (
	RuleRequired      = "required"
	RuleInteger       = "integer"
	RuleFormatter     = "formatter"
	RuleVisibility    = "public-private"
	RuleLawVisibility = "law-public-private"
	RuleSession       = "session"
)

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// ValidationError represents a single problem in one row.
type ValidationError struct {
	// Severity is SeverityError or SeverityWarning.
	Severity string

	// Field is the column that failed validation.
	Field string

	Value string
	Rule  string

	Message string

	// Index is the zero-based row index in the sheet.
	Index int

	// RowNumber is the spreadsheet line.
	RowNumber int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] Row %d, Field '%s': %s (value: '%s')",
		strings.ToUpper(e.Severity),
		e.RowNumber,
		e.Field,
		e.Message,
		e.Value,
	)
}

// =============================================================================
// VALIDATION RESULT
// =============================================================================

// ValidationResult contains the results of validation.
type ValidationResult struct {
	// IsValid is true if there are no fatal errors.
	IsValid bool

	Errors []*ValidationError

	ErrorCount   int
	WarningCount int

	RowsValidated int
}

// =============================================================================
// VALIDATOR
// =============================================================================

// ValidationOptions contains options for validation.
type ValidationOptions struct {
	// StopOnFirstError stops validation after the first fatal error.
	StopOnFirstError bool

	// TreatWarningsAsErrors makes any warning invalidate the sheet.
	TreatWarningsAsErrors bool
}

// Validator checks rows against the generator bindings in use.
type Validator struct {
	dispatch *htmlgen.Dispatch
	options  ValidationOptions
}

// NewValidator creates a Validator. A nil dispatch skips the formatter check.
func NewValidator(dispatch *htmlgen.Dispatch, options ValidationOptions) *Validator {
	return &Validator{
		dispatch: dispatch,
		options:  options,
	}
}

// ValidateAll validates every row and returns a detailed result.
func (v *Validator) ValidateAll(rows []statute.Row) *ValidationResult {
	result := &ValidationResult{
		IsValid:       true,
		Errors:        make([]*ValidationError, 0),
		RowsValidated: len(rows),
	}

	inSession := false
	for i := range rows {
		if strings.TrimSpace(rows[i].Session) != "" {
			inSession = true
		}

		for _, err := range v.ValidateRow(i, rows[i], inSession) {
			result.Errors = append(result.Errors, err)

			if err.Severity == SeverityError {
				result.ErrorCount++
				result.IsValid = false

				if v.options.StopOnFirstError {
					return result
				}
			} else {
				result.WarningCount++

				if v.options.TreatWarningsAsErrors {
					result.IsValid = false
				}
			}
		}
	}

	return result
}

// ValidateRow checks a single row. inSession reports whether a Session
// heading has been seen at or before this row.
func (v *Validator) ValidateRow(index int, row statute.Row, inSession bool) []*ValidationError {
	var errs []*ValidationError
	add := func(severity, field, value, rule, msg string) {
		errs = append(errs, &ValidationError{
			Severity:  severity,
			Field:     field,
			Value:     value,
			Rule:      rule,
			Message:   msg,
			Index:     index,
			RowNumber: row.Line,
		})
	}

	typ := statute.Type(strings.TrimSpace(string(row.Type)))

	switch pdf := strings.TrimSpace(row.PDFStart); {
	case pdf == "":
		add(SeverityError, statute.ColumnPDFStart, row.PDFStart, RuleRequired, "PDF Start is empty")
	default:
		if _, err := strconv.Atoi(pdf); err != nil {
			add(SeverityError, statute.ColumnPDFStart, row.PDFStart, RuleInteger, "PDF Start is not an integer")
		}
	}

	if typ == "" {
		add(SeverityWarning, statute.ColumnType, string(row.Type), RuleRequired, "missing statute type; the row will be skipped")
		return errs
	}

	if v.dispatch != nil {
		if _, ok := v.dispatch.For(typ); !ok {
			add(SeverityWarning, statute.ColumnType, string(typ), RuleFormatter, "no formatter for this statute type; the row will render as empty cells")
		}
	}

	switch row.PublicPrivate {
	case "", statute.Public, statute.Private:
	default:
		add(SeverityWarning, statute.ColumnPublicPrivate, row.PublicPrivate, RuleVisibility,
			fmt.Sprintf("expected %q or %q", statute.Public, statute.Private))
	}

	if typ == statute.TypeLaw && row.PublicPrivate == "" {
		add(SeverityWarning, statute.ColumnPublicPrivate, row.PublicPrivate, RuleLawVisibility, "law without Public/Private links to the public volume")
	}

	if !inSession {
		add(SeverityWarning, statute.ColumnSession, row.Session, RuleSession, "record appears before the first session heading")
	}

	return errs
}

// =============================================================================
// OUTPUT
// =============================================================================

// FormatErrors formats validation errors for display or logging.
func FormatErrors(errors []*ValidationError) string {
	if len(errors) == 0 {
		return "No validation errors."
	}

	var builder strings.Builder

	fmt.Fprintf(&builder, "Validation completed with %d problem(s):\n\n", len(errors))

	for i, err := range errors {
		fmt.Fprintf(&builder, "%d. %s\n", i+1, err.Error())
	}

	return builder.String()
}
