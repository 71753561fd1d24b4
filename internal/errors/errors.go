package errors

import (
	"errors"
	"fmt"
)

// PipelineError represents a structured pipeline failure with a stable error
// code. Codes distinguish the fatal error classes from one another; per-item
// failures are not represented here, they are recovered locally and surfaced
// as aggregate counts.
type PipelineError struct {
	ErrorCode string      `json:"error_code"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
	Err       error       `json:"-"`
}

// Error implements the error interface
func (e *PipelineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap supports errors.Is/errors.As chains
func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Is matches two pipeline errors by error code
func (e *PipelineError) Is(target error) bool {
	var pe *PipelineError
	if errors.As(target, &pe) {
		return e.ErrorCode == pe.ErrorCode
	}
	return false
}

// New creates a new PipelineError with the given code and message
func New(errorCode, message string) *PipelineError {
	return &PipelineError{
		ErrorCode: errorCode,
		Message:   message,
	}
}

// NewWithDetails creates a new PipelineError with additional details
func NewWithDetails(errorCode, message string, details interface{}) *PipelineError {
	return &PipelineError{
		ErrorCode: errorCode,
		Message:   message,
		Details:   details,
	}
}

// Predefined error types for the fatal error classes
var (
	// Required input file or directory does not exist
	ErrInputMissing = New("INPUT_MISSING", "required input file or directory not found")

	// A required column is absent from an input table
	ErrSchemaViolation = New("SCHEMA_VIOLATION", "input table does not match required schema")

	// Post-aggregation row accounting does not balance
	ErrAggregationIntegrity = New("AGGREGATION_INTEGRITY", "aggregation row counts do not match input")

	// A run produced zero usable rows after filtering
	ErrNoUsableRows = New("NO_USABLE_ROWS", "no usable rows produced")

	// Configuration failed validation
	ErrConfigInvalid = New("CONFIG_INVALID", "configuration validation failed")

	// Unrecoverable filesystem failure
	ErrFileSystem = New("FILESYSTEM_ERROR", "file system error")
)

// Helper constructors for the common fatal cases

// InputMissing reports a missing input path
func InputMissing(path string) *PipelineError {
	return &PipelineError{
		ErrorCode: "INPUT_MISSING",
		Message:   fmt.Sprintf("required input not found: %s", path),
		Details:   path,
	}
}

// SchemaViolation reports a required column missing from an input table
func SchemaViolation(file, column string) *PipelineError {
	return &PipelineError{
		ErrorCode: "SCHEMA_VIOLATION",
		Message:   fmt.Sprintf("column %q not found in %s", column, file),
		Details:   map[string]string{"file": file, "column": column},
	}
}

// IntegrityFailure reports an aggregation row-count mismatch. This is treated
// as a correctness bug, never a recoverable condition.
func IntegrityFailure(expected, got int) *PipelineError {
	return &PipelineError{
		ErrorCode: "AGGREGATION_INTEGRITY",
		Message:   fmt.Sprintf("aggregation dropped or duplicated rows: expected %d, got %d", expected, got),
		Details:   map[string]int{"expected": expected, "got": got},
	}
}

// NoUsableRows reports a run that filtered away every row
func NoUsableRows(source string) *PipelineError {
	return &PipelineError{
		ErrorCode: "NO_USABLE_ROWS",
		Message:   fmt.Sprintf("no usable rows produced from %s", source),
		Details:   source,
	}
}

// FileSystemError wraps an unrecoverable filesystem failure
func FileSystemError(err error) *PipelineError {
	return &PipelineError{
		ErrorCode: "FILESYSTEM_ERROR",
		Message:   "file system error",
		Err:       err,
	}
}
