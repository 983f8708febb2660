package parse

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for parse and schema failures. These are stable identifiers
// intended for programmatic handling; the Error method renders the
// user-facing message.
const (
	// ErrCodeUnknownArgument indicates an unrecognized flag name or alias.
	ErrCodeUnknownArgument = "PARSE_UNKNOWN_ARGUMENT"

	// ErrCodeMissingValue indicates an option requiring a value had none
	// available.
	ErrCodeMissingValue = "PARSE_MISSING_VALUE"

	// ErrCodeUnexpectedArgument indicates a free value could not be bound
	// to any positional or subcommand slot.
	ErrCodeUnexpectedArgument = "PARSE_UNEXPECTED_ARGUMENT"

	// ErrCodeMissingRequired indicates a required argument or required
	// group is unsatisfied.
	ErrCodeMissingRequired = "PARSE_MISSING_REQUIRED_ARGUMENT"

	// ErrCodeInvalidValue indicates a value outside the allowed set.
	ErrCodeInvalidValue = "PARSE_INVALID_VALUE"

	// ErrCodeValidationFailed indicates a custom validator rejected the
	// value.
	ErrCodeValidationFailed = "PARSE_VALIDATION_FAILED"

	// ErrCodeConflict indicates two mutually exclusive arguments are both
	// present.
	ErrCodeConflict = "PARSE_CONFLICTING_ARGUMENTS"

	// ErrCodeMissingDependency indicates an argument is present but one it
	// requires is absent.
	ErrCodeMissingDependency = "PARSE_MISSING_DEPENDENCY"

	// ErrCodeGroupConflict indicates two members of a mutually exclusive
	// group are both present.
	ErrCodeGroupConflict = "PARSE_GROUP_CONFLICT"

	// ErrCodeInvalidSchema indicates the schema itself violates a build
	// invariant (nesting depth, positional indices, duplicate aliases).
	ErrCodeInvalidSchema = "SCHEMA_INVALID"
)

// Error is a parse failure with structured data for the caller to render.
// The engine never prints or exits; it returns exactly one Error per failed
// parse (fail-fast, first violated rule wins).
type Error struct {
	// Code is one of the PARSE_* or SCHEMA_* codes.
	Code string

	// Arg is the primary argument name or offending token.
	Arg string

	// Value is the offending value, if any.
	Value string

	// Other is the second party for conflict and dependency errors.
	Other string

	// Group is the group name for group errors.
	Group string

	// Allowed is the permitted value set for invalid-value errors, or the
	// member list for required-group errors.
	Allowed []string

	// Suggestion is a near-match for unknown or unexpected tokens, when
	// one exists within a small edit distance.
	Suggestion string

	// Message carries the custom validator text or a schema diagnostic.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var msg string
	switch e.Code {
	case ErrCodeUnknownArgument:
		msg = fmt.Sprintf("unknown argument '%s'", e.Arg)
	case ErrCodeMissingValue:
		msg = fmt.Sprintf("the argument '%s' requires a value but none was supplied", e.Arg)
	case ErrCodeUnexpectedArgument:
		msg = fmt.Sprintf("unexpected argument '%s'", e.Arg)
	case ErrCodeMissingRequired:
		if len(e.Allowed) > 0 {
			msg = fmt.Sprintf("the argument '%s' is required (one of: %s)", e.Arg, strings.Join(e.Allowed, ", "))
		} else {
			msg = fmt.Sprintf("the argument '%s' is required", e.Arg)
		}
	case ErrCodeInvalidValue:
		msg = fmt.Sprintf("invalid value '%s' for '%s', expected one of: %s", e.Value, e.Arg, strings.Join(e.Allowed, ", "))
	case ErrCodeValidationFailed:
		msg = fmt.Sprintf("validation failed for '%s': %s", e.Arg, e.Message)
	case ErrCodeConflict:
		msg = fmt.Sprintf("the argument '%s' cannot be used with '%s'", e.Arg, e.Other)
	case ErrCodeMissingDependency:
		msg = fmt.Sprintf("the argument '%s' requires '%s'", e.Arg, e.Other)
	case ErrCodeGroupConflict:
		msg = fmt.Sprintf("the arguments '%s' and '%s' in group '%s' cannot be used together", e.Arg, e.Other, e.Group)
	case ErrCodeInvalidSchema:
		msg = fmt.Sprintf("invalid schema: %s", e.Message)
	default:
		msg = e.Message
	}
	if e.Suggestion != "" {
		msg += fmt.Sprintf(", did you mean '%s'?", e.Suggestion)
	}
	return "error: " + msg
}

// Is matches errors by code, so callers can use errors.Is with the
// predefined sentinels.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// Predefined sentinel errors for use with errors.Is.
var (
	ErrUnknownArgument    = &Error{Code: ErrCodeUnknownArgument}
	ErrMissingValue       = &Error{Code: ErrCodeMissingValue}
	ErrUnexpectedArgument = &Error{Code: ErrCodeUnexpectedArgument}
	ErrMissingRequired    = &Error{Code: ErrCodeMissingRequired}
	ErrInvalidValue       = &Error{Code: ErrCodeInvalidValue}
	ErrValidationFailed   = &Error{Code: ErrCodeValidationFailed}
	ErrConflict           = &Error{Code: ErrCodeConflict}
	ErrMissingDependency  = &Error{Code: ErrCodeMissingDependency}
	ErrGroupConflict      = &Error{Code: ErrCodeGroupConflict}
	ErrInvalidSchema      = &Error{Code: ErrCodeInvalidSchema}
)

// AsError checks if err is a parse Error and returns it if so.
func AsError(err error) (*Error, bool) {
	var parseErr *Error
	if errors.As(err, &parseErr) {
		return parseErr, true
	}
	return nil, false
}

// GetErrorCode extracts the code from a parse Error, or returns the empty
// string.
func GetErrorCode(err error) string {
	if parseErr, ok := AsError(err); ok {
		return parseErr.Code
	}
	return ""
}

func schemaError(format string, args ...any) *Error {
	return &Error{Code: ErrCodeInvalidSchema, Message: fmt.Sprintf(format, args...)}
}
