// Package errors provides standardized error types for frame operations.
// Every failure surfaced by the library is a *FrameError carrying a Kind, so
// callers can branch with errors.Is against the Err* sentinels.
package errors

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Kind classifies a FrameError.
type Kind int

const (
	// KindStructure covers shape mismatches: column length vs row count,
	// incompatible frames in a combine, mask length vs axis length.
	KindStructure Kind = iota + 1
	// KindKey covers unknown column or row names.
	KindKey
	// KindIndex covers out-of-range integer positions.
	KindIndex
	// KindType covers wrong key or input types.
	KindType
	// KindUniqueness covers duplicate names where uniqueness is required.
	KindUniqueness
	// KindInternal covers failures in underlying libraries.
	KindInternal
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindStructure:
		return "structure"
	case KindKey:
		return "key"
	case KindIndex:
		return "index"
	case KindType:
		return "type"
	case KindUniqueness:
		return "uniqueness"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// FrameError represents standardized errors across all frame operations
type FrameError struct {
	Kind    Kind   // Error classification
	Op      string // Operation name (e.g., "GetColumn", "Merge")
	Column  string // Column name if applicable
	Message string // Human-readable error description
	Hint    string // Optional remediation hint
	Cause   error  // Underlying error cause
}

// Error implements the error interface
func (e *FrameError) Error() string {
	var msg string
	if e.Column != "" {
		msg = fmt.Sprintf("%s operation failed on column '%s': %s", e.Op, e.Column, e.Message)
	} else {
		msg = fmt.Sprintf("%s operation failed: %s", e.Op, e.Message)
	}
	if e.Hint != "" {
		msg += "\nHint: " + e.Hint
	}
	return msg
}

// Unwrap returns the underlying cause for error wrapping support
func (e *FrameError) Unwrap() error {
	return e.Cause
}

// Is implements error equality checking for errors.Is().
// A target carrying only a Kind (the Err* sentinels) matches any error of
// that kind.
func (e *FrameError) Is(target error) bool {
	t, ok := target.(*FrameError)
	if !ok {
		return false
	}
	if t.Op == "" && t.Column == "" && t.Message == "" {
		return e.Kind == t.Kind
	}
	return e.Kind == t.Kind && e.Op == t.Op && e.Column == t.Column && e.Message == t.Message
}

// WithHint returns a copy of the error carrying a remediation hint.
func (e *FrameError) WithHint(hint string) *FrameError {
	cp := *e
	cp.Hint = hint
	return &cp
}

// WithCause returns a copy of the error wrapping cause.
func (e *FrameError) WithCause(cause error) *FrameError {
	cp := *e
	cp.Cause = cause
	return &cp
}

// Sentinels for errors.Is.
var (
	ErrStructure  = &FrameError{Kind: KindStructure}
	ErrKey        = &FrameError{Kind: KindKey}
	ErrIndex      = &FrameError{Kind: KindIndex}
	ErrType       = &FrameError{Kind: KindType}
	ErrUniqueness = &FrameError{Kind: KindUniqueness}
	ErrInternal   = &FrameError{Kind: KindInternal}
)

// Common error constructors for consistent error creation

// NewStructureError creates an error for shape and layout mismatches.
func NewStructureError(op, message string) *FrameError {
	return &FrameError{Kind: KindStructure, Op: op, Message: message}
}

// NewLengthMismatchError creates an error for a column whose length differs
// from the frame's row count.
func NewLengthMismatchError(op, column string, expected, actual int) *FrameError {
	return &FrameError{
		Kind:    KindStructure,
		Op:      op,
		Column:  column,
		Message: fmt.Sprintf("expected length %d, got %d", expected, actual),
	}
}

// NewColumnNotFoundError creates an error for operations on non-existent
// columns. When available names are given, the closest one is offered as a
// hint.
func NewColumnNotFoundError(op, column string, available []string) *FrameError {
	err := &FrameError{
		Kind:    KindKey,
		Op:      op,
		Column:  column,
		Message: "column does not exist",
	}
	if s := closestName(column, available); s != "" {
		err.Hint = fmt.Sprintf("Did you mean '%s'? Available columns: [%s]", s, strings.Join(available, ", "))
	}
	return err
}

// NewRowNotFoundError creates an error for lookups of unknown row names.
func NewRowNotFoundError(op, row string) *FrameError {
	return &FrameError{
		Kind:    KindKey,
		Op:      op,
		Message: fmt.Sprintf("row '%s' does not exist", row),
	}
}

// NewIndexOutOfBoundsError creates an error for out-of-range positions.
func NewIndexOutOfBoundsError(op, axis string, index, length int) *FrameError {
	return &FrameError{
		Kind:    KindIndex,
		Op:      op,
		Message: fmt.Sprintf("%s index %d is out of range [0, %d)", axis, index, length),
	}
}

// NewTypeError creates an error for unsupported key or input types.
func NewTypeError(op string, got any, want string) *FrameError {
	return &FrameError{
		Kind:    KindType,
		Op:      op,
		Message: fmt.Sprintf("unsupported type %T, expected %s", got, want),
	}
}

// NewDuplicateNameError creates an error for repeated names on an axis.
func NewDuplicateNameError(op, axis string, names []string) *FrameError {
	return &FrameError{
		Kind:    KindUniqueness,
		Op:      op,
		Message: fmt.Sprintf("%s names must be unique, duplicates: [%s]", axis, strings.Join(names, ", ")),
	}
}

// NewInternalError creates an error for internal operation failures
func NewInternalError(op string, cause error) *FrameError {
	return &FrameError{
		Kind:    KindInternal,
		Op:      op,
		Message: "internal error occurred",
		Cause:   cause,
	}
}

const maxSuggestionDistance = 3

// closestName returns the candidate with the smallest edit distance to name,
// or "" when nothing is close enough.
func closestName(name string, candidates []string) string {
	best, bestDist := "", maxSuggestionDistance+1
	for _, c := range candidates {
		if d := levenshtein.ComputeDistance(name, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
