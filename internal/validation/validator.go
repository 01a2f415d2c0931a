// Package validation provides reusable validators for frame invariants.
// Frames run them when they are built and before any setter mutates state:
// column lengths against the row count, unique names on both axes, column
// existence and positional bounds.
package validation

import (
	"github.com/paveg/biocframe/internal/errors"
	"github.com/paveg/biocframe/internal/index"
)

// Validator interface for input validation
type Validator interface {
	Validate() error
}

// ColumnProvider interface for types that provide column information
type ColumnProvider interface {
	HasColumn(name string) bool
	ColumnNames() []string
	Len() int
	Width() int
}

// ColumnValidator validates column existence
type ColumnValidator struct {
	df      ColumnProvider
	columns []string
	op      string
}

// NewColumnValidator creates a validator for column operations
func NewColumnValidator(df ColumnProvider, op string, columns ...string) *ColumnValidator {
	return &ColumnValidator{
		df:      df,
		columns: columns,
		op:      op,
	}
}

// Validate checks if all columns exist in the frame
func (v *ColumnValidator) Validate() error {
	for _, column := range v.columns {
		if !v.df.HasColumn(column) {
			return errors.NewColumnNotFoundError(v.op, column, v.df.ColumnNames())
		}
	}
	return nil
}

// LengthValidator validates that a column has the frame's row count
type LengthValidator struct {
	expected int
	actual   int
	op       string
	column   string
}

// NewLengthValidator creates a validator for length consistency
func NewLengthValidator(expected, actual int, op, column string) *LengthValidator {
	return &LengthValidator{
		expected: expected,
		actual:   actual,
		op:       op,
		column:   column,
	}
}

// Validate checks if lengths match
func (v *LengthValidator) Validate() error {
	if v.expected != v.actual {
		return errors.NewLengthMismatchError(v.op, v.column, v.expected, v.actual)
	}
	return nil
}

// IndexValidator validates index bounds
type IndexValidator struct {
	index int
	max   int
	op    string
	axis  string
}

// NewIndexValidator creates a validator for index operations
func NewIndexValidator(index, maxIndex int, op, axis string) *IndexValidator {
	return &IndexValidator{
		index: index,
		max:   maxIndex,
		op:    op,
		axis:  axis,
	}
}

// Validate checks if index is within bounds
func (v *IndexValidator) Validate() error {
	if v.index < 0 || v.index >= v.max {
		return errors.NewIndexOutOfBoundsError(v.op, v.axis, v.index, v.max)
	}
	return nil
}

// UniqueValidator validates that names on an axis do not repeat
type UniqueValidator struct {
	names []string
	op    string
	axis  string
}

// NewUniqueValidator creates a validator for name uniqueness
func NewUniqueValidator(names []string, op, axis string) *UniqueValidator {
	return &UniqueValidator{
		names: names,
		op:    op,
		axis:  axis,
	}
}

// Validate checks that no name occurs twice
func (v *UniqueValidator) Validate() error {
	if len(v.names) < 2 {
		return nil
	}
	if dups := index.New(v.names).Duplicates(); len(dups) > 0 {
		return errors.NewDuplicateNameError(v.op, v.axis, dups)
	}
	return nil
}

// CompoundValidator combines multiple validators
type CompoundValidator struct {
	validators []Validator
}

// NewCompoundValidator creates a validator that checks multiple conditions
func NewCompoundValidator(validators ...Validator) *CompoundValidator {
	return &CompoundValidator{
		validators: validators,
	}
}

// Add appends validators to the chain.
func (v *CompoundValidator) Add(validators ...Validator) *CompoundValidator {
	v.validators = append(v.validators, validators...)
	return v
}

// Validate runs all validators and returns the first error encountered
func (v *CompoundValidator) Validate() error {
	for _, validator := range v.validators {
		if err := validator.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Convenience validation functions

// ValidateColumns is a convenience function for column validation
func ValidateColumns(df ColumnProvider, op string, columns ...string) error {
	return NewColumnValidator(df, op, columns...).Validate()
}

// ValidateLength is a convenience function for length validation
func ValidateLength(expected, actual int, op, column string) error {
	return NewLengthValidator(expected, actual, op, column).Validate()
}

// ValidateIndex is a convenience function for index validation
func ValidateIndex(index, maxIndex int, op, axis string) error {
	return NewIndexValidator(index, maxIndex, op, axis).Validate()
}

// ValidateUnique is a convenience function for uniqueness validation
func ValidateUnique(names []string, op, axis string) error {
	return NewUniqueValidator(names, op, axis).Validate()
}
