// Package column provides the column variants a frame stores: Arrow-backed
// scalar vectors, categorical factors, opaque object columns and
// nested-frame columns. Columns are immutable values; every operation that
// changes content returns a new column, so frames may share columns freely.
package column

import (
	"github.com/apache/arrow-go/v18/arrow"
)

// Kind identifies the column variant and, for vectors, the element type.
type Kind int

const (
	KindString Kind = iota
	KindInt64
	KindInt32
	KindFloat64
	KindFloat32
	KindBool
	KindObject
	KindFrame
	KindFactor
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt64:
		return "int64"
	case KindInt32:
		return "int32"
	case KindFloat64:
		return "float64"
	case KindFloat32:
		return "float32"
	case KindBool:
		return "bool"
	case KindObject:
		return "object"
	case KindFrame:
		return "frame"
	case KindFactor:
		return "factor"
	default:
		return "unknown"
	}
}

// IsVector reports whether columns of this kind are Arrow-backed.
func (k Kind) IsVector() bool {
	return k <= KindBool
}

// Column is the uniform capability interface over all column variants.
type Column interface {
	Kind() Kind
	Len() int
	// Value returns the element at i, or nil for a missing value.
	Value(i int) any
	IsNull(i int) bool
	// Take gathers elements by position. A position of -1 yields a missing
	// value.
	Take(indices []int) Column
	// Null returns a column of the same kind holding n missing values.
	Null(n int) Column
	String() string
}

// Table is the part of a frame a nested column relies on. It is implemented
// by *frame.Frame.
type Table interface {
	Len() int
	Width() int
	ColumnNames() []string
	// RowValues returns row i keyed by column name.
	RowValues(i int) map[string]any
	// Gather returns the rows at the given positions; -1 yields a row of
	// missing values.
	Gather(indices []int) (Table, error)
	// StackRows appends the rows of others below this table.
	StackRows(others []Table) (Table, error)
	// AssignRows replaces the rows at positions with the rows of src.
	AssignRows(positions []int, src Table) (Table, error)
	EqualTable(other Table) bool
}

// ArrowType returns the Arrow data type used to store a vector kind.
func ArrowType(k Kind) (arrow.DataType, bool) {
	switch k {
	case KindString:
		return arrow.BinaryTypes.String, true
	case KindInt64:
		return arrow.PrimitiveTypes.Int64, true
	case KindInt32:
		return arrow.PrimitiveTypes.Int32, true
	case KindFloat64:
		return arrow.PrimitiveTypes.Float64, true
	case KindFloat32:
		return arrow.PrimitiveTypes.Float32, true
	case KindBool:
		return arrow.FixedWidthTypes.Boolean, true
	default:
		return nil, false
	}
}

// KindOf maps an Arrow data type to a vector kind.
func KindOf(dt arrow.DataType) (Kind, bool) {
	switch dt.ID() {
	case arrow.STRING:
		return KindString, true
	case arrow.INT64:
		return KindInt64, true
	case arrow.INT32:
		return KindInt32, true
	case arrow.FLOAT64:
		return KindFloat64, true
	case arrow.FLOAT32:
		return KindFloat32, true
	case arrow.BOOL:
		return KindBool, true
	default:
		return KindObject, false
	}
}
