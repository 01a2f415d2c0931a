package column

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/paveg/biocframe/internal/errors"
)

// Scalar is the set of element types a Vector can hold.
type Scalar interface {
	string | int64 | int32 | float64 | float32 | bool
}

// allocator backs every array built by this package. Arrays are garbage
// collected, so columns never need an explicit Release.
var allocator = memory.NewGoAllocator()

// Vector is an Arrow-backed scalar column. Nulls are missing values.
type Vector struct {
	kind Kind
	arr  arrow.Array
}

// New creates a Vector from a slice of values with no missing entries.
func New[T Scalar](values []T) *Vector {
	v, _ := NewNullable(values, nil)
	return v
}

// NewNullable creates a Vector where valid[i] == false marks a missing value.
// A nil valid slice means every value is present.
func NewNullable[T Scalar](values []T, valid []bool) (*Vector, error) {
	if valid != nil && len(valid) != len(values) {
		return nil, errors.NewStructureError("column creation",
			fmt.Sprintf("validity mask has length %d, values have length %d", len(valid), len(values)))
	}
	kind := kindOfScalar[T]()
	arr := buildArray(kind, len(values), func(i int) (any, bool) {
		if valid != nil && !valid[i] {
			return nil, false
		}
		return values[i], true
	})
	return &Vector{kind: kind, arr: arr}, nil
}

// FromArrow wraps an Arrow array of a supported type. The array is retained.
func FromArrow(arr arrow.Array) (*Vector, error) {
	kind, ok := KindOf(arr.DataType())
	if !ok {
		return nil, errors.NewTypeError("column creation", arr, "string, int64, int32, float64, float32 or bool array")
	}
	arr.Retain()
	return &Vector{kind: kind, arr: arr}, nil
}

func kindOfScalar[T Scalar]() Kind {
	var zero T
	switch any(zero).(type) {
	case string:
		return KindString
	case int64:
		return KindInt64
	case int32:
		return KindInt32
	case float64:
		return KindFloat64
	case float32:
		return KindFloat32
	default:
		return KindBool
	}
}

// Kind returns the element kind.
func (v *Vector) Kind() Kind {
	return v.kind
}

// Len returns the number of elements.
func (v *Vector) Len() int {
	return v.arr.Len()
}

// IsNull checks if the value at index is missing.
func (v *Vector) IsNull(i int) bool {
	return v.arr.IsNull(i)
}

// Value returns the element at i, or nil when missing.
func (v *Vector) Value(i int) any {
	if v.arr.IsNull(i) {
		return nil
	}
	switch arr := v.arr.(type) {
	case *array.String:
		return arr.Value(i)
	case *array.Int64:
		return arr.Value(i)
	case *array.Int32:
		return arr.Value(i)
	case *array.Float64:
		return arr.Value(i)
	case *array.Float32:
		return arr.Value(i)
	case *array.Boolean:
		return arr.Value(i)
	default:
		return arr.GetOneForMarshal(i)
	}
}

// Take gathers elements by position; -1 yields a missing value.
func (v *Vector) Take(indices []int) Column {
	arr := buildArray(v.kind, len(indices), func(i int) (any, bool) {
		src := indices[i]
		if src < 0 || v.arr.IsNull(src) {
			return nil, false
		}
		return v.Value(src), true
	})
	return &Vector{kind: v.kind, arr: arr}
}

// Null returns a vector of the same kind holding n missing values.
func (v *Vector) Null(n int) Column {
	return NullVector(v.kind, n)
}

// NullVector returns a vector of kind holding n missing values.
func NullVector(kind Kind, n int) *Vector {
	dt, ok := ArrowType(kind)
	if !ok {
		dt = arrow.BinaryTypes.String
		kind = KindString
	}
	return &Vector{kind: kind, arr: array.MakeArrayOfNull(allocator, dt, n)}
}

// Array returns the underlying Arrow array (retains a reference)
func (v *Vector) Array() arrow.Array {
	v.arr.Retain()
	return v.arr
}

// String returns a string representation of the vector
func (v *Vector) String() string {
	return fmt.Sprintf("Vector[%s] (len=%d)", v.kind, v.Len())
}

// typedBuilder is an Arrow builder accepting values of type T.
type typedBuilder[T any] interface {
	array.Builder
	Append(T)
}

func fill[T any](b typedBuilder[T], n int, at func(i int) (any, bool)) arrow.Array {
	defer b.Release()
	b.Reserve(n)
	for i := 0; i < n; i++ {
		if val, ok := at(i); ok {
			b.Append(val.(T))
		} else {
			b.AppendNull()
		}
	}
	return b.NewArray()
}

// buildArray builds an array of kind with n elements; at reports the value
// for position i and whether it is present.
func buildArray(kind Kind, n int, at func(i int) (any, bool)) arrow.Array {
	switch kind {
	case KindString:
		return fill[string](array.NewStringBuilder(allocator), n, at)
	case KindInt64:
		return fill[int64](array.NewInt64Builder(allocator), n, at)
	case KindInt32:
		return fill[int32](array.NewInt32Builder(allocator), n, at)
	case KindFloat64:
		return fill[float64](array.NewFloat64Builder(allocator), n, at)
	case KindFloat32:
		return fill[float32](array.NewFloat32Builder(allocator), n, at)
	case KindBool:
		return fill[bool](array.NewBooleanBuilder(allocator), n, at)
	default:
		panic(fmt.Sprintf("unsupported vector kind: %s", kind))
	}
}
