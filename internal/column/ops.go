package column

import (
	"fmt"
	"reflect"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/paveg/biocframe/internal/errors"
)

// FromValues builds a column from a Go slice, an existing Column, or a Table.
// []int becomes an int64 vector. For []any the element kinds are inferred: a
// single scalar kind yields a vector with nils as missing values, anything
// else an object column.
func FromValues(values any) (Column, error) {
	switch v := values.(type) {
	case Column:
		return v, nil
	case Table:
		return NewNested(v), nil
	case []string:
		return New(v), nil
	case []int64:
		return New(v), nil
	case []int32:
		return New(v), nil
	case []float64:
		return New(v), nil
	case []float32:
		return New(v), nil
	case []bool:
		return New(v), nil
	case []int:
		out := make([]int64, len(v))
		for i, x := range v {
			out[i] = int64(x)
		}
		return New(out), nil
	case []any:
		return infer(v), nil
	default:
		return nil, errors.NewTypeError("column creation", values, "slice, Column or Table")
	}
}

func scalarKind(v any) (Kind, bool) {
	switch v.(type) {
	case string:
		return KindString, true
	case int, int8, int16, int64:
		return KindInt64, true
	case int32:
		return KindInt32, true
	case float64:
		return KindFloat64, true
	case float32:
		return KindFloat32, true
	case bool:
		return KindBool, true
	default:
		return KindObject, false
	}
}

func infer(values []any) Column {
	kind, seen := KindObject, false
	for _, v := range values {
		if v == nil {
			continue
		}
		k, ok := scalarKind(v)
		if !ok || (seen && k != kind) {
			return NewObjects(values)
		}
		kind, seen = k, true
	}
	if !seen {
		return NewObjects(values)
	}

	arr := buildArray(kind, len(values), func(i int) (any, bool) {
		v := values[i]
		if v == nil {
			return nil, false
		}
		if kind == KindInt64 {
			return toInt64(v), true
		}
		return v, true
	})
	return &Vector{kind: kind, arr: arr}
}

func toInt64(v any) int64 {
	switch x := v.(type) {
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	default:
		return x.(int64)
	}
}

// Concat appends columns end to end. Columns of one kind keep that kind;
// scalar and object columns of differing kinds fall back to an object
// column. Factors with differing levels merge their levels. Nested columns
// only concatenate with nested columns.
func Concat(cols ...Column) (Column, error) {
	if len(cols) == 0 {
		return nil, errors.NewStructureError("Concat", "no columns to concatenate")
	}
	if len(cols) == 1 {
		return cols[0], nil
	}

	kind := cols[0].Kind()
	same := true
	for _, c := range cols[1:] {
		if c.Kind() != kind {
			same = false
			break
		}
	}

	if !same {
		total := 0
		for _, c := range cols {
			if c.Kind() == KindFrame {
				return nil, errors.NewTypeError("Concat", c, "non-nested column alongside scalar columns")
			}
			total += c.Len()
		}
		values := make([]any, 0, total)
		for _, c := range cols {
			for i := 0; i < c.Len(); i++ {
				values = append(values, c.Value(i))
			}
		}
		return &Objects{values: values}, nil
	}

	switch kind {
	case KindObject:
		var values []any
		for _, c := range cols {
			values = append(values, c.(*Objects).values...)
		}
		return &Objects{values: values}, nil
	case KindFactor:
		return concatFactors(cols), nil
	case KindFrame:
		rest := make([]Table, 0, len(cols)-1)
		for _, c := range cols[1:] {
			rest = append(rest, c.(*Nested).table)
		}
		t, err := cols[0].(*Nested).table.StackRows(rest)
		if err != nil {
			return nil, err
		}
		return &Nested{table: t}, nil
	default:
		arrs := make([]arrow.Array, len(cols))
		for i, c := range cols {
			arrs[i] = c.(*Vector).arr
		}
		arr, err := array.Concatenate(arrs, allocator)
		if err != nil {
			return nil, errors.NewInternalError("Concat", err)
		}
		return &Vector{kind: kind, arr: arr}, nil
	}
}

// Assign returns a copy of dst with the elements at positions replaced by
// the elements of src, in order. When a position repeats, the last write
// wins. dst is never modified.
func Assign(dst Column, positions []int, src Column) (Column, error) {
	if len(positions) != src.Len() {
		return nil, errors.NewStructureError("Assign",
			fmt.Sprintf("%d positions but %d replacement values", len(positions), src.Len()))
	}
	n := dst.Len()
	repl := make([]int, n)
	for i := range repl {
		repl[i] = -1
	}
	for j, p := range positions {
		if p < 0 || p >= n {
			return nil, errors.NewIndexOutOfBoundsError("Assign", "element", p, n)
		}
		repl[p] = j
	}

	at := func(i int) any {
		if repl[i] >= 0 {
			return src.Value(repl[i])
		}
		return dst.Value(i)
	}

	switch {
	case dst.Kind() == KindFrame && src.Kind() == KindFrame:
		t, err := dst.(*Nested).table.AssignRows(positions, src.(*Nested).table)
		if err != nil {
			return nil, err
		}
		return &Nested{table: t}, nil
	case dst.Kind() == KindFrame || src.Kind() == KindFrame:
		return nil, errors.NewTypeError("Assign", src, fmt.Sprintf("%s column", dst.Kind()))
	case dst.Kind() == KindFactor && src.Kind() == KindFactor:
		return assignFactor(dst.(*Factor), positions, src.(*Factor)), nil
	case dst.Kind() == src.Kind() && dst.Kind().IsVector():
		arr := buildArray(dst.Kind(), n, func(i int) (any, bool) {
			v := at(i)
			return v, v != nil
		})
		return &Vector{kind: dst.Kind(), arr: arr}, nil
	default:
		values := make([]any, n)
		for i := range values {
			values[i] = at(i)
		}
		return &Objects{values: values}, nil
	}
}

// Equal reports whether two columns have the same kind and elements.
// Factors must also share levels and ordering.
func Equal(a, b Column) bool {
	if a.Kind() != b.Kind() || a.Len() != b.Len() {
		return false
	}
	switch a.Kind() {
	case KindFrame:
		return a.(*Nested).table.EqualTable(b.(*Nested).table)
	case KindFactor:
		return equalFactors(a.(*Factor), b.(*Factor))
	}
	for i := 0; i < a.Len(); i++ {
		if !reflect.DeepEqual(a.Value(i), b.Value(i)) {
			return false
		}
	}
	return true
}

// Values returns every element of c as a slice.
func Values(c Column) []any {
	out := make([]any, c.Len())
	for i := range out {
		out[i] = c.Value(i)
	}
	return out
}
