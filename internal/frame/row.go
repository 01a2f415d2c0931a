package frame

import (
	"iter"
	"slices"

	"github.com/paveg/biocframe/internal/common"
	"github.com/paveg/biocframe/internal/errors"
	"github.com/paveg/biocframe/internal/validation"
)

// Row is one row of a frame with its values in column order.
type Row struct {
	Position int
	Name     string // empty when the frame has no row names
	named    bool
	columns  []string
	values   []any
}

// Key returns the row name, or the row position when the frame has no row
// names.
func (r Row) Key() any {
	if r.named {
		return r.Name
	}
	return r.Position
}

// Columns returns the column names.
func (r Row) Columns() []string { return slices.Clone(r.columns) }

// Values returns the values in column order.
func (r Row) Values() []any { return slices.Clone(r.values) }

// Get returns the value of the named column.
func (r Row) Get(name string) (any, bool) {
	i := slices.Index(r.columns, name)
	if i < 0 {
		return nil, false
	}
	return r.values[i], true
}

// Map returns the row keyed by column name.
func (r Row) Map() map[string]any {
	out := make(map[string]any, len(r.columns))
	for i, name := range r.columns {
		out[name] = r.values[i]
	}
	return out
}

func (f *Frame) row(i int) Row {
	r := Row{
		Position: i,
		columns:  f.names,
		values:   make([]any, len(f.columns)),
	}
	if f.rowNames != nil {
		r.Name, r.named = f.rowNames[i], true
	}
	for j, c := range f.columns {
		r.values[j] = c.Value(i)
	}
	return r
}

// GetRow returns a row by position or by row name. Positions follow the
// same rules as GetColumn.
func (f *Frame) GetRow(key any) (Row, error) {
	const op = "GetRow"
	if err := f.ready(op); err != nil {
		return Row{}, err
	}

	if name, ok := key.(string); ok {
		labels := f.rowLabels()
		if labels == nil {
			return Row{}, errors.NewRowNotFoundError(op, name).WithHint("frame has no row names")
		}
		i, found := labels.Lookup(name)
		if !found {
			return Row{}, errors.NewRowNotFoundError(op, name)
		}
		return f.row(i), nil
	}
	if i, ok := common.ToInt(key); ok {
		if err := validation.ValidateIndex(i, f.rows, op, "row"); err != nil {
			return Row{}, err
		}
		return f.row(i), nil
	}
	return Row{}, errors.NewTypeError(op, key, "integer position or row name")
}

// Rows iterates over the rows in order, yielding each row's key: the row
// name, or the position when the frame has no row names. The sequence can be
// ranged over any number of times. A frame that fails validation yields no
// rows; Validate reports why.
func (f *Frame) Rows() iter.Seq2[any, Row] {
	return func(yield func(any, Row) bool) {
		if f.ready("Rows") != nil {
			return
		}
		for i := 0; i < f.rows; i++ {
			r := f.row(i)
			if !yield(r.Key(), r) {
				return
			}
		}
	}
}
