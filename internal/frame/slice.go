package frame

import (
	"github.com/paveg/biocframe/internal/column"
	"github.com/paveg/biocframe/internal/errors"
	"github.com/paveg/biocframe/internal/index"
	"github.com/paveg/biocframe/internal/selection"
	"github.com/paveg/biocframe/internal/validation"
)

// GetSlice returns the rows and columns addressed by the two selectors, in
// the requested order. Each selector accepts anything selection.Of does;
// nil selects the whole axis. Untouched columns are shared with the
// receiver and metadata is carried by reference.
//
// Repeating a row of a frame with row names fails with a uniqueness error.
func (f *Frame) GetSlice(rows, cols any) (*Frame, error) {
	const op = "GetSlice"
	if err := f.ready(op); err != nil {
		return nil, err
	}
	rowIdx, colIdx, err := f.resolve(rows, cols)
	if err != nil {
		return nil, err
	}

	out := &Frame{
		names:     pick(f.names, colIdx),
		columns:   pick(f.columns, colIdx),
		rows:      len(rowIdx),
		metadata:  f.metadata,
		validated: true,
	}
	if f.rowNames != nil {
		out.rowNames = pick(f.rowNames, rowIdx)
	}
	if err := validation.ValidateUnique(out.names, op, "column"); err != nil {
		return nil, err
	}
	if out.rowNames != nil {
		if err := validation.ValidateUnique(out.rowNames, op, "row"); err != nil {
			return nil, err.(*errors.FrameError).WithHint("remove row names before selecting a row twice")
		}
	}
	if !isIdentity(rowIdx, f.rows) {
		for i, c := range out.columns {
			out.columns[i] = c.Take(rowIdx)
		}
	}
	if f.columnData != nil {
		if out.columnData, err = f.columnData.gather(colIdx); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// GetRows is GetSlice over every column.
func (f *Frame) GetRows(rows any) (*Frame, error) {
	return f.GetSlice(rows, nil)
}

// GetColumns is GetSlice over every row.
func (f *Frame) GetColumns(cols any) (*Frame, error) {
	return f.GetSlice(nil, cols)
}

// SetSlice returns a copy with the addressed cells replaced by the contents
// of value. value must have one row per selected row and one column per
// selected column; its columns are matched to the selection positionally.
func (f *Frame) SetSlice(rows, cols any, value *Frame) (*Frame, error) {
	out := f.Copy()
	if err := out.setSlice(rows, cols, value); err != nil {
		return nil, err
	}
	return out, nil
}

// SetSliceInPlace is SetSlice on the receiver. Nothing is modified when it
// fails.
func (f *Frame) SetSliceInPlace(rows, cols any, value *Frame) error {
	return f.setSlice(rows, cols, value)
}

func (f *Frame) setSlice(rows, cols any, value *Frame) error {
	const op = "SetSlice"
	if err := f.ready(op); err != nil {
		return err
	}
	if value == nil {
		return errors.NewStructureError(op, "replacement frame is nil")
	}
	if err := value.ready(op); err != nil {
		return err
	}
	rowIdx, colIdx, err := f.resolve(rows, cols)
	if err != nil {
		return err
	}
	err = validation.NewCompoundValidator(
		validation.NewLengthValidator(len(rowIdx), value.Len(), op, "replacement rows"),
		validation.NewLengthValidator(len(colIdx), value.Width(), op, "replacement columns"),
	).Validate()
	if err != nil {
		return err
	}

	updated := make(map[int]column.Column, len(colIdx))
	for j, c := range colIdx {
		dst, ok := updated[c]
		if !ok {
			dst = f.columns[c]
		}
		next, err := column.Assign(dst, rowIdx, value.columns[j])
		if err != nil {
			return err
		}
		updated[c] = next
	}

	for c, col := range updated {
		f.columns[c] = col
	}
	return nil
}

func (f *Frame) resolve(rows, cols any) ([]int, []int, error) {
	rowIdx, err := selection.Resolve(rows, f.rows, f.rowLookup(), "row")
	if err != nil {
		return nil, nil, err
	}
	colIdx, err := selection.Resolve(cols, len(f.columns), f.columnLabels(), "column")
	if err != nil {
		return nil, nil, err
	}
	return rowIdx, colIdx, nil
}

// gather returns the rows at positions; -1 yields a row of missing values.
// Row names survive only when no position is -1 and none repeats.
func (f *Frame) gather(positions []int) (*Frame, error) {
	const op = "Gather"
	for _, p := range positions {
		if p < -1 || p >= f.rows {
			return nil, errors.NewIndexOutOfBoundsError(op, "row", p, f.rows)
		}
	}

	out := &Frame{
		names:     f.names,
		columns:   make([]column.Column, len(f.columns)),
		rows:      len(positions),
		metadata:  f.metadata,
		validated: true,
	}
	out.columnData = f.columnData
	for i, c := range f.columns {
		out.columns[i] = c.Take(positions)
	}

	if f.rowNames != nil && !hasPlaceholder(positions) {
		names := pick(f.rowNames, positions)
		if len(index.New(names).Duplicates()) == 0 {
			out.rowNames = names
		}
	}
	return out, nil
}

func hasPlaceholder(positions []int) bool {
	for _, p := range positions {
		if p < 0 {
			return true
		}
	}
	return false
}

// Take returns the rows at positions as a new frame; -1 yields a row of
// missing values. Row names survive only when no position is -1 and none
// repeats.
func (f *Frame) Take(positions []int) (*Frame, error) {
	if err := f.ready("Take"); err != nil {
		return nil, err
	}
	return f.gather(positions)
}
