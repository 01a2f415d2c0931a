package frame

import (
	"maps"
	"slices"

	"github.com/paveg/biocframe/internal/column"
	"github.com/paveg/biocframe/internal/errors"
	"github.com/paveg/biocframe/internal/selection"
	"github.com/paveg/biocframe/internal/validation"
)

// SetColumn returns a copy with the named column added or replaced. The
// values must have one element per row.
func (f *Frame) SetColumn(name string, values any) (*Frame, error) {
	return f.SetColumns([]Named{Col(name, values)})
}

// SetColumnInPlace adds or replaces a column on the receiver.
func (f *Frame) SetColumnInPlace(name string, values any) error {
	return f.SetColumnsInPlace([]Named{Col(name, values)})
}

// SetColumns returns a copy with every given column added or replaced, in
// order. New columns are appended; column data gains an empty row for each.
func (f *Frame) SetColumns(cols []Named) (*Frame, error) {
	out := f.Copy()
	if err := out.setColumns("SetColumns", cols); err != nil {
		return nil, err
	}
	return out, nil
}

// SetColumnsInPlace is SetColumns on the receiver.
func (f *Frame) SetColumnsInPlace(cols []Named) error {
	return f.setColumns("SetColumns", cols)
}

func (f *Frame) setColumns(op string, cols []Named) error {
	if err := f.ready(op); err != nil {
		return err
	}

	built := make([]column.Column, len(cols))
	for i, c := range cols {
		col, err := column.FromValues(c.Values)
		if err != nil {
			return errors.NewTypeError(op, c.Values, "slice, Column or *Frame").WithCause(err)
		}
		if err := validation.ValidateLength(f.rows, col.Len(), op, c.Name); err != nil {
			return err
		}
		built[i] = col
	}

	names := slices.Clone(f.names)
	columns := slices.Clone(f.columns)
	added := 0
	for i, c := range cols {
		if j := slices.Index(names, c.Name); j >= 0 {
			columns[j] = built[i]
			continue
		}
		names = append(names, c.Name)
		columns = append(columns, built[i])
		added++
	}

	var mcols *Frame
	if f.columnData != nil && added > 0 {
		positions := identity(f.columnData.Len())
		for range added {
			positions = append(positions, -1)
		}
		var err error
		if mcols, err = f.columnData.gather(positions); err != nil {
			return err
		}
	}

	f.names, f.columns = names, columns
	if mcols != nil {
		f.columnData = mcols
	}
	f.invalidate()
	return nil
}

// RemoveColumns returns a copy without the selected columns. cols accepts
// anything selection.Of does.
func (f *Frame) RemoveColumns(cols any) (*Frame, error) {
	out := f.Copy()
	if err := out.removeColumns(cols); err != nil {
		return nil, err
	}
	return out, nil
}

// RemoveColumnsInPlace is RemoveColumns on the receiver.
func (f *Frame) RemoveColumnsInPlace(cols any) error {
	return f.removeColumns(cols)
}

func (f *Frame) removeColumns(cols any) error {
	const op = "RemoveColumns"
	if err := f.ready(op); err != nil {
		return err
	}
	drop, err := selection.Resolve(cols, len(f.columns), f.columnLabels(), "column")
	if err != nil {
		return err
	}
	keep := complement(drop, len(f.columns))

	var mcols *Frame
	if f.columnData != nil {
		if mcols, err = f.columnData.gather(keep); err != nil {
			return err
		}
	}

	f.names = pick(f.names, keep)
	f.columns = pick(f.columns, keep)
	f.columnData = mcols
	f.invalidate()
	return nil
}

// RemoveRows returns a copy without the selected rows.
func (f *Frame) RemoveRows(rows any) (*Frame, error) {
	out := f.Copy()
	if err := out.removeRows(rows); err != nil {
		return nil, err
	}
	return out, nil
}

// RemoveRowsInPlace is RemoveRows on the receiver.
func (f *Frame) RemoveRowsInPlace(rows any) error {
	return f.removeRows(rows)
}

func (f *Frame) removeRows(rows any) error {
	const op = "RemoveRows"
	if err := f.ready(op); err != nil {
		return err
	}
	drop, err := selection.Resolve(rows, f.rows, f.rowLookup(), "row")
	if err != nil {
		return err
	}
	keep := complement(drop, f.rows)

	for i, c := range f.columns {
		f.columns[i] = c.Take(keep)
	}
	if f.rowNames != nil {
		f.rowNames = pick(f.rowNames, keep)
	}
	f.rows = len(keep)
	f.invalidate()
	return nil
}

// SetColumnNames returns a copy with the columns renamed positionally.
func (f *Frame) SetColumnNames(names []string) (*Frame, error) {
	out := f.Copy()
	if err := out.setColumnNames(names); err != nil {
		return nil, err
	}
	return out, nil
}

// SetColumnNamesInPlace is SetColumnNames on the receiver.
func (f *Frame) SetColumnNamesInPlace(names []string) error {
	return f.setColumnNames(names)
}

func (f *Frame) setColumnNames(names []string) error {
	const op = "SetColumnNames"
	if err := f.ready(op); err != nil {
		return err
	}
	err := validation.NewCompoundValidator(
		validation.NewLengthValidator(len(f.columns), len(names), op, "column names"),
		validation.NewUniqueValidator(names, op, "column"),
	).Validate()
	if err != nil {
		return err
	}
	f.names = slices.Clone(names)
	f.invalidate()
	return nil
}

// SetRowNames returns a copy with new row names. nil removes them.
func (f *Frame) SetRowNames(names []string) (*Frame, error) {
	out := f.Copy()
	if err := out.setRowNames(names); err != nil {
		return nil, err
	}
	return out, nil
}

// SetRowNamesInPlace is SetRowNames on the receiver.
func (f *Frame) SetRowNamesInPlace(names []string) error {
	return f.setRowNames(names)
}

func (f *Frame) setRowNames(names []string) error {
	const op = "SetRowNames"
	if err := f.ready(op); err != nil {
		return err
	}
	if names != nil {
		err := validation.NewCompoundValidator(
			validation.NewLengthValidator(f.rows, len(names), op, "row names"),
			validation.NewUniqueValidator(names, op, "row"),
		).Validate()
		if err != nil {
			return err
		}
	}
	f.rowNames = slices.Clone(names)
	f.invalidate()
	return nil
}

// SetMetadata returns a copy carrying the given metadata.
func (f *Frame) SetMetadata(metadata map[string]any) (*Frame, error) {
	out := f.Copy()
	if err := out.SetMetadataInPlace(metadata); err != nil {
		return nil, err
	}
	return out, nil
}

// SetMetadataInPlace replaces the receiver's metadata.
func (f *Frame) SetMetadataInPlace(metadata map[string]any) error {
	if err := f.ready("SetMetadata"); err != nil {
		return err
	}
	if metadata == nil {
		metadata = map[string]any{}
	}
	f.metadata = maps.Clone(metadata)
	return nil
}

// SetColumnData returns a copy with new column annotations. The frame must
// have one row per column; nil removes them.
func (f *Frame) SetColumnData(mcols *Frame) (*Frame, error) {
	out := f.Copy()
	if err := out.SetColumnDataInPlace(mcols); err != nil {
		return nil, err
	}
	return out, nil
}

// SetColumnDataInPlace is SetColumnData on the receiver.
func (f *Frame) SetColumnDataInPlace(mcols *Frame) error {
	const op = "SetColumnData"
	if err := f.ready(op); err != nil {
		return err
	}
	if mcols != nil {
		if err := validation.ValidateLength(len(f.columns), mcols.Len(), op, "column data"); err != nil {
			return err
		}
	}
	f.columnData = mcols
	return nil
}

func identity(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func isIdentity(positions []int, n int) bool {
	if len(positions) != n {
		return false
	}
	for i, p := range positions {
		if p != i {
			return false
		}
	}
	return true
}

// complement returns the positions in [0, n) not listed in drop.
func complement(drop []int, n int) []int {
	dropped := make([]bool, n)
	for _, p := range drop {
		dropped[p] = true
	}
	keep := make([]int, 0, n)
	for i, d := range dropped {
		if !d {
			keep = append(keep, i)
		}
	}
	return keep
}

func pick[T any](values []T, positions []int) []T {
	out := make([]T, len(positions))
	for i, p := range positions {
		out[i] = values[p]
	}
	return out
}

// rowLookup returns the row-name index, or a nil interface when the frame
// has no row names.
func (f *Frame) rowLookup() selection.Lookup {
	if labels := f.rowLabels(); labels != nil {
		return labels
	}
	return nil
}
