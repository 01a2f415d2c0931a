package frame

import (
	"fmt"

	"github.com/paveg/biocframe/internal/column"
	"github.com/paveg/biocframe/internal/errors"
	"github.com/paveg/biocframe/internal/index"
	"github.com/paveg/biocframe/internal/validation"
)

var _ column.Table = (*Frame)(nil)

// RowValues returns row i keyed by column name.
func (f *Frame) RowValues(i int) map[string]any {
	out := make(map[string]any, len(f.columns))
	for j, c := range f.columns {
		out[f.names[j]] = c.Value(i)
	}
	return out
}

// Gather returns the rows at the given positions; -1 yields a row of
// missing values.
func (f *Frame) Gather(positions []int) (column.Table, error) {
	return f.gather(positions)
}

// StackRows appends the rows of others below the receiver, taking the union
// of their columns.
func (f *Frame) StackRows(others []column.Table) (column.Table, error) {
	frames := make([]*Frame, 0, len(others)+1)
	frames = append(frames, f)
	for _, t := range others {
		o, ok := t.(*Frame)
		if !ok {
			return nil, errors.NewTypeError("StackRows", t, "*frame.Frame")
		}
		frames = append(frames, o)
	}
	return Stack(frames, true)
}

// AssignRows returns a copy whose rows at positions are replaced by the rows
// of src. src columns are matched by name; columns src lacks become missing
// at those rows.
func (f *Frame) AssignRows(positions []int, src column.Table) (column.Table, error) {
	const op = "AssignRows"
	s, ok := src.(*Frame)
	if !ok {
		return nil, errors.NewTypeError(op, src, "*frame.Frame")
	}
	if err := validation.ValidateLength(len(positions), s.Len(), op, "replacement rows"); err != nil {
		return nil, err
	}
	if err := validation.ValidateColumns(f, op, s.names...); err != nil {
		return nil, err
	}

	out := f.Copy()
	for i, name := range f.names {
		repl, ok := s.Column(name)
		if !ok {
			repl = f.columns[i].Null(len(positions))
		}
		next, err := column.Assign(f.columns[i], positions, repl)
		if err != nil {
			return nil, err
		}
		out.columns[i] = next
	}
	return out, nil
}

// EqualTable reports whether t is a frame equal to the receiver.
func (f *Frame) EqualTable(t column.Table) bool {
	o, ok := t.(*Frame)
	return ok && f.Equal(o)
}

// Stack appends frames top to bottom. Strict stacking requires every frame
// to have the same set of column names and orders them like the first
// frame. Relaxed stacking takes the union of column names in first-seen
// order and fills the rows of frames lacking a column with missing values of
// that column's kind.
//
// Row names are kept when every frame has them and must stay unique.
// Metadata and column data come from the first frame.
func Stack(frames []*Frame, relaxed bool) (*Frame, error) {
	op := "CombineRows"
	if relaxed {
		op = "RelaxedCombineRows"
	}
	if len(frames) == 0 {
		return nil, errors.NewStructureError(op, "nothing to combine")
	}
	for _, fr := range frames {
		if fr == nil {
			return nil, errors.NewStructureError(op, "cannot combine a nil frame")
		}
		if err := fr.ready(op); err != nil {
			return nil, err
		}
	}

	first := frames[0]
	names := first.names
	if relaxed {
		names = unionNames(frames)
	} else if err := sameColumns(op, frames); err != nil {
		return nil, err
	}

	templates := make(map[string]column.Column, len(names))
	for _, fr := range frames {
		for i, name := range fr.names {
			if _, ok := templates[name]; !ok {
				templates[name] = fr.columns[i]
			}
		}
	}

	out := &Frame{
		names:    append([]string(nil), names...),
		columns:  make([]column.Column, len(names)),
		metadata: first.metadata,
	}
	for _, fr := range frames {
		out.rows += fr.rows
	}

	for i, name := range names {
		parts := make([]column.Column, len(frames))
		for k, fr := range frames {
			if c, ok := fr.Column(name); ok {
				parts[k] = c
			} else {
				parts[k] = templates[name].Null(fr.rows)
			}
		}
		col, err := column.Concat(parts...)
		if err != nil {
			return nil, errors.NewTypeError(op, parts, "compatible column kinds").
				WithCause(err).WithHint(fmt.Sprintf("column '%s' mixes nested and flat values", name))
		}
		out.columns[i] = col
	}

	if rowNames, ok := concatRowNames(frames); ok {
		if err := validation.ValidateUnique(rowNames, op, "row"); err != nil {
			return nil, err
		}
		out.rowNames = rowNames
	}

	if first.columnData != nil {
		positions := make([]int, len(names))
		for i, name := range names {
			positions[i] = -1
			if j, ok := first.columnLabels().Lookup(name); ok {
				positions[i] = j
			}
		}
		mcols, err := first.columnData.gather(positions)
		if err != nil {
			return nil, err
		}
		out.columnData = mcols
	}

	out.validated = true
	return out, nil
}

func sameColumns(op string, frames []*Frame) error {
	first := frames[0]
	for k, fr := range frames[1:] {
		same := len(fr.names) == len(first.names)
		for _, name := range fr.names {
			if !same {
				break
			}
			same = first.HasColumn(name)
		}
		if !same {
			return errors.NewStructureError(op,
				fmt.Sprintf("frame %d has columns %v, expected %v", k+1, fr.names, first.names)).
				WithHint("use the relaxed variant to combine frames with different columns")
		}
	}
	return nil
}

func unionNames(frames []*Frame) []string {
	var all []string
	for _, fr := range frames {
		all = append(all, fr.names...)
	}
	return index.New(all).Distinct()
}

func concatRowNames(frames []*Frame) ([]string, bool) {
	var out []string
	for _, fr := range frames {
		if fr.rowNames == nil {
			return nil, false
		}
		out = append(out, fr.rowNames...)
	}
	if out == nil {
		out = []string{}
	}
	return out, true
}
