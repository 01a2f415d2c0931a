// Package combine stacks and joins frames. Rows are combined by stacking
// frames vertically, columns by placing them side by side; each has a strict
// form that requires the inputs to agree and a relaxed form that takes the
// union and fills gaps with missing values. Merge joins frames on row names
// or key columns.
package combine

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/paveg/biocframe/internal/errors"
	"github.com/paveg/biocframe/internal/frame"
	"github.com/paveg/biocframe/internal/index"
	"github.com/paveg/biocframe/internal/logging"
	"github.com/paveg/biocframe/internal/validation"
	"go.uber.org/zap"
)

// CombineRows stacks frames that share the same set of column names.
// Columns follow the first frame's order. Row names are kept when every
// frame has them.
func CombineRows(frames ...*frame.Frame) (*frame.Frame, error) {
	out, err := frame.Stack(frames, false)
	if err != nil {
		return nil, err
	}
	logCombined("CombineRows", len(frames), out)
	return out, nil
}

// RelaxedCombineRows stacks frames with differing columns. The result has
// the union of column names in first-seen order; a frame lacking a column
// contributes missing values of that column's kind.
func RelaxedCombineRows(frames ...*frame.Frame) (*frame.Frame, error) {
	out, err := frame.Stack(frames, true)
	if err != nil {
		return nil, err
	}
	logCombined("RelaxedCombineRows", len(frames), out)
	return out, nil
}

// CombineColumns places frames with equal row counts side by side. Column
// names must not repeat across inputs. Row names come from the first frame
// that has them; every other frame with row names must list the same names
// in the same order. Frames without row names are taken by position.
func CombineColumns(frames ...*frame.Frame) (*frame.Frame, error) {
	const op = "CombineColumns"
	if err := checkInputs(op, frames); err != nil {
		return nil, err
	}

	rows := frames[0].Len()
	var rowNames []string
	named := -1
	for i, f := range frames {
		if err := validation.ValidateLength(rows, f.Len(), op, "frame "+strconv.Itoa(i)); err != nil {
			return nil, err
		}
		if !f.HasRowNames() {
			continue
		}
		if rowNames == nil {
			rowNames, named = f.RowNames(), i
			continue
		}
		if !slices.Equal(rowNames, f.RowNames()) {
			return nil, errors.NewStructureError(op,
				fmt.Sprintf("row names of frame %d differ from frame %d", i, named)).
				WithHint("use RelaxedCombineColumns or Merge to align rows by name")
		}
	}

	out, err := sideBySide(op, frames, rows, rowNames, frames[0].Metadata())
	if err != nil {
		return nil, err
	}
	logCombined(op, len(frames), out)
	return out, nil
}

// RelaxedCombineColumns places frames side by side, aligning rows by name.
// The result has the union of row names in first-seen order and frames
// lacking a row contribute missing values. Either every frame has row names
// or none does; without row names rows align by position and shorter frames
// are padded with missing values.
func RelaxedCombineColumns(frames ...*frame.Frame) (*frame.Frame, error) {
	const op = "RelaxedCombineColumns"
	if err := checkInputs(op, frames); err != nil {
		return nil, err
	}

	named := 0
	for _, f := range frames {
		if f.HasRowNames() {
			named++
		}
	}
	if named != 0 && named != len(frames) {
		return nil, errors.NewStructureError(op, "either every frame or no frame must have row names").
			WithHint("set row names on every frame, or remove them")
	}

	parts := make([]*frame.Frame, len(frames))
	var rowNames []string
	rows := 0

	if named > 0 {
		var all []string
		for _, f := range frames {
			all = append(all, f.RowNames()...)
		}
		rowNames = index.New(all).Distinct()
		if rowNames == nil {
			rowNames = []string{}
		}
		rows = len(rowNames)
		for i, f := range frames {
			labels := index.New(f.RowNames())
			positions := make([]int, rows)
			for r, name := range rowNames {
				positions[r] = -1
				if p, ok := labels.Lookup(name); ok {
					positions[r] = p
				}
			}
			aligned, err := f.Take(positions)
			if err != nil {
				return nil, err
			}
			parts[i] = aligned
		}
	} else {
		for _, f := range frames {
			rows = max(rows, f.Len())
		}
		for i, f := range frames {
			positions := make([]int, rows)
			for r := range positions {
				positions[r] = -1
				if r < f.Len() {
					positions[r] = r
				}
			}
			aligned, err := f.Take(positions)
			if err != nil {
				return nil, err
			}
			parts[i] = aligned
		}
	}

	out, err := sideBySide(op, parts, rows, rowNames, frames[0].Metadata())
	if err != nil {
		return nil, err
	}
	logCombined(op, len(frames), out)
	return out, nil
}

// sideBySide joins row-aligned frames horizontally. Column data of the
// inputs is stacked when any input has it.
func sideBySide(op string, parts []*frame.Frame, rows int, rowNames []string, metadata map[string]any) (*frame.Frame, error) {
	var cols []frame.Named
	var names []string
	for _, p := range parts {
		for _, name := range p.ColumnNames() {
			c, _ := p.Column(name)
			cols = append(cols, frame.Col(name, c))
			names = append(names, name)
		}
	}
	if err := validation.ValidateUnique(names, op, "column"); err != nil {
		return nil, err
	}

	blocks := make([]columnBlock, len(parts))
	for i, p := range parts {
		blocks[i] = columnBlock{source: p, positions: seq(p.Width())}
	}
	mcols, err := stackColumnData(blocks)
	if err != nil {
		return nil, err
	}

	opts := []frame.Option{
		frame.WithRows(rows),
		frame.WithRowNames(rowNames),
		frame.WithMetadata(metadata),
		frame.WithValidation(true),
	}
	if mcols != nil {
		opts = append(opts, frame.WithColumnData(mcols))
	}
	return frame.New(cols, opts...)
}

// columnBlock is a run of output columns taken from one input frame.
type columnBlock struct {
	source    *frame.Frame
	positions []int // column positions in source
}

// stackColumnData builds column data for the concatenated blocks. Blocks
// whose frame has no column data contribute missing rows. It returns nil
// when no input has column data.
func stackColumnData(blocks []columnBlock) (*frame.Frame, error) {
	found := false
	for _, b := range blocks {
		if b.source.ColumnData() != nil {
			found = true
			break
		}
	}
	if !found {
		return nil, nil
	}

	parts := make([]*frame.Frame, 0, len(blocks))
	for _, b := range blocks {
		mcols := b.source.ColumnData()
		if mcols == nil {
			parts = append(parts, frame.Empty(len(b.positions)))
			continue
		}
		rows, err := mcols.Take(b.positions)
		if err != nil {
			return nil, err
		}
		if rows.HasRowNames() {
			if rows, err = rows.SetRowNames(nil); err != nil {
				return nil, err
			}
		}
		parts = append(parts, rows)
	}
	return frame.Stack(parts, true)
}

func checkInputs(op string, frames []*frame.Frame) error {
	if len(frames) == 0 {
		return errors.NewStructureError(op, "nothing to combine")
	}
	for _, f := range frames {
		if f == nil {
			return errors.NewStructureError(op, "cannot combine a nil frame")
		}
		if err := f.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func logCombined(op string, inputs int, out *frame.Frame) {
	logging.Debug("frames combined",
		zap.String("op", op),
		zap.Int("inputs", inputs),
		zap.Int("rows", out.Len()),
		zap.Int("columns", out.Width()),
	)
}
