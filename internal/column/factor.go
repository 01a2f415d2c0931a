package column

import (
	"fmt"
	"slices"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/paveg/biocframe/internal/errors"
)

// Factor is a categorical column: each element is a code into a list of
// unique levels, or -1 when missing. Ordered factors have meaningful level
// order.
type Factor struct {
	codes   []int
	levels  []string
	ordered bool
}

// NewFactor creates a factor from codes and levels. Codes must be -1 or a
// valid level position and levels must be unique. Both slices are copied.
func NewFactor(codes []int, levels []string, ordered bool) (*Factor, error) {
	const op = "NewFactor"
	if dups := duplicateLevels(levels); len(dups) > 0 {
		return nil, errors.NewDuplicateNameError(op, "level", dups)
	}
	for _, c := range codes {
		if c < -1 || c >= len(levels) {
			return nil, errors.NewIndexOutOfBoundsError(op, "level", c, len(levels))
		}
	}
	return &Factor{codes: slices.Clone(codes), levels: slices.Clone(levels), ordered: ordered}, nil
}

// FactorFromStrings builds a factor whose levels are the distinct values in
// sorted order. Empty strings are kept as a level; use NewFactor for
// missing values.
func FactorFromStrings(values []string) *Factor {
	levels := slices.Clone(values)
	slices.Sort(levels)
	levels = slices.Compact(levels)

	codes := make([]int, len(values))
	for i, v := range values {
		codes[i], _ = slices.BinarySearch(levels, v)
	}
	return &Factor{codes: codes, levels: levels}
}

// Kind returns KindFactor.
func (f *Factor) Kind() Kind { return KindFactor }

// Len returns the number of elements.
func (f *Factor) Len() int { return len(f.codes) }

// Value returns the level of element i, or nil when it is missing.
func (f *Factor) Value(i int) any {
	if f.codes[i] < 0 {
		return nil
	}
	return f.levels[f.codes[i]]
}

// IsNull reports whether element i is missing.
func (f *Factor) IsNull(i int) bool { return f.codes[i] < 0 }

// Codes returns a copy of the level codes.
func (f *Factor) Codes() []int { return slices.Clone(f.codes) }

// Levels returns a copy of the levels.
func (f *Factor) Levels() []string { return slices.Clone(f.levels) }

// Ordered reports whether the levels are ordered.
func (f *Factor) Ordered() bool { return f.ordered }

// Take gathers elements by position; -1 yields a missing value. Levels are
// kept.
func (f *Factor) Take(indices []int) Column {
	codes := make([]int, len(indices))
	for i, src := range indices {
		codes[i] = -1
		if src >= 0 {
			codes[i] = f.codes[src]
		}
	}
	return &Factor{codes: codes, levels: f.levels, ordered: f.ordered}
}

// Null returns n missing values sharing this factor's levels.
func (f *Factor) Null(n int) Column {
	codes := make([]int, n)
	for i := range codes {
		codes[i] = -1
	}
	return &Factor{codes: codes, levels: f.levels, ordered: f.ordered}
}

// DropUnusedLevels returns a factor without the levels no element uses.
// Remaining levels keep their order.
func (f *Factor) DropUnusedLevels() *Factor {
	used := make([]bool, len(f.levels))
	for _, c := range f.codes {
		if c >= 0 {
			used[c] = true
		}
	}
	remap := make([]int, len(f.levels))
	var levels []string
	for i, u := range used {
		remap[i] = -1
		if u {
			remap[i] = len(levels)
			levels = append(levels, f.levels[i])
		}
	}
	if levels == nil {
		levels = []string{}
	}
	return &Factor{codes: recode(f.codes, remap), levels: levels, ordered: f.ordered}
}

// SetLevels returns a factor over new levels. Elements keep their value
// when it is among the new levels and become missing otherwise.
func (f *Factor) SetLevels(levels []string) (*Factor, error) {
	if dups := duplicateLevels(levels); len(dups) > 0 {
		return nil, errors.NewDuplicateNameError("SetLevels", "level", dups)
	}
	return &Factor{codes: recode(f.codes, levelMapping(f.levels, levels)), levels: slices.Clone(levels), ordered: f.ordered}, nil
}

// Relevel returns a factor with level moved to the front.
func (f *Factor) Relevel(level string) (*Factor, error) {
	i := slices.Index(f.levels, level)
	if i < 0 {
		return nil, &errors.FrameError{
			Kind:    errors.KindKey,
			Op:      "Relevel",
			Message: fmt.Sprintf("level '%s' does not exist", level),
		}
	}
	levels := make([]string, 0, len(f.levels))
	levels = append(levels, level)
	levels = append(levels, f.levels[:i]...)
	levels = append(levels, f.levels[i+1:]...)
	return f.SetLevels(levels)
}

// String returns a string representation of the column
func (f *Factor) String() string {
	return fmt.Sprintf("Factor (len=%d, levels=%d, ordered=%t)", len(f.codes), len(f.levels), f.ordered)
}

// DictionaryArray writes the factor as an Arrow dictionary array with int32
// indices and string values. The caller releases it.
func (f *Factor) DictionaryArray(mem memory.Allocator) *array.Dictionary {
	ib := array.NewInt32Builder(mem)
	defer ib.Release()
	ib.Reserve(len(f.codes))
	for _, c := range f.codes {
		if c < 0 {
			ib.AppendNull()
			continue
		}
		ib.Append(int32(c))
	}
	indices := ib.NewArray()
	defer indices.Release()

	sb := array.NewStringBuilder(mem)
	defer sb.Release()
	sb.AppendValues(f.levels, nil)
	dict := sb.NewArray()
	defer dict.Release()

	dt := &arrow.DictionaryType{
		IndexType: arrow.PrimitiveTypes.Int32,
		ValueType: arrow.BinaryTypes.String,
		Ordered:   f.ordered,
	}
	return array.NewDictionaryArray(dt, indices, dict)
}

// FactorFromArrow reads a dictionary array with string values.
func FactorFromArrow(arr *array.Dictionary) (*Factor, error) {
	const op = "FactorFromArrow"
	dt, ok := arr.DataType().(*arrow.DictionaryType)
	if !ok {
		return nil, errors.NewTypeError(op, arr.DataType(), "dictionary type")
	}
	values, ok := arr.Dictionary().(*array.String)
	if !ok {
		return nil, errors.NewTypeError(op, arr.Dictionary(), "string dictionary")
	}

	levels := make([]string, values.Len())
	for i := range levels {
		levels[i] = values.Value(i)
	}
	codes := make([]int, arr.Len())
	for i := range codes {
		codes[i] = -1
		if arr.IsValid(i) {
			codes[i] = arr.GetValueIndex(i)
		}
	}
	return NewFactor(codes, levels, dt.Ordered)
}

// concatFactors keeps the shared levels when every factor has the same
// levels and ordering. Otherwise the levels are merged in first-seen order
// and the result is unordered.
func concatFactors(cols []Column) *Factor {
	first := cols[0].(*Factor)
	same := true
	for _, c := range cols[1:] {
		f := c.(*Factor)
		if f.ordered != first.ordered || !slices.Equal(f.levels, first.levels) {
			same = false
			break
		}
	}

	var codes []int
	if same {
		for _, c := range cols {
			codes = append(codes, c.(*Factor).codes...)
		}
		return &Factor{codes: codes, levels: first.levels, ordered: first.ordered}
	}

	var levels []string
	for _, c := range cols {
		levels = mergeLevels(levels, c.(*Factor).levels)
	}
	for _, c := range cols {
		f := c.(*Factor)
		codes = append(codes, recode(f.codes, levelMapping(f.levels, levels))...)
	}
	return &Factor{codes: codes, levels: levels}
}

// assignFactor writes src into dst at positions. Levels of src missing from
// dst are appended to dst's levels.
func assignFactor(dst *Factor, positions []int, src *Factor) *Factor {
	levels := mergeLevels(slices.Clone(dst.levels), src.levels)
	mapping := levelMapping(src.levels, levels)
	codes := slices.Clone(dst.codes)
	for j, p := range positions {
		codes[p] = -1
		if c := src.codes[j]; c >= 0 {
			codes[p] = mapping[c]
		}
	}
	return &Factor{codes: codes, levels: levels, ordered: dst.ordered}
}

func equalFactors(a, b *Factor) bool {
	return a.ordered == b.ordered && slices.Equal(a.levels, b.levels) && slices.Equal(a.codes, b.codes)
}

// mergeLevels appends the levels of add not already in levels.
func mergeLevels(levels, add []string) []string {
	for _, l := range add {
		if !slices.Contains(levels, l) {
			levels = append(levels, l)
		}
	}
	return levels
}

// levelMapping maps each position in from to the position of the same level
// in to, or -1.
func levelMapping(from, to []string) []int {
	at := make(map[string]int, len(to))
	for i, l := range to {
		at[l] = i
	}
	out := make([]int, len(from))
	for i, l := range from {
		out[i] = -1
		if j, ok := at[l]; ok {
			out[i] = j
		}
	}
	return out
}

func recode(codes, mapping []int) []int {
	out := make([]int, len(codes))
	for i, c := range codes {
		out[i] = -1
		if c >= 0 {
			out[i] = mapping[c]
		}
	}
	return out
}

func duplicateLevels(levels []string) []string {
	seen := make(map[string]bool, len(levels))
	var dups []string
	for _, l := range levels {
		if seen[l] && !slices.Contains(dups, l) {
			dups = append(dups, l)
		}
		seen[l] = true
	}
	return dups
}
