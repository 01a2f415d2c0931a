package combine

import (
	"fmt"
	"strings"

	"github.com/paveg/biocframe/internal/column"
	"github.com/paveg/biocframe/internal/common"
	"github.com/paveg/biocframe/internal/config"
	"github.com/paveg/biocframe/internal/errors"
	"github.com/paveg/biocframe/internal/frame"
	"github.com/paveg/biocframe/internal/index"
	"github.com/paveg/biocframe/internal/logging"
	"go.uber.org/zap"
)

// JoinType selects which keys a merge keeps.
type JoinType int

const (
	// JoinDefault uses the configured default join.
	JoinDefault JoinType = iota
	// JoinInner keeps keys present in every frame.
	JoinInner
	// JoinLeft keeps the rows of the first frame.
	JoinLeft
	// JoinRight keeps the rows of the last frame.
	JoinRight
	// JoinOuter keeps every key of every frame.
	JoinOuter
)

// String returns the join name.
func (j JoinType) String() string {
	switch j {
	case JoinInner:
		return "inner"
	case JoinLeft:
		return "left"
	case JoinRight:
		return "right"
	case JoinOuter:
		return "outer"
	default:
		return "default"
	}
}

// ParseJoin converts a join name into a JoinType.
func ParseJoin(s string) (JoinType, error) {
	switch strings.ToLower(s) {
	case "inner":
		return JoinInner, nil
	case "left":
		return JoinLeft, nil
	case "right":
		return JoinRight, nil
	case "outer":
		return JoinOuter, nil
	case "", "default":
		return JoinDefault, nil
	}
	return JoinDefault, errors.NewTypeError("ParseJoin", s, "one of inner, left, right, outer")
}

// DuplicatePolicy decides what happens when merged frames share a column
// name.
type DuplicatePolicy int

const (
	// DuplicateRename keeps every column. The first keeps its name and
	// later ones get the ordinal of their occurrence, "name (2)" and so on.
	DuplicateRename DuplicatePolicy = iota
	// DuplicateLastWins keeps one column per name at its first position.
	// Each later frame overwrites the rows it has a match for.
	DuplicateLastWins
	// DuplicateError rejects the merge with a uniqueness error.
	DuplicateError
)

type keyKind int

const (
	keyRowNames keyKind = iota
	keyColumnName
	keyColumnPosition
)

// Key says how one frame is matched during a merge.
type Key struct {
	kind keyKind
	name string
	pos  int
}

// ByRowNames matches a frame by its row names.
func ByRowNames() Key { return Key{kind: keyRowNames} }

// ByColumn matches a frame by the values of a named column.
func ByColumn(name string) Key { return Key{kind: keyColumnName, name: name} }

// ByPosition matches a frame by the values of the column at position i.
func ByPosition(i int) Key { return Key{kind: keyColumnPosition, pos: i} }

// KeyFrom converts nil, a column name or a column position into a Key.
func KeyFrom(v any) (Key, error) {
	if v == nil {
		return ByRowNames(), nil
	}
	if k, ok := v.(Key); ok {
		return k, nil
	}
	if name, ok := v.(string); ok {
		return ByColumn(name), nil
	}
	if i, ok := common.ToInt(v); ok {
		return ByPosition(i), nil
	}
	return Key{}, errors.NewTypeError("Merge", v, "nil, column name or column position")
}

// MergeOptions configures Merge.
type MergeOptions struct {
	// By holds one key per frame, or a single key used for every frame.
	// Empty means every frame is matched by row names.
	By         []Key
	Join       JoinType
	Duplicates DuplicatePolicy
	// RenameFormat overrides the configured pattern for renamed duplicate
	// columns. It receives the column name and the occurrence ordinal.
	RenameFormat string
}

// mergeInput is one frame prepared for matching.
type mergeInput struct {
	frame  *frame.Frame
	keyCol int // -1 when matched by row names
	keys   []string
	labels *index.Labels
}

// Merge joins frames on row names or key columns.
//
// The anchor frame, the last one for a right join and the first otherwise,
// keeps its rows in place: left and right joins keep every anchor row,
// duplicates included. Inner and outer joins use each key once, in the
// first frame's order for inner and in first-seen order across frames for
// outer. Other frames contribute the first row matching each key, or
// missing values when none does. Keys compare by their string form and a
// missing key matches missing keys only.
//
// When the first frame is matched by row names the result's row names are
// the keys. Otherwise the first frame's key column holds the keys and the
// key columns of the other frames are dropped.
func Merge(frames []*frame.Frame, opts MergeOptions) (*frame.Frame, error) {
	const op = "Merge"
	if err := checkInputs(op, frames); err != nil {
		return nil, err
	}

	cfg := config.GetGlobalConfig()
	join := opts.Join
	if join == JoinDefault {
		var err error
		if join, err = ParseJoin(cfg.DefaultJoin); err != nil {
			return nil, err
		}
		if join == JoinDefault {
			join = JoinLeft
		}
	}
	format := opts.RenameFormat
	if format == "" {
		format = cfg.RenameFormat
	} else if err := config.CheckRenameFormat(format); err != nil {
		return nil, errors.NewStructureError(op, "invalid rename format").WithCause(err)
	}

	inputs, err := prepare(op, frames, opts.By)
	if err != nil {
		return nil, err
	}

	keys, sources := selectKeys(inputs, join)
	rows := make([][]int, len(inputs))
	anchor := -1
	switch join {
	case JoinLeft:
		anchor = 0
	case JoinRight:
		anchor = len(inputs) - 1
	}
	for k, in := range inputs {
		if k == anchor {
			rows[k] = seq(len(keys))
			continue
		}
		rows[k] = make([]int, len(keys))
		for r, key := range keys {
			rows[k][r] = -1
			if p, ok := in.labels.Lookup(key); ok {
				rows[k][r] = p
			}
		}
	}

	entries, err := alignColumns(inputs, rows, sources)
	if err != nil {
		return nil, err
	}
	if entries, err = resolveDuplicates(op, entries, rows, opts.Duplicates, format); err != nil {
		return nil, err
	}

	cols := make([]frame.Named, len(entries))
	for i, e := range entries {
		cols[i] = frame.Col(e.name, e.col)
	}
	fopts := []frame.Option{
		frame.WithRows(len(keys)),
		frame.WithMetadata(frames[0].Metadata()),
		frame.WithValidation(true),
	}
	if inputs[0].keyCol < 0 {
		fopts = append(fopts, frame.WithRowNames(keys))
	}

	blocks := make([]columnBlock, 0, len(inputs))
	for _, e := range entries {
		src := inputs[e.frame].frame
		if n := len(blocks); n > 0 && blocks[n-1].source == src {
			blocks[n-1].positions = append(blocks[n-1].positions, e.pos)
			continue
		}
		blocks = append(blocks, columnBlock{source: src, positions: []int{e.pos}})
	}
	mcols, err := stackColumnData(blocks)
	if err != nil {
		return nil, err
	}
	if mcols != nil {
		fopts = append(fopts, frame.WithColumnData(mcols))
	}

	out, err := frame.New(cols, fopts...)
	if err != nil {
		return nil, err
	}

	logging.Debug("frames merged",
		zap.String("op", op),
		zap.Int("inputs", len(frames)),
		zap.Stringer("join", join),
		zap.Int("rows", out.Len()),
		zap.Int("columns", out.Width()),
	)
	return out, nil
}

func prepare(op string, frames []*frame.Frame, by []Key) ([]mergeInput, error) {
	switch len(by) {
	case 0:
		by = []Key{ByRowNames()}
		fallthrough
	case 1:
		one := by[0]
		by = make([]Key, len(frames))
		for i := range by {
			by[i] = one
		}
	case len(frames):
	default:
		return nil, errors.NewStructureError(op,
			fmt.Sprintf("got %d keys for %d frames", len(by), len(frames))).
			WithHint("give one key, or one key per frame")
	}

	inputs := make([]mergeInput, len(frames))
	for i, f := range frames {
		in := mergeInput{frame: f, keyCol: -1}
		switch by[i].kind {
		case keyRowNames:
			if !f.HasRowNames() {
				return nil, errors.NewStructureError(op,
					fmt.Sprintf("frame %d is matched by row names but has none", i)).
					WithHint("set row names or match the frame by a key column")
			}
			in.keys = f.RowNames()
		case keyColumnName:
			c, ok := f.Column(by[i].name)
			if !ok {
				return nil, errors.NewColumnNotFoundError(op, by[i].name, f.ColumnNames())
			}
			in.keyCol = indexOf(f.ColumnNames(), by[i].name)
			in.keys = keyStrings(c)
		case keyColumnPosition:
			c, err := f.GetColumn(by[i].pos)
			if err != nil {
				return nil, err
			}
			in.keyCol = by[i].pos
			in.keys = keyStrings(c)
		}
		in.labels = index.New(in.keys)
		inputs[i] = in
	}
	return inputs, nil
}

// source locates the row an output key is taken from.
type source struct {
	frame, row int
}

// selectKeys returns the output keys and where each comes from.
func selectKeys(inputs []mergeInput, join JoinType) ([]string, []source) {
	var keys []string
	var sources []source

	switch join {
	case JoinLeft, JoinRight:
		k := 0
		if join == JoinRight {
			k = len(inputs) - 1
		}
		keys = inputs[k].keys
		sources = make([]source, len(keys))
		for r := range keys {
			sources[r] = source{frame: k, row: r}
		}

	case JoinInner:
		for _, key := range inputs[0].labels.Distinct() {
			shared := true
			for _, in := range inputs[1:] {
				if !in.labels.Has(key) {
					shared = false
					break
				}
			}
			if shared {
				p, _ := inputs[0].labels.Lookup(key)
				keys = append(keys, key)
				sources = append(sources, source{frame: 0, row: p})
			}
		}

	case JoinOuter:
		seen := map[string]bool{}
		for k, in := range inputs {
			for _, key := range in.labels.Distinct() {
				if seen[key] {
					continue
				}
				seen[key] = true
				p, _ := in.labels.Lookup(key)
				keys = append(keys, key)
				sources = append(sources, source{frame: k, row: p})
			}
		}
	}

	if keys == nil {
		keys = []string{}
	}
	return keys, sources
}

// entry is one output column before duplicate handling.
type entry struct {
	name  string
	col   column.Column
	frame int // input the column came from
	pos   int // column position in that input
}

func alignColumns(inputs []mergeInput, rows [][]int, sources []source) ([]entry, error) {
	var entries []entry
	for k, in := range inputs {
		names := in.frame.ColumnNames()
		for j, c := range in.frame.Columns() {
			if j == in.keyCol {
				if k > 0 {
					continue
				}
				key, err := keyColumn(inputs, sources)
				if err != nil {
					return nil, err
				}
				entries = append(entries, entry{name: names[j], col: key, frame: k, pos: j})
				continue
			}
			entries = append(entries, entry{name: names[j], col: c.Take(rows[k]), frame: k, pos: j})
		}
	}
	return entries, nil
}

// keyColumn builds the output key column from the rows each key came from.
func keyColumn(inputs []mergeInput, sources []source) (column.Column, error) {
	used := map[int]bool{}
	for _, s := range sources {
		used[s.frame] = true
	}

	var parts []column.Column
	offsets := make(map[int]int, len(used))
	total := 0
	for k, in := range inputs {
		if !used[k] && !(k == 0 && len(sources) == 0) {
			continue
		}
		var c column.Column
		if in.keyCol >= 0 {
			c = in.frame.Columns()[in.keyCol]
		} else {
			c = column.New(in.keys)
		}
		offsets[k] = total
		total += c.Len()
		parts = append(parts, c)
	}

	all, err := column.Concat(parts...)
	if err != nil {
		return nil, err
	}
	positions := make([]int, len(sources))
	for r, s := range sources {
		positions[r] = offsets[s.frame] + s.row
	}
	return all.Take(positions), nil
}

func resolveDuplicates(op string, entries []entry, rows [][]int, policy DuplicatePolicy, format string) ([]entry, error) {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	labels := index.New(names)
	dups := labels.Duplicates()
	if len(dups) == 0 {
		return entries, nil
	}

	switch policy {
	case DuplicateError:
		return nil, errors.NewDuplicateNameError(op, "column", dups).
			WithHint("choose DuplicateRename or DuplicateLastWins")

	case DuplicateLastWins:
		out := make([]entry, 0, labels.Len())
		at := map[string]int{}
		for _, e := range entries {
			i, ok := at[e.name]
			if !ok {
				at[e.name] = len(out)
				out = append(out, e)
				continue
			}
			var matched []int
			for r, p := range rows[e.frame] {
				if p >= 0 {
					matched = append(matched, r)
				}
			}
			col, err := column.Assign(out[i].col, matched, e.col.Take(matched))
			if err != nil {
				return nil, err
			}
			out[i].col = col
		}
		return out, nil

	default:
		taken := map[string]bool{}
		for _, name := range names {
			taken[name] = true
		}
		seen := map[string]int{}
		out := make([]entry, len(entries))
		for i, e := range entries {
			seen[e.name]++
			if n := seen[e.name]; n > 1 {
				renamed := fmt.Sprintf(format, e.name, n)
				for taken[renamed] {
					n++
					renamed = fmt.Sprintf(format, e.name, n)
				}
				taken[renamed] = true
				e.name = renamed
			}
			out[i] = e
		}
		return out, nil
	}
}

func keyStrings(c column.Column) []string {
	out := make([]string, c.Len())
	for i := range out {
		out[i] = common.KeyOf(c.Value(i))
	}
	return out
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}
