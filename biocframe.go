// Package biocframe provides a Bioconductor-style data frame: named columns
// of equal length, optional row names, nested frames as columns, selector
// based slicing, row and column combination, merging and an Arrow bridge.
// This package is the sole public API for the library.
package biocframe

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/paveg/biocframe/internal/bridge"
	"github.com/paveg/biocframe/internal/column"
	"github.com/paveg/biocframe/internal/combine"
	"github.com/paveg/biocframe/internal/config"
	"github.com/paveg/biocframe/internal/errors"
	"github.com/paveg/biocframe/internal/frame"
	"github.com/paveg/biocframe/internal/logging"
	"github.com/paveg/biocframe/internal/selection"
	"golang.org/x/exp/constraints"
)

type (
	// Frame is a rectangular collection of named, equal-length columns.
	Frame = frame.Frame
	// Named pairs a column name with its values.
	Named = frame.Named
	// Row is one row of a frame, in column order.
	Row = frame.Row
	// Option configures New and FromMap.
	Option = frame.Option

	// Column is a single column of any variant.
	Column = column.Column
	// ColumnKind identifies a column variant.
	ColumnKind = column.Kind
	// Factor is a categorical column over a list of levels.
	Factor = column.Factor

	// Selector addresses rows or columns.
	Selector = selection.Selector

	// JoinType selects which keys Merge keeps.
	JoinType = combine.JoinType
	// DuplicatePolicy decides how Merge treats repeated column names.
	DuplicatePolicy = combine.DuplicatePolicy
	// Key says how one frame is matched during Merge.
	Key = combine.Key
	// MergeOptions configures Merge.
	MergeOptions = combine.MergeOptions

	// Config holds library settings.
	Config = config.Config
	// Error is the error type returned by every operation.
	Error = errors.FrameError
)

const (
	JoinDefault = combine.JoinDefault
	JoinInner   = combine.JoinInner
	JoinLeft    = combine.JoinLeft
	JoinRight   = combine.JoinRight
	JoinOuter   = combine.JoinOuter

	DuplicateRename   = combine.DuplicateRename
	DuplicateLastWins = combine.DuplicateLastWins
	DuplicateError    = combine.DuplicateError
)

// Sentinels for errors.Is.
var (
	ErrStructure  = errors.ErrStructure
	ErrKey        = errors.ErrKey
	ErrIndex      = errors.ErrIndex
	ErrType       = errors.ErrType
	ErrUniqueness = errors.ErrUniqueness
	ErrInternal   = errors.ErrInternal
)

// Construction

// New builds a frame from columns in order.
func New(cols []Named, opts ...Option) (*Frame, error) {
	return frame.New(cols, opts...)
}

// FromMap builds a frame from a map of column name to values.
func FromMap(data map[string]any, opts ...Option) (*Frame, error) {
	return frame.FromMap(data, opts...)
}

// Empty returns a frame with n rows and no columns.
func Empty(n int) *Frame {
	return frame.Empty(n)
}

// Col names a column for New.
func Col(name string, values any) Named {
	return frame.Col(name, values)
}

// NewFactor creates a categorical column; a code of -1 is missing.
func NewFactor(codes []int, levels []string, ordered bool) (*Factor, error) {
	return column.NewFactor(codes, levels, ordered)
}

// FactorFromStrings creates a categorical column with sorted levels.
func FactorFromStrings(values []string) *Factor {
	return column.FactorFromStrings(values)
}

// WithRows sets the row count of a frame without columns.
func WithRows(n int) Option { return frame.WithRows(n) }

// WithRowNames sets row names.
func WithRowNames(names []string) Option { return frame.WithRowNames(names) }

// WithColumnNames renames or selects columns.
func WithColumnNames(names []string) Option { return frame.WithColumnNames(names) }

// WithMetadata attaches metadata.
func WithMetadata(metadata map[string]any) Option { return frame.WithMetadata(metadata) }

// WithColumnData attaches a frame describing the columns, one row each.
func WithColumnData(mcols *Frame) Option { return frame.WithColumnData(mcols) }

// WithValidation overrides the configured validation mode.
func WithValidation(eager bool) Option { return frame.WithValidation(eager) }

// Selectors

// All selects every position.
func All() Selector { return selection.All() }

// At selects one position. Negative positions count from the end.
func At(i int) Selector { return selection.At(i) }

// Label selects one name.
func Label(name string) Selector { return selection.Label(name) }

// Labels selects names in order.
func Labels(names ...string) Selector { return selection.Labels(names...) }

// Positions selects positions in order.
func Positions[T constraints.Integer](positions ...T) Selector {
	return selection.Positions(positions...)
}

// Mask selects the positions where mask is true.
func Mask(mask ...bool) Selector { return selection.Mask(mask...) }

// Range selects the half-open range [start, stop).
func Range(start, stop int) Selector { return selection.Range(start, stop) }

// RangeStep selects a stepped half-open range.
func RangeStep(start, stop, step int) Selector { return selection.RangeStep(start, stop, step) }

// Combination

// CombineRows stacks frames that share the same columns.
func CombineRows(frames ...*Frame) (*Frame, error) {
	return combine.CombineRows(frames...)
}

// RelaxedCombineRows stacks frames over the union of their columns.
func RelaxedCombineRows(frames ...*Frame) (*Frame, error) {
	return combine.RelaxedCombineRows(frames...)
}

// CombineColumns places frames with the same row count side by side. Frames
// with row names must agree on them exactly.
func CombineColumns(frames ...*Frame) (*Frame, error) {
	return combine.CombineColumns(frames...)
}

// RelaxedCombineColumns places frames side by side over the union of their
// rows.
func RelaxedCombineColumns(frames ...*Frame) (*Frame, error) {
	return combine.RelaxedCombineColumns(frames...)
}

// Merge joins frames on row names or key columns.
func Merge(frames []*Frame, opts MergeOptions) (*Frame, error) {
	return combine.Merge(frames, opts)
}

// ByRowNames matches a frame by its row names.
func ByRowNames() Key { return combine.ByRowNames() }

// ByColumn matches a frame by a named column.
func ByColumn(name string) Key { return combine.ByColumn(name) }

// ByPosition matches a frame by the column at position i.
func ByPosition(i int) Key { return combine.ByPosition(i) }

// ParseJoin converts a join name into a JoinType.
func ParseJoin(s string) (JoinType, error) { return combine.ParseJoin(s) }

// Arrow

// FromArrow converts an Arrow record into a frame.
func FromArrow(rec arrow.Record) (*Frame, error) {
	return bridge.FromArrow(rec)
}

// FromTable converts an Arrow record or table into a frame.
func FromTable(v any) (*Frame, error) {
	return bridge.FromTable(v)
}

// ToArrow converts a frame into an Arrow record. The caller releases it.
func ToArrow(f *Frame, mem memory.Allocator) (arrow.Record, error) {
	return bridge.ToArrow(f, mem)
}

// Configuration

// Configure validates cfg, installs it globally and rebuilds the library
// logger from it.
func Configure(cfg Config) error {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := logging.Init(logging.FromConfig(cfg)); err != nil {
		return err
	}
	config.SetGlobalConfig(cfg)
	return nil
}

// CurrentConfig returns the global configuration.
func CurrentConfig() Config {
	return config.GetGlobalConfig()
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return config.NewConfig()
}
