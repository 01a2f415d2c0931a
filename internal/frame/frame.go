// Package frame provides the Frame type: named columns of equal length with
// optional unique row names, free-form metadata and optional per-column
// annotations (column data). Frames are immutable by default. Every setter
// has a copy-on-write form returning a new *Frame and an InPlace form that
// mutates the receiver; both validate fully before changing anything.
package frame

import (
	"slices"

	"github.com/paveg/biocframe/internal/column"
	"github.com/paveg/biocframe/internal/common"
	"github.com/paveg/biocframe/internal/config"
	"github.com/paveg/biocframe/internal/errors"
	"github.com/paveg/biocframe/internal/index"
	"github.com/paveg/biocframe/internal/validation"
)

// Frame is a table of named columns sharing one row count.
type Frame struct {
	names      []string
	columns    []column.Column
	rows       int
	rowNames   []string // nil when the frame has no row names
	metadata   map[string]any
	columnData *Frame

	rowIndex  *index.Labels
	colIndex  *index.Labels
	validated bool
}

// Named pairs a column name with its values. Values may be a Go slice, a
// column.Column or a *Frame (stored as a nested column).
type Named struct {
	Name   string
	Values any
}

// Col is shorthand for Named{name, values}.
func Col(name string, values any) Named {
	return Named{Name: name, Values: values}
}

// Option configures frame construction.
type Option func(*options)

type options struct {
	rows        int
	hasRows     bool
	rowNames    []string
	columnNames []string
	metadata    map[string]any
	columnData  *Frame
	validate    *bool
}

// WithRows sets the row count. Without it the count is taken from the first
// column, then from the row names, and is 0 otherwise.
func WithRows(n int) Option {
	return func(o *options) {
		o.rows = n
		o.hasRows = true
	}
}

// WithRowNames sets the row names.
func WithRowNames(names []string) Option {
	return func(o *options) {
		o.rowNames = names
	}
}

// WithColumnNames names the columns. For New the names replace the given
// ones positionally; for FromMap they select and order the map's keys.
func WithColumnNames(names []string) Option {
	return func(o *options) {
		o.columnNames = names
	}
}

// WithMetadata attaches metadata.
func WithMetadata(metadata map[string]any) Option {
	return func(o *options) {
		o.metadata = metadata
	}
}

// WithColumnData attaches a frame with one row per column.
func WithColumnData(mcols *Frame) Option {
	return func(o *options) {
		o.columnData = mcols
	}
}

// WithValidation overrides the configured validation mode. When false the
// invariant checks run on the first operation that can report an error.
func WithValidation(eager bool) Option {
	return func(o *options) {
		o.validate = &eager
	}
}

// New builds a frame from columns in the given order.
func New(cols []Named, opts ...Option) (*Frame, error) {
	const op = "New"

	o := collect(opts)
	names := make([]string, len(cols))
	columns := make([]column.Column, len(cols))
	for i, c := range cols {
		col, err := column.FromValues(c.Values)
		if err != nil {
			return nil, errors.NewTypeError(op, c.Values, "slice, Column or *Frame").WithCause(err)
		}
		names[i] = c.Name
		columns[i] = col
	}

	if o.columnNames != nil {
		if len(o.columnNames) != len(names) {
			return nil, errors.NewStructureError(op, "number of column names does not match number of columns")
		}
		names = slices.Clone(o.columnNames)
	}

	return build(op, names, columns, o)
}

// FromMap builds a frame from a name to values mapping. Without
// WithColumnNames the columns are ordered by name.
func FromMap(data map[string]any, opts ...Option) (*Frame, error) {
	const op = "FromMap"

	o := collect(opts)
	order := o.columnNames
	if order == nil {
		order = make([]string, 0, len(data))
		for name := range data {
			order = append(order, name)
		}
		slices.Sort(order)
	} else if len(order) != len(data) {
		return nil, errors.NewStructureError(op, "number of column names does not match number of columns")
	}

	cols := make([]Named, len(order))
	for i, name := range order {
		values, ok := data[name]
		if !ok {
			return nil, errors.NewColumnNotFoundError(op, name, nil)
		}
		cols[i] = Col(name, values)
	}
	o.columnNames = nil

	return New(cols, func(dst *options) { *dst = o })
}

// Empty returns a frame with n rows and no columns.
func Empty(n int) *Frame {
	return &Frame{rows: n, validated: true}
}

func collect(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func build(op string, names []string, columns []column.Column, o options) (*Frame, error) {
	rows := 0
	switch {
	case o.hasRows:
		rows = o.rows
	case len(columns) > 0:
		rows = columns[0].Len()
	case o.rowNames != nil:
		rows = len(o.rowNames)
	}

	f := &Frame{
		names:      names,
		columns:    columns,
		rows:       rows,
		rowNames:   slices.Clone(o.rowNames),
		metadata:   o.metadata,
		columnData: o.columnData,
	}
	if f.metadata == nil {
		f.metadata = map[string]any{}
	}

	eager := !config.GetGlobalConfig().LazyValidation
	if o.validate != nil {
		eager = *o.validate
	}
	if !eager {
		return f, nil
	}
	if err := f.validate(op); err != nil {
		return nil, err
	}
	return f, nil
}

// Validate checks every frame invariant. Frames built with validation
// deferred run it on first use.
func (f *Frame) Validate() error {
	return f.validate("Validate")
}

func (f *Frame) validate(op string) error {
	v := validation.NewCompoundValidator()
	if f.rows < 0 {
		return errors.NewStructureError(op, "row count cannot be negative")
	}
	for i, c := range f.columns {
		v.Add(validation.NewLengthValidator(f.rows, c.Len(), op, f.names[i]))
	}
	v.Add(validation.NewUniqueValidator(f.names, op, "column"))
	if f.rowNames != nil {
		v.Add(validation.NewLengthValidator(f.rows, len(f.rowNames), op, "row names"))
		v.Add(validation.NewUniqueValidator(f.rowNames, op, "row"))
	}
	if f.columnData != nil {
		v.Add(validation.NewLengthValidator(len(f.columns), f.columnData.Len(), op, "column data"))
	}
	if err := v.Validate(); err != nil {
		return err
	}
	f.validated = true
	return nil
}

// ready runs deferred validation.
func (f *Frame) ready(op string) error {
	if f.validated {
		return nil
	}
	return f.validate(op)
}

// Len returns the number of rows.
func (f *Frame) Len() int { return f.rows }

// Width returns the number of columns.
func (f *Frame) Width() int { return len(f.columns) }

// Dims returns the number of rows and columns.
func (f *Frame) Dims() (int, int) { return f.rows, len(f.columns) }

// ColumnNames returns the column names in order.
func (f *Frame) ColumnNames() []string {
	return slices.Clone(f.names)
}

// RowNames returns the row names, or nil when the frame has none.
func (f *Frame) RowNames() []string {
	return slices.Clone(f.rowNames)
}

// HasRowNames reports whether the frame carries row names.
func (f *Frame) HasRowNames() bool {
	return f.rowNames != nil
}

// RowLabels returns the row names, or the row positions as strings when the
// frame has none. It returns nil when the frame fails validation.
func (f *Frame) RowLabels() []string {
	if f.ready("RowLabels") != nil {
		return nil
	}
	if f.rowNames != nil {
		return f.RowNames()
	}
	out := make([]string, f.rows)
	for i := range out {
		out[i] = common.FormatValue(i)
	}
	return out
}

// Metadata returns the metadata map. It is shared with frames derived from
// this one.
func (f *Frame) Metadata() map[string]any {
	return f.metadata
}

// ColumnData returns the per-column annotations, or nil.
func (f *Frame) ColumnData() *Frame {
	return f.columnData
}

// HasColumn reports whether a column exists. It is false for every name
// when the frame fails validation.
func (f *Frame) HasColumn(name string) bool {
	return f.ready("HasColumn") == nil && f.columnLabels().Has(name)
}

// Column returns the column with the given name.
func (f *Frame) Column(name string) (column.Column, bool) {
	i, ok := f.columnLabels().Lookup(name)
	if !ok {
		return nil, false
	}
	return f.columns[i], true
}

// Columns returns the columns in order.
func (f *Frame) Columns() []column.Column {
	return slices.Clone(f.columns)
}

// GetColumn returns a column by name or by position. Negative positions and
// positions beyond the last column fail with an index error, unknown names
// with a key error, and any other key type with a type error.
func (f *Frame) GetColumn(key any) (column.Column, error) {
	const op = "GetColumn"
	if err := f.ready(op); err != nil {
		return nil, err
	}

	if name, ok := key.(string); ok {
		col, found := f.Column(name)
		if !found {
			return nil, errors.NewColumnNotFoundError(op, name, f.names)
		}
		return col, nil
	}
	if i, ok := common.ToInt(key); ok {
		if err := validation.ValidateIndex(i, len(f.columns), op, "column"); err != nil {
			return nil, err
		}
		return f.columns[i], nil
	}
	return nil, errors.NewTypeError(op, key, "integer position or column name")
}

// Copy returns a shallow copy. Columns are shared; metadata is copied one
// level deep.
func (f *Frame) Copy() *Frame {
	cp := *f
	cp.names = slices.Clone(f.names)
	cp.columns = slices.Clone(f.columns)
	cp.rowNames = slices.Clone(f.rowNames)
	cp.metadata = make(map[string]any, len(f.metadata))
	for k, v := range f.metadata {
		cp.metadata[k] = v
	}
	return &cp
}

func (f *Frame) rowLabels() *index.Labels {
	if f.rowNames == nil {
		return nil
	}
	if f.rowIndex == nil {
		f.rowIndex = index.New(f.rowNames)
	}
	return f.rowIndex
}

func (f *Frame) columnLabels() *index.Labels {
	if f.colIndex == nil {
		f.colIndex = index.New(f.names)
	}
	return f.colIndex
}

// invalidate drops cached indexes after an in-place change.
func (f *Frame) invalidate() {
	f.rowIndex = nil
	f.colIndex = nil
}
