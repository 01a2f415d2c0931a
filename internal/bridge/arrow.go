// Package bridge converts frames to and from Apache Arrow records, the flat
// tabular form other tools exchange. Row names travel as a pandas-style
// index column and factors as dictionary arrays. Conversion to Arrow is lossy for nested and object columns:
// nested frames are flattened into "parent.child" columns and object values
// are written as strings.
package bridge

import (
	"fmt"
	"maps"
	"slices"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/paveg/biocframe/internal/column"
	"github.com/paveg/biocframe/internal/common"
	"github.com/paveg/biocframe/internal/errors"
	"github.com/paveg/biocframe/internal/frame"
	"github.com/paveg/biocframe/internal/logging"
	"go.uber.org/zap"
)

const (
	// IndexColumn is the column name pandas gives a stored index.
	IndexColumn = "__index_level_0__"
	// IndexMetadataKey names the index column in schema metadata when it
	// differs from IndexColumn.
	IndexMetadataKey = "biocframe.index"
)

// FromTable converts an arrow.Record or arrow.Table into a frame. Any other
// input fails with a type error.
func FromTable(v any) (*frame.Frame, error) {
	switch t := v.(type) {
	case arrow.Record:
		return FromArrow(t)
	case arrow.Table:
		rec, err := tableRecord(t)
		if err != nil {
			return nil, err
		}
		defer rec.Release()
		return FromArrow(rec)
	default:
		return nil, errors.NewTypeError("FromTable", v, "arrow.Record or arrow.Table")
	}
}

// FromArrow reads a record's columns in schema order. The index column, if
// any, becomes the row names, coerced to strings. String schema metadata
// becomes frame metadata.
func FromArrow(rec arrow.Record) (*frame.Frame, error) {
	const op = "FromArrow"
	if rec == nil {
		return nil, errors.NewTypeError(op, rec, "arrow.Record")
	}

	schema := rec.Schema()
	md := schema.Metadata()
	indexName := IndexColumn
	if i := md.FindKey(IndexMetadataKey); i >= 0 {
		indexName = md.Values()[i]
	}

	var cols []frame.Named
	var rowNames []string
	for i, field := range schema.Fields() {
		arr := rec.Column(i)
		if field.Name == indexName && rowNames == nil {
			rowNames = make([]string, arr.Len())
			for j := range rowNames {
				rowNames[j] = common.FormatValue(arr.GetOneForMarshal(j))
			}
			continue
		}
		col, err := fromArray(arr)
		if err != nil {
			return nil, err
		}
		cols = append(cols, frame.Col(field.Name, col))
	}

	metadata := make(map[string]any, md.Len())
	for i, key := range md.Keys() {
		if key == IndexMetadataKey {
			continue
		}
		metadata[key] = md.Values()[i]
	}

	f, err := frame.New(cols,
		frame.WithRows(int(rec.NumRows())),
		frame.WithRowNames(rowNames),
		frame.WithMetadata(metadata),
		frame.WithValidation(true),
	)
	if err != nil {
		return nil, err
	}
	logging.Debug("frame read from arrow",
		zap.String("op", op),
		zap.Int("rows", f.Len()),
		zap.Int("columns", f.Width()),
		zap.Bool("row_names", rowNames != nil),
	)
	return f, nil
}

// fromArray stores supported types natively, string dictionaries as
// factors and anything else as objects.
func fromArray(arr arrow.Array) (column.Column, error) {
	if dict, ok := arr.(*array.Dictionary); ok && dict.Dictionary().DataType().ID() == arrow.STRING {
		return column.FactorFromArrow(dict)
	}
	if _, ok := column.KindOf(arr.DataType()); ok {
		return column.FromArrow(arr)
	}
	values := make([]any, arr.Len())
	for i := range values {
		if !arr.IsNull(i) {
			values[i] = arr.GetOneForMarshal(i)
		}
	}
	return column.NewObjects(values), nil
}

// ToArrow writes a frame as a record allocated from mem. Vector columns keep
// their type and factors become dictionary arrays. Nested frames are
// flattened to "parent.child" columns, object columns are written as
// strings, and row names become the index column.
// String metadata values are stored in the schema metadata. The caller owns
// the record and must release it.
func ToArrow(f *frame.Frame, mem memory.Allocator) (arrow.Record, error) {
	const op = "ToArrow"
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if mem == nil {
		mem = memory.NewGoAllocator()
	}

	var fields []arrow.Field
	var arrs []arrow.Array
	defer func() {
		for _, a := range arrs {
			a.Release()
		}
	}()

	if err := appendColumns(mem, "", f, &fields, &arrs); err != nil {
		return nil, err
	}

	var keys, vals []string
	if f.HasRowNames() {
		b := array.NewStringBuilder(mem)
		defer b.Release()
		b.AppendValues(f.RowNames(), nil)
		fields = append(fields, arrow.Field{Name: IndexColumn, Type: arrow.BinaryTypes.String})
		arrs = append(arrs, b.NewArray())
		keys = append(keys, IndexMetadataKey)
		vals = append(vals, IndexColumn)
	}
	for _, k := range slices.Sorted(maps.Keys(f.Metadata())) {
		if s, ok := f.Metadata()[k].(string); ok && k != IndexMetadataKey {
			keys = append(keys, k)
			vals = append(vals, s)
		}
	}

	md := arrow.NewMetadata(keys, vals)
	schema := arrow.NewSchema(fields, &md)
	rec := array.NewRecord(schema, arrs, int64(f.Len()))

	logging.Debug("frame written to arrow",
		zap.String("op", op),
		zap.Int("rows", f.Len()),
		zap.Int("fields", len(fields)),
	)
	return rec, nil
}

func appendColumns(mem memory.Allocator, prefix string, f *frame.Frame, fields *[]arrow.Field, arrs *[]arrow.Array) error {
	for i, c := range f.Columns() {
		name := prefix + f.ColumnNames()[i]
		switch col := c.(type) {
		case *column.Vector:
			arr := col.Array()
			*fields = append(*fields, arrow.Field{Name: name, Type: arr.DataType(), Nullable: true})
			*arrs = append(*arrs, arr)
		case *column.Factor:
			arr := col.DictionaryArray(mem)
			*fields = append(*fields, arrow.Field{Name: name, Type: arr.DataType(), Nullable: true})
			*arrs = append(*arrs, arr)
		case *column.Nested:
			nested, ok := col.Table().(*frame.Frame)
			if !ok {
				return errors.NewTypeError("ToArrow", col.Table(), "*frame.Frame")
			}
			if err := appendColumns(mem, name+".", nested, fields, arrs); err != nil {
				return err
			}
		default:
			b := array.NewStringBuilder(mem)
			for j := 0; j < c.Len(); j++ {
				if c.IsNull(j) {
					b.AppendNull()
					continue
				}
				b.Append(common.FormatValue(c.Value(j)))
			}
			*fields = append(*fields, arrow.Field{Name: name, Type: arrow.BinaryTypes.String, Nullable: true})
			*arrs = append(*arrs, b.NewArray())
			b.Release()
		}
	}
	return nil
}

// tableRecord concatenates the chunks of every table column into a single
// record.
func tableRecord(t arrow.Table) (arrow.Record, error) {
	mem := memory.NewGoAllocator()
	n := int(t.NumCols())
	arrs := make([]arrow.Array, n)
	defer func() {
		for _, a := range arrs {
			if a != nil {
				a.Release()
			}
		}
	}()

	for i := 0; i < n; i++ {
		col := t.Column(i)
		chunks := col.Data().Chunks()
		if len(chunks) == 0 {
			arrs[i] = array.MakeArrayOfNull(mem, col.DataType(), 0)
			continue
		}
		arr, err := array.Concatenate(chunks, mem)
		if err != nil {
			return nil, errors.NewInternalError("FromTable", fmt.Errorf("column %s: %w", col.Name(), err))
		}
		arrs[i] = arr
	}
	return array.NewRecord(t.Schema(), arrs, t.NumRows()), nil
}
