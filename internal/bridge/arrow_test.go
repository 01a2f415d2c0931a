package bridge

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/paveg/biocframe/internal/column"
	"github.com/paveg/biocframe/internal/errors"
	"github.com/paveg/biocframe/internal/frame"
	"github.com/paveg/biocframe/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestFrame(t *testing.T, opts ...frame.Option) *frame.Frame {
	t.Helper()
	f, err := frame.New([]frame.Named{
		frame.Col("name", []string{"Alice", "Bob", "Charlie"}),
		frame.Col("age", []int64{25, 30, 35}),
		frame.Col("score", []float64{1.5, 2.5, 3.5}),
		frame.Col("active", []bool{true, false, true}),
		frame.Col("rank", []int32{3, 2, 1}),
	}, opts...)
	require.NoError(t, err)
	return f
}

func TestRoundTripScalarColumns(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())

	t.Run("with row names", func(t *testing.T) {
		f := createTestFrame(t,
			frame.WithRowNames([]string{"a", "b", "c"}),
			frame.WithMetadata(map[string]any{"source": "lab", "count": 3}),
		)

		rec, err := ToArrow(f, mem)
		require.NoError(t, err)
		defer rec.Release()

		assert.Equal(t, int64(3), rec.NumRows())
		assert.Equal(t, IndexColumn, rec.ColumnName(int(rec.NumCols())-1))

		back, err := FromArrow(rec)
		require.NoError(t, err)
		assert.True(t, back.Equal(f))
		assert.Equal(t, f.ColumnNames(), back.ColumnNames())
		assert.Equal(t, []string{"a", "b", "c"}, back.RowNames())
		assert.Equal(t, "lab", back.Metadata()["source"])
		_, hasCount := back.Metadata()["count"]
		assert.False(t, hasCount)
	})

	t.Run("without row names", func(t *testing.T) {
		f := createTestFrame(t)
		rec, err := ToArrow(f, mem)
		require.NoError(t, err)
		defer rec.Release()

		assert.Equal(t, int64(5), rec.NumCols())
		back, err := FromTable(rec)
		require.NoError(t, err)
		assert.True(t, back.Equal(f))
		assert.False(t, back.HasRowNames())
	})
}

func TestFromArrowIndexColumn(t *testing.T) {
	mem := memory.NewGoAllocator()

	ib := array.NewInt64Builder(mem)
	defer ib.Release()
	ib.AppendValues([]int64{10, 20}, nil)
	idx := ib.NewArray()
	defer idx.Release()

	sb := array.NewStringBuilder(mem)
	defer sb.Release()
	sb.AppendValues([]string{"x", "y"}, nil)
	vals := sb.NewArray()
	defer vals.Release()

	t.Run("pandas index name", func(t *testing.T) {
		schema := arrow.NewSchema([]arrow.Field{
			{Name: "v", Type: arrow.BinaryTypes.String},
			{Name: IndexColumn, Type: arrow.PrimitiveTypes.Int64},
		}, nil)
		rec := array.NewRecord(schema, []arrow.Array{vals, idx}, 2)
		defer rec.Release()

		f, err := FromArrow(rec)
		require.NoError(t, err)
		assert.Equal(t, []string{"10", "20"}, f.RowNames())
		assert.Equal(t, []string{"v"}, f.ColumnNames())
	})

	t.Run("named by metadata", func(t *testing.T) {
		md := arrow.NewMetadata([]string{IndexMetadataKey}, []string{"id"})
		schema := arrow.NewSchema([]arrow.Field{
			{Name: "id", Type: arrow.PrimitiveTypes.Int64},
			{Name: "v", Type: arrow.BinaryTypes.String},
		}, &md)
		rec := array.NewRecord(schema, []arrow.Array{idx, vals}, 2)
		defer rec.Release()

		f, err := FromArrow(rec)
		require.NoError(t, err)
		assert.Equal(t, []string{"10", "20"}, f.RowNames())
		assert.Empty(t, f.Metadata())
	})

	t.Run("no index", func(t *testing.T) {
		schema := arrow.NewSchema([]arrow.Field{
			{Name: "id", Type: arrow.PrimitiveTypes.Int64},
		}, nil)
		rec := array.NewRecord(schema, []arrow.Array{idx}, 2)
		defer rec.Release()

		f, err := FromArrow(rec)
		require.NoError(t, err)
		assert.Nil(t, f.RowNames())
		assert.Equal(t, []string{"0", "1"}, f.RowLabels())
	})
}

func TestFromArrowUnsupportedType(t *testing.T) {
	mem := memory.NewGoAllocator()
	b := array.NewInt16Builder(mem)
	defer b.Release()
	b.AppendValues([]int16{1, 2}, []bool{true, false})
	arr := b.NewArray()
	defer arr.Release()

	schema := arrow.NewSchema([]arrow.Field{{Name: "small", Type: arrow.PrimitiveTypes.Int16}}, nil)
	rec := array.NewRecord(schema, []arrow.Array{arr}, 2)
	defer rec.Release()

	f, err := FromArrow(rec)
	require.NoError(t, err)
	col, _ := f.Column("small")
	assert.Equal(t, column.KindObject, col.Kind())
	assert.Equal(t, []any{int16(1), nil}, column.Values(col))
}

func TestFromTable(t *testing.T) {
	mem := memory.NewGoAllocator()
	schema := arrow.NewSchema([]arrow.Field{{Name: "n", Type: arrow.PrimitiveTypes.Int64}}, nil)

	build := func(values ...int64) arrow.Record {
		b := array.NewInt64Builder(mem)
		defer b.Release()
		b.AppendValues(values, nil)
		arr := b.NewArray()
		defer arr.Release()
		return array.NewRecord(schema, []arrow.Array{arr}, int64(len(values)))
	}
	r1, r2 := build(1, 2), build(3)
	defer r1.Release()
	defer r2.Release()

	tbl := array.NewTableFromRecords(schema, []arrow.Record{r1, r2})
	defer tbl.Release()

	f, err := FromTable(tbl)
	require.NoError(t, err)
	assert.Equal(t, 3, f.Len())
	col, _ := f.Column("n")
	assert.Equal(t, []any{int64(1), int64(2), int64(3)}, column.Values(col))

	_, err = FromTable(map[string][]int{"n": {1}})
	assert.ErrorIs(t, err, errors.ErrType)
	_, err = FromTable(nil)
	assert.ErrorIs(t, err, errors.ErrType)
}

func TestToArrowLossyColumns(t *testing.T) {
	inner, err := frame.New([]frame.Named{
		frame.Col("x", []int64{1, 2}),
		frame.Col("y", []string{"a", "b"}),
	})
	require.NoError(t, err)

	f, err := frame.New([]frame.Named{
		frame.Col("obj", []any{1, "two"}),
		frame.Col("nested", inner),
	})
	require.NoError(t, err)

	rec, err := ToArrow(f, nil)
	require.NoError(t, err)
	defer rec.Release()

	require.Equal(t, int64(3), rec.NumCols())
	assert.Equal(t, "obj", rec.ColumnName(0))
	assert.Equal(t, "nested.x", rec.ColumnName(1))
	assert.Equal(t, "nested.y", rec.ColumnName(2))

	obj := rec.Column(0).(*array.String)
	assert.Equal(t, "1", obj.Value(0))
	assert.Equal(t, "two", obj.Value(1))
	assert.Equal(t, arrow.INT64, rec.Column(1).DataType().ID())
}

func TestToArrowInvalidFrame(t *testing.T) {
	f, err := frame.New([]frame.Named{
		frame.Col("a", []int{1, 2}),
		frame.Col("b", []int{1}),
	}, frame.WithValidation(false))
	require.NoError(t, err)

	_, err = ToArrow(f, nil)
	assert.ErrorIs(t, err, errors.ErrStructure)
}

func TestRoundTripNulls(t *testing.T) {
	f := testutil.EmployeeFrame(t, testutil.WithRowCount(6), testutil.WithNulls(), testutil.WithRowNames())

	rec, err := ToArrow(f, memory.NewGoAllocator())
	require.NoError(t, err)
	defer rec.Release()
	assert.Equal(t, 2, rec.Column(1).NullN())

	back, err := FromArrow(rec)
	require.NoError(t, err)
	testutil.AssertFrameDims(t, back, 6, 4)
	assert.True(t, back.Equal(f))
	assert.Nil(t, testutil.ColumnValues(t, back, "age")[2])
	assert.Equal(t, testutil.RowNames("emp", 6), back.RowNames())
}

func TestRoundTripFactor(t *testing.T) {
	levels, err := column.NewFactor([]int{0, 2, -1, 1}, []string{"low", "mid", "high"}, true)
	require.NoError(t, err)
	f, err := frame.New([]frame.Named{
		frame.Col("id", []int64{1, 2, 3, 4}),
		frame.Col("level", levels),
	})
	require.NoError(t, err)

	rec, err := ToArrow(f, memory.NewGoAllocator())
	require.NoError(t, err)
	defer rec.Release()

	dt, ok := rec.Column(1).DataType().(*arrow.DictionaryType)
	require.True(t, ok)
	assert.True(t, dt.Ordered)
	assert.Equal(t, 1, rec.Column(1).NullN())

	back, err := FromArrow(rec)
	require.NoError(t, err)
	assert.True(t, back.Equal(f))
	col, _ := back.Column("level")
	require.Equal(t, column.KindFactor, col.Kind())
	assert.Equal(t, []string{"low", "mid", "high"}, col.(*column.Factor).Levels())
}

func TestFromArrowNonStringDictionary(t *testing.T) {
	mem := memory.NewGoAllocator()
	dt := &arrow.DictionaryType{IndexType: arrow.PrimitiveTypes.Int8, ValueType: arrow.PrimitiveTypes.Int64}
	b := array.NewDictionaryBuilder(mem, dt).(*array.Int64DictionaryBuilder)
	defer b.Release()
	require.NoError(t, b.Append(7))
	require.NoError(t, b.Append(7))
	arr := b.NewArray()
	defer arr.Release()

	schema := arrow.NewSchema([]arrow.Field{{Name: "codes", Type: dt}}, nil)
	rec := array.NewRecord(schema, []arrow.Array{arr}, 2)
	defer rec.Release()

	f, err := FromArrow(rec)
	require.NoError(t, err)
	col, _ := f.Column("codes")
	assert.Equal(t, column.KindObject, col.Kind())
	assert.Equal(t, []any{int64(7), int64(7)}, column.Values(col))
}
