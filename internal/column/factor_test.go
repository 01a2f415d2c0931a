package column

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/paveg/biocframe/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustFactor(t *testing.T, codes []int, levels []string, ordered bool) *Factor {
	t.Helper()
	f, err := NewFactor(codes, levels, ordered)
	require.NoError(t, err)
	return f
}

func TestNewFactor(t *testing.T) {
	f := mustFactor(t, []int{0, 1, -1, 0}, []string{"lo", "hi"}, true)
	assert.Equal(t, KindFactor, f.Kind())
	assert.Equal(t, "factor", f.Kind().String())
	assert.False(t, f.Kind().IsVector())
	assert.Equal(t, 4, f.Len())
	assert.Equal(t, []any{"lo", "hi", nil, "lo"}, Values(f))
	assert.True(t, f.IsNull(2))
	assert.True(t, f.Ordered())
	assert.Equal(t, []string{"lo", "hi"}, f.Levels())

	_, err := NewFactor([]int{0, 2}, []string{"a", "b"}, false)
	assert.ErrorIs(t, err, errors.ErrIndex)

	_, err = NewFactor([]int{0}, []string{"a", "a"}, false)
	assert.ErrorIs(t, err, errors.ErrUniqueness)
}

func TestFactorFromStrings(t *testing.T) {
	f := FactorFromStrings([]string{"b", "a", "b", "c"})
	assert.Equal(t, []string{"a", "b", "c"}, f.Levels())
	assert.Equal(t, []int{1, 0, 1, 2}, f.Codes())
	assert.False(t, f.Ordered())
}

func TestFactorTakeAndNull(t *testing.T) {
	f := mustFactor(t, []int{0, 1, 2}, []string{"a", "b", "c"}, false)

	taken := f.Take([]int{2, -1, 0})
	assert.Equal(t, []any{"c", nil, "a"}, Values(taken))
	assert.Equal(t, f.Levels(), taken.(*Factor).Levels())

	null := f.Null(2)
	assert.Equal(t, KindFactor, null.Kind())
	assert.Equal(t, []any{nil, nil}, Values(null))
	assert.Equal(t, f.Levels(), null.(*Factor).Levels())
}

func TestFactorLevels(t *testing.T) {
	f := mustFactor(t, []int{2, 0, 2}, []string{"a", "b", "c"}, false)

	t.Run("drop unused", func(t *testing.T) {
		d := f.DropUnusedLevels()
		assert.Equal(t, []string{"a", "c"}, d.Levels())
		assert.Equal(t, []any{"c", "a", "c"}, Values(d))
	})

	t.Run("set levels remaps by name", func(t *testing.T) {
		s, err := f.SetLevels([]string{"c", "b"})
		require.NoError(t, err)
		assert.Equal(t, []int{0, -1, 0}, s.Codes())
		assert.Equal(t, []any{"c", nil, "c"}, Values(s))

		_, err = f.SetLevels([]string{"x", "x"})
		assert.ErrorIs(t, err, errors.ErrUniqueness)
	})

	t.Run("relevel", func(t *testing.T) {
		r, err := f.Relevel("c")
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "a", "b"}, r.Levels())
		assert.Equal(t, Values(f), Values(r))

		_, err = f.Relevel("z")
		assert.ErrorIs(t, err, errors.ErrKey)
	})
}

func TestConcatFactors(t *testing.T) {
	t.Run("shared levels are kept", func(t *testing.T) {
		a := mustFactor(t, []int{0}, []string{"lo", "hi"}, true)
		b := mustFactor(t, []int{1, -1}, []string{"lo", "hi"}, true)
		c, err := Concat(a, b)
		require.NoError(t, err)
		f := c.(*Factor)
		assert.Equal(t, []string{"lo", "hi"}, f.Levels())
		assert.True(t, f.Ordered())
		assert.Equal(t, []any{"lo", "hi", nil}, Values(f))
	})

	t.Run("differing levels merge", func(t *testing.T) {
		a := mustFactor(t, []int{0, 1}, []string{"x", "y"}, true)
		b := mustFactor(t, []int{0, 1}, []string{"z", "x"}, true)
		c, err := Concat(a, b)
		require.NoError(t, err)
		f := c.(*Factor)
		assert.Equal(t, []string{"x", "y", "z"}, f.Levels())
		assert.False(t, f.Ordered())
		assert.Equal(t, []any{"x", "y", "z", "x"}, Values(f))
	})

	t.Run("with strings fall back to objects", func(t *testing.T) {
		c, err := Concat(FactorFromStrings([]string{"a"}), New([]string{"b"}))
		require.NoError(t, err)
		assert.Equal(t, KindObject, c.Kind())
		assert.Equal(t, []any{"a", "b"}, Values(c))
	})
}

func TestAssignFactor(t *testing.T) {
	dst := mustFactor(t, []int{0, 1, 0}, []string{"a", "b"}, false)
	src := mustFactor(t, []int{1, -1}, []string{"b", "c"}, false)

	out, err := Assign(dst, []int{2, 0}, src)
	require.NoError(t, err)
	f := out.(*Factor)
	assert.Equal(t, []string{"a", "b", "c"}, f.Levels())
	assert.Equal(t, []any{nil, "b", "c"}, Values(f))
	assert.Equal(t, []any{"a", "b", "a"}, Values(dst))

	_, err = Assign(dst, []int{3, 0}, src)
	assert.ErrorIs(t, err, errors.ErrIndex)
}

func TestEqualFactors(t *testing.T) {
	a := mustFactor(t, []int{0, 1}, []string{"a", "b"}, false)
	assert.True(t, Equal(a, mustFactor(t, []int{0, 1}, []string{"a", "b"}, false)))
	assert.False(t, Equal(a, mustFactor(t, []int{0, 1}, []string{"a", "b"}, true)))
	assert.False(t, Equal(a, mustFactor(t, []int{0, 1}, []string{"a", "b", "c"}, false)))
	assert.False(t, Equal(a, New([]string{"a", "b"})))
}

func TestFactorDictionaryArray(t *testing.T) {
	mem := memory.NewGoAllocator()
	f := mustFactor(t, []int{1, -1, 0}, []string{"lo", "hi"}, true)
	arr := f.DictionaryArray(mem)
	defer arr.Release()

	dt, ok := arr.DataType().(*arrow.DictionaryType)
	require.True(t, ok)
	assert.True(t, dt.Ordered)
	assert.Equal(t, 3, arr.Len())
	assert.True(t, arr.IsNull(1))

	back, err := FactorFromArrow(arr)
	require.NoError(t, err)
	assert.True(t, Equal(f, back))
}
