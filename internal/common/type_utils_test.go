package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stringer struct{}

func (stringer) String() string { return "custom" }

func TestToInt(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  int
		ok    bool
	}{
		{"int", 3, 3, true},
		{"int32", int32(-2), -2, true},
		{"int64", int64(7), 7, true},
		{"uint8", uint8(9), 9, true},
		{"uint64 overflow", uint64(math.MaxUint64), 0, false},
		{"float", 1.0, 0, false},
		{"string", "1", 0, false},
		{"bool", true, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToInt(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTypePredicates(t *testing.T) {
	assert.True(t, IsFloatType(float32(1)))
	assert.False(t, IsFloatType(1))
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, NullString, FormatValue(nil))
	assert.Equal(t, "abc", FormatValue("abc"))
	assert.Equal(t, "42", FormatValue(int64(42)))
	assert.Equal(t, "1.5", FormatValue(1.5))
	assert.Equal(t, "0.1", FormatValue(float32(0.1)))
	assert.Equal(t, "true", FormatValue(true))
	assert.Equal(t, "custom", FormatValue(stringer{}))
	assert.Equal(t, "[1 2]", FormatValue([]int{1, 2}))
}

func TestKeyOf(t *testing.T) {
	assert.Equal(t, "3", KeyOf(3))
	assert.NotEqual(t, NullString, KeyOf(nil))
	assert.NotEqual(t, KeyOf("<NA>"), KeyOf(nil))
}
