package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmployeeFrame(t *testing.T) {
	f := EmployeeFrame(t)
	AssertFrameDims(t, f, 4, 4)
	AssertFrameHasColumns(t, f, []string{"name", "age", "department", "salary"})
	AssertColumnValues(t, f, "age", []any{int64(25), int64(30), int64(35), int64(28)})
	assert.False(t, f.HasRowNames())
}

func TestEmployeeFrameOptions(t *testing.T) {
	f := EmployeeFrame(t, WithRowCount(6), WithNulls(), WithRowNames(), WithActiveColumn())
	AssertFrameDims(t, f, 6, 5)
	assert.Equal(t, RowNames("emp", 6), f.RowNames())

	ages := ColumnValues(t, f, "age")
	assert.Nil(t, ages[2])
	assert.Nil(t, ages[5])
	assert.NotNil(t, ages[4])
	assert.Equal(t, "Employee_5", ColumnValues(t, f, "name")[4])
	AssertColumnValues(t, f, "active", []any{true, false, true, false, true, false})
}

func TestSimpleFrame(t *testing.T) {
	f := SimpleFrame(t)
	AssertFrameDims(t, f, 2, 2)
	assert.Equal(t, []string{"emp_1", "emp_2"}, RowNames("emp", 2))
}
