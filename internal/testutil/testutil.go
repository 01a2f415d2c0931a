// Package testutil provides shared frame builders and assertions for tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/paveg/biocframe/internal/column"
	"github.com/paveg/biocframe/internal/frame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	defaultRowCount = 4
	baseAge         = 25
	ageRange        = 40
	baseSalary      = 40000
	salaryIncrement = 1000
)

var (
	baseNames    = []string{"Alice", "Bob", "Charlie", "David"}
	baseAges     = []int64{25, 30, 35, 28}
	baseDepts    = []string{"Engineering", "Sales", "Engineering", "Marketing"}
	baseSalaries = []float64{100000, 80000, 120000, 75000}
	departments  = []string{"Engineering", "Sales", "Marketing", "HR", "Finance"}
)

// FrameOption configures test frame creation.
type FrameOption func(*frameConfig)

type frameConfig struct {
	rowCount   int
	withNulls  bool
	rowNames   bool
	withActive bool
}

// WithRowCount sets the number of rows in test data.
func WithRowCount(count int) FrameOption {
	return func(cfg *frameConfig) {
		cfg.rowCount = count
	}
}

// WithNulls makes every third age missing.
func WithNulls() FrameOption {
	return func(cfg *frameConfig) {
		cfg.withNulls = true
	}
}

// WithRowNames names rows "emp_1", "emp_2" and so on.
func WithRowNames() FrameOption {
	return func(cfg *frameConfig) {
		cfg.rowNames = true
	}
}

// WithActiveColumn includes an 'active' boolean column.
func WithActiveColumn() FrameOption {
	return func(cfg *frameConfig) {
		cfg.withActive = true
	}
}

// EmployeeFrame builds the standard employee frame with columns name (string),
// age (int64), department (string) and salary (float64).
//
// Default rows:
//
//	Alice   25 Engineering 100000
//	Bob     30 Sales        80000
//	Charlie 35 Engineering 120000
//	David   28 Marketing    75000
func EmployeeFrame(tb testing.TB, opts ...FrameOption) *frame.Frame {
	tb.Helper()
	cfg := &frameConfig{rowCount: defaultRowCount}
	for _, opt := range opts {
		opt(cfg)
	}

	n := cfg.rowCount
	names := make([]string, n)
	ages := make([]int64, n)
	valid := make([]bool, n)
	depts := make([]string, n)
	salaries := make([]float64, n)
	for i := range n {
		if i < len(baseNames) {
			names[i], ages[i], depts[i], salaries[i] = baseNames[i], baseAges[i], baseDepts[i], baseSalaries[i]
		} else {
			names[i] = fmt.Sprintf("Employee_%d", i+1)
			ages[i] = int64(baseAge + i%ageRange)
			depts[i] = departments[i%len(departments)]
			salaries[i] = float64(baseSalary + i*salaryIncrement)
		}
		valid[i] = !cfg.withNulls || i%3 != 2
	}

	age, err := column.NewNullable(ages, valid)
	require.NoError(tb, err)

	cols := []frame.Named{
		frame.Col("name", names),
		frame.Col("age", age),
		frame.Col("department", depts),
		frame.Col("salary", salaries),
	}
	if cfg.withActive {
		active := make([]bool, n)
		for i := range active {
			active[i] = i%2 == 0
		}
		cols = append(cols, frame.Col("active", active))
	}

	var frameOpts []frame.Option
	if cfg.rowNames {
		frameOpts = append(frameOpts, frame.WithRowNames(RowNames("emp", n)))
	}
	f, err := frame.New(cols, frameOpts...)
	require.NoError(tb, err)
	return f
}

// SimpleFrame builds a two-column frame: name and age.
func SimpleFrame(tb testing.TB, opts ...frame.Option) *frame.Frame {
	tb.Helper()
	f, err := frame.New([]frame.Named{
		frame.Col("name", []string{"Alice", "Bob"}),
		frame.Col("age", []int64{25, 30}),
	}, opts...)
	require.NoError(tb, err)
	return f
}

// RowNames returns prefix_1 through prefix_n.
func RowNames(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s_%d", prefix, i+1)
	}
	return out
}

// AssertFrameDims checks the row and column counts.
func AssertFrameDims(tb testing.TB, f *frame.Frame, rows, cols int) {
	tb.Helper()
	r, c := f.Dims()
	assert.Equal(tb, rows, r, "row count")
	assert.Equal(tb, cols, c, "column count")
}

// AssertFrameHasColumns checks the column names in order.
func AssertFrameHasColumns(tb testing.TB, f *frame.Frame, expected []string) {
	tb.Helper()
	assert.Equal(tb, expected, f.ColumnNames())
}

// ColumnValues returns the values of a named column, failing the test when it
// is missing.
func ColumnValues(tb testing.TB, f *frame.Frame, name string) []any {
	tb.Helper()
	c, ok := f.Column(name)
	require.True(tb, ok, "missing column %s", name)
	return column.Values(c)
}

// AssertColumnValues checks the values of a named column.
func AssertColumnValues(tb testing.TB, f *frame.Frame, name string, expected []any) {
	tb.Helper()
	assert.Equal(tb, expected, ColumnValues(tb, f, name), "column %s", name)
}
