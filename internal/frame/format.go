package frame

import (
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/paveg/biocframe/internal/column"
	"github.com/paveg/biocframe/internal/common"
	"github.com/paveg/biocframe/internal/config"
)

// Equal reports whether two frames have the same column names, row names
// and values. Metadata and column data are not compared, and a frame that
// fails validation equals nothing.
func (f *Frame) Equal(other *Frame) bool {
	if f == nil || other == nil {
		return f == other
	}
	if f.ready("Equal") != nil || other.ready("Equal") != nil {
		return false
	}
	if f.rows != other.rows || !slices.Equal(f.names, other.names) {
		return false
	}
	if (f.rowNames == nil) != (other.rowNames == nil) || !slices.Equal(f.rowNames, other.rowNames) {
		return false
	}
	for i := range f.columns {
		if !column.Equal(f.columns[i], other.columns[i]) {
			return false
		}
	}
	return true
}

// String renders a header with the dimensions and column kinds followed by
// the first and last rows. A frame that fails validation renders only its
// dimensions and the validation error.
func (f *Frame) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Frame[%dx%d]", f.rows, len(f.columns))
	if err := f.ready("String"); err != nil {
		fmt.Fprintf(&b, " invalid: %v", err)
		return b.String()
	}
	if len(f.columns) == 0 && f.rowNames == nil {
		return b.String()
	}
	b.WriteString("\n")

	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	header := []string{""}
	kinds := []string{""}
	for i, name := range f.names {
		header = append(header, name)
		kinds = append(kinds, "<"+f.columns[i].Kind().String()+">")
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	fmt.Fprintln(tw, strings.Join(kinds, "\t"))

	labels := f.RowLabels()
	writeRow := func(i int) {
		cells := []string{labels[i]}
		for _, c := range f.columns {
			cells = append(cells, formatCell(c, i))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}

	n := config.GetGlobalConfig().DisplayRows
	if f.rows <= 2*n {
		for i := 0; i < f.rows; i++ {
			writeRow(i)
		}
	} else {
		for i := 0; i < n; i++ {
			writeRow(i)
		}
		fmt.Fprintln(tw, "...")
		for i := f.rows - n; i < f.rows; i++ {
			writeRow(i)
		}
	}
	tw.Flush()
	return strings.TrimRight(b.String(), "\n")
}

func formatCell(c column.Column, i int) string {
	if c.Kind() == column.KindFrame {
		if c.IsNull(i) {
			return common.NullString
		}
		return fmt.Sprintf("<row %d>", i)
	}
	return common.FormatValue(c.Value(i))
}
