package column

import "fmt"

// Nested is a column whose rows are the rows of a nested frame.
type Nested struct {
	table Table
}

// NewNested wraps a table as a column.
func NewNested(t Table) *Nested {
	return &Nested{table: t}
}

// Table returns the nested table.
func (n *Nested) Table() Table { return n.table }

// Kind returns KindFrame.
func (n *Nested) Kind() Kind { return KindFrame }

// Len returns the number of nested rows.
func (n *Nested) Len() int { return n.table.Len() }

// Value returns nested row i keyed by column name, or nil when the row is
// entirely missing.
func (n *Nested) Value(i int) any {
	if n.IsNull(i) {
		return nil
	}
	return n.table.RowValues(i)
}

// IsNull reports whether every cell of nested row i is missing. Rows of a
// table without columns are never missing.
func (n *Nested) IsNull(i int) bool {
	if n.table.Width() == 0 {
		return false
	}
	for _, v := range n.table.RowValues(i) {
		if v != nil {
			return false
		}
	}
	return true
}

// Take gathers nested rows; -1 yields a row of missing values.
func (n *Nested) Take(indices []int) Column {
	t, err := n.table.Gather(indices)
	if err != nil {
		// Gather only fails on out-of-range positions, which callers
		// resolve beforehand.
		panic(err)
	}
	return &Nested{table: t}
}

// Null returns n rows of missing values with the same nested columns.
func (n *Nested) Null(size int) Column {
	idx := make([]int, size)
	for i := range idx {
		idx[i] = -1
	}
	return n.Take(idx)
}

// String returns a string representation of the column
func (n *Nested) String() string {
	return fmt.Sprintf("Nested[%dx%d]", n.table.Len(), n.table.Width())
}
