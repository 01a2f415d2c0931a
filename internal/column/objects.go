package column

import "fmt"

// Objects is a column of opaque values. Nil is the missing value.
type Objects struct {
	values []any
}

// NewObjects creates an object column. The slice is copied.
func NewObjects(values []any) *Objects {
	return &Objects{values: append([]any(nil), values...)}
}

// Kind returns KindObject.
func (o *Objects) Kind() Kind { return KindObject }

// Len returns the number of elements.
func (o *Objects) Len() int { return len(o.values) }

// Value returns the element at i.
func (o *Objects) Value(i int) any { return o.values[i] }

// IsNull checks if the value at index is nil.
func (o *Objects) IsNull(i int) bool { return o.values[i] == nil }

// Take gathers elements by position; -1 yields nil.
func (o *Objects) Take(indices []int) Column {
	out := make([]any, len(indices))
	for i, src := range indices {
		if src >= 0 {
			out[i] = o.values[src]
		}
	}
	return &Objects{values: out}
}

// Null returns n nil values.
func (o *Objects) Null(n int) Column {
	return &Objects{values: make([]any, n)}
}

// Values returns a copy of the elements.
func (o *Objects) Values() []any {
	return append([]any(nil), o.values...)
}

// String returns a string representation of the column
func (o *Objects) String() string {
	return fmt.Sprintf("Objects (len=%d)", len(o.values))
}
