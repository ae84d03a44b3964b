// Package dataset holds the in-memory tabular structures the schema
// operations read and rewrite. No parsing or file handling lives here,
// callers load their data by whatever means they already have.
package dataset

import "datadict/primitive"

// Column is a named, ordered sequence of cells.
type Column struct {
	name  string
	cells []primitive.Value
}

func NewColumn(name string, cells ...primitive.Value) *Column {
	return &Column{name: name, cells: append([]primitive.Value(nil), cells...)}
}

// Strings builds a text column, the usual shape of freshly loaded data.
func Strings(name string, cells ...string) *Column {
	vals := make([]primitive.Value, len(cells))
	for i, s := range cells {
		vals[i] = primitive.Text(s)
	}
	return NewColumn(name, vals...)
}

func (c *Column) Name() string { return c.name }

func (c *Column) Len() int { return len(c.cells) }

func (c *Column) Get(i int) primitive.Value { return c.cells[i] }

func (c *Column) Set(i int, v primitive.Value) { c.cells[i] = v }

// Values returns a copy of the cells in row order.
func (c *Column) Values() []primitive.Value {
	return append([]primitive.Value(nil), c.cells...)
}

// Apply rewrites every cell through fn, in place.
func (c *Column) Apply(fn primitive.RemapFunc) {
	for i, v := range c.cells {
		c.cells[i] = fn(v)
	}
}

// Unique returns the distinct non-null cells in first-occurrence order.
func (c *Column) Unique() []primitive.Value {
	seen := primitive.NewSet()
	for _, v := range c.cells {
		if v.IsNull() {
			continue
		}
		seen.Add(v)
	}
	return seen.Values()
}

// CountOf returns the number of cells equal to v.
func (c *Column) CountOf(v primitive.Value) int {
	n := 0
	for _, have := range c.cells {
		if have.Equal(v) {
			n++
		}
	}
	return n
}
