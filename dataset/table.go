package dataset

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateColumn = errors.New("duplicate column name")
	ErrColumnLength    = errors.New("column length does not match the table")
)

// Table is an insertion-ordered collection of equally long columns.
type Table struct {
	columns []*Column
	index   map[string]int
}

func NewTable(columns ...*Column) (*Table, error) {
	t := &Table{index: make(map[string]int)}
	for _, col := range columns {
		if err := t.Add(col); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Add appends a column. The first column fixes the row count.
func (t *Table) Add(col *Column) error {
	if _, ok := t.index[col.Name()]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateColumn, col.Name())
	}
	if len(t.columns) > 0 && col.Len() != t.Rows() {
		return fmt.Errorf("%w: %q has %d rows, table has %d",
			ErrColumnLength, col.Name(), col.Len(), t.Rows())
	}
	t.index[col.Name()] = len(t.columns)
	t.columns = append(t.columns, col)
	return nil
}

// Column looks a column up by name.
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.columns[i], true
}

// Names returns the column names in insertion order.
func (t *Table) Names() []string {
	out := make([]string, len(t.columns))
	for i, col := range t.columns {
		out[i] = col.Name()
	}
	return out
}

// Len returns the number of columns.
func (t *Table) Len() int { return len(t.columns) }

// Rows returns the row count, zero for an empty table.
func (t *Table) Rows() int {
	if len(t.columns) == 0 {
		return 0
	}
	return t.columns[0].Len()
}
