package domain

import "fmt"

// Record maps field names to scalar values. Field order lives on the
// owning Dataset; records only carry the values.
type Record map[string]any

// Column pairs a field name with one value per dataset row. Used to
// attach derived fields without mutating the source dataset.
type Column struct {
	Name   string
	Values []any
}

// Dataset is an ordered, fully materialized table of records sharing a
// single field schema. Row identity is positional; row order is
// preserved from load through save.
type Dataset struct {
	columns []string
	rows    []Record
}

// NewDataset assembles a dataset from a column order and row values.
func NewDataset(columns []string, rows []Record) Dataset {
	return Dataset{columns: columns, rows: rows}
}

// Len reports the number of rows.
func (d Dataset) Len() int {
	return len(d.rows)
}

// Columns returns the field order as a fresh slice.
func (d Dataset) Columns() []string {
	out := make([]string, len(d.columns))
	copy(out, d.columns)
	return out
}

// HasColumn reports whether the named field is part of the schema.
func (d Dataset) HasColumn(name string) bool {
	for _, col := range d.columns {
		if col == name {
			return true
		}
	}
	return false
}

// Row exposes the record at index i. Callers must treat it as read-only.
func (d Dataset) Row(i int) Record {
	return d.rows[i]
}

// Value reads a single field of a single row.
func (d Dataset) Value(row int, column string) any {
	return d.rows[row][column]
}

// Append returns a copy of the dataset extended with the given derived
// columns. The receiver is left untouched; each new column must carry
// exactly one value per row and must not shadow an existing field.
func (d Dataset) Append(cols ...Column) (Dataset, error) {
	for _, col := range cols {
		if len(col.Values) != len(d.rows) {
			return Dataset{}, fmt.Errorf("column %s has %d values for %d rows", col.Name, len(col.Values), len(d.rows))
		}
		if d.HasColumn(col.Name) {
			return Dataset{}, fmt.Errorf("column %s already exists", col.Name)
		}
	}

	columns := make([]string, 0, len(d.columns)+len(cols))
	columns = append(columns, d.columns...)
	for _, col := range cols {
		columns = append(columns, col.Name)
	}

	rows := make([]Record, len(d.rows))
	for i, row := range d.rows {
		next := make(Record, len(row)+len(cols))
		for k, v := range row {
			next[k] = v
		}
		for _, col := range cols {
			next[col.Name] = col.Values[i]
		}
		rows[i] = next
	}

	return Dataset{columns: columns, rows: rows}, nil
}
