package viewer

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Features is a column-oriented table of per-item measurements.
type Features struct {
	columns []string
	data    map[string][]float64
	rows    int
}

// NewFeatures creates an empty table.
func NewFeatures() *Features {
	return &Features{data: make(map[string][]float64)}
}

// AddColumn appends or replaces a column. All columns must have the same length.
func (f *Features) AddColumn(name string, values []float64) error {
	if len(f.columns) > 0 && len(values) != f.rows {
		if _, replacing := f.data[name]; !replacing || len(f.columns) > 1 {
			return fmt.Errorf("column %q has %d rows, table has %d", name, len(values), f.rows)
		}
	}
	if _, ok := f.data[name]; !ok {
		f.columns = append(f.columns, name)
	}
	f.data[name] = append([]float64(nil), values...)
	f.rows = len(values)
	return nil
}

// Columns returns the column names in insertion order.
func (f *Features) Columns() []string {
	return append([]string(nil), f.columns...)
}

// Column returns a copy of a column as a vector.
func (f *Features) Column(name string) (*mat.VecDense, bool) {
	values, ok := f.data[name]
	if !ok || len(values) == 0 {
		return nil, false
	}
	return mat.NewVecDense(len(values), append([]float64(nil), values...)), true
}

// Rows returns the number of rows.
func (f *Features) Rows() int {
	return f.rows
}

// Empty reports whether the table has no rows.
func (f *Features) Empty() bool {
	return f.rows == 0
}
