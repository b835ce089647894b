package table

import (
	"fmt"

	"gomonte/domain/sample"
	"gomonte/grid"
)

// Column is one numeric column of a dataset. Cells that failed numeric
// coercion are stored as NaN and counted in Missing.
type Column struct {
	Name    string    `json:"name"`
	Values  []float64 `json:"values"`
	Missing int       `json:"missing"`
}

// RejectedColumn records a column that could not be used numerically,
// with the reason it was set aside.
type RejectedColumn struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Table is a loaded tabular dataset: the numeric columns that survived
// coercion plus a record of every column that did not.
type Table struct {
	Headers  []string         `json:"headers"`
	Columns  []Column         `json:"columns"`
	Rejected []RejectedColumn `json:"rejected"`
	Rows     int              `json:"rows"`
}

// Column returns the named numeric column as a sample. Missing cells stay
// NaN so downstream profiling can count them; callers that need finite
// values only run Clean themselves.
func (t *Table) Column(name string) (sample.Sample, error) {
	for _, c := range t.Columns {
		if c.Name == name {
			return sample.New(c.Values), nil
		}
	}
	for _, r := range t.Rejected {
		if r.Name == name {
			return sample.Sample{}, fmt.Errorf("column %q was rejected: %s", name, r.Reason)
		}
	}
	return sample.Sample{}, fmt.Errorf("no column named %q, available: %v", name, t.NumericHeaders())
}

// NumericHeaders lists the usable column names in file order.
func (t *Table) NumericHeaders() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Grid assembles the numeric columns into a rows x columns grid. Missing
// cells stay NaN so downstream analyses can see them.
func (t *Table) Grid() (*grid.Grid, error) {
	if len(t.Columns) == 0 {
		return nil, fmt.Errorf("table has no numeric columns")
	}
	g, err := grid.Zeros(t.Rows, len(t.Columns))
	if err != nil {
		return nil, err
	}
	for j, c := range t.Columns {
		if len(c.Values) != t.Rows {
			return nil, fmt.Errorf("column %q has %d values, table has %d rows", c.Name, len(c.Values), t.Rows)
		}
		for i, v := range c.Values {
			g.Set(i, j, v)
		}
	}
	return g, nil
}
