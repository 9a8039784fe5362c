package table

import (
	"github.com/rotisserie/eris"
)

// MeltOptions configures the wide-to-long reshape.
type MeltOptions struct {
	IDVars    []string // identifying columns carried onto every long row
	ValueVars []string // one long row is produced per value column
	VarName   string   // name of the category column, default "variable"
	ValueName string   // name of the value column, default "value"

	// DropNull drops long rows whose melted value is null.
	DropNull bool
	// RequireID drops long rows where any of these id columns is null.
	RequireID []string
}

// Melt reshapes a wide table (one column per category) into long format
// (one row per observation per category).
func Melt(t *Table, opts MeltOptions) (*Table, error) {
	if len(opts.ValueVars) == 0 {
		return nil, eris.New("table: melt requires value columns")
	}
	for _, c := range opts.IDVars {
		if !t.Has(c) {
			return nil, eris.Errorf("table: melt id column %q not found", c)
		}
	}
	for _, c := range opts.ValueVars {
		if !t.Has(c) {
			return nil, eris.Errorf("table: melt value column %q not found", c)
		}
	}

	varName := opts.VarName
	if varName == "" {
		varName = "variable"
	}
	valueName := opts.ValueName
	if valueName == "" {
		valueName = "value"
	}

	cols := append(append([]string{}, opts.IDVars...), varName, valueName)
	out, err := New(cols...)
	if err != nil {
		return nil, eris.Wrap(err, "table: melt output columns")
	}

	for row := 0; row < t.NumRows(); row++ {
		skip := false
		for _, c := range opts.RequireID {
			if t.Value(row, c).IsNull() || t.Value(row, c).Text() == "" {
				skip = true
				break
			}
		}
		if skip {
			continue
		}

		ids := make([]Value, len(opts.IDVars))
		for i, c := range opts.IDVars {
			ids[i] = t.Value(row, c)
		}

		for _, vc := range opts.ValueVars {
			v := t.Value(row, vc)
			if opts.DropNull && v.IsNull() {
				continue
			}
			vals := make([]Value, 0, len(cols))
			vals = append(vals, ids...)
			vals = append(vals, String(vc), v)
			if err := out.Append(vals...); err != nil {
				return nil, eris.Wrap(err, "table: melt append")
			}
		}
	}

	return out, nil
}
