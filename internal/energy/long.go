package energy

import (
	"sort"

	"github.com/rotisserie/eris"

	"github.com/saumyabhardwaj17/AM10-LBS-Group6-MAM26/internal/table"
)

// longIDVars are the identifying columns carried onto every long row, when
// present in the input.
var longIDVars = []string{"country", "year", "iso_code", "population", "gdp"}

// Long reshapes a prepared generation panel (one column per fuel source)
// into long format: one row per (country, year, source, value). Rows with a
// null generation value or a missing ISO code are dropped.
func Long(energy *table.Table) (*table.Table, error) {
	var ids []string
	for _, c := range longIDVars {
		if energy.Has(c) {
			ids = append(ids, c)
		}
	}

	var valueVars []string
	for _, s := range Sources {
		if energy.Has(s) {
			valueVars = append(valueVars, s)
		}
	}
	if len(valueVars) == 0 {
		return nil, table.NewMissingColumnError(energy, "fuel source generation", Sources...)
	}

	long, err := table.Melt(energy, table.MeltOptions{
		IDVars:    ids,
		ValueVars: valueVars,
		VarName:   "source",
		ValueName: "value",
		DropNull:  true,
		RequireID: []string{"iso_code"},
	})
	if err != nil {
		return nil, eris.Wrap(err, "energy: melt generation panel")
	}
	return long, nil
}

// Countries returns the sorted distinct country names in a panel.
func Countries(t *table.Table) []string {
	seen := make(map[string]bool)
	var out []string
	for row := 0; row < t.NumRows(); row++ {
		v := t.Value(row, "country")
		if v.IsNull() {
			continue
		}
		name := v.Text()
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
