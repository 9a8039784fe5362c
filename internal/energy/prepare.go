package energy

import (
	"github.com/rotisserie/eris"

	"github.com/saumyabhardwaj17/AM10-LBS-Group6-MAM26/internal/table"
)

// StartYear is the lower bound applied to every panel.
const StartYear = 1990

// PrepareEnergy shapes the raw generation feed for the dashboard: years
// before StartYear and rows without an ISO code are dropped, and the
// per-fuel generation columns are renamed to the fixed source categories.
// Columns must already be cleaned to snake_case.
func PrepareEnergy(t *table.Table) (*table.Table, error) {
	if !t.Has("iso_code") {
		return nil, table.NewMissingColumnError(t, "energy panel ISO code", "iso_code")
	}
	if !t.Has("year") {
		return nil, table.NewMissingColumnError(t, "energy panel year", "year")
	}

	out := t.Filter(func(row int) bool {
		year, ok := t.Float(row, "year")
		if !ok || year < StartYear {
			return false
		}
		iso := t.Value(row, "iso_code")
		return !iso.IsNull() && iso.Text() != ""
	})

	for from, to := range sourceRenames {
		if !out.Has(from) {
			continue
		}
		if err := out.Rename(from, to); err != nil {
			return nil, eris.Wrapf(err, "energy: rename %s", from)
		}
	}

	return out, nil
}

// co2Renames maps the CO2 feed's short column names onto the dashboard's.
var co2Renames = map[string][]string{
	"co2_per_capita": {"emissions_total_per_capita", "co_emissions_per_capita", "co2_per_capita"},
	"country":        {"entity", "country"},
	"iso_code":       {"code", "iso_code"},
}

// PrepareCO2 shapes the per-capita emissions feed: renames the entity/code
// columns, and keeps years from StartYear on.
func PrepareCO2(t *table.Table) (*table.Table, error) {
	out := t.Clone()
	for to, candidates := range co2Renames {
		from, ok := table.Resolve(out, candidates)
		if !ok {
			return nil, table.NewMissingColumnError(out, "CO2 panel "+to, candidates...)
		}
		if from != to {
			if err := out.Rename(from, to); err != nil {
				return nil, eris.Wrapf(err, "energy: rename %s", from)
			}
		}
	}

	if !out.Has("year") {
		return nil, table.NewMissingColumnError(out, "CO2 panel year", "year")
	}
	out = out.Filter(func(row int) bool {
		year, ok := out.Float(row, "year")
		return ok && year >= StartYear
	})
	return out, nil
}
