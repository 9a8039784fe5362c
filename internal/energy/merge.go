package energy

import (
	"github.com/rotisserie/eris"

	"github.com/saumyabhardwaj17/AM10-LBS-Group6-MAM26/internal/table"
	"github.com/saumyabhardwaj17/AM10-LBS-Group6-MAM26/internal/transform"
)

// panelKeys is the composite join key shared by all three feeds.
var panelKeys = []string{"iso_code", "year"}

// Combine inner-joins the prepared generation, GDP-per-capita, and
// CO2-per-capita panels on (iso_code, year) and labels each row with its
// continent. The CO2 feed's country column is dropped before joining; the
// generation panel already carries the canonical name. Only country-years
// present in all three feeds survive.
func Combine(energy, gdp, co2 *table.Table) (*table.Table, error) {
	for _, t := range []*table.Table{energy, gdp, co2} {
		for _, k := range panelKeys {
			if !t.Has(k) {
				return nil, table.NewMissingColumnError(t, "panel join key", panelKeys...)
			}
		}
	}

	merged, err := table.InnerJoin(energy, gdp, table.JoinOptions{
		LeftKeys:  panelKeys,
		RightKeys: panelKeys,
		Suffixes:  [2]string{"_energy", "_gdp"},
	})
	if err != nil {
		return nil, eris.Wrap(err, "energy: join generation and GDP panels")
	}

	combined, err := table.InnerJoin(merged, co2, table.JoinOptions{
		LeftKeys:  panelKeys,
		RightKeys: panelKeys,
		Suffixes:  [2]string{"", "_co2"},
		DropRight: []string{"country"},
	})
	if err != nil {
		return nil, eris.Wrap(err, "energy: join CO2 panel")
	}

	err = combined.AddColumn("continent", func(row int) table.Value {
		continent, ok := transform.ContinentOf(combined.Value(row, "iso_code").Text())
		if !ok {
			return table.Null()
		}
		return table.String(continent)
	})
	if err != nil {
		return nil, eris.Wrap(err, "energy: continent column")
	}

	return combined, nil
}
