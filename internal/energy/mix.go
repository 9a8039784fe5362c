package energy

import (
	"sort"

	"github.com/rotisserie/eris"

	"github.com/saumyabhardwaj17/AM10-LBS-Group6-MAM26/internal/table"
)

// ErrNoData reports that a filter matched no rows: an empty country or an
// empty (source, year) slice. Views surface it as a warning, not a failure.
var ErrNoData = eris.New("energy: no matching data")

// Mix is a per-country electricity production mix: for each year, each
// source's share of that year's total generation.
type Mix struct {
	Country string
	Years   []int
	// Order lists the sources by their peak generation, descending: the
	// stacking order of the area chart.
	Order []string
	// Shares maps source → per-year share of total, aligned with Years.
	// Years with zero total generation carry zero shares.
	Shares map[string][]float64
}

// MixFor pivots the long-format panel into a share-of-total mix for one
// country.
func MixFor(long *table.Table, country string) (*Mix, error) {
	filtered := long.Filter(func(row int) bool {
		return long.Value(row, "country").Text() == country
	})
	if filtered.NumRows() == 0 {
		return nil, eris.Wrapf(ErrNoData, "country %q", country)
	}

	// Pivot: (year, source) → summed value.
	totals := make(map[int]map[string]float64)
	peak := make(map[string]float64)
	for row := 0; row < filtered.NumRows(); row++ {
		yearF, ok := filtered.Float(row, "year")
		if !ok {
			continue
		}
		value, ok := filtered.Float(row, "value")
		if !ok {
			continue
		}
		year := int(yearF)
		source := filtered.Value(row, "source").Text()

		if totals[year] == nil {
			totals[year] = make(map[string]float64)
		}
		totals[year][source] += value
		if totals[year][source] > peak[source] {
			peak[source] = totals[year][source]
		}
	}

	years := make([]int, 0, len(totals))
	for y := range totals {
		years = append(years, y)
	}
	sort.Ints(years)

	// Stack sources by peak value descending; canonical order breaks ties
	// so the result is deterministic.
	order := make([]string, 0, len(peak))
	for _, s := range Sources {
		if _, ok := peak[s]; ok {
			order = append(order, s)
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		return peak[order[i]] > peak[order[j]]
	})

	shares := make(map[string][]float64, len(order))
	for _, s := range order {
		shares[s] = make([]float64, len(years))
	}
	for i, y := range years {
		var total float64
		for _, s := range order {
			total += totals[y][s]
		}
		if total == 0 {
			continue
		}
		for _, s := range order {
			shares[s][i] = totals[y][s] / total
		}
	}

	return &Mix{Country: country, Years: years, Order: order, Shares: shares}, nil
}
