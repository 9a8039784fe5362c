package energy

import (
	"sort"

	"github.com/rotisserie/eris"

	"github.com/saumyabhardwaj17/AM10-LBS-Group6-MAM26/internal/table"
)

// Producer is one country's generation for a (source, year) slice, in TWh.
type Producer struct {
	Country string  `json:"country"`
	Value   float64 `json:"value"`
}

// TopProducers returns the n largest producers of a fuel source in a year,
// sorted ascending by value so a horizontal bar chart draws the largest on
// top. Returns ErrNoData when the slice is empty.
func TopProducers(long *table.Table, source string, year, n int) ([]Producer, error) {
	if !IsSource(source) {
		return nil, eris.Errorf("energy: unknown source %q", source)
	}
	if n <= 0 {
		return nil, eris.Errorf("energy: top-n requires n > 0, got %d", n)
	}

	var producers []Producer
	for row := 0; row < long.NumRows(); row++ {
		if long.Value(row, "source").Text() != source {
			continue
		}
		y, ok := long.Float(row, "year")
		if !ok || int(y) != year {
			continue
		}
		value, ok := long.Float(row, "value")
		if !ok {
			continue
		}
		producers = append(producers, Producer{
			Country: long.Value(row, "country").Text(),
			Value:   value,
		})
	}
	if len(producers) == 0 {
		return nil, eris.Wrapf(ErrNoData, "source %q in %d", source, year)
	}

	// n largest, then ascending; country name breaks ties deterministically.
	sort.Slice(producers, func(i, j int) bool {
		if producers[i].Value != producers[j].Value {
			return producers[i].Value > producers[j].Value
		}
		return producers[i].Country < producers[j].Country
	})
	if len(producers) > n {
		producers = producers[:n]
	}
	sort.Slice(producers, func(i, j int) bool {
		if producers[i].Value != producers[j].Value {
			return producers[i].Value < producers[j].Value
		}
		return producers[i].Country > producers[j].Country
	})

	return producers, nil
}
