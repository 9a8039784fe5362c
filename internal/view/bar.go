package view

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/saumyabhardwaj17/AM10-LBS-Group6-MAM26/internal/energy"
)

var titleCaser = cases.Title(language.English)

// sourceDisplayName turns a source key into its chart label,
// e.g. "other_renewable" becomes "Other Renewable".
func sourceDisplayName(source string) string {
	return titleCaser.String(strings.ReplaceAll(source, "_", " "))
}

// BuildTopBar assembles the horizontal bar chart of the top producing
// countries for one source. Producers are expected smallest-first so the
// largest bar renders at the top.
func BuildTopBar(producers []energy.Producer, source string, year, n int, palette energy.Palette) *ChartConfig {
	points := make([]ChartPoint, 0, len(producers))
	for _, p := range producers {
		points = append(points, ChartPoint{Label: p.Country, Value: p.Value})
	}

	return &ChartConfig{
		ChartType: "bar_horizontal",
		Title:     fmt.Sprintf("Top %d %s Producing Countries in %d (TWh)", n, sourceDisplayName(source), year),
		XAxis:     Axis{Title: "Electricity Produced (TWh)"},
		YAxis:     Axis{Title: ""},
		Series: []ChartSeries{{
			Name:  sourceDisplayName(source),
			Data:  points,
			Color: palette.Color(source),
		}},
		ShowLegend: false,
	}
}
