package view

import (
	"fmt"
	"strconv"

	"github.com/saumyabhardwaj17/AM10-LBS-Group6-MAM26/internal/energy"
)

// BuildMixArea assembles the stacked percent-area chart of a country's
// electricity mix. Series stacking order follows Mix.Order, so the dominant
// source sits at the bottom of the stack.
func BuildMixArea(mix *energy.Mix, palette energy.Palette) *ChartConfig {
	series := make([]ChartSeries, 0, len(mix.Order))
	for _, source := range mix.Order {
		shares := mix.Shares[source]
		points := make([]ChartPoint, 0, len(mix.Years))
		for i, year := range mix.Years {
			points = append(points, ChartPoint{
				Label: strconv.Itoa(year),
				Value: shares[i] * 100,
			})
		}
		series = append(series, ChartSeries{
			Name:  source,
			Data:  points,
			Color: palette.Color(source),
		})
	}

	return &ChartConfig{
		ChartType: "stacked_area",
		Title:     fmt.Sprintf("Electricity Production Mix: %s", mix.Country),
		XAxis:     Axis{Title: "Year"},
		YAxis: Axis{
			Title: "Share of Total Electricity Production",
			Range: []float64{0, 100},
		},
		Series:     series,
		ShowLegend: true,
	}
}
