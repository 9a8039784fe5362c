package view

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/saumyabhardwaj17/AM10-LBS-Group6-MAM26/internal/election"
	"github.com/saumyabhardwaj17/AM10-LBS-Group6-MAM26/internal/table"
)

// winnerColors maps the winner label to the marker color.
var winnerColors = map[string]string{
	election.WinnerA:       "red",
	election.WinnerB:       "blue",
	election.WinnerUnknown: "gray",
}

// ShiftPoint is one county in the margin-shift scatter. X is the earlier
// margin, Y the later one, so points above the diagonal moved toward the
// Republican column.
type ShiftPoint struct {
	GEOID      string  `json:"geoid"`
	County     string  `json:"county"`
	State      string  `json:"state"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Winner     string  `json:"winner"`
	TotalVotes float64 `json:"total_votes"`
	Hover      string  `json:"hover"`
}

// QuadrantShade is a translucent rectangle marking a flip quadrant.
type QuadrantShade struct {
	X0   float64 `json:"x0"`
	X1   float64 `json:"x1"`
	Y0   float64 `json:"y0"`
	Y1   float64 `json:"y1"`
	Fill string  `json:"fill"`
}

// DiagonalLine is the 1:1 no-change reference line.
type DiagonalLine struct {
	X0    float64 `json:"x0"`
	Y0    float64 `json:"y0"`
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	Dash  string  `json:"dash"`
	Color string  `json:"color"`
}

// ShiftScatter is the margin-shift scatter specification. Both axes share a
// symmetric range so the diagonal bisects the plot.
type ShiftScatter struct {
	ChartType string            `json:"chart_type"`
	Title     string            `json:"title"`
	XAxis     Axis              `json:"x_axis"`
	YAxis     Axis              `json:"y_axis"`
	Points    []ShiftPoint      `json:"points"`
	Diagonal  DiagonalLine      `json:"diagonal"`
	Shading   []QuadrantShade   `json:"shading"`
	ColorMap  map[string]string `json:"color_map"`
}

// BuildMarginShift assembles the county margin-shift scatter from a joined
// two-cycle result set.
func BuildMarginShift(cy *election.CrossYear, currentYear, previousYear int) (*ShiftScatter, error) {
	t := cy.Table

	countyCol, _ := table.Resolve(t, election.CountyNameCandidates)
	stateCol, _ := table.Resolve(t, election.StateNameCandidates)
	fipsCol, hasFIPS := table.Resolve(t, []string{"GEOID", "county_fips", "fips"})

	totalCandidates := make([]string, 0, 8)
	for _, c := range []string{"total_votes", "votes_total", "total", "ballots"} {
		totalCandidates = append(totalCandidates, fmt.Sprintf("%s_%d", c, currentYear), c)
	}
	totalCol, hasTotal := table.Resolve(t, totalCandidates)

	printer := message.NewPrinter(language.English)

	points := make([]ShiftPoint, 0, t.NumRows())
	maxAbs := 0.0
	for i := 0; i < t.NumRows(); i++ {
		x, okX := t.Float(i, cy.PreviousMargin)
		y, okY := t.Float(i, cy.CurrentMargin)
		if !okX || !okY {
			continue
		}

		p := ShiftPoint{X: x, Y: y, Winner: t.Value(i, cy.WinnerColumn).Text()}
		if hasFIPS {
			p.GEOID = t.Value(i, fipsCol).Text()
		}
		if countyCol != "" {
			p.County = t.Value(i, countyCol).Text()
		}
		if stateCol != "" {
			p.State = t.Value(i, stateCol).Text()
		}
		if hasTotal {
			if tv, ok := t.Float(i, totalCol); ok {
				p.TotalVotes = tv
			}
		}
		p.Hover = printer.Sprintf("%s, %s<br>%d margin: %.1f%%<br>%d margin: %.1f%%<br>Total votes: %.0f",
			p.County, p.State, previousYear, x, currentYear, y, p.TotalVotes)

		if a := math.Abs(x); a > maxAbs {
			maxAbs = a
		}
		if a := math.Abs(y); a > maxAbs {
			maxAbs = a
		}
		points = append(points, p)
	}

	axisLim := maxAbs * 1.05 * 1.1

	return &ShiftScatter{
		ChartType: "scatter",
		Title:     fmt.Sprintf("County margin shift, %d vs %d", previousYear, currentYear),
		XAxis: Axis{
			Title: fmt.Sprintf("%d margin (percentage points)", previousYear),
			Range: []float64{-axisLim, axisLim},
		},
		YAxis: Axis{
			Title: fmt.Sprintf("%d margin (percentage points)", currentYear),
			Range: []float64{-axisLim, axisLim},
		},
		Points: points,
		// The no-change line spans the full axis range so it always meets
		// the plot corners.
		Diagonal: DiagonalLine{
			X0: -axisLim, Y0: -axisLim, X1: axisLim, Y1: axisLim,
			Dash:  "dot",
			Color: "gray",
		},
		Shading: []QuadrantShade{
			// Flipped Republican: Democratic before, Republican now.
			{X0: -axisLim, X1: 0, Y0: 0, Y1: axisLim, Fill: "rgba(255,0,0,0.08)"},
			// Flipped Democratic: Republican before, Democratic now.
			{X0: 0, X1: axisLim, Y0: -axisLim, Y1: 0, Fill: "rgba(0,0,255,0.08)"},
		},
		ColorMap: winnerColors,
	}, nil
}
