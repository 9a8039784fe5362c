// Package view assembles renderer-ready chart specifications from computed
// dashboard data. Each builder is pure: it takes already-derived values and
// returns a JSON-serializable config, so the builders can be tested without
// touching the network or the filesystem.
package view

// ChartPoint is one labeled value in a series.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ChartSeries is a named sequence of points with an optional fixed color.
type ChartSeries struct {
	Name  string       `json:"name"`
	Data  []ChartPoint `json:"data"`
	Color string       `json:"color,omitempty"`
}

// Axis describes one chart axis.
type Axis struct {
	Title string    `json:"title,omitempty"`
	Range []float64 `json:"range,omitempty"`
}

// ChartConfig is the common envelope for series-based charts (stacked area,
// horizontal bar). Map and scatter views carry their own top-level structs
// because their encodings do not reduce to labeled series.
type ChartConfig struct {
	ChartType  string        `json:"chart_type"`
	Title      string        `json:"title"`
	XAxis      Axis          `json:"x_axis"`
	YAxis      Axis          `json:"y_axis"`
	Series     []ChartSeries `json:"series"`
	ShowLegend bool          `json:"show_legend"`
}
