package view

import (
	"encoding/json"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"

	"github.com/saumyabhardwaj17/AM10-LBS-Group6-MAM26/internal/shapes"
)

// divergingScale is a blue-white-red scale centered on zero: deep blue for
// strong Democratic margins through deep red for strong Republican margins.
var divergingScale = []string{
	"#00429d", "#4771b2", "#73a2c6", "#a5d5d8", "#ffffe0",
	"#ffbcaf", "#f4777f", "#cf3759", "#93003a",
}

// marginRange clamps the color mapping so a handful of lopsided counties
// cannot wash out the midrange contrast.
var marginRange = [2]float64{-50, 50}

// CountyFeature is one county polygon with its margin. Margin is nil when the
// county has boundary data but no result row; the renderer styles those
// neutrally rather than as a zero margin.
type CountyFeature struct {
	GEOID    string          `json:"geoid"`
	Name     string          `json:"name"`
	Margin   *float64        `json:"margin"`
	Geometry json.RawMessage `json:"geometry"`
}

// MapLabel is a text annotation anchored at a coordinate.
type MapLabel struct {
	Text string  `json:"text"`
	Lon  float64 `json:"lon"`
	Lat  float64 `json:"lat"`
}

// ColorBar describes the legend for the diverging scale.
type ColorBar struct {
	Ticks []float64 `json:"ticks"`
	Text  []string  `json:"text"`
}

// CountyMap is the full choropleth specification.
type CountyMap struct {
	ChartType  string          `json:"chart_type"`
	Title      string          `json:"title"`
	ColorScale []string        `json:"color_scale"`
	RangeColor [2]float64      `json:"range_color"`
	Midpoint   float64         `json:"midpoint"`
	ColorBar   ColorBar        `json:"color_bar"`
	Features   []CountyFeature `json:"features"`
	Labels     []MapLabel      `json:"labels"`
}

// BuildCountyMap assembles the county margin choropleth. margins maps GEOID
// to a signed percentage-point margin; counties without an entry are kept as
// null-margin features so the map has no holes.
func BuildCountyMap(counties []shapes.County, margins map[string]float64, states []shapes.State) (*CountyMap, error) {
	features := make([]CountyFeature, 0, len(counties))
	var unmatched int
	for _, c := range counties {
		geomJSON, err := geojson.Marshal(c.Geometry)
		if err != nil {
			return nil, eris.Wrapf(err, "view: encode geometry for county %s", c.GEOID)
		}

		feat := CountyFeature{
			GEOID:    c.GEOID,
			Name:     c.Name,
			Geometry: geomJSON,
		}
		if m, ok := margins[c.GEOID]; ok {
			v := m
			feat.Margin = &v
		} else {
			unmatched++
		}
		features = append(features, feat)
	}

	if unmatched > 0 {
		zap.L().Warn("counties without result rows render unshaded",
			zap.Int("unmatched", unmatched),
			zap.Int("total", len(counties)),
		)
	}

	labels := make([]MapLabel, 0, len(states))
	for _, s := range states {
		labels = append(labels, MapLabel{
			Text: s.Abbrev,
			Lon:  s.Centroid.X(),
			Lat:  s.Centroid.Y(),
		})
	}

	return &CountyMap{
		ChartType:  "choropleth",
		Title:      "% Margin of the popular vote by county",
		ColorScale: divergingScale,
		RangeColor: marginRange,
		Midpoint:   0,
		ColorBar: ColorBar{
			Ticks: []float64{-50, 0, 50},
			Text:  []string{"+50% Kamala", "0%", "+50% Trump"},
		},
		Features: features,
		Labels:   labels,
	}, nil
}
