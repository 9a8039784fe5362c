// Package energy builds the global electricity dashboard inputs: the
// long-format generation panel, the per-country mix pivot, the top-N
// producer ranking, and the three-feed (energy, GDP, CO2) merge.
package energy

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Sources is the fixed fuel-category enumeration, in canonical order. The
// long-format source column only ever holds these values.
var Sources = []string{
	"biofuel", "coal", "gas", "hydro", "nuclear", "oil", "other_renewable", "solar", "wind",
}

// sourceRenames maps the upstream generation column names onto the fixed
// fuel categories.
var sourceRenames = map[string]string{
	"biofuel_electricity":                     "biofuel",
	"coal_electricity":                        "coal",
	"gas_electricity":                         "gas",
	"hydro_electricity":                       "hydro",
	"nuclear_electricity":                     "nuclear",
	"oil_electricity":                         "oil",
	"other_renewable_exc_biofuel_electricity": "other_renewable",
	"solar_electricity":                       "solar",
	"wind_electricity":                        "wind",
}

// IsSource reports whether name is one of the fixed fuel categories.
func IsSource(name string) bool {
	for _, s := range Sources {
		if s == name {
			return true
		}
	}
	return false
}

// Palette maps fuel categories to chart colors.
type Palette map[string]string

// fallbackColor is used for any source missing from the palette.
const fallbackColor = "#CCCCCC"

// DefaultPalette returns the dashboard's fuel color assignments.
func DefaultPalette() Palette {
	return Palette{
		"coal":            "#A0522D",
		"oil":             "#36454F",
		"gas":             "#6B9BD1",
		"hydro":           "#0077BE",
		"solar":           "#FFA500",
		"wind":            "#A8D5E2",
		"biofuel":         "#556B2F",
		"other_renewable": "#20B2AA",
		"nuclear":         "#E91E63",
	}
}

// Color returns the color for a source, or the neutral fallback.
func (p Palette) Color(source string) string {
	if c, ok := p[source]; ok {
		return c
	}
	return fallbackColor
}

// LoadPalette reads palette overrides from a YAML file and merges them over
// the defaults. An empty path returns the defaults unchanged.
func LoadPalette(path string) (Palette, error) {
	p := DefaultPalette()
	if path == "" {
		return p, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "energy: read palette %s", path)
	}

	var wrapper struct {
		Palette map[string]string `yaml:"palette"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, eris.Wrap(err, "energy: parse palette")
	}

	for source, color := range wrapper.Palette {
		if !IsSource(source) {
			return nil, eris.Errorf("energy: palette override for unknown source %q", source)
		}
		p[source] = color
	}
	return p, nil
}
