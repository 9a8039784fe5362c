package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeISO3(t *testing.T) {
	assert.Equal(t, "USA", NormalizeISO3("usa"))
	assert.Equal(t, "FRA", NormalizeISO3(" FRA "))
	assert.Equal(t, "", NormalizeISO3("OWID_WRL")) // aggregate, not a country
	assert.Equal(t, "", NormalizeISO3("US"))
	assert.Equal(t, "", NormalizeISO3(""))
}

func TestContinentOf(t *testing.T) {
	tests := []struct {
		iso3, continent string
		ok              bool
	}{
		{"USA", "North America", true},
		{"FRA", "Europe", true},
		{"CHN", "Asia", true},
		{"BRA", "South America", true},
		{"NGA", "Africa", true},
		{"AUS", "Oceania", true},
		{"OWID_EUR", "", false},
		{"XXX", "", false},
	}
	for _, tt := range tests {
		c, ok := ContinentOf(tt.iso3)
		assert.Equal(t, tt.ok, ok, tt.iso3)
		assert.Equal(t, tt.continent, c, tt.iso3)
	}
}
