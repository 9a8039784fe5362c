package table

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSVTypesCells(t *testing.T) {
	in := "county_fips,county_name,per_gop\n06037,Los Angeles,0.32\n36061,Manhattan,\n"

	tbl, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []string{"county_fips", "county_name", "per_gop"}, tbl.Columns())
	require.Equal(t, 2, tbl.NumRows())

	// Numeric-looking codes parse as numbers and lose their leading zero
	// here; the FIPS normalizer restores it downstream.
	fips, ok := tbl.Float(0, "county_fips")
	assert.True(t, ok)
	assert.Equal(t, 6037.0, fips)
	assert.Equal(t, "6037", tbl.Value(0, "county_fips").Text())

	assert.Equal(t, "Los Angeles", tbl.Value(0, "county_name").Text())
	share, _ := tbl.Float(0, "per_gop")
	assert.InDelta(t, 0.32, share, 1e-9)

	// Empty cells are null, not empty strings.
	assert.True(t, tbl.Value(1, "per_gop").IsNull())
}

func TestReadCSVRaggedRows(t *testing.T) {
	in := "a,b,c\n1,2\n1,2,3,4\n"

	tbl, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, 2, tbl.NumRows())

	// Short rows pad with nulls, long rows truncate.
	assert.True(t, tbl.Value(0, "c").IsNull())
	v, _ := tbl.Float(1, "c")
	assert.Equal(t, 3.0, v)
}

func TestReadCSVEmptyInput(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.Error(t, err)
}
