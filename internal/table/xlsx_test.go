package table

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func writeTestXLSX(t *testing.T, sheetName string, rows [][]string) string {
	t.Helper()
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(sheetName)
	require.NoError(t, err)
	for _, r := range rows {
		row := sheet.AddRow()
		for _, c := range r {
			row.AddCell().SetString(c)
		}
	}
	path := filepath.Join(t.TempDir(), "results.xlsx")
	require.NoError(t, f.Save(path))
	return path
}

func TestReadXLSX(t *testing.T) {
	path := writeTestXLSX(t, "Sheet1", [][]string{
		{"county_fips", "county_name", "margin"},
		{"06037", "Los Angeles", "-22.5"},
		{"48201", "Harris", ""},
	})

	tbl, err := ReadXLSX(path, XLSXOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"county_fips", "county_name", "margin"}, tbl.Columns())
	require.Equal(t, 2, tbl.NumRows())

	m, ok := tbl.Float(0, "margin")
	assert.True(t, ok)
	assert.Equal(t, -22.5, m)
	assert.Equal(t, "Los Angeles", tbl.Value(0, "county_name").Text())
	assert.True(t, tbl.Value(1, "margin").IsNull())
}

func TestReadXLSXSheetSelection(t *testing.T) {
	path := writeTestXLSX(t, "Results", [][]string{
		{"a"},
		{"1"},
	})

	tbl, err := ReadXLSX(path, XLSXOptions{SheetName: "Results"})
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.NumRows())

	_, err = ReadXLSX(path, XLSXOptions{SheetName: "Nope"})
	assert.Error(t, err)

	_, err = ReadXLSX(path, XLSXOptions{SheetIndex: 5})
	assert.Error(t, err)
}
