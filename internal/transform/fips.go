// Package transform holds the geographic key normalizers applied to every
// side of a join. A county FIPS code that is zero-padded on one side and not
// the other simply fails to match, with no error raised, so these run
// symmetrically on all inputs.
package transform

import (
	"strings"

	"github.com/saumyabhardwaj17/AM10-LBS-Group6-MAM26/internal/table"
)

// countyFIPSWidth is the canonical width of a combined state+county code.
const countyFIPSWidth = 5

// FIPSCandidates lists the column names a county FIPS code may appear
// under, most-preferred first.
var FIPSCandidates = []string{
	"GEOID", "fips", "FIPS", "county_fips", "county_fips_code", "fips_code", "countyFIPS",
}

// NormalizeFIPS zero-pads a county FIPS code to 5 characters. Input may have
// passed through a numeric representation and lost its leading zero; padding
// is restored by string formatting, never assumed present.
func NormalizeFIPS(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	for len(code) < countyFIPSWidth {
		code = "0" + code
	}
	return code
}

// NormalizeFIPSColumn rewrites a column of codes in place to canonical
// width-5 strings. Null cells stay null.
func NormalizeFIPSColumn(t *table.Table, col string) error {
	for row := 0; row < t.NumRows(); row++ {
		v := t.Value(row, col)
		if v.IsNull() {
			continue
		}
		if err := t.Set(row, col, table.String(NormalizeFIPS(v.Text()))); err != nil {
			return err
		}
	}
	return nil
}

// NormalizeFIPSState zero-pads a state FIPS code to 2 digits.
func NormalizeFIPSState(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	if len(code) == 1 {
		return "0" + code
	}
	return code
}

// NormalizeFIPSCounty zero-pads a county-within-state FIPS code to 3 digits.
func NormalizeFIPSCounty(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	for len(code) < 3 {
		code = "0" + code
	}
	return code
}

// CombineFIPS joins state and county FIPS parts into the 5-digit GEOID.
func CombineFIPS(state, county string) string {
	s := NormalizeFIPSState(state)
	c := NormalizeFIPSCounty(county)
	if s == "" || c == "" {
		return ""
	}
	return s + c
}
