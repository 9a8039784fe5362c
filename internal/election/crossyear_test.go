package election

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saumyabhardwaj17/AM10-LBS-Group6-MAM26/internal/table"
)

func testResults2024(t *testing.T) *table.Table {
	// Unpadded numeric codes, as a CSV read would produce them.
	return makeTable(t, []string{"county_fips", "county_name", "state_name", "per_gop", "per_dem", "total_votes"},
		[]table.Value{table.Number(6037), table.String("Los Angeles"), table.String("California"), table.Number(0.30), table.Number(0.65), table.Number(3500000)},
		[]table.Value{table.Number(48201), table.String("Harris"), table.String("Texas"), table.Number(0.51), table.Number(0.47), table.Number(1600000)},
		[]table.Value{table.Number(1001), table.String("Autauga"), table.String("Alabama"), table.Null(), table.Number(0.27), table.Number(28000)},
	)
}

func testResults2020(t *testing.T) *table.Table {
	return makeTable(t, []string{"county_fips", "county_name", "state_name", "per_gop", "per_dem", "total_votes"},
		[]table.Value{table.String("06037"), table.String("Los Angeles"), table.String("California"), table.Number(0.27), table.Number(0.71), table.Number(4000000)},
		[]table.Value{table.String("48201"), table.String("Harris"), table.String("Texas"), table.Number(0.47), table.Number(0.52), table.Number(1650000)},
		[]table.Value{table.String("01001"), table.String("Autauga"), table.String("Alabama"), table.Number(0.71), table.Number(0.27), table.Number(27000)},
		[]table.Value{table.String("99999"), table.String("Only In 2020"), table.String("Nowhere"), table.Number(0.5), table.Number(0.5), table.Number(10)},
	)
}

func TestCrossYearJoin(t *testing.T) {
	cy, err := CrossYearJoin(testResults2024(t), testResults2020(t), 2024, 2020, DefaultSpec())
	require.NoError(t, err)

	joined := cy.Table
	// The 2020-only county drops; mixed padding joins after normalization.
	assert.Equal(t, 3, joined.NumRows())

	assert.Equal(t, "margin_pct_2024", cy.CurrentMargin)
	assert.Equal(t, "margin_pct_2020", cy.PreviousMargin)
	assert.Equal(t, "winner_2024", cy.WinnerColumn)

	// Dropped right-side display and count columns never reappear suffixed,
	// so the left-side copies keep their plain names.
	assert.False(t, joined.Has("county_name_2020"))
	assert.False(t, joined.Has("total_votes_2020"))
	assert.True(t, joined.Has("county_name"))
	assert.True(t, joined.Has("total_votes"))
	// Shares exist on both sides and do collide.
	assert.True(t, joined.Has("per_gop_2024"))
	assert.True(t, joined.Has("per_gop_2020"))

	// Each side's margin is derived on its own scale.
	la := rowByFIPS(t, joined, "06037")
	cur, _ := joined.Float(la, "margin_pct_2024")
	prev, _ := joined.Float(la, "margin_pct_2020")
	assert.InDelta(t, -35.0, cur, 1e-9)
	assert.InDelta(t, -44.0, prev, 1e-9)
}

func TestCrossYearWinnerLabels(t *testing.T) {
	cy, err := CrossYearJoin(testResults2024(t), testResults2020(t), 2024, 2020, DefaultSpec())
	require.NoError(t, err)
	joined := cy.Table

	assert.Equal(t, WinnerB, joined.Value(rowByFIPS(t, joined, "06037"), "winner_2024").Text())
	assert.Equal(t, WinnerA, joined.Value(rowByFIPS(t, joined, "48201"), "winner_2024").Text())
	// A null share cannot be compared: the label degrades, never guesses.
	assert.Equal(t, WinnerUnknown, joined.Value(rowByFIPS(t, joined, "01001"), "winner_2024").Text())
}

func TestCrossYearJoinDoesNotMutateInputs(t *testing.T) {
	current := testResults2024(t)
	previous := testResults2020(t)

	_, err := CrossYearJoin(current, previous, 2024, 2020, DefaultSpec())
	require.NoError(t, err)

	// The caller's tables keep their raw codes and lack derived columns.
	assert.Equal(t, "6037", current.Value(0, "county_fips").Text())
	assert.False(t, current.Has("margin_pct_2024"))
	assert.False(t, previous.Has("margin_pct_2020"))
}

func TestCrossYearJoinWithPrederivedMargins(t *testing.T) {
	// Both files ship their own margin_pct; after the join the suffixed
	// output columns already exist and are re-derived over.
	current := makeTable(t, []string{"county_fips", "per_gop", "per_dem", "margin_pct"},
		[]table.Value{table.String("48201"), table.Number(0.51), table.Number(0.47), table.Number(99)},
	)
	previous := makeTable(t, []string{"county_fips", "per_gop", "per_dem", "margin_pct"},
		[]table.Value{table.String("48201"), table.Number(0.47), table.Number(0.52), table.Number(-99)},
	)

	cy, err := CrossYearJoin(current, previous, 2024, 2020, DefaultSpec())
	require.NoError(t, err)

	joined := cy.Table
	require.Equal(t, 1, joined.NumRows())
	cur, _ := joined.Float(0, cy.CurrentMargin)
	prev, _ := joined.Float(0, cy.PreviousMargin)
	assert.InDelta(t, 4.0, cur, 1e-9)
	assert.InDelta(t, -5.0, prev, 1e-9)
}

func TestCrossYearJoinMissingFIPS(t *testing.T) {
	noFIPS := makeTable(t, []string{"county_name"},
		[]table.Value{table.String("Somewhere")},
	)

	_, err := CrossYearJoin(noFIPS, testResults2020(t), 2024, 2020, DefaultSpec())
	require.Error(t, err)
	var missing *table.MissingColumnError
	assert.ErrorAs(t, err, &missing)
}

func rowByFIPS(t *testing.T, tbl *table.Table, fips string) int {
	t.Helper()
	for i := 0; i < tbl.NumRows(); i++ {
		if tbl.Value(i, "county_fips").Text() == fips {
			return i
		}
	}
	t.Fatalf("no row with fips %s", fips)
	return -1
}
