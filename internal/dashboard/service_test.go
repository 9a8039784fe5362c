package dashboard

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saumyabhardwaj17/AM10-LBS-Group6-MAM26/internal/config"
	"github.com/saumyabhardwaj17/AM10-LBS-Group6-MAM26/internal/election"
)

const results2024CSV = `state_name,county_fips,county_name,per_gop,per_dem,total_votes
Texas,48201,Harris,0.51,0.47,1600000
California,6037,Los Angeles,0.30,0.65,3500000
`

const results2020CSV = `state_name,county_fips,county_name,per_gop,per_dem,total_votes
Texas,48201,Harris,0.47,0.52,1650000
California,06037,Los Angeles,0.27,0.71,4000000
`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()

	cur := filepath.Join(dir, "2024.csv")
	prev := filepath.Join(dir, "2020.csv")
	require.NoError(t, os.WriteFile(cur, []byte(results2024CSV), 0o644))
	require.NoError(t, os.WriteFile(prev, []byte(results2020CSV), 0o644))

	return &config.Config{
		Data: config.DataConfig{Results2024: cur, Results2020: prev},
	}
}

func TestMarginShiftFromFiles(t *testing.T) {
	svc, err := New(testConfig(t))
	require.NoError(t, err)

	sc, err := svc.MarginShift(context.Background())
	require.NoError(t, err)

	require.Len(t, sc.Points, 2)

	var harris, la int
	for i, p := range sc.Points {
		switch p.County {
		case "Harris":
			harris = i
		case "Los Angeles":
			la = i
		}
	}

	assert.InDelta(t, 4.0, sc.Points[harris].Y, 1e-9)
	assert.InDelta(t, -5.0, sc.Points[harris].X, 1e-9)
	assert.Equal(t, election.WinnerA, sc.Points[harris].Winner)

	// Mixed FIPS padding across the two files still joins.
	assert.Equal(t, "06037", sc.Points[la].GEOID)
	assert.Equal(t, election.WinnerB, sc.Points[la].Winner)
}

func TestLoadResultsCachesAndClones(t *testing.T) {
	cfg := testConfig(t)
	svc, err := New(cfg)
	require.NoError(t, err)

	first, err := svc.loadResults(cfg.Data.Results2024)
	require.NoError(t, err)

	// Mutating a handout must not leak into the cached copy.
	require.NoError(t, first.Rename("per_gop", "tainted"))

	second, err := svc.loadResults(cfg.Data.Results2024)
	require.NoError(t, err)
	assert.True(t, second.Has("per_gop"))
	assert.False(t, second.Has("tainted"))
}

func TestLoadResultsCacheInvalidation(t *testing.T) {
	cfg := testConfig(t)
	svc, err := New(cfg)
	require.NoError(t, err)

	_, err = svc.loadResults(cfg.Data.Results2024)
	require.NoError(t, err)

	// Rewrite the file; a cached read will not see it until invalidation.
	require.NoError(t, os.WriteFile(cfg.Data.Results2024,
		[]byte("county_fips,per_gop,per_dem\n48201,0.9,0.1\n"), 0o644))

	cached, err := svc.loadResults(cfg.Data.Results2024)
	require.NoError(t, err)
	assert.Equal(t, 2, cached.NumRows())

	svc.InvalidateResults()

	fresh, err := svc.loadResults(cfg.Data.Results2024)
	require.NoError(t, err)
	assert.Equal(t, 1, fresh.NumRows())
}

func TestLoadResultsMissingFile(t *testing.T) {
	svc, err := New(testConfig(t))
	require.NoError(t, err)

	_, err = svc.loadResults("/nonexistent/results.csv")
	assert.Error(t, err)
}

func TestSources(t *testing.T) {
	svc, err := New(testConfig(t))
	require.NoError(t, err)

	sources := svc.Sources()
	assert.Len(t, sources, 9)
	assert.Equal(t, "#A0522D", sources["coal"])
	assert.Equal(t, "#FFA500", sources["solar"])
}

func TestUpstreamErrorUnwraps(t *testing.T) {
	inner := os.ErrDeadlineExceeded
	err := &UpstreamError{Feed: "energy", Err: inner}

	assert.Contains(t, err.Error(), "energy")
	assert.ErrorIs(t, err, inner)
}
