package shapes

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiPolygonSingleRing(t *testing.T) {
	p := &shp.Polygon{
		NumParts:  1,
		NumPoints: 5,
		Parts:     []int32{0},
		Points: []shp.Point{
			{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: 0, Y: 0},
		},
	}

	mp := multiPolygon(p)
	require.NotNil(t, mp)
	assert.Equal(t, 4326, mp.SRID())
	assert.Equal(t, 1, mp.NumPolygons())

	coords := mp.Polygon(0).LinearRing(0).FlatCoords()
	assert.Equal(t, []float64{0, 0, 1, 0, 1, 1, 0, 1, 0, 0}, coords)
}

func TestMultiPolygonMultiPart(t *testing.T) {
	p := &shp.Polygon{
		NumParts:  2,
		NumPoints: 8,
		Parts:     []int32{0, 4},
		Points: []shp.Point{
			{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 0},
			{X: 5, Y: 5}, {X: 6, Y: 5}, {X: 6, Y: 6}, {X: 5, Y: 5},
		},
	}

	mp := multiPolygon(p)
	require.NotNil(t, mp)
	assert.Equal(t, 2, mp.NumPolygons())
}

func TestMultiPolygonEmpty(t *testing.T) {
	assert.Nil(t, multiPolygon(nil))
	assert.Nil(t, multiPolygon(&shp.Polygon{}))
}

func TestExtractZIPFlattensEntries(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "bundle.zip")

	f, err := os.Create(zipPath)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, content := range map[string]string{
		"cb_2024_us_county_20m.shp":        "shape bytes",
		"nested/cb_2024_us_county_20m.dbf": "attr bytes",
	} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	destDir := filepath.Join(dir, "out")
	require.NoError(t, os.MkdirAll(destDir, 0o755))
	require.NoError(t, extractZIP(zipPath, destDir))

	// Nested entries land flat in the destination.
	_, err = os.Stat(filepath.Join(destDir, "cb_2024_us_county_20m.dbf"))
	assert.NoError(t, err)

	shpPath, err := findFileByExt(destDir, ".shp")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(destDir, "cb_2024_us_county_20m.shp"), shpPath)
}

func TestFindFileByExtMissing(t *testing.T) {
	_, err := findFileByExt(t.TempDir(), ".shp")
	assert.Error(t, err)
}
