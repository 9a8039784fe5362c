package shapes

import (
	"context"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"
	"go.uber.org/zap"

	"github.com/saumyabhardwaj17/AM10-LBS-Group6-MAM26/internal/fetcher"
	"github.com/saumyabhardwaj17/AM10-LBS-Group6-MAM26/internal/transform"
)

// droppedCountyStates are territory state FIPS codes excluded from the
// county map.
var droppedCountyStates = map[string]bool{"78": true}

// droppedStateAbbrevs are territories excluded from the state label layer.
var droppedStateAbbrevs = map[string]bool{"AS": true, "GU": true, "MP": true, "VI": true}

// County is one county boundary with its canonical join key.
type County struct {
	GEOID    string
	Name     string
	StateFP  string
	Geometry *geom.MultiPolygon
}

// State is one state's label anchor.
type State struct {
	Abbrev   string
	Centroid geom.Coord
}

// LoadCounties downloads and parses the county boundary file. The GEOID is
// rebuilt from the STATEFP and COUNTYFP attributes with explicit
// zero-padding rather than trusted from the file, and territory records are
// dropped.
func LoadCounties(ctx context.Context, f fetcher.Fetcher, url, cacheDir string) ([]County, error) {
	shpPath, err := Fetch(ctx, f, url, cacheDir)
	if err != nil {
		return nil, err
	}

	reader, err := shp.Open(shpPath)
	if err != nil {
		return nil, eris.Wrapf(err, "shapes: open shapefile %s", shpPath)
	}
	defer func() { _ = reader.Close() }()

	fieldIdx := fieldIndexes(reader)
	stateIdx, okState := fieldIdx["statefp"]
	countyIdx, okCounty := fieldIdx["countyfp"]
	nameIdx, okName := fieldIdx["name"]
	if !okState || !okCounty || !okName {
		return nil, eris.New("shapes: county shapefile missing STATEFP/COUNTYFP/NAME fields")
	}

	var counties []County
	var skipped int
	for reader.Next() {
		_, shape := reader.Shape()

		stateFP := transform.NormalizeFIPSState(attribute(reader, stateIdx))
		if droppedCountyStates[stateFP] {
			continue
		}

		geoid := transform.CombineFIPS(stateFP, attribute(reader, countyIdx))
		if geoid == "" {
			skipped++
			continue
		}

		poly, ok := shape.(*shp.Polygon)
		if !ok {
			skipped++
			continue
		}
		mp := multiPolygon(poly)
		if mp == nil {
			skipped++
			continue
		}

		counties = append(counties, County{
			GEOID:    geoid,
			Name:     attribute(reader, nameIdx),
			StateFP:  stateFP,
			Geometry: mp,
		})
	}

	if skipped > 0 {
		zap.L().Debug("shapes: skipped county records", zap.Int("skipped", skipped))
	}

	return counties, nil
}

// LoadStates downloads and parses the state boundary file, returning one
// label anchor per state at the polygon centroid. States whose centroid
// cannot be computed are skipped; the map simply renders without that
// label.
func LoadStates(ctx context.Context, f fetcher.Fetcher, url, cacheDir string) ([]State, error) {
	shpPath, err := Fetch(ctx, f, url, cacheDir)
	if err != nil {
		return nil, err
	}

	reader, err := shp.Open(shpPath)
	if err != nil {
		return nil, eris.Wrapf(err, "shapes: open shapefile %s", shpPath)
	}
	defer func() { _ = reader.Close() }()

	fieldIdx := fieldIndexes(reader)
	abbrevIdx, ok := fieldIdx["stusps"]
	if !ok {
		return nil, eris.New("shapes: state shapefile missing STUSPS field")
	}

	var states []State
	for reader.Next() {
		_, shape := reader.Shape()

		abbrev := attribute(reader, abbrevIdx)
		if abbrev == "" || droppedStateAbbrevs[abbrev] {
			continue
		}

		poly, ok := shape.(*shp.Polygon)
		if !ok {
			continue
		}
		mp := multiPolygon(poly)
		if mp == nil {
			continue
		}

		centroid, err := xy.Centroid(mp)
		if err != nil {
			zap.L().Warn("shapes: could not compute state centroid, label skipped",
				zap.String("state", abbrev),
				zap.Error(err),
			)
			continue
		}

		states = append(states, State{Abbrev: abbrev, Centroid: centroid})
	}

	return states, nil
}

// fieldIndexes builds a lowercase field name → index map.
func fieldIndexes(reader *shp.Reader) map[string]int {
	fields := reader.Fields()
	idx := make(map[string]int, len(fields))
	for i, f := range fields {
		name := strings.TrimRight(f.String(), "\x00")
		idx[strings.ToLower(name)] = i
	}
	return idx
}

func attribute(reader *shp.Reader, idx int) string {
	val := strings.TrimRight(reader.Attribute(idx), "\x00")
	return strings.TrimSpace(val)
}
