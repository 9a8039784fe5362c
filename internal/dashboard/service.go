// Package dashboard wires the data sources, derivations, and view builders
// into the operations the CLI and HTTP API expose. Every operation memoizes
// its expensive inputs in the session cache, so repeated view requests after
// the first do no file or network work.
package dashboard

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/saumyabhardwaj17/AM10-LBS-Group6-MAM26/internal/cache"
	"github.com/saumyabhardwaj17/AM10-LBS-Group6-MAM26/internal/config"
	"github.com/saumyabhardwaj17/AM10-LBS-Group6-MAM26/internal/election"
	"github.com/saumyabhardwaj17/AM10-LBS-Group6-MAM26/internal/energy"
	"github.com/saumyabhardwaj17/AM10-LBS-Group6-MAM26/internal/fetcher"
	"github.com/saumyabhardwaj17/AM10-LBS-Group6-MAM26/internal/shapes"
	"github.com/saumyabhardwaj17/AM10-LBS-Group6-MAM26/internal/table"
	"github.com/saumyabhardwaj17/AM10-LBS-Group6-MAM26/internal/transform"
	"github.com/saumyabhardwaj17/AM10-LBS-Group6-MAM26/internal/view"
	"github.com/saumyabhardwaj17/AM10-LBS-Group6-MAM26/pkg/owid"
	"github.com/saumyabhardwaj17/AM10-LBS-Group6-MAM26/pkg/worldbank"
)

// Transform versions for cache keys. Bump a version when the corresponding
// derivation changes so stale entries cannot be served to new code.
const (
	resultsVersion     = 1
	shapesVersion      = 1
	energyPanelVersion = 2
	gdpColumn          = "GDPpercap"
)

const (
	currentYear  = 2024
	previousYear = 2020
)

// UpstreamError marks a failure fetching an external feed, so the API layer
// can report a gateway failure instead of an internal one.
type UpstreamError struct {
	Feed string
	Err  error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream fetch failed for %s: %v", e.Feed, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Service exposes the dashboard operations.
type Service struct {
	cfg       *config.Config
	fetcher   fetcher.Fetcher
	cache     *cache.Store
	palette   energy.Palette
	owid      *owid.Client
	worldbank *worldbank.Client
}

// New builds a Service from configuration.
func New(cfg *config.Config) (*Service, error) {
	palette := energy.DefaultPalette()
	if cfg.Energy.PalettePath != "" {
		p, err := energy.LoadPalette(cfg.Energy.PalettePath)
		if err != nil {
			return nil, eris.Wrap(err, "dashboard: load palette")
		}
		palette = p
	}

	f := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{})

	return &Service{
		cfg:       cfg,
		fetcher:   f,
		cache:     cache.New(time.Duration(cfg.Cache.TTLMinutes) * time.Minute),
		palette:   palette,
		owid:      owid.NewClient(f),
		worldbank: worldbank.NewClient(worldbank.WithBaseURL(cfg.Feeds.WorldBankBaseURL)),
	}, nil
}

// Palette returns the active source color palette.
func (s *Service) Palette() energy.Palette { return s.palette }

// FlushCache drops every memoized table and view input.
func (s *Service) FlushCache() {
	s.cache.Flush()
	zap.L().Info("cache flushed")
}

// InvalidateResults drops the memoized result tables, forcing a re-read of
// the files on the next view request.
func (s *Service) InvalidateResults() {
	s.cache.Invalidate(cache.Key{Source: s.cfg.Data.Results2024, Version: resultsVersion})
	s.cache.Invalidate(cache.Key{Source: s.cfg.Data.Results2020, Version: resultsVersion})
}

// loadResults reads a results file, dispatching on extension. Cached copies
// are cloned on handout so derivations never mutate the shared table.
func (s *Service) loadResults(path string) (*table.Table, error) {
	t, err := cache.GetAs(s.cache, cache.Key{Source: path, Version: resultsVersion}, func() (*table.Table, error) {
		var t *table.Table
		var err error
		switch strings.ToLower(filepath.Ext(path)) {
		case ".xlsx":
			t, err = table.ReadXLSX(path, table.XLSXOptions{})
		default:
			t, err = table.ReadCSVFile(path)
		}
		if err != nil {
			return nil, err
		}
		table.CleanNames(t)
		return t, nil
	})
	if err != nil {
		return nil, err
	}
	return t.Clone(), nil
}

// CountyMarginMap builds the county choropleth: margins derived from the
// current-cycle results, keyed by normalized FIPS, painted onto the Census
// county boundaries.
func (s *Service) CountyMarginMap(ctx context.Context) (*view.CountyMap, error) {
	results, err := s.loadResults(s.cfg.Data.Results2024)
	if err != nil {
		return nil, eris.Wrap(err, "dashboard: load current results")
	}

	fipsCol, ok := table.Resolve(results, transform.FIPSCandidates)
	if !ok {
		return nil, table.NewMissingColumnError(results, "county FIPS", transform.FIPSCandidates...)
	}
	if err := transform.NormalizeFIPSColumn(results, fipsCol); err != nil {
		return nil, err
	}

	deriv, err := election.Derive(results, election.DefaultSpec())
	if err != nil {
		return nil, err
	}
	zap.L().Info("margin derived", zap.String("detail", deriv.Detail()))

	margins := make(map[string]float64, results.NumRows())
	for i := 0; i < results.NumRows(); i++ {
		geoid := results.Value(i, fipsCol).Text()
		if geoid == "" {
			continue
		}
		if m, ok := results.Float(i, deriv.Column); ok {
			margins[geoid] = m
		}
	}

	counties, states, err := s.boundaries(ctx)
	if err != nil {
		return nil, err
	}

	return view.BuildCountyMap(counties, margins, states)
}

// MarginShift builds the two-cycle margin scatter.
func (s *Service) MarginShift(ctx context.Context) (*view.ShiftScatter, error) {
	current, err := s.loadResults(s.cfg.Data.Results2024)
	if err != nil {
		return nil, eris.Wrap(err, "dashboard: load current results")
	}
	previous, err := s.loadResults(s.cfg.Data.Results2020)
	if err != nil {
		return nil, eris.Wrap(err, "dashboard: load previous results")
	}

	cy, err := election.CrossYearJoin(current, previous, currentYear, previousYear, election.DefaultSpec())
	if err != nil {
		return nil, err
	}

	return view.BuildMarginShift(cy, currentYear, previousYear)
}

// ElectricityMix builds the stacked percent-area chart for one country.
func (s *Service) ElectricityMix(ctx context.Context, country string) (*view.ChartConfig, error) {
	long, err := s.longGeneration(ctx)
	if err != nil {
		return nil, err
	}

	mix, err := energy.MixFor(long, country)
	if err != nil {
		return nil, err
	}

	return view.BuildMixArea(mix, s.palette), nil
}

// TopProducers builds the top-N bar chart for one source and year.
func (s *Service) TopProducers(ctx context.Context, source string, year, n int) (*view.ChartConfig, error) {
	long, err := s.longGeneration(ctx)
	if err != nil {
		return nil, err
	}

	producers, err := energy.TopProducers(long, source, year, n)
	if err != nil {
		return nil, err
	}

	return view.BuildTopBar(producers, source, year, n, s.palette), nil
}

// Countries lists the countries present in the generation panel.
func (s *Service) Countries(ctx context.Context) ([]string, error) {
	long, err := s.longGeneration(ctx)
	if err != nil {
		return nil, err
	}
	return energy.Countries(long), nil
}

// Sources lists the fuel sources with their palette colors.
func (s *Service) Sources() map[string]string {
	out := make(map[string]string, len(energy.Sources))
	for _, src := range energy.Sources {
		out[src] = s.palette.Color(src)
	}
	return out
}

// Panel returns the combined country-year panel of generation, GDP per
// capita, and CO2 per capita.
func (s *Service) Panel(ctx context.Context) (*table.Table, error) {
	key := cache.Key{Source: "energy:panel", Version: energyPanelVersion}
	t, err := cache.GetAs(s.cache, key, func() (*table.Table, error) {
		energyT, gdpT, co2T, err := s.fetchFeeds(ctx)
		if err != nil {
			return nil, err
		}
		return energy.Combine(energyT, gdpT, co2T)
	})
	if err != nil {
		return nil, err
	}
	return t.Clone(), nil
}

// longGeneration returns the long-form generation table used by the mix and
// top-producer views.
func (s *Service) longGeneration(ctx context.Context) (*table.Table, error) {
	key := cache.Key{Source: s.cfg.Feeds.EnergyURL, Version: energyPanelVersion}
	return cache.GetAs(s.cache, key, func() (*table.Table, error) {
		raw, err := s.owid.FetchTable(ctx, s.cfg.Feeds.EnergyURL)
		if err != nil {
			return nil, &UpstreamError{Feed: "energy", Err: err}
		}
		prepared, err := energy.PrepareEnergy(raw)
		if err != nil {
			return nil, err
		}
		return energy.Long(prepared)
	})
}

// fetchFeeds pulls the three external feeds concurrently.
func (s *Service) fetchFeeds(ctx context.Context) (energyT, gdpT, co2T *table.Table, err error) {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		raw, err := s.owid.FetchTable(gctx, s.cfg.Feeds.EnergyURL)
		if err != nil {
			return &UpstreamError{Feed: "energy", Err: err}
		}
		energyT, err = energy.PrepareEnergy(raw)
		return err
	})

	g.Go(func() error {
		var err error
		gdpT, err = s.worldbank.Indicator(gctx, worldbank.GDPPerCapitaPPP, gdpColumn,
			s.cfg.Feeds.StartYear, s.cfg.Feeds.EndYear)
		if err != nil {
			return &UpstreamError{Feed: "worldbank", Err: err}
		}
		return nil
	})

	g.Go(func() error {
		raw, err := s.owid.FetchTable(gctx, s.cfg.Feeds.CO2URL)
		if err != nil {
			return &UpstreamError{Feed: "co2", Err: err}
		}
		co2T, err = energy.PrepareCO2(raw)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}
	return energyT, gdpT, co2T, nil
}

// boundaries loads the county polygons and state label anchors, memoized for
// the session.
func (s *Service) boundaries(ctx context.Context) ([]shapes.County, []shapes.State, error) {
	counties, err := cache.GetAs(s.cache,
		cache.Key{Source: s.cfg.Shapes.CountyURL, Version: shapesVersion},
		func() ([]shapes.County, error) {
			c, err := shapes.LoadCounties(ctx, s.fetcher, s.cfg.Shapes.CountyURL, s.cfg.Shapes.CacheDir)
			if err != nil {
				return nil, &UpstreamError{Feed: "census counties", Err: err}
			}
			return c, nil
		})
	if err != nil {
		return nil, nil, err
	}

	states, err := cache.GetAs(s.cache,
		cache.Key{Source: s.cfg.Shapes.StateURL, Version: shapesVersion},
		func() ([]shapes.State, error) {
			st, err := shapes.LoadStates(ctx, s.fetcher, s.cfg.Shapes.StateURL, s.cfg.Shapes.CacheDir)
			if err != nil {
				return nil, &UpstreamError{Feed: "census states", Err: err}
			}
			return st, nil
		})
	if err != nil {
		return nil, nil, err
	}

	return counties, states, nil
}
