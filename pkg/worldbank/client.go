// Package worldbank is a minimal client for the World Bank indicator API,
// covering only the paged indicator query this dashboard needs.
package worldbank

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/saumyabhardwaj17/AM10-LBS-Group6-MAM26/internal/table"
)

// GDPPerCapitaPPP is GDP per capita in PPP-adjusted constant international
// dollars.
const GDPPerCapitaPPP = "NY.GDP.PCAP.PP.KD"

const (
	defaultBaseURL = "https://api.worldbank.org/v2"
	perPage        = 1000
	maxPages       = 200
)

// Client queries the World Bank v2 API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// NewClient creates a World Bank API client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		limiter:    rate.NewLimiter(5, 5),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// indicatorRow is one observation in the API response. Value is a pointer:
// the API reports missing observations as explicit nulls.
type indicatorRow struct {
	CountryISO3 string   `json:"countryiso3code"`
	Date        string   `json:"date"`
	Value       *float64 `json:"value"`
	Country     struct {
		ID    string `json:"id"`
		Value string `json:"value"`
	} `json:"country"`
}

type pageMeta struct {
	Page  int `json:"page"`
	Pages int `json:"pages"`
	Total int `json:"total"`
}

// Indicator fetches all observations of one indicator for all countries over
// the given year range. The result table has columns iso_code, year, and the
// indicator's output column name.
func (c *Client) Indicator(ctx context.Context, indicator, outCol string, startYear, endYear int) (*table.Table, error) {
	out, err := table.New("iso_code", "year", outCol)
	if err != nil {
		return nil, err
	}

	for page := 1; page <= maxPages; page++ {
		meta, rows, err := c.fetchPage(ctx, indicator, startYear, endYear, page)
		if err != nil {
			return nil, err
		}

		if page == 1 && meta.Pages > maxPages {
			zap.L().Warn("worldbank: indicator exceeds page limit, result truncated",
				zap.String("indicator", indicator),
				zap.Int("pages", meta.Pages),
				zap.Int("max_pages", maxPages),
			)
		}

		for _, r := range rows {
			if r.Value == nil {
				continue
			}
			iso := strings.TrimSpace(r.CountryISO3)
			if iso == "" {
				continue
			}
			// Some responses use "YR2019" style dates.
			yearStr := strings.TrimPrefix(r.Date, "YR")
			yr, ok := table.String(yearStr).Float()
			if !ok {
				continue
			}
			if err := out.Append(table.String(iso), table.Number(yr), table.Number(*r.Value)); err != nil {
				return nil, err
			}
		}

		if page >= meta.Pages {
			break
		}
	}

	zap.L().Debug("worldbank indicator fetched",
		zap.String("indicator", indicator),
		zap.Int("rows", out.NumRows()),
	)

	return out, nil
}

func (c *Client) fetchPage(ctx context.Context, indicator string, startYear, endYear, page int) (*pageMeta, []indicatorRow, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, nil, eris.Wrap(err, "worldbank: rate limit")
	}

	reqURL := fmt.Sprintf("%s/country/all/indicator/%s?format=json&date=%d:%d&per_page=%d&page=%d",
		c.baseURL, indicator, startYear, endYear, perPage, page)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, nil, eris.Wrap(err, "worldbank: build request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "worldbank: fetch %s page %d", indicator, page)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, nil, eris.Errorf("worldbank: status %d for %s page %d", resp.StatusCode, indicator, page)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, eris.Wrap(err, "worldbank: read body")
	}

	// Responses are a two-element array: [metadata, rows]. Error responses
	// come back as a single-element array with a message object instead.
	var envelope []json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, nil, eris.Wrap(err, "worldbank: parse envelope")
	}
	if len(envelope) < 2 {
		return nil, nil, eris.Errorf("worldbank: unexpected response for %s page %d", indicator, page)
	}

	var meta pageMeta
	if err := json.Unmarshal(envelope[0], &meta); err != nil {
		return nil, nil, eris.Wrap(err, "worldbank: parse metadata")
	}

	var rows []indicatorRow
	if err := json.Unmarshal(envelope[1], &rows); err != nil {
		return nil, nil, eris.Wrap(err, "worldbank: parse rows")
	}

	return &meta, rows, nil
}
