package worldbank

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestIndicatorPagination(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/country/all/indicator/NY.GDP.PCAP.PP.KD", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "1990:2023", r.URL.Query().Get("date"))

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("page") {
		case "1":
			fmt.Fprint(w, `[
				{"page":1,"pages":2,"total":4},
				[
					{"countryiso3code":"FRA","date":"2020","value":42000.5,"country":{"id":"FR","value":"France"}},
					{"countryiso3code":"FRA","date":"2019","value":null,"country":{"id":"FR","value":"France"}}
				]
			]`)
		case "2":
			fmt.Fprint(w, `[
				{"page":2,"pages":2,"total":4},
				[
					{"countryiso3code":"NOR","date":"YR2020","value":61000,"country":{"id":"NO","value":"Norway"}},
					{"countryiso3code":"","date":"2020","value":12345,"country":{"id":"ZH","value":"Africa Eastern"}}
				]
			]`)
		default:
			t.Errorf("unexpected page %q", r.URL.Query().Get("page"))
		}
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	tbl, err := c.Indicator(context.Background(), GDPPerCapitaPPP, "GDPpercap", 1990, 2023)
	require.NoError(t, err)

	assert.Equal(t, []string{"iso_code", "year", "GDPpercap"}, tbl.Columns())
	// Null values and aggregate rows without an ISO code drop.
	require.Equal(t, 2, tbl.NumRows())

	assert.Equal(t, "FRA", tbl.Value(0, "iso_code").Text())
	y, _ := tbl.Float(0, "year")
	assert.Equal(t, 2020.0, y)
	v, _ := tbl.Float(0, "GDPpercap")
	assert.Equal(t, 42000.5, v)

	// "YR2020" style dates parse too.
	assert.Equal(t, "NOR", tbl.Value(1, "iso_code").Text())
	y, _ = tbl.Float(1, "year")
	assert.Equal(t, 2020.0, y)
}

func TestIndicatorWarnsOnPageLimitTruncation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("page") {
		case "1":
			// Claims far more pages than the client will fetch.
			fmt.Fprint(w, `[
				{"page":1,"pages":5000,"total":5000000},
				[{"countryiso3code":"FRA","date":"2020","value":1,"country":{"id":"FR","value":"France"}}]
			]`)
		default:
			fmt.Fprint(w, `[
				{"page":2,"pages":2,"total":2},
				[]
			]`)
		}
	}))
	defer srv.Close()

	core, logs := observer.New(zap.WarnLevel)
	prev := zap.L()
	zap.ReplaceGlobals(zap.New(core))
	defer zap.ReplaceGlobals(prev)

	c := NewClient(WithBaseURL(srv.URL))
	tbl, err := c.Indicator(context.Background(), GDPPerCapitaPPP, "GDPpercap", 1990, 2023)
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.NumRows())

	truncated := logs.FilterMessageSnippet("truncated")
	require.Equal(t, 1, truncated.Len())
	assert.Equal(t, int64(5000), truncated.All()[0].ContextMap()["pages"])
}

func TestIndicatorErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Invalid-indicator responses are a one-element array.
		fmt.Fprint(w, `[{"message":[{"id":"120","value":"Invalid indicator"}]}]`)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	_, err := c.Indicator(context.Background(), "BOGUS", "x", 1990, 2023)
	assert.Error(t, err)
}

func TestIndicatorHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	_, err := c.Indicator(context.Background(), GDPPerCapitaPPP, "x", 1990, 2023)
	assert.Error(t, err)
}
