package characters_test

import (
	"context"
	"github.com/OPSAF/Anime/internal/characters"
	"github.com/OPSAF/Anime/internal/models"
	"github.com/OPSAF/Anime/internal/testhelpers"
	"github.com/stretchr/testify/require"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

// newSource serves the fixture pages. pages maps a request path to a file in testdata or to "" for a 500.
func newSource(t *testing.T, pages map[string]string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		file, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		if file == "" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		body, err := os.ReadFile(filepath.Join("testdata", file))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

var fixturePages = map[string]string{
	"/anime/browser": "listing.html",
	"/subject/1":     "subject1.html",
	"/subject/2":     "subject2.html",
	"/subject/3":     "subject3.html",
	"/broken":        "",
	"/maintenance":   "empty.html",
}

func testScraperConfig(urls ...string) characters.ScraperConfig {
	return characters.ScraperConfig{
		URLs:           urls,
		ListingTimeout: 2 * time.Second,
		DetailTimeout:  2 * time.Second,
		Delay:          time.Millisecond,
		MaxListings:    10,
		PerListing:     3,
	}
}

func newScraper(cfg characters.ScraperConfig) *characters.Scraper {
	return characters.NewScraper(characters.NewHTTPFetcher(""), cfg, testhelpers.NewLogger(io.Discard))
}

func names(chars []models.Character) []string {
	out := make([]string, 0, len(chars))
	for _, c := range chars {
		out = append(out, c.Name)
	}
	return out
}

func TestScraper_Scrape(t *testing.T) {
	t.Parallel()
	srv, _ := newSource(t, fixturePages)
	scraper := newScraper(testScraperConfig(srv.URL + "/anime/browser?sort=hot"))

	res, err := scraper.Scrape(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"Frieren", "Fern", "Stark", "Laios Touden"}, names(res.Characters))

	frieren := res.Characters[0]
	require.Equal(t, "Frieren", frieren.Anime)
	require.Equal(t, "An elf mage who outlived her party", frieren.Hint)
	require.Equal(t, srv.URL+"/subject/1", frieren.URL)
	require.Equal(t, models.ProvenanceScraped, frieren.Source)
	require.Equal(t, "A character from Frieren", res.Characters[1].Hint)
	require.Equal(t, "Dungeon Meshi", res.Characters[3].Anime)

	require.NotEmpty(t, res.Trace)
	require.Equal(t, "listing", res.Trace[0].Step)
	require.Equal(t, ".item", res.Trace[0].Selector)
	require.Equal(t, 4, res.Trace[0].Count)
}

func TestScraper_capsListings(t *testing.T) {
	t.Parallel()
	srv, hits := newSource(t, fixturePages)
	cfg := testScraperConfig(srv.URL + "/anime/browser")
	cfg.MaxListings = 1
	cfg.PerListing = 2

	res, err := newScraper(cfg).Scrape(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"Frieren", "Fern"}, names(res.Characters))
	require.Equal(t, int32(2), hits.Load(), "one listing and one detail request")
}

func TestScraper_fallsThroughURLs(t *testing.T) {
	t.Parallel()
	srv, _ := newSource(t, fixturePages)
	scraper := newScraper(testScraperConfig(srv.URL+"/broken", srv.URL+"/anime/browser"))

	res, err := scraper.Scrape(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Characters, 4)
	require.Equal(t, srv.URL+"/broken", res.Trace[0].URL)
	require.NotEmpty(t, res.Trace[0].Error)
}

func TestScraper_errors(t *testing.T) {
	t.Parallel()
	srv, _ := newSource(t, map[string]string{
		"/broken":      "",
		"/maintenance": "empty.html",
		"/placeholder": "listing.html",
		"/subject/1":   "subject3.html",
		"/subject/2":   "subject3.html",
		"/subject/3":   "subject3.html",
	})

	tests := []struct {
		name    string
		urls    []string
		wantErr error
	}{
		{name: "network", urls: []string{srv.URL + "/broken", srv.URL + "/missing"}, wantErr: characters.ErrNetwork},
		{name: "parse", urls: []string{srv.URL + "/maintenance"}, wantErr: characters.ErrParse},
		{name: "empty", urls: []string{srv.URL + "/placeholder"}, wantErr: characters.ErrEmptyResult},
		{name: "no urls", urls: nil, wantErr: characters.ErrEmptyResult},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res, err := newScraper(testScraperConfig(tt.urls...)).Scrape(context.Background())
			require.ErrorIs(t, err, tt.wantErr)
			require.Empty(t, res.Characters)
		})
	}
}

func TestScraper_delayHonoursContext(t *testing.T) {
	t.Parallel()
	srv, _ := newSource(t, fixturePages)
	cfg := testScraperConfig(srv.URL + "/anime/browser")
	cfg.Delay = time.Hour

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	start := time.Now()
	_, err := newScraper(cfg).Scrape(ctx)
	require.Error(t, err)
	require.Less(t, time.Since(start), 5*time.Second)
}

func TestHTTPFetcher_sendsBrowserHeaders(t *testing.T) {
	t.Parallel()
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		_, _ = w.Write([]byte("<html></html>"))
	}))
	t.Cleanup(srv.Close)

	body, err := characters.NewHTTPFetcher("").Fetch(context.Background(), srv.URL, time.Second)
	require.NoError(t, err)
	require.Equal(t, "<html></html>", string(body))
	require.Equal(t, characters.DefaultUserAgent, got.Get("User-Agent"))
	require.Contains(t, got.Get("Accept-Language"), "zh-CN")
}

func TestHTTPFetcher_status(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	t.Cleanup(srv.Close)

	_, err := characters.NewHTTPFetcher("bot").Fetch(context.Background(), srv.URL, time.Second)
	require.ErrorIs(t, err, characters.ErrNetwork)
}
