package characters

import (
	"bytes"
	"context"
	"fmt"
	"github.com/OPSAF/Anime/internal/errors"
	"github.com/OPSAF/Anime/internal/game"
	"github.com/OPSAF/Anime/internal/logging"
	"github.com/OPSAF/Anime/internal/models"
	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"log/slog"
	"net/url"
	"strings"
	"time"
)

// TraceEntry records one step of a scrape for the debug panel.
type TraceEntry struct {
	Step     string `json:"step"`
	URL      string `json:"url,omitempty"`
	Selector string `json:"selector,omitempty"`
	Count    int    `json:"count"`
	Error    string `json:"error,omitempty"`
}

// ScraperConfig controls where and how politely the scraper fetches.
type ScraperConfig struct {
	// URLs are the listing pages, tried in order until one yields listing items.
	URLs           []string
	ListingTimeout time.Duration
	DetailTimeout  time.Duration
	// Delay is waited before every request except the first.
	Delay       time.Duration
	MaxListings int
	PerListing  int
}

// DefaultScraperConfig targets the bangumi.tv anime browser.
var DefaultScraperConfig = ScraperConfig{
	URLs: []string{
		"https://bangumi.tv/anime/browser?sort=hot",
		"https://bangumi.tv/anime/browser?sort=rank",
	},
	ListingTimeout: 20 * time.Second, //nolint:mnd // listing pages are large
	DetailTimeout:  10 * time.Second, //nolint:mnd // detail pages are small
	Delay:          2 * time.Second,  //nolint:mnd // be gentle with the source
	MaxListings:    10,               //nolint:mnd // observed cap
	PerListing:     3,                //nolint:mnd // observed cap
}

// ScrapeResult is the outcome of a scrape together with its trace.
type ScrapeResult struct {
	Characters []models.Character
	Trace      []TraceEntry
}

// Scraper extracts characters from listing and detail pages.
type Scraper struct {
	fetcher Fetcher
	cfg     ScraperConfig
	logger  *slog.Logger
	tracer  trace.Tracer
}

func NewScraper(fetcher Fetcher, cfg ScraperConfig, logger *slog.Logger) *Scraper {
	return &Scraper{
		fetcher: fetcher,
		cfg:     cfg,
		logger:  logger.With(slog.String("source", "Scraper")),
		tracer:  otel.Tracer("github.com/OPSAF/Anime/internal/characters"),
	}
}

// rule pairs a selector strategy with the extractor applied to its matches. Extractors return [ErrNoMatch] to
// pass on to the next rule.
type rule[T any] struct {
	selector string
	extract  func(*goquery.Selection) (T, error)
}

// firstMatch tries rules in order and returns the first extracted value and the selector that produced it.
func firstMatch[T any](root *goquery.Selection, rules []rule[T]) (T, string, error) {
	var zero T
	for _, r := range rules {
		sel := root.Find(r.selector)
		if sel.Length() == 0 {
			continue
		}
		v, err := r.extract(sel)
		if errors.Is(err, ErrNoMatch) {
			continue
		}
		if err != nil {
			return zero, r.selector, err
		}
		return v, r.selector, nil
	}
	return zero, "", ErrNoMatch
}

func all(sel *goquery.Selection) (*goquery.Selection, error) {
	return sel, nil
}

func firstText(sel *goquery.Selection) (string, error) {
	for i := range sel.Length() {
		if text := strings.TrimSpace(sel.Eq(i).Text()); text != "" {
			return text, nil
		}
	}
	return "", ErrNoMatch
}

type link struct {
	title string
	href  string
}

func firstLink(sel *goquery.Selection) (link, error) {
	for i := range sel.Length() {
		a := sel.Eq(i)
		title := strings.TrimSpace(a.Text())
		href, ok := a.Attr("href")
		if title != "" && ok && href != "" {
			return link{title: title, href: href}, nil
		}
	}
	return link{}, ErrNoMatch
}

var (
	listingRules = []rule[*goquery.Selection]{
		{selector: ".subjectItem", extract: all},
		{selector: ".item", extract: all},
		{selector: ".browserItem", extract: all},
		{selector: ".subject", extract: all},
		{selector: "div[class*='subject']", extract: all},
		{selector: "li[class*='item']", extract: all},
	}
	titleRules = []rule[link]{
		{selector: "h3 a", extract: firstLink},
		{selector: ".title a", extract: firstLink},
		{selector: "a[href*='/subject/']", extract: firstLink},
	}
	characterRules = []rule[*goquery.Selection]{
		{selector: "#browserItemList .light_odd", extract: all},
		{selector: "#browserItemList .dark_odd", extract: all},
		{selector: ".characters .item", extract: all},
		{selector: ".person", extract: all},
		{selector: "[class*='character']", extract: all},
	}
	nameRules = []rule[string]{
		{selector: ".name a", extract: firstText},
		{selector: "a[href*='/character/']", extract: firstText},
		{selector: "a[href*='/person/']", extract: firstText},
	}
	descriptionRules = []rule[string]{
		{selector: ".info", extract: firstText},
		{selector: ".bio", extract: firstText},
		{selector: ".summary", extract: firstText},
	}
)

type scrapeRun struct {
	*Scraper
	trace    []TraceEntry
	requests int
}

func (r *scrapeRun) record(ctx context.Context, entry TraceEntry) {
	r.trace = append(r.trace, entry)
	attrs := []slog.Attr{
		slog.String("step", entry.Step),
		slog.String("url", entry.URL),
		slog.String("selector", entry.Selector),
		slog.Int("count", entry.Count),
	}
	if entry.Error != "" {
		attrs = append(attrs, slog.String("error", entry.Error))
	}
	r.logger.LogAttrs(ctx, slog.LevelDebug, "scrape step", attrs...)
}

// wait sleeps for the configured delay unless this is the first request or ctx ends first.
func (r *scrapeRun) wait(ctx context.Context) error {
	r.requests++
	if r.requests == 1 || r.cfg.Delay <= 0 {
		return nil
	}
	timer := time.NewTimer(r.cfg.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return errors.Wrap(errors.Join(ErrNetwork, ctx.Err()), "wait between requests")
	case <-timer.C:
		return nil
	}
}

func (r *scrapeRun) fetchDoc(ctx context.Context, pageURL string, timeout time.Duration) (*goquery.Document, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	ctx, span := r.tracer.Start(ctx, "characters.fetch", trace.WithAttributes(attribute.String("url.full", pageURL)))
	defer span.End()

	body, err := r.fetcher.Fetch(ctx, pageURL, timeout)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		return nil, errors.Wrap(err, "fetch page")
	}
	span.SetAttributes(attribute.Int("http.response.body.size", len(body)))
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "parse failed")
		return nil, errors.Wrap(errors.Join(ErrParse, err), "parse page", slog.String("url", pageURL))
	}
	return doc, nil
}

// Scrape fetches listing pages in order and extracts characters from the detail page of every listed work. It
// fails with [ErrNetwork], [ErrParse] or [ErrEmptyResult]; the trace is returned in every case.
func (s *Scraper) Scrape(ctx context.Context) (ScrapeResult, error) {
	ctx, span := s.tracer.Start(ctx, "characters.scrape")
	defer span.End()

	run := &scrapeRun{Scraper: s}
	var lastErr error = ErrEmptyResult
	for _, listingURL := range s.cfg.URLs {
		listingCtx := logging.WithAttrs(ctx, slog.String("listing", listingURL))
		chars, err := run.scrapeListing(listingCtx, listingURL)
		if err != nil {
			lastErr = err
			continue
		}
		// The first listing page with items decides the result, like a browser user would stop there.
		span.SetAttributes(attribute.Int("characters.count", len(chars)))
		if len(chars) == 0 {
			return ScrapeResult{Trace: run.trace}, errors.Wrap(ErrEmptyResult, "scrape",
				slog.String("url", listingURL))
		}
		return ScrapeResult{Characters: chars, Trace: run.trace}, nil
	}
	span.SetStatus(codes.Error, "no listing page yielded items")
	return ScrapeResult{Trace: run.trace}, errors.Wrap(lastErr, "scrape")
}

func (r *scrapeRun) scrapeListing(ctx context.Context, listingURL string) ([]models.Character, error) {
	doc, err := r.fetchDoc(ctx, listingURL, r.cfg.ListingTimeout)
	if err != nil {
		r.record(ctx, TraceEntry{Step: "listing", URL: listingURL, Error: err.Error()})
		return nil, err
	}
	items, selector, err := firstMatch(doc.Selection, listingRules)
	if err != nil {
		r.record(ctx, TraceEntry{Step: "listing", URL: listingURL, Error: "no listing selector matched"})
		return nil, errors.Wrap(ErrParse, "select listing items", slog.String("url", listingURL))
	}
	r.record(ctx, TraceEntry{Step: "listing", URL: listingURL, Selector: selector, Count: items.Length()})

	base, err := url.Parse(listingURL)
	if err != nil {
		return nil, errors.Wrap(errors.Join(ErrParse, err), "parse listing url")
	}

	var (
		chars []models.Character
		seen  = make(map[string]bool)
	)
	for i := range min(items.Length(), r.cfg.MaxListings) {
		if err = ctx.Err(); err != nil {
			break
		}
		title, _, err := firstMatch(items.Eq(i), titleRules)
		if err != nil {
			r.record(ctx, TraceEntry{Step: "title", URL: listingURL, Error: fmt.Sprintf("item %d has no title", i)})
			continue
		}
		detailURL, ok := resolve(base, title.href)
		if !ok {
			r.record(ctx, TraceEntry{Step: "title", URL: title.href, Error: "unsupported link"})
			continue
		}
		for _, c := range r.scrapeDetail(ctx, title.title, detailURL) {
			key := game.NormalizeAnswer(c.Name)
			if seen[key] {
				continue
			}
			seen[key] = true
			chars = append(chars, c)
		}
	}
	return chars, nil
}

func (r *scrapeRun) scrapeDetail(ctx context.Context, anime, detailURL string) []models.Character {
	doc, err := r.fetchDoc(ctx, detailURL, r.cfg.DetailTimeout)
	if err != nil {
		r.record(ctx, TraceEntry{Step: "detail", URL: detailURL, Error: err.Error()})
		return nil
	}
	elements, selector, err := firstMatch(doc.Selection, characterRules)
	if err != nil {
		r.record(ctx, TraceEntry{Step: "detail", URL: detailURL, Error: "no character selector matched"})
		return nil
	}

	var chars []models.Character
	for i := 0; i < elements.Length() && len(chars) < r.cfg.PerListing; i++ {
		el := elements.Eq(i)
		name, _, err := firstMatch(el, nameRules)
		if err != nil || models.IsPlaceholderName(name) {
			continue
		}
		hint, _, err := firstMatch(el, descriptionRules)
		if err != nil {
			hint = fmt.Sprintf("A character from %s", anime)
		}
		chars = append(chars, models.Character{
			Name:   name,
			Anime:  animeTitle(anime),
			Hint:   models.TruncateHint(hint),
			URL:    detailURL,
			Source: models.ProvenanceScraped,
		})
	}
	r.record(ctx, TraceEntry{Step: "detail", URL: detailURL, Selector: selector, Count: len(chars)})
	return chars
}

func animeTitle(title string) string {
	if title = strings.TrimSpace(title); title == "" {
		return models.UnknownWork
	}
	return title
}

// resolve turns a possibly relative href into an absolute http(s) URL.
func resolve(base *url.URL, href string) (string, bool) {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", false
	}
	abs := base.ResolveReference(ref)
	if abs.Scheme != "http" && abs.Scheme != "https" {
		return "", false
	}
	return abs.String(), true
}
