package main

import (
	"context"
	"github.com/OPSAF/Anime/internal/characters"
	"github.com/OPSAF/Anime/internal/e2etest"
	"github.com/OPSAF/Anime/internal/testhelpers"
	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/url"
	"strings"
	"testing"
)

func testEnviron() map[string]string {
	return map[string]string{
		"ANIME_ADDR":           "localhost:0",
		"ANIME_SCRAPE_ENABLED": "false",
		"ANIME_LOG_LEVEL":      "DEBUG",
	}
}

// startTestServer runs the application on a random port until the test finishes.
func startTestServer(t *testing.T) *e2etest.Server {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	server, err := e2etest.StartServer(ctx, testhelpers.LogWriter(t), testEnviron(), run)
	require.NoError(t, err)
	return server
}

// backupNames maps the work of every bundled character to its name. Each bundled character comes from a
// different work, so the first hint gives the answer away.
func backupNames(t *testing.T) map[string]string {
	t.Helper()
	names := make(map[string]string)
	for _, c := range characters.Backup().Characters {
		_, dup := names[c.Anime]
		require.False(t, dup, "duplicate work %s", c.Anime)
		names[c.Anime] = c.Name
	}
	return names
}

// hintText returns the text of the hint of tier without its label.
func hintText(doc *goquery.Document, tier string) string {
	li := doc.Find("ol.hints li[data-hint-tier='" + tier + "']").First().Clone()
	li.Find("span.label").Remove()
	return strings.TrimSpace(li.Text())
}

// currentAnswer looks up the name of the character of the round shown in doc.
func currentAnswer(t *testing.T, doc *goquery.Document) string {
	t.Helper()
	anime := hintText(doc, "0")
	name, ok := backupNames(t)[anime]
	require.True(t, ok, "no bundled character from %q", anime)
	return name
}

func messages(doc *goquery.Document) []string {
	var texts []string
	doc.Find("li.message").Each(func(_ int, s *goquery.Selection) {
		texts = append(texts, strings.TrimSpace(s.Text()))
	})
	return texts
}

func text(doc *goquery.Document, selector string) string {
	return strings.TrimSpace(doc.Find(selector).First().Text())
}

// startGame opens the home page and starts a game in mode.
func startGame(ctx context.Context, t *testing.T, client *e2etest.Client, mode string) *goquery.Document {
	t.Helper()
	doc, err := client.GetDoc(ctx, "/")
	require.NoError(t, err)
	doc, err = client.SubmitForm(ctx, doc, "/game/start", url.Values{"mode": {mode}})
	require.NoError(t, err)
	return doc
}

// postFragment submits a form the way htmx does and returns the board fragment.
func postFragment(
	ctx context.Context,
	t *testing.T,
	client *e2etest.Client,
	doc *goquery.Document,
	action string,
	fields url.Values,
) *goquery.Document {
	t.Helper()
	resp, err := client.PostForm(ctx, doc, action, fields, http.Header{"Hx-Request": {"true"}})
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	fragment, err := goquery.NewDocumentFromReader(resp.Body)
	require.NoError(t, err)
	return fragment
}
