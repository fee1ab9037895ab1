package main

import (
	"context"
	"github.com/OPSAF/Anime/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/url"
	"testing"
)

func TestCharacters(t *testing.T) {
	ctx := context.Background()
	server := startTestServer(t)
	client := server.Client()

	doc, err := client.GetDoc(ctx, "/characters")
	require.NoError(t, err)
	assert.Equal(t, "10", text(doc, "#character-count"))
	assert.Equal(t, "10", text(doc, "#work-count"))
	assert.Equal(t, "backup", text(doc, "#source"))
	assert.Equal(t, 10, doc.Find("tr.character").Length())
	assert.Equal(t, "page", doc.Find("nav a[href='/characters']").AttrOr("aria-current", ""))

	var list characterList
	status, err := client.GetJSON(ctx, "/api/characters", &list)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, models.ProvenanceBackup, list.Source)
	assert.Equal(t, 10, list.Count)
	assert.Len(t, list.Characters, 10)
	assert.Contains(t, models.Pool{Source: list.Source, Characters: list.Characters}.Names(), "C.C.")
}

func TestData(t *testing.T) {
	ctx := context.Background()
	server := startTestServer(t)
	client := server.Client()

	doc, err := client.GetDoc(ctx, "/")
	require.NoError(t, err)

	doc, err = client.SubmitForm(ctx, doc, "/data/refresh", nil)
	require.NoError(t, err)
	assert.Contains(t, messages(doc), "Fetching is disabled, playing with 10 bundled characters.")

	doc, err = client.SubmitForm(ctx, doc, "/data/backup", nil)
	require.NoError(t, err)
	assert.Contains(t, messages(doc), "Switched to 10 bundled characters.")

	var status dataStatusResponse
	code, err := client.GetJSON(ctx, "/api/data", &status)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, code)
	assert.False(t, status.Enabled)
	assert.False(t, status.Loading)
	assert.Zero(t, status.ScrapedCount)
	assert.Nil(t, status.FetchedAt)
	assert.NotNil(t, status.Trace)
}

func TestDebugToggle(t *testing.T) {
	ctx := context.Background()
	server := startTestServer(t)
	client := server.Client()

	doc, err := client.GetDoc(ctx, "/")
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Find("#debug").Length())

	doc, err = client.SubmitForm(ctx, doc, "/debug/toggle", url.Values{})
	require.NoError(t, err)
	require.Equal(t, 1, doc.Find("#debug").Length())
	assert.Equal(t, "false", text(doc, "#debug dd"), "fetching is disabled in tests")
	assert.Equal(t, 1, doc.Find("#debug table.trace").Length())

	// The panel stays open until toggled again.
	doc, err = client.GetDoc(ctx, "/")
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Find("#debug").Length())

	doc, err = client.SubmitForm(ctx, doc, "/debug/toggle", url.Values{})
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Find("#debug").Length())
}
