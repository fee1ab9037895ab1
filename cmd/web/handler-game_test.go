package main

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/url"
	"strings"
	"testing"
)

func TestHome(t *testing.T) {
	ctx := context.Background()
	server := startTestServer(t)
	client := server.Client()

	resp, err := client.Get(ctx, "/")
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Security-Policy"), "nonce-")
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))

	doc, err := client.GetDoc(ctx, "/")
	require.NoError(t, err)
	assert.Equal(t, "Anime Character Guessing Game", strings.TrimSpace(doc.Find("title").Text()))
	assert.Equal(t, "0", text(doc, "#score"))
	assert.Equal(t, "0", text(doc, "#rounds"))
	assert.Equal(t, 0, doc.Find("section.round").Length(), "no round before the game starts")
	assert.Equal(t, 1, doc.Find("form[action='/game/start']").Length())
	assert.Contains(t, text(doc, "p.pool"), "10 characters (backup)")
	assert.Contains(t, text(doc, "p.pool"), "Scoring: combo")
}

func TestGame_Classic(t *testing.T) {
	ctx := context.Background()
	server := startTestServer(t)
	client := server.Client()

	doc := startGame(ctx, t, client, "classic")
	assert.Contains(t, messages(doc), "Switched to 10 bundled characters.")
	assert.Contains(t, messages(doc), "Round 1: who is this character?")
	assert.Equal(t, "classic", doc.Find("section.round").AttrOr("data-mode", ""))
	assert.Equal(t, "1", text(doc, "#rounds"))
	assert.Equal(t, 1, doc.Find("ol.hints li").Length())
	assert.Contains(t, text(doc, "p.attempts"), "3 attempts left")

	name := currentAnswer(t, doc)

	doc, err := client.SubmitForm(ctx, doc, "/game/hint", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, doc.Find("ol.hints li").Length())
	doc, err = client.SubmitForm(ctx, doc, "/game/hint", nil)
	require.NoError(t, err)
	require.Equal(t, 3, doc.Find("ol.hints li").Length())
	assert.Equal(t, []rune(name)[:1], []rune(hintText(doc, "2")))
	assert.Equal(t, 0, doc.Find("form[action='/game/hint']").Length(), "all hints are shown")

	// Answers are compared ignoring case and surrounding space.
	doc, err = client.SubmitForm(ctx, doc, "/game/answer", url.Values{"answer": {"  " + strings.ToUpper(name) + " "}})
	require.NoError(t, err)
	assert.Contains(t, messages(doc), "🎉 Correct! +6 points")
	assert.Equal(t, "6", text(doc, "#score"))
	assert.Equal(t, "1", text(doc, "#combo"))
	assert.Equal(t, "1", text(doc, "#max-combo"))
	assert.Equal(t, "1", text(doc, "#solved"))
	assert.Equal(t, "2", text(doc, "#rounds"))
	assert.Equal(t, name, text(doc, "#revealed-answer"))
	assert.Equal(t, 1, doc.Find("ol.hints li").Length(), "a new round starts with one hint")
	assert.NotEqual(t, name, currentAnswer(t, doc), "a character does not repeat within a cycle")

	// The flash is shown once.
	doc, err = client.GetDoc(ctx, "/")
	require.NoError(t, err)
	assert.Empty(t, messages(doc))
	assert.Equal(t, "6", text(doc, "#score"))

	// Solving without hints scores full points plus nothing for a combo of one.
	doc, err = client.SubmitForm(ctx, doc, "/game/answer", url.Values{"answer": {currentAnswer(t, doc)}})
	require.NoError(t, err)
	assert.Contains(t, messages(doc), "🎉 Correct! +10 points")
	assert.Equal(t, "16", text(doc, "#score"))
	assert.Equal(t, "2", text(doc, "#combo"))
}

func TestGame_OutOfAttempts(t *testing.T) {
	ctx := context.Background()
	server := startTestServer(t)
	client := server.Client()

	doc := startGame(ctx, t, client, "classic")
	name := currentAnswer(t, doc)

	var err error
	doc, err = client.SubmitForm(ctx, doc, "/game/answer", url.Values{"answer": {"   "}})
	require.NoError(t, err)
	assert.Contains(t, messages(doc), "Please enter an answer!")
	assert.Contains(t, text(doc, "p.attempts"), "3 attempts left", "an empty answer costs no attempt")

	doc, err = client.SubmitForm(ctx, doc, "/game/answer", url.Values{"answer": {"Nobody"}})
	require.NoError(t, err)
	assert.Contains(t, messages(doc), "⚠️ Wrong answer! 2 attempts left")
	doc, err = client.SubmitForm(ctx, doc, "/game/answer", url.Values{"answer": {"Nobody"}})
	require.NoError(t, err)
	assert.Contains(t, messages(doc), "⚠️ Wrong answer! 1 attempts left")
	assert.Equal(t, 0, doc.Find("#last-result").Length())

	doc, err = client.SubmitForm(ctx, doc, "/game/answer", url.Values{"answer": {"Nobody"}})
	require.NoError(t, err)
	assert.Contains(t, messages(doc), "❌ Out of attempts! The answer was: "+name)
	assert.Equal(t, name, text(doc, "#revealed-answer"))
	assert.Equal(t, "0", text(doc, "#score"))
	assert.Equal(t, "0", text(doc, "#solved"))
	assert.Equal(t, "2", text(doc, "#rounds"))
	assert.Contains(t, text(doc, "p.attempts"), "3 attempts left")
}

func TestGame_SkipAndContinue(t *testing.T) {
	ctx := context.Background()
	server := startTestServer(t)
	client := server.Client()

	doc := startGame(ctx, t, client, "classic")
	doc, err := client.SubmitForm(ctx, doc, "/game/answer", url.Values{"answer": {currentAnswer(t, doc)}})
	require.NoError(t, err)
	require.Equal(t, "1", text(doc, "#combo"))

	name := currentAnswer(t, doc)
	doc, err = client.SubmitForm(ctx, doc, "/game/skip", nil)
	require.NoError(t, err)
	assert.Contains(t, messages(doc), "Skipped! The answer was: "+name)
	assert.Equal(t, name, text(doc, "#revealed-answer"))
	assert.Equal(t, "0", text(doc, "#combo"), "skipping breaks the combo")
	assert.Equal(t, "1", text(doc, "#max-combo"))
	assert.Equal(t, "10", text(doc, "#score"))
	assert.Equal(t, "3", text(doc, "#rounds"))

	doc, err = client.SubmitForm(ctx, doc, "/game/continue", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Find("#last-result").Length())
	assert.Equal(t, "3", text(doc, "#rounds"), "continuing keeps the dealt round")
}

func TestGame_Case(t *testing.T) {
	ctx := context.Background()
	server := startTestServer(t)
	client := server.Client()

	doc := startGame(ctx, t, client, "case")
	caseSection := doc.Find("section.case")
	require.Equal(t, 1, caseSection.Length())
	assert.Equal(t, "investigation", caseSection.AttrOr("data-phase", ""))
	assert.Contains(t, text(doc, "p.energy"), "Energy 100/100")
	assert.Equal(t, 0, doc.Find("form[action='/game/answer']").Length(), "no answers during investigation")
	assert.Equal(t, 4, doc.Find("form[action='/game/evidence'] button").Length())

	doc, err := client.SubmitForm(ctx, doc, "/game/evidence", url.Values{"kind": {"testimony"}})
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Find("ul.evidence li[data-kind='testimony']").Length())
	assert.Contains(t, text(doc, "p.energy"), "Energy 90/100")

	doc, err = client.SubmitForm(ctx, doc, "/game/puzzle", url.Values{"piece": {"0"}})
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Find("div.cell.revealed[data-piece='0']").Length())
	assert.Contains(t, text(doc, "p.energy"), "Energy 85/100")

	doc, err = client.SubmitForm(ctx, doc, "/game/timeline", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Find("ol.timeline li").Length())
	assert.Contains(t, text(doc, "p.energy"), "Energy 85/100", "the timeline is free")

	kinds := []string{"trait", "timeline", "relationship", "testimony"}
	for i := 0; i < 16 && doc.Find("form[action='/game/answer']").Length() == 0; i++ {
		doc, err = client.SubmitForm(ctx, doc, "/game/evidence", url.Values{"kind": {kinds[i%len(kinds)]}})
		require.NoError(t, err)
	}
	assert.Equal(t, "deduction", doc.Find("section.case").AttrOr("data-phase", ""))

	doc, err = client.SubmitForm(ctx, doc, "/game/answer", url.Values{"answer": {currentAnswer(t, doc)}})
	require.NoError(t, err)
	assert.Contains(t, messages(doc), "🎉 Correct! +10 points")
	assert.Equal(t, "investigation", doc.Find("section.case").AttrOr("data-phase", ""), "a new case starts")

	resp, err := client.PostForm(ctx, doc, "/game/evidence", url.Values{"kind": {"gossip"}}, nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGame_Htmx(t *testing.T) {
	ctx := context.Background()
	server := startTestServer(t)
	client := server.Client()

	doc, err := client.GetDoc(ctx, "/")
	require.NoError(t, err)

	fragment := postFragment(ctx, t, client, doc, "/game/start", url.Values{"mode": {"classic"}})
	assert.Equal(t, 0, fragment.Find("header").Length(), "htmx gets the board without the layout")
	assert.Equal(t, 1, fragment.Find("#board").Length())
	assert.Equal(t, 1, fragment.Find("section.round").Length())
	assert.Contains(t, messages(fragment), "Round 1: who is this character?")

	fragment = postFragment(ctx, t, client, fragment, "/game/hint", nil)
	assert.Equal(t, 2, fragment.Find("ol.hints li").Length())

	// Messages of htmx requests are not kept for the next page load.
	doc, err = client.GetDoc(ctx, "/")
	require.NoError(t, err)
	assert.Empty(t, messages(doc))
	assert.Equal(t, 2, doc.Find("ol.hints li").Length())
}

func TestGame_CSRF(t *testing.T) {
	ctx := context.Background()
	server := startTestServer(t)
	client := server.Client()

	_, err := client.GetDoc(ctx, "/")
	require.NoError(t, err)

	req, err := client.NewRequest(ctx, http.MethodPost, "/game/start", strings.NewReader("mode=classic"))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := client.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
