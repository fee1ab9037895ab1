package main

import (
	"context"
	"github.com/OPSAF/Anime/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"strings"
	"testing"
)

func TestAPI_Game(t *testing.T) {
	ctx := context.Background()
	server := startTestServer(t)
	client := server.Client()
	names := backupNames(t)

	var state gameState
	status, err := client.GetJSON(ctx, "/api/game", &state)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)
	assert.False(t, state.Started)
	assert.Equal(t, game.ScoringCombo, state.Scoring)
	assert.Equal(t, 10, state.PoolSize)

	status, err = client.PostJSON(ctx, "/api/game/start", startRequest{Mode: game.ModeClassic}, &state)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)
	require.True(t, state.Started)
	require.Len(t, state.Hints, 1)
	assert.Equal(t, 3, state.AttemptsLeft)
	assert.True(t, state.CanAnswer)
	assert.Nil(t, state.Case)
	name := names[state.Hints[0]]
	require.NotEmpty(t, name)

	status, err = client.PostJSON(ctx, "/api/game/hint", nil, &state)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, state.Hints, 2)
	assert.Equal(t, 1, state.HintLevel)

	status, err = client.PostJSON(ctx, "/api/game/answer", answerRequest{Answer: name}, &state)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 8, state.Score)
	require.NotNil(t, state.LastResult)
	assert.Equal(t, game.ResultSolved, state.LastResult.Kind)
	assert.Equal(t, name, state.LastResult.Answer)
	assert.Equal(t, 8, state.LastResult.Points)
	require.Len(t, state.Messages, 1)
	assert.Equal(t, game.StatusSuccess, state.Messages[0].Status)

	status, err = client.PostJSON(ctx, "/api/game/continue", nil, &state)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)
	assert.Nil(t, state.LastResult)

	// The API and the pages share the session.
	doc, err := client.GetDoc(ctx, "/")
	require.NoError(t, err)
	assert.Equal(t, "8", text(doc, "#score"))
}

func TestAPI_Case(t *testing.T) {
	ctx := context.Background()
	server := startTestServer(t)
	client := server.Client()

	var state gameState
	status, err := client.PostJSON(ctx, "/api/game/start", startRequest{Mode: game.ModeCase}, &state)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, state.Case)
	assert.Equal(t, game.PhaseInvestigation, state.Case.Phase)
	assert.Equal(t, 100, state.Case.Energy)
	assert.Equal(t, 5, state.Case.CluesNeeded)
	assert.False(t, state.CanAnswer)
	require.NotEmpty(t, state.Case.Puzzle)
	for _, cell := range state.Case.Puzzle {
		assert.Empty(t, cell.Value, "hidden puzzle pieces carry no value")
	}

	answer := backupNames(t)[state.Hints[0]]
	status, err = client.PostJSON(ctx, "/api/game/answer", answerRequest{Answer: answer}, &state)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0, state.Score)
	assert.Equal(t, 3, state.AttemptsLeft, "refused answers cost no attempt")
	require.Len(t, state.Messages, 1)
	assert.Equal(t, game.StatusWarning, state.Messages[0].Status)

	status, err = client.PostJSON(ctx, "/api/game/puzzle", puzzleRequest{Piece: 0}, &state)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, state.Case.Puzzle[0].Revealed)
	assert.NotEmpty(t, state.Case.Puzzle[0].Value)
	assert.Equal(t, 95, state.Case.Energy)

	status, err = client.PostJSON(ctx, "/api/game/timeline", nil, &state)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, state.Case.Timeline, 1)
	assert.Equal(t, 95, state.Case.Energy)

	for _, kind := range []game.EvidenceKind{
		game.EvidenceTrait, game.EvidenceTimeline, game.EvidenceRelationship, game.EvidenceTestimony, game.EvidenceTrait,
	} {
		status, err = client.PostJSON(ctx, "/api/game/evidence", evidenceRequest{Kind: kind}, &state)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, status)
	}
	assert.Len(t, state.Case.Evidence, 5)
	assert.Equal(t, 45, state.Case.Energy)
	assert.Equal(t, game.PhaseDeduction, state.Case.Phase)
	assert.True(t, state.CanAnswer)

	status, err = client.PostJSON(ctx, "/api/game/answer", answerRequest{Answer: answer}, &state)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 10, state.Score)

	status, err = client.PostJSON(ctx, "/api/game/evidence", map[string]string{"kind": "gossip"}, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAPI_Errors(t *testing.T) {
	ctx := context.Background()
	server := startTestServer(t)
	client := server.Client()

	t.Run("not JSON", func(t *testing.T) {
		req, err := client.NewRequest(ctx, http.MethodPost, "/api/game/start", strings.NewReader("mode=classic"))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		resp, err := client.Do(req)
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
	})

	t.Run("unknown field", func(t *testing.T) {
		var body errorResponse
		status, err := client.PostJSON(ctx, "/api/game/answer", map[string]string{"guess": "C.C."}, &body)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "invalid request body", body.Error)
	})

	t.Run("not found", func(t *testing.T) {
		var body errorResponse
		status, err := client.GetJSON(ctx, "/api/nothing", &body)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "Not Found", body.Error)
	})

	t.Run("method not allowed", func(t *testing.T) {
		var body errorResponse
		status, err := client.GetJSON(ctx, "/api/game/start", &body)
		require.NoError(t, err)
		assert.Equal(t, http.StatusMethodNotAllowed, status)
	})

	t.Run("no round", func(t *testing.T) {
		var state gameState
		status, err := client.PostJSON(ctx, "/api/game/hint", nil, &state)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, status)
		require.Len(t, state.Messages, 1)
		assert.Equal(t, "Start a game first!", state.Messages[0].Text)
	})
}

func TestAPI_OpenAPI(t *testing.T) {
	ctx := context.Background()
	server := startTestServer(t)
	client := server.Client()

	var spec struct {
		OpenAPI string                    `json:"openapi"`
		Info    struct{ Title string }    `json:"info"`
		Paths   map[string]map[string]any `json:"paths"`
	}
	status, err := client.GetJSON(ctx, "/api/openapi.json", &spec)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, strings.HasPrefix(spec.OpenAPI, "3."))
	assert.Equal(t, "Anime API", spec.Info.Title)
	for _, op := range apiOperations {
		methods, ok := spec.Paths[op.path]
		require.True(t, ok, "missing path %s", op.path)
		assert.Contains(t, methods, strings.ToLower(op.method))
	}

	resp, err := client.Get(ctx, "/api/docs")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAPI_Healthy(t *testing.T) {
	ctx := context.Background()
	server := startTestServer(t)

	var health healthResponse
	status, err := server.Client().GetJSON(ctx, "/api/healthy", &health)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, healthResponse{Status: "ok", Scraped: 0, Loading: false}, health)
}
