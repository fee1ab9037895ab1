package ai_test

import (
	"context"
	"encoding/json"
	"github.com/OPSAF/Anime/internal/ai"
	"github.com/OPSAF/Anime/internal/models"
	"github.com/OPSAF/Anime/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// completionServer answers every chat completion with content.
func completionServer(t *testing.T, status int, content string) (*httptest.Server, *map[string]any) {
	t.Helper()
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"message":"quota exceeded","type":"insufficient_quota"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1,
			"model":   "gpt-4o-mini",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			}},
			"usage": map[string]any{"prompt_tokens": 10, "completion_tokens": 20, "total_tokens": 30},
		})
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func newClient(srv *httptest.Server) *ai.Client {
	return ai.NewClient(ai.Config{APIKey: "sk-test", BaseURL: srv.URL + "/v1"}, testhelpers.NewLogger(io.Discard))
}

var frieren = models.Character{Name: "Frieren", Anime: "Frieren", Hint: "An elf mage"}

func TestClient_Enrich(t *testing.T) {
	t.Parallel()
	content := `{
  "traits": [{"category": "appearance", "traits": [
    {"name": "hair", "value": "silver twin tails"},
    {"name": "nickname", "value": "Frieren the Slayer"}
  ]}],
  "timeline": [{"year": 1000, "event": "Joins the hero party", "importance": 5}],
  "relationships": [{"name": "Himmel", "relation": "former party leader"}],
  "evidence": ["Collects useless spells", "Frieren sleeps late"],
  "mysteryQuestion": "Which mage outlived her party?"
}`
	srv, got := completionServer(t, http.StatusOK, content)

	cf, err := newClient(srv).Enrich(context.Background(), frieren)
	require.NoError(t, err)
	require.Equal(t, models.CaseFile{
		Traits: []models.TraitCategory{
			{Category: "appearance", Traits: []models.Trait{{Name: "hair", Value: "silver twin tails"}}},
		},
		Timeline:        []models.TimelineEvent{{Year: 1000, Event: "Joins the hero party", Importance: 5}},
		Relationships:   []models.Relationship{{Name: "Himmel", Relation: "former party leader"}},
		Evidence:        []string{"Collects useless spells"},
		MysteryQuestion: "Which mage outlived her party?",
	}, cf)

	require.Equal(t, "gpt-4o-mini", (*got)["model"])
	require.Equal(t, map[string]any{"type": "json_object"}, (*got)["response_format"])
}

func TestClient_Enrich_errors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		status  int
		content string
	}{
		{name: "api error", status: http.StatusTooManyRequests},
		{name: "not json", status: http.StatusOK, content: "I cannot help with that."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			srv, _ := completionServer(t, tt.status, tt.content)
			_, err := newClient(srv).Enrich(context.Background(), frieren)
			require.Error(t, err)
		})
	}
}
