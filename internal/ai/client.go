package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/OPSAF/Anime/internal/errors"
	"github.com/OPSAF/Anime/internal/models"
	"github.com/sashabaranov/go-openai"
	"log/slog"
	"strings"
)

var ErrEmptyCompletion = errors.NewSentinel("completion has no choices")

// MaxTokens bounds a case file completion.
const MaxTokens = 1024

type Config struct {
	APIKey string
	// BaseURL replaces the OpenAI endpoint, for compatible servers and tests.
	BaseURL string
	Model   string
}

// Client writes case files for scraped characters with a chat completion model.
type Client struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	return &Client{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
		logger: logger.With(slog.String("source", "AIClient")),
	}
}

const systemPrompt = `You write case files for an anime character guessing game.
Answer with a single JSON object with the keys:
"traits": [{"category": string, "traits": [{"name": string, "value": string}]}],
"timeline": [{"year": number, "event": string, "importance": number from 1 to 5}],
"relationships": [{"name": string, "relation": string}],
"evidence": [string],
"mysteryQuestion": string.
Never mention the character's name in any value. Use 3 trait categories, 3 to 5 timeline events,
2 to 4 relationships and 3 evidence statements.`

// SyncCompletion runs a chat completion that must answer with a JSON object.
func (c *Client) SyncCompletion(
	ctx context.Context,
	messages []openai.ChatCompletionMessage,
) (openai.ChatCompletionResponse, error) {
	completion, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{ //nolint:exhaustruct // this is better for readability
			Model:     c.model,
			MaxTokens: MaxTokens,
			Messages:  messages,
			ResponseFormat: &openai.ChatCompletionResponseFormat{ //nolint:exhaustruct // no schema
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
		},
	)
	if err != nil {
		return openai.ChatCompletionResponse{}, errors.Wrap(err, "create chat completion")
	}
	return completion, nil
}

// Enrich asks the model for a case file about c. Values that mention the name are dropped so the case file
// cannot give the answer away.
func (c *Client) Enrich(ctx context.Context, char models.Character) (models.CaseFile, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("Character: %s\nWork: %s\nDescription: %s",
			char.Name, char.Anime, char.Hint)},
	}
	completion, err := c.SyncCompletion(ctx, messages)
	if err != nil {
		return models.CaseFile{}, errors.Wrap(err, "case file completion", slog.String("name", char.Name))
	}
	if len(completion.Choices) == 0 {
		return models.CaseFile{}, errors.Wrap(ErrEmptyCompletion, "case file completion", slog.String("name", char.Name))
	}

	var cf models.CaseFile
	content := completion.Choices[0].Message.Content
	if err = json.Unmarshal([]byte(content), &cf); err != nil {
		return models.CaseFile{}, errors.Wrap(err, "decode case file", slog.String("name", char.Name))
	}
	cf = redact(cf, char.Name)
	c.logger.LogAttrs(ctx, slog.LevelDebug, "generated case file",
		slog.String("name", char.Name), slog.Int("total_tokens", completion.Usage.TotalTokens))
	return cf, nil
}

func redact(cf models.CaseFile, name string) models.CaseFile {
	mentions := func(s string) bool {
		return name != "" && strings.Contains(strings.ToLower(s), strings.ToLower(name))
	}
	out := models.CaseFile{MysteryQuestion: cf.MysteryQuestion}
	if mentions(out.MysteryQuestion) {
		out.MysteryQuestion = ""
	}
	for _, category := range cf.Traits {
		kept := models.TraitCategory{Category: category.Category}
		for _, trait := range category.Traits {
			if !mentions(trait.Value) {
				kept.Traits = append(kept.Traits, trait)
			}
		}
		if len(kept.Traits) > 0 {
			out.Traits = append(out.Traits, kept)
		}
	}
	for _, event := range cf.Timeline {
		if !mentions(event.Event) {
			out.Timeline = append(out.Timeline, event)
		}
	}
	for _, rel := range cf.Relationships {
		if !mentions(rel.Name) && !mentions(rel.Relation) {
			out.Relationships = append(out.Relationships, rel)
		}
	}
	for _, e := range cf.Evidence {
		if !mentions(e) {
			out.Evidence = append(out.Evidence, e)
		}
	}
	return out
}
