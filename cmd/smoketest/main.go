package main

import (
	"context"
	"github.com/OPSAF/Anime/internal/e2etest"
	"github.com/OPSAF/Anime/internal/errors"
	"github.com/OPSAF/Anime/internal/logging"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"time"
)

var ErrSmoke = errors.NewSentinel("smoke test failed")

// round is the part of the game state the smoke test looks at.
type round struct {
	Started  bool     `json:"started"`
	PoolSize int      `json:"poolSize"`
	Rounds   int      `json:"rounds"`
	Hints    []string `json:"hints"`
}

// TestPage loads the home page and starts a game through the form, like a player without JavaScript would.
func TestPage(ctx context.Context, client *e2etest.Client) error {
	doc, err := client.GetDoc(ctx, "/")
	if err != nil {
		return errors.Wrap(err, "get home page")
	}
	if doc, err = client.SubmitForm(ctx, doc, "/game/start", url.Values{"mode": {"classic"}}); err != nil {
		return errors.Wrap(err, "start game")
	}
	if doc.Find("ol.hints li").Length() == 0 {
		return errors.Wrap(ErrSmoke, "no hint shown after starting")
	}
	return nil
}

// TestAPI plays one round through the JSON API.
func TestAPI(ctx context.Context, client *e2etest.Client) error {
	var state round
	status, err := client.PostJSON(ctx, "/api/game/start", map[string]string{"mode": "classic"}, &state)
	if err != nil {
		return errors.Wrap(err, "start game")
	}
	if status != http.StatusOK || !state.Started || state.PoolSize == 0 {
		return errors.Wrap(ErrSmoke, "game did not start", slog.Int("status", status))
	}
	if _, err = client.PostJSON(ctx, "/api/game/hint", nil, &state); err != nil {
		return errors.Wrap(err, "use hint")
	}
	if len(state.Hints) != 2 { //nolint:mnd // work title and description
		return errors.Wrap(ErrSmoke, "hint not unlocked", slog.Int("hints", len(state.Hints)))
	}
	rounds := state.Rounds
	if _, err = client.PostJSON(ctx, "/api/game/skip", nil, &state); err != nil {
		return errors.Wrap(err, "skip round")
	}
	if state.Rounds != rounds+1 {
		return errors.Wrap(ErrSmoke, "skip did not deal a new round", slog.Int("rounds", state.Rounds))
	}
	return nil
}

func main() {
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only hostname to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		baseURL  = "https://" + hostname
		client   *e2etest.Client
		err      error
	)
	ctx = logging.WithAttrs(ctx, slog.String("hostname", baseURL))
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second) //nolint:mnd // a first game may fetch characters
	defer cancel()

	if client, err = e2etest.NewClient(baseURL); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", errors.SlogError(err))
		os.Exit(1)
	}
	if err = client.WaitForReady(ctx, "/api/healthy"); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server not ready", errors.SlogError(err))
		os.Exit(1)
	}
	if err = TestPage(ctx, client); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error testing page", errors.SlogError(err))
		os.Exit(1)
	}
	if err = TestAPI(ctx, client); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error testing API", errors.SlogError(err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌")
}
