package main

import (
	"context"
	"encoding/gob"
	"github.com/OPSAF/Anime/internal/contexthelpers"
	"github.com/OPSAF/Anime/internal/game"
	"github.com/OPSAF/Anime/internal/i18n"
	"github.com/OPSAF/Anime/internal/logging"
	"github.com/OPSAF/Anime/internal/models"
	"log/slog"
)

type sessionKey string

const (
	gameSessionKey  = sessionKey("game")
	flashSessionKey = sessionKey("flash")
	debugSessionKey = sessionKey("debug")
)

func init() {
	gob.Register(game.Session{})
	gob.Register([]flashMessage{})
}

// flashMessage is an outcome rendered in the language of the request that produced it.
type flashMessage struct {
	Status game.Status `json:"status"`
	Text   string      `json:"text"`
}

// loadGame returns the game state of the session, or a fresh one on first contact.
func (app *application) loadGame(ctx context.Context) *game.Session {
	if s, ok := app.sessionManager.Get(ctx, string(gameSessionKey)).(game.Session); ok {
		return &s
	}
	return app.engine.NewSession()
}

func (app *application) saveGame(ctx context.Context, s *game.Session) {
	app.sessionManager.Put(ctx, string(gameSessionKey), *s)
}

// activePool returns the pool the session plays with and stores the session when it had to be brought in line
// with the characters the server has. A session whose pool is gone, for example scraped characters after a
// restart without a snapshot, moves to the available pool. A round whose character was dropped by another
// player's refresh is revealed and replaced.
func (app *application) activePool(ctx context.Context, s *game.Session) (models.Pool, []game.Outcome) {
	var outcomes []game.Outcome
	pool := app.characters.Pool(s.Source)
	if pool.Source != s.Source {
		app.logger.LogAttrs(ctx, slog.LevelInfo, "session pool unavailable, switching",
			slog.String("from", string(s.Source)), slog.String("to", string(pool.Source)))
		outcomes = append(outcomes, app.engine.SwitchPool(s, pool, s.Source))
	} else if o, retired := app.engine.RetireStaleRound(s, pool); retired {
		app.logger.LogAttrs(ctx, slog.LevelInfo, "round character left the pool",
			slog.String("source", string(pool.Source)), slog.Int("pool_size", pool.Len()))
		outcomes = append(outcomes, o)
	}
	if len(outcomes) > 0 {
		app.saveGame(ctx, s)
	}
	return pool, outcomes
}

// play runs fn against the game state of the session and stores the result. The returned messages are rendered
// in the language of the request.
func (app *application) play(
	ctx context.Context,
	fn func(s *game.Session, pool models.Pool) []game.Outcome,
) (*game.Session, models.Pool, []flashMessage) {
	s := app.loadGame(ctx)
	pool, outcomes := app.activePool(ctx, s)
	outcomes = append(outcomes, fn(s, pool)...)
	// fn may have switched pools.
	pool = app.characters.Pool(s.Source)
	app.saveGame(ctx, s)

	ctx = logging.WithAttrs(ctx, slog.Int("round", s.Rounds), slog.String("mode", string(s.Mode)))
	for _, o := range outcomes {
		app.logger.LogAttrs(ctx, slog.LevelDebug, "game outcome",
			slog.String("key", o.Key), slog.String("status", string(o.Status)))
	}
	return s, pool, app.flashMessages(ctx, outcomes)
}

func (app *application) flashMessages(ctx context.Context, outcomes []game.Outcome) []flashMessage {
	printer := i18n.Printer(contexthelpers.Language(ctx))
	messages := make([]flashMessage, 0, len(outcomes))
	for _, o := range outcomes {
		messages = append(messages, flashMessage{
			Status: o.Status,
			Text:   printer.Sprintf(o.Key, o.Args...),
		})
	}
	return messages
}

func (app *application) putFlash(ctx context.Context, messages []flashMessage) {
	if len(messages) == 0 {
		return
	}
	app.sessionManager.Put(ctx, string(flashSessionKey), messages)
}

func (app *application) popFlash(ctx context.Context) []flashMessage {
	messages, ok := app.sessionManager.Pop(ctx, string(flashSessionKey)).([]flashMessage)
	if !ok {
		return []flashMessage{}
	}
	return messages
}

func (app *application) debugEnabled(ctx context.Context) bool {
	return app.sessionManager.GetBool(ctx, string(debugSessionKey))
}

func (app *application) toggleDebug(ctx context.Context) bool {
	enabled := !app.debugEnabled(ctx)
	app.sessionManager.Put(ctx, string(debugSessionKey), enabled)
	return enabled
}
