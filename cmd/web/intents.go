package main

import (
	"context"
	"github.com/OPSAF/Anime/internal/game"
	"github.com/OPSAF/Anime/internal/models"
)

// The intents below are shared by the HTML handlers and the JSON API. Each returns the outcomes to show.

func (app *application) startGame(ctx context.Context, mode game.Mode) (*game.Session, models.Pool, []flashMessage) {
	return app.play(ctx, func(s *game.Session, pool models.Pool) []game.Outcome {
		var outcomes []game.Outcome
		if !s.DataLoaded {
			var o game.Outcome
			pool, o = app.loadData(ctx, s)
			outcomes = append(outcomes, o)
		}
		return append(outcomes, app.engine.Start(s, pool, mode))
	})
}

// loadData picks the pool of a session's first game: the scraped characters when available, a fresh fetch when
// fetching is enabled, and the bundled characters otherwise.
func (app *application) loadData(ctx context.Context, s *game.Session) (models.Pool, game.Outcome) {
	switch {
	case app.characters.HasScraped():
		pool := app.characters.Pool(models.ProvenanceScraped)
		return pool, app.engine.SwitchPool(s, pool, models.ProvenanceScraped)
	case app.cfg.Scrape.Enabled:
		return app.refreshPool(ctx, s)
	default:
		pool := app.characters.Backup()
		return pool, app.engine.SwitchPool(s, pool, models.ProvenanceBackup)
	}
}

// refreshPool fetches characters and switches the session to them. The wait is bounded by refreshWait, a fetch
// still running after that keeps going in the background.
func (app *application) refreshPool(ctx context.Context, s *game.Session) (models.Pool, game.Outcome) {
	ctx, cancel := context.WithTimeout(ctx, refreshWait)
	defer cancel()
	pool := app.characters.Load(ctx)
	o := app.engine.SwitchPool(s, pool, models.ProvenanceScraped)
	if pool.Source != models.ProvenanceScraped && app.characters.Status().Loading {
		o = game.Outcome{Status: game.StatusInfo, Key: msgStillLoading, Args: []any{pool.Len()}}
	}
	return pool, o
}

func (app *application) refreshData(ctx context.Context) (*game.Session, models.Pool, []flashMessage) {
	return app.play(ctx, func(s *game.Session, _ models.Pool) []game.Outcome {
		if !app.cfg.Scrape.Enabled {
			pool := app.characters.Backup()
			app.engine.SwitchPool(s, pool, models.ProvenanceBackup)
			return []game.Outcome{{Status: game.StatusWarning, Key: msgFetchingDisabled, Args: []any{pool.Len()}}}
		}
		_, o := app.refreshPool(ctx, s)
		return []game.Outcome{o}
	})
}

func (app *application) useBackupData(ctx context.Context) (*game.Session, models.Pool, []flashMessage) {
	return app.play(ctx, func(s *game.Session, _ models.Pool) []game.Outcome {
		return []game.Outcome{app.engine.SwitchPool(s, app.characters.Backup(), models.ProvenanceBackup)}
	})
}

func (app *application) answer(ctx context.Context, text string) (*game.Session, models.Pool, []flashMessage) {
	return app.play(ctx, func(s *game.Session, pool models.Pool) []game.Outcome {
		return []game.Outcome{app.engine.SubmitAnswer(s, pool, text)}
	})
}

func (app *application) hint(ctx context.Context) (*game.Session, models.Pool, []flashMessage) {
	return app.play(ctx, func(s *game.Session, pool models.Pool) []game.Outcome {
		return []game.Outcome{app.engine.UseHint(s, pool)}
	})
}

func (app *application) skip(ctx context.Context) (*game.Session, models.Pool, []flashMessage) {
	return app.play(ctx, func(s *game.Session, pool models.Pool) []game.Outcome {
		return []game.Outcome{app.engine.Skip(s, pool)}
	})
}

func (app *application) acknowledge(ctx context.Context) (*game.Session, models.Pool, []flashMessage) {
	return app.play(ctx, func(s *game.Session, _ models.Pool) []game.Outcome {
		return []game.Outcome{app.engine.Acknowledge(s)}
	})
}

func (app *application) collectEvidence(ctx context.Context, kind game.EvidenceKind) (*game.Session, models.Pool,
	[]flashMessage) {
	return app.play(ctx, func(s *game.Session, pool models.Pool) []game.Outcome {
		return []game.Outcome{app.engine.CollectEvidence(s, pool, kind)}
	})
}

func (app *application) advanceTimeline(ctx context.Context) (*game.Session, models.Pool, []flashMessage) {
	return app.play(ctx, func(s *game.Session, pool models.Pool) []game.Outcome {
		return []game.Outcome{app.engine.AdvanceTimeline(s, pool)}
	})
}

func (app *application) revealPiece(ctx context.Context, index int) (*game.Session, models.Pool, []flashMessage) {
	return app.play(ctx, func(s *game.Session, pool models.Pool) []game.Outcome {
		return []game.Outcome{app.engine.RevealPuzzlePiece(s, pool, index)}
	})
}
