package main

import (
	"github.com/OPSAF/Anime/internal/characters"
	"github.com/OPSAF/Anime/internal/game"
	"github.com/OPSAF/Anime/internal/models"
	"net/http"
)

type homeTemplateData struct {
	gameState

	EvidenceKinds []game.EvidenceKind
	Debug         *characters.Status
}

func (app *application) newHomeTemplateData(r *http.Request, s *game.Session, pool models.Pool,
	messages []flashMessage) homeTemplateData {
	data := homeTemplateData{
		gameState:     app.newGameState(s, pool, messages),
		EvidenceKinds: game.EvidenceKinds,
		Debug:         nil,
	}
	if app.debugEnabled(r.Context()) {
		status := app.characters.Status()
		data.Debug = &status
	}
	return data
}

func (app *application) home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s := app.loadGame(ctx)
	pool, outcomes := app.activePool(ctx, s)
	messages := append(app.popFlash(ctx), app.flashMessages(ctx, outcomes)...)
	app.render(w, r, http.StatusOK, "home", app.newHomeTemplateData(r, s, pool, messages))
}

// respond finishes a form submission. htmx requests get the updated board right away, plain form posts are
// redirected to the home page which shows the messages once.
func (app *application) respond(w http.ResponseWriter, r *http.Request, s *game.Session, pool models.Pool,
	messages []flashMessage) {
	if app.htmx.NewHandler(w, r).IsHxRequest() {
		app.renderFragment(w, r, http.StatusOK, "home", "board", app.newHomeTemplateData(r, s, pool, messages))
		return
	}
	app.putFlash(r.Context(), messages)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
