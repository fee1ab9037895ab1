package main

import (
	"github.com/OPSAF/Anime/internal/game"
	"net/http"
	"strconv"
)

func (app *application) gameStart(w http.ResponseWriter, r *http.Request) {
	mode := game.Mode(r.PostFormValue("mode"))
	s, pool, messages := app.startGame(r.Context(), mode)
	app.respond(w, r, s, pool, messages)
}

func (app *application) gameAnswer(w http.ResponseWriter, r *http.Request) {
	s, pool, messages := app.answer(r.Context(), r.PostFormValue("answer"))
	app.respond(w, r, s, pool, messages)
}

func (app *application) gameHint(w http.ResponseWriter, r *http.Request) {
	s, pool, messages := app.hint(r.Context())
	app.respond(w, r, s, pool, messages)
}

func (app *application) gameSkip(w http.ResponseWriter, r *http.Request) {
	s, pool, messages := app.skip(r.Context())
	app.respond(w, r, s, pool, messages)
}

func (app *application) gameContinue(w http.ResponseWriter, r *http.Request) {
	s, pool, messages := app.acknowledge(r.Context())
	app.respond(w, r, s, pool, messages)
}

func (app *application) gameEvidence(w http.ResponseWriter, r *http.Request) {
	kind, ok := game.ParseEvidenceKind(r.PostFormValue("kind"))
	if !ok {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	s, pool, messages := app.collectEvidence(r.Context(), kind)
	app.respond(w, r, s, pool, messages)
}

func (app *application) gameTimeline(w http.ResponseWriter, r *http.Request) {
	s, pool, messages := app.advanceTimeline(r.Context())
	app.respond(w, r, s, pool, messages)
}

func (app *application) gamePuzzle(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PostFormValue("piece"))
	if err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	s, pool, messages := app.revealPiece(r.Context(), index)
	app.respond(w, r, s, pool, messages)
}
