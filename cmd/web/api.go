package main

import (
	"github.com/OPSAF/Anime/internal/characters"
	"github.com/OPSAF/Anime/internal/game"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/swaggest/swgui/v5emb"
	"net/http"
	"time"
)

type startRequest struct {
	Mode game.Mode `json:"mode" enum:"classic,case" description:"Defaults to classic."`
}

type answerRequest struct {
	Answer string `json:"answer" required:"true" description:"Compared ignoring case, surrounding space and full-width forms."`
}

type evidenceRequest struct {
	Kind game.EvidenceKind `json:"kind" required:"true" enum:"trait,timeline,relationship,testimony"`
}

type puzzleRequest struct {
	Piece int `json:"piece" minimum:"0" description:"Index of the puzzle cell."`
}

type dataStatusResponse struct {
	Enabled      bool                    `json:"enabled"`
	Loading      bool                    `json:"loading"`
	ScrapedCount int                     `json:"scrapedCount"`
	FetchedAt    *time.Time              `json:"fetchedAt,omitempty"`
	LastError    string                  `json:"lastError,omitempty"`
	Trace        []characters.TraceEntry `json:"trace"`
}

func (app *application) apiRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.NoCache)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
	})

	r.Get("/api/healthy", app.healthy)
	r.Get("/api/openapi.json", handleOpenAPI())
	r.Mount("/api/docs", v5emb.New("Anime API", "/api/openapi.json", "/api/docs"))

	r.Group(func(r chi.Router) {
		r.Use(requireJSON)

		r.Get("/api/game", app.apiGame)
		r.Post("/api/game/start", app.apiGameStart)
		r.Post("/api/game/answer", app.apiGameAnswer)
		r.Post("/api/game/hint", app.apiGameHint)
		r.Post("/api/game/skip", app.apiGameSkip)
		r.Post("/api/game/continue", app.apiGameContinue)
		r.Post("/api/game/evidence", app.apiGameEvidence)
		r.Post("/api/game/timeline", app.apiGameTimeline)
		r.Post("/api/game/puzzle", app.apiGamePuzzle)

		r.Get("/api/characters", app.apiCharacters)
		r.Get("/api/data", app.apiDataStatus)
		r.Post("/api/data/refresh", app.apiDataRefresh)
		r.Post("/api/data/backup", app.apiDataBackup)
	})

	return r
}

func (app *application) apiGame(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s := app.loadGame(ctx)
	pool, outcomes := app.activePool(ctx, s)
	writeJSON(w, http.StatusOK, app.newGameState(s, pool, app.flashMessages(ctx, outcomes)))
}

func (app *application) apiGameStart(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s, pool, messages := app.startGame(r.Context(), req.Mode)
	writeJSON(w, http.StatusOK, app.newGameState(s, pool, messages))
}

func (app *application) apiGameAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s, pool, messages := app.answer(r.Context(), req.Answer)
	writeJSON(w, http.StatusOK, app.newGameState(s, pool, messages))
}

func (app *application) apiGameHint(w http.ResponseWriter, r *http.Request) {
	s, pool, messages := app.hint(r.Context())
	writeJSON(w, http.StatusOK, app.newGameState(s, pool, messages))
}

func (app *application) apiGameSkip(w http.ResponseWriter, r *http.Request) {
	s, pool, messages := app.skip(r.Context())
	writeJSON(w, http.StatusOK, app.newGameState(s, pool, messages))
}

func (app *application) apiGameContinue(w http.ResponseWriter, r *http.Request) {
	s, pool, messages := app.acknowledge(r.Context())
	writeJSON(w, http.StatusOK, app.newGameState(s, pool, messages))
}

func (app *application) apiGameEvidence(w http.ResponseWriter, r *http.Request) {
	var req evidenceRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	kind, ok := game.ParseEvidenceKind(string(req.Kind))
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown evidence kind")
		return
	}
	s, pool, messages := app.collectEvidence(r.Context(), kind)
	writeJSON(w, http.StatusOK, app.newGameState(s, pool, messages))
}

func (app *application) apiGameTimeline(w http.ResponseWriter, r *http.Request) {
	s, pool, messages := app.advanceTimeline(r.Context())
	writeJSON(w, http.StatusOK, app.newGameState(s, pool, messages))
}

func (app *application) apiGamePuzzle(w http.ResponseWriter, r *http.Request) {
	var req puzzleRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s, pool, messages := app.revealPiece(r.Context(), req.Piece)
	writeJSON(w, http.StatusOK, app.newGameState(s, pool, messages))
}

func (app *application) apiCharacters(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	pool, _ := app.activePool(ctx, app.loadGame(ctx))
	writeJSON(w, http.StatusOK, newCharacterList(pool))
}

func (app *application) apiDataStatus(w http.ResponseWriter, _ *http.Request) {
	status := app.characters.Status()
	resp := dataStatusResponse{
		Enabled:      status.Enabled,
		Loading:      status.Loading,
		ScrapedCount: status.ScrapedCount,
		FetchedAt:    nil,
		LastError:    status.LastError,
		Trace:        status.Trace,
	}
	if !status.FetchedAt.IsZero() {
		resp.FetchedAt = &status.FetchedAt
	}
	if resp.Trace == nil {
		resp.Trace = []characters.TraceEntry{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (app *application) apiDataRefresh(w http.ResponseWriter, r *http.Request) {
	s, pool, messages := app.refreshData(r.Context())
	writeJSON(w, http.StatusOK, app.newGameState(s, pool, messages))
}

func (app *application) apiDataBackup(w http.ResponseWriter, r *http.Request) {
	s, pool, messages := app.useBackupData(r.Context())
	writeJSON(w, http.StatusOK, app.newGameState(s, pool, messages))
}
