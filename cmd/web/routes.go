package main

import (
	"github.com/OPSAF/Anime/ui"
	"github.com/justinas/alice"
	"net/http"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /static/", cacheForeverHeaders(http.FileServerFS(ui.Files)))

	// The JSON API keeps its own router and relies on the JSON content type instead of CSRF tokens.
	mux.Handle("/api/", app.sessionManager.LoadAndSave(app.apiRoutes()))

	session := alice.New(secureHeaders, app.sessionManager.LoadAndSave, noSurf, commonContext)

	mux.Handle("GET /{$}", session.ThenFunc(app.home))
	mux.Handle("GET /characters", session.ThenFunc(app.listCharacters))

	mux.Handle("POST /game/start", session.ThenFunc(app.gameStart))
	mux.Handle("POST /game/answer", session.ThenFunc(app.gameAnswer))
	mux.Handle("POST /game/hint", session.ThenFunc(app.gameHint))
	mux.Handle("POST /game/skip", session.ThenFunc(app.gameSkip))
	mux.Handle("POST /game/continue", session.ThenFunc(app.gameContinue))
	mux.Handle("POST /game/evidence", session.ThenFunc(app.gameEvidence))
	mux.Handle("POST /game/timeline", session.ThenFunc(app.gameTimeline))
	mux.Handle("POST /game/puzzle", session.ThenFunc(app.gamePuzzle))

	mux.Handle("POST /data/refresh", session.ThenFunc(app.dataRefresh))
	mux.Handle("POST /data/backup", session.ThenFunc(app.dataBackup))
	mux.Handle("POST /debug/toggle", session.ThenFunc(app.debugToggle))

	mux.Handle("/", session.ThenFunc(app.notFound))

	common := alice.New(requestID, app.recoverPanic, app.logRequest, app.language)
	return common.Then(timeoutHandler(mux, defaultTimeout))
}
