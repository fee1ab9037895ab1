package main

import (
	"log/slog"
	"net/http"
)

func (app *application) dataRefresh(w http.ResponseWriter, r *http.Request) {
	s, pool, messages := app.refreshData(r.Context())
	app.respond(w, r, s, pool, messages)
}

func (app *application) dataBackup(w http.ResponseWriter, r *http.Request) {
	s, pool, messages := app.useBackupData(r.Context())
	app.respond(w, r, s, pool, messages)
}

func (app *application) debugToggle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	enabled := app.toggleDebug(ctx)
	app.logger.LogAttrs(ctx, slog.LevelDebug, "debug panel toggled", slog.Bool("enabled", enabled))
	s := app.loadGame(ctx)
	pool, outcomes := app.activePool(ctx, s)
	app.respond(w, r, s, pool, app.flashMessages(ctx, outcomes))
}
