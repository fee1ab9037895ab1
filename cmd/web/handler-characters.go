package main

import (
	"github.com/OPSAF/Anime/internal/models"
	"net/http"
)

// characterList describes the pool of a session. Unlike the game board it shows the names.
type characterList struct {
	Source     models.Provenance  `json:"source"`
	Count      int                `json:"count"`
	Works      int                `json:"works"`
	Characters []models.Character `json:"characters"`
}

func newCharacterList(pool models.Pool) characterList {
	return characterList{
		Source:     pool.Source,
		Count:      pool.Len(),
		Works:      len(pool.Works()),
		Characters: pool.Characters,
	}
}

func (app *application) listCharacters(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	pool, _ := app.activePool(ctx, app.loadGame(ctx))
	app.render(w, r, http.StatusOK, "characters", newCharacterList(pool))
}
