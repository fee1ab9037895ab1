package main

import "net/http"

type healthResponse struct {
	Status  string `json:"status"`
	Scraped int    `json:"scraped"`
	Loading bool   `json:"loading"`
}

// healthy responds with a JSON object indicating that the server is healthy. The game is playable without
// scraped characters, so they never make the check fail.
func (app *application) healthy(w http.ResponseWriter, _ *http.Request) {
	status := app.characters.Status()
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Scraped: status.ScrapedCount,
		Loading: status.Loading,
	})
}
