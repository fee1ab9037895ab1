package main

import (
	"encoding/json"
	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"
	"net/http"
)

type apiOperation struct {
	method      string
	path        string
	summary     string
	description string
	request     any
	response    any
	errors      []int
}

var apiOperations = []apiOperation{
	{
		method: http.MethodGet, path: "/api/healthy",
		summary:  "Health check",
		response: healthResponse{},
	},
	{
		method: http.MethodGet, path: "/api/game",
		summary:     "Get game state",
		description: "Returns the game of the session. The current character's name is never included.",
		response:    gameState{},
	},
	{
		method: http.MethodPost, path: "/api/game/start",
		summary:     "Start a game",
		description: "Starts playing in the given mode and deals the first round. The first game of a session loads characters.",
		request:     startRequest{},
		response:    gameState{},
		errors:      []int{http.StatusBadRequest},
	},
	{
		method: http.MethodPost, path: "/api/game/answer",
		summary:     "Submit an answer",
		description: "Checks the answer against the current character. In case mode answers are refused until deduction.",
		request:     answerRequest{},
		response:    gameState{},
		errors:      []int{http.StatusBadRequest},
	},
	{
		method: http.MethodPost, path: "/api/game/hint",
		summary:  "Unlock the next hint",
		response: gameState{},
	},
	{
		method: http.MethodPost, path: "/api/game/skip",
		summary:     "Skip the round",
		description: "Reveals the answer, resets the combo and deals a new round.",
		response:    gameState{},
	},
	{
		method: http.MethodPost, path: "/api/game/continue",
		summary:  "Dismiss the result of the previous round",
		response: gameState{},
	},
	{
		method: http.MethodPost, path: "/api/game/evidence",
		summary:     "Collect evidence",
		description: "Case mode only. Spends energy to add the next clue of the given kind.",
		request:     evidenceRequest{},
		response:    gameState{},
		errors:      []int{http.StatusBadRequest},
	},
	{
		method: http.MethodPost, path: "/api/game/timeline",
		summary:  "Advance the timeline",
		response: gameState{},
	},
	{
		method: http.MethodPost, path: "/api/game/puzzle",
		summary:     "Reveal a puzzle piece",
		description: "Case mode only. Spends energy to reveal one cell of the puzzle grid.",
		request:     puzzleRequest{},
		response:    gameState{},
		errors:      []int{http.StatusBadRequest},
	},
	{
		method: http.MethodGet, path: "/api/characters",
		summary:  "List the characters of the session's pool",
		response: characterList{},
	},
	{
		method: http.MethodGet, path: "/api/data",
		summary:     "Character data status",
		description: "Reports the scraped characters and the trace of the last fetch.",
		response:    dataStatusResponse{},
	},
	{
		method: http.MethodPost, path: "/api/data/refresh",
		summary:     "Fetch characters",
		description: "Fetches characters from the web and switches the session to them, or to the bundled ones on failure.",
		response:    gameState{},
	},
	{
		method: http.MethodPost, path: "/api/data/backup",
		summary:  "Use the bundled characters",
		response: gameState{},
	},
}

func newOpenAPISpec() (*openapi3.Spec, error) {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Anime API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("JSON interface of the anime character guessing game. State is kept in the session cookie.")

	for _, op := range apiOperations {
		oc, err := r.NewOperationContext(op.method, op.path)
		if err != nil {
			return nil, err
		}
		oc.SetSummary(op.summary)
		if op.description != "" {
			oc.SetDescription(op.description)
		}
		if op.request != nil {
			oc.AddReqStructure(op.request)
		}
		oc.AddRespStructure(op.response, openapi.WithHTTPStatus(http.StatusOK))
		if op.method == http.MethodPost {
			oc.AddRespStructure(errorResponse{}, openapi.WithHTTPStatus(http.StatusUnsupportedMediaType))
		}
		for _, status := range op.errors {
			oc.AddRespStructure(errorResponse{}, openapi.WithHTTPStatus(status))
		}
		if err = r.AddOperation(oc); err != nil {
			return nil, err
		}
	}
	return r.Spec, nil
}

func handleOpenAPI() http.HandlerFunc {
	spec, err := newOpenAPISpec()
	var data []byte
	if err == nil {
		data, err = json.MarshalIndent(spec, "", "  ")
	}

	return func(w http.ResponseWriter, _ *http.Request) {
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
