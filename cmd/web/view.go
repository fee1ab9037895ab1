package main

import (
	"github.com/OPSAF/Anime/internal/game"
	"github.com/OPSAF/Anime/internal/models"
)

// gameState is what a player may see of their game. The name of the current character is never part of it, it
// only shows up in LastResult once the round is over.
type gameState struct {
	Started      bool              `json:"started"`
	Mode         game.Mode         `json:"mode"`
	Scoring      game.ScoringMode  `json:"scoring"`
	Source       models.Provenance `json:"source"`
	PoolSize     int               `json:"poolSize"`
	Score        int               `json:"score"`
	Combo        int               `json:"combo"`
	MaxCombo     int               `json:"maxCombo"`
	Rounds       int               `json:"rounds"`
	Solved       int               `json:"solved"`
	Hints        []string          `json:"hints"`
	HintLevel    int               `json:"hintLevel"`
	MaxHintLevel int               `json:"maxHintLevel"`
	AttemptsLeft int               `json:"attemptsLeft"`
	CanAnswer    bool              `json:"canAnswer"`
	Case         *caseState        `json:"case,omitempty"`
	LastResult   *game.RoundResult `json:"lastResult,omitempty"`
	Messages     []flashMessage    `json:"messages"`
}

type caseState struct {
	Phase           game.Phase             `json:"phase"`
	Energy          int                    `json:"energy"`
	MaxEnergy       int                    `json:"maxEnergy"`
	EvidenceCost    int                    `json:"evidenceCost"`
	PuzzleCost      int                    `json:"puzzleCost"`
	CluesNeeded     int                    `json:"cluesNeeded"`
	Evidence        []game.Evidence        `json:"evidence"`
	Timeline        []models.TimelineEvent `json:"timeline"`
	TimelineTotal   int                    `json:"timelineTotal"`
	Puzzle          []puzzleCell           `json:"puzzle"`
	MysteryQuestion string                 `json:"mysteryQuestion,omitempty"`
}

// puzzleCell hides the value of a trait until the piece is revealed.
type puzzleCell struct {
	Index    int    `json:"index"`
	Category string `json:"category"`
	Name     string `json:"name"`
	Value    string `json:"value,omitempty"`
	Revealed bool   `json:"revealed"`
}

func (app *application) newGameState(s *game.Session, pool models.Pool, messages []flashMessage) gameState {
	if messages == nil {
		messages = []flashMessage{}
	}
	state := gameState{
		Started:      s.Started,
		Mode:         s.Mode,
		Scoring:      s.Scoring,
		Source:       s.Source,
		PoolSize:     pool.Len(),
		Score:        s.Score,
		Combo:        s.Combo,
		MaxCombo:     s.MaxCombo,
		Rounds:       s.Rounds,
		Solved:       s.Solved,
		Hints:        []string{},
		HintLevel:    s.HintLevel,
		MaxHintLevel: game.MaxHintLevel,
		LastResult:   s.LastResult,
		Messages:     messages,
	}
	c, ok := pool.Find(s.Current)
	if !s.Started || !ok {
		state.Started = false
		return state
	}

	rules := app.engine.Rules()
	state.Hints = game.Hints(c, s.HintLevel)
	state.AttemptsLeft = rules.MaxAttempts - s.Attempts
	state.CanAnswer = s.Mode != game.ModeCase || s.Case.Phase == game.PhaseDeduction
	if s.Mode == game.ModeCase {
		state.Case = newCaseState(s, c, rules, app.engine.CluesNeeded(s, pool))
	}
	return state
}

func newCaseState(s *game.Session, c models.Character, rules game.Rules, cluesNeeded int) *caseState {
	evidence := s.Case.Evidence
	if evidence == nil {
		evidence = []game.Evidence{}
	}
	shown := min(s.Case.TimelinePos, len(c.Case.Timeline))
	pieces := c.Case.PuzzlePieces()
	cells := make([]puzzleCell, len(pieces))
	for i, piece := range pieces {
		cells[i] = puzzleCell{
			Index:    i,
			Category: piece.Category,
			Name:     piece.Name,
		}
		if s.Case.IsRevealed(i) {
			cells[i].Value = piece.Value
			cells[i].Revealed = true
		}
	}
	return &caseState{
		Phase:           s.Case.Phase,
		Energy:          s.Case.Energy,
		MaxEnergy:       rules.CaseEnergy,
		EvidenceCost:    rules.EvidenceCost,
		PuzzleCost:      rules.PuzzleCost,
		CluesNeeded:     cluesNeeded,
		Evidence:        evidence,
		Timeline:        append([]models.TimelineEvent{}, c.Case.Timeline[:shown]...),
		TimelineTotal:   len(c.Case.Timeline),
		Puzzle:          cells,
		MysteryQuestion: c.Case.MysteryQuestion,
	}
}
