package game

import (
	"github.com/OPSAF/Anime/internal/errors"
	"log/slog"
)

// ScoringMode names a scoring policy. A session keeps the mode it was created with.
type ScoringMode string

const (
	// ScoringCombo rewards streaks and penalises each hint tier.
	ScoringCombo ScoringMode = "combo"
	// ScoringFlat awards a fixed amount, reduced when any hint was used.
	ScoringFlat ScoringMode = "flat"
)

var ErrUnknownScoringMode = errors.NewSentinel("unknown scoring mode")

// Scorer computes the points of a correct answer. Incorrect answers never change the score.
type Scorer interface {
	Correct(hintLevel, combo int) int
}

// ComboScoring implements max(Base - hintLevel*HintPenalty + min(combo/ComboDivisor, ComboCap), Floor).
type ComboScoring struct {
	Base         int
	HintPenalty  int
	ComboDivisor int
	ComboCap     int
	Floor        int
}

func (s ComboScoring) Correct(hintLevel, combo int) int {
	bonus := 0
	if s.ComboDivisor > 0 {
		bonus = min(max(combo, 0)/s.ComboDivisor, s.ComboCap)
	}
	return max(s.Base-max(hintLevel, 0)*s.HintPenalty+bonus, s.Floor)
}

// FlatScoring awards Full points, or WithHint points when a hint was used during the round.
type FlatScoring struct {
	Full     int
	WithHint int
}

func (s FlatScoring) Correct(hintLevel, _ int) int {
	if hintLevel > 0 {
		return s.WithHint
	}
	return s.Full
}

//nolint:mnd // game constants
var (
	DefaultComboScoring = ComboScoring{Base: 10, HintPenalty: 2, ComboDivisor: 3, ComboCap: 5, Floor: 3}
	DefaultFlatScoring  = FlatScoring{Full: 10, WithHint: 7}
)

// ScorerFor returns the default policy of mode.
func ScorerFor(mode ScoringMode) (Scorer, error) {
	switch mode {
	case ScoringCombo:
		return DefaultComboScoring, nil
	case ScoringFlat:
		return DefaultFlatScoring, nil
	default:
		return nil, errors.Wrap(ErrUnknownScoringMode, "resolve scorer", slog.String("mode", string(mode)))
	}
}
