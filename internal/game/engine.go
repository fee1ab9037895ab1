package game

import (
	"fmt"
	"github.com/OPSAF/Anime/internal/models"
	"golang.org/x/text/width"
	"strings"
)

// Rules are the tunable constants of a game.
type Rules struct {
	MaxAttempts        int
	CaseEnergy         int
	EvidenceCost       int
	PuzzleCost         int
	DeductionThreshold int
}

var DefaultRules = Rules{
	MaxAttempts:        3,   //nolint:mnd // game constant
	CaseEnergy:         100, //nolint:mnd // game constant
	EvidenceCost:       10,  //nolint:mnd // game constant
	PuzzleCost:         5,   //nolint:mnd // game constant
	DeductionThreshold: 5,   //nolint:mnd // game constant
}

// Engine applies player intents to a [Session]. It holds no per-player state and is safe for concurrent use as
// long as pick is.
type Engine struct {
	rules   Rules
	scoring ScoringMode
	// pick returns a uniformly distributed index in [0, n).
	pick func(n int) int
}

// NewEngine creates an engine. New sessions use the scoring mode given here.
func NewEngine(rules Rules, scoring ScoringMode, pick func(n int) int) (*Engine, error) {
	if _, err := ScorerFor(scoring); err != nil {
		return nil, err
	}
	return &Engine{rules: rules, scoring: scoring, pick: pick}, nil
}

// Rules returns the rules of the engine.
func (e *Engine) Rules() Rules {
	return e.rules
}

// NewSession returns the state of a player that has not started yet.
func (e *Engine) NewSession() *Session {
	return &Session{
		Mode:    ModeClassic,
		Scoring: e.scoring,
		Source:  models.ProvenanceBackup,
	}
}

// NormalizeAnswer trims, folds full-width forms and lower-cases an answer for comparison.
func NormalizeAnswer(s string) string {
	return strings.ToLower(width.Fold.String(strings.TrimSpace(s)))
}

func (e *Engine) scorer(s *Session) Scorer {
	scorer, err := ScorerFor(s.Scoring)
	if err != nil {
		scorer, _ = ScorerFor(e.scoring)
	}
	return scorer
}

// current resolves the character of the round in pool.
func (e *Engine) current(s *Session, pool models.Pool) (models.Character, bool) {
	if !s.Started || s.Current == "" {
		return models.Character{}, false
	}
	return pool.Find(s.Current)
}

// Start begins playing in mode and deals the first round.
func (e *Engine) Start(s *Session, pool models.Pool, mode Mode) Outcome {
	if mode != ModeCase {
		mode = ModeClassic
	}
	s.Mode = mode
	s.LastResult = nil
	return e.StartNewRound(s, pool)
}

// StartNewRound picks a character not yet used in this cycle and resets the per-round counters.
func (e *Engine) StartNewRound(s *Session, pool models.Pool) Outcome {
	if pool.Len() == 0 {
		return outcome(StatusError, MsgEmptyPool)
	}

	var candidates []models.Character
	for _, c := range pool.Characters {
		if !s.isUsed(c.Name) {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		// Every character has been shown, start a new cycle but avoid repeating the last one.
		s.Used = nil
		for _, c := range pool.Characters {
			if c.Name != s.Current || pool.Len() == 1 {
				candidates = append(candidates, c)
			}
		}
	}

	picked := candidates[e.pickIndex(len(candidates))]
	s.Started = true
	s.Current = picked.Name
	s.CurrentAnime = picked.Anime
	s.Used = append(s.Used, picked.Name)
	s.Attempts = 0
	s.HintLevel = 0
	s.Rounds++
	s.Case = CaseState{}
	if s.Mode == ModeCase {
		s.Case.Energy = e.rules.CaseEnergy
		s.Case.Phase = PhaseInvestigation
		e.updatePhase(s, picked)
	}
	return outcome(StatusInfo, MsgRoundStarted, s.Rounds)
}

func (e *Engine) pickIndex(n int) int {
	i := e.pick(n)
	if i < 0 || i >= n {
		return 0
	}
	return i
}

// UseHint unlocks the next hint tier. Past the last tier it changes nothing.
func (e *Engine) UseHint(s *Session, pool models.Pool) Outcome {
	c, ok := e.current(s, pool)
	if !ok {
		return outcome(StatusWarning, MsgNoRound)
	}
	s.LastResult = nil
	if s.HintLevel >= MaxHintLevel {
		return outcome(StatusWarning, MsgNoMoreHints)
	}
	s.HintLevel++
	return outcome(StatusInfo, MsgHintUnlocked, HintFor(c, s.HintLevel))
}

// SubmitAnswer checks text against the current character.
func (e *Engine) SubmitAnswer(s *Session, pool models.Pool, text string) Outcome {
	c, ok := e.current(s, pool)
	if !ok {
		return outcome(StatusWarning, MsgNoRound)
	}
	answer := NormalizeAnswer(text)
	if answer == "" {
		return outcome(StatusWarning, MsgEmptyAnswer)
	}
	if s.Mode == ModeCase && s.Case.Phase == PhaseInvestigation {
		return outcome(StatusWarning, MsgKeepInvestigating, e.cluesNeeded(c)-len(s.Case.Evidence))
	}
	s.LastResult = nil

	if answer == NormalizeAnswer(c.Name) {
		points := e.scorer(s).Correct(s.HintLevel, s.Combo)
		s.Score += points
		s.Combo++
		s.MaxCombo = max(s.MaxCombo, s.Combo)
		s.Solved++
		s.LastResult = &RoundResult{Kind: ResultSolved, Answer: c.Name, Anime: c.Anime, Points: points}
		e.StartNewRound(s, pool)
		return outcome(StatusSuccess, MsgCorrect, points)
	}

	s.Combo = 0
	s.Attempts++
	if s.Attempts >= e.rules.MaxAttempts {
		s.LastResult = &RoundResult{Kind: ResultExhausted, Answer: c.Name, Anime: c.Anime}
		e.StartNewRound(s, pool)
		return outcome(StatusError, MsgGameOver, c.Name)
	}
	return outcome(StatusWarning, MsgWrong, e.rules.MaxAttempts-s.Attempts)
}

// Skip reveals the answer and deals a new round. A skipped round breaks the combo.
func (e *Engine) Skip(s *Session, pool models.Pool) Outcome {
	c, ok := e.current(s, pool)
	if !ok {
		return outcome(StatusWarning, MsgNoRound)
	}
	s.Combo = 0
	s.LastResult = &RoundResult{Kind: ResultSkipped, Answer: c.Name, Anime: c.Anime}
	e.StartNewRound(s, pool)
	return outcome(StatusInfo, MsgSkipped, c.Name)
}

// RetireStaleRound ends a round whose character is no longer in pool, which happens when a refresh replaces the
// shared scraped characters mid-round. The answer is revealed as if skipped and a new round is dealt from pool.
// It reports false when the round is still playable.
func (e *Engine) RetireStaleRound(s *Session, pool models.Pool) (Outcome, bool) {
	if !s.Started || s.Current == "" {
		return Outcome{}, false
	}
	if _, ok := pool.Find(s.Current); ok {
		return Outcome{}, false
	}
	answer := s.Current
	s.Combo = 0
	s.LastResult = &RoundResult{Kind: ResultSkipped, Answer: answer, Anime: s.CurrentAnime}
	s.Used = nil
	e.StartNewRound(s, pool)
	return outcome(StatusWarning, MsgRoundRetired, answer), true
}

// Acknowledge dismisses the result of the previous round.
func (e *Engine) Acknowledge(s *Session) Outcome {
	s.LastResult = nil
	return outcome(StatusInfo, MsgResultAcknowledged)
}

// SwitchPool makes pool the active pool of the session. requested is the provenance the player asked for, which
// differs from pool.Source when a refresh fell back to the bundled characters.
func (e *Engine) SwitchPool(s *Session, pool models.Pool, requested models.Provenance) Outcome {
	s.Source = pool.Source
	s.DataLoaded = true
	s.Used = nil
	if s.Started {
		if _, ok := pool.Find(s.Current); !ok {
			s.LastResult = nil
			e.StartNewRound(s, pool)
		}
	}
	switch {
	case requested == models.ProvenanceBackup:
		return outcome(StatusSuccess, MsgBackupSelected, pool.Len())
	case pool.Source == models.ProvenanceScraped:
		return outcome(StatusSuccess, MsgDataLoaded, pool.Len())
	default:
		return outcome(StatusWarning, MsgDataFallback, pool.Len())
	}
}

func (e *Engine) caseRound(s *Session, pool models.Pool) (models.Character, *Outcome) {
	if s.Mode != ModeCase {
		o := outcome(StatusWarning, MsgCaseOnly)
		return models.Character{}, &o
	}
	c, ok := e.current(s, pool)
	if !ok {
		o := outcome(StatusWarning, MsgNoRound)
		return models.Character{}, &o
	}
	s.LastResult = nil
	return c, nil
}

// CollectEvidence spends energy to add the next clue of kind to the case.
func (e *Engine) CollectEvidence(s *Session, pool models.Pool, kind EvidenceKind) Outcome {
	c, refused := e.caseRound(s, pool)
	if refused != nil {
		return *refused
	}
	if _, ok := ParseEvidenceKind(string(kind)); !ok {
		return outcome(StatusError, MsgUnknownEvidence, string(kind))
	}
	if s.Case.Energy < e.rules.EvidenceCost {
		return outcome(StatusWarning, MsgLowEnergy, e.rules.EvidenceCost, s.Case.Energy)
	}
	clue, ok := nextClue(c, kind, s.Case.countKind(kind))
	if !ok {
		return outcome(StatusInfo, MsgEvidenceExhausted, string(kind))
	}
	s.Case.Energy -= e.rules.EvidenceCost
	s.Case.Evidence = append(s.Case.Evidence, Evidence{Kind: kind, Text: clue})
	if e.updatePhase(s, c) {
		return outcome(StatusSuccess, MsgDeductionUnlocked, clue)
	}
	return outcome(StatusSuccess, MsgEvidenceFound, clue)
}

// AdvanceTimeline moves the timeline cursor forward by one event.
func (e *Engine) AdvanceTimeline(s *Session, pool models.Pool) Outcome {
	c, refused := e.caseRound(s, pool)
	if refused != nil {
		return *refused
	}
	if s.Case.TimelinePos >= len(c.Case.Timeline) {
		return outcome(StatusInfo, MsgTimelineEnd)
	}
	event := c.Case.Timeline[s.Case.TimelinePos]
	s.Case.TimelinePos++
	return outcome(StatusInfo, MsgTimelineEvent, event.Year, event.Event)
}

// RevealPuzzlePiece spends energy to uncover one cell of the puzzle grid.
func (e *Engine) RevealPuzzlePiece(s *Session, pool models.Pool, index int) Outcome {
	c, refused := e.caseRound(s, pool)
	if refused != nil {
		return *refused
	}
	pieces := c.Case.PuzzlePieces()
	if index < 0 || index >= len(pieces) {
		return outcome(StatusError, MsgInvalidPiece, index+1)
	}
	if s.Case.IsRevealed(index) {
		return outcome(StatusInfo, MsgPieceAlreadyShown, index+1)
	}
	if s.Case.Energy < e.rules.PuzzleCost {
		return outcome(StatusWarning, MsgLowEnergy, e.rules.PuzzleCost, s.Case.Energy)
	}
	s.Case.Energy -= e.rules.PuzzleCost
	s.Case.Revealed = append(s.Case.Revealed, index)
	piece := pieces[index]
	if e.updatePhase(s, c) {
		return outcome(StatusSuccess, MsgPieceDeduction, piece.Name, piece.Value)
	}
	return outcome(StatusSuccess, MsgPieceRevealed, piece.Name, piece.Value)
}

// cluesNeeded is the evidence count that unlocks deduction. Characters with a thin case file need fewer clues.
func (e *Engine) cluesNeeded(c models.Character) int {
	available := 0
	for _, kind := range EvidenceKinds {
		available += clueCount(c, kind)
	}
	return min(e.rules.DeductionThreshold, available)
}

// CluesNeeded reports the evidence count that unlocks deduction for the current character.
func (e *Engine) CluesNeeded(s *Session, pool models.Pool) int {
	c, ok := e.current(s, pool)
	if !ok {
		return e.rules.DeductionThreshold
	}
	return e.cluesNeeded(c)
}

// updatePhase moves the round to deduction once enough clues are collected or no further evidence can be paid
// for. It reports whether the phase changed.
func (e *Engine) updatePhase(s *Session, c models.Character) bool {
	if s.Case.Phase != PhaseInvestigation {
		return false
	}
	if len(s.Case.Evidence) >= e.cluesNeeded(c) || s.Case.Energy < e.rules.EvidenceCost {
		s.Case.Phase = PhaseDeduction
		return true
	}
	return false
}

func clueCount(c models.Character, kind EvidenceKind) int {
	switch kind {
	case EvidenceTrait:
		return len(c.Case.PuzzlePieces())
	case EvidenceTimeline:
		return len(c.Case.Timeline)
	case EvidenceRelationship:
		return len(c.Case.Relationships)
	case EvidenceTestimony:
		return len(c.Case.Evidence)
	default:
		return 0
	}
}

// nextClue renders the n-th clue of kind, or reports false when the case file has no more of them.
func nextClue(c models.Character, kind EvidenceKind, n int) (string, bool) {
	if n >= clueCount(c, kind) {
		return "", false
	}
	switch kind {
	case EvidenceTrait:
		piece := c.Case.PuzzlePieces()[n]
		return fmt.Sprintf("%s (%s): %s", piece.Name, piece.Category, piece.Value), true
	case EvidenceTimeline:
		event := c.Case.Timeline[n]
		return fmt.Sprintf("%d: %s", event.Year, event.Event), true
	case EvidenceRelationship:
		rel := c.Case.Relationships[n]
		return fmt.Sprintf("%s (%s)", rel.Name, rel.Relation), true
	case EvidenceTestimony:
		return c.Case.Evidence[n], true
	default:
		return "", false
	}
}
