package game

import (
	"github.com/OPSAF/Anime/internal/models"
	"slices"
)

// Mode selects the plain guessing loop or the case investigation variant.
type Mode string

const (
	ModeClassic Mode = "classic"
	ModeCase    Mode = "case"
)

// Phase of a case round. Answers are only accepted in the deduction phase.
type Phase string

const (
	PhaseInvestigation Phase = "investigation"
	PhaseDeduction     Phase = "deduction"
)

// EvidenceKind selects which part of the case file a clue is drawn from.
type EvidenceKind string

const (
	EvidenceTrait        EvidenceKind = "trait"
	EvidenceTimeline     EvidenceKind = "timeline"
	EvidenceRelationship EvidenceKind = "relationship"
	EvidenceTestimony    EvidenceKind = "testimony"
)

// EvidenceKinds lists the kinds in display order.
var EvidenceKinds = []EvidenceKind{EvidenceTrait, EvidenceTimeline, EvidenceRelationship, EvidenceTestimony}

// ParseEvidenceKind validates a user supplied kind.
func ParseEvidenceKind(s string) (EvidenceKind, bool) {
	kind := EvidenceKind(s)
	return kind, slices.Contains(EvidenceKinds, kind)
}

// Evidence is one collected clue.
type Evidence struct {
	Kind EvidenceKind `json:"kind"`
	Text string       `json:"text"`
}

// CaseState is the per-round investigation state of the case mode.
type CaseState struct {
	Phase       Phase
	Energy      int
	Evidence    []Evidence
	TimelinePos int
	Revealed    []int
}

// IsRevealed reports whether the puzzle piece at index has been revealed.
func (c CaseState) IsRevealed(index int) bool {
	return slices.Contains(c.Revealed, index)
}

func (c CaseState) countKind(kind EvidenceKind) int {
	n := 0
	for _, e := range c.Evidence {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// ResultKind tells how a round ended.
type ResultKind string

const (
	ResultSolved    ResultKind = "solved"
	ResultExhausted ResultKind = "exhausted"
	ResultSkipped   ResultKind = "skipped"
)

// RoundResult describes the previous round until the player acknowledges it.
type RoundResult struct {
	Kind   ResultKind `json:"kind"`
	Answer string     `json:"answer"`
	Anime  string     `json:"anime"`
	Points int        `json:"points"`
}

// Session is the state of one player. It only holds plain data so that it can be stored in the session store;
// all transitions go through [Engine].
type Session struct {
	Started    bool
	Mode       Mode
	Scoring    ScoringMode
	Source     models.Provenance
	DataLoaded bool

	Score    int
	Combo    int
	MaxCombo int
	Rounds   int
	Solved   int

	// Current is the name of the character being guessed. It refers into the pool of Source.
	Current string
	// CurrentAnime lets the answer be revealed after a refresh removed the character from the pool.
	CurrentAnime string
	Attempts     int
	HintLevel    int
	// Used holds the names presented in the current cycle through the pool.
	Used []string

	Case       CaseState
	LastResult *RoundResult
}

func (s *Session) isUsed(name string) bool {
	return slices.Contains(s.Used, name)
}
