package models

// CaseFile holds the investigation material of a character used by the case mode. All of it is flavor text that
// never takes part in answer validation.
type CaseFile struct {
	Traits          []TraitCategory `json:"traits,omitempty"`
	Timeline        []TimelineEvent `json:"timeline,omitempty"`
	Relationships   []Relationship  `json:"relationships,omitempty"`
	Evidence        []string        `json:"evidence,omitempty"`
	MysteryQuestion string          `json:"mysteryQuestion,omitempty"`
}

// TraitCategory groups traits such as "appearance" or "abilities".
type TraitCategory struct {
	Category string  `json:"category"`
	Traits   []Trait `json:"traits"`
}

type Trait struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// TimelineEvent is a dated event in the life of a character. Importance ranges from 1 (minor) to 5 (pivotal).
type TimelineEvent struct {
	Year       int    `json:"year"`
	Event      string `json:"event"`
	Importance int    `json:"importance"`
}

type Relationship struct {
	Name     string `json:"name"`
	Relation string `json:"relation"`
}

// PuzzlePiece is one cell of the puzzle grid.
type PuzzlePiece struct {
	Category string `json:"category"`
	Name     string `json:"name"`
	Value    string `json:"value"`
}

// PuzzlePieces flattens the traits into grid cells in category order.
func (c CaseFile) PuzzlePieces() []PuzzlePiece {
	var pieces []PuzzlePiece
	for _, category := range c.Traits {
		for _, trait := range category.Traits {
			pieces = append(pieces, PuzzlePiece{
				Category: category.Category,
				Name:     trait.Name,
				Value:    trait.Value,
			})
		}
	}
	return pieces
}

// IsEmpty reports whether the case file carries no material at all.
func (c CaseFile) IsEmpty() bool {
	return len(c.Traits) == 0 && len(c.Timeline) == 0 && len(c.Relationships) == 0 && len(c.Evidence) == 0 &&
		c.MysteryQuestion == ""
}
