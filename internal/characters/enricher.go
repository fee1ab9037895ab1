package characters

import (
	"context"
	"fmt"
	"github.com/OPSAF/Anime/internal/models"
	"unicode/utf8"
)

// Enricher writes a case file for a character that only carries a name, a work and a hint.
type Enricher interface {
	Enrich(ctx context.Context, c models.Character) (models.CaseFile, error)
}

// DerivedCaseFile builds a minimal case file from the fields every character has.
func DerivedCaseFile(c models.Character) models.CaseFile {
	first, _ := utf8.DecodeRuneInString(c.Name)
	profile := []models.Trait{
		{Name: "initial", Value: string(first)},
		{Name: "name length", Value: fmt.Sprintf("%d characters", utf8.RuneCountInString(c.Name))},
	}
	return models.CaseFile{
		Traits: []models.TraitCategory{
			{Category: "work", Traits: []models.Trait{{Name: "title", Value: c.Anime}}},
			{Category: "profile", Traits: profile},
		},
		Evidence:        []string{c.Hint},
		MysteryQuestion: fmt.Sprintf("Who is this character from %s?", c.Anime),
	}
}
