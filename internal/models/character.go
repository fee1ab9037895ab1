package models

import (
	"strings"
	"unicode/utf8"
)

// Provenance tells where a character record came from. It has no effect on gameplay.
type Provenance string

const (
	ProvenanceScraped Provenance = "scraped"
	ProvenanceBackup  Provenance = "backup"
)

// MaxHintRunes bounds the display length of a free-text hint.
const MaxHintRunes = 50

// UnknownWork is used when the source work of a character cannot be determined.
const UnknownWork = "Unknown work"

// Character is a guessable character. Name is the answer key of a round and is compared case-insensitively.
type Character struct {
	Name   string     `json:"name"`
	Anime  string     `json:"anime"`
	Hint   string     `json:"hint"`
	URL    string     `json:"url,omitempty"`
	Source Provenance `json:"source"`
	Case   CaseFile   `json:"case"`
}

// placeholderNames are substrings of names that are too vague to be guessed.
var placeholderNames = []string{"主角", "main character", "protagonist"}

// IsPlaceholderName reports whether name is a generic stand-in such as "<work> protagonist".
func IsPlaceholderName(name string) bool {
	lower := strings.ToLower(name)
	for _, p := range placeholderNames {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// TruncateHint collapses whitespace and cuts the hint to MaxHintRunes runes, marking the cut with "...".
func TruncateHint(hint string) string {
	hint = strings.Join(strings.Fields(hint), " ")
	if utf8.RuneCountInString(hint) <= MaxHintRunes {
		return hint
	}
	runes := []rune(hint)
	return string(runes[:MaxHintRunes]) + "..."
}

// Pool is the set of characters a session plays with. It is never empty when produced by the repository.
type Pool struct {
	Source     Provenance  `json:"source"`
	Characters []Character `json:"characters"`
}

// Find looks up a character by its exact name.
func (p Pool) Find(name string) (Character, bool) {
	for _, c := range p.Characters {
		if c.Name == name {
			return c, true
		}
	}
	return Character{}, false
}

// Names returns the character names in pool order.
func (p Pool) Names() []string {
	names := make([]string, len(p.Characters))
	for i, c := range p.Characters {
		names[i] = c.Name
	}
	return names
}

// Len returns the number of characters.
func (p Pool) Len() int {
	return len(p.Characters)
}

// Works returns the distinct work titles in pool order.
func (p Pool) Works() []string {
	seen := make(map[string]bool, len(p.Characters))
	var works []string
	for _, c := range p.Characters {
		if seen[c.Anime] {
			continue
		}
		seen[c.Anime] = true
		works = append(works, c.Anime)
	}
	return works
}
