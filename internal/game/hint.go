package game

import (
	"github.com/OPSAF/Anime/internal/models"
	"unicode/utf8"
)

// MaxHintLevel is the last hint tier. Tier 0 is the work title, tier 1 the clue, tier 2 the first glyph of the name.
const MaxHintLevel = 2

func clampLevel(level int) int {
	return min(max(level, 0), MaxHintLevel)
}

// HintFor returns the hint text of the tier at level. Levels outside [0, MaxHintLevel] are clamped.
func HintFor(c models.Character, level int) string {
	switch clampLevel(level) {
	case 0:
		return c.Anime
	case 1:
		return c.Hint
	default:
		r, _ := utf8.DecodeRuneInString(c.Name)
		if r == utf8.RuneError {
			return ""
		}
		return string(r)
	}
}

// Hints returns the text of every tier unlocked up to and including level.
func Hints(c models.Character, level int) []string {
	level = clampLevel(level)
	hints := make([]string, 0, level+1)
	for i := 0; i <= level; i++ {
		hints = append(hints, HintFor(c, i))
	}
	return hints
}
