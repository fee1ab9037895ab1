package main

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English

	message.SetString(lang, msgStillLoading, "⏳ Still fetching characters in the background, playing with %d characters for now.")
	message.SetString(lang, msgFetchingDisabled, "Fetching is disabled, playing with %d bundled characters.")

	message.SetString(lang, "ui.title", "Anime Character Guessing Game")
	message.SetString(lang, "ui.timeout_title", "Timeout")
	message.SetString(lang, "ui.timeout_text", "The game took too long to answer. Fetching characters may still be running in the background.")
	message.SetString(lang, "ui.timeout_back", "Back to the game")
	message.SetString(lang, "ui.nav_game", "Game")
	message.SetString(lang, "ui.nav_characters", "Characters")
	message.SetString(lang, "ui.nav_api", "API")

	message.SetString(lang, "ui.score", "Score")
	message.SetString(lang, "ui.combo", "Combo")
	message.SetString(lang, "ui.max_combo", "Best combo")
	message.SetString(lang, "ui.rounds", "Rounds")
	message.SetString(lang, "ui.solved", "Solved")
	message.SetString(lang, "ui.pool", "%d characters (%s)")
	message.SetString(lang, "ui.scoring", "Scoring: %s")

	message.SetString(lang, "ui.answer_was", "The answer was")
	message.SetString(lang, "ui.points_earned", "+%d points")
	message.SetString(lang, "ui.continue", "Continue")
	message.SetString(lang, "ui.start_classic", "Start classic game")
	message.SetString(lang, "ui.start_case", "Start case investigation")
	message.SetString(lang, "ui.round", "Round %d")
	message.SetString(lang, "ui.hint_tier_0", "Anime")
	message.SetString(lang, "ui.hint_tier_1", "Description")
	message.SetString(lang, "ui.hint_tier_2", "First letter")
	message.SetString(lang, "ui.attempts_left", "%d attempts left")
	message.SetString(lang, "ui.your_answer", "Your answer")
	message.SetString(lang, "ui.submit", "Submit")
	message.SetString(lang, "ui.hint", "Hint")
	message.SetString(lang, "ui.skip", "Skip")

	message.SetString(lang, "ui.phase_investigation", "Investigation")
	message.SetString(lang, "ui.phase_deduction", "Deduction")
	message.SetString(lang, "ui.energy", "Energy %d/%d")
	message.SetString(lang, "ui.clues", "Clues %d/%d")
	message.SetString(lang, "ui.evidence_trait", "Trait")
	message.SetString(lang, "ui.evidence_timeline", "Timeline")
	message.SetString(lang, "ui.evidence_relationship", "Relationship")
	message.SetString(lang, "ui.evidence_testimony", "Testimony")
	message.SetString(lang, "ui.timeline", "Timeline")
	message.SetString(lang, "ui.advance_timeline", "Next event")
	message.SetString(lang, "ui.puzzle", "Puzzle")

	message.SetString(lang, "ui.data", "Character data")
	message.SetString(lang, "ui.refresh", "Fetch from the web")
	message.SetString(lang, "ui.use_backup", "Use bundled characters")
	message.SetString(lang, "ui.debug_show", "Show debug info")
	message.SetString(lang, "ui.debug_hide", "Hide debug info")
	message.SetString(lang, "ui.debug", "Debug")
	message.SetString(lang, "ui.debug_enabled", "Fetching enabled")
	message.SetString(lang, "ui.debug_loading", "Fetch running")
	message.SetString(lang, "ui.debug_scraped", "Scraped characters")
	message.SetString(lang, "ui.debug_fetched_at", "Fetched at")
	message.SetString(lang, "ui.debug_last_error", "Last error")
	message.SetString(lang, "ui.trace_step", "Step")
	message.SetString(lang, "ui.trace_selector", "Selector")
	message.SetString(lang, "ui.trace_count", "Matches")
	message.SetString(lang, "ui.trace_error", "Error")

	message.SetString(lang, "ui.characters_title", "Characters")
	message.SetString(lang, "ui.characters_count", "Characters")
	message.SetString(lang, "ui.characters_works", "Works")
	message.SetString(lang, "ui.characters_source", "Source")
	message.SetString(lang, "ui.characters_name", "Name")
	message.SetString(lang, "ui.characters_anime", "Anime")
	message.SetString(lang, "ui.characters_hint", "Description")
}
