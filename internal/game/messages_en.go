package game

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English

	message.SetString(lang, MsgRoundStarted, "Round %d: who is this character?")
	message.SetString(lang, MsgNoRound, "Start a game first!")
	message.SetString(lang, MsgEmptyPool, "No characters available.")
	message.SetString(lang, MsgHintUnlocked, "💡 New hint: %s")
	message.SetString(lang, MsgNoMoreHints, "No more hints for this character.")
	message.SetString(lang, MsgEmptyAnswer, "Please enter an answer!")
	message.SetString(lang, MsgCorrect, "🎉 Correct! +%d points")
	message.SetString(lang, MsgWrong, "⚠️ Wrong answer! %d attempts left")
	message.SetString(lang, MsgGameOver, "❌ Out of attempts! The answer was: %s")
	message.SetString(lang, MsgSkipped, "Skipped! The answer was: %s")
	message.SetString(lang, MsgRoundRetired, "The character list changed. The answer was: %s")
	message.SetString(lang, MsgKeepInvestigating, "🔍 Keep investigating: %d more clues needed before deduction.")
	message.SetString(lang, MsgCaseOnly, "This action is only available in case mode.")
	message.SetString(lang, MsgUnknownEvidence, "Unknown evidence kind %q.")
	message.SetString(lang, MsgLowEnergy, "⚡ Not enough energy: needs %d, %d left.")
	message.SetString(lang, MsgEvidenceFound, "🧾 Evidence collected: %s")
	message.SetString(lang, MsgEvidenceExhausted, "No more %s evidence to collect.")
	message.SetString(lang, MsgDeductionUnlocked, "🧠 Evidence collected: %s. Deduction phase unlocked!")
	message.SetString(lang, MsgTimelineEvent, "📅 %d: %s")
	message.SetString(lang, MsgTimelineEnd, "The timeline has no further events.")
	message.SetString(lang, MsgInvalidPiece, "Puzzle piece %d does not exist.")
	message.SetString(lang, MsgPieceRevealed, "🧩 %s: %s")
	message.SetString(lang, MsgPieceDeduction, "🧩 %s: %s. Deduction phase unlocked!")
	message.SetString(lang, MsgPieceAlreadyShown, "Puzzle piece %d is already revealed.")
	message.SetString(lang, MsgDataLoaded, "✅ Loaded %d characters from the web.")
	message.SetString(lang, MsgDataFallback, "⚠️ Fetching failed, playing with %d bundled characters.")
	message.SetString(lang, MsgBackupSelected, "Switched to %d bundled characters.")
	message.SetString(lang, MsgResultAcknowledged, "On to the next round!")
}
