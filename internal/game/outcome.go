package game

// Status is the severity of an outcome message.
type Status string

const (
	StatusSuccess Status = "success"
	StatusInfo    Status = "info"
	StatusWarning Status = "warning"
	StatusError   Status = "error"
)

// Message keys. The texts live in the message catalog, see messages_en.go.
const (
	MsgRoundStarted       = "game.round_started"
	MsgNoRound            = "game.no_round"
	MsgEmptyPool          = "game.empty_pool"
	MsgHintUnlocked       = "game.hint_unlocked"
	MsgNoMoreHints        = "game.no_more_hints"
	MsgEmptyAnswer        = "game.empty_answer"
	MsgCorrect            = "game.correct"
	MsgWrong              = "game.wrong"
	MsgGameOver           = "game.game_over"
	MsgSkipped            = "game.skipped"
	MsgRoundRetired       = "game.round_retired"
	MsgKeepInvestigating  = "game.keep_investigating"
	MsgCaseOnly           = "game.case_only"
	MsgUnknownEvidence    = "game.unknown_evidence"
	MsgLowEnergy          = "game.low_energy"
	MsgEvidenceFound      = "game.evidence_found"
	MsgEvidenceExhausted  = "game.evidence_exhausted"
	MsgDeductionUnlocked  = "game.deduction_unlocked"
	MsgTimelineEvent      = "game.timeline_event"
	MsgTimelineEnd        = "game.timeline_end"
	MsgInvalidPiece       = "game.invalid_piece"
	MsgPieceRevealed      = "game.piece_revealed"
	MsgPieceDeduction     = "game.piece_deduction"
	MsgPieceAlreadyShown  = "game.piece_already_revealed"
	MsgDataLoaded         = "game.data_loaded"
	MsgDataFallback       = "game.data_fallback"
	MsgBackupSelected     = "game.backup_selected"
	MsgResultAcknowledged = "game.result_acknowledged"
)

// Outcome is the human-readable result of an operation. Key is a message catalog key formatted with Args.
type Outcome struct {
	Status Status
	Key    string
	Args   []any
}

func outcome(status Status, key string, args ...any) Outcome {
	return Outcome{Status: status, Key: key, Args: args}
}
