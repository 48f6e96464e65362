package eventstream

import (
	"time"

	"github.com/google/uuid"
)

const (
	// SchemaVersionV1 is the first version of the event payload schema.
	SchemaVersionV1 = 1

	// EventTypeTurnRecorded is emitted after a conversation turn is recorded.
	EventTypeTurnRecorded = "unibot.turn.recorded"
)

// TurnEvent is a transport-neutral event payload for a recorded turn.
type TurnEvent struct {
	SchemaVersion int       `json:"schema_version"`
	EventType     string    `json:"event_type"`
	EventID       string    `json:"event_id"`
	EmittedAt     time.Time `json:"emitted_at"`
	SessionID     string    `json:"session_id"`
	Mode          string    `json:"mode"`
	Intent        string    `json:"intent"`
	UserText      string    `json:"user_text"`
	BotText       string    `json:"bot_text"`
}

// NewTurnEvent stamps a v1 turn event with a fresh id.
func NewTurnEvent(sessionID, mode, intent, userText, botText string, emittedAt time.Time) *TurnEvent {
	return &TurnEvent{
		SchemaVersion: SchemaVersionV1,
		EventType:     EventTypeTurnRecorded,
		EventID:       uuid.NewString(),
		EmittedAt:     emittedAt.UTC(),
		SessionID:     sessionID,
		Mode:          mode,
		Intent:        intent,
		UserText:      userText,
		BotText:       botText,
	}
}
