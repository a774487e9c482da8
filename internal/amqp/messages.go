package amqp

import (
	"encoding/json"
	"time"
)

// TurnArchiveMessage asks the worker to archive one persisted conversation
// turn. It carries only the row id and session id; the worker fetches the
// full turn from the database.
type TurnArchiveMessage struct {
	TurnID    int64     `json:"turn_id"`
	SessionID string    `json:"session_id"`
	Timestamp time.Time `json:"timestamp"`
}

// NewTurnArchiveMessage creates an archive message for a stored turn.
func NewTurnArchiveMessage(turnID int64, sessionID string) *TurnArchiveMessage {
	return &TurnArchiveMessage{
		TurnID:    turnID,
		SessionID: sessionID,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *TurnArchiveMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// TurnArchiveMessageFromJSON creates a message from JSON bytes
func TurnArchiveMessageFromJSON(data []byte) (*TurnArchiveMessage, error) {
	var msg TurnArchiveMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
