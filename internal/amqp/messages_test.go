package amqp

import (
	"testing"
	"time"
)

func TestNewTurnArchiveMessage(t *testing.T) {
	msg := NewTurnArchiveMessage(42, "session-1")

	if msg.TurnID != 42 {
		t.Errorf("NewTurnArchiveMessage() TurnID = %v, want 42", msg.TurnID)
	}
	if msg.SessionID != "session-1" {
		t.Errorf("NewTurnArchiveMessage() SessionID = %v, want session-1", msg.SessionID)
	}
	if msg.Timestamp.IsZero() {
		t.Error("NewTurnArchiveMessage() Timestamp should not be zero")
	}
	if time.Since(msg.Timestamp) > time.Second {
		t.Error("NewTurnArchiveMessage() Timestamp should be recent")
	}
}

func TestTurnArchiveMessage_JSON(t *testing.T) {
	msg := &TurnArchiveMessage{
		TurnID:    42,
		SessionID: "session-1",
		Timestamp: time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC),
	}

	jsonBytes, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	parsed, err := TurnArchiveMessageFromJSON(jsonBytes)
	if err != nil {
		t.Fatalf("TurnArchiveMessageFromJSON() error = %v", err)
	}

	if parsed.TurnID != msg.TurnID {
		t.Errorf("Parsed TurnID = %v, want %v", parsed.TurnID, msg.TurnID)
	}
	if parsed.SessionID != msg.SessionID {
		t.Errorf("Parsed SessionID = %v, want %v", parsed.SessionID, msg.SessionID)
	}
	if !parsed.Timestamp.Equal(msg.Timestamp) {
		t.Errorf("Parsed Timestamp = %v, want %v", parsed.Timestamp, msg.Timestamp)
	}
}

func TestTurnArchiveMessage_InvalidJSON(t *testing.T) {
	invalidJSON := []byte(`{"turn_id": "not_a_number"}`)

	_, err := TurnArchiveMessageFromJSON(invalidJSON)
	if err == nil {
		t.Error("TurnArchiveMessageFromJSON() should fail with invalid JSON")
	}
}
