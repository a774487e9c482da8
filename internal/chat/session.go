package chat

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Role identifies the author of a history entry.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of the in-memory conversation history.
type Message struct {
	Role Role
	Text string
}

// Session is the explicit per-run state object: conversation history, the
// logged-in flag and ancillary context. It is rebuilt fresh at every
// process start and never restored from persisted turns.
type Session struct {
	ID          string
	CurrentUser string
	LoggedIn    bool
	History     []Message
	Context     map[string]string
}

// NewSession initializes an empty session with a fresh identifier.
func NewSession() *Session {
	return &Session{
		ID:      uuid.NewString(),
		Context: make(map[string]string),
	}
}

// Append adds an entry to the in-memory history.
func (s *Session) Append(role Role, text string) {
	s.History = append(s.History, Message{Role: role, Text: text})
}

// Login marks the session as authenticated for the given user.
func (s *Session) Login(username string) {
	s.LoggedIn = true
	s.CurrentUser = username
	s.Context["current_user"] = username
}

// Logout clears authentication and conversation state.
func (s *Session) Logout() {
	s.LoggedIn = false
	s.CurrentUser = ""
	s.History = nil
	s.Context = make(map[string]string)
}

// ContextJSON serializes the ancillary session state for persistence
// alongside a conversation turn.
func (s *Session) ContextJSON() string {
	data, err := json.Marshal(s.Context)
	if err != nil {
		return "{}"
	}
	return string(data)
}
