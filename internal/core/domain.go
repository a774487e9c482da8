package core

import (
	"errors"
	"strings"
	"time"
)

// TimestampLayout is the wire format used for all persisted timestamps.
const TimestampLayout = "2006-01-02 15:04:05"

type (
	Money struct {
		Cents int64
	}

	// Expense is a single ledger entry. Expenses are append-only: once
	// recorded they are never mutated or deleted.
	Expense struct {
		ID          int64
		Description string
		Amount      Money
		Timestamp   time.Time
	}

	// ConversationTurn is one persisted chat exchange. Write-only audit
	// record; nothing reads it back except the archival worker.
	ConversationTurn struct {
		ID        int64
		SessionID string
		Timestamp time.Time
		UserMsg   string
		BotReply  string
		Context   string // serialized snapshot of ancillary session state
		Archived  bool
	}

	User struct {
		Username     string
		PasswordHash string
		CreatedAt    time.Time
	}
)

var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrEmptyDescription  = errors.New("empty description")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Validate checks an expense for form-style input: a non-empty, bounded
// description and a positive amount. Structured chat commands skip it and
// record their captured description as-is.
func (e Expense) Validate() error {
	if len(strings.TrimSpace(e.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(e.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	return e.Amount.Validate()
}
