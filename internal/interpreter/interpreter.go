// Package interpreter classifies raw chat input as either a structured
// expense-logging command or free-form conversation. It is a first-pass,
// pattern-based classifier hidden behind the Interpreter interface so a
// richer intent parser can replace it without touching the orchestrator.
package interpreter

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"smartspend/internal/core"
)

// Kind is the classification assigned to a piece of user input.
type Kind int

const (
	// KindChat routes the input to the language-model pipeline.
	KindChat Kind = iota
	// KindExpense is a direct instruction to record an expense.
	KindExpense
)

// Command is the result of interpreting one input. For KindExpense the
// Amount, Description and EffectiveDate fields are populated; for KindChat
// only Text carries meaning.
type Command struct {
	Kind          Kind
	Amount        core.Money
	Description   string
	EffectiveDate time.Time
	Text          string
}

// Interpreter turns raw user text into a Command. Implementations must be
// pure: the same text and clock always produce the same Command.
type Interpreter interface {
	Interpret(text string, now time.Time) Command
}

// Recognized form: "spent <amount> on <description> <time anchor>" where the
// anchor is today, yesterday or "N days ago". Anything else is chat.
var expensePattern = regexp.MustCompile(`spent\s+(\d+)\s+on\s+(.*?)\s+(today|yesterday|(\d+)\s+days?\s+ago)`)

// Pattern is the regex-backed Interpreter.
type Pattern struct{}

// NewPattern returns the default pattern-based interpreter.
func NewPattern() *Pattern {
	return &Pattern{}
}

// Interpret matches the expense pattern against the lowercased input. Any
// deviation from the full pattern (missing amount, missing time anchor,
// unparseable number) falls through to KindChat, never to a partial match.
func (p *Pattern) Interpret(text string, now time.Time) Command {
	lowered := strings.ToLower(text)

	m := expensePattern.FindStringSubmatch(lowered)
	if m == nil {
		return Command{Kind: KindChat, Text: text}
	}

	units, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil || units > (1<<63-1)/100 {
		return Command{Kind: KindChat, Text: text}
	}

	date := now
	switch {
	case m[3] == "yesterday":
		date = now.AddDate(0, 0, -1)
	case m[4] != "":
		// Digits only by construction; bounded to keep AddDate sane.
		days, convErr := strconv.Atoi(m[4])
		if convErr != nil || days > 365*100 {
			return Command{Kind: KindChat, Text: text}
		}
		date = now.AddDate(0, 0, -days)
	}

	return Command{
		Kind:          KindExpense,
		Amount:        core.Money{Cents: units * 100},
		Description:   m[2],
		EffectiveDate: date,
		Text:          text,
	}
}
