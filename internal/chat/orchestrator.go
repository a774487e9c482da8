// Package chat routes interpreted user input to either a direct ledger
// mutation or the language-model pipeline, persists each chat exchange and
// maintains the in-memory conversation history for the session.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"smartspend/internal/core"
	"smartspend/internal/interpreter"
	"smartspend/internal/llm"
)

const (
	// MsgInsufficientFunds is returned when an expense exceeds the balance.
	MsgInsufficientFunds = "❌ Insufficient funds! Please check your balance."
	// MsgTryAgain is the generic persistence-failure response.
	MsgTryAgain = "Something went wrong saving your data. Please try again."
	// MsgFallback is returned when the language model is unreachable.
	MsgFallback = "I couldn't reach the advice service just now. Your records are safe — please try again in a moment."

	// PromptAnalyzeSpending drives the spending-analysis action.
	PromptAnalyzeSpending = "Please analyze my spending patterns and provide insights."
	// PromptSavingsAdvice drives the savings-advice action.
	PromptSavingsAdvice = "Please suggest ways to save better based on my spending patterns."
)

// Store is the slice of the repository the orchestrator needs. The ledger
// itself (balance + expenses) is owned by the store; the orchestrator owns
// ConversationTurn persistence.
type Store interface {
	Balance(ctx context.Context) (core.Money, error)
	AddToBalance(ctx context.Context, amount core.Money) error
	RecordExpense(ctx context.Context, e core.Expense) (int64, error)
	ListExpenses(ctx context.Context) ([]core.Expense, error)
	SaveTurn(ctx context.Context, t core.ConversationTurn) (int64, error)
}

// Publisher emits turn-archival events. A nil Publisher disables archival
// without affecting chat.
type Publisher interface {
	PublishTurnArchive(ctx context.Context, turnID int64, sessionID string) error
}

// Orchestrator is the single entry point for user messages.
type Orchestrator struct {
	store     Store
	llm       llm.Client
	interp    interpreter.Interpreter
	publisher Publisher
	now       func() time.Time
}

func NewOrchestrator(store Store, llmClient llm.Client, interp interpreter.Interpreter, publisher Publisher) *Orchestrator {
	return &Orchestrator{
		store:     store,
		llm:       llmClient,
		interp:    interp,
		publisher: publisher,
		now:       time.Now,
	}
}

// ProcessMessage classifies raw input and handles it end to end. Every
// failure is converted into a user-safe response; the session loop never
// sees a raw error.
func (o *Orchestrator) ProcessMessage(ctx context.Context, session *Session, text string) string {
	if text == "" {
		return ""
	}

	cmd := o.interp.Interpret(text, o.now())
	if cmd.Kind == interpreter.KindExpense {
		return o.handleExpense(ctx, cmd)
	}
	return o.handleChat(ctx, session, text)
}

func (o *Orchestrator) handleExpense(ctx context.Context, cmd interpreter.Command) string {
	// The pattern accepts a zero amount syntactically; reject it here
	// before any mutation.
	if cmd.Amount.Cents <= 0 {
		return "Expense amount must be greater than zero."
	}

	// The description is whatever the pattern captured, including the
	// empty string. Structured commands record it untouched.
	_, err := o.store.RecordExpense(ctx, core.Expense{
		Description: cmd.Description,
		Amount:      cmd.Amount,
		Timestamp:   cmd.EffectiveDate,
	})
	switch {
	case errors.Is(err, core.ErrInsufficientFunds):
		return MsgInsufficientFunds
	case err != nil:
		slog.ErrorContext(ctx, "Failed to record expense",
			"error", err,
			"expense_description", cmd.Description,
			"amount_cents", cmd.Amount.Cents,
			"component", "chat",
			"operation", "record")
		return MsgTryAgain
	}

	return fmt.Sprintf("✅ Added expense: %s - %s", cmd.Description, cmd.Amount)
}

func (o *Orchestrator) handleChat(ctx context.Context, session *Session, text string) string {
	session.Append(RoleUser, text)

	reply := o.generateReply(ctx, text)
	session.Append(RoleAssistant, reply)

	turnID, err := o.store.SaveTurn(ctx, core.ConversationTurn{
		SessionID: session.ID,
		Timestamp: o.now(),
		UserMsg:   text,
		BotReply:  reply,
		Context:   session.ContextJSON(),
	})
	if err != nil {
		// The user already has a reply; losing the audit row is logged,
		// not surfaced.
		slog.ErrorContext(ctx, "Failed to persist conversation turn",
			"error", err,
			"session_id", session.ID,
			"component", "chat")
		return reply
	}

	o.publishArchive(ctx, turnID, session.ID)
	return reply
}

func (o *Orchestrator) generateReply(ctx context.Context, question string) string {
	balance, err := o.store.Balance(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to read balance", "error", err, "component", "chat")
		return MsgTryAgain
	}
	expenses, err := o.store.ListExpenses(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to list expenses", "error", err, "component", "chat")
		return MsgTryAgain
	}

	contextText := BuildContext(balance, expenses)
	reply, err := o.llm.Generate(ctx, contextText, question)
	if err != nil {
		slog.WarnContext(ctx, "Language model call failed, using fallback",
			"error", err,
			"component", "chat",
			"operation", "generate")
		return MsgFallback
	}
	return reply
}

func (o *Orchestrator) publishArchive(ctx context.Context, turnID int64, sessionID string) {
	if o.publisher == nil {
		return
	}
	if err := o.publisher.PublishTurnArchive(ctx, turnID, sessionID); err != nil {
		// Best effort: archival lag must not fail the interaction.
		slog.ErrorContext(ctx, "Failed to publish archive message",
			"error", err,
			"turn_id", turnID,
			"component", "chat")
	}
}

// AddExpense records a form-submitted expense through the same
// funds-checked transaction as structured chat commands.
func (o *Orchestrator) AddExpense(ctx context.Context, description string, amount core.Money) error {
	_, err := o.store.RecordExpense(ctx, core.Expense{
		Description: description,
		Amount:      amount,
		Timestamp:   o.now(),
	})
	return err
}

// AddToBalance tops up the available funds.
func (o *Orchestrator) AddToBalance(ctx context.Context, amount core.Money) error {
	return o.store.AddToBalance(ctx, amount)
}
