// Package worker exports persisted conversation turns to a JSONL archive.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"smartspend/internal/amqp"
	"smartspend/internal/core"
	"smartspend/internal/storage"
)

// AuditWorker consumes turn-archival events, loads each turn from SQLite
// and appends it to an append-only JSONL archive file.
type AuditWorker struct {
	storage     *storage.SQLiteRepository
	archivePath string
	mu          sync.Mutex
}

func NewAuditWorker(storage *storage.SQLiteRepository, archivePath string) *AuditWorker {
	return &AuditWorker{
		storage:     storage,
		archivePath: archivePath,
	}
}

// archiveRecord is the JSONL line written per conversation turn.
type archiveRecord struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	Timestamp time.Time `json:"timestamp"`
	UserMsg   string    `json:"user_message"`
	BotReply  string    `json:"bot_response"`
	Context   string    `json:"context"`
}

// HandleArchiveMessage processes a single archival event. Re-deliveries of
// already-archived turns are acknowledged without rewriting the archive.
func (w *AuditWorker) HandleArchiveMessage(ctx context.Context, msg *amqp.TurnArchiveMessage) error {
	turn, err := w.storage.GetTurn(ctx, msg.TurnID)
	if err != nil {
		return fmt.Errorf("load turn from storage: %w", err)
	}

	if turn.Archived {
		slog.InfoContext(ctx, "Turn already archived, skipping",
			"turn_id", turn.ID,
			"component", "worker")
		return nil
	}

	if err := w.appendToArchive(turn); err != nil {
		return fmt.Errorf("append to archive: %w", err)
	}

	if err := w.storage.MarkTurnArchived(ctx, turn.ID); err != nil {
		return fmt.Errorf("mark turn archived: %w", err)
	}

	slog.InfoContext(ctx, "Conversation turn archived",
		"turn_id", turn.ID,
		"session_id", turn.SessionID,
		"component", "worker",
		"operation", "archive")
	return nil
}

func (w *AuditWorker) appendToArchive(turn *core.ConversationTurn) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := os.OpenFile(w.archivePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open archive file: %w", err)
	}
	defer f.Close()

	line, err := json.Marshal(archiveRecord{
		ID:        turn.ID,
		SessionID: turn.SessionID,
		Timestamp: turn.Timestamp,
		UserMsg:   turn.UserMsg,
		BotReply:  turn.BotReply,
		Context:   turn.Context,
	})
	if err != nil {
		return fmt.Errorf("marshal archive record: %w", err)
	}

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("write archive record: %w", err)
	}
	return nil
}
