package worker

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartspend/internal/amqp"
	"smartspend/internal/core"
	"smartspend/internal/storage"
)

func newTestWorker(t *testing.T) (*AuditWorker, *storage.SQLiteRepository, string) {
	t.Helper()

	repo, err := storage.NewSQLiteRepository(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	archivePath := filepath.Join(t.TempDir(), "conversations.jsonl")
	return NewAuditWorker(repo, archivePath), repo, archivePath
}

func saveTurn(t *testing.T, repo *storage.SQLiteRepository, userMsg, botReply string) int64 {
	t.Helper()
	id, err := repo.SaveTurn(context.Background(), core.ConversationTurn{
		SessionID: "session-1",
		Timestamp: time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local),
		UserMsg:   userMsg,
		BotReply:  botReply,
		Context:   "{}",
	})
	require.NoError(t, err)
	return id
}

func readArchiveLines(t *testing.T, path string) []archiveRecord {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var records []archiveRecord
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var rec archiveRecord
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
		records = append(records, rec)
	}
	require.NoError(t, scanner.Err())
	return records
}

func TestHandleArchiveMessage(t *testing.T) {
	worker, repo, archivePath := newTestWorker(t)
	ctx := context.Background()

	turnID := saveTurn(t, repo, "hello", "Hi! How can I help?")

	err := worker.HandleArchiveMessage(ctx, &amqp.TurnArchiveMessage{
		TurnID:    turnID,
		SessionID: "session-1",
	})
	require.NoError(t, err)

	records := readArchiveLines(t, archivePath)
	require.Len(t, records, 1)
	assert.Equal(t, turnID, records[0].ID)
	assert.Equal(t, "session-1", records[0].SessionID)
	assert.Equal(t, "hello", records[0].UserMsg)
	assert.Equal(t, "Hi! How can I help?", records[0].BotReply)

	turn, err := repo.GetTurn(ctx, turnID)
	require.NoError(t, err)
	assert.True(t, turn.Archived)
}

func TestHandleArchiveMessage_RedeliveryIsIdempotent(t *testing.T) {
	worker, repo, archivePath := newTestWorker(t)
	ctx := context.Background()

	turnID := saveTurn(t, repo, "hello", "Hi!")
	msg := &amqp.TurnArchiveMessage{TurnID: turnID, SessionID: "session-1"}

	require.NoError(t, worker.HandleArchiveMessage(ctx, msg))
	require.NoError(t, worker.HandleArchiveMessage(ctx, msg))

	// The second delivery must not duplicate the archive line.
	records := readArchiveLines(t, archivePath)
	assert.Len(t, records, 1)
}

func TestHandleArchiveMessage_UnknownTurn(t *testing.T) {
	worker, _, archivePath := newTestWorker(t)

	err := worker.HandleArchiveMessage(context.Background(), &amqp.TurnArchiveMessage{
		TurnID:    9999,
		SessionID: "session-1",
	})
	assert.Error(t, err)

	_, statErr := os.Stat(archivePath)
	assert.True(t, os.IsNotExist(statErr), "no archive file should be created for a failed message")
}

func TestHandleArchiveMessage_AppendsInOrder(t *testing.T) {
	worker, repo, archivePath := newTestWorker(t)
	ctx := context.Background()

	first := saveTurn(t, repo, "first", "one")
	second := saveTurn(t, repo, "second", "two")

	require.NoError(t, worker.HandleArchiveMessage(ctx, &amqp.TurnArchiveMessage{TurnID: first}))
	require.NoError(t, worker.HandleArchiveMessage(ctx, &amqp.TurnArchiveMessage{TurnID: second}))

	records := readArchiveLines(t, archivePath)
	require.Len(t, records, 2)
	assert.Equal(t, "first", records[0].UserMsg)
	assert.Equal(t, "second", records[1].UserMsg)
}
