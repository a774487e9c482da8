// Package storage persists the ledger (balance + expenses), conversation
// audit records and user credentials in a single SQLite database.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"smartspend/internal/core"

	_ "modernc.org/sqlite"
)

var (
	ErrUsernameTaken = errors.New("username already exists")
	ErrUserNotFound  = errors.New("user not found")
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// Single interactive user per process; one connection keeps every
	// statement on the same database, including in-memory ones.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Balance returns the current available funds.
func (r *SQLiteRepository) Balance(ctx context.Context) (core.Money, error) {
	var cents int64
	err := r.db.QueryRowContext(ctx, "SELECT total_cents FROM user_data WHERE id = 1").Scan(&cents)
	if err != nil {
		return core.Money{}, fmt.Errorf("read balance: %w", err)
	}
	return core.Money{Cents: cents}, nil
}

// AddToBalance increments the balance by the given amount.
func (r *SQLiteRepository) AddToBalance(ctx context.Context, amount core.Money) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		"UPDATE user_data SET total_cents = total_cents + ? WHERE id = 1", amount.Cents)
	if err != nil {
		return fmt.Errorf("add to balance: %w", err)
	}
	return nil
}

// SetBalance overwrites the balance. Used when seeding initial funds.
func (r *SQLiteRepository) SetBalance(ctx context.Context, amount core.Money) error {
	if amount.Cents < 0 {
		return core.ErrInvalidAmount
	}
	_, err := r.db.ExecContext(ctx,
		"UPDATE user_data SET total_cents = ? WHERE id = 1", amount.Cents)
	if err != nil {
		return fmt.Errorf("set balance: %w", err)
	}
	return nil
}

// RecordExpense decrements the balance and appends the expense record in a
// single transaction. The funds check happens inside the transaction, so a
// rejected expense leaves zero mutations behind. The description is stored
// as-is; callers that want description validation apply Expense.Validate
// before recording.
func (r *SQLiteRepository) RecordExpense(ctx context.Context, e core.Expense) (int64, error) {
	if err := e.Amount.Validate(); err != nil {
		return 0, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var balance int64
	if err := tx.QueryRowContext(ctx, "SELECT total_cents FROM user_data WHERE id = 1").Scan(&balance); err != nil {
		return 0, fmt.Errorf("read balance: %w", err)
	}
	if e.Amount.Cents > balance {
		return 0, core.ErrInsufficientFunds
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE user_data SET total_cents = total_cents - ? WHERE id = 1", e.Amount.Cents); err != nil {
		return 0, fmt.Errorf("decrement balance: %w", err)
	}

	ts := e.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	res, err := tx.ExecContext(ctx,
		"INSERT INTO expenses (description, amount_cents, timestamp) VALUES (?, ?, ?)",
		e.Description, e.Amount.Cents, ts.Format(core.TimestampLayout))
	if err != nil {
		return 0, fmt.Errorf("insert expense: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("expense id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense recorded",
		"id", id,
		"expense_description", e.Description,
		"amount_cents", e.Amount.Cents,
		"component", "storage",
		"operation", "record")

	return id, nil
}

// ListExpenses returns every expense in insertion order.
func (r *SQLiteRepository) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, description, amount_cents, timestamp FROM expenses ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	return scanExpenses(rows)
}

// LastExpenses returns the most recent n expenses, newest first.
func (r *SQLiteRepository) LastExpenses(ctx context.Context, n int) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, description, amount_cents, timestamp FROM expenses ORDER BY timestamp DESC, id DESC LIMIT ?", n)
	if err != nil {
		return nil, fmt.Errorf("last expenses: %w", err)
	}
	defer rows.Close()

	return scanExpenses(rows)
}

func scanExpenses(rows *sql.Rows) ([]core.Expense, error) {
	var expenses []core.Expense
	for rows.Next() {
		var (
			e  core.Expense
			ts string
		)
		if err := rows.Scan(&e.ID, &e.Description, &e.Amount.Cents, &ts); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		parsed, err := time.ParseInLocation(core.TimestampLayout, ts, time.Local)
		if err == nil {
			e.Timestamp = parsed
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// SaveTurn persists one chat exchange to the conversations audit log.
func (r *SQLiteRepository) SaveTurn(ctx context.Context, t core.ConversationTurn) (int64, error) {
	ts := t.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO conversations (session_id, timestamp, user_message, bot_response, context) VALUES (?, ?, ?, ?, ?)",
		t.SessionID, ts.Format(core.TimestampLayout), t.UserMsg, t.BotReply, t.Context)
	if err != nil {
		return 0, fmt.Errorf("save conversation turn: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("turn id: %w", err)
	}
	return id, nil
}

// GetTurn loads a persisted conversation turn by id.
func (r *SQLiteRepository) GetTurn(ctx context.Context, id int64) (*core.ConversationTurn, error) {
	var (
		t        core.ConversationTurn
		ts       string
		archived int64
	)
	err := r.db.QueryRowContext(ctx,
		"SELECT id, session_id, timestamp, user_message, bot_response, context, archived FROM conversations WHERE id = ?",
		id).Scan(&t.ID, &t.SessionID, &ts, &t.UserMsg, &t.BotReply, &t.Context, &archived)
	if err != nil {
		return nil, fmt.Errorf("get conversation turn: %w", err)
	}
	if parsed, perr := time.ParseInLocation(core.TimestampLayout, ts, time.Local); perr == nil {
		t.Timestamp = parsed
	}
	t.Archived = archived != 0
	return &t, nil
}

// MarkTurnArchived flags a conversation turn as exported by the worker.
func (r *SQLiteRepository) MarkTurnArchived(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, "UPDATE conversations SET archived = 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("mark turn archived: %w", err)
	}
	return nil
}

// CreateUser inserts a credential row. The username is the primary key;
// the pre-check mirrors the unique constraint so callers get a stable
// sentinel instead of a driver error.
func (r *SQLiteRepository) CreateUser(ctx context.Context, u core.User) error {
	var exists int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM users WHERE username = ?", u.Username).Scan(&exists)
	if err == nil {
		return ErrUsernameTaken
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("check username: %w", err)
	}

	createdAt := u.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err = r.db.ExecContext(ctx,
		"INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)",
		u.Username, u.PasswordHash, createdAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetUser returns the credential row for a username.
func (r *SQLiteRepository) GetUser(ctx context.Context, username string) (*core.User, error) {
	var (
		u         core.User
		createdAt string
	)
	err := r.db.QueryRowContext(ctx,
		"SELECT username, password_hash, created_at FROM users WHERE username = ?",
		username).Scan(&u.Username, &u.PasswordHash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if parsed, perr := time.Parse(time.RFC3339, createdAt); perr == nil {
		u.CreatedAt = parsed
	}
	return &u, nil
}
