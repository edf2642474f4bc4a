// Package inbox delivers notifications into a local SQLite inbox that the
// HTTP adapter reads back per recipient.
package inbox

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"oliveflow/internal/core/domain/model/notification"
	"oliveflow/internal/pkg/errs"

	_ "modernc.org/sqlite"
)

// Message is a delivered notification as stored in the inbox.
type Message struct {
	ID         int64
	Recipient  string
	Kind       notification.Kind
	Subject    string
	Text       string
	OccurredAt time.Time
	ReceivedAt time.Time
}

// SQLiteInbox implements ports.Notifier.
type SQLiteInbox struct {
	db     *sql.DB
	logger *slog.Logger
	now    func() time.Time
}

// New opens (or creates) the inbox database at path.
func New(path string, logger *slog.Logger) (*SQLiteInbox, error) {
	if path == "" {
		return nil, errs.NewValueIsRequiredError("inbox path")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	inbox := &SQLiteInbox{
		db:     db,
		logger: logger.With("component", "inbox"),
		now:    func() time.Time { return time.Now().UTC() },
	}
	if err = inbox.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return inbox, nil
}

func (i *SQLiteInbox) Close() error {
	if i == nil || i.db == nil {
		return nil
	}
	return i.db.Close()
}

// Notify stores event for its recipient. The outbox may hand the same event
// over twice; the second copy is dropped.
func (i *SQLiteInbox) Notify(ctx context.Context, event notification.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}
	recipient := notification.Address(event.Recipient())
	if recipient == "" {
		return errs.NewValueIsRequiredError("recipient")
	}

	res, err := i.db.ExecContext(ctx, `
		INSERT INTO messages (recipient, kind, subject, text, occurred_at, received_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(recipient, kind, subject, occurred_at) DO NOTHING
	`,
		recipient,
		string(event.Kind()),
		event.Subject().String(),
		event.Message(),
		event.OccurredAt().UTC(),
		i.now(),
	)
	if err != nil {
		return fmt.Errorf("store notification for %s: %w", recipient, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		i.logger.DebugContext(ctx, "duplicate notification dropped",
			"recipient", recipient, "kind", event.Kind(), "subject", event.Subject())
	}
	return nil
}

// List returns up to limit messages of recipient, newest first.
func (i *SQLiteInbox) List(ctx context.Context, recipient string, limit int) ([]Message, error) {
	if recipient == "" {
		return nil, errs.NewValueIsRequiredError("recipient")
	}
	if limit <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	rows, err := i.db.QueryContext(ctx, `
		SELECT id, recipient, kind, subject, text, occurred_at, received_at
		FROM messages
		WHERE recipient = ?
		ORDER BY occurred_at DESC, id DESC
		LIMIT ?
	`, recipient, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]Message, 0)
	for rows.Next() {
		var (
			m    Message
			kind string
		)
		if err = rows.Scan(&m.ID, &m.Recipient, &kind, &m.Subject, &m.Text, &m.OccurredAt, &m.ReceivedAt); err != nil {
			return nil, err
		}
		m.Kind = notification.Kind(kind)
		messages = append(messages, m)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return messages, nil
}

func (i *SQLiteInbox) migrate() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS messages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			recipient TEXT NOT NULL,
			kind TEXT NOT NULL,
			subject TEXT NOT NULL,
			text TEXT NOT NULL,
			occurred_at TIMESTAMP NOT NULL,
			received_at TIMESTAMP NOT NULL,
			UNIQUE (recipient, kind, subject, occurred_at)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_messages_recipient ON messages (recipient, occurred_at);`,
	}
	for _, stmt := range statements {
		if _, err := i.db.Exec(stmt); err != nil {
			return errors.Join(errors.New("migrate inbox"), err)
		}
	}
	return nil
}
