// AngelaMos | 2026
// repository.go

package messaging

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/veritas-backend/internal/core"
)

type Repository interface {
	FindOrCreateThread(ctx context.Context, userOne, userTwo string) (*Thread, error)
	GetThreadByID(ctx context.Context, id string) (*Thread, error)
	ListThreadsForUser(ctx context.Context, userID string) ([]ThreadSummary, error)
	CreateMessage(ctx context.Context, message *Message) error
	GetMessageByID(ctx context.Context, id string) (*Message, error)
	ListMessages(ctx context.Context, threadID string, params ListMessagesParams) ([]Message, int, error)
	MarkRead(ctx context.Context, messageID, receiverID string) (bool, error)
	DeleteMessage(ctx context.Context, messageID string) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// FindOrCreateThread resolves the unique thread for a canonical pair.
// The insert races are absorbed by ON CONFLICT DO NOTHING followed by a
// reselect, so concurrent first contact yields exactly one row.
func (r *repository) FindOrCreateThread(
	ctx context.Context,
	userOne, userTwo string,
) (*Thread, error) {
	insert := `
		INSERT INTO message_threads (user_one, user_two)
		VALUES ($1, $2)
		ON CONFLICT (user_one, user_two) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, insert, userOne, userTwo); err != nil {
		return nil, fmt.Errorf("create thread: %w", err)
	}

	query := `
		SELECT id, user_one, user_two, created_at, updated_at
		FROM message_threads
		WHERE user_one = $1 AND user_two = $2`

	var thread Thread
	if err := r.db.GetContext(ctx, &thread, query, userOne, userTwo); err != nil {
		return nil, fmt.Errorf("get thread: %w", err)
	}

	return &thread, nil
}

func (r *repository) GetThreadByID(
	ctx context.Context,
	id string,
) (*Thread, error) {
	query := `
		SELECT id, user_one, user_two, created_at, updated_at
		FROM message_threads
		WHERE id = $1`

	var thread Thread
	err := r.db.GetContext(ctx, &thread, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get thread: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get thread: %w", err)
	}

	return &thread, nil
}

func (r *repository) ListThreadsForUser(
	ctx context.Context,
	userID string,
) ([]ThreadSummary, error) {
	query := `
		SELECT
			t.id AS thread_id,
			CASE WHEN t.user_one = $1 THEN t.user_two ELSE t.user_one END AS other_user_id,
			lm.text AS last_message_text,
			lm.created_at AS last_message_at,
			COALESCE(u.unread_count, 0) AS unread_count,
			t.updated_at
		FROM message_threads t
		LEFT JOIN LATERAL (
			SELECT m.text, m.created_at
			FROM messages m
			WHERE m.thread_id = t.id
			ORDER BY m.created_at DESC
			LIMIT 1
		) lm ON TRUE
		LEFT JOIN LATERAL (
			SELECT COUNT(*) AS unread_count
			FROM messages m
			WHERE m.thread_id = t.id
			  AND m.receiver_id = $1
			  AND m.read_at IS NULL
		) u ON TRUE
		WHERE t.user_one = $1 OR t.user_two = $1
		ORDER BY t.updated_at DESC`

	var summaries []ThreadSummary
	if err := r.db.SelectContext(ctx, &summaries, query, userID); err != nil {
		return nil, fmt.Errorf("list threads: %w", err)
	}

	return summaries, nil
}

// CreateMessage inserts the message and bumps the thread's updated_at in
// the same transaction so inbox ordering never drifts from content.
func (r *repository) CreateMessage(ctx context.Context, message *Message) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		insert := `
			INSERT INTO messages (thread_id, sender_id, receiver_id, text)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at`

		err := tx.GetContext(ctx, message, insert,
			message.ThreadID,
			message.SenderID,
			message.ReceiverID,
			message.Text,
		)
		if err != nil {
			return fmt.Errorf("insert message: %w", err)
		}

		bump := `
			UPDATE message_threads
			SET updated_at = NOW()
			WHERE id = $1`

		if _, err := tx.ExecContext(ctx, bump, message.ThreadID); err != nil {
			return fmt.Errorf("bump thread: %w", err)
		}

		return nil
	})
}

func (r *repository) GetMessageByID(
	ctx context.Context,
	id string,
) (*Message, error) {
	query := `
		SELECT id, thread_id, sender_id, receiver_id, text, created_at, read_at
		FROM messages
		WHERE id = $1`

	var message Message
	err := r.db.GetContext(ctx, &message, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get message: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get message: %w", err)
	}

	return &message, nil
}

func (r *repository) ListMessages(
	ctx context.Context,
	threadID string,
	params ListMessagesParams,
) ([]Message, int, error) {
	countQuery := `SELECT COUNT(*) FROM messages WHERE thread_id = $1`

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, threadID); err != nil {
		return nil, 0, fmt.Errorf("count messages: %w", err)
	}

	query := `
		SELECT id, thread_id, sender_id, receiver_id, text, created_at, read_at
		FROM messages
		WHERE thread_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	var messages []Message
	err := r.db.SelectContext(ctx, &messages, query,
		threadID, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list messages: %w", err)
	}

	return messages, total, nil
}

// MarkRead stamps read_at once. The receiver_id predicate keeps the update
// scoped to the addressee, and the IS NULL predicate makes retries no-ops.
// Returns whether a row was actually stamped.
func (r *repository) MarkRead(
	ctx context.Context,
	messageID, receiverID string,
) (bool, error) {
	query := `
		UPDATE messages
		SET read_at = NOW()
		WHERE id = $1 AND receiver_id = $2 AND read_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, messageID, receiverID)
	if err != nil {
		return false, fmt.Errorf("mark read: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mark read: %w", err)
	}

	return rows > 0, nil
}

func (r *repository) DeleteMessage(ctx context.Context, messageID string) error {
	query := `DELETE FROM messages WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, messageID); err != nil {
		return fmt.Errorf("delete message: %w", err)
	}

	return nil
}
