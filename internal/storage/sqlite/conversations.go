package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sandevgo/inspire/internal/core"
	"github.com/sandevgo/inspire/pkg/log"
)

type ConversationsRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewConversationsRepo(db *sql.DB) *ConversationsRepo {
	return &ConversationsRepo{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// CreateConversation stores conv, assigning an id and timestamps when
// they are unset.
func (r *ConversationsRepo) CreateConversation(ctx context.Context, conv core.Conversation) (core.Conversation, error) {
	if conv.ID == "" {
		conv.ID = uuid.NewString()
	}
	if conv.CreatedAt.IsZero() {
		conv.CreatedAt = r.now()
	}
	if conv.UpdatedAt.IsZero() {
		conv.UpdatedAt = conv.CreatedAt
	}

	query := `INSERT INTO conversations (id, user_id, tool_id, title, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, conv.ID, conv.UserID, conv.ToolID, conv.Title, conv.CreatedAt, conv.UpdatedAt)
	if err != nil {
		return core.Conversation{}, fmt.Errorf("failed to create conversation: %w", err)
	}

	log.FromCtx(ctx).Debug().Str("conversation", conv.ID).Str("tool", conv.ToolID).Msg("conversation created")
	return conv, nil
}

// GetConversation loads a conversation owned by userID. Conversations of
// other users are reported as not found.
func (r *ConversationsRepo) GetConversation(ctx context.Context, id, userID string) (core.Conversation, error) {
	query := `SELECT id, user_id, tool_id, title, created_at, updated_at FROM conversations WHERE id = ? AND user_id = ?`

	var c core.Conversation
	err := r.db.QueryRowContext(ctx, query, id, userID).
		Scan(&c.ID, &c.UserID, &c.ToolID, &c.Title, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Conversation{}, fmt.Errorf("%w: %s", core.ErrConversationNotFound, id)
	}
	if err != nil {
		return core.Conversation{}, fmt.Errorf("failed to load conversation %s: %w", id, err)
	}
	return c, nil
}

func (r *ConversationsRepo) TouchConversation(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE conversations SET updated_at = ? WHERE id = ?`, r.now(), id)
	if err != nil {
		return fmt.Errorf("failed to touch conversation %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", core.ErrConversationNotFound, id)
	}
	return nil
}

func (r *ConversationsRepo) AddMessage(ctx context.Context, msg core.Message) (core.Message, error) {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = r.now()
	}

	query := `INSERT INTO messages (conversation_id, content, is_user, timestamp) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, msg.ConversationID, msg.Content, msg.IsUser, msg.Timestamp)
	if err != nil {
		return core.Message{}, fmt.Errorf("failed to insert message: %w", err)
	}

	if msg.ID, err = res.LastInsertId(); err != nil {
		return core.Message{}, err
	}
	return msg, nil
}

// GetMessages returns the conversation's messages oldest first.
func (r *ConversationsRepo) GetMessages(ctx context.Context, conversationID string) ([]core.Message, error) {
	query := `SELECT id, conversation_id, content, is_user, timestamp FROM messages WHERE conversation_id = ? ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var messages []core.Message
	for rows.Next() {
		var m core.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Content, &m.IsUser, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.FromCtx(ctx).Debug().Int("count", len(messages)).Str("conversation", conversationID).Msg("loaded messages")
	return messages, nil
}
