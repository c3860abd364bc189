// internal/messaging/postgres.go

package messaging

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a PostgreSQL messaging repository
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

// normalizePair orders a user pair so (a, b) and (b, a) address the
// same conversation row.
func normalizePair(userA, userB int64) (int64, int64) {
	if userA > userB {
		return userB, userA
	}
	return userA, userB
}

func (r *postgresRepository) UserExists(ctx context.Context, userID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, userID); err != nil {
		return false, fmt.Errorf("failed to check user: %w", err)
	}

	return exists, nil
}

// GetOrCreateConversation returns the thread for a pair, creating it on
// first contact. The upsert keeps concurrent first messages from
// racing into two rows.
func (r *postgresRepository) GetOrCreateConversation(ctx context.Context, userA, userB int64) (*Conversation, error) {
	a, b := normalizePair(userA, userB)

	query := `
		INSERT INTO conversations (user_a_id, user_b_id)
		VALUES ($1, $2)
		ON CONFLICT (user_a_id, user_b_id) DO UPDATE SET user_a_id = EXCLUDED.user_a_id
		RETURNING id, user_a_id, user_b_id, created_at`

	var conversation Conversation
	if err := r.db.GetContext(ctx, &conversation, query, a, b); err != nil {
		return nil, fmt.Errorf("failed to get or create conversation: %w", err)
	}

	return &conversation, nil
}

func (r *postgresRepository) GetConversationBetween(ctx context.Context, userA, userB int64) (*Conversation, error) {
	a, b := normalizePair(userA, userB)

	query := `
		SELECT id, user_a_id, user_b_id, created_at
		FROM conversations
		WHERE user_a_id = $1 AND user_b_id = $2`

	var conversation Conversation
	if err := r.db.GetContext(ctx, &conversation, query, a, b); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrConversationNotFound
		}
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}

	return &conversation, nil
}

func (r *postgresRepository) CreateMessage(ctx context.Context, conversationID, senderID, receiverID int64, body string) (*Message, error) {
	query := `
		INSERT INTO messages (conversation_id, sender_id, receiver_id, body)
		VALUES ($1, $2, $3, $4)
		RETURNING id, conversation_id, sender_id, receiver_id, body, created_at`

	var message Message
	if err := r.db.GetContext(ctx, &message, query, conversationID, senderID, receiverID, body); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	return &message, nil
}

func (r *postgresRepository) GetConversationMessages(ctx context.Context, conversationID int64) ([]Message, error) {
	query := `
		SELECT id, conversation_id, sender_id, receiver_id, body, created_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at ASC, id ASC`

	messages := []Message{}
	if err := r.db.SelectContext(ctx, &messages, query, conversationID); err != nil {
		return nil, fmt.Errorf("failed to get messages: %w", err)
	}

	return messages, nil
}
