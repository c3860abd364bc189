// internal/messaging/repository.go

package messaging

import "context"

// Repository defines messaging storage operations
type Repository interface {
	UserExists(ctx context.Context, userID int64) (bool, error)
	GetOrCreateConversation(ctx context.Context, userA, userB int64) (*Conversation, error)
	GetConversationBetween(ctx context.Context, userA, userB int64) (*Conversation, error)
	CreateMessage(ctx context.Context, conversationID, senderID, receiverID int64, body string) (*Message, error)
	GetConversationMessages(ctx context.Context, conversationID int64) ([]Message, error)
}
