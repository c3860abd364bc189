// internal/messaging/models.go

package messaging

import "time"

// Conversation is the durable thread between exactly two users. The
// pair is stored normalized with user_a_id < user_b_id so each pair
// maps to a single row.
type Conversation struct {
	ID        int64     `json:"id" db:"id"`
	UserAID   int64     `json:"userAId" db:"user_a_id"`
	UserBID   int64     `json:"userBId" db:"user_b_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Message is a single direct message within a conversation
type Message struct {
	ID             int64     `json:"id" db:"id"`
	ConversationID int64     `json:"conversationId" db:"conversation_id"`
	SenderID       int64     `json:"senderId" db:"sender_id"`
	ReceiverID     int64     `json:"receiverId" db:"receiver_id"`
	Body           string    `json:"message" db:"body"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}

// SendMessageRequest is the payload for sending a direct message
type SendMessageRequest struct {
	TextMessage string `json:"textMessage" validate:"required,max=4000"`
}
