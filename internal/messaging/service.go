// internal/messaging/service.go

package messaging

import (
	"context"
	"errors"

	"github.com/snapgram/snapgram-backend/internal/relay"
)

var (
	ErrReceiverNotFound     = errors.New("receiver not found")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrSelfMessage          = errors.New("cannot message yourself")
)

// Service implements direct messaging business logic
type Service struct {
	repo   Repository
	pusher relay.Pusher
}

// NewService creates a new messaging service
func NewService(repo Repository, pusher relay.Pusher) *Service {
	return &Service{
		repo:   repo,
		pusher: pusher,
	}
}

// SendMessage stores a direct message, lazily creating the
// conversation, and pushes it to the receiver if they are online.
// Delivery is best-effort; the durable copy is the source of truth.
func (s *Service) SendMessage(ctx context.Context, senderID, receiverID int64, body string) (*Message, error) {
	if senderID == receiverID {
		return nil, ErrSelfMessage
	}

	exists, err := s.repo.UserExists(ctx, receiverID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrReceiverNotFound
	}

	conversation, err := s.repo.GetOrCreateConversation(ctx, senderID, receiverID)
	if err != nil {
		return nil, err
	}

	message, err := s.repo.CreateMessage(ctx, conversation.ID, senderID, receiverID, body)
	if err != nil {
		return nil, err
	}

	if s.pusher != nil {
		s.pusher.SendToUser(receiverID, relay.NewEvent(relay.EventNewMessage, message))
	}

	return message, nil
}

// GetMessages returns the full history between the caller and the
// other user, oldest first. An empty history is not an error.
func (s *Service) GetMessages(ctx context.Context, userID, otherID int64) ([]Message, error) {
	conversation, err := s.repo.GetConversationBetween(ctx, userID, otherID)
	if err != nil {
		if errors.Is(err, ErrConversationNotFound) {
			return []Message{}, nil
		}
		return nil, err
	}

	return s.repo.GetConversationMessages(ctx, conversation.ID)
}
