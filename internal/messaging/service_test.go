// internal/messaging/service_test.go

package messaging

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapgram/snapgram-backend/internal/relay"
)

// fakeRepository is an in-memory Repository for service tests
type fakeRepository struct {
	nextID        int64
	userIDs       map[int64]bool
	conversations map[[2]int64]*Conversation
	messages      map[int64][]Message
}

func newFakeRepository(userIDs ...int64) *fakeRepository {
	repo := &fakeRepository{
		nextID:        1,
		userIDs:       make(map[int64]bool),
		conversations: make(map[[2]int64]*Conversation),
		messages:      make(map[int64][]Message),
	}
	for _, id := range userIDs {
		repo.userIDs[id] = true
	}
	return repo
}

func (r *fakeRepository) UserExists(ctx context.Context, userID int64) (bool, error) {
	return r.userIDs[userID], nil
}

func (r *fakeRepository) GetOrCreateConversation(ctx context.Context, userA, userB int64) (*Conversation, error) {
	a, b := normalizePair(userA, userB)
	if conversation, ok := r.conversations[[2]int64{a, b}]; ok {
		return conversation, nil
	}

	conversation := &Conversation{
		ID:        r.nextID,
		UserAID:   a,
		UserBID:   b,
		CreatedAt: time.Now(),
	}
	r.nextID++
	r.conversations[[2]int64{a, b}] = conversation
	return conversation, nil
}

func (r *fakeRepository) GetConversationBetween(ctx context.Context, userA, userB int64) (*Conversation, error) {
	a, b := normalizePair(userA, userB)
	conversation, ok := r.conversations[[2]int64{a, b}]
	if !ok {
		return nil, ErrConversationNotFound
	}
	return conversation, nil
}

func (r *fakeRepository) CreateMessage(ctx context.Context, conversationID, senderID, receiverID int64, body string) (*Message, error) {
	message := Message{
		ID:             r.nextID,
		ConversationID: conversationID,
		SenderID:       senderID,
		ReceiverID:     receiverID,
		Body:           body,
		CreatedAt:      time.Now(),
	}
	r.nextID++
	r.messages[conversationID] = append(r.messages[conversationID], message)
	return &message, nil
}

func (r *fakeRepository) GetConversationMessages(ctx context.Context, conversationID int64) ([]Message, error) {
	return append([]Message{}, r.messages[conversationID]...), nil
}

// fakePusher records pushes and reports configurable delivery
type fakePusher struct {
	online map[int64]bool
	pushed []pushedEvent
}

type pushedEvent struct {
	userID int64
	event  relay.Event
}

func (p *fakePusher) SendToUser(userID int64, event relay.Event) bool {
	p.pushed = append(p.pushed, pushedEvent{userID: userID, event: event})
	return p.online[userID]
}

func (p *fakePusher) IsOnline(userID int64) bool {
	return p.online[userID]
}

func TestSendMessageCreatesConversationOnce(t *testing.T) {
	repo := newFakeRepository(1, 2)
	svc := NewService(repo, &fakePusher{online: map[int64]bool{}})

	first, err := svc.SendMessage(context.Background(), 1, 2, "hey")
	require.NoError(t, err)

	// The reply reuses the same thread, regardless of direction
	second, err := svc.SendMessage(context.Background(), 2, 1, "hi back")
	require.NoError(t, err)

	assert.Equal(t, first.ConversationID, second.ConversationID)
	assert.Len(t, repo.conversations, 1)

	messages, err := svc.GetMessages(context.Background(), 1, 2)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "hey", messages[0].Body)
	assert.Equal(t, "hi back", messages[1].Body)
}

func TestSendMessagePushesToReceiver(t *testing.T) {
	repo := newFakeRepository(1, 2)
	pusher := &fakePusher{online: map[int64]bool{2: true}}
	svc := NewService(repo, pusher)

	message, err := svc.SendMessage(context.Background(), 1, 2, "hey")
	require.NoError(t, err)

	require.Len(t, pusher.pushed, 1)
	assert.Equal(t, int64(2), pusher.pushed[0].userID)
	assert.Equal(t, relay.EventNewMessage, pusher.pushed[0].event.Name)
	assert.Equal(t, int64(1), message.SenderID)
}

func TestSendMessageOfflineReceiverStillStored(t *testing.T) {
	repo := newFakeRepository(1, 2)
	svc := NewService(repo, &fakePusher{online: map[int64]bool{}})

	_, err := svc.SendMessage(context.Background(), 1, 2, "hey")
	require.NoError(t, err)

	// The durable copy exists even though the live push went nowhere
	messages, err := svc.GetMessages(context.Background(), 2, 1)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "hey", messages[0].Body)
}

func TestSendMessageUnknownReceiver(t *testing.T) {
	repo := newFakeRepository(1)
	svc := NewService(repo, &fakePusher{online: map[int64]bool{}})

	_, err := svc.SendMessage(context.Background(), 1, 999, "hey")

	assert.ErrorIs(t, err, ErrReceiverNotFound)
	assert.Empty(t, repo.conversations)
}

func TestSendMessageToSelf(t *testing.T) {
	repo := newFakeRepository(1)
	svc := NewService(repo, &fakePusher{online: map[int64]bool{}})

	_, err := svc.SendMessage(context.Background(), 1, 1, "hey")

	assert.ErrorIs(t, err, ErrSelfMessage)
}

func TestGetMessagesNoHistory(t *testing.T) {
	repo := newFakeRepository(1, 2)
	svc := NewService(repo, &fakePusher{online: map[int64]bool{}})

	messages, err := svc.GetMessages(context.Background(), 1, 2)

	require.NoError(t, err)
	assert.Empty(t, messages)
}
