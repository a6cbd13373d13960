// AngelaMos | 2026
// service_test.go

package messaging

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/veritas-backend/internal/core"
)

const (
	userAlice = "00000000-0000-0000-0000-00000000000a"
	userBob   = "00000000-0000-0000-0000-00000000000b"
	userCarol = "00000000-0000-0000-0000-00000000000c"
)

func TestCanonicalPair(t *testing.T) {
	one, two := CanonicalPair(userBob, userAlice)
	assert.Equal(t, userAlice, one)
	assert.Equal(t, userBob, two)

	one, two = CanonicalPair(userAlice, userBob)
	assert.Equal(t, userAlice, one)
	assert.Equal(t, userBob, two)
}

type memoryRepo struct {
	threads  map[string]*Thread
	messages map[string]*Message
	seq      int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		threads:  make(map[string]*Thread),
		messages: make(map[string]*Message),
	}
}

func (m *memoryRepo) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

func (m *memoryRepo) FindOrCreateThread(
	ctx context.Context,
	userOne, userTwo string,
) (*Thread, error) {
	key := userOne + "|" + userTwo
	if t, ok := m.threads[key]; ok {
		return t, nil
	}
	t := &Thread{
		ID:        m.nextID("thread"),
		UserOne:   userOne,
		UserTwo:   userTwo,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	m.threads[key] = t
	return t, nil
}

func (m *memoryRepo) GetThreadByID(
	ctx context.Context,
	id string,
) (*Thread, error) {
	for _, t := range m.threads {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, fmt.Errorf("get thread: %w", core.ErrNotFound)
}

func (m *memoryRepo) ListThreadsForUser(
	ctx context.Context,
	userID string,
) ([]ThreadSummary, error) {
	var summaries []ThreadSummary
	for _, t := range m.threads {
		if !t.HasParticipant(userID) {
			continue
		}
		unread := 0
		for _, msg := range m.messages {
			if msg.ThreadID == t.ID && msg.ReceiverID == userID && msg.ReadAt == nil {
				unread++
			}
		}
		summaries = append(summaries, ThreadSummary{
			ThreadID:    t.ID,
			OtherUserID: t.OtherParticipant(userID),
			UnreadCount: unread,
			UpdatedAt:   t.UpdatedAt,
		})
	}
	return summaries, nil
}

func (m *memoryRepo) CreateMessage(ctx context.Context, message *Message) error {
	message.ID = m.nextID("msg")
	message.CreatedAt = time.Now()
	m.messages[message.ID] = message

	thread, err := m.GetThreadByID(ctx, message.ThreadID)
	if err != nil {
		return err
	}
	thread.UpdatedAt = message.CreatedAt
	return nil
}

func (m *memoryRepo) GetMessageByID(
	ctx context.Context,
	id string,
) (*Message, error) {
	msg, ok := m.messages[id]
	if !ok {
		return nil, fmt.Errorf("get message: %w", core.ErrNotFound)
	}
	copied := *msg
	return &copied, nil
}

func (m *memoryRepo) ListMessages(
	ctx context.Context,
	threadID string,
	params ListMessagesParams,
) ([]Message, int, error) {
	var result []Message
	for _, msg := range m.messages {
		if msg.ThreadID == threadID {
			result = append(result, *msg)
		}
	}
	return result, len(result), nil
}

func (m *memoryRepo) MarkRead(
	ctx context.Context,
	messageID, receiverID string,
) (bool, error) {
	msg, ok := m.messages[messageID]
	if !ok || msg.ReceiverID != receiverID || msg.ReadAt != nil {
		return false, nil
	}
	now := time.Now()
	msg.ReadAt = &now
	return true, nil
}

func (m *memoryRepo) DeleteMessage(ctx context.Context, messageID string) error {
	delete(m.messages, messageID)
	return nil
}

type allUsers struct{}

func (allUsers) Exists(ctx context.Context, id string) (bool, error) {
	return id != userCarol, nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, allUsers{})
}

func TestFindOrCreateThread(t *testing.T) {
	t.Run("same thread regardless of caller order", func(t *testing.T) {
		repo := newMemoryRepo()
		svc := newTestService(repo)

		first, err := svc.FindOrCreateThread(context.Background(), userAlice, userBob)
		require.NoError(t, err)

		second, err := svc.FindOrCreateThread(context.Background(), userBob, userAlice)
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Len(t, repo.threads, 1)
	})

	t.Run("self thread rejected", func(t *testing.T) {
		svc := newTestService(newMemoryRepo())

		_, err := svc.FindOrCreateThread(context.Background(), userAlice, userAlice)
		require.ErrorIs(t, err, core.ErrInvalidInput)
	})

	t.Run("unknown counterpart rejected", func(t *testing.T) {
		svc := newTestService(newMemoryRepo())

		_, err := svc.FindOrCreateThread(context.Background(), userAlice, userCarol)
		require.ErrorIs(t, err, core.ErrNotFound)
	})
}

func TestSendMessage(t *testing.T) {
	setup := func(t *testing.T) (*Service, *Thread) {
		t.Helper()
		svc := newTestService(newMemoryRepo())
		thread, err := svc.FindOrCreateThread(context.Background(), userAlice, userBob)
		require.NoError(t, err)
		return svc, thread
	}

	t.Run("receiver is the other participant", func(t *testing.T) {
		svc, thread := setup(t)

		msg, err := svc.SendMessage(context.Background(), userAlice, thread.ID, "hey")
		require.NoError(t, err)
		assert.Equal(t, userAlice, msg.SenderID)
		assert.Equal(t, userBob, msg.ReceiverID)
		assert.Nil(t, msg.ReadAt)
	})

	t.Run("whitespace only text rejected", func(t *testing.T) {
		svc, thread := setup(t)

		_, err := svc.SendMessage(context.Background(), userAlice, thread.ID, "   \t\n")
		require.ErrorIs(t, err, core.ErrInvalidInput)
	})

	t.Run("non participant rejected", func(t *testing.T) {
		svc, thread := setup(t)

		_, err := svc.SendMessage(context.Background(), userCarol, thread.ID, "hi")
		require.ErrorIs(t, err, core.ErrForbidden)
	})

	t.Run("unknown thread is not found", func(t *testing.T) {
		svc, _ := setup(t)

		_, err := svc.SendMessage(context.Background(), userAlice, "nope", "hi")
		require.ErrorIs(t, err, core.ErrNotFound)
	})
}

func TestMarkRead(t *testing.T) {
	setup := func(t *testing.T) (*Service, *Message) {
		t.Helper()
		svc := newTestService(newMemoryRepo())
		thread, err := svc.FindOrCreateThread(context.Background(), userAlice, userBob)
		require.NoError(t, err)
		msg, err := svc.SendMessage(context.Background(), userAlice, thread.ID, "hello")
		require.NoError(t, err)
		return svc, msg
	}

	t.Run("unread count drops for receiver only", func(t *testing.T) {
		svc, msg := setup(t)

		summaries, err := svc.ListThreads(context.Background(), userBob)
		require.NoError(t, err)
		require.Len(t, summaries, 1)
		assert.Equal(t, 1, summaries[0].UnreadCount)

		senderSide, err := svc.ListThreads(context.Background(), userAlice)
		require.NoError(t, err)
		require.Len(t, senderSide, 1)
		assert.Equal(t, 0, senderSide[0].UnreadCount)

		read, err := svc.MarkRead(context.Background(), userBob, msg.ID)
		require.NoError(t, err)
		assert.NotNil(t, read.ReadAt)

		summaries, err = svc.ListThreads(context.Background(), userBob)
		require.NoError(t, err)
		assert.Equal(t, 0, summaries[0].UnreadCount)
	})

	t.Run("idempotent for already read message", func(t *testing.T) {
		svc, msg := setup(t)

		first, err := svc.MarkRead(context.Background(), userBob, msg.ID)
		require.NoError(t, err)

		second, err := svc.MarkRead(context.Background(), userBob, msg.ID)
		require.NoError(t, err)
		assert.Equal(t, first.ReadAt.Unix(), second.ReadAt.Unix())
	})

	t.Run("sender cannot mark read", func(t *testing.T) {
		svc, msg := setup(t)

		_, err := svc.MarkRead(context.Background(), userAlice, msg.ID)
		require.ErrorIs(t, err, core.ErrForbidden)
	})
}

func TestDeleteMessage(t *testing.T) {
	setup := func(t *testing.T) (*Service, *Message) {
		t.Helper()
		svc := newTestService(newMemoryRepo())
		thread, err := svc.FindOrCreateThread(context.Background(), userAlice, userBob)
		require.NoError(t, err)
		msg, err := svc.SendMessage(context.Background(), userAlice, thread.ID, "oops")
		require.NoError(t, err)
		return svc, msg
	}

	t.Run("sender may delete", func(t *testing.T) {
		svc, msg := setup(t)

		require.NoError(t, svc.DeleteMessage(context.Background(), userAlice, msg.ID))

		err := svc.DeleteMessage(context.Background(), userAlice, msg.ID)
		require.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("receiver may not delete", func(t *testing.T) {
		svc, msg := setup(t)

		err := svc.DeleteMessage(context.Background(), userBob, msg.ID)
		require.ErrorIs(t, err, core.ErrForbidden)
	})
}
