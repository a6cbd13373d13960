// AngelaMos | 2026
// service.go

package messaging

import (
	"context"
	"fmt"
	"strings"

	"github.com/carterperez-dev/veritas-backend/internal/core"
)

type UserChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type Service struct {
	repo  Repository
	users UserChecker
}

func NewService(repo Repository, users UserChecker) *Service {
	return &Service{repo: repo, users: users}
}

// FindOrCreateThread resolves the conversation between the actor and
// another user, creating it on first contact.
func (s *Service) FindOrCreateThread(
	ctx context.Context,
	actorID, otherUserID string,
) (*Thread, error) {
	if actorID == otherUserID {
		return nil, fmt.Errorf(
			"open thread: cannot message yourself: %w",
			core.ErrInvalidInput,
		)
	}

	exists, err := s.users.Exists(ctx, otherUserID)
	if err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("open thread: user: %w", core.ErrNotFound)
	}

	userOne, userTwo := CanonicalPair(actorID, otherUserID)

	return s.repo.FindOrCreateThread(ctx, userOne, userTwo)
}

func (s *Service) ListThreads(
	ctx context.Context,
	actorID string,
) ([]ThreadSummary, error) {
	return s.repo.ListThreadsForUser(ctx, actorID)
}

// SendMessage appends to the thread on behalf of the actor. The actor must
// be a participant, and blank text is rejected before it reaches storage.
func (s *Service) SendMessage(
	ctx context.Context,
	actorID, threadID, text string,
) (*Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf(
			"send message: empty text: %w",
			core.ErrInvalidInput,
		)
	}

	thread, err := s.repo.GetThreadByID(ctx, threadID)
	if err != nil {
		return nil, err
	}

	if !thread.HasParticipant(actorID) {
		return nil, fmt.Errorf("send message: %w", core.ErrForbidden)
	}

	message := &Message{
		ThreadID:   threadID,
		SenderID:   actorID,
		ReceiverID: thread.OtherParticipant(actorID),
		Text:       text,
	}

	if err := s.repo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	return message, nil
}

func (s *Service) ListMessages(
	ctx context.Context,
	actorID, threadID string,
	params ListMessagesParams,
) ([]Message, int, error) {
	params.Normalize()

	thread, err := s.repo.GetThreadByID(ctx, threadID)
	if err != nil {
		return nil, 0, err
	}

	if !thread.HasParticipant(actorID) {
		return nil, 0, fmt.Errorf("list messages: %w", core.ErrForbidden)
	}

	return s.repo.ListMessages(ctx, threadID, params)
}

// MarkRead stamps a message as read. Only the receiver may do this, and
// re-reading an already read message is a successful no-op.
func (s *Service) MarkRead(
	ctx context.Context,
	actorID, messageID string,
) (*Message, error) {
	message, err := s.repo.GetMessageByID(ctx, messageID)
	if err != nil {
		return nil, err
	}

	if message.ReceiverID != actorID {
		return nil, fmt.Errorf("mark read: %w", core.ErrForbidden)
	}

	if message.ReadAt != nil {
		return message, nil
	}

	if _, err := s.repo.MarkRead(ctx, messageID, actorID); err != nil {
		return nil, err
	}

	return s.repo.GetMessageByID(ctx, messageID)
}

// DeleteMessage removes a message for everyone. Sender only.
func (s *Service) DeleteMessage(
	ctx context.Context,
	actorID, messageID string,
) error {
	message, err := s.repo.GetMessageByID(ctx, messageID)
	if err != nil {
		return err
	}

	if message.SenderID != actorID {
		return fmt.Errorf("delete message: %w", core.ErrForbidden)
	}

	return s.repo.DeleteMessage(ctx, messageID)
}
