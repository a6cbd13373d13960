// AngelaMos | 2026
// dto.go

package messaging

import (
	"time"
)

type FindOrCreateThreadRequest struct {
	OtherUserID string `json:"other_user_id" validate:"required,uuid"`
}

type SendMessageRequest struct {
	Text string `json:"text" validate:"required,max=5000"`
}

type ThreadResponse struct {
	ID        string    `json:"id"`
	UserOne   string    `json:"user_one"`
	UserTwo   string    `json:"user_two"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ThreadSummary is one row of a user's inbox: the thread, the counterpart,
// a preview of the latest message, and how many received messages are
// still unread.
type ThreadSummary struct {
	ThreadID        string     `db:"thread_id"        json:"thread_id"`
	OtherUserID     string     `db:"other_user_id"    json:"other_user_id"`
	LastMessageText *string    `db:"last_message_text" json:"last_message_text"`
	LastMessageAt   *time.Time `db:"last_message_at"  json:"last_message_at"`
	UnreadCount     int        `db:"unread_count"     json:"unread_count"`
	UpdatedAt       time.Time  `db:"updated_at"       json:"updated_at"`
}

type MessageResponse struct {
	ID         string     `json:"id"`
	ThreadID   string     `json:"thread_id"`
	SenderID   string     `json:"sender_id"`
	ReceiverID string     `json:"receiver_id"`
	Text       string     `json:"text"`
	CreatedAt  time.Time  `json:"created_at"`
	ReadAt     *time.Time `json:"read_at"`
}

type ListMessagesParams struct {
	Page     int
	PageSize int
}

func (p *ListMessagesParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 50
	}
	if p.PageSize > 200 {
		p.PageSize = 200
	}
}

func (p *ListMessagesParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToThreadResponse(t *Thread) ThreadResponse {
	return ThreadResponse{
		ID:        t.ID,
		UserOne:   t.UserOne,
		UserTwo:   t.UserTwo,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func ToMessageResponse(m *Message) MessageResponse {
	return MessageResponse{
		ID:         m.ID,
		ThreadID:   m.ThreadID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Text:       m.Text,
		CreatedAt:  m.CreatedAt,
		ReadAt:     m.ReadAt,
	}
}

func ToMessageResponseList(messages []Message) []MessageResponse {
	responses := make([]MessageResponse, 0, len(messages))
	for i := range messages {
		responses = append(responses, ToMessageResponse(&messages[i]))
	}
	return responses
}
