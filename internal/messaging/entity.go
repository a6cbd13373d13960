// AngelaMos | 2026
// entity.go

package messaging

import (
	"time"
)

// Thread is the single conversation between an unordered pair of users.
// Participants are stored canonically (user_one < user_two) so the unique
// constraint holds regardless of who reached out first.
type Thread struct {
	ID        string    `db:"id"`
	UserOne   string    `db:"user_one"`
	UserTwo   string    `db:"user_two"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (t *Thread) HasParticipant(userID string) bool {
	return t.UserOne == userID || t.UserTwo == userID
}

// OtherParticipant returns the counterpart of userID in this thread.
func (t *Thread) OtherParticipant(userID string) string {
	if t.UserOne == userID {
		return t.UserTwo
	}
	return t.UserOne
}

type Message struct {
	ID         string     `db:"id"`
	ThreadID   string     `db:"thread_id"`
	SenderID   string     `db:"sender_id"`
	ReceiverID string     `db:"receiver_id"`
	Text       string     `db:"text"`
	CreatedAt  time.Time  `db:"created_at"`
	ReadAt     *time.Time `db:"read_at"`
}

// CanonicalPair orders two user ids so every caller addresses the same
// thread row for a given pair.
func CanonicalPair(a, b string) (string, string) {
	if b < a {
		return b, a
	}
	return a, b
}
