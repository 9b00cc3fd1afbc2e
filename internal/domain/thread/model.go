// Package thread provides direct and group conversations and the messages posted to them.
package thread

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Type distinguishes direct conversations from group conversations.
type Type string

const (
	TypeDirect Type = "DIRECT"
	TypeGroup  Type = "GROUP"
)

const (
	// MinGroupParticipants is the smallest number of distinct users a group thread may start with.
	MinGroupParticipants = 3
	// MaxNameLength bounds group thread names in runes.
	MaxNameLength = 200
	// DefaultMaxContentLength bounds message content in runes.
	DefaultMaxContentLength = 4000
)

// Thread is a conversation between registered users.
// Direct threads carry exactly two participants and a direct key; group threads carry neither.
type Thread struct {
	ID             uuid.UUID
	Type           Type
	Name           *string
	DirectKey      *string
	ParticipantIDs []uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HasParticipant reports whether the user belongs to the thread.
func (t *Thread) HasParticipant(userID uuid.UUID) bool {
	return lo.Contains(t.ParticipantIDs, userID)
}

// touch moves the last-activity marker forward, never backwards.
func (t *Thread) touch(at time.Time) {
	if at.After(t.UpdatedAt) {
		t.UpdatedAt = at
	}
}

// Message is an immutable post inside a thread.
type Message struct {
	ID        uuid.UUID
	ThreadID  uuid.UUID
	SenderID  uuid.UUID
	Content   string
	CreatedAt time.Time
}
