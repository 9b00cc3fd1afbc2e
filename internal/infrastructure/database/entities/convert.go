package entities

import (
	"sort"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"jan-server/services/messaging-api/internal/domain/thread"
	"jan-server/services/messaging-api/internal/domain/user"
)

func NewSchemaUser(u *user.User) *User {
	return &User{
		ID:        u.ID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}
}

func (e *User) EtoD() *user.User {
	return &user.User{
		ID:        e.ID,
		Username:  e.Username,
		CreatedAt: e.CreatedAt.UTC(),
	}
}

func NewSchemaThread(t *thread.Thread) *Thread {
	return &Thread{
		ID:        t.ID,
		Type:      string(t.Type),
		Name:      t.Name,
		DirectKey: t.DirectKey,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
		Participants: lo.Map(t.ParticipantIDs, func(id uuid.UUID, i int) ThreadParticipant {
			return ThreadParticipant{ThreadID: t.ID, UserID: id, Position: i}
		}),
	}
}

// EtoD converts the row; Participants must be preloaded.
func (e *Thread) EtoD() *thread.Thread {
	participants := append([]ThreadParticipant(nil), e.Participants...)
	sort.Slice(participants, func(i, j int) bool {
		return participants[i].Position < participants[j].Position
	})
	return &thread.Thread{
		ID:        e.ID,
		Type:      thread.Type(e.Type),
		Name:      e.Name,
		DirectKey: e.DirectKey,
		ParticipantIDs: lo.Map(participants, func(p ThreadParticipant, _ int) uuid.UUID {
			return p.UserID
		}),
		CreatedAt: e.CreatedAt.UTC(),
		UpdatedAt: e.UpdatedAt.UTC(),
	}
}

func NewSchemaMessage(m *thread.Message) *Message {
	return &Message{
		ID:        m.ID,
		ThreadID:  m.ThreadID,
		SenderID:  m.SenderID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

func (e *Message) EtoD() *thread.Message {
	return &thread.Message{
		ID:        e.ID,
		ThreadID:  e.ThreadID,
		SenderID:  e.SenderID,
		Content:   e.Content,
		CreatedAt: e.CreatedAt.UTC(),
	}
}
