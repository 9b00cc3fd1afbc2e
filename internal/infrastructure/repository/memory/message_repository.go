package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"jan-server/services/messaging-api/internal/domain/query"
	"jan-server/services/messaging-api/internal/domain/thread"
)

// MessageRepository implements thread.MessageRepository on a Store.
type MessageRepository struct {
	store *Store
}

var _ thread.MessageRepository = (*MessageRepository)(nil)

// NewMessageRepository creates a message repository backed by store.
func NewMessageRepository(store *Store) *MessageRepository {
	return &MessageRepository{store: store}
}

func (r *MessageRepository) Create(ctx context.Context, m *thread.Message) error {
	return r.store.write(ctx, func(d *snapshot) error {
		d.seq++
		d.messages[m.ID] = storedMessage{message: *m, seq: d.seq}
		return nil
	})
}

func (r *MessageRepository) FindByIDAndThread(ctx context.Context, threadID, messageID uuid.UUID) (*thread.Message, error) {
	var found *thread.Message
	r.store.read(ctx, func(d *snapshot) {
		if stored, ok := d.messages[messageID]; ok && stored.message.ThreadID == threadID {
			m := stored.message
			found = &m
		}
	})
	return found, nil
}

func (r *MessageRepository) FindByThread(ctx context.Context, threadID uuid.UUID, pagination query.Pagination) ([]*thread.Message, error) {
	var messages []*thread.Message
	r.store.read(ctx, func(d *snapshot) {
		matches := threadMessages(d, threadID)
		sort.Slice(matches, func(i, j int) bool {
			a, b := matches[i], matches[j]
			if !a.message.CreatedAt.Equal(b.message.CreatedAt) {
				return a.message.CreatedAt.Before(b.message.CreatedAt)
			}
			return a.seq < b.seq
		})
		for _, stored := range window(matches, pagination.Offset(), pagination.Size) {
			m := stored.message
			messages = append(messages, &m)
		}
	})
	return messages, nil
}

func (r *MessageRepository) CountByThread(ctx context.Context, threadID uuid.UUID) (int64, error) {
	var n int64
	r.store.read(ctx, func(d *snapshot) {
		n = int64(len(threadMessages(d, threadID)))
	})
	return n, nil
}

func threadMessages(d *snapshot, threadID uuid.UUID) []storedMessage {
	var matches []storedMessage
	for _, stored := range d.messages {
		if stored.message.ThreadID == threadID {
			matches = append(matches, stored)
		}
	}
	return matches
}
