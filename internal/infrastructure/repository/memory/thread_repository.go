package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"jan-server/services/messaging-api/internal/domain/query"
	"jan-server/services/messaging-api/internal/domain/thread"
	"jan-server/services/messaging-api/internal/utils/platformerrors"
)

// ThreadRepository implements thread.Repository on a Store.
type ThreadRepository struct {
	store *Store
}

var _ thread.Repository = (*ThreadRepository)(nil)

// NewThreadRepository creates a thread repository backed by store.
func NewThreadRepository(store *Store) *ThreadRepository {
	return &ThreadRepository{store: store}
}

func (r *ThreadRepository) Create(ctx context.Context, t *thread.Thread) error {
	return r.store.write(ctx, func(d *snapshot) error {
		if t.DirectKey != nil {
			if _, taken := d.directKeys[*t.DirectKey]; taken {
				return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeConflict,
					"Direct thread already exists", nil, "b2c8d4e0-3f5a-4b79-8c1d-6e7f8a9b0c21")
			}
			d.directKeys[*t.DirectKey] = t.ID
		}
		d.threads[t.ID] = cloneThread(*t)
		return nil
	})
}

func (r *ThreadRepository) FindByID(ctx context.Context, id uuid.UUID) (*thread.Thread, error) {
	var found *thread.Thread
	r.store.read(ctx, func(d *snapshot) {
		if t, ok := d.threads[id]; ok {
			found = lo.ToPtr(cloneThread(t))
		}
	})
	return found, nil
}

func (r *ThreadRepository) FindDirectByKey(ctx context.Context, directKey string) (*thread.Thread, error) {
	var found *thread.Thread
	r.store.read(ctx, func(d *snapshot) {
		if id, ok := d.directKeys[directKey]; ok {
			found = lo.ToPtr(cloneThread(d.threads[id]))
		}
	})
	return found, nil
}

func (r *ThreadRepository) FindByParticipant(ctx context.Context, userID uuid.UUID, pagination query.Pagination) ([]*thread.Thread, error) {
	var threads []*thread.Thread
	r.store.read(ctx, func(d *snapshot) {
		matches := participantThreads(d, userID)
		sort.Slice(matches, func(i, j int) bool {
			a, b := matches[i], matches[j]
			if !a.UpdatedAt.Equal(b.UpdatedAt) {
				return a.UpdatedAt.After(b.UpdatedAt)
			}
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return a.ID.String() < b.ID.String()
		})
		for _, t := range window(matches, pagination.Offset(), pagination.Size) {
			threads = append(threads, lo.ToPtr(cloneThread(t)))
		}
	})
	return threads, nil
}

func (r *ThreadRepository) CountByParticipant(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	r.store.read(ctx, func(d *snapshot) {
		n = int64(len(participantThreads(d, userID)))
	})
	return n, nil
}

func (r *ThreadRepository) Touch(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.store.write(ctx, func(d *snapshot) error {
		t, ok := d.threads[id]
		if !ok {
			return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
				"Thread not found", nil, "c3d9e5f1-4a6b-4c80-9d2e-7f8a9b0c1d32")
		}
		if at.After(t.UpdatedAt) {
			t.UpdatedAt = at
			d.threads[id] = t
		}
		return nil
	})
}

func participantThreads(d *snapshot, userID uuid.UUID) []thread.Thread {
	var matches []thread.Thread
	for _, t := range d.threads {
		if t.HasParticipant(userID) {
			matches = append(matches, t)
		}
	}
	return matches
}

func cloneThread(t thread.Thread) thread.Thread {
	t.ParticipantIDs = append([]uuid.UUID(nil), t.ParticipantIDs...)
	if t.Name != nil {
		t.Name = lo.ToPtr(*t.Name)
	}
	if t.DirectKey != nil {
		t.DirectKey = lo.ToPtr(*t.DirectKey)
	}
	return t
}
