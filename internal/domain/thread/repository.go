package thread

import (
	"context"
	"time"

	"github.com/google/uuid"

	"jan-server/services/messaging-api/internal/domain/query"
)

// Repository defines storage operations for threads.
// Finders return (nil, nil) when no row matches. Create reports a duplicate
// direct key as a conflict error.
type Repository interface {
	Create(ctx context.Context, t *Thread) error
	FindByID(ctx context.Context, id uuid.UUID) (*Thread, error)
	FindDirectByKey(ctx context.Context, directKey string) (*Thread, error)
	// FindByParticipant lists the user's threads, most recently updated first.
	FindByParticipant(ctx context.Context, userID uuid.UUID, pagination query.Pagination) ([]*Thread, error)
	CountByParticipant(ctx context.Context, userID uuid.UUID) (int64, error)
	// Touch sets updated_at to at unless the stored value is already later.
	Touch(ctx context.Context, id uuid.UUID, at time.Time) error
}

// MessageRepository defines storage operations for messages.
type MessageRepository interface {
	Create(ctx context.Context, m *Message) error
	FindByIDAndThread(ctx context.Context, threadID, messageID uuid.UUID) (*Message, error)
	// FindByThread lists messages oldest first, ties broken by insertion order.
	FindByThread(ctx context.Context, threadID uuid.UUID, pagination query.Pagination) ([]*Message, error)
	CountByThread(ctx context.Context, threadID uuid.UUID) (int64, error)
}

// Recorder receives thread lifecycle events for instrumentation.
type Recorder interface {
	ThreadCreated(threadType Type)
	DirectThreadReused()
	DirectThreadConflict()
	MessagePosted()
}

type nopRecorder struct{}

func (nopRecorder) ThreadCreated(Type)    {}
func (nopRecorder) DirectThreadReused()   {}
func (nopRecorder) DirectThreadConflict() {}
func (nopRecorder) MessagePosted()        {}
