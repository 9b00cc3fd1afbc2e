package user

import (
	"context"

	"github.com/google/uuid"

	"jan-server/services/messaging-api/internal/domain/query"
)

// Repository defines storage operations for users.
// Finders return (nil, nil) when no row matches.
type Repository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context, pagination query.Pagination) ([]*User, error)
	Count(ctx context.Context) (int64, error)
}

// Recorder receives user lifecycle events for instrumentation.
type Recorder interface {
	UserCreated()
}

type nopRecorder struct{}

func (nopRecorder) UserCreated() {}
