package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"jan-server/services/messaging-api/internal/domain/query"
	"jan-server/services/messaging-api/internal/domain/user"
	"jan-server/services/messaging-api/internal/utils/platformerrors"
)

// UserRepository implements user.Repository on a Store.
type UserRepository struct {
	store *Store
}

var _ user.Repository = (*UserRepository)(nil)

// NewUserRepository creates a user repository backed by store.
func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	return r.store.write(ctx, func(d *snapshot) error {
		for _, existing := range d.users {
			if existing.Username == u.Username {
				return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeConflict,
					fmt.Sprintf("Username already exists: %s", u.Username), nil, "a1b7c3d9-2e4f-4a68-9b0c-5d6e7f8a9b10")
			}
		}
		d.users[u.ID] = *u
		d.userOrder = append(d.userOrder, u.ID)
		return nil
	})
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var found *user.User
	r.store.read(ctx, func(d *snapshot) {
		if u, ok := d.users[id]; ok {
			found = &u
		}
	})
	return found, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	var found *user.User
	r.store.read(ctx, func(d *snapshot) {
		for _, u := range d.users {
			if u.Username == username {
				u := u
				found = &u
				return
			}
		}
	})
	return found, nil
}

// List returns users in registration order.
func (r *UserRepository) List(ctx context.Context, pagination query.Pagination) ([]*user.User, error) {
	var users []*user.User
	r.store.read(ctx, func(d *snapshot) {
		for _, id := range window(d.userOrder, pagination.Offset(), pagination.Size) {
			u := d.users[id]
			users = append(users, &u)
		}
	})
	return users, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	r.store.read(ctx, func(d *snapshot) {
		n = int64(len(d.users))
	})
	return n, nil
}
