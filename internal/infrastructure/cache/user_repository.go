package cache

import (
	"context"

	"github.com/google/uuid"

	"jan-server/services/messaging-api/internal/domain/user"
)

// CachedUserRepository serves FindByID from cache and delegates everything else.
type CachedUserRepository struct {
	user.Repository
	cache Cache
}

var _ user.Repository = (*CachedUserRepository)(nil)

// NewCachedUserRepository decorates repo with cache.
func NewCachedUserRepository(repo user.Repository, cache Cache) *CachedUserRepository {
	return &CachedUserRepository{Repository: repo, cache: cache}
}

func (r *CachedUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	if u, ok := r.cache.Get(ctx, id); ok {
		return u, nil
	}
	u, err := r.Repository.FindByID(ctx, id)
	if err != nil || u == nil {
		return u, err
	}
	r.cache.Set(ctx, u)
	return u, nil
}
