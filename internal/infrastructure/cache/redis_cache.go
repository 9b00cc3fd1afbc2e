package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"jan-server/services/messaging-api/internal/domain/user"
)

const CacheVersion = "v1"

// RedisCache shares user entries between replicas.
type RedisCache struct {
	client redis.UniversalClient
	ttl    time.Duration
	log    zerolog.Logger
}

type redisUser struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// NewRedisCache connects to redisURL and verifies the connection.
func NewRedisCache(ctx context.Context, redisURL string, ttl time.Duration, log zerolog.Logger) (*RedisCache, error) {
	if redisURL == "" {
		return nil, fmt.Errorf("redis URL must be provided")
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:     []string{opts.Addr},
		Username:  opts.Username,
		Password:  opts.Password,
		DB:        opts.DB,
		TLSConfig: opts.TLSConfig,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewRedisCacheWithClient(client, ttl, log), nil
}

// NewRedisCacheWithClient wraps an existing client.
func NewRedisCacheWithClient(client redis.UniversalClient, ttl time.Duration, log zerolog.Logger) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    ttl,
		log:    log.With().Str("component", "user-cache").Logger(),
	}
}

func userKey(id uuid.UUID) string {
	return fmt.Sprintf("messaging:%s:user:%s", CacheVersion, id)
}

func (c *RedisCache) Get(ctx context.Context, id uuid.UUID) (*user.User, bool) {
	raw, err := c.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Str("user_id", id.String()).Msg("redis get failed")
		}
		return nil, false
	}

	var cached redisUser
	if err := json.Unmarshal(raw, &cached); err != nil {
		c.log.Warn().Err(err).Str("user_id", id.String()).Msg("discarding malformed cache entry")
		return nil, false
	}
	return &user.User{ID: cached.ID, Username: cached.Username, CreatedAt: cached.CreatedAt.UTC()}, true
}

func (c *RedisCache) Set(ctx context.Context, u *user.User) {
	payload, err := json.Marshal(redisUser{ID: u.ID, Username: u.Username, CreatedAt: u.CreatedAt})
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, userKey(u.ID), payload, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("user_id", u.ID.String()).Msg("redis set failed")
	}
}

// Close releases the client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
