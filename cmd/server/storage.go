package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"

	"jan-server/services/messaging-api/internal/config"
	"jan-server/services/messaging-api/internal/domain/thread"
	"jan-server/services/messaging-api/internal/domain/unitofwork"
	"jan-server/services/messaging-api/internal/domain/user"
	"jan-server/services/messaging-api/internal/infrastructure/cache"
	"jan-server/services/messaging-api/internal/infrastructure/database"
	"jan-server/services/messaging-api/internal/infrastructure/database/transaction"
	"jan-server/services/messaging-api/internal/infrastructure/repository/memory"
	"jan-server/services/messaging-api/internal/infrastructure/repository/threadrepo"
	"jan-server/services/messaging-api/internal/infrastructure/repository/userrepo"
	"jan-server/services/messaging-api/internal/interfaces/httpserver"
)

// Storage bundles the repositories and transactor of the configured driver.
type Storage struct {
	Users    user.Repository
	Threads  thread.Repository
	Messages thread.MessageRepository
	Tx       unitofwork.Transactor
	Ready    httpserver.ReadinessCheck

	closers []func() error
}

// Close releases connections held by the storage and its caches.
func (s *Storage) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i]())
	}
	return errors.Join(errs...)
}

// OpenStorage builds repositories for STORAGE_DRIVER and fronts user lookups with the cache.
func OpenStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Storage, error) {
	var (
		s   *Storage
		err error
	)
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		s = openMemoryStorage()
		log.Warn().Msg("using in-memory storage, data is lost on restart")
	case config.StorageDriverPostgres:
		s, err = openPostgresStorage(ctx, cfg, log)
	default:
		err = fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
	if err != nil {
		return nil, err
	}

	userCache, closeCache, err := newUserCache(ctx, cfg, log)
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	if closeCache != nil {
		s.closers = append(s.closers, closeCache)
	}
	s.Users = cache.NewCachedUserRepository(s.Users, userCache)
	return s, nil
}

func openMemoryStorage() *Storage {
	store := memory.NewStore()
	return &Storage{
		Users:    memory.NewUserRepository(store),
		Threads:  memory.NewThreadRepository(store),
		Messages: memory.NewMessageRepository(store),
		Tx:       store,
		Ready:    httpserver.AlwaysReady,
	}
}

func newDatabaseConfig(cfg *config.Config) database.Config {
	return database.Config{
		DSN:             cfg.DatabaseURL,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	}
}

func openPostgresStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Storage, error) {
	db, err := database.Connect(newDatabaseConfig(cfg))
	if err != nil {
		return nil, err
	}
	if cfg.DBAutoMigrate {
		if err := database.AutoMigrate(ctx, db, log); err != nil {
			_ = database.Close(db)
			return nil, err
		}
	}

	txDB := transaction.NewDatabase(db)
	return &Storage{
		Users:    userrepo.NewUserGormRepository(txDB),
		Threads:  threadrepo.NewThreadGormRepository(txDB),
		Messages: threadrepo.NewMessageGormRepository(txDB),
		Tx:       txDB,
		Ready: func(ctx context.Context) error {
			return database.Ping(ctx, db)
		},
		closers: []func() error{func() error { return database.Close(db) }},
	}, nil
}

// newUserCache returns the LRU tier, backed by Redis when REDIS_URL is set.
func newUserCache(ctx context.Context, cfg *config.Config, log zerolog.Logger) (cache.Cache, func() error, error) {
	local, err := cache.NewMemoryCache(cfg.UserCacheSize, cfg.UserCacheTTL)
	if err != nil {
		return nil, nil, err
	}
	if cfg.RedisURL == "" {
		return local, nil, nil
	}

	remote, err := cache.NewRedisCache(ctx, cfg.RedisURL, cfg.UserCacheTTL, log)
	if err != nil {
		return nil, nil, err
	}
	log.Info().Msg("user cache backed by redis")
	return cache.Tiered{local, remote}, remote.Close, nil
}
