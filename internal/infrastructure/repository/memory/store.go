// Package memory provides a thread-safe in-process store used for demos/tests
// and for STORAGE_DRIVER=memory.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"jan-server/services/messaging-api/internal/domain/thread"
	"jan-server/services/messaging-api/internal/domain/unitofwork"
	"jan-server/services/messaging-api/internal/domain/user"
	"jan-server/services/messaging-api/internal/utils/platformerrors"
)

type txKey struct{}

type txState struct {
	store    *Store
	readOnly bool
}

type storedMessage struct {
	message thread.Message
	seq     int64
}

type snapshot struct {
	users      map[uuid.UUID]user.User
	userOrder  []uuid.UUID
	threads    map[uuid.UUID]thread.Thread
	directKeys map[string]uuid.UUID
	messages   map[uuid.UUID]storedMessage
	seq        int64
}

// Store holds users, threads and messages in memory and implements
// unitofwork.Transactor. A read-write transaction holds the write lock and
// restores a snapshot when it fails.
type Store struct {
	mu   sync.RWMutex
	data snapshot
}

var _ unitofwork.Transactor = (*Store)(nil)

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{data: snapshot{
		users:      map[uuid.UUID]user.User{},
		threads:    map[uuid.UUID]thread.Thread{},
		directKeys: map[string]uuid.UUID{},
		messages:   map[uuid.UUID]storedMessage{},
	}}
}

// WithinTransaction runs fn under the store lock.
func (s *Store) WithinTransaction(ctx context.Context, opts unitofwork.Options, fn func(ctx context.Context) error) (err error) {
	if _, ok := s.active(ctx); ok {
		return fn(ctx)
	}

	if opts.ReadOnly {
		s.mu.RLock()
		defer s.mu.RUnlock()
		return fn(context.WithValue(ctx, txKey{}, &txState{store: s, readOnly: true}))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	saved := s.data.clone()
	defer func() {
		if r := recover(); r != nil {
			s.data = saved
			panic(r)
		}
		if err != nil {
			s.data = saved
		}
	}()
	return fn(context.WithValue(ctx, txKey{}, &txState{store: s}))
}

func (s *Store) active(ctx context.Context) (*txState, bool) {
	state, ok := ctx.Value(txKey{}).(*txState)
	if !ok || state.store != s {
		return nil, false
	}
	return state, true
}

func (s *Store) read(ctx context.Context, fn func(data *snapshot)) {
	if _, ok := s.active(ctx); !ok {
		s.mu.RLock()
		defer s.mu.RUnlock()
	}
	fn(&s.data)
}

func (s *Store) write(ctx context.Context, fn func(data *snapshot) error) error {
	state, ok := s.active(ctx)
	if ok && state.readOnly {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"cannot write in a read-only transaction", nil, "5f2e8c41-7a9b-4d36-b0e1-3c4d5e6f7a82")
	}
	if !ok {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn(&s.data)
}

func (d snapshot) clone() snapshot {
	c := snapshot{
		users:      make(map[uuid.UUID]user.User, len(d.users)),
		userOrder:  append([]uuid.UUID(nil), d.userOrder...),
		threads:    make(map[uuid.UUID]thread.Thread, len(d.threads)),
		directKeys: make(map[string]uuid.UUID, len(d.directKeys)),
		messages:   make(map[uuid.UUID]storedMessage, len(d.messages)),
		seq:        d.seq,
	}
	for k, v := range d.users {
		c.users[k] = v
	}
	for k, v := range d.threads {
		c.threads[k] = v
	}
	for k, v := range d.directKeys {
		c.directKeys[k] = v
	}
	for k, v := range d.messages {
		c.messages[k] = v
	}
	return c
}

func window[T any](items []T, offset, size int) []T {
	if offset < 0 || offset >= len(items) || size <= 0 {
		return []T{}
	}
	end := offset + size
	if end > len(items) || end < offset {
		end = len(items)
	}
	return items[offset:end]
}
