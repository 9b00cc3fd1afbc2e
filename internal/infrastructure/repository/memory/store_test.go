package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jan-server/services/messaging-api/internal/domain/query"
	"jan-server/services/messaging-api/internal/domain/thread"
	"jan-server/services/messaging-api/internal/domain/unitofwork"
	"jan-server/services/messaging-api/internal/domain/user"
	"jan-server/services/messaging-api/internal/utils/platformerrors"
)

func newUser(name string) *user.User {
	return &user.User{ID: uuid.New(), Username: name, CreatedAt: time.Now().UTC()}
}

func TestStore_RollsBackFailedTransaction(t *testing.T) {
	store := NewStore()
	users := NewUserRepository(store)
	ctx := context.Background()

	err := store.WithinTransaction(ctx, unitofwork.ReadWrite, func(ctx context.Context) error {
		require.NoError(t, users.Create(ctx, newUser("alice")))
		return errors.New("boom")
	})
	require.Error(t, err)

	count, err := users.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestStore_RollsBackOnPanic(t *testing.T) {
	store := NewStore()
	users := NewUserRepository(store)
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = store.WithinTransaction(ctx, unitofwork.ReadWrite, func(ctx context.Context) error {
			require.NoError(t, users.Create(ctx, newUser("alice")))
			panic("boom")
		})
	})

	found, err := users.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestStore_RejectsWritesInReadOnlyTransaction(t *testing.T) {
	store := NewStore()
	users := NewUserRepository(store)

	err := store.WithinTransaction(context.Background(), unitofwork.ReadOnly, func(ctx context.Context) error {
		return users.Create(ctx, newUser("alice"))
	})

	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeDatabaseError))
}

func TestStore_NestedTransactionJoinsOuter(t *testing.T) {
	store := NewStore()
	users := NewUserRepository(store)

	err := store.WithinTransaction(context.Background(), unitofwork.ReadWrite, func(ctx context.Context) error {
		require.NoError(t, store.WithinTransaction(ctx, unitofwork.ReadWrite, func(ctx context.Context) error {
			return users.Create(ctx, newUser("alice"))
		}))
		return errors.New("outer failure")
	})
	require.Error(t, err)

	count, err := users.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestUserRepository_UniqueUsernameAndOrder(t *testing.T) {
	store := NewStore()
	users := NewUserRepository(store)
	ctx := context.Background()

	for _, name := range []string{"carol", "alice", "bob"} {
		require.NoError(t, users.Create(ctx, newUser(name)))
	}
	err := users.Create(ctx, newUser("alice"))
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeConflict))

	listed, err := users.List(ctx, query.Pagination{Page: 0, Size: 2})
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "carol", listed[0].Username)
	assert.Equal(t, "alice", listed[1].Username)
}

func TestUserRepository_ListPastRepresentableOffset(t *testing.T) {
	store := NewStore()
	users := NewUserRepository(store)
	ctx := context.Background()
	require.NoError(t, users.Create(ctx, newUser("alice")))

	listed, err := users.List(ctx, query.Pagination{Page: 92233720368547759, Size: 100})
	require.NoError(t, err)
	assert.Empty(t, listed)

	assert.Empty(t, window([]int{1, 2, 3}, -5, 2))
}

func TestThreadRepository_DirectKeyAndTouch(t *testing.T) {
	store := NewStore()
	threads := NewThreadRepository(store)
	ctx := context.Background()
	a, b := uuid.New(), uuid.New()
	key := thread.DirectKey(a, b)
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	direct := &thread.Thread{ID: uuid.New(), Type: thread.TypeDirect, DirectKey: &key, ParticipantIDs: []uuid.UUID{a, b}, CreatedAt: created, UpdatedAt: created}
	require.NoError(t, threads.Create(ctx, direct))

	dup := &thread.Thread{ID: uuid.New(), Type: thread.TypeDirect, DirectKey: &key, ParticipantIDs: []uuid.UUID{b, a}, CreatedAt: created, UpdatedAt: created}
	assert.True(t, platformerrors.IsErrorType(threads.Create(ctx, dup), platformerrors.ErrorTypeConflict))

	later := created.Add(time.Minute)
	require.NoError(t, threads.Touch(ctx, direct.ID, later))
	require.NoError(t, threads.Touch(ctx, direct.ID, created))

	found, err := threads.FindDirectByKey(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, later, found.UpdatedAt)

	found.ParticipantIDs[0] = uuid.Nil
	again, err := threads.FindByID(ctx, direct.ID)
	require.NoError(t, err)
	assert.Equal(t, a, again.ParticipantIDs[0])

	err = threads.Touch(ctx, uuid.New(), later)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))
}

func TestMessageRepository_OrdersBySequenceOnTies(t *testing.T) {
	store := NewStore()
	messages := NewMessageRepository(store)
	ctx := context.Background()
	threadID := uuid.New()
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		m := &thread.Message{ID: uuid.New(), ThreadID: threadID, SenderID: uuid.New(), Content: "x", CreatedAt: at}
		require.NoError(t, messages.Create(ctx, m))
		ids = append(ids, m.ID)
	}

	listed, err := messages.FindByThread(ctx, threadID, query.Pagination{Page: 0, Size: 10})
	require.NoError(t, err)
	require.Len(t, listed, 3)
	for i, m := range listed {
		assert.Equal(t, ids[i], m.ID)
	}

	found, err := messages.FindByIDAndThread(ctx, uuid.New(), ids[0])
	require.NoError(t, err)
	assert.Nil(t, found)
}
