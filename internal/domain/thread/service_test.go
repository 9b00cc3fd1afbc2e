package thread_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jan-server/services/messaging-api/internal/domain/query"
	"jan-server/services/messaging-api/internal/domain/thread"
	"jan-server/services/messaging-api/internal/domain/user"
	"jan-server/services/messaging-api/internal/infrastructure/repository/memory"
	"jan-server/services/messaging-api/internal/utils/platformerrors"
)

type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

type recorder struct {
	created   map[thread.Type]int
	reused    int
	conflicts int
	posted    int
}

func (r *recorder) ThreadCreated(t thread.Type) { r.created[t]++ }
func (r *recorder) DirectThreadReused()         { r.reused++ }
func (r *recorder) DirectThreadConflict()       { r.conflicts++ }
func (r *recorder) MessagePosted()              { r.posted++ }

type fixture struct {
	store    *memory.Store
	threads  thread.Repository
	messages *memory.MessageRepository
	users    user.Service
	recorder *recorder
	clock    *stepClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	clock := &stepClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	return &fixture{
		store:    store,
		threads:  memory.NewThreadRepository(store),
		messages: memory.NewMessageRepository(store),
		users:    user.NewService(memory.NewUserRepository(store), store, zerolog.Nop(), user.WithClock(clock.Now)),
		recorder: &recorder{created: map[thread.Type]int{}},
		clock:    clock,
	}
}

func (f *fixture) service(opts ...thread.Option) thread.Service {
	opts = append([]thread.Option{thread.WithClock(f.clock.Now), thread.WithRecorder(f.recorder)}, opts...)
	return thread.NewService(f.threads, f.messages, memory.NewUserRepository(f.store), f.store, zerolog.Nop(), opts...)
}

func (f *fixture) user(t *testing.T, name string) uuid.UUID {
	t.Helper()
	u, err := f.users.CreateUser(context.Background(), name)
	require.NoError(t, err)
	return u.ID
}

func assertErrorType(t *testing.T, err error, errType platformerrors.ErrorType) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, errType), "expected %s, got %v", errType, err)
}

func TestGetOrCreateDirectThread_IsOrderIndependent(t *testing.T) {
	f := newFixture(t)
	svc := f.service()
	ctx := context.Background()
	alice, bob := f.user(t, "alice"), f.user(t, "bob")

	first, err := svc.GetOrCreateDirectThread(ctx, alice, bob)
	require.NoError(t, err)
	assert.Equal(t, thread.TypeDirect, first.Type)
	assert.Equal(t, []uuid.UUID{alice, bob}, first.ParticipantIDs)
	require.NotNil(t, first.DirectKey)
	assert.Equal(t, thread.DirectKey(alice, bob), *first.DirectKey)
	assert.Nil(t, first.Name)

	second, err := svc.GetOrCreateDirectThread(ctx, bob, alice)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.ParticipantIDs, second.ParticipantIDs)

	assert.Equal(t, 1, f.recorder.created[thread.TypeDirect])
	assert.Equal(t, 1, f.recorder.reused)
}

func TestGetOrCreateDirectThread_Validation(t *testing.T) {
	f := newFixture(t)
	svc := f.service()
	ctx := context.Background()
	alice := f.user(t, "alice")

	_, err := svc.GetOrCreateDirectThread(ctx, alice, alice)
	assertErrorType(t, err, platformerrors.ErrorTypeValidation)
	assert.Contains(t, err.Error(), "Direct thread requires two distinct users")

	_, err = svc.GetOrCreateDirectThread(ctx, alice, uuid.New())
	assertErrorType(t, err, platformerrors.ErrorTypeNotFound)
}

// racingThreads hides existing direct threads from the first lookup, the way a
// concurrent request would have missed a row that was inserted after its read.
type racingThreads struct {
	*memory.ThreadRepository
	mu      sync.Mutex
	lookups int
	hideAll bool
}

func (r *racingThreads) FindDirectByKey(ctx context.Context, key string) (*thread.Thread, error) {
	r.mu.Lock()
	r.lookups++
	hide := r.lookups == 1 || r.hideAll
	r.mu.Unlock()
	if hide {
		return nil, nil
	}
	return r.ThreadRepository.FindDirectByKey(ctx, key)
}

func TestGetOrCreateDirectThread_ConflictReturnsExistingThread(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice, bob := f.user(t, "alice"), f.user(t, "bob")

	existing, err := f.service().GetOrCreateDirectThread(ctx, alice, bob)
	require.NoError(t, err)

	f.threads = &racingThreads{ThreadRepository: memory.NewThreadRepository(f.store)}
	resolved, err := f.service().GetOrCreateDirectThread(ctx, bob, alice)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, resolved.ID)
	assert.Equal(t, 1, f.recorder.conflicts)
	assert.Equal(t, 1, f.recorder.created[thread.TypeDirect])
}

func TestGetOrCreateDirectThread_UnresolvedConflictSurfaces(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice, bob := f.user(t, "alice"), f.user(t, "bob")

	_, err := f.service().GetOrCreateDirectThread(ctx, alice, bob)
	require.NoError(t, err)

	f.threads = &racingThreads{ThreadRepository: memory.NewThreadRepository(f.store), hideAll: true}
	_, err = f.service().GetOrCreateDirectThread(ctx, alice, bob)
	assertErrorType(t, err, platformerrors.ErrorTypeConflict)
}

func TestCreateGroupThread(t *testing.T) {
	f := newFixture(t)
	svc := f.service()
	ctx := context.Background()
	alice, bob, carol := f.user(t, "alice"), f.user(t, "bob"), f.user(t, "carol")

	created, err := svc.CreateGroupThread(ctx, thread.CreateGroupInput{
		ParticipantIDs: []uuid.UUID{carol, alice, carol, bob},
		Name:           lo.ToPtr("Team"),
	})
	require.NoError(t, err)
	assert.Equal(t, thread.TypeGroup, created.Type)
	assert.Equal(t, []uuid.UUID{carol, alice, bob}, created.ParticipantIDs)
	assert.Nil(t, created.DirectKey)
	require.NotNil(t, created.Name)
	assert.Equal(t, "Team", *created.Name)
	assert.Equal(t, 1, f.recorder.created[thread.TypeGroup])

	stored, err := svc.GetThread(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ParticipantIDs, stored.ParticipantIDs)
}

func TestCreateGroupThread_Validation(t *testing.T) {
	f := newFixture(t)
	svc := f.service()
	alice, bob, carol := f.user(t, "alice"), f.user(t, "bob"), f.user(t, "carol")

	tests := []struct {
		name    string
		input   thread.CreateGroupInput
		errType platformerrors.ErrorType
		message string
	}{
		{
			name:    "nil participants",
			input:   thread.CreateGroupInput{},
			errType: platformerrors.ErrorTypeValidation,
			message: "Group thread requires at least 3 participants",
		},
		{
			name:    "duplicates collapse below minimum",
			input:   thread.CreateGroupInput{ParticipantIDs: []uuid.UUID{alice, bob, alice}},
			errType: platformerrors.ErrorTypeValidation,
			message: "Group thread requires at least 3 participants",
		},
		{
			name:    "name too long",
			input:   thread.CreateGroupInput{ParticipantIDs: []uuid.UUID{alice, bob, carol}, Name: lo.ToPtr(strings.Repeat("n", thread.MaxNameLength+1))},
			errType: platformerrors.ErrorTypeValidation,
			message: "Thread name cannot exceed",
		},
		{
			name:    "initial message without sender",
			input:   thread.CreateGroupInput{ParticipantIDs: []uuid.UUID{alice, bob, carol}, InitialMessage: lo.ToPtr("hi")},
			errType: platformerrors.ErrorTypeValidation,
			message: "senderId is required when initialMessage is provided",
		},
		{
			name:    "unknown participant",
			input:   thread.CreateGroupInput{ParticipantIDs: []uuid.UUID{alice, bob, uuid.New()}},
			errType: platformerrors.ErrorTypeNotFound,
			message: "User not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateGroupThread(context.Background(), tt.input)
			assertErrorType(t, err, tt.errType)
			assert.Contains(t, err.Error(), tt.message)
		})
	}

	page, err := svc.ListThreadsForUser(context.Background(), alice, query.Pagination{Page: 0, Size: 10})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestCreateGroupThread_WithInitialMessage(t *testing.T) {
	f := newFixture(t)
	svc := f.service()
	ctx := context.Background()
	alice, bob, carol := f.user(t, "alice"), f.user(t, "bob"), f.user(t, "carol")

	created, err := svc.CreateGroupThread(ctx, thread.CreateGroupInput{
		ParticipantIDs: []uuid.UUID{alice, bob, carol},
		SenderID:       &alice,
		InitialMessage: lo.ToPtr("welcome"),
	})
	require.NoError(t, err)

	messages, err := svc.ListMessages(ctx, created.ID, query.Pagination{Page: 0, Size: 10})
	require.NoError(t, err)
	require.Len(t, messages.Items, 1)
	assert.Equal(t, "welcome", messages.Items[0].Content)
	assert.Equal(t, alice, messages.Items[0].SenderID)
	assert.False(t, created.UpdatedAt.Before(messages.Items[0].CreatedAt))
	assert.Equal(t, 1, f.recorder.posted)
}

func TestCreateGroupThread_BlankInitialMessageIsIgnored(t *testing.T) {
	f := newFixture(t)
	svc := f.service()
	ctx := context.Background()
	alice, bob, carol := f.user(t, "alice"), f.user(t, "bob"), f.user(t, "carol")

	created, err := svc.CreateGroupThread(ctx, thread.CreateGroupInput{
		ParticipantIDs: []uuid.UUID{alice, bob, carol},
		InitialMessage: lo.ToPtr("   "),
	})
	require.NoError(t, err)

	messages, err := svc.ListMessages(ctx, created.ID, query.Pagination{Page: 0, Size: 10})
	require.NoError(t, err)
	assert.Empty(t, messages.Items)
}

func TestCreateGroupThread_FailedInitialMessageRollsBackThread(t *testing.T) {
	f := newFixture(t)
	svc := f.service()
	ctx := context.Background()
	alice, bob, carol, dave := f.user(t, "alice"), f.user(t, "bob"), f.user(t, "carol"), f.user(t, "dave")

	_, err := svc.CreateGroupThread(ctx, thread.CreateGroupInput{
		ParticipantIDs: []uuid.UUID{alice, bob, carol},
		SenderID:       &dave,
		InitialMessage: lo.ToPtr("hello"),
	})
	assertErrorType(t, err, platformerrors.ErrorTypeValidation)
	assert.Contains(t, err.Error(), "Sender is not a participant of the thread")

	page, err := svc.ListThreadsForUser(ctx, alice, query.Pagination{Page: 0, Size: 10})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Zero(t, f.recorder.created[thread.TypeGroup])
}

func TestPostMessage(t *testing.T) {
	f := newFixture(t)
	svc := f.service()
	ctx := context.Background()
	alice, bob := f.user(t, "alice"), f.user(t, "bob")

	direct, err := svc.GetOrCreateDirectThread(ctx, alice, bob)
	require.NoError(t, err)

	msg, err := svc.PostMessage(ctx, direct.ID, bob, "hello alice")
	require.NoError(t, err)
	assert.Equal(t, direct.ID, msg.ThreadID)
	assert.Equal(t, bob, msg.SenderID)
	assert.Equal(t, "hello alice", msg.Content)
	assert.True(t, msg.CreatedAt.After(direct.CreatedAt))

	touched, err := svc.GetThread(ctx, direct.ID)
	require.NoError(t, err)
	assert.False(t, touched.UpdatedAt.Before(msg.CreatedAt))
	assert.Equal(t, direct.CreatedAt, touched.CreatedAt)

	found, err := svc.GetMessage(ctx, direct.ID, msg.ID)
	require.NoError(t, err)
	assert.Equal(t, msg, found)
}

func TestPostMessage_Failures(t *testing.T) {
	f := newFixture(t)
	svc := f.service(thread.WithMaxContentLength(10))
	ctx := context.Background()
	alice, bob, carol := f.user(t, "alice"), f.user(t, "bob"), f.user(t, "carol")

	direct, err := svc.GetOrCreateDirectThread(ctx, alice, bob)
	require.NoError(t, err)

	tests := []struct {
		name     string
		threadID uuid.UUID
		senderID uuid.UUID
		content  string
		errType  platformerrors.ErrorType
		message  string
	}{
		{"empty content", direct.ID, alice, "", platformerrors.ErrorTypeValidation, "Message content cannot be empty"},
		{"blank content", direct.ID, alice, " \n\t", platformerrors.ErrorTypeValidation, "Message content cannot be empty"},
		{"blank content checked before thread", uuid.New(), alice, " ", platformerrors.ErrorTypeValidation, "Message content cannot be empty"},
		{"content too long", direct.ID, alice, strings.Repeat("x", 11), platformerrors.ErrorTypeValidation, "cannot exceed 10 characters"},
		{"unknown thread", uuid.New(), alice, "hi", platformerrors.ErrorTypeNotFound, "Thread not found"},
		{"unknown sender", direct.ID, uuid.New(), "hi", platformerrors.ErrorTypeNotFound, "User not found"},
		{"non participant", direct.ID, carol, "hi", platformerrors.ErrorTypeValidation, "Sender is not a participant of the thread"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.PostMessage(ctx, tt.threadID, tt.senderID, tt.content)
			assertErrorType(t, err, tt.errType)
			assert.Contains(t, err.Error(), tt.message)
		})
	}

	messages, err := svc.ListMessages(ctx, direct.ID, query.Pagination{Page: 0, Size: 10})
	require.NoError(t, err)
	assert.Empty(t, messages.Items)
	assert.Zero(t, f.recorder.posted)
}

func TestListMessages_AscendingAndPaged(t *testing.T) {
	f := newFixture(t)
	svc := f.service()
	ctx := context.Background()
	alice, bob := f.user(t, "alice"), f.user(t, "bob")

	direct, err := svc.GetOrCreateDirectThread(ctx, alice, bob)
	require.NoError(t, err)
	for _, content := range []string{"one", "two", "three", "four", "five"} {
		_, err := svc.PostMessage(ctx, direct.ID, alice, content)
		require.NoError(t, err)
	}

	page, err := svc.ListMessages(ctx, direct.ID, query.Pagination{Page: 0, Size: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Total)
	assert.Equal(t, []string{"one", "two", "three"}, lo.Map(page.Items, func(m *thread.Message, _ int) string { return m.Content }))

	page, err = svc.ListMessages(ctx, direct.ID, query.Pagination{Page: 1, Size: 3})
	require.NoError(t, err)
	assert.Equal(t, []string{"four", "five"}, lo.Map(page.Items, func(m *thread.Message, _ int) string { return m.Content }))

	_, err = svc.ListMessages(ctx, uuid.New(), query.Pagination{Page: 0, Size: 3})
	assertErrorType(t, err, platformerrors.ErrorTypeNotFound)
}

func TestListThreadsForUser_MostRecentActivityFirst(t *testing.T) {
	f := newFixture(t)
	svc := f.service()
	ctx := context.Background()
	alice, bob, carol := f.user(t, "alice"), f.user(t, "bob"), f.user(t, "carol")

	withBob, err := svc.GetOrCreateDirectThread(ctx, alice, bob)
	require.NoError(t, err)
	withCarol, err := svc.GetOrCreateDirectThread(ctx, alice, carol)
	require.NoError(t, err)
	group, err := svc.CreateGroupThread(ctx, thread.CreateGroupInput{ParticipantIDs: []uuid.UUID{alice, bob, carol}})
	require.NoError(t, err)

	_, err = svc.PostMessage(ctx, withBob.ID, bob, "ping")
	require.NoError(t, err)

	page, err := svc.ListThreadsForUser(ctx, alice, query.Pagination{Page: 0, Size: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, []uuid.UUID{withBob.ID, group.ID, withCarol.ID},
		lo.Map(page.Items, func(t *thread.Thread, _ int) uuid.UUID { return t.ID }))

	page, err = svc.ListThreadsForUser(ctx, bob, query.Pagination{Page: 0, Size: 10})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)

	_, err = svc.ListThreadsForUser(ctx, uuid.New(), query.Pagination{Page: 0, Size: 10})
	assertErrorType(t, err, platformerrors.ErrorTypeNotFound)
}

func TestGetMessage_RequiresMatchingThread(t *testing.T) {
	f := newFixture(t)
	svc := f.service()
	ctx := context.Background()
	alice, bob, carol := f.user(t, "alice"), f.user(t, "bob"), f.user(t, "carol")

	first, err := svc.GetOrCreateDirectThread(ctx, alice, bob)
	require.NoError(t, err)
	second, err := svc.GetOrCreateDirectThread(ctx, alice, carol)
	require.NoError(t, err)
	msg, err := svc.PostMessage(ctx, first.ID, alice, "hi")
	require.NoError(t, err)

	_, err = svc.GetMessage(ctx, second.ID, msg.ID)
	assertErrorType(t, err, platformerrors.ErrorTypeNotFound)
	assert.Contains(t, err.Error(), "Message not found in thread")

	_, err = svc.GetThread(ctx, uuid.New())
	assertErrorType(t, err, platformerrors.ErrorTypeNotFound)
}
