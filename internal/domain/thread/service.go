//go:generate go run go.uber.org/mock/mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks

package thread

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"jan-server/services/messaging-api/internal/domain/query"
	"jan-server/services/messaging-api/internal/domain/unitofwork"
	"jan-server/services/messaging-api/internal/domain/user"
	"jan-server/services/messaging-api/internal/utils/platformerrors"
)

// Service describes the business logic surface for threads and messages.
type Service interface {
	GetOrCreateDirectThread(ctx context.Context, userA, userB uuid.UUID) (*Thread, error)
	CreateGroupThread(ctx context.Context, input CreateGroupInput) (*Thread, error)
	PostMessage(ctx context.Context, threadID, senderID uuid.UUID, content string) (*Message, error)
	GetThread(ctx context.Context, id uuid.UUID) (*Thread, error)
	GetMessage(ctx context.Context, threadID, messageID uuid.UUID) (*Message, error)
	ListThreadsForUser(ctx context.Context, userID uuid.UUID, pagination query.Pagination) (query.Page[*Thread], error)
	ListMessages(ctx context.Context, threadID uuid.UUID, pagination query.Pagination) (query.Page[*Message], error)
}

// CreateGroupInput carries a group thread request. When InitialMessage is
// non-blank it is posted by SenderID in the same transaction as the thread.
type CreateGroupInput struct {
	ParticipantIDs []uuid.UUID
	Name           *string
	SenderID       *uuid.UUID
	InitialMessage *string
}

// Option customises a service.
type Option func(*service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

// WithRecorder attaches an instrumentation recorder.
func WithRecorder(recorder Recorder) Option {
	return func(s *service) {
		if recorder != nil {
			s.recorder = recorder
		}
	}
}

// WithMaxContentLength overrides the message content bound.
func WithMaxContentLength(n int) Option {
	return func(s *service) {
		if n > 0 {
			s.maxContentLength = n
		}
	}
}

// WithContentSanitizer sets how message content is rendered in logs.
func WithContentSanitizer(fn func(string) string) Option {
	return func(s *service) {
		if fn != nil {
			s.sanitize = fn
		}
	}
}

type service struct {
	threads          Repository
	messages         MessageRepository
	users            user.Finder
	tx               unitofwork.Transactor
	recorder         Recorder
	now              func() time.Time
	maxContentLength int
	sanitize         func(string) string
	log              zerolog.Logger
}

// NewService wires the thread service with its repositories.
func NewService(threads Repository, messages MessageRepository, users user.Finder, tx unitofwork.Transactor, log zerolog.Logger, opts ...Option) Service {
	s := &service{
		threads:          threads,
		messages:         messages,
		users:            users,
		tx:               tx,
		recorder:         nopRecorder{},
		now:              time.Now,
		maxContentLength: DefaultMaxContentLength,
		sanitize:         func(string) string { return "[REDACTED]" },
		log:              log.With().Str("component", "thread-service").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

func (s *service) GetOrCreateDirectThread(ctx context.Context, userA, userB uuid.UUID) (*Thread, error) {
	if userA == userB {
		return nil, validationError(ctx, "Direct thread requires two distinct users", "7a0d2b44-3c1e-4f7b-9d61-0e2c8a5f3b10")
	}

	key := DirectKey(userA, userB)
	var (
		result *Thread
		reused bool
	)
	err := s.tx.WithinTransaction(ctx, unitofwork.ReadWrite, func(ctx context.Context) error {
		if _, err := user.Require(ctx, s.users, userA); err != nil {
			return err
		}
		if _, err := user.Require(ctx, s.users, userB); err != nil {
			return err
		}

		existing, err := s.threads.FindDirectByKey(ctx, key)
		if err != nil {
			return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to look up direct thread")
		}
		if existing != nil {
			result, reused = existing, true
			return nil
		}

		now := s.timestamp()
		t := &Thread{
			ID:             uuid.New(),
			Type:           TypeDirect,
			DirectKey:      &key,
			ParticipantIDs: []uuid.UUID{userA, userB},
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := s.threads.Create(ctx, t); err != nil {
			return err
		}
		result = t
		return nil
	})

	switch {
	case err == nil:
	case platformerrors.IsErrorType(err, platformerrors.ErrorTypeConflict):
		// A concurrent request inserted the same pair first; its row is the answer.
		s.recorder.DirectThreadConflict()
		return s.resolveDirectAfterConflict(ctx, key, err)
	default:
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to resolve direct thread")
	}

	if reused {
		s.recorder.DirectThreadReused()
		return result, nil
	}
	s.recorder.ThreadCreated(TypeDirect)
	s.log.Info().Str("thread_id", result.ID.String()).Str("type", string(TypeDirect)).Msg("thread created")
	return result, nil
}

func (s *service) resolveDirectAfterConflict(ctx context.Context, key string, cause error) (*Thread, error) {
	var existing *Thread
	err := s.tx.WithinTransaction(ctx, unitofwork.ReadOnly, func(ctx context.Context) error {
		t, err := s.threads.FindDirectByKey(ctx, key)
		if err != nil {
			return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to re-read direct thread")
		}
		existing = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeConflict,
			"Direct thread was created concurrently, retry the request", cause, "c3e8f1a2-5b7d-4e90-8a6c-1f2d3b4a5c6e")
	}
	s.log.Debug().Str("thread_id", existing.ID.String()).Msg("direct thread resolved after insert conflict")
	return existing, nil
}

func (s *service) CreateGroupThread(ctx context.Context, input CreateGroupInput) (*Thread, error) {
	participantIDs := lo.Uniq(input.ParticipantIDs)
	if len(participantIDs) < MinGroupParticipants {
		return nil, validationError(ctx, fmt.Sprintf("Group thread requires at least %d participants", MinGroupParticipants), "2b9e6d15-8f3a-4c27-b1e0-5d4c3a2b1f09")
	}

	var name *string
	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		if utf8.RuneCountInString(*input.Name) > MaxNameLength {
			return nil, validationError(ctx, fmt.Sprintf("Thread name cannot exceed %d characters", MaxNameLength), "4e1a7c93-2d5b-4f68-9c0e-7b3a1d2e5f84")
		}
		name = lo.ToPtr(*input.Name)
	}

	var initial string
	if input.InitialMessage != nil && strings.TrimSpace(*input.InitialMessage) != "" {
		if input.SenderID == nil {
			return nil, validationError(ctx, "senderId is required when initialMessage is provided", "8d2f4b61-7e3c-4a95-b0d1-6c5e2f1a9b37")
		}
		initial = *input.InitialMessage
	}

	var (
		created *Thread
		posted  *Message
	)
	err := s.tx.WithinTransaction(ctx, unitofwork.ReadWrite, func(ctx context.Context) error {
		for _, id := range participantIDs {
			if _, err := user.Require(ctx, s.users, id); err != nil {
				return err
			}
		}

		now := s.timestamp()
		t := &Thread{
			ID:             uuid.New(),
			Type:           TypeGroup,
			Name:           name,
			ParticipantIDs: participantIDs,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := s.threads.Create(ctx, t); err != nil {
			return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create group thread")
		}
		created = t

		if initial == "" {
			return nil
		}
		m, err := s.post(ctx, t.ID, *input.SenderID, initial)
		if err != nil {
			return err
		}
		posted = m
		t.touch(m.CreatedAt)
		return nil
	})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create group thread")
	}

	s.recorder.ThreadCreated(TypeGroup)
	s.log.Info().Str("thread_id", created.ID.String()).Str("type", string(TypeGroup)).
		Int("participants", len(created.ParticipantIDs)).Msg("thread created")
	if posted != nil {
		s.messagePosted(posted)
	}
	return created, nil
}

func (s *service) PostMessage(ctx context.Context, threadID, senderID uuid.UUID, content string) (*Message, error) {
	var posted *Message
	err := s.tx.WithinTransaction(ctx, unitofwork.ReadWrite, func(ctx context.Context) error {
		m, err := s.post(ctx, threadID, senderID, content)
		if err != nil {
			return err
		}
		posted = m
		return nil
	})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to post message")
	}
	s.messagePosted(posted)
	return posted, nil
}

// post validates and stores a message and touches its thread. It must run inside a read-write transaction.
func (s *service) post(ctx context.Context, threadID, senderID uuid.UUID, content string) (*Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, validationError(ctx, "Message content cannot be empty", "1f6c9e27-4a3b-4d80-a5e2-9b8c7d6e5f43")
	}
	if utf8.RuneCountInString(content) > s.maxContentLength {
		return nil, validationError(ctx, fmt.Sprintf("Message content cannot exceed %d characters", s.maxContentLength), "6a3d8b52-1e7f-4c09-b2d4-3e5f6a7b8c91")
	}

	t, err := s.requireThread(ctx, threadID)
	if err != nil {
		return nil, err
	}
	if _, err := user.Require(ctx, s.users, senderID); err != nil {
		return nil, err
	}
	if !t.HasParticipant(senderID) {
		return nil, validationError(ctx, "Sender is not a participant of the thread", "9e4b2c71-6d8a-4f35-a1c7-0d9e8f7a6b52")
	}

	m := &Message{
		ID:        uuid.New(),
		ThreadID:  t.ID,
		SenderID:  senderID,
		Content:   content,
		CreatedAt: s.timestamp(),
	}
	if err := s.messages.Create(ctx, m); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to store message")
	}
	if err := s.threads.Touch(ctx, t.ID, m.CreatedAt); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to update thread activity")
	}
	return m, nil
}

func (s *service) messagePosted(m *Message) {
	s.recorder.MessagePosted()
	s.log.Info().
		Str("message_id", m.ID.String()).
		Str("thread_id", m.ThreadID.String()).
		Str("content", s.sanitize(m.Content)).
		Msg("message posted")
}

func (s *service) GetThread(ctx context.Context, id uuid.UUID) (*Thread, error) {
	var found *Thread
	err := s.tx.WithinTransaction(ctx, unitofwork.ReadOnly, func(ctx context.Context) error {
		t, err := s.requireThread(ctx, id)
		found = t
		return err
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (s *service) GetMessage(ctx context.Context, threadID, messageID uuid.UUID) (*Message, error) {
	var found *Message
	err := s.tx.WithinTransaction(ctx, unitofwork.ReadOnly, func(ctx context.Context) error {
		m, err := s.messages.FindByIDAndThread(ctx, threadID, messageID)
		if err != nil {
			return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load message")
		}
		if m == nil {
			return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
				"Message not found in thread", nil, "0c7e5a38-9b2d-4f16-8e43-2a1b0c9d8e76",
				map[string]any{"thread_id": threadID.String(), "message_id": messageID.String()})
		}
		found = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (s *service) ListThreadsForUser(ctx context.Context, userID uuid.UUID, pagination query.Pagination) (query.Page[*Thread], error) {
	var page query.Page[*Thread]
	err := s.tx.WithinTransaction(ctx, unitofwork.ReadOnly, func(ctx context.Context) error {
		if _, err := user.Require(ctx, s.users, userID); err != nil {
			return err
		}
		threads, err := s.threads.FindByParticipant(ctx, userID, pagination)
		if err != nil {
			return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list threads")
		}
		total, err := s.threads.CountByParticipant(ctx, userID)
		if err != nil {
			return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to count threads")
		}
		page = query.NewPage(threads, total, pagination)
		return nil
	})
	return page, err
}

func (s *service) ListMessages(ctx context.Context, threadID uuid.UUID, pagination query.Pagination) (query.Page[*Message], error) {
	var page query.Page[*Message]
	err := s.tx.WithinTransaction(ctx, unitofwork.ReadOnly, func(ctx context.Context) error {
		if _, err := s.requireThread(ctx, threadID); err != nil {
			return err
		}
		messages, err := s.messages.FindByThread(ctx, threadID, pagination)
		if err != nil {
			return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list messages")
		}
		total, err := s.messages.CountByThread(ctx, threadID)
		if err != nil {
			return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to count messages")
		}
		page = query.NewPage(messages, total, pagination)
		return nil
	})
	return page, err
}

func (s *service) requireThread(ctx context.Context, id uuid.UUID) (*Thread, error) {
	t, err := s.threads.FindByID(ctx, id)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load thread")
	}
	if t == nil {
		return nil, platformerrors.NewErrorWithContext(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			fmt.Sprintf("Thread not found: %s", id), nil, "3b8a6f04-2c9e-4d71-b5a3-8e7f6d5c4b29", map[string]any{"thread_id": id.String()})
	}
	return t, nil
}

func validationError(ctx context.Context, message, id string) *platformerrors.PlatformError {
	return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, message, nil, id)
}
