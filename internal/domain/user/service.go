//go:generate go run go.uber.org/mock/mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks

package user

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"jan-server/services/messaging-api/internal/domain/query"
	"jan-server/services/messaging-api/internal/domain/unitofwork"
	"jan-server/services/messaging-api/internal/utils/platformerrors"
)

// Service describes the business logic surface for user registration and lookup.
type Service interface {
	CreateUser(ctx context.Context, username string) (*User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	ListUsers(ctx context.Context, pagination query.Pagination) (query.Page[*User], error)
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

// WithUsernameSanitizer controls how usernames appear in logs.
func WithUsernameSanitizer(fn func(string) string) Option {
	return func(s *service) {
		if fn != nil {
			s.sanitize = fn
		}
	}
}

type service struct {
	repo     Repository
	tx       unitofwork.Transactor
	recorder Recorder
	now      func() time.Time
	sanitize func(string) string
	log      zerolog.Logger
}

// NewService wires the user service with its repository.
func NewService(repo Repository, tx unitofwork.Transactor, log zerolog.Logger, opts ...Option) Service {
	s := &service{
		repo:     repo,
		tx:       tx,
		recorder: nopRecorder{},
		now:      time.Now,
		sanitize: func(string) string { return "[REDACTED]" },
		log:      log.With().Str("component", "user-service").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ValidateUsername rejects blank or oversized usernames. Usernames are stored as given.
func ValidateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return fmt.Errorf("username cannot be blank")
	}
	if utf8.RuneCountInString(username) > MaxUsernameLength {
		return fmt.Errorf("username cannot exceed %d characters", MaxUsernameLength)
	}
	return nil
}

func (s *service) CreateUser(ctx context.Context, username string) (*User, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, err.Error(), nil, "0f5c1d0e-8b52-4f0e-9a51-3f1e3c0b7a11")
	}

	var created *User
	err := s.tx.WithinTransaction(ctx, unitofwork.ReadWrite, func(ctx context.Context) error {
		existing, err := s.repo.FindByUsername(ctx, username)
		if err != nil {
			return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to look up username")
		}
		if existing != nil {
			return usernameTaken(ctx, username, nil)
		}

		u := &User{
			ID:        uuid.New(),
			Username:  username,
			CreatedAt: s.now().UTC().Truncate(time.Microsecond),
		}
		if err := s.repo.Create(ctx, u); err != nil {
			if platformerrors.IsErrorType(err, platformerrors.ErrorTypeConflict) {
				return usernameTaken(ctx, username, err)
			}
			return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create user")
		}
		created = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recorder.UserCreated()
	s.log.Info().
		Str("user_id", created.ID.String()).
		Str("username", s.sanitize(created.Username)).
		Msg("user created")
	return created, nil
}

func (s *service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	var found *User
	err := s.tx.WithinTransaction(ctx, unitofwork.ReadOnly, func(ctx context.Context) error {
		u, err := Require(ctx, s.repo, id)
		if err != nil {
			return err
		}
		found = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (s *service) ListUsers(ctx context.Context, pagination query.Pagination) (query.Page[*User], error) {
	var page query.Page[*User]
	err := s.tx.WithinTransaction(ctx, unitofwork.ReadOnly, func(ctx context.Context) error {
		users, err := s.repo.List(ctx, pagination)
		if err != nil {
			return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list users")
		}
		total, err := s.repo.Count(ctx)
		if err != nil {
			return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to count users")
		}
		page = query.NewPage(users, total, pagination)
		return nil
	})
	return page, err
}

// Finder is the lookup surface other domains need to resolve users.
type Finder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
}

// Require resolves a user or fails with a not-found error.
func Require(ctx context.Context, finder Finder, id uuid.UUID) (*User, error) {
	u, err := finder.FindByID(ctx, id)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load user")
	}
	if u == nil {
		return nil, platformerrors.NewErrorWithContext(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, fmt.Sprintf("User not found: %s", id), nil, "5d0b6a63-2b0e-4c59-9f0e-6b8f5d7f0c21", map[string]any{"user_id": id.String()})
	}
	return u, nil
}

func usernameTaken(ctx context.Context, username string, cause error) error {
	return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeConflict, fmt.Sprintf("Username already exists: %s", username), cause, "9c7f4e2a-6a8d-4b1f-8e3c-2d5a7b9c1e44")
}
