package handlers

import (
	"context"

	"github.com/google/uuid"

	"jan-server/services/messaging-api/internal/config"
	"jan-server/services/messaging-api/internal/domain/user"
	"jan-server/services/messaging-api/internal/interfaces/httpserver/requests"
	"jan-server/services/messaging-api/internal/interfaces/httpserver/responses"
)

// UserHandler handles user-related HTTP requests.
type UserHandler struct {
	cfg     *config.Config
	service user.Service
}

// NewUserHandler creates a new user handler.
func NewUserHandler(cfg *config.Config, service user.Service) *UserHandler {
	return &UserHandler{cfg: cfg, service: service}
}

// CreateUser registers a user.
func (h *UserHandler) CreateUser(ctx context.Context, links responses.LinkBuilder, req requests.CreateUserRequest) (responses.UserModel, error) {
	u, err := h.service.CreateUser(ctx, req.Username)
	if err != nil {
		return responses.UserModel{}, err
	}
	return responses.NewUserModel(links, u), nil
}

// GetUser retrieves a user by ID.
func (h *UserHandler) GetUser(ctx context.Context, links responses.LinkBuilder, id uuid.UUID) (responses.UserModel, error) {
	u, err := h.service.GetUser(ctx, id)
	if err != nil {
		return responses.UserModel{}, err
	}
	return responses.NewUserModel(links, u), nil
}

// ListUsers returns one page of users in registration order.
func (h *UserHandler) ListUsers(ctx context.Context, links responses.LinkBuilder, page requests.PageQuery) (responses.UserPage, error) {
	pagination := page.Pagination(h.cfg.DefaultPageSize, h.cfg.MaxPageSize)
	result, err := h.service.ListUsers(ctx, pagination)
	if err != nil {
		return responses.UserPage{}, err
	}
	return responses.NewPagedModel(links, "/users", responses.UserListRel, result, func(u *user.User) responses.UserModel {
		return responses.NewUserModel(links, u)
	}), nil
}
