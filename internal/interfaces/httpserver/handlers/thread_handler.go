package handlers

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"jan-server/services/messaging-api/internal/config"
	"jan-server/services/messaging-api/internal/domain/thread"
	"jan-server/services/messaging-api/internal/interfaces/httpserver/requests"
	"jan-server/services/messaging-api/internal/interfaces/httpserver/responses"
)

// ThreadHandler handles thread and message HTTP requests.
type ThreadHandler struct {
	cfg     *config.Config
	service thread.Service
}

// NewThreadHandler creates a new thread handler.
func NewThreadHandler(cfg *config.Config, service thread.Service) *ThreadHandler {
	return &ThreadHandler{cfg: cfg, service: service}
}

// GetOrCreateDirectThread resolves the direct thread between two users.
func (h *ThreadHandler) GetOrCreateDirectThread(ctx context.Context, links responses.LinkBuilder, req requests.DirectThreadRequest) (responses.ThreadModel, error) {
	t, err := h.service.GetOrCreateDirectThread(ctx, *req.User1ID, *req.User2ID)
	if err != nil {
		return responses.ThreadModel{}, err
	}
	return responses.NewThreadModel(links, t), nil
}

// CreateGroupThread creates a group thread, optionally posting an initial message.
func (h *ThreadHandler) CreateGroupThread(ctx context.Context, links responses.LinkBuilder, req requests.GroupThreadRequest) (responses.ThreadModel, error) {
	t, err := h.service.CreateGroupThread(ctx, thread.CreateGroupInput{
		ParticipantIDs: req.ParticipantIDs,
		Name:           req.Name,
		SenderID:       req.SenderID,
		InitialMessage: req.InitialMessage,
	})
	if err != nil {
		return responses.ThreadModel{}, err
	}
	return responses.NewThreadModel(links, t), nil
}

// GetThread retrieves a thread by ID.
func (h *ThreadHandler) GetThread(ctx context.Context, links responses.LinkBuilder, id uuid.UUID) (responses.ThreadModel, error) {
	t, err := h.service.GetThread(ctx, id)
	if err != nil {
		return responses.ThreadModel{}, err
	}
	return responses.NewThreadModel(links, t), nil
}

// ListThreadsForUser returns a user's threads, most recent activity first.
func (h *ThreadHandler) ListThreadsForUser(ctx context.Context, links responses.LinkBuilder, userID uuid.UUID, page requests.PageQuery) (responses.ThreadPage, error) {
	result, err := h.service.ListThreadsForUser(ctx, userID, page.Pagination(h.cfg.DefaultPageSize, h.cfg.MaxPageSize))
	if err != nil {
		return responses.ThreadPage{}, err
	}
	path := fmt.Sprintf("/users/%s/threads", userID)
	return responses.NewPagedModel(links, path, responses.ThreadListRel, result, func(t *thread.Thread) responses.ThreadModel {
		return responses.NewThreadModel(links, t)
	}), nil
}

// PostMessage appends a message to a thread.
func (h *ThreadHandler) PostMessage(ctx context.Context, links responses.LinkBuilder, threadID uuid.UUID, req requests.PostMessageRequest) (responses.MessageModel, error) {
	m, err := h.service.PostMessage(ctx, threadID, *req.SenderID, req.Content)
	if err != nil {
		return responses.MessageModel{}, err
	}
	return responses.NewMessageModel(links, m), nil
}

// ListMessages returns a thread's messages in posting order.
func (h *ThreadHandler) ListMessages(ctx context.Context, links responses.LinkBuilder, threadID uuid.UUID, page requests.PageQuery) (responses.MessagePage, error) {
	result, err := h.service.ListMessages(ctx, threadID, page.Pagination(h.cfg.DefaultPageSize, h.cfg.MaxPageSize))
	if err != nil {
		return responses.MessagePage{}, err
	}
	path := fmt.Sprintf("/threads/%s/messages", threadID)
	return responses.NewPagedModel(links, path, responses.MessageListRel, result, func(m *thread.Message) responses.MessageModel {
		return responses.NewMessageModel(links, m)
	}), nil
}

// GetMessage retrieves a message that belongs to threadID.
func (h *ThreadHandler) GetMessage(ctx context.Context, links responses.LinkBuilder, threadID, messageID uuid.UUID) (responses.MessageModel, error) {
	m, err := h.service.GetMessage(ctx, threadID, messageID)
	if err != nil {
		return responses.MessageModel{}, err
	}
	return responses.NewMessageModel(links, m), nil
}
