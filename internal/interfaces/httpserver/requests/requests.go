// Package requests contains HTTP request DTOs for the messaging-api.
package requests

import (
	"github.com/google/uuid"

	"jan-server/services/messaging-api/internal/domain/query"
)

// CreateUserRequest registers a user.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,notblank,max=100" example:"alice"`
}

// DirectThreadRequest resolves the direct thread between two users.
type DirectThreadRequest struct {
	User1ID *uuid.UUID `json:"user1Id" binding:"required" swaggertype:"string" format:"uuid"`
	User2ID *uuid.UUID `json:"user2Id" binding:"required" swaggertype:"string" format:"uuid"`
}

// GroupThreadRequest creates a group thread, optionally with a first message.
type GroupThreadRequest struct {
	ParticipantIDs []uuid.UUID `json:"participantIds" swaggertype:"array,string"`
	Name           *string     `json:"name" example:"Weekend plans"`
	SenderID       *uuid.UUID  `json:"senderId" swaggertype:"string" format:"uuid"`
	InitialMessage *string     `json:"initialMessage" example:"Hi all"`
}

// PostMessageRequest posts a message to a thread.
type PostMessageRequest struct {
	SenderID *uuid.UUID `json:"senderId" binding:"required" swaggertype:"string" format:"uuid"`
	Content  string     `json:"content" example:"Hello!"`
}

// PageQuery carries the page/size query parameters.
type PageQuery struct {
	Page *int `form:"page" binding:"omitempty,min=0,max=1000000"`
	Size *int `form:"size" binding:"omitempty,min=1"`
}

// Pagination resolves defaults and caps the page size at maxSize.
func (q PageQuery) Pagination(defaultSize, maxSize int) query.Pagination {
	p := query.Pagination{Page: 0, Size: defaultSize}
	if q.Page != nil {
		p.Page = *q.Page
	}
	if q.Size != nil {
		p.Size = *q.Size
	}
	if maxSize > 0 && p.Size > maxSize {
		p.Size = maxSize
	}
	return p
}
