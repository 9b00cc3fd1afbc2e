package responses

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"jan-server/services/messaging-api/internal/domain/thread"
	"jan-server/services/messaging-api/internal/domain/user"
)

const (
	UserListRel    = "userModelList"
	ThreadListRel  = "threadModelList"
	MessageListRel = "messageModelList"
)

type UserLinks struct {
	Self    Link `json:"self"`
	Threads Link `json:"threads"`
}

// UserModel is the user resource.
type UserModel struct {
	ID        uuid.UUID `json:"id" swaggertype:"string" format:"uuid"`
	Username  string    `json:"username" example:"alice"`
	CreatedAt time.Time `json:"createdAt"`
	Links     UserLinks `json:"_links"`
}

func NewUserModel(b LinkBuilder, u *user.User) UserModel {
	return UserModel{
		ID:        u.ID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
		Links: UserLinks{
			Self:    b.Link("/users/%s", u.ID),
			Threads: b.Link("/users/%s/threads", u.ID),
		},
	}
}

type ThreadLinks struct {
	Self        Link   `json:"self"`
	Messages    Link   `json:"messages"`
	SendMessage Link   `json:"send-message"`
	Participant []Link `json:"participant"`
}

// ThreadModel is the thread resource.
type ThreadModel struct {
	ID             uuid.UUID   `json:"id" swaggertype:"string" format:"uuid"`
	Type           thread.Type `json:"type" swaggertype:"string" enums:"DIRECT,GROUP"`
	Name           *string     `json:"name"`
	ParticipantIDs []uuid.UUID `json:"participantIds" swaggertype:"array,string"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
	Links          ThreadLinks `json:"_links"`
}

func NewThreadModel(b LinkBuilder, t *thread.Thread) ThreadModel {
	participantIDs := append([]uuid.UUID{}, t.ParticipantIDs...)
	return ThreadModel{
		ID:             t.ID,
		Type:           t.Type,
		Name:           t.Name,
		ParticipantIDs: participantIDs,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
		Links: ThreadLinks{
			Self:        b.Link("/threads/%s", t.ID),
			Messages:    b.Link("/threads/%s/messages", t.ID),
			SendMessage: b.Link("/threads/%s/messages", t.ID),
			Participant: lo.Map(participantIDs, func(id uuid.UUID, _ int) Link {
				return b.Link("/users/%s", id)
			}),
		},
	}
}

type MessageLinks struct {
	Self   Link `json:"self"`
	Thread Link `json:"thread"`
	Sender Link `json:"sender"`
}

// MessageModel is the message resource.
type MessageModel struct {
	ID        uuid.UUID    `json:"id" swaggertype:"string" format:"uuid"`
	ThreadID  uuid.UUID    `json:"threadId" swaggertype:"string" format:"uuid"`
	SenderID  uuid.UUID    `json:"senderId" swaggertype:"string" format:"uuid"`
	Content   string       `json:"content"`
	CreatedAt time.Time    `json:"createdAt"`
	Links     MessageLinks `json:"_links"`
}

func NewMessageModel(b LinkBuilder, m *thread.Message) MessageModel {
	return MessageModel{
		ID:        m.ID,
		ThreadID:  m.ThreadID,
		SenderID:  m.SenderID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		Links: MessageLinks{
			Self:   b.Link("/threads/%s/messages/%s", m.ThreadID, m.ID),
			Thread: b.Link("/threads/%s", m.ThreadID),
			Sender: b.Link("/users/%s", m.SenderID),
		},
	}
}

// Concrete page types for the API documentation.
type (
	UserPage    = PagedModel[UserModel]
	ThreadPage  = PagedModel[ThreadModel]
	MessagePage = PagedModel[MessageModel]
)
