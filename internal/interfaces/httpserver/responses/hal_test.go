package responses

import (
	"crypto/tls"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jan-server/services/messaging-api/internal/domain/query"
	"jan-server/services/messaging-api/internal/domain/thread"
	"jan-server/services/messaging-api/internal/domain/user"
)

func testContext(t *testing.T, configure func(r *http.Request)) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "http://api.local:8190/users", nil)
	if configure != nil {
		configure(c.Request)
	}
	return c
}

func TestNewLinkBuilder(t *testing.T) {
	forwarded := func(proto, host string) func(r *http.Request) {
		return func(r *http.Request) {
			r.Header.Set("X-Forwarded-Proto", proto)
			r.Header.Set("X-Forwarded-Host", host)
		}
	}
	trusted := LinkSettings{TrustForwardedHeaders: true}

	tests := []struct {
		name      string
		settings  LinkSettings
		configure func(r *http.Request)
		want      string
	}{
		{"request host", LinkSettings{}, nil, "http://api.local:8190/users/1"},
		{"public base url", LinkSettings{PublicBaseURL: "https://chat.example.com/"}, nil, "https://chat.example.com/users/1"},
		{"public base url wins over forwarded", LinkSettings{PublicBaseURL: "https://chat.example.com", TrustForwardedHeaders: true},
			forwarded("http", "edge.example.com"), "https://chat.example.com/users/1"},
		{"forwarded headers ignored by default", LinkSettings{}, forwarded("https", "evil.example.com"), "http://api.local:8190/users/1"},
		{"trusted forwarded headers", trusted, forwarded("https, http", "edge.example.com"), "https://edge.example.com/users/1"},
		{"trusted but bogus values", trusted, forwarded("javascript", "evil.example.com/x"), "http://api.local:8190/users/1"},
		{"tls", LinkSettings{}, func(r *http.Request) { r.TLS = &tls.ConnectionState{} }, "https://api.local:8190/users/1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewLinkBuilder(testContext(t, tt.configure), tt.settings)
			assert.Equal(t, tt.want, b.Link("/users/%d", 1).Href)
		})
	}
}

func TestThreadModelJSON(t *testing.T) {
	b := NewStaticLinkBuilder("http://localhost")
	a, c := uuid.New(), uuid.New()
	th := &thread.Thread{
		ID:             uuid.New(),
		Type:           thread.TypeDirect,
		ParticipantIDs: []uuid.UUID{a, c},
		CreatedAt:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:      time.Date(2024, 1, 1, 0, 0, 1, 0, time.UTC),
	}

	raw, err := json.Marshal(NewThreadModel(b, th))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "DIRECT", decoded["type"])
	assert.Contains(t, decoded, "name")
	assert.Nil(t, decoded["name"])

	links := decoded["_links"].(map[string]any)
	assert.Equal(t, "http://localhost/threads/"+th.ID.String(), links["self"].(map[string]any)["href"])
	assert.Equal(t, "http://localhost/threads/"+th.ID.String()+"/messages", links["send-message"].(map[string]any)["href"])
	participants := links["participant"].([]any)
	require.Len(t, participants, 2)
	assert.Equal(t, "http://localhost/users/"+a.String(), participants[0].(map[string]any)["href"])
}

func TestNewPagedModel(t *testing.T) {
	b := NewStaticLinkBuilder("http://localhost")
	users := []*user.User{{ID: uuid.New(), Username: "a"}, {ID: uuid.New(), Username: "b"}}
	page := query.NewPage(users, 5, query.Pagination{Page: 1, Size: 2})

	model := NewPagedModel(b, "/users", UserListRel, page, func(u *user.User) UserModel { return NewUserModel(b, u) })

	require.Len(t, model.Embedded[UserListRel], 2)
	assert.Equal(t, PageMetadata{Size: 2, TotalElements: 5, TotalPages: 3, Number: 1}, model.Page)
	assert.Equal(t, "http://localhost/users?page=1&size=2", model.Links.Self.Href)
	assert.Equal(t, "http://localhost/users?page=0&size=2", model.Links.First.Href)
	assert.Equal(t, "http://localhost/users?page=2&size=2", model.Links.Last.Href)
	require.NotNil(t, model.Links.Prev)
	require.NotNil(t, model.Links.Next)
	assert.Equal(t, "http://localhost/users?page=2&size=2", model.Links.Next.Href)
}

func TestNewPagedModel_PastEndOmitsPrev(t *testing.T) {
	b := NewStaticLinkBuilder("http://localhost")
	page := query.NewPage[*user.User](nil, 3, query.Pagination{Page: 50, Size: 20})

	model := NewPagedModel(b, "/users", UserListRel, page, func(u *user.User) UserModel { return NewUserModel(b, u) })

	assert.Nil(t, model.Links.Prev)
	assert.Nil(t, model.Links.Next)
	assert.Equal(t, "http://localhost/users?page=0&size=20", model.Links.Last.Href)
	assert.Equal(t, 50, model.Page.Number)
}

func TestNewPagedModel_EmptyKeepsEmbeddedList(t *testing.T) {
	b := NewStaticLinkBuilder("http://localhost")
	page := query.NewPage[*thread.Message](nil, 0, query.Pagination{Page: 0, Size: 20})

	model := NewPagedModel(b, "/threads/x/messages", MessageListRel, page, func(m *thread.Message) MessageModel { return NewMessageModel(b, m) })

	raw, err := json.Marshal(model)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"_embedded":{"messageModelList":[]}`)
	assert.Nil(t, model.Links.Prev)
	assert.Nil(t, model.Links.Next)
	assert.Equal(t, 0, model.Page.TotalPages)
}
