package requests

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jan-server/services/messaging-api/internal/domain/query"
)

func bindJSON[T any](t *testing.T, body string) (T, error) {
	t.Helper()
	RegisterValidators()
	gin.SetMode(gin.TestMode)

	var target T
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	err := c.ShouldBindJSON(&target)
	return target, err
}

func TestCreateUserRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"missing", `{}`, "username is required"},
		{"blank", `{"username":"   "}`, "username cannot be blank"},
		{"too long", `{"username":"` + strings.Repeat("a", 101) + `"}`, "username cannot exceed 100 characters"},
		{"wrong type", `{"username":42}`, "username has an invalid value"},
		{"broken json", `{"username":`, MalformedBodyMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := bindJSON[CreateUserRequest](t, tt.body)
			require.Error(t, err)
			assert.Equal(t, tt.message, Message(err))
		})
	}

	req, err := bindJSON[CreateUserRequest](t, `{"username":"alice"}`)
	require.NoError(t, err)
	assert.Equal(t, "alice", req.Username)
}

func TestDirectThreadRequest_Validation(t *testing.T) {
	_, err := bindJSON[DirectThreadRequest](t, `{"user1Id":"2b0cbb3e-7f3f-4c55-9a35-6a8e3a5c5f10"}`)
	require.Error(t, err)
	assert.Equal(t, "user2Id is required", Message(err))

	_, err = bindJSON[DirectThreadRequest](t, `{"user1Id":"not-a-uuid","user2Id":"2b0cbb3e-7f3f-4c55-9a35-6a8e3a5c5f10"}`)
	require.Error(t, err)
	assert.Contains(t, Message(err), "Malformed request body")
}

func TestPageQuery(t *testing.T) {
	RegisterValidators()
	gin.SetMode(gin.TestMode)

	bind := func(rawQuery string) (PageQuery, error) {
		var q PageQuery
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/users?"+rawQuery, nil)
		err := c.ShouldBindQuery(&q)
		return q, err
	}

	q, err := bind("")
	require.NoError(t, err)
	assert.Equal(t, query.Pagination{Page: 0, Size: 20}, q.Pagination(20, 100))

	q, err = bind("page=2&size=500")
	require.NoError(t, err)
	assert.Equal(t, query.Pagination{Page: 2, Size: 100}, q.Pagination(20, 100))

	_, err = bind("page=-1")
	require.Error(t, err)
	assert.Equal(t, "page must be at least 0", Message(err))

	_, err = bind("page=1000001&size=100")
	require.Error(t, err)
	assert.Equal(t, "page must be at most 1000000", Message(err))

	q, err = bind("page=1000000&size=100")
	require.NoError(t, err)
	assert.Equal(t, query.Pagination{Page: query.MaxPage, Size: 100}, q.Pagination(20, 100))

	_, err = bind("size=0")
	require.Error(t, err)
	assert.Equal(t, "size must be at least 1", Message(err))

	_, err = bind("page=abc")
	require.Error(t, err)
	assert.Equal(t, "page and size must be integers", Message(err))
}
