package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jan-server/services/messaging-api/internal/interfaces/httpserver/handlers"
	"jan-server/services/messaging-api/internal/interfaces/httpserver/requests"
	"jan-server/services/messaging-api/internal/interfaces/httpserver/responses"
)

// RegisterUserRoutes registers the user routes.
func RegisterUserRoutes(router gin.IRoutes, p *handlers.Provider) {
	router.POST("/users", createUser(p))
	router.GET("/users", listUsers(p))
	router.GET("/users/:id", getUser(p))
	router.GET("/users/:id/threads", listUserThreads(p))
}

// createUser godoc
// @Summary      Register a user
// @Description  Creates a user with a unique username.
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        request body requests.CreateUserRequest true "User"
// @Success      201 {object} responses.UserModel
// @Failure      400 {object} responses.ErrorResponse
// @Failure      409 {object} responses.ErrorResponse
// @Failure      500 {object} responses.ErrorResponse
// @Router       /users [post]
func createUser(p *handlers.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req requests.CreateUserRequest
		if !bindJSON(c, &req) {
			return
		}

		model, err := p.User.CreateUser(c.Request.Context(), p.Links(c), req)
		if err != nil {
			responses.HandleError(c, err)
			return
		}

		c.Header("Location", model.Links.Self.Href)
		c.JSON(http.StatusCreated, model)
	}
}

// getUser godoc
// @Summary      Get a user
// @Tags         Users
// @Produce      json
// @Param        id path string true "User ID" format(uuid)
// @Success      200 {object} responses.UserModel
// @Failure      400 {object} responses.ErrorResponse
// @Failure      404 {object} responses.ErrorResponse
// @Failure      500 {object} responses.ErrorResponse
// @Router       /users/{id} [get]
func getUser(p *handlers.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathUUID(c, "id")
		if !ok {
			return
		}

		model, err := p.User.GetUser(c.Request.Context(), p.Links(c), id)
		if err != nil {
			responses.HandleError(c, err)
			return
		}

		c.JSON(http.StatusOK, model)
	}
}

// listUsers godoc
// @Summary      List users
// @Description  Lists users in registration order.
// @Tags         Users
// @Produce      json
// @Param        page query int false "Zero-based page number" minimum(0) maximum(1000000)
// @Param        size query int false "Page size" minimum(1)
// @Success      200 {object} responses.UserPage
// @Failure      400 {object} responses.ErrorResponse
// @Failure      500 {object} responses.ErrorResponse
// @Router       /users [get]
func listUsers(p *handlers.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, ok := bindPage(c)
		if !ok {
			return
		}

		model, err := p.User.ListUsers(c.Request.Context(), p.Links(c), page)
		if err != nil {
			responses.HandleError(c, err)
			return
		}

		c.JSON(http.StatusOK, model)
	}
}

// listUserThreads godoc
// @Summary      List a user's threads
// @Description  Lists the threads the user participates in, most recent activity first.
// @Tags         Users
// @Produce      json
// @Param        id path string true "User ID" format(uuid)
// @Param        page query int false "Zero-based page number" minimum(0) maximum(1000000)
// @Param        size query int false "Page size" minimum(1)
// @Success      200 {object} responses.ThreadPage
// @Failure      400 {object} responses.ErrorResponse
// @Failure      404 {object} responses.ErrorResponse
// @Failure      500 {object} responses.ErrorResponse
// @Router       /users/{id}/threads [get]
func listUserThreads(p *handlers.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathUUID(c, "id")
		if !ok {
			return
		}
		page, ok := bindPage(c)
		if !ok {
			return
		}

		model, err := p.Thread.ListThreadsForUser(c.Request.Context(), p.Links(c), id, page)
		if err != nil {
			responses.HandleError(c, err)
			return
		}

		c.JSON(http.StatusOK, model)
	}
}
