package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jan-server/services/messaging-api/internal/interfaces/httpserver/handlers"
	"jan-server/services/messaging-api/internal/interfaces/httpserver/requests"
	"jan-server/services/messaging-api/internal/interfaces/httpserver/responses"
)

// RegisterThreadRoutes registers the thread and message routes.
// Message routes share the :id parameter name with thread routes.
func RegisterThreadRoutes(router gin.IRoutes, p *handlers.Provider) {
	router.PUT("/threads/direct", getOrCreateDirectThread(p))
	router.POST("/threads/group", createGroupThread(p))
	router.GET("/threads/:id", getThread(p))
	router.GET("/threads/:id/messages", listMessages(p))
	router.POST("/threads/:id/messages", postMessage(p))
	router.GET("/threads/:id/messages/:messageId", getMessage(p))
}

// getOrCreateDirectThread godoc
// @Summary      Get or create a direct thread
// @Description  Returns the direct thread between two users, creating it on first use. Argument order does not matter.
// @Tags         Threads
// @Accept       json
// @Produce      json
// @Param        request body requests.DirectThreadRequest true "Participants"
// @Success      200 {object} responses.ThreadModel
// @Failure      400 {object} responses.ErrorResponse
// @Failure      404 {object} responses.ErrorResponse
// @Failure      409 {object} responses.ErrorResponse
// @Failure      500 {object} responses.ErrorResponse
// @Router       /threads/direct [put]
func getOrCreateDirectThread(p *handlers.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req requests.DirectThreadRequest
		if !bindJSON(c, &req) {
			return
		}

		model, err := p.Thread.GetOrCreateDirectThread(c.Request.Context(), p.Links(c), req)
		if err != nil {
			responses.HandleError(c, err)
			return
		}

		c.JSON(http.StatusOK, model)
	}
}

// createGroupThread godoc
// @Summary      Create a group thread
// @Description  Creates a group thread with at least three distinct participants. When initialMessage is set it is posted by senderId.
// @Tags         Threads
// @Accept       json
// @Produce      json
// @Param        request body requests.GroupThreadRequest true "Group"
// @Success      201 {object} responses.ThreadModel
// @Failure      400 {object} responses.ErrorResponse
// @Failure      404 {object} responses.ErrorResponse
// @Failure      500 {object} responses.ErrorResponse
// @Router       /threads/group [post]
func createGroupThread(p *handlers.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req requests.GroupThreadRequest
		if !bindJSON(c, &req) {
			return
		}

		model, err := p.Thread.CreateGroupThread(c.Request.Context(), p.Links(c), req)
		if err != nil {
			responses.HandleError(c, err)
			return
		}

		c.Header("Location", model.Links.Self.Href)
		c.JSON(http.StatusCreated, model)
	}
}

// getThread godoc
// @Summary      Get a thread
// @Tags         Threads
// @Produce      json
// @Param        id path string true "Thread ID" format(uuid)
// @Success      200 {object} responses.ThreadModel
// @Failure      400 {object} responses.ErrorResponse
// @Failure      404 {object} responses.ErrorResponse
// @Failure      500 {object} responses.ErrorResponse
// @Router       /threads/{id} [get]
func getThread(p *handlers.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathUUID(c, "id")
		if !ok {
			return
		}

		model, err := p.Thread.GetThread(c.Request.Context(), p.Links(c), id)
		if err != nil {
			responses.HandleError(c, err)
			return
		}

		c.JSON(http.StatusOK, model)
	}
}

// listMessages godoc
// @Summary      List messages
// @Description  Lists a thread's messages in posting order.
// @Tags         Messages
// @Produce      json
// @Param        id path string true "Thread ID" format(uuid)
// @Param        page query int false "Zero-based page number" minimum(0) maximum(1000000)
// @Param        size query int false "Page size" minimum(1)
// @Success      200 {object} responses.MessagePage
// @Failure      400 {object} responses.ErrorResponse
// @Failure      404 {object} responses.ErrorResponse
// @Failure      500 {object} responses.ErrorResponse
// @Router       /threads/{id}/messages [get]
func listMessages(p *handlers.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathUUID(c, "id")
		if !ok {
			return
		}
		page, ok := bindPage(c)
		if !ok {
			return
		}

		model, err := p.Thread.ListMessages(c.Request.Context(), p.Links(c), id, page)
		if err != nil {
			responses.HandleError(c, err)
			return
		}

		c.JSON(http.StatusOK, model)
	}
}

// postMessage godoc
// @Summary      Post a message
// @Description  Appends a message from a participant to the thread.
// @Tags         Messages
// @Accept       json
// @Produce      json
// @Param        id path string true "Thread ID" format(uuid)
// @Param        request body requests.PostMessageRequest true "Message"
// @Success      201 {object} responses.MessageModel
// @Failure      400 {object} responses.ErrorResponse
// @Failure      404 {object} responses.ErrorResponse
// @Failure      500 {object} responses.ErrorResponse
// @Router       /threads/{id}/messages [post]
func postMessage(p *handlers.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathUUID(c, "id")
		if !ok {
			return
		}
		var req requests.PostMessageRequest
		if !bindJSON(c, &req) {
			return
		}

		model, err := p.Thread.PostMessage(c.Request.Context(), p.Links(c), id, req)
		if err != nil {
			responses.HandleError(c, err)
			return
		}

		c.Header("Location", model.Links.Self.Href)
		c.JSON(http.StatusCreated, model)
	}
}

// getMessage godoc
// @Summary      Get a message
// @Description  Returns the message only when it belongs to the thread.
// @Tags         Messages
// @Produce      json
// @Param        id path string true "Thread ID" format(uuid)
// @Param        messageId path string true "Message ID" format(uuid)
// @Success      200 {object} responses.MessageModel
// @Failure      400 {object} responses.ErrorResponse
// @Failure      404 {object} responses.ErrorResponse
// @Failure      500 {object} responses.ErrorResponse
// @Router       /threads/{id}/messages/{messageId} [get]
func getMessage(p *handlers.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		threadID, ok := pathUUID(c, "id")
		if !ok {
			return
		}
		messageID, ok := pathUUID(c, "messageId")
		if !ok {
			return
		}

		model, err := p.Thread.GetMessage(c.Request.Context(), p.Links(c), threadID, messageID)
		if err != nil {
			responses.HandleError(c, err)
			return
		}

		c.JSON(http.StatusOK, model)
	}
}
