package platformerrors

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// GenericErrorMessage is returned for every 5xx so internals never leak to clients.
const GenericErrorMessage = "Unexpected error"

// HTTPErrorResponse is the error envelope for every non-2xx response.
type HTTPErrorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
}

// NewHTTPErrorResponse builds the envelope for the given status.
func NewHTTPErrorResponse(status int, message string) HTTPErrorResponse {
	if status >= http.StatusInternalServerError {
		message = GenericErrorMessage
	}
	return HTTPErrorResponse{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   message,
	}
}

// WriteHTTPError writes a PlatformError as an HTTP response.
func WriteHTTPError(c *gin.Context, err *PlatformError, log zerolog.Logger) {
	if err == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, NewHTTPErrorResponse(http.StatusInternalServerError, ""))
		return
	}

	LogError(log, err)

	status := ErrorTypeToHTTPStatus(err.Type)
	c.AbortWithStatusJSON(status, NewHTTPErrorResponse(status, err.Message))
}

// WriteError writes a generic error as an HTTP response.
// Errors that are not PlatformErrors are treated as internal.
func WriteError(c *gin.Context, err error, log zerolog.Logger) {
	if err == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, NewHTTPErrorResponse(http.StatusInternalServerError, ""))
		return
	}

	if platformErr := GetPlatformError(err); platformErr != nil {
		WriteHTTPError(c, platformErr, log)
		return
	}

	log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("unhandled error")
	c.AbortWithStatusJSON(http.StatusInternalServerError, NewHTTPErrorResponse(http.StatusInternalServerError, ""))
}

// WriteValidationError writes a 400 Bad Request response.
func WriteValidationError(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, NewHTTPErrorResponse(http.StatusBadRequest, message))
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusNotFound, NewHTTPErrorResponse(http.StatusNotFound, message))
}

// WriteUnauthorized writes a 401 Unauthorized response.
func WriteUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, NewHTTPErrorResponse(http.StatusUnauthorized, message))
}
