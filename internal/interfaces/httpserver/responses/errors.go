package responses

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"jan-server/services/messaging-api/internal/utils/platformerrors"
)

// ErrorResponse documents the error envelope.
type ErrorResponse = platformerrors.HTTPErrorResponse

// HandleError writes err using its platform error type. Untyped errors become a 500.
func HandleError(c *gin.Context, err error) {
	logger := log.With().Str("path", c.Request.URL.Path).Logger()
	platformerrors.WriteError(c, err, logger)
}

// HandleValidationError writes a 400 with message.
func HandleValidationError(c *gin.Context, message string) {
	platformerrors.WriteValidationError(c, message)
}
