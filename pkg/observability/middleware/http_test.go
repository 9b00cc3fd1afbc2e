package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	noopmetric "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"
)

func TestGin_PropagatesSpanContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(Gin(nooptrace.NewTracerProvider().Tracer("test"), noopmetric.NewMeterProvider().Meter("test"), "messaging"))

	var sawSpan bool
	engine.GET("/users/:id", func(c *gin.Context) {
		sawSpan = trace.SpanFromContext(c.Request.Context()) != nil
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/42", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, sawSpan)
}
