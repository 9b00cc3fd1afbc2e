package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"jan-server/services/messaging-api/internal/domain/thread"
)

func TestRecorder(t *testing.T) {
	r := Recorder{}

	before := testutil.ToFloat64(ThreadsCreated.WithLabelValues(string(thread.TypeGroup)))
	r.ThreadCreated(thread.TypeGroup)
	assert.Equal(t, before+1, testutil.ToFloat64(ThreadsCreated.WithLabelValues(string(thread.TypeGroup))))

	before = testutil.ToFloat64(DirectThreadConflicts)
	r.DirectThreadConflict()
	assert.Equal(t, before+1, testutil.ToFloat64(DirectThreadConflicts))

	before = testutil.ToFloat64(MessagesPosted)
	r.MessagePosted()
	assert.Equal(t, before+1, testutil.ToFloat64(MessagesPosted))
}

func TestRecordHTTPRequest(t *testing.T) {
	counter := HTTPRequests.WithLabelValues(http.MethodGet, "unmatched", "404")
	before := testutil.ToFloat64(counter)

	RecordHTTPRequest(http.MethodGet, "", http.StatusNotFound, 5*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
