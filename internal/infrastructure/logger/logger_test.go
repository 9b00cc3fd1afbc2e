package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jan-server/services/messaging-api/internal/config"
)

func TestNewWithWriter_JSONCarriesServiceFields(t *testing.T) {
	var buf bytes.Buffer
	cfg := &config.Config{ServiceName: "messaging-api", Environment: "test", LogLevel: "debug", LogFormat: "json"}

	log := NewWithWriter(cfg, &buf)
	log.Info().Str("thread_id", "t-1").Msg("thread created")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "messaging-api", entry["service"])
	assert.Equal(t, "test", entry["environment"])
	assert.Equal(t, "t-1", entry["thread_id"])
	assert.Equal(t, "thread created", entry["message"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("loud"))
	assert.Equal(t, zerolog.WarnLevel, parseLevel("WARN"))
}
