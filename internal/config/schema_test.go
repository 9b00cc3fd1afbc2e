package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema_KeyedByEnvName(t *testing.T) {
	schema := Schema()

	raw, err := json.Marshal(schema)
	require.NoError(t, err)

	var decoded struct {
		Properties map[string]struct {
			Type    string `json:"type"`
			Format  string `json:"format"`
			Default any    `json:"default"`
		} `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	require.Contains(t, decoded.Properties, "STORAGE_DRIVER")
	assert.Equal(t, "postgres", decoded.Properties["STORAGE_DRIVER"].Default)
	assert.Equal(t, "integer", decoded.Properties["HTTP_PORT"].Type)
	assert.Equal(t, "string", decoded.Properties["SHUTDOWN_TIMEOUT"].Type)
	assert.Equal(t, "duration", decoded.Properties["SHUTDOWN_TIMEOUT"].Format)
	assert.NotContains(t, decoded.Properties, "ServiceName")
}
