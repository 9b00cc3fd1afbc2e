package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, "messaging-api", cfg.ServiceName)
	assert.Equal(t, StorageDriverPostgres, cfg.StorageDriver)
	assert.Equal(t, 20, cfg.DefaultPageSize)
	assert.Equal(t, 100, cfg.MaxPageSize)
	assert.Equal(t, 4000, cfg.MaxMessageLength)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, ":8190", cfg.Addr())
	assert.False(t, cfg.TrustForwardedHeaders)
}

func TestLoadFrom_Validation(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]string
	}{
		{"unknown storage driver", map[string]string{"STORAGE_DRIVER": "mongo"}},
		{"default page size above max", map[string]string{"DEFAULT_PAGE_SIZE": "200", "MAX_PAGE_SIZE": "100"}},
		{"auth without issuer", map[string]string{"AUTH_ENABLED": "true", "AUTH_JWKS_URL": "http://jwks"}},
		{"auth without jwks", map[string]string{"AUTH_ENABLED": "true", "AUTH_ISSUER": "http://issuer"}},
		{"non-positive message length", map[string]string{"MAX_MESSAGE_LENGTH": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(tt.values)
			assert.Error(t, err)
		})
	}
}

func TestLoad_YAMLDefaultsAreOverriddenByEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "messaging.yaml")
	content := "storage_driver: memory\nhttp_port: 9000\nmax_page_size: 50\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("HTTP_PORT", "9100")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorageDriverMemory, cfg.StorageDriver)
	assert.Equal(t, 50, cfg.MaxPageSize)
	assert.Equal(t, 9100, cfg.HTTPPort)
}
