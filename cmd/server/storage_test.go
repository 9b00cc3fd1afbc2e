package main

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jan-server/services/messaging-api/internal/config"
	"jan-server/services/messaging-api/internal/infrastructure/cache"
)

func TestOpenStorage_Memory(t *testing.T) {
	cfg, err := config.LoadFrom(map[string]string{"STORAGE_DRIVER": "memory"})
	require.NoError(t, err)

	storage, err := OpenStorage(t.Context(), cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, storage.Close()) })

	assert.IsType(t, &cache.CachedUserRepository{}, storage.Users)
	assert.NoError(t, storage.Ready(t.Context()))
	assert.NotNil(t, storage.Tx)
}

func TestOpenStorage_UnknownDriver(t *testing.T) {
	cfg := &config.Config{StorageDriver: "mongo", UserCacheSize: 1}

	_, err := OpenStorage(t.Context(), cfg, zerolog.Nop())
	assert.Error(t, err)
}
