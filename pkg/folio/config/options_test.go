package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folioworks/folio/pkg/folio/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "memory", cfg.DatabaseType)
	assert.Equal(t, "folio", cfg.DBSchema)
	assert.Equal(t, "memory", cfg.DefaultMediaStore)
	require.Len(t, cfg.MediaStores, 1)
	assert.Equal(t, "memory", cfg.MediaStores[0].Name)
	assert.True(t, cfg.EnableEventLogging)
}

func TestLoadWithOptions(t *testing.T) {
	cfg, err := config.Load(
		config.WithPort("9090"),
		config.WithEnvironment("production"),
		config.WithJWTSecret("top-secret"),
		config.WithDatabaseSchema("portfolio"),
		config.WithEventLogging(false),
	)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "top-secret", cfg.JWTSecret)
	assert.Equal(t, "portfolio", cfg.DBSchema)
	assert.False(t, cfg.EnableEventLogging)
}

func TestOptionValidation(t *testing.T) {
	tests := []struct {
		name string
		opt  config.Option
	}{
		{"empty port", config.WithPort("")},
		{"empty environment", config.WithEnvironment("")},
		{"invalid database type", config.WithDatabase("sqlite", "")},
		{"postgres without url", config.WithDatabase("postgres", "")},
		{"empty default store", config.WithDefaultMediaStore("")},
		{"fs store without base dir", config.WithFilesystemStore("fs", "", "")},
		{"s3 store without bucket", config.WithS3Store("s3", "", "us-east-1")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(tt.opt)
			assert.Error(t, err)
		})
	}
}

func TestValidateDefaultStoreMustExist(t *testing.T) {
	_, err := config.Load(config.WithDefaultMediaStore("s3"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default media store 's3' not found")
}

func TestFilesystemStoreOption(t *testing.T) {
	cfg, err := config.Load(
		config.WithFilesystemStore("", t.TempDir(), "http://localhost:8080/files"),
		config.WithDefaultMediaStore("fs"),
	)
	require.NoError(t, err)

	require.Len(t, cfg.MediaStores, 2)
	assert.Equal(t, "fs", cfg.MediaStores[1].Name)
	assert.Equal(t, "fs", cfg.MediaStores[1].Type)
	assert.Equal(t, "http://localhost:8080/files", cfg.MediaStores[1].Config["url_prefix"])
}

func TestS3OptionsMergeByName(t *testing.T) {
	cfg, err := config.Load(
		config.WithS3Store("s3", "media-bucket", ""),
		config.WithS3Credentials("s3", "AKIA", "secret"),
		config.WithS3Endpoint("s3", "http://localhost:9000", true),
		config.WithDefaultMediaStore("s3"),
	)
	require.NoError(t, err)

	var store *config.MediaStoreConfig
	for i := range cfg.MediaStores {
		if cfg.MediaStores[i].Name == "s3" {
			store = &cfg.MediaStores[i]
		}
	}
	require.NotNil(t, store)
	assert.Equal(t, "media-bucket", store.Config["bucket"])
	assert.Equal(t, "us-east-1", store.Config["region"])
	assert.Equal(t, "AKIA", store.Config["access_key_id"])
	assert.Equal(t, "http://localhost:9000", store.Config["endpoint"])
	assert.Equal(t, true, store.Config["use_path_style"])
}

func TestWithMemoryStoreUpsert(t *testing.T) {
	cfg, err := config.Load(config.WithMemoryStore(""))
	require.NoError(t, err)

	// Re-adding the default memory store does not duplicate it.
	assert.Len(t, cfg.MediaStores, 1)
}

func TestBuildServiceMemory(t *testing.T) {
	cfg, err := config.Load(config.WithEventLogging(false))
	require.NoError(t, err)

	svc, err := cfg.BuildService()
	require.NoError(t, err)
	assert.NotNil(t, svc)
}
