package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "ENV", "PORT", "DATABASE_URL", "PUBLIC_BASE_URL",
		"STORAGE_DRIVER", "S3_BUCKET", "S3_REGION",
		"LOCAL_STORAGE_PATH", "STATIC_URL_BASE", "CODE_IMAGE_SIZE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "contactcard.db", cfg.DatabaseURL)
	assert.Equal(t, "filesystem", cfg.StorageDriver)
	assert.Equal(t, "./uploads", cfg.LocalStoragePath)
	assert.Equal(t, "/static", cfg.StaticURLBase)
	assert.Equal(t, 500, cfg.CodeImageSize)
}

func TestLoadS3RequiresBucketAndRegion(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_DRIVER", "s3")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("S3_BUCKET", "cards")
	_, err = Load()
	require.Error(t, err)

	t.Setenv("S3_REGION", "eu-west-1")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "cards", cfg.S3Bucket)
	assert.Equal(t, "eu-west-1", cfg.S3Region)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_DRIVER", "ftp")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsBadPublicBaseURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("PUBLIC_BASE_URL", "cards.test/no-scheme")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadPublicBaseURLTrailingSlashTrimmed(t *testing.T) {
	clearEnv(t)
	t.Setenv("PUBLIC_BASE_URL", "https://cards.example.com/")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://cards.example.com", cfg.PublicBaseURL)
}

func TestLoadRejectsBadCodeImageSize(t *testing.T) {
	clearEnv(t)

	t.Setenv("CODE_IMAGE_SIZE", "abc")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("CODE_IMAGE_SIZE", "0")
	_, err = Load()
	require.Error(t, err)
}
