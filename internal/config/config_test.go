package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "blocks", cfg.BlocksDir)
	assert.Equal(t, 30.0, cfg.SliceDurationSec)
	assert.Equal(t, 15.0, cfg.FadeDurationSec)
	assert.Equal(t, 15.0, cfg.ChannelOffsetSec)
	assert.Equal(t, 0.5, cfg.MusicRatio)
	assert.Equal(t, 1000, cfg.MaxPlaceTries)
	assert.Equal(t, uint64(0), cfg.Seed)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.S3Enabled())
}

func TestLoad_CustomValues(t *testing.T) {
	t.Setenv("BLOCKCUT_BLOCKS_DIR", "/data/blocks")
	t.Setenv("BLOCKCUT_SLICE_DURATION_SEC", "45")
	t.Setenv("BLOCKCUT_FADE_DURATION_SEC", "5")
	t.Setenv("BLOCKCUT_SEED", "42")
	t.Setenv("BLOCKCUT_S3_BUCKET", "my-bucket")
	t.Setenv("BLOCKCUT_S3_REGION", "us-east-1")
	t.Setenv("BLOCKCUT_LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/data/blocks", cfg.BlocksDir)
	assert.Equal(t, 45.0, cfg.SliceDurationSec)
	assert.Equal(t, 5.0, cfg.FadeDurationSec)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.True(t, cfg.S3Enabled())
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Run("zero slice duration", func(t *testing.T) {
		t.Setenv("BLOCKCUT_SLICE_DURATION_SEC", "0")
		_, err := Load()
		assert.ErrorIs(t, err, ErrInvalidSliceDuration)
	})

	t.Run("negative fade", func(t *testing.T) {
		t.Setenv("BLOCKCUT_FADE_DURATION_SEC", "-1")
		_, err := Load()
		assert.ErrorIs(t, err, ErrInvalidFadeDuration)
	})

	t.Run("ratio above one", func(t *testing.T) {
		t.Setenv("BLOCKCUT_MUSIC_RATIO", "1.5")
		_, err := Load()
		assert.ErrorIs(t, err, ErrInvalidMusicRatio)
	})
}

func TestRegistryPath(t *testing.T) {
	t.Run("defaults into blocks dir", func(t *testing.T) {
		cfg := &Config{BlocksDir: "blocks"}
		assert.Equal(t, filepath.Join("blocks", "blocks_list.xlsx"), cfg.RegistryPath())
	})

	t.Run("explicit file wins", func(t *testing.T) {
		cfg := &Config{BlocksDir: "blocks", RegistryFile: "/data/registry.xlsx"}
		assert.Equal(t, "/data/registry.xlsx", cfg.RegistryPath())
	})
}

func TestString_MasksSecrets(t *testing.T) {
	cfg := &Config{
		BlocksDir:          "blocks",
		AWSAccessKeyID:     "AKIA-SECRET",
		AWSSecretAccessKey: "very-secret",
	}

	s := cfg.String()
	assert.NotContains(t, s, "AKIA-SECRET")
	assert.NotContains(t, s, "very-secret")
}

func TestNewLogger(t *testing.T) {
	cfg := &Config{LogFormat: "json", LogLevel: "debug"}
	logger := cfg.NewLogger()
	require.NotNil(t, logger)
}
