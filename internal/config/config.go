// Package config provides configuration loading from environment variables.
package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/sethvargo/go-envconfig"
)

// Static errors for configuration validation.
var (
	// ErrInvalidSliceDuration is returned when the slice duration is not positive.
	ErrInvalidSliceDuration = errors.New("config: slice duration must be positive")
	// ErrInvalidFadeDuration is returned when the fade duration is negative.
	ErrInvalidFadeDuration = errors.New("config: fade duration must not be negative")
	// ErrInvalidMusicRatio is returned when the music ratio is outside [0, 1].
	ErrInvalidMusicRatio = errors.New("config: music ratio must be within [0, 1]")
)

// Config holds all configuration for the tool. Flags override these values
// per invocation; the environment sets the durable defaults.
type Config struct {
	// Blocks directory and registry workbook
	BlocksDir    string `env:"BLOCKCUT_BLOCKS_DIR, default=blocks" json:"blocks_dir"`
	RegistryFile string `env:"BLOCKCUT_REGISTRY_FILE" json:"registry_file,omitempty"` // Default: <blocks_dir>/blocks_list.xlsx

	// Slicing settings
	SliceDurationSec float64 `env:"BLOCKCUT_SLICE_DURATION_SEC, default=30" json:"slice_duration_sec"`
	FadeDurationSec  float64 `env:"BLOCKCUT_FADE_DURATION_SEC, default=15" json:"fade_duration_sec"`

	// Sequencing and generation settings
	ChannelOffsetSec float64 `env:"BLOCKCUT_CHANNEL_OFFSET_SEC, default=15" json:"channel_offset_sec"`
	MusicRatio       float64 `env:"BLOCKCUT_MUSIC_RATIO, default=0.5" json:"music_ratio"`
	MaxPlaceTries    int     `env:"BLOCKCUT_MAX_PLACE_TRIES, default=1000" json:"max_place_tries"`
	Seed             uint64  `env:"BLOCKCUT_SEED" json:"seed,omitempty"` // 0 = time-derived

	// External tools
	FFmpegPath  string `env:"BLOCKCUT_FFMPEG_PATH" json:"ffmpeg_path,omitempty"`
	FFprobePath string `env:"BLOCKCUT_FFPROBE_PATH" json:"ffprobe_path,omitempty"`

	// Optional S3 settings for publishing blocks and mixes
	S3Bucket           string `env:"BLOCKCUT_S3_BUCKET" json:"s3_bucket,omitempty"`
	S3Region           string `env:"BLOCKCUT_S3_REGION" json:"s3_region,omitempty"`
	AWSAccessKeyID     string `env:"AWS_ACCESS_KEY_ID" json:"-"`     // Masked in JSON
	AWSSecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" json:"-"` // Masked in JSON

	// Logging settings
	LogFormat string `env:"BLOCKCUT_LOG_FORMAT, default=text" json:"log_format"` // "json" or "text"
	LogLevel  string `env:"BLOCKCUT_LOG_LEVEL, default=info" json:"log_level"`   // "debug", "info", "warn", "error"
}

// S3Enabled returns true if S3 configuration is provided.
func (c *Config) S3Enabled() bool {
	return c.S3Bucket != "" && c.S3Region != ""
}

// RegistryPath returns the workbook path, defaulting to blocks_list.xlsx
// inside the blocks directory.
func (c *Config) RegistryPath() string {
	if c.RegistryFile != "" {
		return c.RegistryFile
	}
	return filepath.Join(c.BlocksDir, "blocks_list.xlsx")
}

// Load reads configuration from environment variables using go-envconfig.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := envconfig.Process(context.Background(), cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configured values are usable.
func (c *Config) Validate() error {
	if c.SliceDurationSec <= 0 {
		return ErrInvalidSliceDuration
	}
	if c.FadeDurationSec < 0 {
		return ErrInvalidFadeDuration
	}
	if c.MusicRatio < 0 || c.MusicRatio > 1 {
		return ErrInvalidMusicRatio
	}
	return nil
}

// NewLogger creates a structured logger based on the configuration.
// When LogFormat is "json", it outputs JSON logs suitable for piping.
// Otherwise, it outputs human-readable text logs.
func (c *Config) NewLogger() *slog.Logger {
	level := parseLogLevel(c.LogLevel)

	var handler slog.Handler
	if strings.ToLower(c.LogFormat) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})
	}

	return slog.New(handler)
}

// String returns a string representation of the config with sensitive values masked.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{BlocksDir: %s, Registry: %s, SliceDurationSec: %.1f, FadeDurationSec: %.1f, ChannelOffsetSec: %.1f, MusicRatio: %.2f, S3Bucket: %s, S3Region: %s, LogFormat: %s, LogLevel: %s}",
		c.BlocksDir,
		c.RegistryPath(),
		c.SliceDurationSec,
		c.FadeDurationSec,
		c.ChannelOffsetSec,
		c.MusicRatio,
		c.S3Bucket,
		c.S3Region,
		c.LogFormat,
		c.LogLevel,
	)
}

// parseLogLevel converts a string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
