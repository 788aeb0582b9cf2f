// Package bootstrap provides dependency initialization for the blockcut CLI.
package bootstrap

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/maauso/blockcut/internal/audio"
	"github.com/maauso/blockcut/internal/block"
	"github.com/maauso/blockcut/internal/config"
	"github.com/maauso/blockcut/internal/sequencer"
	"github.com/maauso/blockcut/internal/slicer"
	"github.com/maauso/blockcut/internal/storage"
)

// Dependencies holds all initialized dependencies for the CLI commands.
type Dependencies struct {
	Slicer    *slicer.Service
	Sequencer *sequencer.Service
	Registry  block.Registry
	Store     storage.Store
	Processor audio.Processor
	Rand      *rand.Rand
}

// NewDependencies creates and initializes all dependencies for a command
// invocation.
func NewDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	store, err := initStore(cfg, logger)
	if err != nil {
		return nil, err
	}

	registry := block.NewExcelRegistry(cfg.RegistryPath())
	processor := audio.NewFFmpegProcessor(cfg.FFmpegPath, cfg.FFprobePath)
	rng := newRand(cfg.Seed)

	return &Dependencies{
		Slicer:    slicer.NewService(processor, registry, store, logger),
		Sequencer: sequencer.NewService(processor, registry, store, rng, logger),
		Registry:  registry,
		Store:     store,
		Processor: processor,
		Rand:      rng,
	}, nil
}

// newRand builds the shared random source. Seed 0 derives one from the
// clock; any other value makes runs reproducible.
func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed))
}

// initStore creates the appropriate store backend based on configuration.
func initStore(cfg *config.Config, logger *slog.Logger) (storage.Store, error) {
	if cfg.S3Enabled() {
		s3Cfg := storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		}
		s3Store, err := storage.NewS3Store(cfg.BlocksDir, s3Cfg)
		if err != nil {
			return nil, fmt.Errorf("create S3 store: %w", err)
		}
		logger.Info("S3 publishing configured",
			slog.String("bucket", cfg.S3Bucket),
			slog.String("region", cfg.S3Region),
		)
		return s3Store, nil
	}

	localStore, err := storage.NewLocalStore(cfg.BlocksDir)
	if err != nil {
		return nil, fmt.Errorf("create local store: %w", err)
	}
	logger.Info("local store configured",
		slog.String("blocks_dir", cfg.BlocksDir),
	)
	return localStore, nil
}
