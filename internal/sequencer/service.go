// Package sequencer orchestrates the sequencing workflow: load the block
// pools from the registry, measure each block file, build the two-channel
// timeline, export the report, and optionally render the mix.
package sequencer

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	"github.com/maauso/blockcut/internal/audio"
	"github.com/maauso/blockcut/internal/block"
	"github.com/maauso/blockcut/internal/climax"
	"github.com/maauso/blockcut/internal/sequence"
	"github.com/maauso/blockcut/internal/storage"
)

// Request contains the parameters for one sequencing run.
type Request struct {
	// ChannelOffset is the voice channel's start delay in seconds.
	ChannelOffset float64 `validate:"gte=0"`
	// TimelinePath is where the CSV timeline report is written.
	TimelinePath string `validate:"required"`
	// RenderPath, when set, is where the mixed audio is rendered.
	RenderPath string
	// Publish uploads the rendered mix to the configured remote store.
	// Requires RenderPath.
	Publish bool
}

// Result is the outcome of a sequencing run.
type Result struct {
	// Timeline is the built two-channel placement.
	Timeline sequence.Timeline
	// TimelinePath is the written CSV report.
	TimelinePath string
	// RenderPath is the rendered mix, if requested.
	RenderPath string
	// PublishedURL is the remote URL of the mix, if published.
	PublishedURL string
}

// Service runs the sequencing workflow. Unlike slicing, any failure here
// is fatal to the invocation: a timeline built from a partial pool would
// silently drop blocks.
type Service struct {
	processor audio.Processor
	registry  block.Registry
	store     storage.Store
	rng       *rand.Rand
	logger    *slog.Logger
	validate  *validator.Validate
}

// NewService creates a sequencing service. The rng drives the pool
// shuffles; tests inject a seeded one for reproducible timelines.
func NewService(processor audio.Processor, registry block.Registry, store storage.Store, rng *rand.Rand, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		processor: processor,
		registry:  registry,
		store:     store,
		rng:       rng,
		logger:    logger,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Run executes one sequencing run.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}
	if req.Publish && req.RenderPath == "" {
		return nil, fmt.Errorf("invalid request: publish requires a render path")
	}

	music, err := s.loadPool(ctx, climax.TypeMusic)
	if err != nil {
		return nil, err
	}
	voice, err := s.loadPool(ctx, climax.TypeVoice)
	if err != nil {
		return nil, err
	}

	s.logger.Info("sequencing run started",
		slog.Int("music_blocks", len(music)),
		slog.Int("voice_blocks", len(voice)),
		slog.Float64("channel_offset_sec", req.ChannelOffset),
	)

	timeline, err := sequence.Build(s.rng, music, voice, req.ChannelOffset)
	if err != nil {
		return nil, err
	}

	if err := sequence.WriteCSVFile(req.TimelinePath, timeline); err != nil {
		return nil, err
	}

	result := &Result{Timeline: timeline, TimelinePath: req.TimelinePath}
	if req.RenderPath != "" {
		if err := s.render(ctx, timeline, req.RenderPath); err != nil {
			return nil, err
		}
		result.RenderPath = req.RenderPath

		if req.Publish {
			url, err := s.publish(ctx, req.RenderPath)
			if err != nil {
				return nil, err
			}
			result.PublishedURL = url
		}
	}

	s.logger.Info("sequencing run finished",
		slog.Int("placements", len(timeline.Music)+len(timeline.Voice)),
		slog.Float64("timeline_duration_sec", timeline.Duration()),
		slog.String("report", req.TimelinePath),
	)
	return result, nil
}

// loadPool reads a type's blocks from the registry and measures each
// block file. A registered block without a playable file is fatal; the
// verify command exists to find those before sequencing.
func (s *Service) loadPool(ctx context.Context, typ climax.Type) ([]block.Block, error) {
	blocks, err := s.registry.ReadAll(ctx, typ)
	if err != nil {
		return nil, fmt.Errorf("read %s registry: %w", typ, err)
	}

	for i := range blocks {
		path := s.store.BlockPath(blocks[i].Filename())
		duration, err := s.processor.Duration(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("measure %s: %w", blocks[i].ID(), err)
		}
		blocks[i].Duration = duration
	}

	return blocks, nil
}

// render mixes every placement onto one output file.
func (s *Service) render(ctx context.Context, timeline sequence.Timeline, dst string) error {
	placements := timeline.Flatten()
	inputs := make([]audio.MixInput, 0, len(placements))
	for _, p := range placements {
		inputs = append(inputs, audio.MixInput{
			Path:  s.store.BlockPath(p.Block.Filename()),
			Start: p.Start,
		})
	}

	if err := s.processor.Mix(ctx, inputs, dst); err != nil {
		return fmt.Errorf("render mix: %w", err)
	}

	s.logger.Info("mix rendered",
		slog.String("path", dst),
		slog.Int("inputs", len(inputs)),
	)
	return nil
}

// publish uploads the rendered mix to the remote store.
func (s *Service) publish(ctx context.Context, renderPath string) (string, error) {
	f, err := os.Open(renderPath) // #nosec G304 - path is provided by the operator
	if err != nil {
		return "", fmt.Errorf("open mix for publishing: %w", err)
	}
	defer func() { _ = f.Close() }()

	url, err := s.store.Publish(ctx, filepath.Base(renderPath), f)
	if err != nil {
		return "", fmt.Errorf("publish mix: %w", err)
	}

	s.logger.Info("mix published", slog.String("url", url))
	return url, nil
}
