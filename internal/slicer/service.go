// Package slicer orchestrates the slicing workflow: parse the label file,
// plan a window per climax point, cut each block with ffmpeg, register it,
// and reconcile the blocks directory against the registry.
package slicer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/maauso/blockcut/internal/audio"
	"github.com/maauso/blockcut/internal/block"
	"github.com/maauso/blockcut/internal/climax"
	"github.com/maauso/blockcut/internal/plan"
	"github.com/maauso/blockcut/internal/storage"
	"github.com/maauso/blockcut/internal/verify"
)

// ErrNoPoints is returned when the label file defines no climax points.
var ErrNoPoints = errors.New("label file defines no climax points")

// Request contains the parameters for one slicing run.
type Request struct {
	// AudioPath is the source audio file to slice.
	AudioPath string `validate:"required"`
	// LabelPath is the label file defining the climax points.
	LabelPath string `validate:"required"`
	// SliceDuration is the slice length in seconds.
	SliceDuration float64 `validate:"gt=0"`
	// FadeDuration is the fade in/out length in seconds.
	FadeDuration float64 `validate:"gte=0"`
	// Normalize applies loudness normalization to each block.
	Normalize bool
	// Publish uploads each exported block to the configured remote store.
	Publish bool
}

// Failure records a climax point whose block could not be exported, or
// whose exported block could not be published.
type Failure struct {
	// Point is the climax point that failed.
	Point climax.Point
	// Err is the cause.
	Err error
}

// Result is the outcome of a slicing run.
type Result struct {
	// SourceDuration is the probed length of the source audio in seconds.
	SourceDuration float64
	// Exported lists the blocks that were cut and registered.
	Exported []block.Block
	// Failures lists the points that were skipped, in label order.
	Failures []Failure
	// Report reconciles the blocks directory against the registry.
	Report verify.Report
}

// Service runs the slicing workflow. Per-point failures are collected and
// the batch continues; only label parsing, source probing, and registry
// bootstrap errors abort the run.
type Service struct {
	processor audio.Processor
	registry  block.Registry
	store     storage.Store
	logger    *slog.Logger
	validate  *validator.Validate
}

// NewService creates a slicing service.
func NewService(processor audio.Processor, registry block.Registry, store storage.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		processor: processor,
		registry:  registry,
		store:     store,
		logger:    logger,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Run executes one slicing run. Partial output from failed points stays on
// disk; the returned report reconciles it against the registry.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	points, err := climax.ParseFile(req.LabelPath)
	if err != nil {
		return nil, err
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoPoints, req.LabelPath)
	}

	sourceDuration, err := s.processor.Duration(ctx, req.AudioPath)
	if err != nil {
		return nil, fmt.Errorf("probe source duration: %w", err)
	}

	nextSeq := make(map[climax.Type]int)
	for _, typ := range []climax.Type{climax.TypeMusic, climax.TypeVoice} {
		seq, err := s.registry.NextSeq(ctx, typ)
		if err != nil {
			return nil, fmt.Errorf("read next %s sequence: %w", typ, err)
		}
		nextSeq[typ] = seq
	}

	s.logger.Info("slicing run started",
		slog.String("audio", req.AudioPath),
		slog.Float64("source_duration_sec", sourceDuration),
		slog.Int("points", len(points)),
		slog.Int("next_m", nextSeq[climax.TypeMusic]),
		slog.Int("next_v", nextSeq[climax.TypeVoice]),
	)

	result := &Result{SourceDuration: sourceDuration}
	for _, point := range points {
		blk, err := s.slicePoint(ctx, req, point, sourceDuration, nextSeq[point.Type])
		if err != nil {
			s.logger.Warn("point skipped",
				slog.String("point", point.String()),
				slog.String("error", err.Error()),
			)
			result.Failures = append(result.Failures, Failure{Point: point, Err: err})
			continue
		}

		// The block is registered; its sequence number is consumed even if
		// publishing fails below, so later points never reuse the ID.
		nextSeq[point.Type]++
		result.Exported = append(result.Exported, blk)
		s.logger.Info("block exported",
			slog.String("block", blk.ID()),
			slog.String("description", blk.Description),
		)

		if req.Publish {
			if err := s.publish(ctx, blk); err != nil {
				s.logger.Warn("block not published",
					slog.String("block", blk.ID()),
					slog.String("error", err.Error()),
				)
				result.Failures = append(result.Failures, Failure{Point: point, Err: err})
			}
		}
	}

	report, err := s.reconcile(ctx)
	if err != nil {
		return nil, err
	}
	result.Report = report

	s.logger.Info("slicing run finished",
		slog.Int("exported", len(result.Exported)),
		slog.Int("failed", len(result.Failures)),
		slog.Bool("in_sync", report.InSync()),
	)
	return result, nil
}

// slicePoint plans, cuts, and registers one block.
func (s *Service) slicePoint(ctx context.Context, req Request, point climax.Point, sourceDuration float64, seq int) (block.Block, error) {
	spec, err := plan.Plan(point, req.SliceDuration, sourceDuration)
	if err != nil {
		return block.Block{}, err
	}

	blk := block.New(point.Type, seq, req.AudioPath, point.Description)
	dst := s.store.BlockPath(blk.Filename())

	err = s.processor.ExtractSlice(ctx, req.AudioPath, dst, audio.SliceOpts{
		Start:     spec.Start,
		Duration:  spec.Duration(),
		FadeIn:    req.FadeDuration,
		FadeOut:   req.FadeDuration,
		Normalize: req.Normalize,
	})
	if err != nil {
		return block.Block{}, fmt.Errorf("extract %s: %w", blk.ID(), err)
	}

	if err := s.registry.Append(ctx, blk); err != nil {
		// The file is already on disk; the verification report will flag
		// it as an orphan.
		return block.Block{}, fmt.Errorf("register %s: %w", blk.ID(), err)
	}

	return blk, nil
}

// publish uploads an exported block to the remote store.
func (s *Service) publish(ctx context.Context, blk block.Block) error {
	f, err := os.Open(s.store.BlockPath(blk.Filename())) // #nosec G304 - path built from the block id
	if err != nil {
		return fmt.Errorf("open %s for publishing: %w", blk.ID(), err)
	}
	defer func() { _ = f.Close() }()

	url, err := s.store.Publish(ctx, blk.Filename(), f)
	if err != nil {
		return fmt.Errorf("publish %s: %w", blk.ID(), err)
	}

	s.logger.Info("block published",
		slog.String("block", blk.ID()),
		slog.String("url", url),
	)
	return nil
}

// reconcile diffs the blocks directory against the registry.
func (s *Service) reconcile(ctx context.Context) (verify.Report, error) {
	files, err := s.store.ListFiles(ctx)
	if err != nil {
		return verify.Report{}, fmt.Errorf("list blocks directory: %w", err)
	}

	var registered []block.Block
	for _, typ := range []climax.Type{climax.TypeMusic, climax.TypeVoice} {
		blocks, err := s.registry.ReadAll(ctx, typ)
		if err != nil {
			return verify.Report{}, fmt.Errorf("read %s registry: %w", typ, err)
		}
		registered = append(registered, blocks...)
	}

	return verify.Run(files, registered), nil
}
