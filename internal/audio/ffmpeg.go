package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Static errors for audio operations.
var (
	// ErrNoMixInputs is returned when Mix is called with no inputs.
	ErrNoMixInputs = errors.New("no mix inputs provided")
	// ErrInvalidWindow is returned when a slice window is not positive.
	ErrInvalidWindow = errors.New("invalid slice window: duration must be positive")
	// ErrFFprobeExecution is returned when the ffprobe command fails.
	ErrFFprobeExecution = errors.New("ffprobe execution failed")
)

// FFmpegProcessor implements Processor using the ffmpeg and ffprobe CLIs.
type FFmpegProcessor struct {
	// ffmpegPath is the path to the ffmpeg binary. Defaults to "ffmpeg".
	ffmpegPath string
	// ffprobePath is the path to the ffprobe binary. Defaults to "ffprobe".
	ffprobePath string
}

// NewFFmpegProcessor creates a new FFmpegProcessor.
// Empty paths default to "ffmpeg" and "ffprobe" (found via PATH).
func NewFFmpegProcessor(ffmpegPath, ffprobePath string) *FFmpegProcessor {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &FFmpegProcessor{ffmpegPath: ffmpegPath, ffprobePath: ffprobePath}
}

// Compile-time check that FFmpegProcessor implements Processor.
var _ Processor = (*FFmpegProcessor)(nil)

// Duration returns the duration in seconds of an audio file.
// It uses ffprobe to extract the duration metadata.
func (p *FFmpegProcessor) Duration(ctx context.Context, path string) (float64, error) {
	// #nosec G204 - ffprobePath is set by the application, not user input
	cmd := exec.CommandContext(ctx, p.ffprobePath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return 0, fmt.Errorf("ffprobe cancelled: %w", ctx.Err())
		}
		return 0, fmt.Errorf("%w: %w, stderr: %s", ErrFFprobeExecution, err, stderr.String())
	}

	var duration float64
	if _, err := fmt.Sscanf(strings.TrimSpace(stdout.String()), "%f", &duration); err != nil {
		return 0, fmt.Errorf("parse duration: %w", err)
	}

	return duration, nil
}

// ExtractSlice cuts the [opts.Start, opts.Start+opts.Duration) window out of
// src, applies afade in/out and optional loudnorm, and writes dst as WAV.
func (p *FFmpegProcessor) ExtractSlice(ctx context.Context, src, dst string, opts SliceOpts) error {
	if opts.Duration <= 0 {
		return fmt.Errorf("%w: got %.3f", ErrInvalidWindow, opts.Duration)
	}
	if _, err := os.Stat(src); os.IsNotExist(err) {
		return fmt.Errorf("source file does not exist: %s", src)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0750); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	args := []string{
		"-y",
		"-ss", fmt.Sprintf("%.3f", opts.Start),
		"-t", fmt.Sprintf("%.3f", opts.Duration),
		"-i", src,
	}
	if filter := sliceFilter(opts); filter != "" {
		args = append(args, "-af", filter)
	}
	args = append(args, dst)

	return p.runFFmpeg(ctx, args)
}

// sliceFilter builds the afade/loudnorm filter chain for a slice.
// Fades longer than the window are capped so afade never reaches past it.
func sliceFilter(opts SliceOpts) string {
	var parts []string

	fadeIn := min(opts.FadeIn, opts.Duration)
	if fadeIn > 0 {
		parts = append(parts, fmt.Sprintf("afade=t=in:st=0:d=%.3f", fadeIn))
	}
	fadeOut := min(opts.FadeOut, opts.Duration)
	if fadeOut > 0 {
		parts = append(parts, fmt.Sprintf("afade=t=out:st=%.3f:d=%.3f", opts.Duration-fadeOut, fadeOut))
	}
	if opts.Normalize {
		parts = append(parts, "loudnorm")
	}

	return strings.Join(parts, ",")
}

// Mix renders the inputs onto one output file. Each input is delayed with
// adelay to its placement start and the streams are summed with amix.
func (p *FFmpegProcessor) Mix(ctx context.Context, inputs []MixInput, dst string) error {
	if len(inputs) == 0 {
		return ErrNoMixInputs
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0750); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	args := []string{"-y"}
	for _, in := range inputs {
		args = append(args, "-i", in.Path)
	}

	var filter strings.Builder
	var labels strings.Builder
	for i, in := range inputs {
		delayMs := int(in.Start * 1000)
		fmt.Fprintf(&filter, "[%d:a]adelay=%d:all=1[a%d];", i, delayMs, i)
		fmt.Fprintf(&labels, "[a%d]", i)
	}
	fmt.Fprintf(&filter, "%samix=inputs=%d:normalize=0[out]", labels.String(), len(inputs))

	args = append(args,
		"-filter_complex", filter.String(),
		"-map", "[out]",
		dst,
	)

	return p.runFFmpeg(ctx, args)
}

// runFFmpeg executes ffmpeg with the given arguments and returns an error
// containing stderr output if the command fails.
func (p *FFmpegProcessor) runFFmpeg(ctx context.Context, args []string) error {
	// #nosec G204 - ffmpegPath is set by the application, not user input
	cmd := exec.CommandContext(ctx, p.ffmpegPath, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("ffmpeg cancelled: %w", ctx.Err())
		}
		return &FFmpegError{
			Args:   args,
			Stderr: stderr.String(),
			Err:    err,
		}
	}

	return nil
}

// FFmpegError represents an error from running ffmpeg, including the stderr output.
type FFmpegError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *FFmpegError) Error() string {
	return fmt.Sprintf("ffmpeg error: %v\nargs: %v\nstderr: %s", e.Err, e.Args, e.Stderr)
}

func (e *FFmpegError) Unwrap() error {
	return e.Err
}
