// Package audio provides the ffmpeg-backed collaborator for probing,
// slicing, and mixing audio files.
package audio

import "context"

// SliceOpts configures a single slice extraction.
type SliceOpts struct {
	// Start is the slice start within the source, in seconds.
	Start float64
	// Duration is the slice length in seconds.
	Duration float64
	// FadeIn is the fade-in length in seconds (0 disables it).
	FadeIn float64
	// FadeOut is the fade-out length in seconds (0 disables it).
	FadeOut float64
	// Normalize applies loudness normalization to the slice.
	Normalize bool
}

// MixInput is one block file placed on the mix timeline.
type MixInput struct {
	// Path is the block file to mix in.
	Path string
	// Start is the placement start on the output timeline, in seconds.
	Start float64
}

// Processor defines the audio operations the workflows depend on.
// Implementations shell out to ffmpeg/ffprobe; callers treat them as
// opaque synchronous collaborators.
type Processor interface {
	// Duration returns the length of an audio file in seconds.
	Duration(ctx context.Context, path string) (float64, error)

	// ExtractSlice cuts a window out of src, applies fades and optional
	// normalization, and writes the result to dst as WAV.
	ExtractSlice(ctx context.Context, src, dst string, opts SliceOpts) error

	// Mix renders the inputs onto one output file, each delayed to its
	// placement start.
	Mix(ctx context.Context, inputs []MixInput, dst string) error
}
