package climax

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
)

// ErrInsufficientSpace is returned when the generator cannot pack the
// requested total duration of non-overlapping slices into the source.
var ErrInsufficientSpace = errors.New("cannot pack requested duration into source")

// Options configures random climax generation.
type Options struct {
	// TargetTotal is the aggregate slice duration to reach, in seconds.
	TargetTotal float64
	// SourceDuration is the length of the source audio in seconds.
	SourceDuration float64
	// SliceDuration is the fixed length of each slice in seconds.
	SliceDuration float64
	// MusicRatio is the probability that a generated point is music.
	// 0 yields only voice points, 1 only music. DefaultOptions uses 0.5.
	MusicRatio float64
	// MaxTries bounds the resampling attempts per accepted point so a
	// crowded source terminates instead of spinning. Default: 1000.
	MaxTries int
}

// DefaultOptions returns generation options with the default ratio and
// retry bound applied.
func DefaultOptions(targetTotal, sourceDuration, sliceDuration float64) Options {
	return Options{
		TargetTotal:    targetTotal,
		SourceDuration: sourceDuration,
		SliceDuration:  sliceDuration,
		MusicRatio:     0.5,
		MaxTries:       1000,
	}
}

// window is the slice interval a candidate climax would occupy.
type window struct {
	start float64
	end   float64
}

func (w window) overlaps(o window) bool {
	return w.start < o.end && o.start < w.end
}

// Generate produces non-overlapping climax points whose combined slice
// duration reaches opts.TargetTotal. Candidates are sampled uniformly over
// [slice/2, source-slice/2] so every derived window fits the source without
// clamping. The result is sorted by time and is deterministic for a given
// rng seed.
func Generate(rng *rand.Rand, opts Options) ([]Point, error) {
	if opts.MaxTries <= 0 {
		opts.MaxTries = 1000
	}
	if opts.SliceDuration <= 0 {
		return nil, fmt.Errorf("slice duration %.2f must be positive", opts.SliceDuration)
	}
	if opts.MusicRatio < 0 || opts.MusicRatio > 1 {
		return nil, fmt.Errorf("music ratio %.2f must be within [0, 1]", opts.MusicRatio)
	}

	lo := opts.SliceDuration / 2
	hi := opts.SourceDuration - opts.SliceDuration/2
	if hi < lo {
		return nil, fmt.Errorf("%w: source %.2fs is shorter than one %.2fs slice",
			ErrInsufficientSpace, opts.SourceDuration, opts.SliceDuration)
	}

	var (
		points  []Point
		windows []window
		total   float64
	)

	for total < opts.TargetTotal {
		t, ok := sample(rng, lo, hi, opts.SliceDuration, windows, opts.MaxTries)
		if !ok {
			return nil, fmt.Errorf("%w: placed %.2fs of %.2fs after %d attempts",
				ErrInsufficientSpace, total, opts.TargetTotal, opts.MaxTries)
		}

		typ := TypeVoice
		if rng.Float64() < opts.MusicRatio {
			typ = TypeMusic
		}

		points = append(points, Point{
			Time:        t,
			Type:        typ,
			Description: fmt.Sprintf("generated at %.1fs", t),
		})
		windows = append(windows, window{start: t - opts.SliceDuration/2, end: t + opts.SliceDuration/2})
		total += opts.SliceDuration
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Time < points[j].Time })
	return points, nil
}

// sample draws candidate timestamps until one's window overlaps no accepted
// window, or the retry bound is exhausted.
func sample(rng *rand.Rand, lo, hi, sliceDur float64, accepted []window, maxTries int) (float64, bool) {
	for i := 0; i < maxTries; i++ {
		t := lo + rng.Float64()*(hi-lo)
		cand := window{start: t - sliceDur/2, end: t + sliceDur/2}

		clear := true
		for _, w := range accepted {
			if cand.overlaps(w) {
				clear = false
				break
			}
		}
		if clear {
			return t, true
		}
	}
	return 0, false
}
