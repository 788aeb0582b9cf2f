// Package plan computes slice windows around climax points.
package plan

import (
	"errors"
	"fmt"

	"github.com/maauso/blockcut/internal/climax"
)

// ErrOutOfBounds is returned when a climax time falls outside the source.
var ErrOutOfBounds = errors.New("climax time outside source duration")

// Spec is the derived slice window for one climax point.
// Invariants: Start >= 0, End <= source duration, End-Start <= slice duration.
type Spec struct {
	// Start is the slice start in seconds.
	Start float64
	// End is the slice end in seconds.
	End float64
	// Point is the originating climax point.
	Point climax.Point
}

// Duration returns the slice window length in seconds.
func (s Spec) Duration() float64 {
	return s.End - s.Start
}

// Plan computes the slice window centered on the climax point. When the
// centered window would cross either edge of the source it is shifted, not
// truncated, so the slice keeps its full length; only a source shorter than
// the slice duration produces a shorter window spanning the whole source.
func Plan(point climax.Point, sliceDuration, sourceDuration float64) (Spec, error) {
	if sliceDuration <= 0 {
		return Spec{}, fmt.Errorf("slice duration %.2f must be positive", sliceDuration)
	}
	if point.Time < 0 || point.Time > sourceDuration {
		return Spec{}, fmt.Errorf("%w: %.2fs not in [0, %.2fs]", ErrOutOfBounds, point.Time, sourceDuration)
	}

	if sourceDuration < sliceDuration {
		return Spec{Start: 0, End: sourceDuration, Point: point}, nil
	}

	start := point.Time - sliceDuration/2
	end := point.Time + sliceDuration/2
	if start < 0 {
		start = 0
		end = sliceDuration
	} else if end > sourceDuration {
		end = sourceDuration
		start = sourceDuration - sliceDuration
	}

	return Spec{Start: start, End: end, Point: point}, nil
}
