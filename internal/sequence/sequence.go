// Package sequence places shuffled music and voice blocks on two parallel
// timelines with a fixed inter-channel offset.
package sequence

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/maauso/blockcut/internal/block"
	"github.com/maauso/blockcut/internal/climax"
)

// ErrEmptyPool is returned when a mix is requested and a channel has no blocks.
var ErrEmptyPool = errors.New("block pool is empty")

// Placement is one block positioned on a channel timeline.
type Placement struct {
	// Block is the placed block, duration included.
	Block block.Block
	// Start is the placement start in seconds on the output timeline.
	Start float64
	// End is the placement end in seconds.
	End float64
}

// Timeline holds the per-channel placements of a sequenced mix.
// Within each channel, placements are back-to-back: non-overlapping and
// monotonically increasing in start time.
type Timeline struct {
	// Music is the music channel, starting at 0.
	Music []Placement
	// Voice is the voice channel, starting at the channel offset.
	Voice []Placement
}

// Duration returns the end of the last placement across both channels.
func (t Timeline) Duration() float64 {
	var end float64
	for _, ch := range [][]Placement{t.Music, t.Voice} {
		if n := len(ch); n > 0 && ch[n-1].End > end {
			end = ch[n-1].End
		}
	}
	return end
}

// Flatten returns all placements of both channels ordered by start time,
// suitable for the timeline report and for mixing.
func (t Timeline) Flatten() []Placement {
	out := make([]Placement, 0, len(t.Music)+len(t.Voice))
	i, j := 0, 0
	for i < len(t.Music) && j < len(t.Voice) {
		if t.Music[i].Start <= t.Voice[j].Start {
			out = append(out, t.Music[i])
			i++
		} else {
			out = append(out, t.Voice[j])
			j++
		}
	}
	out = append(out, t.Music[i:]...)
	out = append(out, t.Voice[j:]...)
	return out
}

// Build shuffles each pool independently with the injected rng and chains
// the blocks back-to-back on their channel: music from 0, voice from
// offsetSec. Every block must carry a positive measured Duration.
// Returns ErrEmptyPool if either pool is empty.
func Build(rng *rand.Rand, musicBlocks, voiceBlocks []block.Block, offsetSec float64) (Timeline, error) {
	if len(musicBlocks) == 0 {
		return Timeline{}, fmt.Errorf("%w: no music blocks", ErrEmptyPool)
	}
	if len(voiceBlocks) == 0 {
		return Timeline{}, fmt.Errorf("%w: no voice blocks", ErrEmptyPool)
	}
	if offsetSec < 0 {
		return Timeline{}, fmt.Errorf("channel offset %.2f must not be negative", offsetSec)
	}

	music, err := chain(shuffled(rng, musicBlocks), 0)
	if err != nil {
		return Timeline{}, err
	}
	voice, err := chain(shuffled(rng, voiceBlocks), offsetSec)
	if err != nil {
		return Timeline{}, err
	}

	return Timeline{Music: music, Voice: voice}, nil
}

// shuffled returns a shuffled copy, leaving the input pool untouched.
func shuffled(rng *rand.Rand, pool []block.Block) []block.Block {
	out := make([]block.Block, len(pool))
	copy(out, pool)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// chain places blocks back-to-back starting at start.
func chain(blocks []block.Block, start float64) ([]Placement, error) {
	placements := make([]Placement, 0, len(blocks))
	cursor := start
	for _, b := range blocks {
		if b.Duration <= 0 {
			return nil, fmt.Errorf("block %s has no measured duration", b.ID())
		}
		placements = append(placements, Placement{
			Block: b,
			Start: cursor,
			End:   cursor + b.Duration,
		})
		cursor += b.Duration
	}
	return placements, nil
}

// channelOf returns the channel name for a placement's block type.
func channelOf(typ climax.Type) string {
	if typ == climax.TypeMusic {
		return "music"
	}
	return "voice"
}
