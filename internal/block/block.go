// Package block provides the Block entity and the registry that tracks
// every exported slice. The registry spreadsheet is the source of truth
// for which blocks exist; the blocks directory is reconciled against it.
package block

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/maauso/blockcut/internal/climax"
)

// Block is a persisted audio slice tracked in the registry.
// Blocks are append-only: once registered they are never mutated.
type Block struct {
	// Type is the channel this block belongs to (music or voice).
	Type climax.Type
	// Seq is the 1-based running number within the type.
	Seq int
	// Origin is the path of the source audio the block was cut from.
	Origin string
	// Description is the free text carried over from the climax point.
	Description string
	// Duration is the measured block length in seconds. It is probed from
	// the block file when sequencing and is not persisted in the registry.
	Duration float64
}

// New creates a block for an exported slice.
func New(typ climax.Type, seq int, origin, description string) Block {
	return Block{Type: typ, Seq: seq, Origin: origin, Description: description}
}

// ID returns the block identifier, e.g. "m3" or "v12".
func (b Block) ID() string {
	return fmt.Sprintf("%s%d", b.Type, b.Seq)
}

// Filename returns the block's file name in the blocks directory.
func (b Block) Filename() string {
	return b.ID() + ".wav"
}

var idPattern = regexp.MustCompile(`^([mv])(\d+)$`)

// ParseID parses a block identifier like "m3" into its type and sequence
// number. It is the inverse of ID.
func ParseID(id string) (climax.Type, int, error) {
	m := idPattern.FindStringSubmatch(id)
	if m == nil {
		return "", 0, fmt.Errorf("malformed block id %q", id)
	}
	seq, err := strconv.Atoi(m[2])
	if err != nil {
		return "", 0, fmt.Errorf("malformed block id %q: %w", id, err)
	}
	return climax.Type(m[1]), seq, nil
}
