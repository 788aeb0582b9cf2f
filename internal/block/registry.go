package block

import (
	"context"
	"errors"

	"github.com/maauso/blockcut/internal/climax"
)

// ErrUnknownType is returned for registry operations on an invalid type.
var ErrUnknownType = errors.New("unknown block type")

// Registry defines the append-only store tracking every exported block.
// The spreadsheet implementation is the source of truth; MemoryRegistry
// backs tests.
type Registry interface {
	// Append records a block. Blocks are never updated or removed.
	Append(ctx context.Context, b Block) error

	// ReadAll returns every registered block of the given type in
	// registration order.
	ReadAll(ctx context.Context, typ climax.Type) ([]Block, error)

	// NextSeq returns the sequence number the next block of the given
	// type should take.
	NextSeq(ctx context.Context, typ climax.Type) (int, error)
}
