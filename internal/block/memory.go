package block

import (
	"context"
	"sync"

	"github.com/maauso/blockcut/internal/climax"
)

// Compile-time check that MemoryRegistry implements Registry.
var _ Registry = (*MemoryRegistry)(nil)

// MemoryRegistry is an in-memory implementation of Registry.
// It uses per-type slices with an RWMutex for thread-safe access.
// Suitable for tests; the spreadsheet registry is used in production.
type MemoryRegistry struct {
	mu     sync.RWMutex
	blocks map[climax.Type][]Block
}

// NewMemoryRegistry creates a new in-memory block registry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		blocks: make(map[climax.Type][]Block),
	}
}

// Append records a block in memory.
func (r *MemoryRegistry) Append(_ context.Context, b Block) error {
	if !b.Type.IsValid() {
		return ErrUnknownType
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blocks[b.Type] = append(r.blocks[b.Type], b)
	return nil
}

// ReadAll returns a copy of the registered blocks of the given type.
func (r *MemoryRegistry) ReadAll(_ context.Context, typ climax.Type) ([]Block, error) {
	if !typ.IsValid() {
		return nil, ErrUnknownType
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Block, len(r.blocks[typ]))
	copy(out, r.blocks[typ])
	return out, nil
}

// NextSeq returns one past the number of registered blocks of the type.
func (r *MemoryRegistry) NextSeq(_ context.Context, typ climax.Type) (int, error) {
	if !typ.IsValid() {
		return 0, ErrUnknownType
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.blocks[typ]) + 1, nil
}
