package channels

import (
	"fmt"
	"sync"

	"github.com/pinehillfarm/backend/internal/domain/channel"
)

// PlatformRegistry resolves channel adapters by platform code
type PlatformRegistry struct {
	mu        sync.RWMutex
	platforms map[channel.PlatformCode]channel.Platform
}

// NewPlatformRegistry creates an empty registry
func NewPlatformRegistry() *PlatformRegistry {
	return &PlatformRegistry{
		platforms: make(map[channel.PlatformCode]channel.Platform),
	}
}

// Register adds an adapter, replacing any previous one for the same code
func (r *PlatformRegistry) Register(platform channel.Platform) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.platforms[platform.Code()] = platform
}

// Get returns the adapter for a platform code
func (r *PlatformRegistry) Get(code channel.PlatformCode) (channel.Platform, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	platform, ok := r.platforms[code]
	if !ok {
		return nil, fmt.Errorf("%w: %s", channel.ErrPlatformNotFound, code)
	}
	return platform, nil
}

// All returns every registered adapter
func (r *PlatformRegistry) All() []channel.Platform {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]channel.Platform, 0, len(r.platforms))
	for _, p := range r.platforms {
		all = append(all, p)
	}
	return all
}

// Ensure PlatformRegistry implements the Registry interface
var _ channel.Registry = (*PlatformRegistry)(nil)
