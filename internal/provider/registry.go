package provider

import (
	"fmt"
	"sort"
	"sync"

	"github.com/mrz1836/conductor/internal/domain"
	conductorerrors "github.com/mrz1836/conductor/internal/errors"
)

// Registry maps provider types to their factories.
// It provides thread-safe registration and lookup, constructed explicitly at
// process start and injected into the orchestration service. This avoids
// hidden registration-order dependencies and enables fresh registries per test.
type Registry struct {
	mu        sync.RWMutex
	factories map[domain.ProviderType]Factory
}

// NewRegistry creates a new empty provider registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[domain.ProviderType]Factory),
	}
}

// NewDefaultRegistry creates a registry with all built-in providers registered.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(domain.ProviderOpenAI, NewOpenAI)
	r.Register(domain.ProviderAnthropic, NewAnthropic)
	return r
}

// Register adds a factory for a provider type.
// If a factory already exists for the type, it is replaced.
func (r *Registry) Register(ptype domain.ProviderType, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[ptype] = factory
}

// Resolve retrieves the factory for a provider type.
// Returns ErrProviderNotFound if no factory is registered for the type.
func (r *Registry) Resolve(ptype domain.ProviderType) (Factory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, ok := r.factories[ptype]
	if !ok {
		return nil, fmt.Errorf("%w: %s", conductorerrors.ErrProviderNotFound, ptype)
	}
	return factory, nil
}

// Has checks if a factory is registered for the provider type.
func (r *Registry) Has(ptype domain.ProviderType) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[ptype]
	return ok
}

// Types returns all registered provider types in sorted order.
func (r *Registry) Types() []domain.ProviderType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]domain.ProviderType, 0, len(r.factories))
	for t := range r.factories {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
