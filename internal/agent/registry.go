package agent

import (
	"fmt"
	"sort"
	"sync"

	"github.com/mrz1836/conductor/internal/domain"
	conductorerrors "github.com/mrz1836/conductor/internal/errors"
)

// Registry maps agent types to their factories.
// It provides thread-safe registration and lookup, constructed explicitly at
// process start and injected into the orchestration service. This avoids
// hidden registration-order dependencies and enables fresh registries per test.
type Registry struct {
	mu        sync.RWMutex
	factories map[domain.AgentType]Factory
}

// NewRegistry creates a new empty agent registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[domain.AgentType]Factory),
	}
}

// NewDefaultRegistry creates a registry with all built-in agents registered.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(domain.AgentTypeResearch, NewResearch)
	r.Register(domain.AgentTypeWriting, NewWriting)
	r.Register(domain.AgentTypeCoding, NewCoding)
	r.Register(domain.AgentTypeGeneral, NewGeneral)
	return r
}

// Register adds a factory for an agent type.
// If a factory already exists for the type, it is replaced.
func (r *Registry) Register(atype domain.AgentType, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[atype] = factory
}

// Resolve retrieves the factory for an agent type.
// Returns ErrAgentNotFound if no factory is registered for the type.
func (r *Registry) Resolve(atype domain.AgentType) (Factory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, ok := r.factories[atype]
	if !ok {
		return nil, fmt.Errorf("%w: %s", conductorerrors.ErrAgentNotFound, atype)
	}
	return factory, nil
}

// Has checks if a factory is registered for the agent type.
func (r *Registry) Has(atype domain.AgentType) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[atype]
	return ok
}

// Types returns all registered agent types in sorted order.
func (r *Registry) Types() []domain.AgentType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]domain.AgentType, 0, len(r.factories))
	for t := range r.factories {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
