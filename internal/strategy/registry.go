package strategy

import (
	"slices"
	"sync"

	"github.com/rxtech-lab/argo-signals/internal/types"
	"github.com/rxtech-lab/argo-signals/pkg/errors"
)

// Registry holds the strategies available to a runner or server.
type Registry interface {
	Register(strategy Strategy) error
	Get(name types.StrategyType) (Strategy, error)
	List() []types.StrategyType
	Remove(name types.StrategyType) error
}

// RegistryV1 is a Registry safe for concurrent use.
type RegistryV1 struct {
	strategies map[types.StrategyType]Strategy
	mu         sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() Registry {
	return &RegistryV1{
		strategies: make(map[types.StrategyType]Strategy),
	}
}

// NewDefaultRegistry creates a registry holding every built-in strategy built from cfgs.
func NewDefaultRegistry(cfgs Configs) (Registry, error) {
	registry := NewRegistry()

	for _, name := range types.AllStrategies {
		s, err := New(name, cfgs)
		if err != nil {
			return nil, err
		}

		if err := registry.Register(s); err != nil {
			return nil, err
		}
	}

	return registry, nil
}

// Register adds a strategy. Registering a name twice is an error.
func (r *RegistryV1) Register(strategy Strategy) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := strategy.Name()
	if _, exists := r.strategies[name]; exists {
		return errors.Newf(errors.ErrCodeStrategyAlreadyExists, "strategy %s already registered", name)
	}

	r.strategies[name] = strategy

	return nil
}

// Get retrieves a strategy by name.
func (r *RegistryV1) Get(name types.StrategyType) (Strategy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	strategy, exists := r.strategies[name]
	if !exists {
		return nil, errors.Newf(errors.ErrCodeStrategyNotFound, "strategy %s not found", name)
	}

	return strategy, nil
}

// List returns the registered names in sorted order.
func (r *RegistryV1) List() []types.StrategyType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]types.StrategyType, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Remove deletes a strategy by name.
func (r *RegistryV1) Remove(name types.StrategyType) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.strategies[name]; !exists {
		return errors.Newf(errors.ErrCodeStrategyNotFound, "strategy %s not found", name)
	}

	delete(r.strategies, name)

	return nil
}
