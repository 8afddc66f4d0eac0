// Package registry keeps named pools and serializes access to each of them.
package registry

import (
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/fleshka4/liquidity-pool/internal/apperrors"
	"github.com/fleshka4/liquidity-pool/internal/lppool"
)

type entry struct {
	mu   sync.Mutex
	pool *lppool.Pool
}

// Registry is an indexed collection of pools owned by its creator.
// It is safe for concurrent use; calls on the same pool are serialized.
type Registry struct {
	mu    sync.RWMutex
	pools map[string]*entry
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{pools: make(map[string]*entry)}
}

// Create initializes a pool from params and registers it under name.
func (r *Registry) Create(name string, params lppool.Params) (lppool.State, error) {
	if name == "" {
		return lppool.State{}, errors.Wrap(apperrors.ErrInvalidArgument, "pool name is empty")
	}

	pool, err := lppool.New(params.Price, params.MinFee, params.MaxFee, params.LiquidityTarget)
	if err != nil {
		return lppool.State{}, errors.Wrapf(err, "pool %q", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.pools[name]; ok {
		return lppool.State{}, errors.Wrapf(apperrors.ErrPoolExists, "pool %q", name)
	}
	r.pools[name] = &entry{pool: pool}

	return pool.State(), nil
}

// Do runs fn with exclusive access to the named pool.
func (r *Registry) Do(name string, fn func(p *lppool.Pool) error) error {
	e, err := r.lookup(name)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	return fn(e.pool)
}

// Get returns a snapshot of the named pool.
func (r *Registry) Get(name string) (lppool.State, error) {
	var s lppool.State
	err := r.Do(name, func(p *lppool.Pool) error {
		s = p.State()
		return nil
	})
	return s, err
}

// Names returns the registered pool names in lexical order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.pools))
	for name := range r.pools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered pools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.pools)
}

func (r *Registry) lookup(name string) (*entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.pools[name]
	if !ok {
		return nil, errors.Wrapf(apperrors.ErrPoolNotFound, "pool %q", name)
	}
	return e, nil
}
