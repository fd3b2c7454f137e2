package pipeline

import (
	"slices"
	"strings"
	"sync"

	"github.com/fwojciec/novelsrc"
)

var _ novelsrc.SourceRegistry = (*Registry)(nil)

// Registry is an in-memory table of sources keyed by ID. The zero value
// is ready to use; the table is allocated on first registration.
type Registry struct {
	mu      sync.RWMutex
	sources map[string]novelsrc.Source
}

// NewRegistry creates a Registry holding sources.
func NewRegistry(sources ...novelsrc.Source) (*Registry, error) {
	r := &Registry{}
	for _, src := range sources {
		if err := r.Register(src); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a source. IDs must be unique.
func (r *Registry) Register(src novelsrc.Source) error {
	if src == nil || src.ID() == "" {
		return novelsrc.Errorf(novelsrc.EINVALID, "source id required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sources == nil {
		r.sources = make(map[string]novelsrc.Source)
	}
	if _, ok := r.sources[src.ID()]; ok {
		return novelsrc.Errorf(novelsrc.EINVALID, "source %q already registered", src.ID())
	}
	r.sources[src.ID()] = src
	return nil
}

// Get returns the source with the given ID.
func (r *Registry) Get(id string) (novelsrc.Source, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	src, ok := r.sources[id]
	if !ok {
		return nil, novelsrc.Errorf(novelsrc.ENOTFOUND, "unknown source %q", id)
	}
	return src, nil
}

// List returns every source sorted by ID.
func (r *Registry) List() []novelsrc.Source {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]novelsrc.Source, 0, len(r.sources))
	for _, src := range r.sources {
		out = append(out, src)
	}
	slices.SortFunc(out, func(a, b novelsrc.Source) int {
		return strings.Compare(a.ID(), b.ID())
	})
	return out
}

// Close empties the registry.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources = nil
	return nil
}
