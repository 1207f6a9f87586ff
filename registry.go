package dictscrape

import "sort"

// Registry looks up sources by name. Register all sources before sharing
// the Registry; lookups are safe for concurrent use once registration ends.
type Registry struct {
	sources map[string]Source
}

// NewRegistry creates a Registry holding the given sources.
func NewRegistry(sources ...Source) *Registry {
	r := &Registry{sources: make(map[string]Source, len(sources))}
	for _, s := range sources {
		r.Register(s)
	}
	return r
}

// Register adds a source. A source with the same name is replaced.
func (r *Registry) Register(s Source) {
	r.sources[s.Name()] = s
}

// Get returns the source registered under name.
// Returns ENOTFOUND if no such source exists.
func (r *Registry) Get(name string) (Source, error) {
	s, ok := r.sources[name]
	if !ok {
		return nil, Errorf(ENOTFOUND, "source %q not found", name)
	}
	return s, nil
}

// List returns all registered source names in sorted order.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
