package snapshot

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Entry describes a provider kind available to the CLI.
type Entry struct {
	Name        string
	Extensions  []string
	Description string
	New         func(path string) Provider
}

// Registry manages snapshot provider kinds.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]Entry),
	}
}

// Register adds a provider kind to the registry.
func (r *Registry) Register(e Entry) error {
	if e.Name == "" {
		return fmt.Errorf("provider name cannot be empty")
	}
	if e.New == nil {
		return fmt.Errorf("provider %s has no constructor", e.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[e.Name]; exists {
		return fmt.Errorf("provider already registered: %s", e.Name)
	}
	r.entries[e.Name] = e
	return nil
}

// Get returns a provider kind by name.
func (r *Registry) Get(name string) (Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[name]
	if !ok {
		return Entry{}, fmt.Errorf("provider not found: %s", name)
	}
	return e, nil
}

// Has checks if a provider kind is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[name]
	return ok
}

// List returns all registered provider kinds sorted by name.
func (r *Registry) List() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}

// ForPath picks a provider for the given preview file by extension.
func (r *Registry) ForPath(path string) (Provider, error) {
	ext := strings.ToLower(filepath.Ext(path))

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.entries {
		for _, known := range e.Extensions {
			if ext == known {
				return e.New(path), nil
			}
		}
	}
	return nil, fmt.Errorf("unsupported preview image format: %q", ext)
}

// DefaultRegistry holds the built-in provider kinds.
var DefaultRegistry = NewRegistry()

// ForPath picks a provider from the default registry.
func ForPath(path string) (Provider, error) {
	return DefaultRegistry.ForPath(path)
}

// List returns the provider kinds of the default registry.
func List() []Entry {
	return DefaultRegistry.List()
}
