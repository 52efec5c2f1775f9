package provider

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Factory creates a new Client from the given configuration.
// Each provider registers its own factory function.
type Factory func(cfg Config) (Client, error)

// factoryRegistry maps provider names to factories.
type factoryRegistry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

var registry = &factoryRegistry{factories: make(map[string]Factory)}

func (r *factoryRegistry) add(name string, factory Factory) {
	if name == "" {
		panic("provider: Register with empty name")
	}
	if factory == nil {
		panic(fmt.Sprintf("provider: Register %q with nil factory", name))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[name]; exists {
		panic(fmt.Sprintf("provider: %q already registered", name))
	}
	r.factories[name] = factory
}

func (r *factoryRegistry) lookup(name string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[name]
	return f, ok
}

// Register adds a provider factory to the registry. Providers call it from
// init. It panics on an empty name, a nil factory, or a duplicate name.
//
//	func init() {
//	    provider.Register("ollama", func(cfg provider.Config) (provider.Client, error) {
//	        return ollama.NewFromProviderConfig(cfg)
//	    })
//	}
func Register(name string, factory Factory) {
	registry.add(name, factory)
}

// New creates a Client using the named provider.
// Returns ErrUnknownProvider if nothing is registered under name.
//
//	client, err := provider.New("ollama", provider.Config{
//	    Provider: "ollama",
//	    Model:    "llama3.1:8b",
//	    Host:     "localhost",
//	})
func New(name string, cfg Config) (Client, error) {
	factory, ok := registry.lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, name)
	}
	return factory(cfg)
}

// MustNew is like New but panics on error.
func MustNew(name string, cfg Config) Client {
	client, err := New(name, cfg)
	if err != nil {
		panic(fmt.Sprintf("provider.MustNew(%q): %v", name, err))
	}
	return client
}

// Available returns the registered provider names in sorted order.
func Available() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return slices.Sorted(maps.Keys(registry.factories))
}

// IsRegistered reports whether a provider is registered under name.
func IsRegistered(name string) bool {
	_, ok := registry.lookup(name)
	return ok
}

// Unregister removes a provider. Used by tests.
func Unregister(name string) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	delete(registry.factories, name)
}

// ClearRegistry removes every provider. Used by tests.
func ClearRegistry() {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	clear(registry.factories)
}
