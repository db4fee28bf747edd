package processors

import (
	"fmt"
	"sync"
)

// The registry holds the interchangeable Processor implementations. There is
// no implicit fallback ordering: implementations register explicitly (usually
// from their package init) and the first registered wins as the default.
// Callers may bypass the registry entirely by injecting a Processor.

type registration struct {
	name    string
	factory func() Processor
}

var (
	registryMu sync.RWMutex
	registry   []registration
)

// Register makes a processor implementation available under name.
// Registering the same name twice panics.
func Register(name string, factory func() Processor) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if factory == nil {
		panic("processors: Register with nil factory")
	}
	for _, r := range registry {
		if r.name == name {
			panic(fmt.Sprintf("processors: Register called twice for %q", name))
		}
	}
	registry = append(registry, registration{name: name, factory: factory})
}

// Default returns a new instance of the first registered implementation.
func Default() (Processor, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	if len(registry) == 0 {
		return nil, fmt.Errorf("no response processor registered")
	}
	return registry[0].factory(), nil
}

// New returns a new instance of the named implementation.
func New(name string) (Processor, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	for _, r := range registry {
		if r.name == name {
			return r.factory(), nil
		}
	}
	return nil, fmt.Errorf("unknown response processor %q", name)
}

// Names lists the registered implementations in registration order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, len(registry))
	for i, r := range registry {
		names[i] = r.name
	}
	return names
}
