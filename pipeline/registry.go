package pipeline

import (
	"fmt"
	"sync"
)

// Factory defines the function signature for creating pipeline instances.
type Factory func() *Pipeline

var (
	// DefaultRegistry holds the registered pipeline factories.
	DefaultRegistry = make(map[string]Factory)
	registryMutex   = &sync.RWMutex{}
)

// Register adds a pipeline factory to the DefaultRegistry. It returns an
// error if a pipeline with the same name is already registered.
func Register(name string, factory Factory) error {
	registryMutex.Lock()
	defer registryMutex.Unlock()

	if _, exists := DefaultRegistry[name]; exists {
		return fmt.Errorf("pipeline with name '%s' already registered", name)
	}
	DefaultRegistry[name] = factory
	return nil
}

// Get retrieves a new pipeline instance from the registry using its factory.
// It returns an error if the pipeline name is not found in the registry.
func Get(name string) (*Pipeline, error) {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	factory, exists := DefaultRegistry[name]
	if !exists {
		return nil, fmt.Errorf("pipeline with name '%s' not found in registry", name)
	}
	return factory(), nil
}

// RegisteredNames returns a slice of names of all registered pipelines.
func RegisteredNames() []string {
	registryMutex.RLock()
	defer registryMutex.RUnlock()
	names := make([]string, 0, len(DefaultRegistry))
	for name := range DefaultRegistry {
		names = append(names, name)
	}
	return names
}
