// Copyright Antimetal, Inc. All rights reserved.
//
// Use of this source code is governed by a source available license that can be found in the
// LICENSE file or at:
// https://polyformproject.org/wp-content/uploads/2020/06/PolyForm-Shield-1.0.0.txt

package machine

import (
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
)

var (
	registry       = make(map[string]Factory)
	registryLogger = stdr.New(log.New(os.Stderr, "[machine.registry] ", log.LstdFlags))
)

// Register adds a provider factory under name.
//
// This function is usually called during package initialization to make a
// provider selectable by name. It panics if name is already registered.
func Register(name string, factory Factory) {
	if factory == nil {
		panic(fmt.Sprintf("nil factory for provider %s", name))
	}
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("Provider %s already registered", name))
	}
	registry[name] = factory
	registryLogger.V(1).Info("Registered machine provider", "provider", name)
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, error) {
	factory, exists := registry[name]
	if !exists {
		return nil, fmt.Errorf("machine provider %q not found (available: %v)", name, Providers())
	}
	return factory, nil
}

// Providers returns the registered provider names in sorted order.
func Providers() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetRegistryLogger allows setting a custom logger for the registry.
// This should be called before any providers are registered.
func SetRegistryLogger(logger logr.Logger) {
	registryLogger = logger
}
