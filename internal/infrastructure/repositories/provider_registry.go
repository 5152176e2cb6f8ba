package repositories

import (
	"fmt"
	"sort"
	"strings"

	domainRepos "github.com/rios0rios0/depdiff/internal/domain/repositories"
)

// ProviderFactory creates a ProviderRepository for an auth token and API base URL.
type ProviderFactory func(token, apiURL string) (domainRepos.ProviderRepository, error)

// ProviderRegistry manages the registered Git provider implementations.
type ProviderRegistry struct {
	providers map[string]ProviderFactory
}

// NewProviderRegistry creates an empty provider registry.
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{
		providers: make(map[string]ProviderFactory),
	}
}

// Register adds a provider factory under the given name (e.g. "github").
func (r *ProviderRegistry) Register(name string, factory ProviderFactory) {
	r.providers[name] = factory
}

// Get returns a configured provider instance for the given name.
func (r *ProviderRegistry) Get(name, token, apiURL string) (domainRepos.ProviderRepository, error) {
	factory, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("unknown provider type: %q (known: %s)", name, strings.Join(r.Names(), ", "))
	}
	return factory(token, apiURL)
}

// Names returns the registered provider names in sorted order.
func (r *ProviderRegistry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
