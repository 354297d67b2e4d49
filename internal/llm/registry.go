package llm

import "fmt"

// ProviderFactory creates a new provider instance from its own environment.
type ProviderFactory func() (Provider, error)

// global registry of available providers, filled by init() in the vendor
// packages
var providers = make(map[string]ProviderFactory)

// RegisterProvider registers a provider factory under the given name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewProvider creates a provider instance by registry name.
func NewProvider(name string) (Provider, error) {
	factory, exists := providers[name]
	if !exists {
		return nil, fmt.Errorf("unsupported provider: %s", name)
	}
	return factory()
}

// RegisteredProviders lists the names providers were registered under.
func RegisteredProviders() []string {
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	return names
}
