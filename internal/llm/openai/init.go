package openai

import "devpal/backend/internal/llm"

// Register every OpenAI-compatible vendor on package import. They all share
// one client; the factory just binds the vendor name.
func init() {
	for _, name := range CompatibleProviders() {
		provider := name
		llm.RegisterProvider(provider, func() (llm.Provider, error) {
			config, err := NewConfig(provider)
			if err != nil {
				return nil, err
			}
			return NewClient(config), nil
		})
	}
}
