package parser

import (
	"fmt"

	"billex/internal/config"
	"billex/internal/port"
)

// ProviderFactory is a function that creates a VisionModel from a provider config.
type ProviderFactory func(cfg *config.ModelProviderConfig) (port.VisionModel, error)

// registry of model provider factories, populated explicitly via RegisterProvider.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a model provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewModel creates a VisionModel from a provider config using the registered factory.
func NewModel(cfg *config.ModelProviderConfig) (port.VisionModel, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown model provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
