package parser_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"billex/internal/config"
	"billex/internal/parser"
	"billex/internal/port"
)

func TestFactory_RegisterAndCreate(t *testing.T) {
	parser.RegisterProvider("test-provider", func(cfg *config.ModelProviderConfig) (port.VisionModel, error) {
		return &stubModel{model: cfg.DefaultModel}, nil
	})

	m, err := parser.NewModel(&config.ModelProviderConfig{
		Provider:     "test-provider",
		DefaultModel: "test-model",
	})

	assert.NoError(t, err)
	assert.NotNil(t, m)
}

func TestFactory_UnknownProvider(t *testing.T) {
	m, err := parser.NewModel(&config.ModelProviderConfig{
		Provider: "nonexistent-provider-xyz",
	})

	assert.Nil(t, m)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown model provider")
}

// stubModel is a minimal VisionModel for testing the factory.
type stubModel struct {
	model string
}

func (s *stubModel) Generate(_ context.Context, _ port.GenerateInput) (*port.GenerateOutput, error) {
	return &port.GenerateOutput{Model: s.model}, nil
}
