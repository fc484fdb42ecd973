package port

import (
	"context"

	"billex/internal/domain"
)

// GenerateInput carries one prompt plus one page image for a model call.
type GenerateInput struct {
	Prompt    string
	ImageData []byte
	MIMEType  string
}

// GenerateOutput contains the model's free-form text response plus token
// usage counters. Usage is zero-valued when the provider omits metadata;
// absence of usage must never fail the call.
type GenerateOutput struct {
	Text  string
	Usage domain.TokenUsage
	Model string
}

// VisionModel abstracts a multimodal LLM capable of reading a page image.
type VisionModel interface {
	Generate(ctx context.Context, input GenerateInput) (*GenerateOutput, error)
}
