package parser_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"billex/internal/parser"
)

func TestRateLimitError_Message(t *testing.T) {
	err := parser.NewRateLimitError("gemini", errors.New("429 too many requests"), 30)

	assert.Contains(t, err.Error(), "gemini rate limited")
	assert.Contains(t, err.Error(), "30s")
	assert.Equal(t, 30*time.Second, err.RetryAfter)
}

func TestRateLimitError_DefaultRetryAfter(t *testing.T) {
	err := parser.NewRateLimitError("openai", errors.New("429"), 0)

	assert.Equal(t, 60*time.Second, err.RetryAfter)
}

func TestRateLimitError_Unwrap(t *testing.T) {
	inner := errors.New("inner")
	err := parser.NewRateLimitError("gemini", inner, 10)

	assert.True(t, errors.Is(err, inner))
}

func TestParseRetryAfterHeader(t *testing.T) {
	assert.Equal(t, 45, parser.ParseRetryAfterHeader("45"))
	assert.Equal(t, 0, parser.ParseRetryAfterHeader(""))
	assert.Equal(t, 0, parser.ParseRetryAfterHeader("Wed, 21 Oct 2026 07:28:00 GMT"))
}
