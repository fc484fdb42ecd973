package parser

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"billex/internal/port"
)

// circuitState tracks rate-limit backoff for a single model provider.
type circuitState struct {
	mu      sync.RWMutex
	resetAt time.Time // zero value = closed (healthy)
}

func (c *circuitState) isOpenWithReset(now time.Time) (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resetAt, !c.resetAt.IsZero() && now.Before(c.resetAt)
}

func (c *circuitState) open(resetAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetAt = resetAt
}

// FallbackModel tries model providers in order, skipping those with open
// circuits. A provider that fails for any non-rate-limit reason is not
// retried; the next provider gets the same page call instead.
// It implements port.VisionModel.
type FallbackModel struct {
	models   []port.VisionModel
	circuits []*circuitState
	names    []string
}

// NewFallbackModel creates a FallbackModel from an ordered list of models and their names.
func NewFallbackModel(models []port.VisionModel, names []string) *FallbackModel {
	circuits := make([]*circuitState, len(models))
	for i := range circuits {
		circuits[i] = &circuitState{}
	}
	return &FallbackModel{
		models:   models,
		circuits: circuits,
		names:    names,
	}
}

func (f *FallbackModel) Generate(ctx context.Context, input port.GenerateInput) (*port.GenerateOutput, error) {
	now := time.Now()
	var lastErr error
	allRateLimited := true
	var earliestReset time.Time

	for i, m := range f.models {
		if resetAt, open := f.circuits[i].isOpenWithReset(now); open {
			log.Printf("parser.FallbackModel: skipping %s (circuit open until %s)", f.names[i], resetAt.Format(time.RFC3339))
			if earliestReset.IsZero() || resetAt.Before(earliestReset) {
				earliestReset = resetAt
			}
			continue
		}

		out, err := m.Generate(ctx, input)
		if err == nil {
			return out, nil
		}

		log.Printf("parser.FallbackModel: %s failed: %v", f.names[i], err)
		lastErr = err

		var rlErr *RateLimitError
		if errors.As(err, &rlErr) {
			resetAt := now.Add(rlErr.RetryAfter)
			f.circuits[i].open(resetAt)
			if earliestReset.IsZero() || resetAt.Before(earliestReset) {
				earliestReset = resetAt
			}
		} else {
			allRateLimited = false
		}
	}

	if lastErr == nil || allRateLimited {
		// Every provider was either skipped or rate limited.
		retryAfter := time.Until(earliestReset)
		if retryAfter < 0 {
			retryAfter = time.Second
		}
		return nil, NewRateLimitError("all", fmt.Errorf("all model providers rate limited"), int(retryAfter.Seconds()))
	}

	return nil, fmt.Errorf("all model providers failed: %w", lastErr)
}
