package service

import (
	"context"
	"log"
	"sync"

	"billex/internal/dedupe"
	"billex/internal/domain"
	"billex/internal/port"
)

// ExtractService runs the full extraction pipeline for one document.
type ExtractService interface {
	ExtractFromURL(ctx context.Context, rawURL string) (*domain.ExtractResult, error)
	ExtractFromBytes(ctx context.Context, data []byte, sourceHint string) (*domain.ExtractResult, error)
}

// ExtractConfig holds pipeline settings.
type ExtractConfig struct {
	PageConcurrency int
	Dedupe          dedupe.Config
}

type extractService struct {
	fetcher    port.DocumentFetcher
	rasterizer port.Rasterizer
	pages      port.PageExtractor
	cfg        ExtractConfig
}

// NewExtractService creates an ExtractService.
func NewExtractService(fetcher port.DocumentFetcher, rasterizer port.Rasterizer, pages port.PageExtractor, cfg ExtractConfig) ExtractService {
	if cfg.PageConcurrency <= 0 {
		cfg.PageConcurrency = 1
	}
	// Only a fully zero policy means unset; an explicit zero threshold
	// (amount-only dedupe) is a valid configuration.
	if cfg.Dedupe == (dedupe.Config{}) {
		cfg.Dedupe = dedupe.DefaultConfig()
	}
	return &extractService{
		fetcher:    fetcher,
		rasterizer: rasterizer,
		pages:      pages,
		cfg:        cfg,
	}
}

func (s *extractService) ExtractFromURL(ctx context.Context, rawURL string) (*domain.ExtractResult, error) {
	data, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return s.ExtractFromBytes(ctx, data, rawURL)
}

func (s *extractService) ExtractFromBytes(ctx context.Context, data []byte, sourceHint string) (*domain.ExtractResult, error) {
	pages, err := s.rasterizer.Rasterize(ctx, data, sourceHint)
	if err != nil {
		return nil, err
	}

	type pageResult struct {
		parsed *domain.ParsedPageData
		usage  domain.TokenUsage
		err    error
	}

	// Pages are independent units of work; fan out with bounded concurrency
	// and accumulate into a pre-sized slice so page order is preserved.
	results := make([]pageResult, len(pages))
	sem := make(chan struct{}, s.cfg.PageConcurrency)
	var wg sync.WaitGroup

	for i := range pages {
		sem <- struct{}{} // acquire
		wg.Add(1)
		go func(i int, page domain.PageImage) {
			defer wg.Done()
			defer func() { <-sem }() // release

			parsed, usage, err := s.pages.Extract(ctx, page)
			results[i] = pageResult{parsed: parsed, usage: usage, err: err}
		}(i, pages[i])
	}
	wg.Wait()

	// A single unparsable page fails the whole request; no partial results.
	// Report the lowest-numbered failing page for deterministic errors.
	for i := range results {
		if results[i].err != nil {
			log.Printf("extractService: page %d failed: %v", pages[i].PageNo, results[i].err)
			return nil, results[i].err
		}
	}

	res := &domain.ExtractResult{
		PagewiseLineItems: make([]domain.PageLineItems, 0, len(pages)),
	}
	var allItems []domain.BillItem

	for i := range results {
		parsed := results[i].parsed
		res.TokenUsage.Add(results[i].usage)
		res.PagewiseLineItems = append(res.PagewiseLineItems, domain.PageLineItems{
			PageNo:    pages[i].PageNo,
			PageType:  parsed.PageType,
			BillItems: parsed.Items,
		})
		allItems = append(allItems, parsed.Items...)
	}

	res.UniqueItems = dedupe.Items(allItems, s.cfg.Dedupe)
	res.TotalItemCount = len(res.UniqueItems)

	log.Printf("extractService: %d pages, %d items (%d after dedupe), %d tokens",
		len(pages), len(allItems), res.TotalItemCount, res.TokenUsage.TotalTokens)

	return res, nil
}
