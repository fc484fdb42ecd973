package main

import (
	"fmt"
	"log"

	"billex/internal/config"
	"billex/internal/dedupe"
	"billex/internal/fetch"
	"billex/internal/handler"
	"billex/internal/parser"
	"billex/internal/parser/gemini"
	"billex/internal/parser/openai"
	"billex/internal/port"
	"billex/internal/raster"
	"billex/internal/router"
	"billex/internal/service"
	s3storage "billex/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	model, err := buildModel(cfg)
	if err != nil {
		return fmt.Errorf("failed to build model: %w", err)
	}

	fetcher, err := buildFetcher(cfg)
	if err != nil {
		return fmt.Errorf("failed to build fetcher: %w", err)
	}

	rasterizer := raster.New(cfg.Raster.JPEGQuality)
	pageExtractor := parser.NewPageExtractor(model)

	extractSvc := service.NewExtractService(fetcher, rasterizer, pageExtractor, service.ExtractConfig{
		PageConcurrency: cfg.Extract.PageConcurrency,
		Dedupe: dedupe.Config{
			NameThreshold:   cfg.Extract.NameThreshold,
			AmountTolerance: cfg.Extract.AmountTolerance,
		},
	})

	extractH := handler.NewExtractHandler(extractSvc, cfg.Fetch.MaxSizeMB)
	healthH := handler.NewHealthHandler(cfg.Model.Primary.APIKey != "")

	r := router.Setup(cfg, extractH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

// buildModel wires the configured providers into a single VisionModel,
// with rate-limit fallback when a secondary provider is configured.
func buildModel(cfg *config.Config) (port.VisionModel, error) {
	parser.RegisterProvider("gemini", func(c *config.ModelProviderConfig) (port.VisionModel, error) {
		return gemini.NewModel(c), nil
	})
	parser.RegisterProvider("openai", func(c *config.ModelProviderConfig) (port.VisionModel, error) {
		return openai.NewModel(c), nil
	})

	primary, err := parser.NewModel(cfg.Model.PrimaryConfig())
	if err != nil {
		return nil, err
	}

	secondaryCfg := cfg.Model.SecondaryConfig()
	if secondaryCfg == nil {
		return primary, nil
	}
	secondary, err := parser.NewModel(secondaryCfg)
	if err != nil {
		return nil, err
	}
	return parser.NewFallbackModel(
		[]port.VisionModel{primary, secondary},
		[]string{cfg.Model.Primary.Provider, secondaryCfg.Provider},
	), nil
}

// buildFetcher wires http/https downloads plus s3:// object fetches
// behind one scheme dispatcher.
func buildFetcher(cfg *config.Config) (port.DocumentFetcher, error) {
	httpFetcher := fetch.NewHTTPFetcher(&cfg.Fetch)

	s3Fetcher, err := s3storage.NewS3Fetcher(&cfg.S3)
	if err != nil {
		return nil, err
	}

	d := fetch.NewDispatcher()
	d.Register("http", httpFetcher)
	d.Register("https", httpFetcher)
	d.Register("s3", s3Fetcher)
	return d, nil
}
