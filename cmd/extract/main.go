// Command extract runs the bill extraction pipeline once, against a local
// file or a URL, and writes the result to stdout as JSON or CSV.
// Usage: go run ./cmd/extract -file bill.pdf
//        go run ./cmd/extract -url https://example.com/bill.pdf -format csv
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"billex/internal/config"
	"billex/internal/dedupe"
	"billex/internal/domain"
	"billex/internal/export"
	"billex/internal/fetch"
	"billex/internal/parser"
	"billex/internal/parser/gemini"
	"billex/internal/parser/openai"
	"billex/internal/port"
	"billex/internal/raster"
	"billex/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	filePath := flag.String("file", "", "path to a local PDF or image")
	rawURL := flag.String("url", "", "document URL (http or https)")
	format := flag.String("format", "json", "output format: json or csv")
	flag.Parse()

	if (*filePath == "") == (*rawURL == "") {
		return fmt.Errorf("exactly one of -file or -url is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	model, err := buildModel(cfg)
	if err != nil {
		return fmt.Errorf("building model: %w", err)
	}

	svc := service.NewExtractService(
		fetch.NewHTTPFetcher(&cfg.Fetch),
		raster.New(cfg.Raster.JPEGQuality),
		parser.NewPageExtractor(model),
		service.ExtractConfig{
			PageConcurrency: cfg.Extract.PageConcurrency,
			Dedupe: dedupe.Config{
				NameThreshold:   cfg.Extract.NameThreshold,
				AmountTolerance: cfg.Extract.AmountTolerance,
			},
		},
	)

	ctx := context.Background()
	var res *domain.ExtractResult
	if *filePath != "" {
		data, err := os.ReadFile(*filePath)
		if err != nil {
			return fmt.Errorf("reading %s: %w", *filePath, err)
		}
		res, err = svc.ExtractFromBytes(ctx, data, *filePath)
		if err != nil {
			return err
		}
	} else {
		res, err = svc.ExtractFromURL(ctx, *rawURL)
		if err != nil {
			return err
		}
	}

	switch *format {
	case "csv":
		return export.WriteCSV(os.Stdout, res)
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]interface{}{
			"token_usage":         res.TokenUsage,
			"pagewise_line_items": res.PagewiseLineItems,
			"total_item_count":    res.TotalItemCount,
		})
	default:
		return fmt.Errorf("unknown format %q", *format)
	}
}

func buildModel(cfg *config.Config) (port.VisionModel, error) {
	parser.RegisterProvider("gemini", func(c *config.ModelProviderConfig) (port.VisionModel, error) {
		return gemini.NewModel(c), nil
	})
	parser.RegisterProvider("openai", func(c *config.ModelProviderConfig) (port.VisionModel, error) {
		return openai.NewModel(c), nil
	})
	return parser.NewModel(cfg.Model.PrimaryConfig())
}
