package parser

import (
	"context"
	"fmt"
	"log"
	"math"
	"strconv"

	"billex/internal/domain"
	"billex/internal/port"
)

// PageExtractor drives one vision-model call per page image and
// normalizes the free-form response into typed line items.
// It implements port.PageExtractor.
type PageExtractor struct {
	model port.VisionModel
}

// NewPageExtractor creates a PageExtractor backed by the given model.
func NewPageExtractor(model port.VisionModel) *PageExtractor {
	return &PageExtractor{model: model}
}

func (e *PageExtractor) Extract(ctx context.Context, page domain.PageImage) (*domain.ParsedPageData, domain.TokenUsage, error) {
	out, err := e.model.Generate(ctx, port.GenerateInput{
		Prompt:    BuildLineItemPrompt(),
		ImageData: page.Data,
		MIMEType:  page.MIME,
	})
	if err != nil {
		return nil, domain.TokenUsage{}, fmt.Errorf("model call for page %d: %w", page.PageNo, err)
	}

	obj, err := ExtractJSONObject(out.Text)
	if err != nil {
		return nil, domain.TokenUsage{}, fmt.Errorf("page %d: %w", page.PageNo, err)
	}

	parsed := &domain.ParsedPageData{
		PageType: string(domain.PageTypeBillDetail),
		Items:    []domain.BillItem{},
	}
	if pt, ok := obj["page_type"].(string); ok && pt != "" {
		parsed.PageType = pt
	}

	rawItems, _ := obj["items"].([]interface{})
	for i, raw := range rawItems {
		item, ok := coerceItem(raw)
		if !ok {
			// Malformed single items are non-fatal; drop and keep going.
			log.Printf("pageExtractor: dropping malformed item %d on page %d", i, page.PageNo)
			continue
		}
		parsed.Items = append(parsed.Items, item)
	}

	return parsed, out.Usage, nil
}

// coerceItem converts one raw item object into a BillItem. The required
// fields are item_name plus numeric amount, rate and quantity; numbers
// may arrive as JSON numbers or numeric strings.
func coerceItem(raw interface{}) (domain.BillItem, bool) {
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return domain.BillItem{}, false
	}

	name, ok := obj["item_name"].(string)
	if !ok {
		return domain.BillItem{}, false
	}

	amount, ok := toFloat(obj["amount"])
	if !ok {
		return domain.BillItem{}, false
	}
	rate, ok := toFloat(obj["rate"])
	if !ok {
		return domain.BillItem{}, false
	}
	quantity, ok := toFloat(obj["quantity"])
	if !ok {
		return domain.BillItem{}, false
	}

	return domain.BillItem{
		ItemName:     name,
		ItemAmount:   amount,
		ItemRate:     rate,
		ItemQuantity: quantity,
	}, true
}

func toFloat(v interface{}) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case string:
		parsed, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
