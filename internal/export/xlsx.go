package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"billex/internal/domain"
)

const (
	itemsSheet   = "Line Items"
	summarySheet = "Summary"
)

// WriteXLSX writes the extraction result as an Excel workbook: one sheet
// with all line items and one with the dedupe and token-usage summary.
func WriteXLSX(w io.Writer, res *domain.ExtractResult) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", itemsSheet); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	header := []interface{}{"Page No", "Page Type", "Item Name", "Quantity", "Rate", "Amount"}
	if err := f.SetSheetRow(itemsSheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	rowNo := 2
	for _, page := range res.PagewiseLineItems {
		for _, item := range page.BillItems {
			cell, err := excelize.CoordinatesToCellName(1, rowNo)
			if err != nil {
				return err
			}
			row := []interface{}{page.PageNo, page.PageType, item.ItemName, item.ItemQuantity, item.ItemRate, item.ItemAmount}
			if err := f.SetSheetRow(itemsSheet, cell, &row); err != nil {
				return fmt.Errorf("writing row %d: %w", rowNo, err)
			}
			rowNo++
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("creating summary sheet: %w", err)
	}
	summary := [][]interface{}{
		{"Pages", len(res.PagewiseLineItems)},
		{"Total Item Count (deduplicated)", res.TotalItemCount},
		{"Total Tokens", res.TokenUsage.TotalTokens},
		{"Input Tokens", res.TokenUsage.InputTokens},
		{"Output Tokens", res.TokenUsage.OutputTokens},
	}
	for i, row := range summary {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("writing summary row %d: %w", i+1, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
