package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"billex/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"Page No",
	"Page Type",
	"Item Name",
	"Quantity",
	"Rate",
	"Amount",
}

// Writer wraps csv.Writer for exporting extraction results as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteResult writes one row per bill item, in page order.
func (w *Writer) WriteResult(res *domain.ExtractResult) error {
	for _, page := range res.PagewiseLineItems {
		for _, item := range page.BillItems {
			row := []string{
				strconv.Itoa(page.PageNo),
				page.PageType,
				item.ItemName,
				formatFloat(item.ItemQuantity),
				formatFloat(item.ItemRate),
				formatFloat(item.ItemAmount),
			}
			if err := w.csv.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// WriteCSV writes a complete CSV document (BOM, header, rows) to w.
func WriteCSV(w io.Writer, res *domain.ExtractResult) error {
	if _, err := w.Write(BOM); err != nil {
		return err
	}
	cw := NewWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return err
	}
	if err := cw.WriteResult(res); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
