package domain

// BillItem is a single billed line entry extracted from a page.
// All numeric fields are finite; items that fail numeric coercion
// are dropped during extraction and never reach this type.
type BillItem struct {
	ItemName     string  `json:"item_name"`
	ItemAmount   float64 `json:"item_amount"`
	ItemRate     float64 `json:"item_rate"`
	ItemQuantity float64 `json:"item_quantity"`
}

// PageLineItems holds the extracted items for one page, in page order.
type PageLineItems struct {
	PageNo    int        `json:"page_no"`
	PageType  string     `json:"page_type"`
	BillItems []BillItem `json:"bill_items"`
}

// TokenUsage accumulates model token counters across all page calls.
type TokenUsage struct {
	TotalTokens  int `json:"total_tokens"`
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// Add adds another usage sample into the running totals.
func (u *TokenUsage) Add(other TokenUsage) {
	u.TotalTokens += other.TotalTokens
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
}

// ExtractData is the client-facing payload of a successful extraction.
// TotalItemCount is the number of items after deduplication and may be
// smaller than the sum of all bill_items lengths; the per-page lists are
// intentionally not deduplicated.
type ExtractData struct {
	PagewiseLineItems []PageLineItems `json:"pagewise_line_items"`
	TotalItemCount    int             `json:"total_item_count"`
}

// ExtractResult is the full outcome of one pipeline run.
type ExtractResult struct {
	PagewiseLineItems []PageLineItems
	UniqueItems       []BillItem
	TotalItemCount    int
	TokenUsage        TokenUsage
}

// Data assembles the client-facing payload from the result.
func (r *ExtractResult) Data() ExtractData {
	return ExtractData{
		PagewiseLineItems: r.PagewiseLineItems,
		TotalItemCount:    r.TotalItemCount,
	}
}

// PageImage is one rasterized page of a source document, 1-indexed.
type PageImage struct {
	PageNo int
	MIME   string
	Data   []byte
	Width  int
	Height int
}

// ParsedPageData is the normalized result of one page-level model call.
type ParsedPageData struct {
	PageType string
	Items    []BillItem
}
