package parser

// BuildLineItemPrompt returns the extraction prompt sent with every page image.
func BuildLineItemPrompt() string {
	return `Extract all line items from this medical invoice page.

Return STRICT JSON ONLY with this structure:
{
  "page_type": "Bill Detail | Final Bill | Pharmacy",
  "items": [
    {
      "item_name": "string",
      "quantity": 0,
      "rate": 0,
      "amount": 0
    }
  ]
}

Rules:
- numbers must be raw floats
- do not include totals or subtotals as items
- respond with pure JSON and nothing else, no markdown formatting, no code fences`
}
