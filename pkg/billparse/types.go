// Package billparse turns the raw text block produced by OCR on a
// restaurant receipt into structured line items and bill-level metadata.
// Parsing is heuristic and lossy on purpose: lines that cannot be read as
// items are skipped, metadata fields that do not match are omitted, and
// the parser never fails outright.
package billparse

// ExtractedItem is one successfully parsed receipt line.
type ExtractedItem struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
	Confidence int     `json:"confidence"`
	// RawText keeps the original trimmed source line for audit/debugging.
	RawText string `json:"rawText,omitempty"`
	// Suggestion carries a near-miss vocabulary match the caller may offer
	// to the user without overriding the extracted name.
	Suggestion string `json:"suggestion,omitempty"`
}

// BillMetadata holds bill-level fields. Every field is optional: a nil
// pointer means the corresponding pattern did not match anywhere in the
// text. Fields are never defaulted to zero.
type BillMetadata struct {
	MerchantName *string  `json:"merchantName,omitempty"`
	BillNumber   *string  `json:"billNumber,omitempty"`
	Date         *string  `json:"date,omitempty"`
	Subtotal     *float64 `json:"subtotal,omitempty"`
	Tax          *float64 `json:"tax,omitempty"`
	Discount     *float64 `json:"discount,omitempty"`
	Total        *float64 `json:"total,omitempty"`
}

// ParseResult is the sole output of Parse: the ordered items plus
// whatever metadata was found. An empty Items slice is a valid result.
type ParseResult struct {
	Items    []ExtractedItem `json:"items"`
	Metadata BillMetadata    `json:"metadata"`
}
