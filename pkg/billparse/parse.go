package billparse

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"billscan/pkg/vocab"
)

var (
	dotRunRE = regexp.MustCompile(`[.…]+`)
	spacesRE = regexp.MustCompile(`\s+`)
)

// Confidence thresholds for adopting or suggesting a vocabulary match,
// and the default for names the vocabulary does not know.
const (
	adoptConfidence   = 80
	suggestConfidence = 60
	defaultConfidence = 85
)

// Parse splits raw OCR text into lines and extracts items and bill
// metadata. It never returns an error: unparseable lines are skipped and
// missing metadata fields stay unset. Zero items is a valid result.
func Parse(rawText string) *ParseResult {
	lines := splitLines(rawText)

	items := []ExtractedItem{}
	for _, line := range lines {
		if item, ok := parseItemLine(line); ok {
			items = append(items, item)
		}
	}

	return &ParseResult{
		Items:    items,
		Metadata: extractMetadata(rawText, lines),
	}
}

// parseItemLine runs the ordered extraction pipeline on one candidate
// line: classification, quantity, price, name cleanup, vocabulary
// resolution. ok=false means the line is not a parseable item.
func parseItemLine(line string) (ExtractedItem, bool) {
	if !isLikelyBillItem(line) {
		return ExtractedItem{}, false
	}

	quantity, afterQty := extractQuantity(line)

	price, afterPrice, ok := extractPrice(afterQty)
	if !ok {
		return ExtractedItem{}, false
	}

	name := cleanName(afterPrice)
	if utf8.RuneCountInString(name) < 3 {
		return ExtractedItem{}, false
	}

	confidence := defaultConfidence
	suggestion := ""
	if m, found := vocab.FindClosestMatch(name, vocab.DefaultMaxDistance); found {
		switch {
		case m.Confidence > adoptConfidence:
			name = m.Name
			confidence = m.Confidence
		case m.Confidence > suggestConfidence:
			suggestion = m.Name
			confidence = m.Confidence
		}
	}

	return ExtractedItem{
		ID:         uuid.NewString(),
		Name:       name,
		Price:      price,
		Quantity:   quantity,
		Confidence: confidence,
		RawText:    line,
		Suggestion: suggestion,
	}, true
}

// cleanName corrects known OCR misreads, collapses dot/ellipsis leader
// runs and whitespace, and trims the result.
func cleanName(s string) string {
	s = vocab.CorrectOCRErrors(s)
	s = dotRunRE.ReplaceAllString(s, " ")
	s = spacesRE.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// splitLines returns the non-empty trimmed lines of text in order.
func splitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
