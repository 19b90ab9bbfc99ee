package billparse

import (
	"regexp"
	"strconv"
	"strings"
)

// excludePatterns reject lines that are clearly not purchasable items:
// totals, tax labels, bill/invoice identifiers, contact details, courtesy
// messages and long numeric or alphanumeric IDs.
var excludePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)total`),
	regexp.MustCompile(`(?i)subtotal`),
	regexp.MustCompile(`(?i)grand\s*total`),
	regexp.MustCompile(`(?i)gst`),
	regexp.MustCompile(`(?i)cgst`),
	regexp.MustCompile(`(?i)sgst`),
	regexp.MustCompile(`(?i)tax`),
	regexp.MustCompile(`(?i)service\s*charge`),
	regexp.MustCompile(`(?i)discount`),
	regexp.MustCompile(`(?i)bill\s*no`),
	regexp.MustCompile(`(?i)invoice`),
	regexp.MustCompile(`(?i)receipt\s*no`),
	regexp.MustCompile(`(?i)date`),
	regexp.MustCompile(`(?i)time`),
	regexp.MustCompile(`(?i)phone`),
	regexp.MustCompile(`(?i)mobile`),
	regexp.MustCompile(`(?i)address`),
	regexp.MustCompile(`(?i)thank\s*you`),
	regexp.MustCompile(`(?i)visit\s*again`),
	regexp.MustCompile(`^\d{10,}`),      // long digit run: phone or tax ID
	regexp.MustCompile(`^[A-Z0-9]{15,}`), // long alphanumeric ID
}

// isLikelyBillItem reports whether a line is a candidate item line.
func isLikelyBillItem(line string) bool {
	for _, re := range excludePatterns {
		if re.MatchString(line) {
			return false
		}
	}
	return true
}

// quantityPatterns are tried in priority order; the first hit wins and the
// matched substring is removed before price extraction.
var quantityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+)\s*x`),           // "2x"
	regexp.MustCompile(`(?i)x\s*(\d+)`),           // "x2"
	regexp.MustCompile(`\((\d+)\)`),               // "(2)"
	regexp.MustCompile(`(?i)qty\s*[:.]?\s*(\d+)`), // "Qty: 2"
	regexp.MustCompile(`(?i)(\d+)\s*pc`),          // "2 PC"
	regexp.MustCompile(`(?i)(\d+)\s*nos`),         // "2 nos"
	regexp.MustCompile(`\*\s*(\d+)`),              // "*2"
}

// extractQuantity pulls a quantity marker off the line. Defaults to 1
// when no pattern matches, returning the line unchanged.
func extractQuantity(line string) (int, string) {
	for _, re := range quantityPatterns {
		loc := re.FindStringSubmatchIndex(line)
		if loc == nil {
			continue
		}
		qty, err := strconv.Atoi(line[loc[2]:loc[3]])
		if err != nil || qty <= 0 {
			continue
		}
		return qty, strings.TrimSpace(cutMatch(line, loc[0], loc[1]))
	}
	return 1, line
}

// pricePatterns are tried in priority order. The bare trailing number
// pattern is last and is a known source of false positives (a trailing
// count can be read as a price); it is kept for compatibility with how
// receipts commonly omit currency markers.
var pricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`₹\s*(\d+(?:\.\d{2})?)`),        // "₹220" / "₹220.00"
	regexp.MustCompile(`(?i)rs\.?\s*(\d+(?:\.\d{2})?)`), // "Rs. 220"
	regexp.MustCompile(`(?i)inr\s*(\d+(?:\.\d{2})?)`),   // "INR 220"
	regexp.MustCompile(`(\d+(?:\.\d{2})?)\s*/-`),        // "220/-"
	regexp.MustCompile(`(\d+(?:\.\d{2})?)\s*=`),         // "220="
	regexp.MustCompile(`=\s*(\d+(?:\.\d{2})?)`),         // "=220"
	regexp.MustCompile(`(\d+(?:\.\d{2})?)$`),            // bare trailing number
}

// maxPlausiblePrice bounds the open interval of accepted prices.
const maxPlausiblePrice = 10000

// extractPrice pulls a price off the line. A pattern only counts as a
// match when the parsed value lies in (0, maxPlausiblePrice); otherwise
// the next pattern is tried. ok=false means the line carries no price and
// is not a parseable item.
func extractPrice(line string) (price float64, residual string, ok bool) {
	for _, re := range pricePatterns {
		loc := re.FindStringSubmatchIndex(line)
		if loc == nil {
			continue
		}
		v, err := strconv.ParseFloat(line[loc[2]:loc[3]], 64)
		if err != nil || v <= 0 || v >= maxPlausiblePrice {
			continue
		}
		return v, strings.TrimSpace(cutMatch(line, loc[0], loc[1])), true
	}
	return 0, "", false
}

// cutMatch removes the [start,end) span from s.
func cutMatch(s string, start, end int) string {
	return s[:start] + s[end:]
}
