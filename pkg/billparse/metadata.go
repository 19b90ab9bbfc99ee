package billparse

import (
	"regexp"
	"strconv"
	"strings"
)

// amount is the shared tail of the label-anchored metadata patterns: any
// run of non-digits (currency markers, colons, spaces) followed by a
// number with up to two decimals.
const amount = `[^0-9\n]*(\d+(?:\.\d{1,2})?)`

var (
	merchantDigitRE = regexp.MustCompile(`\d`)

	billNumberRE = regexp.MustCompile(`(?i)\b(?:bill|invoice|receipt)\s*(?:no|number|#)?\s*[:.]?\s*([A-Za-z0-9-]*\d[A-Za-z0-9-]*)`)

	numericDateRE = regexp.MustCompile(`\b(\d{1,2}[-/]\d{1,2}[-/]\d{2,4})\b`)
	wordDateRE    = regexp.MustCompile(`(?i)\b(\d{1,2}\s+(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\s+\d{2,4})\b`)

	subtotalRE = regexp.MustCompile(`(?i)\bsub\s*total\b` + amount)
	// The tax label is often followed by a rate ("CGST 2.5% ₹12.50"); the
	// optional percentage group skips it so the amount is captured.
	taxRE      = regexp.MustCompile(`(?i)\b(?:cgst|sgst|gst|tax)\b[^0-9\n]*(?:\d+(?:\.\d+)?\s*%)?` + amount)
	discountRE = regexp.MustCompile(`(?i)\bdiscount\b` + amount)
	totalRE    = regexp.MustCompile(`(?i)\b(?:grand\s*total|net\s*amount|total)\b` + amount)

	subtotalLabelRE = regexp.MustCompile(`(?i)\bsub\s*total\b|subtotal`)
)

// extractMetadata pulls bill-level fields out of the full text block and
// its ordered lines. Each field is independent; a miss leaves the field
// nil rather than aborting or defaulting.
func extractMetadata(text string, lines []string) BillMetadata {
	var md BillMetadata
	md.MerchantName = merchantName(lines)

	if m := billNumberRE.FindStringSubmatch(text); m != nil {
		md.BillNumber = strPtr(m[1])
	}
	if m := numericDateRE.FindStringSubmatch(text); m != nil {
		md.Date = strPtr(m[1])
	} else if m := wordDateRE.FindStringSubmatch(text); m != nil {
		md.Date = strPtr(m[1])
	}

	md.Subtotal = findAmount(lines, subtotalRE, nil)
	md.Tax = findAmount(lines, taxRE, nil)
	md.Discount = findAmount(lines, discountRE, nil)
	// "Subtotal" contains "total", so subtotal lines are excluded when
	// looking for the total proper.
	md.Total = findAmount(lines, totalRE, subtotalLabelRE)
	return md
}

// merchantName picks the first of the first five lines that looks like a
// shop name: between 4 and 49 characters and free of digits.
func merchantName(lines []string) *string {
	limit := len(lines)
	if limit > 5 {
		limit = 5
	}
	for _, line := range lines[:limit] {
		if len(line) < 4 || len(line) > 49 {
			continue
		}
		if merchantDigitRE.MatchString(line) {
			continue
		}
		return strPtr(line)
	}
	return nil
}

// findAmount scans the ordered lines for the first one matching the
// label-anchored pattern (skipping lines matched by exclude) and returns
// its captured amount.
func findAmount(lines []string, re *regexp.Regexp, exclude *regexp.Regexp) *float64 {
	for _, line := range lines {
		if exclude != nil && exclude.MatchString(line) {
			continue
		}
		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(m[1]), 64)
		if err != nil {
			continue
		}
		return &v
	}
	return nil
}

func strPtr(s string) *string { return &s }
