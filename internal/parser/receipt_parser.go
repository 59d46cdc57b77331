package parser

import (
	"regexp"
	"strconv"
	"strings"

	"ledger-engine/internal/domain"
)

var (
	receiptDateRe = regexp.MustCompile(`\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`)
	receiptTimeRe = regexp.MustCompile(`(?i)\d{1,2}:\d{2}(?::\d{2})?(?:\s*[AP]M)?`)
	receiptItemRe = regexp.MustCompile(`^(.+?)\s+([₱$]?\s*[\d,]+\.?\d{2})\s*$`)

	receiptTotalRes = map[string]*regexp.Regexp{
		"subtotal": regexp.MustCompile(`(?i)(?:Sub\s*)?Total[:\s]*[₱$]?\s*([\d,]+\.?\d{2})`),
		"tax":      regexp.MustCompile(`(?i)Tax[:\s]*[₱$]?\s*([\d,]+\.?\d{2})`),
		"total":    regexp.MustCompile(`(?i)(?:Grand\s*)?Total[:\s]*[₱$]?\s*([\d,]+\.?\d{2})`),
	}

	totalsLineKeywords = []string{"subtotal", "total", "tax", "change", "cash", "tender"}
)

// ReceiptParser extracts merchant, date/time, line items and totals from
// receipt text in a single pass.
type ReceiptParser struct{}

func NewReceiptParser() *ReceiptParser {
	return &ReceiptParser{}
}

func (p *ReceiptParser) Parse(text string) domain.ParsedReceipt {
	result := domain.ParsedReceipt{
		Totals: make(map[string]float64),
	}

	lines := strings.Split(text, "\n")

	// Merchant name: first of the leading lines that looks like a header
	// rather than an address or receipt number.
	limit := len(lines)
	if limit > 5 {
		limit = 5
	}
	for _, line := range lines[:limit] {
		line = strings.TrimSpace(line)
		if len(line) > 3 && !hasDigitPrefix(line, 10) {
			result.MerchantName = line
			break
		}
	}

	for _, line := range lines {
		if m := receiptDateRe.FindString(line); m != "" {
			result.Date = m
			break
		}
	}

	for _, line := range lines {
		if m := receiptTimeRe.FindString(line); m != "" {
			result.Time = m
			break
		}
	}

	for _, line := range lines {
		lowered := strings.ToLower(line)
		if containsAny(lowered, totalsLineKeywords) {
			continue
		}
		m := receiptItemRe.FindStringSubmatch(strings.TrimRight(line, " \t\r"))
		if m == nil {
			continue
		}
		description := strings.TrimSpace(m[1])
		if len(description) < 2 {
			continue
		}
		price, err := strconv.ParseFloat(cleanPriceToken(m[2]), 64)
		if err != nil || price <= 0 {
			continue
		}
		result.Items = append(result.Items, domain.ReceiptItem{
			Description: description,
			Price:       price,
		})
	}

	for key, re := range receiptTotalRes {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if v, err := strconv.ParseFloat(cleanPriceToken(m[1]), 64); err == nil {
			result.Totals[key] = v
		}
	}

	return result
}

func hasDigitPrefix(line string, n int) bool {
	for i, r := range line {
		if i >= n {
			break
		}
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}

func cleanPriceToken(token string) string {
	return strings.TrimSpace(strings.NewReplacer(",", "", "₱", "", "$", "").Replace(token))
}
