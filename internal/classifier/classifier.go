package classifier

import (
	"regexp"
	"strings"

	"ledger-engine/internal/domain"
)

// bankKeywords and receiptKeywords score a document toward one type. Keyword
// hits are counted as plain substring matches on the lowercased text.
var bankKeywords = []string{
	"statement", "account", "balance", "bank", "beginning balance",
	"ending balance", "deposits", "withdrawals", "statement period",
	"account number", "previous balance", "current balance",
}

var receiptKeywords = []string{
	"receipt", "total", "subtotal", "tax", "change", "cash",
	"thank you", "items", "qty", "price", "amount due",
	"paid", "customer copy", "merchant copy",
}

var (
	// masked account like ****1234
	maskedAccountRe = regexp.MustCompile(`\*{2,}\d{2,4}`)
	accountWordRe   = regexp.MustCompile(`\b(account number|account no|account|acct|a/c)\b`)
	// currency-symbol-prefixed decimal amounts
	currencyAmountRe = regexp.MustCompile(`[₱$]\s*[\d,]+\.\d{2}`)
	// generic thousands-grouped decimal tokens
	currencyLikeRe = regexp.MustCompile(`\b\d{1,3}(?:,\d{3})*\.\d{2}\b`)
)

// Classify decides whether extracted text looks like a bank statement or a
// receipt. Pure function of the text.
func Classify(text string) domain.DocumentType {
	if text == "" {
		return domain.UnknownDoc
	}
	lowered := strings.ToLower(text)

	// Strong bank signals short-circuit the scoring.
	if strings.Contains(lowered, "statement") {
		return domain.BankStatement
	}
	if maskedAccountRe.MatchString(text) {
		return domain.BankStatement
	}
	if accountWordRe.MatchString(lowered) {
		return domain.BankStatement
	}

	bankScore := countKeywords(lowered, bankKeywords)
	receiptScore := countKeywords(lowered, receiptKeywords)

	currencyAmounts := len(currencyAmountRe.FindAllString(text, -1))
	currencyLikeNumbers := len(currencyLikeRe.FindAllString(text, -1))

	receiptDensity := receiptScore
	if strings.Contains(lowered, "total") {
		receiptDensity++
	}
	if currencyAmounts >= 1 {
		receiptDensity++
	}

	// Receipts need stronger evidence than a single keyword.
	if receiptDensity >= 2 && receiptScore >= bankScore {
		return domain.Receipt
	}
	if bankScore >= 1 && bankScore >= receiptScore {
		return domain.BankStatement
	}
	if currencyLikeNumbers >= 3 && receiptScore >= 1 {
		return domain.Receipt
	}

	return domain.UnknownDoc
}

func countKeywords(lowered string, keywords []string) int {
	count := 0
	for _, kw := range keywords {
		if strings.Contains(lowered, kw) {
			count++
		}
	}
	return count
}
