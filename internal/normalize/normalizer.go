package normalize

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"ledger-engine/internal/categorize"
	"ledger-engine/internal/domain"
)

// dateFormats tried in order when normalizing a raw date token. Numeric
// month-first formats come before day-first, matching how ambiguous dates
// were resolved upstream of this layer historically.
var dateFormats = []string{
	"1/2/2006",
	"1/2/06",
	"2/1/2006",
	"2/1/06",
	"2006/1/2",
	"2 Jan 2006",
	"2 Jan 06",
	"2 January 2006",
}

var isoDateRe = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// Normalizer converts parser output into canonical transactions: ISO dates
// where possible, unsigned two-decimal amounts, an explicit income/expense
// type, and a category that is never empty.
type Normalizer struct {
	categorizer categorize.Categorizer
}

func NewNormalizer(categorizer categorize.Categorizer) *Normalizer {
	return &Normalizer{categorizer: categorizer}
}

// Date converts common date formats to YYYY-MM-DD, returning the input
// unchanged when no format matches.
func (n *Normalizer) Date(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	folded := strings.NewReplacer(".", "/", "-", "/").Replace(s)
	for _, format := range dateFormats {
		if t, err := time.Parse(format, folded); err == nil {
			return t.Format("2006-01-02")
		}
	}

	if m := isoDateRe.FindString(s); m != "" {
		return m
	}
	return s
}

// Statement converts signed statement transactions into the canonical
// schema. The sign decides the type; positive amounts are income.
func (n *Normalizer) Statement(stmt domain.ParsedStatement, sourceFile string) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(stmt.Transactions))
	for _, tx := range stmt.Transactions {
		txType := domain.Expense
		if tx.Amount > 0 {
			txType = domain.Income
		}

		category := tx.Category
		if category == "" {
			category = n.categorizer.Categorize(tx.Description)
		}
		if category == "" {
			category = domain.DefaultCategory
		}

		out = append(out, domain.Transaction{
			Date:        n.Date(tx.Date),
			Description: strings.TrimSpace(tx.Description),
			Amount:      round2(absFloat(tx.Amount)),
			Type:        txType,
			Category:    category,
			SourceFile:  sourceFile,
		})
	}
	return out
}

var refundKeywords = []string{"refund", "credit", "reversal"}

// Receipt converts receipt line items into canonical transactions. Items are
// expenses unless the description marks a refund or reversal.
func (n *Normalizer) Receipt(receipt domain.ParsedReceipt, sourceFile string) []domain.Transaction {
	date := n.Date(receipt.Date)

	out := make([]domain.Transaction, 0, len(receipt.Items))
	for _, item := range receipt.Items {
		description := strings.TrimSpace(item.Description)
		lowered := strings.ToLower(description)

		txType := domain.Expense
		for _, kw := range refundKeywords {
			if strings.Contains(lowered, kw) {
				txType = domain.Income
				break
			}
		}

		category := n.categorizer.Categorize(description)
		if category == "" {
			category = domain.DefaultCategory
		}

		out = append(out, domain.Transaction{
			Date:        date,
			Description: description,
			Amount:      round2(item.Price),
			Type:        txType,
			Category:    category,
			SourceFile:  sourceFile,
		})
	}
	return out
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
