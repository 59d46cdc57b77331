package domain

// TransactionType represents the direction of a canonical transaction.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// DefaultCategory is used whenever no categorization rule matches.
const DefaultCategory = "uncategorized"

// Transaction is the canonical, normalized record consumed by the analytics
// engine and returned on the wire. Amount is unsigned; direction is carried
// by Type.
type Transaction struct {
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Amount      float64         `json:"amount"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	SourceFile  string          `json:"sourceFile,omitempty"`
}

// SignedAmount returns the amount with direction encoded in the sign:
// positive for income, negative for expenses. When Type is unset the raw
// amount sign is kept as-is.
func (t Transaction) SignedAmount() float64 {
	switch t.Type {
	case Expense:
		return -abs(t.Amount)
	case Income:
		return abs(t.Amount)
	default:
		return t.Amount
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// StatementTransaction is the raw statement parser output. Amount is signed:
// negative for outflows, positive for inflows.
type StatementTransaction struct {
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
}

// PaymentSummary aggregates a statement's balances and flows. The parser
// guarantees ClosingBalance == round(OpeningBalance + sum of signed
// transaction amounts, 2).
type PaymentSummary struct {
	OpeningBalance float64 `json:"openingBalance"`
	PaymentsIn     float64 `json:"paymentsIn"`
	PaymentsOut    float64 `json:"paymentsOut"`
	ClosingBalance float64 `json:"closingBalance"`
}

// ParsedStatement is the structured result of parsing bank statement text.
// Transactions are kept in best-effort date-ascending order; entries whose
// dates cannot be parsed sort first.
type ParsedStatement struct {
	Bank           string                 `json:"bank"`
	Currency       string                 `json:"currency"`
	PaymentSummary PaymentSummary         `json:"payment_summary"`
	Transactions   []StatementTransaction `json:"transactions"`
}

// ReceiptItem is a single purchased line item. Price is always positive.
type ReceiptItem struct {
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// ParsedReceipt is the structured result of parsing receipt text. Totals
// holds whichever of "subtotal", "tax" and "total" were found.
type ParsedReceipt struct {
	MerchantName string             `json:"merchant_name,omitempty"`
	Date         string             `json:"date,omitempty"`
	Time         string             `json:"time,omitempty"`
	Items        []ReceiptItem      `json:"items"`
	Totals       map[string]float64 `json:"totals"`
}
