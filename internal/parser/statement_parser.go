package parser

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"ledger-engine/internal/categorize"
	"ledger-engine/internal/domain"
)

const (
	// lookaheadLimit caps how many continuation lines a single transaction's
	// description may span before the amount must appear.
	lookaheadLimit = 6
	// extendedScanLimit caps the wider amount search, measured in lines from
	// the transaction's starting line.
	extendedScanLimit = 10

	defaultBank     = "HSBC_UK"
	defaultCurrency = "GBP"
)

var monthAlt = `(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*`

var (
	// A transaction starts at a line beginning with a date token: numeric
	// DD/MM/YYYY-family dates or "DD Mon", "DD Mon YY", "DD Month 2024".
	dateStartRe = regexp.MustCompile(`(?i)^(?:\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4}|\d{1,2}\s+` + monthAlt + `(?:\s+\d{2,4})?)`)

	// Decimal-looking token: optional currency symbol, optional sign,
	// thousands grouping, 1-2 decimal digits.
	amountRe = regexp.MustCompile(`[£$₱]?\s*-?\d{1,3}(?:,\d{3})*\.\d{1,2}`)

	// Opening balance templates, tried in order; first match wins.
	openingBalanceRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Opening\s+Balance\s*[₱£$]?\s*([-\d,]+(?:\.\d{1,2})?)`),
		regexp.MustCompile(`(?i)Balance\s+B/F\s*[₱£$]?\s*([-\d,]+(?:\.\d{1,2})?)`),
		regexp.MustCompile(`(?i)Previous\s+Balance\s*[₱£$]?\s*([-\d,]+(?:\.\d{1,2})?)`),
		regexp.MustCompile(`(?i)Opening\s+Balance[:\s]*([-\d,]+(?:\.\d{1,2})?)`),
	}

	sortDateRe   = regexp.MustCompile(`^(\d{1,2})\s+([A-Za-z]{3,9})(?:\s+(\d{2,4}))?`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	monthNumbers = map[string]int{"Jan": 1, "Feb": 2, "Mar": 3, "Apr": 4, "May": 5, "Jun": 6, "Jul": 7, "Aug": 8, "Sep": 9, "Oct": 10, "Nov": 11, "Dec": 12}
)

var (
	debitKeywords      = []string{"debit", "payment to", "withdraw", "dra wn"}
	creditKeywords     = []string{"credit", "received", "deposit"}
	descDebitKeywords  = []string{"payment to", "debit", "withdraw", "paid", "dra wn"}
	descCreditKeywords = []string{"received", "credit", "deposit", "inward"}
)

// StatementParser reconstructs discrete transactions from noisy, multi-line
// statement text. Deterministic and pure given the text and the shared
// learned patterns behind its categorizer.
type StatementParser struct {
	categorizer categorize.Categorizer
	bank        string
	currency    string
}

func NewStatementParser(categorizer categorize.Categorizer) *StatementParser {
	return &StatementParser{
		categorizer: categorizer,
		bank:        defaultBank,
		currency:    defaultCurrency,
	}
}

// Parse walks the text line by line, detecting transaction boundaries by
// date prefixes, accumulating multi-line descriptions and locating each
// transaction's signed amount. Transactions without a resolvable amount are
// dropped rather than emitted incomplete.
func (p *StatementParser) Parse(text string) domain.ParsedStatement {
	lines := splitLines(text)

	openingBalance := extractOpeningBalance(text)
	balance := decimal.NewFromFloat(openingBalance)

	var transactions []domain.StatementTransaction

	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])

		dateToken := dateStartRe.FindString(line)
		if dateToken == "" {
			i++
			continue
		}

		remainder := strings.TrimSpace(line[len(dateToken):])

		var amount float64
		found := false

		// The starting line sometimes carries the amount itself. The matched
		// token is cut out of the remainder so it does not leak into the
		// description.
		if tokens := amountRe.FindAllString(line, -1); len(tokens) > 0 {
			token := tokens[len(tokens)-1]
			if v, ok := parseAmountToken(token); ok {
				amount = applyLineSign(v, strings.ToLower(line))
				found = true
				if idx := strings.LastIndex(remainder, token); idx >= 0 {
					remainder = strings.TrimSpace(remainder[:idx] + " " + remainder[idx+len(token):])
				}
			}
		}

		var parts []string
		if remainder != "" {
			parts = append(parts, remainder)
		}

		j := i + 1
		if !found {
			looked := 0
			for j < len(lines) && looked < lookaheadLimit {
				nxt := strings.TrimSpace(lines[j])
				if dateStartRe.MatchString(nxt) {
					// New transaction boundary; never consume it.
					break
				}

				tokens := amountRe.FindAllString(nxt, -1)
				if len(tokens) > 0 {
					token := tokens[len(tokens)-1]
					if v, ok := parseAmountToken(token); ok {
						amount = applyLookaheadSign(v, nxt, parts)
						found = true
					}
					if idx := strings.LastIndex(nxt, token); idx > 0 {
						if before := strings.TrimSpace(nxt[:idx]); before != "" {
							parts = append(parts, before)
						}
					}
					j++
					break
				}

				parts = append(parts, nxt)
				j++
				looked++
			}
		}

		// Wider net: any decimal token within the next few lines, still
		// stopping at the next transaction boundary.
		if !found {
			for k := j; k < len(lines) && k < i+extendedScanLimit; k++ {
				fallback := strings.TrimSpace(lines[k])
				if dateStartRe.MatchString(fallback) {
					break
				}
				tokens := amountRe.FindAllString(fallback, -1)
				if len(tokens) == 0 {
					continue
				}
				token := tokens[len(tokens)-1]
				v, ok := parseAmountToken(token)
				if !ok {
					continue
				}
				amount = applyLineSign(v, strings.ToLower(fallback))
				found = true
				if idx := strings.LastIndex(fallback, token); idx > 0 {
					if before := strings.TrimSpace(fallback[:idx]); before != "" {
						parts = append(parts, before)
					}
				}
				j = k + 1
				break
			}
		}

		if found {
			description := whitespaceRe.ReplaceAllString(strings.TrimSpace(strings.Join(parts, " ")), " ")
			transactions = append(transactions, domain.StatementTransaction{
				Date:        strings.TrimSpace(dateToken),
				Description: description,
				Amount:      amount,
				Category:    p.categorizer.Categorize(description),
			})
			balance = balance.Add(decimal.NewFromFloat(amount))
		}

		i = j
	}

	sortByDate(transactions)

	paymentsIn := decimal.Zero
	paymentsOut := decimal.Zero
	for _, tx := range transactions {
		if tx.Amount > 0 {
			paymentsIn = paymentsIn.Add(decimal.NewFromFloat(tx.Amount))
		} else if tx.Amount < 0 {
			paymentsOut = paymentsOut.Add(decimal.NewFromFloat(tx.Amount).Abs())
		}
	}

	return domain.ParsedStatement{
		Bank:     p.bank,
		Currency: p.currency,
		PaymentSummary: domain.PaymentSummary{
			OpeningBalance: openingBalance,
			PaymentsIn:     paymentsIn.Round(2).InexactFloat64(),
			PaymentsOut:    paymentsOut.Round(2).InexactFloat64(),
			ClosingBalance: balance.Round(2).InexactFloat64(),
		},
		Transactions: transactions,
	}
}

func splitLines(text string) []string {
	var lines []string
	for _, ln := range strings.Split(text, "\n") {
		if strings.TrimSpace(ln) == "" {
			continue
		}
		lines = append(lines, strings.TrimRight(ln, " \t\r"))
	}
	return lines
}

func extractOpeningBalance(text string) float64 {
	for _, re := range openingBalanceRes {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if err != nil {
			return 0.0
		}
		return v
	}
	return 0.0
}

// parseAmountToken converts a matched amount token to a float, stripping
// currency symbols, grouping commas and stray spaces.
func parseAmountToken(token string) (float64, bool) {
	cleaned := strings.NewReplacer("£", "", "$", "", "₱", "", ",", "", " ", "").Replace(token)
	cleaned = strings.TrimSpace(cleaned)
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// applyLineSign forces the amount's sign when the line carries an explicit
// debit or credit marker; otherwise the parsed sign is kept.
func applyLineSign(v float64, lowered string) float64 {
	if containsAny(lowered, debitKeywords) {
		return -absFloat(v)
	}
	if containsAny(lowered, creditKeywords) {
		return absFloat(v)
	}
	return v
}

// applyLookaheadSign signs an amount found on a continuation line. The line
// itself is checked first ("paid" counts as a debit marker here unless the
// line also says "received"); when the line carries no marker, the
// accumulated description text decides.
func applyLookaheadSign(v float64, line string, parts []string) float64 {
	lowered := strings.ToLower(line)
	if containsAny(lowered, debitKeywords) ||
		(strings.Contains(lowered, "paid") && !strings.Contains(lowered, "received")) {
		return -absFloat(v)
	}
	if containsAny(lowered, creditKeywords) {
		return absFloat(v)
	}

	prev := strings.ToLower(strings.Join(append(append([]string{}, parts...), line), " "))
	if containsAny(prev, descCreditKeywords) {
		return absFloat(v)
	}
	if containsAny(prev, descDebitKeywords) {
		return -absFloat(v)
	}
	return v
}

// sortByDate orders transactions by a best-effort (year, month, day) key
// parsed from "DD Mon [YY[YY]]" dates. Unparseable dates sort first. The
// sort is stable so same-day entries keep encounter order.
func sortByDate(transactions []domain.StatementTransaction) {
	sort.SliceStable(transactions, func(a, b int) bool {
		ya, ma, da := dateSortKey(transactions[a].Date)
		yb, mb, db := dateSortKey(transactions[b].Date)
		if ya != yb {
			return ya < yb
		}
		if ma != mb {
			return ma < mb
		}
		return da < db
	})
}

func dateSortKey(date string) (year, month, day int) {
	m := sortDateRe.FindStringSubmatch(date)
	if m == nil {
		return 0, 0, 0
	}
	day, _ = strconv.Atoi(m[1])
	mon := strings.ToUpper(m[2][:1]) + strings.ToLower(m[2][1:3])
	month = monthNumbers[mon]
	if m[3] != "" {
		y, _ := strconv.Atoi(m[3])
		if len(m[3]) == 4 {
			year = y
		} else {
			year = 2000 + y
		}
	}
	return year, month, day
}

func containsAny(lowered string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
