package insights_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ledger-engine/internal/domain"
	"ledger-engine/internal/insights"
)

// coffeeBaseline returns nine identical weekly 50.00 purchases, every
// Monday from 2024-04-01 on.
func coffeeBaseline() []domain.Transaction {
	start := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	txns := make([]domain.Transaction, 0, 9)
	for i := 0; i < 9; i++ {
		txns = append(txns, domain.Transaction{
			Date:        start.AddDate(0, 0, 7*i).Format("2006-01-02"),
			Description: "COFFEE SHOP",
			Amount:      50.00,
			Type:        domain.Expense,
			Category:    "dining",
		})
	}
	return txns
}

func TestFlagUnusual_HardAmountOutlierIsHigh(t *testing.T) {
	e := insights.NewEngine(90)

	txns := append(coffeeBaseline(), domain.Transaction{
		Date:        "2024-06-03",
		Description: "COFFEE SHOP",
		Amount:      5000.00,
		Type:        domain.Expense,
		Category:    "dining",
	})

	result := e.FlagUnusual(txns)

	assert.Equal(t, 10, result.Summary.TotalChecked)
	assert.Equal(t, 1, result.Summary.FlaggedCount)

	flag := result.Flagged[0]
	assert.Equal(t, 5000.00, flag.Amount)
	assert.Contains(t, flag.Reasons, "amount_outlier")
	assert.Equal(t, "high", flag.Severity)
	assert.Equal(t, 0.6, flag.Score)
	assert.Equal(t, 50.0, flag.Baseline.Median)
	assert.Equal(t, 10, flag.Baseline.BaselineCount)
}

func TestFlagUnusual_RarePayee(t *testing.T) {
	e := insights.NewEngine(90)

	txns := append(coffeeBaseline(), domain.Transaction{
		Date:        "2024-06-03",
		Description: "ONE OFF VENDOR",
		Amount:      50.00,
		Type:        domain.Expense,
		Category:    "uncategorized",
	})

	result := e.FlagUnusual(txns)

	assert.Equal(t, 1, result.Summary.FlaggedCount)
	flag := result.Flagged[0]
	assert.Equal(t, "ONE OFF VENDOR", flag.Description)
	assert.Equal(t, []string{"rare_payee"}, flag.Reasons)
	assert.Equal(t, 0.2, flag.Score)
	assert.Equal(t, "low", flag.Severity)
}

func TestFlagUnusual_DuplicateWithinTwoDays(t *testing.T) {
	e := insights.NewEngine(90)

	txns := []domain.Transaction{
		{Date: "2024-06-03", Description: "ACME STORE", Amount: 120.00, Type: domain.Expense},
		{Date: "2024-06-04", Description: "ACME STORE", Amount: 120.00, Type: domain.Expense},
	}

	result := e.FlagUnusual(txns)

	assert.Equal(t, 2, result.Summary.FlaggedCount)
	for _, flag := range result.Flagged {
		assert.Contains(t, flag.Reasons, "possible_duplicate_or_reversal")
	}
}

func TestFlagUnusual_UnusualWeekdayForPayee(t *testing.T) {
	e := insights.NewEngine(90)

	// The recent window establishes GYM as a Monday habit; a Saturday visit
	// older than the window breaks the pattern. Rows inside the window
	// count their own weekday, so only out-of-window rows can break it.
	txns := []domain.Transaction{
		{Date: "2024-03-02", Description: "GYM", Amount: 30, Type: domain.Expense},
		{Date: "2024-06-03", Description: "GYM", Amount: 30, Type: domain.Expense},
		{Date: "2024-06-10", Description: "GYM", Amount: 30, Type: domain.Expense},
		{Date: "2024-06-17", Description: "GYM", Amount: 30, Type: domain.Expense},
		{Date: "2024-06-01", Description: "MISC", Amount: 30, Type: domain.Expense},
		{Date: "2024-06-04", Description: "MISC", Amount: 30, Type: domain.Expense},
		{Date: "2024-06-07", Description: "MISC", Amount: 30, Type: domain.Expense},
		{Date: "2024-06-10", Description: "MISC", Amount: 30, Type: domain.Expense},
		{Date: "2024-06-13", Description: "MISC", Amount: 30, Type: domain.Expense},
		{Date: "2024-06-16", Description: "MISC", Amount: 30, Type: domain.Expense},
		{Date: "2024-06-19", Description: "MISC", Amount: 30, Type: domain.Expense},
	}

	result := e.FlagUnusual(txns)

	assert.Equal(t, 1, result.Summary.FlaggedCount)
	flag := result.Flagged[0]
	assert.Equal(t, "2024-03-02", flag.Date)
	assert.Contains(t, flag.Reasons, "unusual_weekday_for_payee")
}

func TestFlagUnusual_ScoresAccumulateAndSeverityScales(t *testing.T) {
	e := insights.NewEngine(90)

	// An outlier amount from a payee never seen before: 0.6 + 0.2 = 0.8.
	txns := append(coffeeBaseline(), domain.Transaction{
		Date:        "2024-06-03",
		Description: "CASINO ROYALE",
		Amount:      5000.00,
		Type:        domain.Expense,
	})

	result := e.FlagUnusual(txns)

	flag := result.Flagged[0]
	assert.ElementsMatch(t, []string{"amount_outlier", "rare_payee"}, flag.Reasons)
	assert.Equal(t, 0.8, flag.Score)
	assert.Equal(t, "high", flag.Severity)
}

func TestFlagUnusual_Empty(t *testing.T) {
	e := insights.NewEngine(90)

	result := e.FlagUnusual(nil)

	assert.Equal(t, 0, result.Summary.TotalChecked)
	assert.Empty(t, result.Flagged)
}

func TestFlagUnusual_ZeroMADFallsBackToOne(t *testing.T) {
	e := insights.NewEngine(90)

	// All amounts equal: MAD is zero, substituted with 1.0, and a modest
	// deviation of 4 still exceeds the hard threshold.
	txns := []domain.Transaction{
		{Date: "2024-06-01", Description: "A", Amount: 10, Type: domain.Expense},
		{Date: "2024-06-08", Description: "B", Amount: 10, Type: domain.Expense},
		{Date: "2024-06-15", Description: "C", Amount: 14, Type: domain.Expense},
	}

	result := e.FlagUnusual(txns)

	var flagged *insights.FlaggedTransaction
	for i := range result.Flagged {
		if result.Flagged[i].Description == "C" {
			flagged = &result.Flagged[i]
		}
	}
	assert.NotNil(t, flagged)
	assert.Contains(t, flagged.Reasons, "amount_outlier")
	assert.Equal(t, 1.0, flagged.Baseline.MAD)
}
