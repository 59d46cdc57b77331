package insights_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ledger-engine/internal/domain"
	"ledger-engine/internal/insights"
)

func TestCashFlowForecast_Empty(t *testing.T) {
	e := insights.NewEngine(90)

	result := e.CashFlowForecast(nil)

	assert.Equal(t, domain.FeatureCashFlowForecast, result.Feature)
	assert.Equal(t, 0.0, result.OverallSummary.TotalNet)
	assert.Empty(t, result.WeeklySeries)
	assert.Equal(t, "No valid transactions for forecast.", result.SummaryText)
}

func TestCashFlowForecast_WeeklyBucketsEndOnSunday(t *testing.T) {
	e := insights.NewEngine(90)

	// 2024-06-03 is a Monday, 2024-06-10 the Monday after; their weeks end
	// on Sunday 2024-06-09 and 2024-06-16.
	result := e.CashFlowForecast([]domain.Transaction{
		{Date: "2024-06-03", Description: "SALARY", Amount: 1000, Type: domain.Income, Category: "salary"},
		{Date: "2024-06-04", Description: "SM SUPERMARKET", Amount: 200, Type: domain.Expense, Category: "groceries"},
		{Date: "2024-06-10", Description: "MERALCO", Amount: 100, Type: domain.Expense, Category: "utilities"},
	})

	assert.Equal(t, 1000.0, result.OverallSummary.TotalIncome)
	assert.Equal(t, 300.0, result.OverallSummary.TotalExpenses)
	assert.Equal(t, 700.0, result.OverallSummary.TotalNet)

	assert.Len(t, result.WeeklySeries, 2)
	assert.Equal(t, "2024-06-09", result.WeeklySeries[0].WeekStart)
	assert.Equal(t, 1000.0, result.WeeklySeries[0].Income)
	assert.Equal(t, 200.0, result.WeeklySeries[0].Expense)
	assert.Equal(t, 800.0, result.WeeklySeries[0].Net)
	assert.Equal(t, "2024-06-16", result.WeeklySeries[1].WeekStart)
	assert.Equal(t, -100.0, result.WeeklySeries[1].Net)
}

func TestCashFlowForecast_KeepsLastFourWeeks(t *testing.T) {
	e := insights.NewEngine(90)

	txns := []domain.Transaction{
		{Date: "2024-05-01", Amount: 10, Type: domain.Expense},
		{Date: "2024-05-08", Amount: 10, Type: domain.Expense},
		{Date: "2024-05-15", Amount: 10, Type: domain.Expense},
		{Date: "2024-05-22", Amount: 10, Type: domain.Expense},
		{Date: "2024-05-29", Amount: 10, Type: domain.Expense},
		{Date: "2024-06-05", Amount: 10, Type: domain.Expense},
	}

	result := e.CashFlowForecast(txns)

	assert.Len(t, result.WeeklySeries, 4)
	assert.Equal(t, "2024-06-09", result.WeeklySeries[3].WeekStart)
}

func TestCashFlowForecast_GapWeeksAreZeroRows(t *testing.T) {
	e := insights.NewEngine(90)

	result := e.CashFlowForecast([]domain.Transaction{
		{Date: "2024-06-03", Amount: 10, Type: domain.Expense},
		{Date: "2024-06-17", Amount: 10, Type: domain.Expense},
	})

	assert.Len(t, result.WeeklySeries, 3)
	assert.Equal(t, 0.0, result.WeeklySeries[1].Expense)
	assert.Equal(t, 0.0, result.WeeklySeries[1].Net)
}

func TestCashFlowForecast_FlatEstimateWhenNoDatesParse(t *testing.T) {
	e := insights.NewEngine(90)

	result := e.CashFlowForecast([]domain.Transaction{
		{Date: "sometime", Description: "SALARY", Amount: 400, Type: domain.Income},
	})

	assert.Empty(t, result.WeeklySeries)
	assert.NotNil(t, result.WeeklyEstimate)
	assert.Equal(t, 100.0, *result.WeeklyEstimate)
	assert.Equal(t, "flat_estimate_no_dates", result.ForecastNote)
	assert.Equal(t, 400.0, result.OverallSummary.TotalIncome)
}

func TestCashFlowForecast_SummaryText(t *testing.T) {
	e := insights.NewEngine(90)

	result := e.CashFlowForecast([]domain.Transaction{
		{Date: "2024-06-03", Amount: 100, Type: domain.Income},
		{Date: "2024-06-04", Amount: 40, Type: domain.Expense},
	})

	assert.Equal(t,
		"Monthly Summary: Total Income: 100.00 Total Expenses: 40.00 Net: 60.00",
		result.SummaryText)
}
