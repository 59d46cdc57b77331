package insights_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ledger-engine/internal/domain"
	"ledger-engine/internal/insights"
)

func sampleTransactions() []domain.Transaction {
	return []domain.Transaction{
		{Date: "2024-06-03", Description: "SALARY", Amount: 1000, Type: domain.Income, Category: "salary"},
		{Date: "2024-06-04", Description: "SM SUPERMARKET", Amount: 200, Type: domain.Expense, Category: "groceries"},
		{Date: "2024-06-05", Description: "MERALCO", Amount: 100, Type: domain.Expense, Category: "utilities"},
		{Date: "2024-06-06", Description: "NETFLIX", Amount: 15, Type: domain.Expense, Category: "entertainment"},
	}
}

func TestGenerate_NoTransactions(t *testing.T) {
	e := insights.NewEngine(90)

	result := e.Generate(domain.FeatureExpenseSummary, nil)

	errResult, ok := result.(insights.ErrorResult)
	assert.True(t, ok)
	assert.Equal(t, domain.FeatureExpenseSummary, errResult.Feature)
	assert.Equal(t, "No transactions provided", errResult.Error)
}

func TestGenerate_UnknownFeature(t *testing.T) {
	e := insights.NewEngine(90)

	result := e.Generate("spending_horoscope", sampleTransactions())

	errResult, ok := result.(insights.ErrorResult)
	assert.True(t, ok)
	assert.Equal(t, "Feature 'spending_horoscope' not implemented", errResult.Error)
	assert.Equal(t, "The requested analysis feature is not available.", errResult.InsightText)
}

func TestGenerate_DispatchesEveryFeature(t *testing.T) {
	e := insights.NewEngine(90)
	txns := sampleTransactions()

	_, ok := e.Generate(domain.FeatureExpenseSummary, txns).(insights.ExpenseSummary)
	assert.True(t, ok)
	_, ok = e.Generate(domain.FeatureCashFlowForecast, txns).(insights.CashFlowForecast)
	assert.True(t, ok)
	_, ok = e.Generate(domain.FeatureUnusual, txns).(insights.AnomalyReport)
	assert.True(t, ok)
	_, ok = e.Generate(domain.FeatureWeeklyReport, txns).(insights.WeeklyReport)
	assert.True(t, ok)
	_, ok = e.Generate(domain.FeatureCombined, txns).(insights.CombinedInsights)
	assert.True(t, ok)
}

func TestWeeklyReport_WindowsLastSevenDays(t *testing.T) {
	e := insights.NewEngine(90)

	txns := append(sampleTransactions(), domain.Transaction{
		// Outside the seven days ending 2024-06-06.
		Date: "2024-05-01", Description: "OLD RENT", Amount: 800, Type: domain.Expense, Category: "housing",
	})

	report := e.WeeklyReport(txns)

	assert.Equal(t, domain.FeatureWeeklyReport, report.Feature)
	assert.Equal(t, "2024-05-31", report.PeriodStart)
	assert.Equal(t, "2024-06-06", report.PeriodEnd)
	assert.Equal(t, 4, report.Summary.TransactionCount)
	assert.Equal(t, 1000.0, report.Summary.TotalIncome)
	assert.Equal(t, 315.0, report.Summary.TotalExpenses)
	assert.Equal(t, 685.0, report.Summary.Net)
	assert.NotEmpty(t, report.GeneratedAt)
	assert.NotNil(t, report.ExpenseSummary.TopCategory)
	assert.Equal(t, "groceries", *report.ExpenseSummary.TopCategory)
}

func TestCombinedInsights_LiftsHeadlineMetrics(t *testing.T) {
	e := insights.NewEngine(90)

	result := e.CombinedInsights(sampleTransactions())

	assert.Equal(t, domain.FeatureCombined, result.Feature)
	assert.NotEmpty(t, result.GeneratedAt)
	assert.Equal(t, 4, result.Summary.TotalTransactions)
	assert.Equal(t, "2024-06-03", result.Summary.DateRange.Start)
	assert.Equal(t, "2024-06-06", result.Summary.DateRange.End)
	assert.Equal(t, 1000.0, result.Summary.FinancialHealth.TotalIncome)
	assert.Equal(t, 315.0, result.Summary.FinancialHealth.TotalExpenses)
	assert.Equal(t, 685.0, result.Summary.FinancialHealth.NetPosition)

	assert.Len(t, result.Summary.TopExpenses, 3)
	assert.Equal(t, "groceries", result.Summary.TopExpenses[0].Category)
	assert.Equal(t, 200.0, result.Summary.TopExpenses[0].Total)

	assert.Equal(t, domain.FeatureExpenseSummary, result.DetailedAnalyses.ExpenseSummary.Feature)
	assert.Equal(t, domain.FeatureCashFlowForecast, result.DetailedAnalyses.CashFlowForecast.Feature)
}
