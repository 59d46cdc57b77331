package insights_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ledger-engine/internal/domain"
	"ledger-engine/internal/insights"
)

func TestExpenseSummary_Empty(t *testing.T) {
	e := insights.NewEngine(90)

	result := e.ExpenseSummary(nil)

	assert.Equal(t, domain.FeatureExpenseSummary, result.Feature)
	assert.Empty(t, result.Summary)
	assert.Nil(t, result.TopCategory)
	assert.Equal(t, "No expense transactions available to summarize.", result.InsightText)
}

func TestExpenseSummary_IncomeOnlyIsEmpty(t *testing.T) {
	e := insights.NewEngine(90)

	result := e.ExpenseSummary([]domain.Transaction{
		{Date: "2024-06-01", Description: "SALARY", Amount: 5000, Type: domain.Income, Category: "salary"},
	})

	assert.Nil(t, result.TopCategory)
	assert.Equal(t, "No expense transactions available to summarize.", result.InsightText)
}

func TestExpenseSummary_GroupsAndRanksCategories(t *testing.T) {
	e := insights.NewEngine(90)

	result := e.ExpenseSummary([]domain.Transaction{
		{Date: "2024-06-01", Description: "SM SUPERMARKET", Amount: 300, Type: domain.Expense, Category: "groceries"},
		{Date: "2024-06-02", Description: "MERALCO", Amount: 100, Type: domain.Expense, Category: "utilities"},
		{Date: "2024-06-03", Description: "PUREGOLD", Amount: 100, Type: domain.Expense, Category: "groceries"},
	})

	assert.NotNil(t, result.TopCategory)
	assert.Equal(t, "groceries", *result.TopCategory)
	assert.Equal(t, 400.0, result.Summary["groceries"].Total)
	assert.Equal(t, 80.0, result.Summary["groceries"].Percentage)
	assert.Equal(t, 20.0, result.Summary["utilities"].Percentage)
	assert.Equal(t,
		"Your highest spending was in groceries, accounting for 80.0% of total expenses.",
		result.InsightText)
}

func TestExpenseSummary_SingleCategoryIsHundredPercent(t *testing.T) {
	e := insights.NewEngine(90)

	result := e.ExpenseSummary([]domain.Transaction{
		{Date: "2024-06-01", Description: "SM SUPERMARKET", Amount: 87.32, Type: domain.Expense, Category: "groceries"},
	})

	assert.Equal(t, 100.0, result.Summary["groceries"].Percentage)
	assert.Equal(t,
		"Your highest spending was in groceries, accounting for 100.0% of total expenses.",
		result.InsightText)
}

func TestExpenseSummary_BlankCategoryFallsBack(t *testing.T) {
	e := insights.NewEngine(90)

	result := e.ExpenseSummary([]domain.Transaction{
		{Date: "2024-06-01", Description: "MYSTERY", Amount: 10, Type: domain.Expense},
	})

	assert.Equal(t, domain.DefaultCategory, *result.TopCategory)
}
