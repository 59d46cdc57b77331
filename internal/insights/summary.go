package insights

import (
	"fmt"
	"sort"

	"ledger-engine/internal/domain"
)

// CategoryTotal is one category's share of the expense summary.
type CategoryTotal struct {
	Total      float64 `json:"total"`
	Percentage float64 `json:"percentage"`
}

// ExpenseSummary groups expenses by category.
type ExpenseSummary struct {
	Feature     domain.Feature           `json:"feature"`
	Summary     map[string]CategoryTotal `json:"summary"`
	TopCategory *string                  `json:"top_category"`
	InsightText string                   `json:"insight_text"`
}

// ExpenseSummary totals expenses per category and names the top one. The
// top category is the largest absolute total; ties keep the category seen
// first in the input.
func (e *Engine) ExpenseSummary(txns []domain.Transaction) ExpenseSummary {
	totals := make(map[string]float64)
	var order []string
	var totalExpenses float64

	for _, tx := range txns {
		if !isExpense(tx) {
			continue
		}
		cat := categoryOf(tx)
		amt := absFloat(tx.Amount)
		if _, seen := totals[cat]; !seen {
			order = append(order, cat)
		}
		totals[cat] += amt
		totalExpenses += amt
	}

	if len(order) == 0 || totalExpenses == 0 {
		return ExpenseSummary{
			Feature:     domain.FeatureExpenseSummary,
			Summary:     map[string]CategoryTotal{},
			TopCategory: nil,
			InsightText: "No expense transactions available to summarize.",
		}
	}

	// Descending by total, first-encounter order on ties.
	sort.SliceStable(order, func(i, j int) bool {
		return totals[order[i]] > totals[order[j]]
	})

	summary := make(map[string]CategoryTotal, len(order))
	for _, cat := range order {
		summary[cat] = CategoryTotal{
			Total:      round2(totals[cat]),
			Percentage: round2(totals[cat] / totalExpenses * 100),
		}
	}

	top := order[0]
	topPct := totals[top] / totalExpenses * 100
	return ExpenseSummary{
		Feature:     domain.FeatureExpenseSummary,
		Summary:     summary,
		TopCategory: &top,
		InsightText: fmt.Sprintf(
			"Your highest spending was in %s, accounting for %.1f%% of total expenses.",
			top, topPct,
		),
	}
}
