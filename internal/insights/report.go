package insights

import (
	"sort"
	"time"

	"ledger-engine/internal/domain"
)

const weeklyReportDays = 7

// PeriodSummary aggregates totals over a report period.
type PeriodSummary struct {
	TotalIncome      float64 `json:"total_income"`
	TotalExpenses    float64 `json:"total_expenses"`
	Net              float64 `json:"net"`
	TransactionCount int     `json:"transaction_count"`
}

// WeeklyReport composes the analyses over the seven days ending at the most
// recent dated transaction.
type WeeklyReport struct {
	Feature        domain.Feature       `json:"feature"`
	GeneratedAt    string               `json:"generated_at"`
	PeriodStart    string               `json:"period_start"`
	PeriodEnd      string               `json:"period_end"`
	Summary        PeriodSummary        `json:"summary"`
	ExpenseSummary ExpenseSummary       `json:"expense_summary"`
	Flagged        []FlaggedTransaction `json:"flagged"`
	Transactions   []domain.Transaction `json:"transactions"`
}

// DateRange is the span of dated transactions in a combined report.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// FinancialHealth is the headline income/expense position.
type FinancialHealth struct {
	TotalIncome   float64 `json:"total_income"`
	TotalExpenses float64 `json:"total_expenses"`
	NetPosition   float64 `json:"net_position"`
}

// TopExpense is one of the leading expense categories in a combined report.
type TopExpense struct {
	Category   string  `json:"category"`
	Total      float64 `json:"total"`
	Percentage float64 `json:"percentage"`
}

// CombinedSummary lifts headline metrics out of the detailed analyses.
type CombinedSummary struct {
	TotalTransactions int             `json:"total_transactions"`
	DateRange         DateRange       `json:"date_range"`
	FinancialHealth   FinancialHealth `json:"financial_health"`
	TopExpenses       []TopExpense    `json:"top_expenses"`
	FlaggedCount      int             `json:"flagged_count"`
}

// DetailedAnalyses bundles the individual analysis outputs.
type DetailedAnalyses struct {
	ExpenseSummary      ExpenseSummary   `json:"expense_summary"`
	CashFlowForecast    CashFlowForecast `json:"cash_flow_forecast"`
	FlaggedTransactions AnomalyReport    `json:"flagged_transactions"`
}

// CombinedInsights is the unified report across all analyses.
type CombinedInsights struct {
	Feature          domain.Feature   `json:"feature"`
	GeneratedAt      string           `json:"generated_at"`
	Summary          CombinedSummary  `json:"summary"`
	DetailedAnalyses DetailedAnalyses `json:"detailed_analyses"`
}

// WeeklyReport restricts the input to the last seven calendar days and runs
// the expense and anomaly analyses over that window.
func (e *Engine) WeeklyReport(txns []domain.Transaction) WeeklyReport {
	report := WeeklyReport{
		Feature:      domain.FeatureWeeklyReport,
		GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
		Flagged:      []FlaggedTransaction{},
		Transactions: []domain.Transaction{},
	}

	type datedTxn struct {
		tx   domain.Transaction
		date time.Time
	}
	var dated []datedTxn
	var latest time.Time
	for _, tx := range txns {
		if t, ok := parseDate(tx.Date); ok {
			dated = append(dated, datedTxn{tx: tx, date: t})
			if t.After(latest) {
				latest = t
			}
		}
	}
	if len(dated) == 0 {
		report.ExpenseSummary = e.ExpenseSummary(nil)
		return report
	}

	start := latest.AddDate(0, 0, -(weeklyReportDays - 1))
	var period []domain.Transaction
	for _, d := range dated {
		if !d.date.Before(start) && !d.date.After(latest) {
			period = append(period, d.tx)
		}
	}

	var income, expenses, net float64
	for _, tx := range period {
		amt := tx.SignedAmount()
		if amt >= 0 {
			income += amt
		} else {
			expenses += -amt
		}
		net += amt
	}

	report.PeriodStart = start.Format("2006-01-02")
	report.PeriodEnd = latest.Format("2006-01-02")
	report.Summary = PeriodSummary{
		TotalIncome:      round2(income),
		TotalExpenses:    round2(expenses),
		Net:              round2(net),
		TransactionCount: len(period),
	}
	report.ExpenseSummary = e.ExpenseSummary(period)
	report.Flagged = e.FlagUnusual(period).Flagged
	report.Transactions = period
	return report
}

// CombinedInsights runs every analysis over the full input and lifts the
// already-computed headline metrics into a single summary.
func (e *Engine) CombinedInsights(txns []domain.Transaction) CombinedInsights {
	expense := e.ExpenseSummary(txns)
	forecast := e.CashFlowForecast(txns)
	anomalies := e.FlagUnusual(txns)

	var dateRange DateRange
	for _, tx := range txns {
		t, ok := parseDate(tx.Date)
		if !ok {
			continue
		}
		iso := t.Format("2006-01-02")
		if dateRange.Start == "" || iso < dateRange.Start {
			dateRange.Start = iso
		}
		if iso > dateRange.End {
			dateRange.End = iso
		}
	}

	var topExpenses []TopExpense
	if expense.TopCategory != nil {
		ordered := make([]TopExpense, 0, len(expense.Summary))
		for cat, ct := range expense.Summary {
			ordered = append(ordered, TopExpense{Category: cat, Total: ct.Total, Percentage: ct.Percentage})
		}
		// Summary is a map; reorder by total for a stable top three.
		sort.SliceStable(ordered, func(i, j int) bool {
			if ordered[i].Total != ordered[j].Total {
				return ordered[i].Total > ordered[j].Total
			}
			return ordered[i].Category < ordered[j].Category
		})
		if len(ordered) > 3 {
			ordered = ordered[:3]
		}
		topExpenses = ordered
	}

	return CombinedInsights{
		Feature:     domain.FeatureCombined,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Summary: CombinedSummary{
			TotalTransactions: len(txns),
			DateRange:         dateRange,
			FinancialHealth: FinancialHealth{
				TotalIncome:   forecast.OverallSummary.TotalIncome,
				TotalExpenses: forecast.OverallSummary.TotalExpenses,
				NetPosition:   forecast.OverallSummary.TotalNet,
			},
			TopExpenses:  topExpenses,
			FlaggedCount: anomalies.Summary.FlaggedCount,
		},
		DetailedAnalyses: DetailedAnalyses{
			ExpenseSummary:      expense,
			CashFlowForecast:    forecast,
			FlaggedTransactions: anomalies,
		},
	}
}
