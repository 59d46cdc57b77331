package insights

import (
	"fmt"
	"time"

	"ledger-engine/internal/domain"
)

// WeeklyFlow is one week's aggregated cash flow. Weeks are labeled by the
// Sunday on which they end.
type WeeklyFlow struct {
	WeekStart string  `json:"week_start"`
	Income    float64 `json:"income"`
	Expense   float64 `json:"expense"`
	Net       float64 `json:"net"`
}

// FlowTotals aggregates signed amounts over the whole input range.
type FlowTotals struct {
	TotalIncome   float64 `json:"total_income"`
	TotalExpenses float64 `json:"total_expenses"`
	TotalNet      float64 `json:"total_net"`
}

// CashFlowForecast reports recent weekly cash flow plus whole-range totals.
type CashFlowForecast struct {
	Feature        domain.Feature `json:"feature"`
	OverallSummary FlowTotals     `json:"overall_summary"`
	WeeklySeries   []WeeklyFlow   `json:"weekly_series"`
	SummaryText    string         `json:"summary_text"`
	WeeklyEstimate *float64       `json:"weekly_estimate,omitempty"`
	ForecastNote   string         `json:"forecast_note,omitempty"`
}

// CashFlowForecast buckets signed amounts into calendar weeks and keeps the
// last four. Transactions without a parseable date are dropped from the
// series; if none parse at all a flat weekly estimate is derived from the
// net position instead.
func (e *Engine) CashFlowForecast(txns []domain.Transaction) CashFlowForecast {
	if len(txns) == 0 {
		return CashFlowForecast{
			Feature:      domain.FeatureCashFlowForecast,
			WeeklySeries: []WeeklyFlow{},
			SummaryText:  "No valid transactions for forecast.",
		}
	}

	type datedTxn struct {
		date   time.Time
		amount float64
	}
	var dated []datedTxn
	var income, expenses, net float64

	for _, tx := range txns {
		amt := tx.SignedAmount()
		if amt >= 0 {
			income += amt
		} else {
			expenses += -amt
		}
		net += amt
		if t, ok := parseDate(tx.Date); ok {
			dated = append(dated, datedTxn{date: t, amount: amt})
		}
	}

	totals := FlowTotals{
		TotalIncome:   round2(income),
		TotalExpenses: round2(expenses),
		TotalNet:      round2(net),
	}
	summaryText := fmt.Sprintf(
		"Monthly Summary: Total Income: %.2f Total Expenses: %.2f Net: %.2f",
		totals.TotalIncome, totals.TotalExpenses, totals.TotalNet,
	)

	if len(dated) == 0 {
		estimate := round2(net / 4)
		return CashFlowForecast{
			Feature:        domain.FeatureCashFlowForecast,
			OverallSummary: totals,
			WeeklySeries:   []WeeklyFlow{},
			SummaryText:    summaryText,
			WeeklyEstimate: &estimate,
			ForecastNote:   "flat_estimate_no_dates",
		}
	}

	buckets := make(map[string]*WeeklyFlow)
	first, last := weekEnd(dated[0].date), weekEnd(dated[0].date)
	for _, tx := range dated {
		end := weekEnd(tx.date)
		if end.Before(first) {
			first = end
		}
		if end.After(last) {
			last = end
		}
		key := end.Format("2006-01-02")
		bucket, ok := buckets[key]
		if !ok {
			bucket = &WeeklyFlow{WeekStart: key}
			buckets[key] = bucket
		}
		if tx.amount >= 0 {
			bucket.Income += tx.amount
		} else {
			bucket.Expense += -tx.amount
		}
		bucket.Net += tx.amount
	}

	// Continuous series, empty weeks kept as zero rows.
	var series []WeeklyFlow
	for end := first; !end.After(last); end = end.AddDate(0, 0, 7) {
		key := end.Format("2006-01-02")
		if bucket, ok := buckets[key]; ok {
			series = append(series, WeeklyFlow{
				WeekStart: key,
				Income:    round2(bucket.Income),
				Expense:   round2(bucket.Expense),
				Net:       round2(bucket.Net),
			})
		} else {
			series = append(series, WeeklyFlow{WeekStart: key})
		}
	}
	if len(series) > 4 {
		series = series[len(series)-4:]
	}

	return CashFlowForecast{
		Feature:        domain.FeatureCashFlowForecast,
		OverallSummary: totals,
		WeeklySeries:   series,
		SummaryText:    summaryText,
	}
}

// weekEnd returns the Sunday ending the calendar week containing t.
func weekEnd(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (7 - int(day.Weekday())) % 7
	return day.AddDate(0, 0, offset)
}
