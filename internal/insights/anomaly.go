package insights

import (
	"sort"
	"strings"
	"time"

	"ledger-engine/internal/domain"
)

const (
	severityLow    = "low"
	severityMedium = "medium"
	severityHigh   = "high"
)

// FlagBaseline records the robust statistics a flag was measured against.
type FlagBaseline struct {
	Median        float64 `json:"median"`
	MAD           float64 `json:"mad"`
	BaselineCount int     `json:"baseline_count"`
}

// FlaggedTransaction is one transaction with its anomaly reasons and score.
type FlaggedTransaction struct {
	Index       int                    `json:"index"`
	Date        string                 `json:"date"`
	Amount      float64                `json:"amount"`
	Type        domain.TransactionType `json:"type"`
	Category    string                 `json:"category"`
	Description string                 `json:"description"`
	Score       float64                `json:"score"`
	Severity    string                 `json:"severity"`
	Reasons     []string               `json:"reasons"`
	Baseline    FlagBaseline           `json:"baseline"`
}

type AnomalySummary struct {
	TotalChecked int `json:"total_checked"`
	FlaggedCount int `json:"flagged_count"`
}

// AnomalyReport lists every flagged transaction plus check counts.
type AnomalyReport struct {
	Feature domain.Feature       `json:"feature"`
	Flagged []FlaggedTransaction `json:"flagged"`
	Summary AnomalySummary       `json:"summary"`
}

type anomalyRow struct {
	tx       domain.Transaction
	date     time.Time
	hasDate  bool
	normDesc string
}

// FlagUnusual scores each transaction against a median/MAD baseline built
// from the most recent window of activity. A transaction can accumulate
// several reasons; the capped score decides severity, except that a hard
// amount outlier is always high.
func (e *Engine) FlagUnusual(txns []domain.Transaction) AnomalyReport {
	if len(txns) == 0 {
		return AnomalyReport{
			Feature: domain.FeatureUnusual,
			Flagged: []FlaggedTransaction{},
			Summary: AnomalySummary{},
		}
	}

	rows := make([]anomalyRow, len(txns))
	var maxDate time.Time
	var hasAnyDate bool
	for i, tx := range txns {
		row := anomalyRow{
			tx:       tx,
			normDesc: strings.ToLower(strings.TrimSpace(tx.Description)),
		}
		if t, ok := parseDate(tx.Date); ok {
			row.date = t
			row.hasDate = true
			if !hasAnyDate || t.After(maxDate) {
				maxDate = t
				hasAnyDate = true
			}
		}
		rows[i] = row
	}

	baseline := rows
	if len(rows) >= 10 && hasAnyDate {
		cutoff := maxDate.AddDate(0, 0, -e.windowDays)
		var recent []anomalyRow
		for _, row := range rows {
			if row.hasDate && !row.date.Before(cutoff) {
				recent = append(recent, row)
			}
		}
		if len(recent) > 0 {
			baseline = recent
		}
	}

	amounts := make([]float64, len(baseline))
	for i, row := range baseline {
		amounts[i] = row.tx.Amount
	}
	med := median(amounts)
	deviations := make([]float64, len(amounts))
	for i, a := range amounts {
		deviations[i] = absFloat(a - med)
	}
	mad := median(deviations)
	if mad == 0 {
		mad = 1.0
	}

	payeeCounts := make(map[string]int)
	for _, row := range baseline {
		payeeCounts[row.normDesc]++
	}

	flagged := []FlaggedTransaction{}
	for i, row := range rows {
		z := absFloat(row.tx.Amount-med) / mad
		var reasons []string
		var score float64

		if z > 3 {
			reasons = append(reasons, "amount_outlier")
			score += 0.6
		} else if z > 2 {
			reasons = append(reasons, "possible_amount_outlier")
			score += 0.35
		}

		if row.normDesc != "" && payeeCounts[row.normDesc] <= 1 {
			reasons = append(reasons, "rare_payee")
			score += 0.2
		}

		if row.normDesc != "" && row.hasDate && hasDuplicate(rows, i) {
			reasons = append(reasons, "possible_duplicate_or_reversal")
			score += 0.2
		}

		if row.normDesc != "" && row.hasDate {
			if unusualWeekday(baseline, row) {
				reasons = append(reasons, "unusual_weekday_for_payee")
				score += 0.15
			}
		}

		if len(reasons) == 0 {
			continue
		}

		if score > 1.0 {
			score = 1.0
		}
		severity := severityLow
		if score >= 0.8 || z > 3 {
			severity = severityHigh
		} else if score >= 0.4 {
			severity = severityMedium
		}

		date := row.tx.Date
		if row.hasDate {
			date = row.date.Format("2006-01-02")
		}
		flagged = append(flagged, FlaggedTransaction{
			Index:       i,
			Date:        date,
			Amount:      row.tx.Amount,
			Type:        row.tx.Type,
			Category:    row.tx.Category,
			Description: row.tx.Description,
			Score:       round2(score),
			Severity:    severity,
			Reasons:     reasons,
			Baseline: FlagBaseline{
				Median:        med,
				MAD:           mad,
				BaselineCount: len(baseline),
			},
		})
	}

	return AnomalyReport{
		Feature: domain.FeatureUnusual,
		Flagged: flagged,
		Summary: AnomalySummary{
			TotalChecked: len(rows),
			FlaggedCount: len(flagged),
		},
	}
}

// hasDuplicate reports whether another row shares the description and exact
// amount within two days of row i.
func hasDuplicate(rows []anomalyRow, i int) bool {
	row := rows[i]
	for j, other := range rows {
		if j == i || !other.hasDate {
			continue
		}
		if other.normDesc != row.normDesc || other.tx.Amount != row.tx.Amount {
			continue
		}
		days := row.date.Sub(other.date).Hours() / 24
		if absFloat(days) <= 2 {
			return true
		}
	}
	return false
}

// unusualWeekday reports whether the payee has an established weekday
// pattern (at least three dated baseline occurrences) that this row breaks.
func unusualWeekday(baseline []anomalyRow, row anomalyRow) bool {
	counts := make(map[time.Weekday]int)
	total := 0
	for _, other := range baseline {
		if other.normDesc == row.normDesc && other.hasDate {
			counts[other.date.Weekday()]++
			total++
		}
	}
	return total >= 3 && counts[row.date.Weekday()] == 0
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
