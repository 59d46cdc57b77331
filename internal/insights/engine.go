package insights

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"ledger-engine/internal/domain"
	"ledger-engine/pkg/logger"
)

const defaultWindowDays = 90

// Engine runs the financial analyses over canonical transactions. All
// methods are pure; the engine only carries configuration.
type Engine struct {
	windowDays int
}

func NewEngine(windowDays int) *Engine {
	if windowDays <= 0 {
		windowDays = defaultWindowDays
	}
	return &Engine{windowDays: windowDays}
}

// ErrorResult is returned when an analysis cannot run, either because no
// transactions were supplied or the requested feature does not exist.
type ErrorResult struct {
	Feature     domain.Feature `json:"feature"`
	Error       string         `json:"error"`
	InsightText string         `json:"insight_text"`
}

// Generate dispatches a feature name to its analysis. Unknown features and
// empty inputs produce a structured ErrorResult rather than an error so the
// caller can return them to the client as-is.
func (e *Engine) Generate(feature domain.Feature, txns []domain.Transaction) any {
	log := logger.GetLogger()
	log.WithFields(logrus.Fields{
		"feature":           feature,
		"transaction_count": len(txns),
	}).Info("Generating insights")

	if len(txns) == 0 {
		return ErrorResult{
			Feature:     feature,
			Error:       "No transactions provided",
			InsightText: "No transactions available for analysis.",
		}
	}

	switch feature {
	case domain.FeatureExpenseSummary:
		return e.ExpenseSummary(txns)
	case domain.FeatureCashFlowForecast:
		return e.CashFlowForecast(txns)
	case domain.FeatureUnusual:
		return e.FlagUnusual(txns)
	case domain.FeatureWeeklyReport:
		return e.WeeklyReport(txns)
	case domain.FeatureCombined:
		return e.CombinedInsights(txns)
	}

	log.WithField("feature", feature).Warn("Unknown insights feature requested")
	return ErrorResult{
		Feature:     feature,
		Error:       "Feature '" + string(feature) + "' not implemented",
		InsightText: "The requested analysis feature is not available.",
	}
}

// dateFormats accepted when reading transaction dates. Normalized input is
// always ISO, but the insights endpoint also accepts client-supplied rows.
var insightDateFormats = []string{
	"2006-01-02",
	"1/2/2006",
	"1/2/06",
	"2/1/2006",
	"2 Jan 2006",
	"2 January 2006",
}

func parseDate(raw string) (time.Time, bool) {
	for _, format := range insightDateFormats {
		if t, err := time.Parse(format, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func isExpense(tx domain.Transaction) bool {
	return tx.Type == domain.Expense || tx.Amount < 0
}

func categoryOf(tx domain.Transaction) string {
	if tx.Category == "" {
		return domain.DefaultCategory
	}
	return tx.Category
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
