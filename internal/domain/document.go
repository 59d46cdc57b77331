package domain

// DocumentType is the classifier's verdict for a piece of extracted text.
type DocumentType string

const (
	BankStatement DocumentType = "bank_statement"
	Receipt       DocumentType = "receipt"
	UnknownDoc    DocumentType = "unknown"
)

// Feature selects one analytics computation.
type Feature string

const (
	FeatureExpenseSummary   Feature = "expense_summary"
	FeatureCashFlowForecast Feature = "cash_flow_forecast"
	FeatureUnusual          Feature = "flag_unusual_transactions"
	FeatureWeeklyReport     Feature = "weekly_report"
	FeatureCombined         Feature = "combined_insights"
)
