package domain

// ParseResult is the outcome of processing one uploaded document. On
// success Data holds the type-specific parse (statement or receipt) and
// Transactions the normalized rows. On failure Error explains why and
// RawText carries the extracted text back to the caller for inspection.
type ParseResult struct {
	Success      bool          `json:"success"`
	DocumentID   string        `json:"document_id,omitempty"`
	Filename     string        `json:"filename,omitempty"`
	DocumentType DocumentType  `json:"document_type"`
	ProcessedAt  string        `json:"processed_at,omitempty"`
	Data         any           `json:"data,omitempty"`
	Transactions []Transaction `json:"transactions,omitempty"`
	Insights     any           `json:"insights,omitempty"`
	Error        string        `json:"error,omitempty"`
	RawText      string        `json:"raw_text,omitempty"`
}
