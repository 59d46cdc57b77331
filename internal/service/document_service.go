package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"ledger-engine/internal/archive"
	"ledger-engine/internal/classifier"
	"ledger-engine/internal/domain"
	"ledger-engine/internal/extractor"
	"ledger-engine/internal/insights"
	"ledger-engine/internal/normalize"
	"ledger-engine/internal/parser"
	"ledger-engine/pkg/logger"
)

type DocumentService interface {
	ProcessDocument(source extractor.Source, filename string, feature domain.Feature) (*domain.ParseResult, error)
}

type documentService struct {
	statementParser *parser.StatementParser
	receiptParser   *parser.ReceiptParser
	normalizer      *normalize.Normalizer
	engine          *insights.Engine
	archiver        *archive.Archiver
}

func NewDocumentService(
	statementParser *parser.StatementParser,
	receiptParser *parser.ReceiptParser,
	normalizer *normalize.Normalizer,
	engine *insights.Engine,
	archiver *archive.Archiver,
) DocumentService {
	return &documentService{
		statementParser: statementParser,
		receiptParser:   receiptParser,
		normalizer:      normalizer,
		engine:          engine,
		archiver:        archiver,
	}
}

// ProcessDocument runs the full pipeline: extract text, classify the
// document, parse it, normalize the transactions and optionally run an
// analysis over them. An unclassifiable document is a structured failure,
// not an error; errors are reserved for text extraction problems.
func (s *documentService) ProcessDocument(
	source extractor.Source,
	filename string,
	feature domain.Feature,
) (*domain.ParseResult, error) {
	log := logger.GetLogger()

	text, err := source.Text()
	if err != nil {
		return nil, fmt.Errorf("failed to read document text: %w", err)
	}

	documentID := uuid.New().String()
	docType := classifier.Classify(text)
	log.WithFields(logrus.Fields{
		"document_id":   documentID,
		"filename":      filename,
		"document_type": docType,
		"chars":         len(text),
	}).Info("Processing document")

	result := &domain.ParseResult{
		DocumentID:   documentID,
		Filename:     filename,
		DocumentType: docType,
		ProcessedAt:  time.Now().UTC().Format(time.RFC3339),
	}

	switch docType {
	case domain.BankStatement:
		stmt := s.statementParser.Parse(text)
		result.Data = stmt
		result.Transactions = s.normalizer.Statement(stmt, filename)
	case domain.Receipt:
		receipt := s.receiptParser.Parse(text)
		result.Data = receipt
		result.Transactions = s.normalizer.Receipt(receipt, filename)
	default:
		result.Error = "Could not determine document type"
		result.RawText = text
		return result, nil
	}

	result.Success = true
	if feature != "" {
		result.Insights = s.engine.Generate(feature, result.Transactions)
	}

	s.archiver.Store(filename, documentID, result)

	log.WithFields(logrus.Fields{
		"document_id":  documentID,
		"transactions": len(result.Transactions),
	}).Info("Document processed")
	return result, nil
}
