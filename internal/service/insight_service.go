package service

import (
	"ledger-engine/internal/domain"
	"ledger-engine/internal/insights"
)

type InsightService interface {
	Generate(feature domain.Feature, txns []domain.Transaction) any
}

type insightService struct {
	engine *insights.Engine
}

func NewInsightService(engine *insights.Engine) InsightService {
	return &insightService{engine: engine}
}

func (s *insightService) Generate(feature domain.Feature, txns []domain.Transaction) any {
	return s.engine.Generate(feature, txns)
}
