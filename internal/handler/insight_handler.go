package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ledger-engine/internal/domain"
	"ledger-engine/internal/service"
	"ledger-engine/pkg/logger"
	"ledger-engine/pkg/response"
)

type InsightHandler struct {
	service service.InsightService
}

func NewInsightHandler(service service.InsightService) *InsightHandler {
	return &InsightHandler{service: service}
}

type GenerateInsightsRequest struct {
	Feature      string               `json:"feature" binding:"required"`
	Transactions []domain.Transaction `json:"transactions" binding:"required"`
}

// GenerateInsights godoc
// @Summary Generate financial insights
// @Description Run an analysis feature over a set of normalized transactions
// @Tags insights
// @Accept json
// @Produce json
// @Param request body GenerateInsightsRequest true "Feature name and transactions"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/insights [post]
func (h *InsightHandler) GenerateInsights(c *gin.Context) {
	var req GenerateInsightsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithError(err).Error("Invalid insights request")
		response.ValidationError(c, err.Error())
		return
	}

	result := h.service.Generate(domain.Feature(req.Feature), req.Transactions)
	response.Success(c, http.StatusOK, "Insights generated successfully", result)
}
