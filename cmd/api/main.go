package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "ledger-engine/docs"
	"ledger-engine/internal/archive"
	"ledger-engine/internal/categorize"
	"ledger-engine/internal/config"
	"ledger-engine/internal/handler"
	"ledger-engine/internal/insights"
	"ledger-engine/internal/middleware"
	"ledger-engine/internal/normalize"
	"ledger-engine/internal/parser"
	"ledger-engine/internal/patterns"
	"ledger-engine/internal/service"
	"ledger-engine/pkg/logger"
)

// @title Ledger Engine API
// @version 1.0
// @description API for parsing financial documents and generating transaction insights
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@ledger-engine.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Init(cfg.App.LogLevel)
	logger.GetLogger().Info("Starting Ledger Engine Service")

	// Load learned categorization patterns; a missing file degrades to the
	// built-in rules only.
	learned := patterns.LoadOrDefault(cfg.Patterns.File)
	categorizer := categorize.NewRuleCategorizer(learned)

	// Initialize pipeline components
	statementParser := parser.NewStatementParser(categorizer)
	receiptParser := parser.NewReceiptParser()
	normalizer := normalize.NewNormalizer(categorizer)
	engine := insights.NewEngine(cfg.App.AnomalyWindowDays)
	archiver := archive.NewArchiver(cfg.Archive.Enabled, cfg.Archive.Dir)

	// Initialize services
	docService := service.NewDocumentService(statementParser, receiptParser, normalizer, engine, archiver)
	insightService := service.NewInsightService(engine)

	// Initialize handlers
	docHandler := handler.NewDocumentHandler(docService)
	insightHandler := handler.NewInsightHandler(insightService)

	// Setup router
	router := setupRouter(docHandler, insightHandler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.GetLogger().WithField("address", addr).Info("Server starting")

	if err := router.Run(addr); err != nil {
		logger.GetLogger().WithError(err).Fatal("Failed to start server")
	}
}

func setupRouter(docHandler *handler.DocumentHandler, insightHandler *handler.InsightHandler) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(gin.Recovery())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		documents := v1.Group("/documents")
		{
			documents.POST("/parse", docHandler.ParseDocument)
		}

		v1.POST("/insights", insightHandler.GenerateInsights)
	}

	return router
}
