package main

import (
	"flag"
	"log"

	"ledger-engine/internal/trainer"
	"ledger-engine/pkg/logger"
)

func main() {
	labeledDir := flag.String("labeled-dir", "data/labeled", "directory of labeled statement JSON files")
	patternsOut := flag.String("patterns-out", "learned_patterns.json", "output path for learned patterns")
	artifactsOut := flag.String("artifacts-out", "model_artifacts.json", "output path for the training manifest")
	logLevel := flag.String("log-level", "info", "log level")
	flag.Parse()

	logger.Init(*logLevel)

	t := trainer.NewTrainer(*labeledDir)
	learned, err := t.Train()
	if err != nil {
		log.Fatalf("Training failed: %v", err)
	}

	if err := t.SavePatterns(*patternsOut, learned); err != nil {
		log.Fatalf("Failed to save patterns: %v", err)
	}
	if err := t.SaveArtifacts(*artifactsOut); err != nil {
		log.Fatalf("Failed to save artifacts: %v", err)
	}

	logger.GetLogger().WithFields(map[string]interface{}{
		"patterns":  *patternsOut,
		"artifacts": *artifactsOut,
	}).Info("Training complete")
}
