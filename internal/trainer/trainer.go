package trainer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"ledger-engine/internal/domain"
	"ledger-engine/internal/patterns"
	"ledger-engine/pkg/logger"
)

const (
	artifactsVersion    = "0.1.0"
	patternsVersion     = "1.0.0"
	patternsSource      = "labeled_data_training"
	keywordsPerCategory = 10
)

var wordRe = regexp.MustCompile(`\w+`)

// labeledStatement is the shape of a human-corrected statement JSON used as
// training input.
type labeledStatement struct {
	Transactions []struct {
		Description string  `json:"description"`
		Amount      float64 `json:"amount"`
		Category    string  `json:"category"`
	} `json:"transactions"`
}

// TrainingFile summarizes one labeled input in the artifacts manifest.
type TrainingFile struct {
	Filename         string `json:"filename"`
	TransactionCount int    `json:"transaction_count"`
}

// Artifacts is the training run manifest written next to the patterns file.
type Artifacts struct {
	Version              string         `json:"version"`
	CreatedAt            string         `json:"created_at"`
	TrainingSamples      int            `json:"training_samples"`
	TrainingFiles        []TrainingFile `json:"training_files"`
	TotalTransactions    int            `json:"total_transactions"`
	LearnedCategories    []string       `json:"learned_categories"`
	MerchantMappingCount int            `json:"merchant_mappings_count"`
}

// Trainer learns categorization patterns from labeled statement JSONs:
// exact merchant-to-category mappings plus the most frequent description
// words per category.
type Trainer struct {
	labeledDir string

	merchantCategories map[string]string
	categoryWords      map[string][]string
	categoryOrder      []string
	files              []TrainingFile
	totalTransactions  int
}

func NewTrainer(labeledDir string) *Trainer {
	return &Trainer{
		labeledDir:         labeledDir,
		merchantCategories: make(map[string]string),
		categoryWords:      make(map[string][]string),
	}
}

// Train loads every *.json file in the labeled directory and learns category
// patterns from the transactions inside. Unreadable files are skipped with a
// warning; an empty directory yields empty patterns, not an error.
func (t *Trainer) Train() (*domain.LearnedPatterns, error) {
	log := logger.GetLogger()

	entries, err := filepath.Glob(filepath.Join(t.labeledDir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan labeled directory: %w", err)
	}
	sort.Strings(entries)
	log.WithFields(logrus.Fields{
		"dir":   t.labeledDir,
		"files": len(entries),
	}).Info("Scanning labeled data")

	for _, path := range entries {
		data, err := os.ReadFile(path)
		if err != nil {
			log.WithError(err).WithField("file", path).Warn("Skipping unreadable labeled file")
			continue
		}
		var stmt labeledStatement
		if err := json.Unmarshal(data, &stmt); err != nil {
			log.WithError(err).WithField("file", path).Warn("Skipping invalid labeled JSON")
			continue
		}

		for _, tx := range stmt.Transactions {
			t.learn(tx.Description, tx.Category)
		}
		t.files = append(t.files, TrainingFile{
			Filename:         filepath.Base(path),
			TransactionCount: len(stmt.Transactions),
		})
		t.totalTransactions += len(stmt.Transactions)
	}

	result := t.patterns()
	log.WithFields(logrus.Fields{
		"merchants":  len(result.MerchantCategories),
		"categories": len(result.Categories),
	}).Info("Learned patterns from labeled data")
	return result, nil
}

func (t *Trainer) learn(description, category string) {
	description = strings.TrimSpace(description)
	if description == "" || category == "" || category == domain.DefaultCategory {
		return
	}

	upper := strings.ToUpper(description)
	t.merchantCategories[upper] = category

	if _, seen := t.categoryWords[category]; !seen {
		t.categoryOrder = append(t.categoryOrder, category)
	}
	t.categoryWords[category] = append(t.categoryWords[category], wordRe.FindAllString(upper, -1)...)
}

// patterns reduces the accumulated words to the top keywords per category,
// most frequent first, first occurrence winning ties.
func (t *Trainer) patterns() *domain.LearnedPatterns {
	result := domain.EmptyPatterns()
	for merchant, category := range t.merchantCategories {
		result.MerchantCategories[merchant] = category
	}

	for _, category := range t.categoryOrder {
		words := t.categoryWords[category]
		counts := make(map[string]int)
		var order []string
		for _, w := range words {
			if _, seen := counts[w]; !seen {
				order = append(order, w)
			}
			counts[w]++
		}
		sort.SliceStable(order, func(i, j int) bool {
			return counts[order[i]] > counts[order[j]]
		})
		if len(order) > keywordsPerCategory {
			order = order[:keywordsPerCategory]
		}
		result.Categories = append(result.Categories, domain.CategoryKeywords{
			Name:     category,
			Keywords: order,
		})
	}
	return result
}

// SavePatterns writes the learned patterns file consumed by the serving path.
func (t *Trainer) SavePatterns(path string, learned *domain.LearnedPatterns) error {
	file := patterns.File{
		Version:            patternsVersion,
		CreatedAt:          time.Now().Format(time.RFC3339),
		Source:             patternsSource,
		MerchantCategories: learned.MerchantCategories,
		CategoryPatterns:   patterns.OrderedCategories(learned.Categories),
		TotalMerchants:     len(learned.MerchantCategories),
		TotalCategories:    len(learned.Categories),
	}
	return patterns.Save(path, file)
}

// SaveArtifacts writes the training run manifest.
func (t *Trainer) SaveArtifacts(path string) error {
	categories := make([]string, len(t.categoryOrder))
	copy(categories, t.categoryOrder)
	sort.Strings(categories)

	artifacts := Artifacts{
		Version:              artifactsVersion,
		CreatedAt:            time.Now().Format(time.RFC3339),
		TrainingSamples:      len(t.files),
		TrainingFiles:        t.files,
		TotalTransactions:    t.totalTransactions,
		LearnedCategories:    categories,
		MerchantMappingCount: len(t.merchantCategories),
	}

	data, err := json.MarshalIndent(artifacts, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode artifacts: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write artifacts: %w", err)
	}
	return nil
}
