package patterns

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"ledger-engine/internal/domain"
	"ledger-engine/pkg/logger"
)

// File is the on-disk shape of a learned patterns file, as written by the
// trainer.
type File struct {
	Version            string            `json:"version"`
	CreatedAt          string            `json:"created_at"`
	Source             string            `json:"source"`
	MerchantCategories map[string]string `json:"merchant_categories"`
	CategoryPatterns   OrderedCategories `json:"category_patterns"`
	TotalMerchants     int               `json:"total_merchants"`
	TotalCategories    int               `json:"total_categories"`
}

// OrderedCategories marshals as a JSON object whose keys keep slice order,
// so a saved file decodes with the same tie-break order it was trained with.
type OrderedCategories []domain.CategoryKeywords

func (oc OrderedCategories) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range oc {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(c.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		keywords := c.Keywords
		if keywords == nil {
			keywords = []string{}
		}
		words, err := json.Marshal(keywords)
		if err != nil {
			return nil, err
		}
		buf.Write(words)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (oc *OrderedCategories) UnmarshalJSON(data []byte) error {
	cats, err := decodeOrderedCategories(data)
	if err != nil {
		return err
	}
	*oc = cats
	return nil
}

// Load reads a learned patterns file. A missing or undecodable file is an
// expected condition: callers should log the error and fall back to
// domain.EmptyPatterns instead of failing startup.
func Load(path string) (*domain.LearnedPatterns, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read patterns file: %w", err)
	}
	return Decode(data)
}

// LoadOrDefault loads the patterns file, degrading to an empty table when the
// file is absent or invalid.
func LoadOrDefault(path string) *domain.LearnedPatterns {
	p, err := Load(path)
	if err != nil {
		logger.GetLogger().WithError(err).WithField("file", path).
			Warn("No usable learned patterns, using default rules")
		return domain.EmptyPatterns()
	}
	logger.GetLogger().WithFields(map[string]interface{}{
		"file":       path,
		"merchants":  len(p.MerchantCategories),
		"categories": len(p.Categories),
	}).Info("Loaded learned patterns")
	return p
}

// Decode parses patterns JSON, preserving the category key order of the
// category_patterns object so that keyword-score ties resolve the same way
// on every run.
func Decode(data []byte) (*domain.LearnedPatterns, error) {
	var raw struct {
		MerchantCategories map[string]string `json:"merchant_categories"`
		CategoryPatterns   json.RawMessage   `json:"category_patterns"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid patterns file: %w", err)
	}

	result := domain.EmptyPatterns()
	for merchant, category := range raw.MerchantCategories {
		result.MerchantCategories[merchant] = category
	}

	if len(raw.CategoryPatterns) > 0 {
		ordered, err := decodeOrderedCategories(raw.CategoryPatterns)
		if err != nil {
			return nil, err
		}
		result.Categories = ordered
	}

	return result, nil
}

func decodeOrderedCategories(raw json.RawMessage) ([]domain.CategoryKeywords, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("invalid category_patterns: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("category_patterns must be an object")
	}

	var categories []domain.CategoryKeywords
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("invalid category_patterns key: %w", err)
		}
		name, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("category_patterns key is not a string")
		}

		var keywords []string
		if err := dec.Decode(&keywords); err != nil {
			return nil, fmt.Errorf("invalid keywords for category %q: %w", name, err)
		}
		categories = append(categories, domain.CategoryKeywords{Name: name, Keywords: keywords})
	}

	return categories, nil
}

// Save writes a patterns file. Only the trainer writes patterns; the serving
// path never mutates them.
func Save(path string, file File) error {
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode patterns: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write patterns file: %w", err)
	}
	return nil
}
