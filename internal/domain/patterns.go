package domain

// CategoryKeywords is one learned category together with its keyword tokens,
// most frequent first.
type CategoryKeywords struct {
	Name     string
	Keywords []string
}

// LearnedPatterns holds the categorization tables produced offline by the
// trainer. MerchantCategories maps exact uppercased descriptions to a
// category; Categories keeps the patterns file's key order so that scoring
// ties resolve deterministically. Loaded once at startup and treated as
// read-only for the life of the process.
type LearnedPatterns struct {
	MerchantCategories map[string]string
	Categories         []CategoryKeywords
}

// EmptyPatterns returns a valid zero-value pattern table. Used when no
// patterns file exists or it cannot be decoded.
func EmptyPatterns() *LearnedPatterns {
	return &LearnedPatterns{
		MerchantCategories: make(map[string]string),
	}
}

// CategoryKeywordList returns the keywords learned for a category, or nil.
func (p *LearnedPatterns) CategoryKeywordList(name string) []string {
	for _, c := range p.Categories {
		if c.Name == name {
			return c.Keywords
		}
	}
	return nil
}
