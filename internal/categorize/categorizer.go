package categorize

import (
	"regexp"
	"strings"

	"ledger-engine/internal/domain"
)

// Categorizer maps a free-text transaction description to a category label.
// Implementations never fail: when nothing matches they return
// domain.DefaultCategory.
type Categorizer interface {
	Categorize(description string) string
}

// RuleCategorizer applies a fixed priority cascade of keyword rules, then
// falls back to the learned merchant/keyword tables. Rule order matters:
// subscription merchants and transfer phrasing are tested before the generic
// keyword buckets so that e.g. "TRANSFER TO MARKET ST" is a transfer, not
// groceries.
type RuleCategorizer struct {
	patterns *domain.LearnedPatterns
}

func NewRuleCategorizer(patterns *domain.LearnedPatterns) *RuleCategorizer {
	if patterns == nil {
		patterns = domain.EmptyPatterns()
	}
	return &RuleCategorizer{patterns: patterns}
}

var (
	transferOutRe = regexp.MustCompile(`\btransfer to\b|\btransfer\s+to\s+bank\b|\btransfer\b.*\bto\b`)
	transferInRe  = regexp.MustCompile(`\btransfer from\b|\btransfer in\b|\bcash-in\b|\bdeposit\b`)
)

var subscriptionMerchants = []string{
	"netflix", "google play", "googleplay", "spotify", "youtube", "hulu",
	"subscription", "subs",
}

var withdrawalKeywords = []string{
	"withdrawal", "atm", "debit card withdrawal", "card withdrawal",
}

// keywordBucket is one generic category rule, applied in order after the
// high-priority rules above.
type keywordBucket struct {
	category string
	keywords []string
}

var keywordBuckets = []keywordBucket{
	{"groceries", []string{"grocery", "supermarket", "market"}},
	// dining-or-entertainment, disambiguated below
	{"dining", []string{"restaurant", "food", "cafe", "jollibee", "mcdo", "pizza", "starbucks", "subscription payment"}},
	{"utilities", []string{"meralco", "pldt", "water", "utility", "electric"}},
	{"transportation", []string{"shell", "petron", "caltex", "gas", "fuel", "uber", "grab", "exxon"}},
	{"shopping", []string{"mall", "shopping", "lazada", "shopee", "store", "wilcon", "handyman", "mr diy", "allhome", "dhl"}},
	{"housing", []string{"rent", "mortgage"}},
	{"business_expense", []string{"wholesale", "office"}},
}

var openingBalancePhrases = []string{
	"opening balance", "balance b/f", "balance brought forward", "previous balance",
}

func (c *RuleCategorizer) Categorize(description string) string {
	if description == "" {
		return domain.DefaultCategory
	}
	lowered := strings.ToLower(description)

	if containsAny(lowered, subscriptionMerchants) {
		return "entertainment"
	}

	if transferOutRe.MatchString(lowered) {
		return "transfer_out"
	}
	if transferInRe.MatchString(lowered) {
		return "transfer_in"
	}

	if containsAny(lowered, withdrawalKeywords) {
		return "cash_withdrawal"
	}

	for _, bucket := range keywordBuckets {
		if !containsAny(lowered, bucket.keywords) {
			continue
		}
		if bucket.category == "dining" {
			if strings.Contains(lowered, "restaurant") || strings.Contains(lowered, "food") {
				return "dining"
			}
			return "entertainment"
		}
		return bucket.category
	}

	if containsAny(lowered, openingBalancePhrases) {
		return "opening_balance"
	}

	if cat := c.learnedCategory(description); cat != "" {
		return cat
	}

	return domain.DefaultCategory
}

// learnedCategory consults the trained tables: exact merchant match first,
// then the category whose keyword tokens overlap the description the most.
// Ties keep the first category in patterns-file order.
func (c *RuleCategorizer) learnedCategory(description string) string {
	upper := strings.ToUpper(strings.TrimSpace(description))

	if cat, ok := c.patterns.MerchantCategories[upper]; ok {
		return cat
	}

	best := ""
	bestScore := 0
	for _, entry := range c.patterns.Categories {
		score := 0
		for _, kw := range entry.Keywords {
			if kw != "" && strings.Contains(upper, strings.ToUpper(kw)) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			best = entry.Name
		}
	}
	return best
}

func containsAny(lowered string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}
