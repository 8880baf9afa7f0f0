// Package classify turns raw extractor entries into canonical symbols and
// attributes them to features via ordered path rules.
package classify

import (
	"strings"

	"github.com/featlens/featlens/schema"
)

// UncategorizedRule is the sentinel rule returned when no configured rule
// matches a path.
var UncategorizedRule = schema.FeatureRule{
	ID:       schema.UncategorizedID,
	Name:     schema.UncategorizedName,
	Category: schema.UnknownCategory,
}

// ClassifyPath returns the first rule with any path substring contained in
// the normalized path. Rule order is priority, so a path matching several
// rules always lands in the earliest one. Matching is plain substring
// containment with no segment-boundary awareness; operators rely on that to
// target fragments like "/checkout/" or "CheckoutButton".
func ClassifyPath(path string, rules []schema.FeatureRule) schema.FeatureRule {
	for _, rule := range rules {
		for _, sub := range rule.Paths {
			if strings.Contains(path, sub) {
				return rule
			}
		}
	}
	return UncategorizedRule
}

// AttributeSymbols stamps every symbol with its feature, in place.
func AttributeSymbols(symbols []schema.CanonicalSymbol, rules []schema.FeatureRule) {
	for i := range symbols {
		rule := ClassifyPath(symbols[i].Path, rules)
		symbols[i].FeatureID = rule.ID
		symbols[i].FeatureName = rule.Name
	}
}
