package contract

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/featlens/featlens/schema"
)

// FeatureIDPattern constrains rule identifiers to slug form.
var FeatureIDPattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// ReadFeatureMap reads and parses the feature map YAML at the given path
// without validating its contents. The check command relies on this to lint
// a map that would fail validation.
func ReadFeatureMap(path string) (*schema.FeatureMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read feature map %q: %w. Provide one with --feature-map or create featmap.yaml at the repo root", path, err)
	}

	var fm schema.FeatureMap
	if err := yaml.Unmarshal(data, &fm); err != nil {
		return nil, fmt.Errorf("cannot parse feature map %q: %w", path, err)
	}
	return &fm, nil
}

// LoadFeatureMap reads and validates the feature map YAML at the given path.
// Rule order in the file is preserved because it carries classification
// priority.
func LoadFeatureMap(path string) (*schema.FeatureMap, error) {
	fm, err := ReadFeatureMap(path)
	if err != nil {
		return nil, err
	}
	if err := ValidateFeatureMap(fm); err != nil {
		return nil, fmt.Errorf("invalid feature map %q: %w", path, err)
	}
	return fm, nil
}

// ValidateFeatureMap enforces the structural rules a feature map must obey
// before classification can run.
func ValidateFeatureMap(fm *schema.FeatureMap) error {
	if len(fm.Rules) == 0 {
		return fmt.Errorf("feature map declares no features. Add at least one entry under 'features:'")
	}

	seen := make(map[string]struct{}, len(fm.Rules))
	for i, rule := range fm.Rules {
		if rule.ID == "" {
			return fmt.Errorf("feature at index %d has no id", i)
		}
		if rule.ID == schema.UncategorizedID {
			return fmt.Errorf("feature id %q is reserved for the catch-all bucket", schema.UncategorizedID)
		}
		if !FeatureIDPattern.MatchString(rule.ID) {
			return fmt.Errorf("feature id %q is not a valid slug (lowercase letters, digits, hyphens)", rule.ID)
		}
		if _, dup := seen[rule.ID]; dup {
			return fmt.Errorf("feature id %q is declared more than once", rule.ID)
		}
		seen[rule.ID] = struct{}{}

		if rule.Name == "" {
			return fmt.Errorf("feature %q has no name", rule.ID)
		}
		if len(rule.Paths) == 0 {
			return fmt.Errorf("feature %q declares no path substrings", rule.ID)
		}
		for _, sub := range rule.Paths {
			if sub == "" {
				return fmt.Errorf("feature %q has an empty path substring, which would match every file", rule.ID)
			}
		}
	}
	return nil
}
