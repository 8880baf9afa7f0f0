package schema

// FeatureRule maps path substrings to a feature. Declared order is priority:
// the first rule with any matching substring wins, so operators place
// specific overrides before broad catch-alls.
type FeatureRule struct {
	ID       string   `yaml:"id" json:"id"`
	Name     string   `yaml:"name" json:"name"`
	Category string   `yaml:"category" json:"category"`
	Paths    []string `yaml:"paths" json:"paths"`
}

// FeatureMap is the operator-authored feature configuration for a project.
type FeatureMap struct {
	Project       string        `yaml:"project" json:"project"`
	Excludes      []string      `yaml:"excludes" json:"excludes,omitempty"`
	ChurnExcludes []string      `yaml:"churn_excludes" json:"churn_excludes,omitempty"`
	Rules         []FeatureRule `yaml:"features" json:"features"`
}
