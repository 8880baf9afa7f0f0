package schema

// TopFile is one churn contributor inside a feature bucket.
type TopFile struct {
	Path    string `json:"path"`
	Commits int    `json:"commits"`
	Churn   int    `json:"churn"`
}

// FeatureReport aggregates symbol counts and churn activity for one feature.
// Churn fields stay zero on unwindowed runs.
type FeatureReport struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	Functions    int       `json:"functions"`
	Methods      int       `json:"methods"`
	Classes      int       `json:"classes"`
	Total        int       `json:"total"`
	Commits      int       `json:"commits,omitempty"`
	Churn        int       `json:"churn,omitempty"`
	HotspotScore int       `json:"hotspot_score,omitempty"`
	TopFiles     []TopFile `json:"top_files,omitempty"`
}

// AnalysisOutput bundles everything a single pipeline run produces.
type AnalysisOutput struct {
	Reports       []FeatureReport   `json:"features"`
	Symbols       []CanonicalSymbol `json:"-"`
	TotalSymbols  int               `json:"total_symbols"`
	Uncategorized int               `json:"uncategorized"`
	CoverageRate  float64           `json:"coverage_rate"`
	Windowed      bool              `json:"windowed"`
}
