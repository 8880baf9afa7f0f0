package schema

// FeatureDelta compares one feature's churn activity between a baseline
// window and a recent window.
type FeatureDelta struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	BaseCommits   int    `json:"base_commits"`
	BaseChurn     int    `json:"base_churn"`
	BaseScore     int    `json:"base_score"`
	TargetCommits int    `json:"target_commits"`
	TargetChurn   int    `json:"target_churn"`
	TargetScore   int    `json:"target_score"`
	DeltaCommits  int    `json:"delta_commits"`
	DeltaChurn    int    `json:"delta_churn"`
	DeltaScore    int    `json:"delta_score"`
	Status        Status `json:"status"`
}

// ComparisonSummary has the windows and net movement of a comparison run.
type ComparisonSummary struct {
	BaseWindow    string `json:"base_window"`
	TargetWindow  string `json:"target_window"`
	NetCommits    int    `json:"net_commits"`
	NetChurn      int    `json:"net_churn"`
	NewFeatures   int    `json:"new_features"`
	QuietFeatures int    `json:"quiet_features"`
}

// ComparisonResult is the complete output of a compare run.
type ComparisonResult struct {
	Deltas  []FeatureDelta    `json:"deltas"`
	Summary ComparisonSummary `json:"summary"`
}
