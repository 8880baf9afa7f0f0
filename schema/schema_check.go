package schema

// CheckViolation is one feature-map lint finding.
type CheckViolation struct {
	RuleID string `json:"rule_id"`
	Kind   string `json:"kind"` // duplicate-id, reserved-id, invalid-id, empty-paths, shadowed
	Detail string `json:"detail"`
}

// CheckResult holds the outcome of a configuration and environment check.
type CheckResult struct {
	Passed           bool             `json:"passed"`
	RuleCount        int              `json:"rule_count"`
	Violations       []CheckViolation `json:"violations,omitempty"`
	ExtractorVersion string           `json:"extractor_version,omitempty"`
	ExtractorOK      bool             `json:"extractor_ok"`
	GitOK            bool             `json:"git_ok"`
}
