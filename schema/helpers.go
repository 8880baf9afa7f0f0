package schema

// EnrichedFeatureReport decorates a FeatureReport with its presentation rank.
type EnrichedFeatureReport struct {
	Rank int `json:"rank"`
	FeatureReport
}

// EnrichReports assigns 1-based ranks in the order reports were ranked.
func EnrichReports(reports []FeatureReport) []EnrichedFeatureReport {
	enriched := make([]EnrichedFeatureReport, 0, len(reports))
	for i, report := range reports {
		enriched = append(enriched, EnrichedFeatureReport{
			Rank:          i + 1,
			FeatureReport: report,
		})
	}
	return enriched
}

// IsUncategorized reports whether a report is the catch-all bucket.
func (r FeatureReport) IsUncategorized() bool {
	return r.ID == UncategorizedID
}

// HasActivity reports whether a delta saw churn in either window.
func (d FeatureDelta) HasActivity() bool {
	return d.BaseChurn > 0 || d.TargetChurn > 0
}
