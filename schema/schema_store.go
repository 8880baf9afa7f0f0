package schema

import "time"

// RunRecord is one analysis run as persisted in the history backend.
type RunRecord struct {
	RunID         int64      `json:"run_id"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       *time.Time `json:"end_time,omitempty"`
	RunDurationMS *int64     `json:"run_duration_ms,omitempty"`
	TotalSymbols  *int64     `json:"total_symbols,omitempty"`
	ConfigParams  *string    `json:"config_params,omitempty"`
}

// FeatureStatsRecord is one feature's aggregate for one run as persisted
// in the history backend.
type FeatureStatsRecord struct {
	RunID        int64     `json:"run_id"`
	FeatureID    string    `json:"feature_id"`
	RunTime      time.Time `json:"run_time"`
	Functions    int64     `json:"functions"`
	Methods      int64     `json:"methods"`
	Classes      int64     `json:"classes"`
	Total        int64     `json:"total"`
	Commits      int64     `json:"commits"`
	Churn        int64     `json:"churn"`
	HotspotScore int64     `json:"hotspot_score"`
}
