package schema

import "time"

// CacheStatus summarizes the state of the activity cache backend.
type CacheStatus struct {
	Backend      DatabaseBackend `json:"backend"`
	Location     string          `json:"location,omitempty"`
	EntryCount   int64           `json:"entry_count"`
	SizeBytes    int64           `json:"size_bytes,omitempty"`
	OldestEntry  *time.Time      `json:"oldest_entry,omitempty"`
	NewestEntry  *time.Time      `json:"newest_entry,omitempty"`
	SizeEstimate bool            `json:"size_estimate,omitempty"`
}

// HistoryStatus summarizes the state of the run-history backend.
type HistoryStatus struct {
	Backend        DatabaseBackend `json:"backend"`
	Location       string          `json:"location,omitempty"`
	TotalRuns      int64           `json:"total_runs"`
	TotalStatsRows int64           `json:"total_stats_rows"`
	LastRunID      *int64          `json:"last_run_id,omitempty"`
	LastRunTime    *time.Time      `json:"last_run_time,omitempty"`
	OldestRunTime  *time.Time      `json:"oldest_run_time,omitempty"`
}
