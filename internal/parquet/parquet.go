// Package parquet provides data structures and functions for exporting
// feature analysis history to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/featlens/featlens/schema"
	"github.com/parquet-go/parquet-go"
)

// Run represents a single analysis run with metadata.
// This struct maps to the featlens_runs database table.
type Run struct {
	// RunID is the unique identifier for this analysis run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the analysis began
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the analysis completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMS is the duration of the run in milliseconds (nullable)
	RunDurationMS *int64 `parquet:"run_duration_ms,optional,snappy"`

	// TotalSymbols is the number of symbols classified in this run (nullable)
	TotalSymbols *int64 `parquet:"total_symbols,optional,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// FeatureStats represents the per-feature aggregates for one analysis run.
// This struct maps to the featlens_feature_stats database table.
type FeatureStats struct {
	// RunID references the parent analysis run
	RunID int64 `parquet:"run_id,snappy"`

	// FeatureID is the feature slug the row aggregates
	FeatureID string `parquet:"feature_id,snappy"`

	// RunTime is when these aggregates were computed
	RunTime time.Time `parquet:"run_time,snappy"`

	// Functions is the number of free functions attributed to the feature
	Functions int64 `parquet:"functions,snappy"`

	// Methods is the number of methods attributed to the feature
	Methods int64 `parquet:"methods,snappy"`

	// Classes is the number of classes attributed to the feature
	Classes int64 `parquet:"classes,snappy"`

	// Total is the total symbol count for the feature
	Total int64 `parquet:"total,snappy"`

	// Commits is the number of commits touching the feature's files
	Commits int64 `parquet:"commits,snappy"`

	// Churn is the number of lines added plus deleted
	Churn int64 `parquet:"churn,snappy"`

	// HotspotScore is the churn-weighted activity score
	HotspotScore int64 `parquet:"hotspot_score,snappy"`
}

// WriteRunsParquet writes a slice of Run structs to a Parquet file.
func WriteRunsParquet(data []Run, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the Run struct tags
	writer := parquet.NewGenericWriter[Run](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteFeatureStatsParquet writes a slice of FeatureStats structs to a
// Parquet file.
func WriteFeatureStatsParquet(data []FeatureStats, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the FeatureStats struct tags
	writer := parquet.NewGenericWriter[FeatureStats](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertRunRecords converts schema.RunRecord to Run for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []Run {
	result := make([]Run, len(records))
	for i, record := range records {
		result[i] = Run{
			RunID:         record.RunID,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMS: record.RunDurationMS,
			TotalSymbols:  record.TotalSymbols,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertFeatureStatsRecords converts schema.FeatureStatsRecord to
// FeatureStats for Parquet export.
func ConvertFeatureStatsRecords(records []schema.FeatureStatsRecord) []FeatureStats {
	result := make([]FeatureStats, len(records))
	for i, record := range records {
		result[i] = FeatureStats{
			RunID:        record.RunID,
			FeatureID:    record.FeatureID,
			RunTime:      record.RunTime,
			Functions:    record.Functions,
			Methods:      record.Methods,
			Classes:      record.Classes,
			Total:        record.Total,
			Commits:      record.Commits,
			Churn:        record.Churn,
			HotspotScore: record.HotspotScore,
		}
	}
	return result
}
