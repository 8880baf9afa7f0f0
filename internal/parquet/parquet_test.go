package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/featlens/featlens/schema"
)

func sampleRuns() []Run {
	now := time.Now()
	end := now.Add(90 * time.Second)
	durationMS := end.Sub(now).Milliseconds()
	totalSymbols := int64(412)
	configParams := `{"days":30,"limit":25}`

	return []Run{
		{
			RunID:         1,
			StartTime:     now.Add(-2 * time.Hour),
			EndTime:       &end,
			RunDurationMS: &durationMS,
			TotalSymbols:  &totalSymbols,
			ConfigParams:  &configParams,
		},
		{
			RunID:     2,
			StartTime: now,
			// Nullable fields stay nil for an unfinished run
		},
	}
}

func sampleFeatureStats() []FeatureStats {
	now := time.Now()
	return []FeatureStats{
		{
			RunID:        1,
			FeatureID:    "checkout",
			RunTime:      now,
			Functions:    12,
			Methods:      8,
			Classes:      3,
			Total:        23,
			Commits:      4,
			Churn:        100,
			HotspotScore: 200,
		},
		{
			RunID:     1,
			FeatureID: "uncategorized",
			RunTime:   now,
			Total:     5,
			Functions: 5,
		},
	}
}

func TestRunStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	runSchema := parquet.SchemaOf(new(Run))
	require.NotNil(t, runSchema)

	expectedColumns := []string{
		"run_id",
		"start_time",
		"end_time",
		"run_duration_ms",
		"total_symbols",
		"config_params",
	}

	for _, colName := range expectedColumns {
		col, ok := runSchema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestFeatureStatsStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	statsSchema := parquet.SchemaOf(new(FeatureStats))
	require.NotNil(t, statsSchema)

	expectedColumns := []string{
		"run_id",
		"feature_id",
		"run_time",
		"functions",
		"methods",
		"classes",
		"total",
		"commits",
		"churn",
		"hotspot_score",
	}

	for _, colName := range expectedColumns {
		col, ok := statsSchema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestWriteRunsParquet(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "runs.parquet")

	data := sampleRuns()
	err := WriteRunsParquet(data, outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	// Read back and verify data
	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer file.Close()

	reader := parquet.NewGenericReader[Run](file)
	defer reader.Close()

	readData := make([]Run, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	assert.Equal(t, len(data), n, "Should read all records")

	for i := 0; i < len(data); i++ {
		assert.Equal(t, data[i].RunID, readData[i].RunID, "RunID should match")
		assert.WithinDuration(t, data[i].StartTime, readData[i].StartTime, time.Nanosecond, "StartTime should match")

		// Check nullable fields
		if data[i].EndTime == nil {
			assert.Nil(t, readData[i].EndTime, "EndTime should be nil")
		} else {
			require.NotNil(t, readData[i].EndTime, "EndTime should not be nil")
			assert.WithinDuration(t, *data[i].EndTime, *readData[i].EndTime, time.Nanosecond, "EndTime should match")
		}

		if data[i].RunDurationMS == nil {
			assert.Nil(t, readData[i].RunDurationMS, "RunDurationMS should be nil")
		} else {
			require.NotNil(t, readData[i].RunDurationMS, "RunDurationMS should not be nil")
			assert.Equal(t, *data[i].RunDurationMS, *readData[i].RunDurationMS, "RunDurationMS should match")
		}

		if data[i].ConfigParams == nil {
			assert.Nil(t, readData[i].ConfigParams, "ConfigParams should be nil")
		} else {
			require.NotNil(t, readData[i].ConfigParams, "ConfigParams should not be nil")
			assert.Equal(t, *data[i].ConfigParams, *readData[i].ConfigParams, "ConfigParams should match")
		}
	}
}

func TestWriteFeatureStatsParquet(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "feature_stats.parquet")

	data := sampleFeatureStats()
	err := WriteFeatureStatsParquet(data, outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	// Read back and verify data
	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer file.Close()

	reader := parquet.NewGenericReader[FeatureStats](file)
	defer reader.Close()

	readData := make([]FeatureStats, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	assert.Equal(t, len(data), n, "Should read all records")

	for i := 0; i < len(data); i++ {
		assert.Equal(t, data[i].RunID, readData[i].RunID, "RunID should match")
		assert.Equal(t, data[i].FeatureID, readData[i].FeatureID, "FeatureID should match")
		assert.Equal(t, data[i].Functions, readData[i].Functions, "Functions should match")
		assert.Equal(t, data[i].Methods, readData[i].Methods, "Methods should match")
		assert.Equal(t, data[i].Classes, readData[i].Classes, "Classes should match")
		assert.Equal(t, data[i].Total, readData[i].Total, "Total should match")
		assert.Equal(t, data[i].Commits, readData[i].Commits, "Commits should match")
		assert.Equal(t, data[i].Churn, readData[i].Churn, "Churn should match")
		assert.Equal(t, data[i].HotspotScore, readData[i].HotspotScore, "HotspotScore should match")
	}
}

func TestWriteRunsParquetEmptyData(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "empty_runs.parquet")

	err := WriteRunsParquet([]Run{}, outputPath)
	require.NoError(t, err, "Writing empty data should not produce error")

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should contain schema even if empty")
}

func TestWriteRunsParquetInvalidPath(t *testing.T) {
	err := WriteRunsParquet(sampleRuns(), "/nonexistent/directory/output.parquet")
	require.Error(t, err, "Writing to invalid path should produce error")
}

func TestWriteFeatureStatsParquetInvalidPath(t *testing.T) {
	err := WriteFeatureStatsParquet(sampleFeatureStats(), "/nonexistent/directory/output.parquet")
	require.Error(t, err, "Writing to invalid path should produce error")
}

func TestConvertRunRecords(t *testing.T) {
	now := time.Now()
	end := now.Add(time.Minute)
	durationMS := int64(60000)
	totalSymbols := int64(99)
	configParams := `{"days":7}`

	records := []schema.RunRecord{
		{
			RunID:         7,
			StartTime:     now,
			EndTime:       &end,
			RunDurationMS: &durationMS,
			TotalSymbols:  &totalSymbols,
			ConfigParams:  &configParams,
		},
		{RunID: 8, StartTime: now},
	}

	converted := ConvertRunRecords(records)
	require.Len(t, converted, 2)

	assert.Equal(t, int64(7), converted[0].RunID)
	assert.Equal(t, now, converted[0].StartTime)
	require.NotNil(t, converted[0].EndTime)
	assert.Equal(t, end, *converted[0].EndTime)
	require.NotNil(t, converted[0].TotalSymbols)
	assert.Equal(t, int64(99), *converted[0].TotalSymbols)

	assert.Equal(t, int64(8), converted[1].RunID)
	assert.Nil(t, converted[1].EndTime)
	assert.Nil(t, converted[1].ConfigParams)
}

func TestConvertFeatureStatsRecords(t *testing.T) {
	now := time.Now()
	records := []schema.FeatureStatsRecord{
		{
			RunID:        3,
			FeatureID:    "search",
			RunTime:      now,
			Functions:    10,
			Methods:      5,
			Classes:      2,
			Total:        17,
			Commits:      6,
			Churn:        240,
			HotspotScore: 588,
		},
	}

	converted := ConvertFeatureStatsRecords(records)
	require.Len(t, converted, 1)
	assert.Equal(t, int64(3), converted[0].RunID)
	assert.Equal(t, "search", converted[0].FeatureID)
	assert.Equal(t, int64(17), converted[0].Total)
	assert.Equal(t, int64(588), converted[0].HotspotScore)
}
