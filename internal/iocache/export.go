package iocache

import (
	"errors"
	"fmt"

	"github.com/featlens/featlens/internal/parquet"
)

// ExecuteHistoryExport exports the persisted run history to Parquet files.
func ExecuteHistoryExport(outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	store := Manager.GetHistoryStore()
	if store == nil {
		return errors.New("history store is not initialized. Configure --history-backend first")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no run history found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total runs: %d\n", status.TotalRuns)
	fmt.Printf("Total feature stats rows: %d\n", status.TotalStatsRows)

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}
	stats, err := store.GetAllFeatureStats()
	if err != nil {
		return fmt.Errorf("failed to retrieve feature stats: %w", err)
	}

	// Convert to Parquet format
	parquetRuns := parquet.ConvertRunRecords(runs)
	parquetStats := parquet.ConvertFeatureStatsRecords(stats)

	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	fmt.Printf("Exported %d runs to: %s\n", len(parquetRuns), runsFile)

	statsFile := outputFile + ".feature_stats.parquet"
	if err := parquet.WriteFeatureStatsParquet(parquetStats, statsFile); err != nil {
		return fmt.Errorf("failed to write feature stats: %w", err)
	}
	fmt.Printf("Exported %d feature stat records to: %s\n", len(parquetStats), statsFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
