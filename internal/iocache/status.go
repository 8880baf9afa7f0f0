package iocache

import (
	"fmt"

	"github.com/featlens/featlens/schema"
)

const statusTimeFormat = "2006-01-02 15:04:05"

// PrintCacheStatus prints activity cache status information.
func PrintCacheStatus(status schema.CacheStatus) {
	fmt.Printf("Cache Backend: %s\n", status.Backend)
	if status.Backend == schema.NoneBackend {
		return
	}
	fmt.Printf("Location: %s\n", status.Location)
	fmt.Printf("Total Entries: %d\n", status.EntryCount)
	if status.EntryCount > 0 {
		if status.NewestEntry != nil {
			fmt.Printf("Newest Entry: %s\n", status.NewestEntry.Format(statusTimeFormat))
		}
		if status.OldestEntry != nil {
			fmt.Printf("Oldest Entry: %s\n", status.OldestEntry.Format(statusTimeFormat))
		}
	}
	if status.SizeEstimate {
		fmt.Printf("Table Size: ~%d bytes (estimated)\n", status.SizeBytes)
	} else {
		fmt.Printf("Table Size: %d bytes\n", status.SizeBytes)
	}
}

// PrintHistoryStatus prints run history status information.
func PrintHistoryStatus(status schema.HistoryStatus) {
	fmt.Printf("History Backend: %s\n", status.Backend)
	if status.Backend == schema.NoneBackend {
		return
	}
	fmt.Printf("Location: %s\n", status.Location)
	fmt.Printf("Total Runs: %d\n", status.TotalRuns)
	fmt.Printf("Total Feature Stats Rows: %d\n", status.TotalStatsRows)
	if status.TotalRuns == 0 {
		return
	}
	if status.LastRunID != nil {
		fmt.Printf("Last Run ID: %d\n", *status.LastRunID)
	}
	if status.LastRunTime != nil {
		fmt.Printf("Last Run: %s\n", status.LastRunTime.Format(statusTimeFormat))
	}
	if status.OldestRunTime != nil {
		fmt.Printf("Oldest Run: %s\n", status.OldestRunTime.Format(statusTimeFormat))
	}
}
