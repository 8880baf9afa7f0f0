package outwriter

import (
	"fmt"
	"path/filepath"

	"github.com/featlens/featlens/internal/contract"
)

// scanName returns a short display name for the scan root.
func scanName(cfg *contract.Config) string {
	name := filepath.Base(cfg.ScanRoot)
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "current"
	}
	return name
}

// LogAnalysisHeader prints a header for a single analysis run.
func LogAnalysisHeader(cfg *contract.Config) {
	// Line 1: The scan summary (root and rule count)
	fmt.Printf("🔎 Scan: %s (%d feature rules)\n", scanName(cfg), len(cfg.FeatureMap.Rules))

	// Line 2: The churn window, only when one was requested
	if cfg.Windowed {
		fmt.Printf("📅 Range: %s → %s\n",
			cfg.StartTime.Format(contract.DateTimeFormat),
			cfg.EndTime.Format(contract.DateTimeFormat))
	}
}

// LogCompareHeader prints a header for comparison analysis.
func LogCompareHeader(cfg *contract.Config) {
	fmt.Printf("🔎 Scan: %s (%d feature rules)\n", scanName(cfg), len(cfg.FeatureMap.Rules))
	fmt.Printf("📊 Comparing: last %dd ↔ prior %dd baseline\n", cfg.CompareDays, cfg.BaselineDays)
}
