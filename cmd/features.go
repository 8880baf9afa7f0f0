package cmd

import (
	"github.com/featlens/featlens/core"
	"github.com/featlens/featlens/internal/contract"
	"github.com/spf13/cobra"
)

// featuresCmd performs feature-level hotspot analysis.
var featuresCmd = &cobra.Command{
	Use:   "features [scan-root]",
	Short: "Show features ranked by symbol footprint and churn hotspot score.",
	Long: `Extract code symbols, classify them into product features, and rank the features.

Without a time window the ranking follows symbol counts, showing how much code
each feature owns. With --days or --since, Git churn is overlaid and features
are ranked by hotspot score (churn weighted by commit frequency), helping you:
- See which product areas concentrate development activity
- Spot features whose code volume outgrew their team attention
- Track how well the feature map covers the codebase
- Feed per-feature metrics into dashboards and planning

Examples:
  # Rank features by code footprint
  featlens features

  # Overlay the last 30 days of churn and rank by hotspot score
  featlens features --days 30

  # Churn since a fixed date, with per-feature detail and top files
  featlens features --since 2026-01-01 --detail --top-files

  # Export findings to CSV for tracking
  featlens features --days 90 --output csv --output-file features.csv

  # Write Parquet artifacts for DuckDB or pandas
  featlens features --days 30 --parquet out/featlens`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteFeatures(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run feature analysis", err)
		}
	},
}
