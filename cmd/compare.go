package cmd

import (
	"github.com/featlens/featlens/core"
	"github.com/featlens/featlens/internal/contract"
	"github.com/spf13/cobra"
)

// compareCmd focused on churn movement between two time windows.
var compareCmd = &cobra.Command{
	Use:   "compare [scan-root]",
	Short: "Compare per-feature churn between a recent window and a prior baseline",
	Long: `Compare per-feature Git churn between two adjacent time windows.

The recent window covers the last --days days; the baseline window covers the
--baseline-days days before that. Each feature is labeled:
  new    - active recently, idle in the baseline
  quiet  - active in the baseline, idle recently
  active - active in both windows

Ideal for:
- Sprint and quarter reviews - see where attention moved
- Detecting features heating up before they become incidents
- Confirming that a deprecated area actually went quiet

Examples:
  # Last 30 days against the prior 90 (defaults)
  featlens compare

  # Last sprint against the previous two
  featlens compare --days 14 --baseline-days 28

  # Export movement for reporting
  featlens compare --days 30 --output csv --output-file movement.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCompare(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run comparison analysis", err)
		}
	},
}
