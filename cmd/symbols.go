package cmd

import (
	"github.com/featlens/featlens/core"
	"github.com/featlens/featlens/internal/contract"
	"github.com/spf13/cobra"
)

// symbolsCmd lists individual classified symbols.
var symbolsCmd = &cobra.Command{
	Use:   "symbols [scan-root]",
	Short: "List classified symbols with their feature attribution.",
	Long: `Extract and normalize code symbols, then list them with feature attribution.

Each row shows the symbol name, kind (function, method, class), file, line and
the feature it was classified into. Useful for:
- Auditing why a feature's symbol count looks off
- Finding the code that fell into the uncategorized bucket
- Reviewing orphan exports recovered from .tsx/.jsx files

Examples:
  # List the first 25 symbols
  featlens symbols

  # Show everything the feature map failed to classify
  featlens symbols --feature uncategorized --limit 100

  # Inspect one feature's symbols as JSON
  featlens symbols --feature checkout --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSymbols(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run symbol listing", err)
		}
	},
}
