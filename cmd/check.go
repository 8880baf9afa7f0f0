package cmd

import (
	"github.com/featlens/featlens/core"
	"github.com/featlens/featlens/internal/contract"
	"github.com/spf13/cobra"
)

// checkCmd focused on CI/CD policy enforcement.
var checkCmd = &cobra.Command{
	Use:   "check [scan-root]",
	Short: "Validate the feature map and required tools (fails build on violations)",
	Long: `Lint the feature map and probe the external tools featlens depends on.

Designed for CI/CD integration - fails with a non-zero exit code when the
feature map has structural problems or universal-ctags/git are missing.

Reported violations:
- duplicate-id: the same feature id declared twice
- reserved-id:  a rule claims the catch-all 'uncategorized' id
- invalid-id:   an id that is not a lowercase slug
- empty-paths:  a rule with no path substrings, or an empty substring
- shadowed:     a rule that earlier rules always match first

Examples:
  # Gate a pull request on feature map health
  featlens check

  # Validate a candidate map before rollout
  featlens check --feature-map featmap-proposed.yaml

  # Machine-readable report for pipeline annotations
  featlens check --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: checkSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCheck(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Feature map check failed", err)
		}
	},
}
