// Package cmd defines the command-line interface for featlens.
package cmd

import (
	"github.com/featlens/featlens/internal/contract"
	"github.com/featlens/featlens/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(featuresCmd)
	rootCmd.AddCommand(symbolsCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(historyCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("feature-map", "", "Path to the feature map YAML (default: featmap.yaml in the scan root)")
	rootCmd.PersistentFlags().Int("days", 0, "Churn window in days counted back from now (0 = symbols only)")
	rootCmd.PersistentFlags().String("since", "", "Churn window start in ISO8601 (overrides --days)")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or md or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Bool("detail", false, "Print per-feature metadata (category, file count, symbol kinds)")
	rootCmd.PersistentFlags().Bool("top-files", false, "Print the highest-churn files under each feature")
	rootCmd.PersistentFlags().String("parquet", "", "Base path for Parquet artifacts (writes <base>.features.parquet and <base>.symbols.parquet)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.NoneBackend), "Churn cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("history-backend", "", "Run history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for run history (must differ from cache-db-connect)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of symbolsCmd to Viper
	symbolsCmd.Flags().StringP("feature", "f", "", "Restrict symbols to one feature id, or 'uncategorized'")
	if err := viper.BindPFlags(symbolsCmd.Flags()); err != nil {
		contract.LogFatal("Error binding symbols flags", err)
	}

	// Bind all flags of compareCmd to Viper
	compareCmd.Flags().Int("baseline-days", contract.DefaultBaselineDays, "Length of the baseline window in days, ending where the recent window starts")
	if err := viper.BindPFlags(compareCmd.Flags()); err != nil {
		contract.LogFatal("Error binding compare flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
