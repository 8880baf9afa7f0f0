package contract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/featlens/featlens/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit    = 25
	MaxResultLimit        = 1000
	DefaultCompareDays    = 30
	DefaultBaselineDays   = 90
	DefaultFeatureMapName = "featmap.yaml"
	MaxComparisonDays     = 3650
)

// CacheGranularity defines the time granularity for caching churn results.
// This ensures consistent cache key generation and time window alignment
// across the application and tests.
const CacheGranularity = time.Hour

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for the analysis.
// This struct remains the "final, validated" config.
type Config struct {
	ScanRoot       string // Absolute path to the scan root (the repo root when inside a repo)
	FeatureMapPath string
	FeatureMap     *schema.FeatureMap

	StartTime time.Time
	EndTime   time.Time
	Windowed  bool // True when a churn window was requested

	ResultLimit   int
	Output        schema.OutputMode
	OutputFile    string
	Detail        bool
	TopFiles      bool
	FeatureFilter string // Restrict symbol listings to one feature id
	ParquetBase   string // Base path for parquet artifacts ("" = disabled)
	Width         int    // Terminal width override (0 = auto-detect)
	UseColors     bool   // Enable colored labels in table output

	CompareDays  int
	BaselineDays int

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	ScanRootStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	FeatureMapStr    string `mapstructure:"feature-map"`
	Days             int    `mapstructure:"days"`
	Since            string `mapstructure:"since"`
	Limit            int    `mapstructure:"limit"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Detail           bool   `mapstructure:"detail"`
	TopFiles         bool   `mapstructure:"top-files"`
	Parquet          string `mapstructure:"parquet"`
	Width            int    `mapstructure:"width"`
	Color            string `mapstructure:"color"`
	CacheBackend     string `mapstructure:"cache-backend"`
	CacheDBConnect   string `mapstructure:"cache-db-connect"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`

	// --- Fields from symbolsCmd.Flags() ---
	Feature string `mapstructure:"feature"`

	// --- Fields from compareCmd.Flags() ---
	BaselineDays int `mapstructure:"baseline-days"`
}

// Clone returns a deep copy of the Config struct. The loaded feature map is
// shared between clones because it is immutable after loading.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// CloneWithTimeWindow creates a copy of the Config and sets the new
// StartTime and EndTime with Windowed enabled.
func (c *Config) CloneWithTimeWindow(start time.Time, end time.Time) *Config {
	clone := c.Clone()
	clone.StartTime = start
	clone.EndTime = end
	clone.Windowed = true
	return clone
}

// GetAnalysisStartTime returns the configured start time, truncated to the
// caching granularity. This ensures consistent cache key generation and time
// window alignment across the application and tests.
func (c *Config) GetAnalysisStartTime() time.Time {
	return c.StartTime.Truncate(CacheGranularity)
}

// GetAnalysisEndTime returns the configured end time, truncated to the
// caching granularity.
func (c *Config) GetAnalysisEndTime() time.Time {
	return c.EndTime.Truncate(CacheGranularity)
}

// ProcessAndValidate performs all complex parsing and validation on the raw
// inputs and updates the final Config struct.
func ProcessAndValidate(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	// All validation functions read from 'input' and populate 'cfg'.
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processChurnWindow(cfg, input); err != nil {
		return err
	}
	if err := processComparisonWindows(cfg, input); err != nil {
		return err
	}
	if err := resolveScanRoot(ctx, cfg, client, input); err != nil {
		return err
	}
	if err := resolveFeatureMap(cfg, input); err != nil {
		return err
	}
	return nil
}

// ProcessAndValidateForCheck builds the config like ProcessAndValidate but
// loads the feature map without enforcing its structural rules. The check
// command reports every violation instead of dying on the first one.
func ProcessAndValidateForCheck(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processChurnWindow(cfg, input); err != nil {
		return err
	}
	if err := processComparisonWindows(cfg, input); err != nil {
		return err
	}
	if err := resolveScanRoot(ctx, cfg, client, input); err != nil {
		return err
	}
	if err := resolveFeatureMapPath(cfg, input); err != nil {
		return err
	}
	fm, err := ReadFeatureMap(cfg.FeatureMapPath)
	if err != nil {
		return err
	}
	cfg.FeatureMap = fm
	return nil
}

// ValidateDatabaseConnectionString validates the format of database
// connection strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates cache and history backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	// --- History Backend Validation ---
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if cfg.HistoryBackend != "" {
		if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
			return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
		}
		cfg.HistoryDBConnect = input.HistoryDBConnect
		if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
			return err
		}

		// Validate that cache and history use different databases
		if cfg.CacheBackend == cfg.HistoryBackend && cfg.CacheBackend != schema.NoneBackend {
			// For SQLite, resolve to actual file paths to catch default path conflicts
			if cfg.CacheBackend == schema.SQLiteBackend {
				cacheDBPath := cfg.CacheDBConnect
				if cacheDBPath == "" {
					cacheDBPath = GetCacheDBFilePath()
				}
				historyDBPath := cfg.HistoryDBConnect
				if historyDBPath == "" {
					historyDBPath = GetHistoryDBFilePath()
				}
				if cacheDBPath == historyDBPath {
					return fmt.Errorf("cache and history storage must use different SQLite database files. Both resolve to %q", cacheDBPath)
				}
			}
		}
	}

	return nil
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Detail = input.Detail
	cfg.TopFiles = input.TopFiles
	cfg.ParquetBase = input.Parquet
	cfg.Width = input.Width
	cfg.FeatureFilter = strings.TrimSpace(input.Feature)

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Output Validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, md, csv, json", cfg.Output)
	}

	// --- 3. Feature filter validation ---
	if cfg.FeatureFilter != "" && cfg.FeatureFilter != schema.UncategorizedID && !FeatureIDPattern.MatchString(cfg.FeatureFilter) {
		return fmt.Errorf("invalid --feature value '%s'. must be a feature id slug or '%s'", cfg.FeatureFilter, schema.UncategorizedID)
	}

	// --- 4. Backend Validation ---
	return validateBackendConfigs(cfg, input)
}

// processChurnWindow resolves --days and --since into the analysis window.
// Without either, the run stays unwindowed and skips the churn overlay.
func processChurnWindow(cfg *Config, input *ConfigRawInput) error {
	now := time.Now()

	if input.Days < 0 {
		return fmt.Errorf("days must be zero or positive (received %d)", input.Days)
	}

	if input.Since != "" {
		t, err := time.Parse(DateTimeFormat, input.Since)
		if err != nil {
			t, relErr := ParseRelativeTime(input.Since, now)
			if relErr != nil {
				return fmt.Errorf("invalid --since value '%s'. Expected absolute ISO8601 or 'N [units] ago': %v", input.Since, err)
			}
			cfg.StartTime = t
		} else {
			cfg.StartTime = t
		}
		cfg.EndTime = now
		cfg.Windowed = true

		if cfg.StartTime.After(cfg.EndTime) {
			return fmt.Errorf("start time (%s) cannot be in the future", cfg.StartTime.Format(DateTimeFormat))
		}
		return nil
	}

	if input.Days > 0 {
		cfg.EndTime = now
		cfg.StartTime = now.Add(-time.Duration(input.Days) * 24 * time.Hour)
		cfg.Windowed = true
	}
	return nil
}

// processComparisonWindows validates the recent and baseline windows used by
// the compare command. Days defaults apply only there, so zero inputs are
// filled in rather than rejected.
func processComparisonWindows(cfg *Config, input *ConfigRawInput) error {
	cfg.CompareDays = input.Days
	if cfg.CompareDays == 0 {
		cfg.CompareDays = DefaultCompareDays
	}
	cfg.BaselineDays = input.BaselineDays
	if cfg.BaselineDays == 0 {
		cfg.BaselineDays = DefaultBaselineDays
	}
	if cfg.BaselineDays < 0 {
		return fmt.Errorf("baseline-days must be zero or positive (received %d)", input.BaselineDays)
	}
	if cfg.CompareDays > MaxComparisonDays || cfg.BaselineDays > MaxComparisonDays {
		return fmt.Errorf("comparison windows cannot exceed %d days", MaxComparisonDays)
	}
	return nil
}

// resolveScanRoot resolves the scan root from the positional argument.
// Inside a Git repository the repo root wins so that symbol paths and churn
// paths share a prefix; outside one, a windowed run cannot proceed.
func resolveScanRoot(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	searchPath := input.ScanRootStr
	absSearchPath, err := filepath.Abs(searchPath)
	if err != nil {
		return err
	}
	absSearchPath = filepath.Clean(absSearchPath)

	info, statErr := os.Stat(absSearchPath)
	if statErr != nil {
		return fmt.Errorf("scan root %q is not accessible: %w", absSearchPath, statErr)
	}
	gitContextPath := absSearchPath
	if !info.IsDir() {
		gitContextPath = filepath.Dir(absSearchPath)
	}

	gitRoot, err := client.GetRepoRoot(ctx, gitContextPath)
	if err != nil {
		if cfg.Windowed {
			return fmt.Errorf("a churn window needs Git history: %w", err)
		}
		// Unwindowed runs work on plain directories.
		cfg.ScanRoot = gitContextPath
		return nil
	}

	cfg.ScanRoot = gitRoot
	return nil
}

// resolveFeatureMapPath resolves the feature map location, defaulting to
// featmap.yaml under the scan root.
func resolveFeatureMapPath(cfg *Config, input *ConfigRawInput) error {
	path := strings.TrimSpace(input.FeatureMapStr)
	if path == "" {
		path = filepath.Join(cfg.ScanRoot, DefaultFeatureMapName)
	} else if !filepath.IsAbs(path) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		path = abs
	}
	cfg.FeatureMapPath = path
	return nil
}

// resolveFeatureMap locates and loads the feature map.
func resolveFeatureMap(cfg *Config, input *ConfigRawInput) error {
	if err := resolveFeatureMapPath(cfg, input); err != nil {
		return err
	}

	fm, err := LoadFeatureMap(cfg.FeatureMapPath)
	if err != nil {
		return err
	}
	cfg.FeatureMap = fm
	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}
