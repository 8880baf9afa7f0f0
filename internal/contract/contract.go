// Package contract provides interfaces and shared utilities that hold the
// internal architecture together.
package contract

import (
	"context"
	"time"

	"github.com/featlens/featlens/schema"
)

// --- Collaborator interfaces ---

// ExtractorClient abstracts the structural extractor that reports raw
// symbol entries for a source tree.
type ExtractorClient interface {
	// Extract runs the extractor over the scan root and returns its raw
	// JSON-lines output.
	Extract(ctx context.Context, scanRoot string) ([]byte, error)

	// Probe reports the extractor's version string, or an error when the
	// extractor binary is unavailable.
	Probe(ctx context.Context) (string, error)
}

// GitClient abstracts the version-control history queries the churn
// overlay needs.
type GitClient interface {
	// Run executes a raw git command in the given repository.
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)

	// GetChurnLog returns the one-pass numstat activity log for the window.
	// Zero times leave the corresponding bound open.
	GetChurnLog(ctx context.Context, repoPath string, startTime, endTime time.Time) ([]byte, error)

	// GetRepoHash returns the current HEAD hash, used for cache keys.
	GetRepoHash(ctx context.Context, repoPath string) (string, error)

	// GetRepoRoot returns the repository root containing contextPath.
	GetRepoRoot(ctx context.Context, contextPath string) (string, error)
}

// --- Storage interfaces ---

// CacheManager provides access to the persistence stores.
type CacheManager interface {
	// GetActivityStore returns the store for churn activity caching, or nil
	// when no cache backend is configured.
	GetActivityStore() CacheStore

	// GetHistoryStore returns the store for run history, or nil when no
	// history backend is configured.
	GetHistoryStore() HistoryStore
}

// CacheStore is a key/value store for cached churn activity payloads.
type CacheStore interface {
	// Get retrieves a cached payload with its stored version and timestamp.
	// A miss returns ok=false with no error.
	Get(key string) (data []byte, version int, createdAt time.Time, ok bool, err error)

	// Set stores a payload under the key, overwriting any previous entry.
	Set(key string, data []byte, version int) error

	// GetStatus reports entry counts and size information for the backend.
	GetStatus() (schema.CacheStatus, error)

	// Close releases the underlying database handle.
	Close() error
}

// HistoryStore records analysis runs and their per-feature aggregates.
type HistoryStore interface {
	// BeginRun inserts a run row and returns its identifier.
	BeginRun(startTime time.Time, configParams string) (int64, error)

	// EndRun finalizes a run with its end time and symbol total.
	EndRun(runID int64, endTime time.Time, totalSymbols int) error

	// RecordFeatureStats persists one row per feature report for a run.
	RecordFeatureStats(runID int64, runTime time.Time, reports []schema.FeatureReport) error

	// GetStatus reports row counts and recency for the backend.
	GetStatus() (schema.HistoryStatus, error)

	// GetAllRuns returns every persisted run, oldest first.
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllFeatureStats returns every persisted feature aggregate, oldest
	// run first.
	GetAllFeatureStats() ([]schema.FeatureStatsRecord, error)

	// Close releases the underlying database handle.
	Close() error
}
