package agg

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/featlens/featlens/internal/contract"
	"github.com/featlens/featlens/schema"
)

// currentCacheVersion defines the version of the cached churn payload.
const currentCacheVersion = 1

// cacheMaxAge bounds how long a cached churn payload stays usable.
const cacheMaxAge = 7 * 24 * time.Hour

// churnPayload is the serialized form of a cached churn computation.
type churnPayload struct {
	Records []schema.RawChurnRecord `json:"records"`
}

// CachedChurnRecords returns the parsed churn records for the configured
// window, going through the activity cache when a backend is configured.
func CachedChurnRecords(ctx context.Context, cfg *contract.Config, client contract.GitClient, mgr contract.CacheManager) ([]schema.RawChurnRecord, error) {
	if mgr == nil {
		return fetchChurnRecords(ctx, cfg, client)
	}
	activity := mgr.GetActivityStore()
	if activity == nil {
		// Fallback to direct computation
		return fetchChurnRecords(ctx, cfg, client)
	}

	key := GenerateCacheKey(ctx, cfg, client)

	// Check for cache hit
	if records := checkCacheHit(activity, key); records != nil {
		return records, nil
	}

	// Cache miss: compute and store
	return computeAndStore(ctx, cfg, client, activity, key)
}

// fetchChurnRecords runs the git log and parses it without caching.
func fetchChurnRecords(ctx context.Context, cfg *contract.Config, client contract.GitClient) ([]schema.RawChurnRecord, error) {
	out, err := client.GetChurnLog(ctx, cfg.ScanRoot, cfg.StartTime, cfg.EndTime)
	if err != nil {
		return nil, err
	}
	return ParseChurnLog(out, cfg.FeatureMap.ChurnExcludes), nil
}

// checkCacheHit attempts to retrieve and validate a cached payload.
func checkCacheHit(activity contract.CacheStore, key string) []schema.RawChurnRecord {
	data, version, createdAt, ok, err := activity.Get(key)
	if err != nil || !ok {
		return nil // Cache miss
	}

	// Validate version and staleness
	if version == currentCacheVersion && time.Since(createdAt) <= cacheMaxAge {
		var payload churnPayload
		if err := json.Unmarshal(data, &payload); err == nil {
			return payload.Records // Cache hit
		}
	}

	return nil // Cache miss (stale or version mismatch)
}

// computeAndStore computes the records and stores them in the cache.
// A failed write never fails the run.
func computeAndStore(ctx context.Context, cfg *contract.Config, client contract.GitClient, activity contract.CacheStore, key string) ([]schema.RawChurnRecord, error) {
	records, err := fetchChurnRecords(ctx, cfg, client)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(churnPayload{Records: records}); err == nil {
		_ = activity.Set(key, data, currentCacheVersion)
	}

	return records, nil
}

// GenerateCacheKey creates a unique key from the analysis parameters. The
// repo hash invalidates cached results as soon as new commits land.
func GenerateCacheKey(ctx context.Context, cfg *contract.Config, client contract.GitClient) string {
	// Use canonical helpers from contract.Config to ensure consistent time granularity
	startHour := cfg.GetAnalysisStartTime()
	endHour := cfg.GetAnalysisEndTime()

	repoHash, err := client.GetRepoHash(ctx, cfg.ScanRoot)
	if err != nil {
		repoHash = ""
	}

	key := fmt.Sprintf("%s:%d:%d:%s",
		cfg.ScanRoot,
		startHour.Unix(),
		endHour.Unix(),
		repoHash,
	)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}
