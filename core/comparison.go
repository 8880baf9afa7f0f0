package core

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/featlens/featlens/core/agg"
	"github.com/featlens/featlens/core/classify"
	"github.com/featlens/featlens/internal/contract"
	"github.com/featlens/featlens/internal/outwriter"
	"github.com/featlens/featlens/schema"
)

// windowDateFormat renders comparison window bounds at day precision.
const windowDateFormat = "2006-01-02"

// ExecuteCompare runs the churn overlay for the recent window against the
// preceding baseline window and prints the per-feature deltas. It serves as
// the main entry point for the 'compare' command.
func ExecuteCompare(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	if cfg.Output == schema.TextOut {
		outwriter.LogCompareHeader(cfg)
	}

	result, err := BuildComparison(ctx, cfg, contract.NewLocalGitClient(), mgr)
	if err != nil {
		return err
	}

	duration := time.Since(start)
	return writer.WriteComparison(*result, cfg, duration)
}

// BuildComparison computes per-feature churn deltas between two adjacent
// windows: the baseline covers [now-compare-baseline, now-compare] and the
// recent target window covers [now-compare, now].
func BuildComparison(ctx context.Context, cfg *contract.Config, git contract.GitClient, mgr contract.CacheManager) (*schema.ComparisonResult, error) {
	now := time.Now()
	targetStart := now.Add(-time.Duration(cfg.CompareDays) * 24 * time.Hour)
	baseStart := targetStart.Add(-time.Duration(cfg.BaselineDays) * 24 * time.Hour)

	baseReports, err := churnOnlyReports(ctx, cfg.CloneWithTimeWindow(baseStart, targetStart), git, mgr)
	if err != nil {
		return nil, fmt.Errorf("baseline window analysis failed: %w", err)
	}
	targetReports, err := churnOnlyReports(ctx, cfg.CloneWithTimeWindow(targetStart, now), git, mgr)
	if err != nil {
		return nil, fmt.Errorf("recent window analysis failed: %w", err)
	}

	return buildDeltaResult(cfg, baseReports, targetReports, baseStart, targetStart, now), nil
}

// churnOnlyReports folds one window's churn records into per-feature buckets
// without running the symbol pipeline.
func churnOnlyReports(ctx context.Context, cfg *contract.Config, git contract.GitClient, mgr contract.CacheManager) ([]schema.FeatureReport, error) {
	records, err := agg.CachedChurnRecords(ctx, cfg, git, mgr)
	if err != nil {
		return nil, err
	}

	buckets := agg.NewBucketSet(cfg.FeatureMap.Rules)
	for _, rec := range records {
		buckets.AddChurn(classify.ClassifyPath(rec.Path, cfg.FeatureMap.Rules), rec)
	}
	return buckets.Reports(), nil
}

// buildDeltaResult pairs base and target buckets into deltas, skipping
// features idle in both windows. Both report slices come from bucket sets
// seeded with the same rules, so iterating the target side covers every id.
func buildDeltaResult(cfg *contract.Config, base, target []schema.FeatureReport, baseStart, targetStart, now time.Time) *schema.ComparisonResult {
	baseByID := make(map[string]schema.FeatureReport, len(base))
	for _, r := range base {
		baseByID[r.ID] = r
	}

	summary := schema.ComparisonSummary{
		BaseWindow:   formatWindow(baseStart, targetStart),
		TargetWindow: formatWindow(targetStart, now),
	}

	var deltas []schema.FeatureDelta
	for _, t := range target {
		b := baseByID[t.ID]
		baseActive := b.Commits > 0 || b.Churn > 0
		targetActive := t.Commits > 0 || t.Churn > 0
		if !baseActive && !targetActive {
			continue
		}

		status := schema.ActiveStatus
		switch {
		case !baseActive:
			status = schema.NewStatus
			summary.NewFeatures++
		case !targetActive:
			status = schema.QuietStatus
			summary.QuietFeatures++
		}

		deltas = append(deltas, schema.FeatureDelta{
			ID:            t.ID,
			Name:          t.Name,
			Category:      t.Category,
			BaseCommits:   b.Commits,
			BaseChurn:     b.Churn,
			BaseScore:     b.HotspotScore,
			TargetCommits: t.Commits,
			TargetChurn:   t.Churn,
			TargetScore:   t.HotspotScore,
			DeltaCommits:  t.Commits - b.Commits,
			DeltaChurn:    t.Churn - b.Churn,
			DeltaScore:    t.HotspotScore - b.HotspotScore,
			Status:        status,
		})
		summary.NetCommits += t.Commits - b.Commits
		summary.NetChurn += t.Churn - b.Churn
	}

	// Heating features rank first. The sort is stable so equal movement
	// keeps the declared rule order.
	sort.SliceStable(deltas, func(i, j int) bool {
		return deltas[i].DeltaScore > deltas[j].DeltaScore
	})
	if cfg.ResultLimit > 0 && len(deltas) > cfg.ResultLimit {
		deltas = deltas[:cfg.ResultLimit]
	}

	return &schema.ComparisonResult{Deltas: deltas, Summary: summary}
}

// formatWindow renders a window as "start → end" at day precision.
func formatWindow(start, end time.Time) string {
	return fmt.Sprintf("%s → %s", start.Format(windowDateFormat), end.Format(windowDateFormat))
}
