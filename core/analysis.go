package core

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/featlens/featlens/core/agg"
	"github.com/featlens/featlens/core/algo"
	"github.com/featlens/featlens/core/classify"
	"github.com/featlens/featlens/internal/contract"
	"github.com/featlens/featlens/internal/outwriter"
	"github.com/featlens/featlens/schema"
)

// runAnalysisCore performs the common Extraction, Classification, and
// Aggregation steps, plus the churn overlay on windowed runs.
func runAnalysisCore(ctx context.Context, cfg *contract.Config, extractor contract.ExtractorClient, git contract.GitClient, mgr contract.CacheManager) (*schema.AnalysisOutput, error) {
	if !shouldSuppressHeader(ctx) && cfg.Output == schema.TextOut {
		outwriter.LogAnalysisHeader(cfg)
	}

	// --- 0. Begin run tracking (if configured) ---
	history, runID := beginRunTracking(cfg, mgr)

	// --- 1. Symbol pipeline ---
	symbols, err := runSymbolPipeline(ctx, cfg, extractor)
	if err != nil {
		return nil, err
	}

	// --- 2. Aggregation ---
	buckets := agg.NewBucketSet(cfg.FeatureMap.Rules)
	for _, sym := range symbols {
		buckets.AddSymbol(sym)
	}

	// --- 3. Churn overlay (windowed runs only) ---
	if cfg.Windowed {
		records, err := agg.CachedChurnRecords(ctx, cfg, git, mgr)
		if err != nil {
			return nil, err
		}
		for _, rec := range records {
			buckets.AddChurn(classify.ClassifyPath(rec.Path, cfg.FeatureMap.Rules), rec)
		}
	}

	// --- 4. Coverage and ranking ---
	total := buckets.SymbolTotal()
	uncategorized := buckets.UncategorizedTotal()
	if total == 0 {
		contract.LogWarn("coverage is degenerate",
			fmt.Errorf("no symbols survived normalization under %q", cfg.ScanRoot))
	}

	out := &schema.AnalysisOutput{
		Reports:       algo.RankReports(buckets.Reports(), cfg.Windowed, cfg.ResultLimit),
		Symbols:       symbols,
		TotalSymbols:  total,
		Uncategorized: uncategorized,
		CoverageRate:  algo.CoverageRate(uncategorized, total),
		Windowed:      cfg.Windowed,
	}

	// --- 5. End run tracking ---
	endRunTracking(history, runID, out)

	return out, nil
}

// runSymbolPipeline produces the classified canonical symbols for the scan
// root: extract, normalize, recover orphans, attribute features.
func runSymbolPipeline(ctx context.Context, cfg *contract.Config, extractor contract.ExtractorClient) ([]schema.CanonicalSymbol, error) {
	raw, err := extractor.Extract(ctx, cfg.ScanRoot)
	if err != nil {
		return nil, err
	}

	entries := classify.ParseExtractorOutput(raw)
	symbols := classify.NormalizeEntries(entries, cfg.FeatureMap.Excludes)
	symbols = classify.ScanOrphans(entries, symbols, cfg.ScanRoot, cfg.FeatureMap.Excludes)
	classify.AttributeSymbols(symbols, cfg.FeatureMap.Rules)
	return symbols, nil
}

// beginRunTracking opens a history row for the run. Tracking failures warn
// and disable tracking without failing the analysis.
func beginRunTracking(cfg *contract.Config, mgr contract.CacheManager) (contract.HistoryStore, int64) {
	if mgr == nil {
		return nil, 0
	}
	history := mgr.GetHistoryStore()
	if history == nil {
		return nil, 0
	}

	params, _ := json.Marshal(map[string]any{
		"scan_root":    cfg.ScanRoot,
		"windowed":     cfg.Windowed,
		"start_time":   cfg.StartTime.Format(contract.DateTimeFormat),
		"end_time":     cfg.EndTime.Format(contract.DateTimeFormat),
		"result_limit": cfg.ResultLimit,
	})
	runID, err := history.BeginRun(time.Now(), string(params))
	if err != nil {
		contract.LogWarn("Run tracking initialization failed", err)
		return nil, 0
	}
	return history, runID
}

// endRunTracking persists the ranked reports and finalizes the run row.
func endRunTracking(history contract.HistoryStore, runID int64, out *schema.AnalysisOutput) {
	if history == nil || runID == 0 {
		return
	}

	now := time.Now()
	if err := history.RecordFeatureStats(runID, now, out.Reports); err != nil {
		contract.LogWarn("Failed to record feature stats", err)
	}
	if err := history.EndRun(runID, now, out.TotalSymbols); err != nil {
		contract.LogWarn("Failed to finalize run tracking", err)
	}
}
