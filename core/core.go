// Package core has core logic for analysis, comparison and checking.
package core

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/featlens/featlens/internal/contract"
	"github.com/featlens/featlens/internal/outwriter"
	"github.com/featlens/featlens/internal/parquet"
	"github.com/featlens/featlens/schema"
)

// ExecutorFunc defines the function signature for executing different analysis modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error

// writer renders all command results.
var writer = outwriter.NewOutWriter()

// ExecuteFeatures runs the full pipeline and prints the ranked feature
// report. It serves as the main entry point for the 'features' command.
func ExecuteFeatures(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	out, err := runAnalysisCore(ctx, cfg, contract.NewLocalCtagsClient(), contract.NewLocalGitClient(), mgr)
	if err != nil {
		return err
	}

	if cfg.ParquetBase != "" {
		if err := parquet.ExportRunArtifacts(cfg.ParquetBase, out.Reports, out.Symbols); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(os.Stderr, "💾 Wrote parquet artifacts to %s.features.parquet and %s.symbols.parquet\n",
			cfg.ParquetBase, cfg.ParquetBase)
	}

	duration := time.Since(start)
	return writer.WriteFeatures(*out, cfg, duration)
}

// GetFeatureResults runs the analysis and returns the raw output without
// rendering it. MCP handlers reuse this to serve structured payloads.
func GetFeatureResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (*schema.AnalysisOutput, error) {
	return runAnalysisCore(withSuppressHeader(ctx), cfg, contract.NewLocalCtagsClient(), contract.NewLocalGitClient(), mgr)
}

// ExecuteSymbols runs the symbol pipeline and prints the flat symbol list.
// It serves as the main entry point for the 'symbols' command.
func ExecuteSymbols(ctx context.Context, cfg *contract.Config, _ contract.CacheManager) error {
	if cfg.Output == schema.TextOut {
		outwriter.LogAnalysisHeader(cfg)
	}
	symbols, err := GetSymbolResults(ctx, cfg)
	if err != nil {
		return err
	}
	return writer.WriteSymbols(symbols, cfg)
}

// GetSymbolResults returns the classified symbols with the feature filter
// and result limit applied. MCP handlers reuse this.
func GetSymbolResults(ctx context.Context, cfg *contract.Config) ([]schema.CanonicalSymbol, error) {
	symbols, err := runSymbolPipeline(ctx, cfg, contract.NewLocalCtagsClient())
	if err != nil {
		return nil, err
	}
	return filterSymbols(symbols, cfg), nil
}

// filterSymbols applies the feature filter and result limit to the symbol list.
func filterSymbols(symbols []schema.CanonicalSymbol, cfg *contract.Config) []schema.CanonicalSymbol {
	filtered := symbols
	if cfg.FeatureFilter != "" {
		filtered = make([]schema.CanonicalSymbol, 0, len(symbols))
		for _, sym := range symbols {
			if sym.FeatureID == cfg.FeatureFilter {
				filtered = append(filtered, sym)
			}
		}
	}
	if cfg.ResultLimit > 0 && len(filtered) > cfg.ResultLimit {
		filtered = filtered[:cfg.ResultLimit]
	}
	return filtered
}
