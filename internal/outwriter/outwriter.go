// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/featlens/featlens/internal/contract"
	"github.com/featlens/featlens/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteFeatures prints ranked feature reports using the configured output format.
func (ow *OutWriter) WriteFeatures(out schema.AnalysisOutput, cfg *contract.Config, duration time.Duration) error {
	return WriteFeatureResults(out, cfg, duration)
}

// WriteSymbols prints the classified symbol list using the configured output format.
func (ow *OutWriter) WriteSymbols(symbols []schema.CanonicalSymbol, cfg *contract.Config) error {
	return WriteSymbolResults(symbols, cfg)
}

// WriteComparison prints the per-feature window comparison using the configured output format.
func (ow *OutWriter) WriteComparison(result schema.ComparisonResult, cfg *contract.Config, duration time.Duration) error {
	return WriteComparisonResults(result, cfg, duration)
}

// WriteCheck prints the feature-map check findings using the configured output format.
func (ow *OutWriter) WriteCheck(result schema.CheckResult, cfg *contract.Config) error {
	return WriteCheckResults(result, cfg)
}
