package parquet

import (
	"fmt"
	"os"

	"github.com/featlens/featlens/schema"
	"github.com/parquet-go/parquet-go"
)

// FeatureReportRow is the Parquet projection of one ranked feature report.
type FeatureReportRow struct {
	Rank         int64  `parquet:"rank,snappy"`
	FeatureID    string `parquet:"feature_id,snappy"`
	FeatureName  string `parquet:"feature_name,snappy"`
	Category     string `parquet:"category,snappy"`
	Functions    int64  `parquet:"functions,snappy"`
	Methods      int64  `parquet:"methods,snappy"`
	Classes      int64  `parquet:"classes,snappy"`
	Total        int64  `parquet:"total,snappy"`
	Commits      int64  `parquet:"commits,snappy"`
	Churn        int64  `parquet:"churn,snappy"`
	HotspotScore int64  `parquet:"hotspot_score,snappy"`
}

// SymbolRow is the Parquet projection of one classified symbol.
type SymbolRow struct {
	Name        string `parquet:"name,snappy"`
	Kind        string `parquet:"kind,snappy"`
	Path        string `parquet:"path,snappy"`
	Line        int64  `parquet:"line,snappy"`
	Scope       string `parquet:"scope,optional,snappy"`
	FeatureID   string `parquet:"feature_id,snappy"`
	FeatureName string `parquet:"feature_name,snappy"`
}

// ConvertFeatureReports converts ranked feature reports to Parquet rows.
func ConvertFeatureReports(reports []schema.FeatureReport) []FeatureReportRow {
	result := make([]FeatureReportRow, len(reports))
	for i, report := range reports {
		result[i] = FeatureReportRow{
			Rank:         int64(i + 1),
			FeatureID:    report.ID,
			FeatureName:  report.Name,
			Category:     report.Category,
			Functions:    int64(report.Functions),
			Methods:      int64(report.Methods),
			Classes:      int64(report.Classes),
			Total:        int64(report.Total),
			Commits:      int64(report.Commits),
			Churn:        int64(report.Churn),
			HotspotScore: int64(report.HotspotScore),
		}
	}
	return result
}

// ConvertSymbols converts classified symbols to Parquet rows.
func ConvertSymbols(symbols []schema.CanonicalSymbol) []SymbolRow {
	result := make([]SymbolRow, len(symbols))
	for i, sym := range symbols {
		result[i] = SymbolRow{
			Name:        sym.Name,
			Kind:        string(sym.Kind),
			Path:        sym.Path,
			Line:        int64(sym.Line),
			Scope:       sym.Scope,
			FeatureID:   sym.FeatureID,
			FeatureName: sym.FeatureName,
		}
	}
	return result
}

// writeRows writes any row slice to a Parquet file at outputPath.
func writeRows[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}

// ExportRunArtifacts writes the current run's ranked reports and classified
// symbols as <base>.features.parquet and <base>.symbols.parquet.
func ExportRunArtifacts(base string, reports []schema.FeatureReport, symbols []schema.CanonicalSymbol) error {
	featuresFile := base + ".features.parquet"
	if err := writeRows(ConvertFeatureReports(reports), featuresFile); err != nil {
		return fmt.Errorf("failed to export feature reports: %w", err)
	}

	symbolsFile := base + ".symbols.parquet"
	if err := writeRows(ConvertSymbols(symbols), symbolsFile); err != nil {
		return fmt.Errorf("failed to export symbols: %w", err)
	}
	return nil
}
