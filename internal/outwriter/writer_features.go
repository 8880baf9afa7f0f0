package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/featlens/featlens/internal/contract"
	"github.com/featlens/featlens/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteFeatureResults outputs the analysis results, dispatching based on the output format configured.
func WriteFeatureResults(out schema.AnalysisOutput, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForFeatures(w, out)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForFeatures(w, out.Reports)
		}, "Wrote CSV")
	case schema.MarkdownOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeFeatureMarkdown(out, cfg, w)
		}, "Wrote Markdown")
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeFeatureTable(out, cfg, duration, w)
		}, "Wrote table")
	}
}

// featureHeaders builds the column set shared by the text and markdown tables.
func featureHeaders(cfg *contract.Config, windowed bool) []string {
	headers := []string{"Rank", "Feature", "Category", "Total"}
	if cfg.Detail {
		headers = append(headers, "Funcs", "Methods", "Classes")
	}
	if windowed {
		headers = append(headers, "Commits", "Churn", "Score")
	}
	return headers
}

// featureRow builds one table row matching featureHeaders.
func featureRow(rank int, r schema.FeatureReport, cfg *contract.Config, windowed bool) []string {
	row := []string{
		strconv.Itoa(rank),
		r.Name,
		r.Category,
		strconv.Itoa(r.Total),
	}
	if cfg.Detail {
		row = append(row,
			strconv.Itoa(r.Functions),
			strconv.Itoa(r.Methods),
			strconv.Itoa(r.Classes),
		)
	}
	if windowed {
		row = append(row,
			strconv.Itoa(r.Commits),
			strconv.Itoa(r.Churn),
			strconv.Itoa(r.HotspotScore),
		)
	}
	return row
}

// writeFeatureTable generates and writes the human-readable table.
func writeFeatureTable(out schema.AnalysisOutput, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	table.Header(featureHeaders(cfg, out.Windowed))
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, r := range out.Reports {
		data = append(data, featureRow(i+1, r, cfg, out.Windowed))
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if cfg.TopFiles {
		writeTopFiles(writer, out.Reports, cfg)
	}

	return writeFeatureFooter(writer, out, cfg, duration)
}

// writeTopFiles lists the per-feature top churn contributors below the table.
func writeTopFiles(writer io.Writer, reports []schema.FeatureReport, cfg *contract.Config) {
	pathWidth := GetMaxTablePathWidth(cfg)
	for _, r := range reports {
		if len(r.TopFiles) == 0 {
			continue
		}
		fmt.Fprintf(writer, "Top files for %s:\n", r.Name)
		for _, tf := range r.TopFiles {
			fmt.Fprintf(writer, "  %s (commits: %d, churn: %d)\n",
				contract.TruncatePath(tf.Path, pathWidth), tf.Commits, tf.Churn)
		}
	}
}

// writeFeatureFooter prints the coverage and timing summary below the table.
func writeFeatureFooter(writer io.Writer, out schema.AnalysisOutput, cfg *contract.Config, duration time.Duration) error {
	categorized := out.TotalSymbols - out.Uncategorized
	if _, err := fmt.Fprintf(writer, "Showing %d features (%d of %d symbols categorized)\n",
		len(out.Reports), categorized, out.TotalSymbols); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Coverage: %.1f%% (%s)\n",
		out.CoverageRate, coverageLabel(out.CoverageRate, cfg.UseColors)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v. Cache backend: %s\n",
		duration, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// writeFeatureMarkdown writes the report as a markdown pipe table plus a
// plain-text summary.
func writeFeatureMarkdown(out schema.AnalysisOutput, cfg *contract.Config, writer io.Writer) error {
	var rows [][]string
	for i, r := range out.Reports {
		rows = append(rows, featureRow(i+1, r, cfg, out.Windowed))
	}
	if err := writeMarkdownTable(writer, featureHeaders(cfg, out.Windowed), rows); err != nil {
		return err
	}

	categorized := out.TotalSymbols - out.Uncategorized
	_, err := fmt.Fprintf(writer, "\nCoverage: %.1f%% (%s), %d of %d symbols categorized\n",
		out.CoverageRate, contract.GetPlainLabel(out.CoverageRate), categorized, out.TotalSymbols)
	return err
}

// writeCSVResultsForFeatures writes the analysis results in CSV format.
// Every column is emitted regardless of flags so downstream tools see a
// stable schema.
func writeCSVResultsForFeatures(w io.Writer, reports []schema.FeatureReport) error {
	header := []string{
		"rank",
		"id",
		"name",
		"category",
		"functions",
		"methods",
		"classes",
		"total",
		"commits",
		"churn",
		"hotspot_score",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for i, r := range reports {
			rec := []string{
				strconv.Itoa(i + 1),
				r.ID,
				r.Name,
				r.Category,
				strconv.Itoa(r.Functions),
				strconv.Itoa(r.Methods),
				strconv.Itoa(r.Classes),
				strconv.Itoa(r.Total),
				strconv.Itoa(r.Commits),
				strconv.Itoa(r.Churn),
				strconv.Itoa(r.HotspotScore),
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeJSONResultsForFeatures writes the analysis results in JSON format.
func writeJSONResultsForFeatures(w io.Writer, out schema.AnalysisOutput) error {
	// Rank and label are presentation concerns, so they are added here
	// instead of living on the schema structs.
	type JSONFeaturesOutput struct {
		Features      []schema.EnrichedFeatureReport `json:"features"`
		TotalSymbols  int                            `json:"total_symbols"`
		Uncategorized int                            `json:"uncategorized"`
		CoverageRate  float64                        `json:"coverage_rate"`
		CoverageLabel string                         `json:"coverage_label"`
		Windowed      bool                           `json:"windowed"`
	}

	return writeJSON(w, JSONFeaturesOutput{
		Features:      schema.EnrichReports(out.Reports),
		TotalSymbols:  out.TotalSymbols,
		Uncategorized: out.Uncategorized,
		CoverageRate:  out.CoverageRate,
		CoverageLabel: contract.GetPlainLabel(out.CoverageRate),
		Windowed:      out.Windowed,
	})
}
