package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/featlens/featlens/internal/contract"
	"github.com/featlens/featlens/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteComparisonResults outputs the comparison results, dispatching based on the output format configured.
func WriteComparisonResults(result schema.ComparisonResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForComparison(w, result)
		}, "Wrote CSV")
	case schema.MarkdownOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeComparisonMarkdown(result, w)
		}, "Wrote Markdown")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeComparisonTable(result, cfg, duration, w)
		}, "Wrote table")
	}
}

// formatDelta renders a signed delta with a movement indicator. Rising
// activity is highlighted red since it marks a heating feature.
func formatDelta(delta int, useColors bool) string {
	red, green, yellow := fmt.Sprint, fmt.Sprint, fmt.Sprint
	if useColors {
		red = color.New(color.FgRed).SprintFunc()
		green = color.New(color.FgGreen).SprintFunc()
		yellow = color.New(color.FgYellow).SprintFunc()
	}

	switch {
	case delta > 0:
		return red(fmt.Sprintf("+%d ▲", delta))
	case delta < 0:
		return green(fmt.Sprintf("%d ▼", delta))
	default:
		return yellow("0")
	}
}

// writeComparisonTable writes the deltas in a human-readable comparison format.
func writeComparisonTable(result schema.ComparisonResult, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	headers := []string{"Rank", "Feature", "Base Score", "Target Score", "Δ Score", "Status"}
	if cfg.Detail {
		headers = append(headers, "Δ Commits", "Δ Churn")
	}
	table.Header(headers)

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, d := range result.Deltas {
		row := []string{
			strconv.Itoa(i + 1),
			d.Name,
			strconv.Itoa(d.BaseScore),
			strconv.Itoa(d.TargetScore),
			formatDelta(d.DeltaScore, cfg.UseColors),
			string(d.Status),
		}
		if cfg.Detail {
			row = append(row,
				formatDelta(d.DeltaCommits, cfg.UseColors),
				formatDelta(d.DeltaChurn, cfg.UseColors),
			)
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	s := result.Summary
	if _, err := fmt.Fprintf(writer, "Base window: %s, target window: %s\n", s.BaseWindow, s.TargetWindow); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Net commits: %+d, net churn: %+d\n", s.NetCommits, s.NetChurn); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "New features: %d, quiet features: %d\n", s.NewFeatures, s.QuietFeatures); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Comparison completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// writeComparisonMarkdown writes the deltas as a markdown pipe table plus a
// plain-text summary.
func writeComparisonMarkdown(result schema.ComparisonResult, writer io.Writer) error {
	headers := []string{"Rank", "Feature", "Base Score", "Target Score", "Δ Score", "Δ Commits", "Δ Churn", "Status"}
	var rows [][]string
	for i, d := range result.Deltas {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			d.Name,
			strconv.Itoa(d.BaseScore),
			strconv.Itoa(d.TargetScore),
			fmt.Sprintf("%+d", d.DeltaScore),
			fmt.Sprintf("%+d", d.DeltaCommits),
			fmt.Sprintf("%+d", d.DeltaChurn),
			string(d.Status),
		})
	}
	if err := writeMarkdownTable(writer, headers, rows); err != nil {
		return err
	}

	s := result.Summary
	_, err := fmt.Fprintf(writer, "\nBase window: %s, target window: %s. Net commits: %+d, net churn: %+d.\n",
		s.BaseWindow, s.TargetWindow, s.NetCommits, s.NetChurn)
	return err
}

// writeCSVResultsForComparison writes the comparison data in CSV format.
func writeCSVResultsForComparison(w io.Writer, result schema.ComparisonResult) error {
	header := []string{
		"rank",
		"id",
		"name",
		"category",
		"base_commits",
		"base_churn",
		"base_score",
		"target_commits",
		"target_churn",
		"target_score",
		"delta_commits",
		"delta_churn",
		"delta_score",
		"status",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for i, d := range result.Deltas {
			rec := []string{
				strconv.Itoa(i + 1),
				d.ID,
				d.Name,
				d.Category,
				strconv.Itoa(d.BaseCommits),
				strconv.Itoa(d.BaseChurn),
				strconv.Itoa(d.BaseScore),
				strconv.Itoa(d.TargetCommits),
				strconv.Itoa(d.TargetChurn),
				strconv.Itoa(d.TargetScore),
				strconv.Itoa(d.DeltaCommits),
				strconv.Itoa(d.DeltaChurn),
				strconv.Itoa(d.DeltaScore),
				string(d.Status),
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
