package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/featlens/featlens/internal/contract"
	"github.com/featlens/featlens/schema"
)

// WriteCheckResults outputs the check findings, dispatching based on the output format configured.
func WriteCheckResults(result schema.CheckResult, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForCheck(w, result)
		}, "Wrote CSV")
	case schema.MarkdownOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCheckMarkdown(result, w)
		}, "Wrote Markdown")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCheckText(result, w)
		}, "Wrote report")
	}
}

// statusMark renders a pass/fail marker for a boolean probe result.
func statusMark(ok bool) string {
	if ok {
		return "✅"
	}
	return "❌"
}

// writeCheckText writes the check findings as a plain report.
func writeCheckText(result schema.CheckResult, writer io.Writer) error {
	if _, err := fmt.Fprintf(writer, "Feature map: %d rules\n", result.RuleCount); err != nil {
		return err
	}

	extractorLine := "not found"
	if result.ExtractorOK {
		extractorLine = result.ExtractorVersion
	}
	if _, err := fmt.Fprintf(writer, "%s Extractor: %s\n", statusMark(result.ExtractorOK), extractorLine); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "%s Git: available=%t\n", statusMark(result.GitOK), result.GitOK); err != nil {
		return err
	}

	for _, v := range result.Violations {
		if _, err := fmt.Fprintf(writer, "❌ [%s] %s: %s\n", v.Kind, v.RuleID, v.Detail); err != nil {
			return err
		}
	}

	if result.Passed {
		_, err := fmt.Fprintln(writer, "✅ All checks passed")
		return err
	}
	_, err := fmt.Fprintf(writer, "❌ Check failed with %d violation(s)\n", len(result.Violations))
	return err
}

// writeCheckMarkdown writes the check findings as a markdown pipe table.
func writeCheckMarkdown(result schema.CheckResult, writer io.Writer) error {
	headers := []string{"Kind", "Rule", "Detail"}
	var rows [][]string
	for _, v := range result.Violations {
		rows = append(rows, []string{v.Kind, v.RuleID, v.Detail})
	}
	if err := writeMarkdownTable(writer, headers, rows); err != nil {
		return err
	}
	_, err := fmt.Fprintf(writer, "\nRules: %d. Extractor ok: %t. Git ok: %t. Passed: %t.\n",
		result.RuleCount, result.ExtractorOK, result.GitOK, result.Passed)
	return err
}

// writeCSVResultsForCheck writes the violations in CSV format.
func writeCSVResultsForCheck(w io.Writer, result schema.CheckResult) error {
	header := []string{"kind", "rule_id", "detail"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, v := range result.Violations {
			if err := csvWriter.Write([]string{v.Kind, v.RuleID, v.Detail}); err != nil {
				return err
			}
		}
		return nil
	})
}
