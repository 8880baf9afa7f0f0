package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/featlens/featlens/internal/contract"
	"github.com/featlens/featlens/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteSymbolResults outputs the classified symbols, dispatching based on the output format configured.
func WriteSymbolResults(symbols []schema.CanonicalSymbol, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, symbols)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForSymbols(w, symbols)
		}, "Wrote CSV")
	case schema.MarkdownOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSymbolMarkdown(symbols, cfg, w)
		}, "Wrote Markdown")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSymbolTable(symbols, cfg, w)
		}, "Wrote table")
	}
}

// symbolHeaders builds the column set shared by the text and markdown tables.
func symbolHeaders(cfg *contract.Config) []string {
	headers := []string{"Name", "Kind", "Path", "Line", "Feature"}
	if cfg.Detail {
		headers = append(headers, "Scope", "Signature")
	}
	return headers
}

// symbolRow builds one table row matching symbolHeaders.
func symbolRow(s schema.CanonicalSymbol, cfg *contract.Config, pathWidth int) []string {
	row := []string{
		s.Name,
		string(s.Kind),
		contract.TruncatePath(s.Path, pathWidth),
		strconv.Itoa(s.Line),
		s.FeatureName,
	}
	if cfg.Detail {
		row = append(row, s.Scope, s.Signature)
	}
	return row
}

// writeSymbolTable generates and writes the human-readable table.
func writeSymbolTable(symbols []schema.CanonicalSymbol, cfg *contract.Config, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	table.Header(symbolHeaders(cfg))
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignLeft
	})

	pathWidth := GetMaxTablePathWidth(cfg)
	var data [][]string
	for _, s := range symbols {
		data = append(data, symbolRow(s, cfg, pathWidth))
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(writer, "Showing %d symbols\n", len(symbols))
	return err
}

// writeSymbolMarkdown writes the symbols as a markdown pipe table.
func writeSymbolMarkdown(symbols []schema.CanonicalSymbol, cfg *contract.Config, writer io.Writer) error {
	pathWidth := GetMaxTablePathWidth(cfg)
	var rows [][]string
	for _, s := range symbols {
		rows = append(rows, symbolRow(s, cfg, pathWidth))
	}
	if err := writeMarkdownTable(writer, symbolHeaders(cfg), rows); err != nil {
		return err
	}
	_, err := fmt.Fprintf(writer, "\n%d symbols\n", len(symbols))
	return err
}

// writeCSVResultsForSymbols writes the symbols in CSV format with a stable
// column set regardless of flags.
func writeCSVResultsForSymbols(w io.Writer, symbols []schema.CanonicalSymbol) error {
	header := []string{
		"name",
		"kind",
		"path",
		"line",
		"scope",
		"signature",
		"feature_id",
		"feature_name",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, s := range symbols {
			rec := []string{
				s.Name,
				string(s.Kind),
				s.Path,
				strconv.Itoa(s.Line),
				s.Scope,
				s.Signature,
				s.FeatureID,
				s.FeatureName,
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
