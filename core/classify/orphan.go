package classify

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/featlens/featlens/internal/contract"
	"github.com/featlens/featlens/schema"
)

// componentExts are the file families whose exported declarations the
// extractor is known to drop when they are arrow-function components.
var componentExts = map[string]struct{}{
	".tsx": {},
	".jsx": {},
}

// exportDeclRe matches exported component-style declarations:
// "export const Banner", "export default function Banner".
var exportDeclRe = regexp.MustCompile(`export\s+(?:default\s+)?(?:const|function)\s+([A-Z][A-Za-z0-9]*)`)

// ScanOrphans re-reads every component file seen in the raw entries and
// synthesizes function symbols for exported declarations the extractor
// missed. A (path, name) pair that already exists in symbols is never
// duplicated. Unreadable files are logged and skipped so one bad file does
// not sink the run.
func ScanOrphans(entries []schema.RawSymbolEntry, symbols []schema.CanonicalSymbol, scanRoot string, excludes []string) []schema.CanonicalSymbol {
	seen := make(map[string]struct{}, len(symbols))
	for _, sym := range symbols {
		seen[sym.Path+"|"+sym.Name] = struct{}{}
	}

	for _, path := range componentFiles(entries, excludes) {
		rel := strings.TrimPrefix(path, "/")
		data, err := os.ReadFile(filepath.Join(scanRoot, filepath.FromSlash(rel)))
		if err != nil {
			contract.LogWarn("skipping unreadable component file", err)
			continue
		}

		for _, match := range exportDeclRe.FindAllSubmatchIndex(data, -1) {
			name := string(data[match[2]:match[3]])
			key := path + "|" + name
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			symbols = append(symbols, schema.CanonicalSymbol{
				Name: name,
				Kind: schema.FunctionKind,
				Path: path,
				// Line is where the export declaration begins.
				Line: 1 + bytes.Count(data[:match[0]], []byte("\n")),
			})
		}
	}
	return symbols
}

// componentFiles returns the distinct component-family paths among the raw
// entries, normalized, in first-seen order.
func componentFiles(entries []schema.RawSymbolEntry, excludes []string) []string {
	var paths []string
	distinct := make(map[string]struct{})
	for _, entry := range entries {
		ext := strings.ToLower(filepath.Ext(entry.Path))
		if _, ok := componentExts[ext]; !ok {
			continue
		}
		path := NormalizePath(entry.Path)
		if _, dup := distinct[path]; dup {
			continue
		}
		if contract.ShouldIgnore(strings.TrimPrefix(path, "/"), excludes) {
			continue
		}
		distinct[path] = struct{}{}
		paths = append(paths, path)
	}
	return paths
}
