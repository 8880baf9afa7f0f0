package classify

import (
	"bufio"
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/featlens/featlens/internal/contract"
	"github.com/featlens/featlens/schema"
)

// noiseNames are extractor artifacts that never represent meaningful
// structure and are dropped outright.
var noiseNames = map[string]struct{}{
	"<anonymous>":    {},
	"<lambda>":       {},
	"anonymous":      {},
	"default":        {},
	"exports":        {},
	"module.exports": {},
}

// internalMarkerPrefix flags tooling-internal names like __webpack_require__.
const internalMarkerPrefix = "__"

// kindMap folds extractor-reported kinds into the canonical three.
// Kinds absent from the map are dropped, except constants which go through
// promotion.
var kindMap = map[string]schema.SymbolKind{
	"function":  schema.FunctionKind,
	"generator": schema.FunctionKind,
	"method":    schema.MethodKind,
	"getter":    schema.MethodKind,
	"setter":    schema.MethodKind,
	"class":     schema.ClassKind,
	"interface": schema.ClassKind,
	"object":    schema.ClassKind,
}

// tagLine is the wire shape of one extractor JSON-lines record.
type tagLine struct {
	Type      string `json:"_type"`
	Name      string `json:"name"`
	Path      string `json:"path"`
	Line      int    `json:"line"`
	Kind      string `json:"kind"`
	Scope     string `json:"scope"`
	ScopeKind string `json:"scopeKind"`
	Pattern   string `json:"pattern"`
}

// ParseExtractorOutput parses the extractor's JSON-lines output into raw
// entries, preserving traversal order. Non-tag records and malformed lines
// are skipped silently; the extractor interleaves them with valid output.
func ParseExtractorOutput(out []byte) []schema.RawSymbolEntry {
	var entries []schema.RawSymbolEntry

	scanner := bufio.NewScanner(bytes.NewReader(out))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var tag tagLine
		if err := json.Unmarshal(line, &tag); err != nil {
			continue
		}
		if tag.Type != "" && tag.Type != "tag" {
			continue
		}
		if tag.Name == "" || tag.Path == "" {
			continue
		}
		entries = append(entries, schema.RawSymbolEntry{
			Name:      tag.Name,
			Path:      tag.Path,
			Line:      tag.Line,
			Kind:      tag.Kind,
			Scope:     tag.Scope,
			ScopeKind: tag.ScopeKind,
			Pattern:   tag.Pattern,
		})
	}
	return entries
}

// NormalizeEntries converts raw entries into canonical symbols. Noise names,
// internal markers, unmapped kinds, unpromoted constants and excluded paths
// all drop here, so downstream stages only ever see the canonical three
// kinds. The input order is preserved.
func NormalizeEntries(entries []schema.RawSymbolEntry, excludes []string) []schema.CanonicalSymbol {
	symbols := make([]schema.CanonicalSymbol, 0, len(entries))
	for _, entry := range entries {
		if isNoiseName(entry.Name) {
			continue
		}

		kind, ok := resolveKind(entry)
		if !ok {
			continue
		}

		path := NormalizePath(entry.Path)
		if contract.ShouldIgnore(strings.TrimPrefix(path, "/"), excludes) {
			continue
		}

		symbols = append(symbols, schema.CanonicalSymbol{
			Name:      entry.Name,
			Kind:      kind,
			Path:      path,
			Line:      entry.Line,
			Scope:     entry.Scope,
			Signature: stripPatternAnchors(entry.Pattern),
		})
	}
	return symbols
}

// isNoiseName reports whether a name is an extractor artifact.
func isNoiseName(name string) bool {
	if _, noise := noiseNames[name]; noise {
		return true
	}
	return strings.HasPrefix(name, internalMarkerPrefix)
}

// resolveKind maps an entry's reported kind to a canonical kind, running
// constants through per-extension promotion.
func resolveKind(entry schema.RawSymbolEntry) (schema.SymbolKind, bool) {
	if kind, ok := kindMap[strings.ToLower(entry.Kind)]; ok {
		return kind, true
	}
	if strings.ToLower(entry.Kind) == "constant" && promoteConstant(entry.Name, entry.Path) {
		return schema.FunctionKind, true
	}
	return "", false
}

// NormalizePath converts an extractor-reported path to the canonical form:
// forward slashes, relative to the scan root, with a leading slash.
func NormalizePath(p string) string {
	p = filepath.ToSlash(filepath.Clean(p))
	p = strings.TrimPrefix(p, "./")
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

// stripPatternAnchors removes the /^ and $/ wrappers from an extractor
// search pattern, leaving the source line as the symbol signature.
func stripPatternAnchors(pattern string) string {
	pattern = strings.TrimPrefix(pattern, "/^")
	pattern = strings.TrimSuffix(pattern, "$/")
	pattern = strings.TrimSuffix(pattern, "/")
	return strings.TrimSpace(pattern)
}
