// Package agg folds classified symbols and churn records into per-feature buckets.
package agg

import (
	"strconv"
	"strings"

	"github.com/featlens/featlens/internal/contract"
	"github.com/featlens/featlens/schema"
)

// ParseChurnLog processes the one-pass numstat git log into per-file churn
// records. Records come back in first-seen order with paths normalized to
// the classifier's leading-slash convention. Renames resolve to the new
// path so post-rename files keep accumulating under one identity; binary
// markers count as zero churn but still count the commit.
func ParseChurnLog(out []byte, excludes []string) []schema.RawChurnRecord {
	byPath := make(map[string]*schema.RawChurnRecord)
	var order []string

	lines := strings.Split(string(out), "\n")
	for _, l := range lines {
		l = strings.Trim(l, " \t\r\n'")

		if strings.HasPrefix(l, "--") {
			// Commit header line; per-file stats follow until the next one.
			continue
		}
		if l == "" {
			continue
		}

		path, add, del, ok := parseFileStatsLine(l)
		if !ok {
			continue
		}
		if contract.ShouldIgnore(path, excludes) {
			continue
		}

		normalized := "/" + path
		rec, seen := byPath[normalized]
		if !seen {
			rec = &schema.RawChurnRecord{Path: normalized}
			byPath[normalized] = rec
			order = append(order, normalized)
		}
		rec.Commits++
		rec.Additions += add
		rec.Deletions += del
		rec.Churn += add + del
	}

	records := make([]schema.RawChurnRecord, 0, len(order))
	for _, path := range order {
		records = append(records, *byPath[path])
	}
	return records
}

// parseFileStatsLine parses one "add\tdel\tpath" numstat line.
func parseFileStatsLine(line string) (path string, add, del int, ok bool) {
	parts := strings.SplitN(line, "\t", 3)
	if len(parts) < 3 {
		return "", 0, 0, false
	}

	add = parseChurnValue(parts[0])
	del = parseChurnValue(parts[1])
	path = resolveRenamePath(parts[2])
	if path == "" {
		return "", 0, 0, false
	}
	return path, add, del, true
}

// parseChurnValue converts a churn string to int, handling "-" (binary) as 0.
func parseChurnValue(s string) int {
	if s == "-" {
		return 0
	}
	if val, err := strconv.Atoi(s); err == nil && val >= 0 {
		return val
	}
	return 0
}

// resolveRenamePath collapses git's rename notation to the new path.
// Handles both "old => new" and the braced "prefix{old => new}suffix" form.
func resolveRenamePath(path string) string {
	if !strings.Contains(path, " => ") {
		return path
	}

	if !strings.Contains(path, "{") {
		// Simple format: "old => new"
		parts := strings.SplitN(path, " => ", 2)
		if len(parts) == 2 {
			return parts[1]
		}
		return ""
	}

	// Braced format: prefix{old => new}suffix
	braceStart := strings.Index(path, "{")
	braceEnd := strings.Index(path, "}")
	if braceStart == -1 || braceEnd == -1 || braceStart >= braceEnd {
		return ""
	}

	prefix := path[:braceStart]
	renamePart := path[braceStart+1 : braceEnd]
	suffix := path[braceEnd+1:]

	if !strings.Contains(renamePart, " => ") {
		return ""
	}

	renameParts := strings.SplitN(renamePart, " => ", 2)
	return prefix + renameParts[1] + suffix
}
