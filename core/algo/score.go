// Package algo has the pure scoring and ranking helpers used by the
// aggregation pipeline.
package algo

import "math"

// HotspotScore weights churn volume by the square root of commit count, so
// sustained activity outranks one-off bulk edits of the same volume. The
// score is defined only when both churn and commits are positive; any other
// combination returns 0, which callers treat as "undefined".
func HotspotScore(churn, commits int) int {
	if churn <= 0 || commits <= 0 {
		return 0
	}
	return int(math.Round(float64(churn) * math.Sqrt(float64(commits))))
}

// CoverageRate returns the share of symbols attributed to a configured
// feature, as a percentage rounded to one decimal place. A zero total is
// degenerate and reports 0.0; callers emit the warning.
func CoverageRate(uncategorized, total int) float64 {
	if total == 0 {
		return 0.0
	}
	rate := (1.0 - float64(uncategorized)/float64(total)) * 100.0
	return math.Round(rate*10) / 10
}
