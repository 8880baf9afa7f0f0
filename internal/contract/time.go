package contract

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// relativeTimeRe matches expressions like "3 months ago" or "1 week ago".
var relativeTimeRe = regexp.MustCompile(`^(\d+)\s+(year|month|week|day|hour|minute)s?\s+ago$`)

// ParseRelativeTime converts a human expression like "2 weeks ago" into an
// absolute time anchored at now. Months use 30 days and years 365 days,
// matching how the churn window is reasoned about elsewhere.
func ParseRelativeTime(s string, now time.Time) (time.Time, error) {
	matches := relativeTimeRe.FindStringSubmatch(s)
	if matches == nil {
		return time.Time{}, fmt.Errorf("invalid relative time format: %q (expected 'N units ago', e.g. '3 months ago')", s)
	}

	n, err := strconv.Atoi(matches[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid relative time quantity %q: %w", matches[1], err)
	}

	var unit time.Duration
	switch matches[2] {
	case "minute":
		unit = time.Minute
	case "hour":
		unit = time.Hour
	case "day":
		unit = 24 * time.Hour
	case "week":
		unit = 7 * 24 * time.Hour
	case "month":
		unit = 30 * 24 * time.Hour
	case "year":
		unit = 365 * 24 * time.Hour
	}

	return now.Add(-time.Duration(n) * unit), nil
}
