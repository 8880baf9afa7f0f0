package contract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseRelativeTime(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"minutes", "30 minutes ago", now.Add(-30 * time.Minute)},
		{"singular hour", "1 hour ago", now.Add(-time.Hour)},
		{"days", "14 days ago", now.Add(-14 * 24 * time.Hour)},
		{"weeks", "2 weeks ago", now.Add(-2 * 7 * 24 * time.Hour)},
		{"months", "3 months ago", now.Add(-3 * 30 * 24 * time.Hour)},
		{"years", "1 year ago", now.Add(-365 * 24 * time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRelativeTime(tt.input, now)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRelativeTimeInvalid(t *testing.T) {
	now := time.Now()
	for _, input := range []string{"", "yesterday", "3 fortnights ago", "months ago", "-2 days ago"} {
		_, err := ParseRelativeTime(input, now)
		assert.Error(t, err, "input %q", input)
	}
}
