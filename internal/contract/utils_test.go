package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShouldIgnore(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		excludes []string
		want     bool
	}{
		{"empty excludes", "src/app.ts", nil, false},
		{"prefix match", "vendor/lib.js", []string{"vendor/"}, true},
		{"prefix no match", "src/vendor.ts", []string{"vendor/"}, false},
		{"suffix match", "bundle.min.js", []string{".min.js"}, true},
		{"glob match", "assets/app.min.js", []string{"*.min.js"}, true},
		{"substring match", "src/generated/api.ts", []string{"generated"}, true},
		{"blank pattern skipped", "src/app.ts", []string{"  ", ""}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldIgnore(tt.path, tt.excludes))
		})
	}
}

func TestTruncatePath(t *testing.T) {
	assert.Equal(t, "short.ts", TruncatePath("short.ts", 20))
	assert.Equal(t, "...components/Banner.tsx", TruncatePath("src/features/checkout/components/Banner.tsx", 24))
	// Small widths leave the path untouched to avoid slicing out everything.
	assert.Equal(t, "abcdef", TruncatePath("abcdef", 3))
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "TRUE", "1"} {
		got, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.True(t, got)
	}
	for _, s := range []string{"no", "False", "0"} {
		got, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.False(t, got)
	}
	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}

func TestGetPlainLabel(t *testing.T) {
	assert.Equal(t, ExcellentValue, GetPlainLabel(95.0))
	assert.Equal(t, ExcellentValue, GetPlainLabel(90.0))
	assert.Equal(t, GoodValue, GetPlainLabel(80.0))
	assert.Equal(t, FairValue, GetPlainLabel(60.0))
	assert.Equal(t, PoorValue, GetPlainLabel(10.0))
}
