package contract

import (
	"testing"
	"unicode/utf8"
)

// FuzzTruncatePath checks that truncation never panics and never produces a
// string wider than the requested width for widths that allow truncation.
func FuzzTruncatePath(f *testing.F) {
	f.Add("src/features/checkout/components/Banner.tsx", 24)
	f.Add("a", 0)
	f.Add("", 10)
	f.Add("/deep/nested/path/file.jsx", 4)

	f.Fuzz(func(t *testing.T, path string, maxWidth int) {
		got := TruncatePath(path, maxWidth)
		if !utf8.ValidString(got) && utf8.ValidString(path) {
			t.Errorf("TruncatePath produced invalid UTF-8 from valid input %q", path)
		}
		if maxWidth > 3 && utf8.RuneCountInString(got) > maxWidth && utf8.RuneCountInString(path) > maxWidth {
			t.Errorf("TruncatePath(%q, %d) = %q exceeds width", path, maxWidth, got)
		}
	})
}
