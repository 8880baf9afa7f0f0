package classify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/featlens/featlens/schema"
)

func TestParseExtractorOutput(t *testing.T) {
	out := strings.Join([]string{
		`{"_type":"tag","name":"Banner","path":"src/ui/Banner.tsx","line":4,"kind":"function","pattern":"/^export function Banner() {$/"}`,
		`{"_type":"ptag","name":"!_TAG_PROGRAM_NAME","path":"ctags"}`,
		`not json at all`,
		`{"_type":"tag","name":"render","path":"src/ui/Banner.tsx","line":9,"kind":"method","scope":"Banner","scopeKind":"class"}`,
	}, "\n")

	entries := ParseExtractorOutput([]byte(out))

	require.Len(t, entries, 2)
	assert.Equal(t, "Banner", entries[0].Name)
	assert.Equal(t, 4, entries[0].Line)
	assert.Equal(t, "render", entries[1].Name)
	assert.Equal(t, "Banner", entries[1].Scope)
}

func TestNormalizeEntriesKinds(t *testing.T) {
	entries := []schema.RawSymbolEntry{
		{Name: "fetchData", Path: "src/api.ts", Kind: "function"},
		{Name: "walk", Path: "src/tree.ts", Kind: "generator"},
		{Name: "render", Path: "src/view.ts", Kind: "method"},
		{Name: "value", Path: "src/view.ts", Kind: "getter"},
		{Name: "value", Path: "src/view.ts", Kind: "setter"},
		{Name: "Store", Path: "src/store.ts", Kind: "class"},
		{Name: "Props", Path: "src/types.ts", Kind: "interface"},
		{Name: "config", Path: "src/config.ts", Kind: "object"},
		{Name: "thing", Path: "src/x.ts", Kind: "variable"},
		{Name: "Widget", Path: "src/x.ts", Kind: "property"},
	}

	symbols := NormalizeEntries(entries, nil)

	require.Len(t, symbols, 8)
	assert.Equal(t, schema.FunctionKind, symbols[0].Kind)
	assert.Equal(t, schema.FunctionKind, symbols[1].Kind)
	assert.Equal(t, schema.MethodKind, symbols[2].Kind)
	assert.Equal(t, schema.MethodKind, symbols[3].Kind)
	assert.Equal(t, schema.MethodKind, symbols[4].Kind)
	assert.Equal(t, schema.ClassKind, symbols[5].Kind)
	assert.Equal(t, schema.ClassKind, symbols[6].Kind)
	assert.Equal(t, schema.ClassKind, symbols[7].Kind)
}

func TestNormalizeEntriesNoise(t *testing.T) {
	entries := []schema.RawSymbolEntry{
		{Name: "<anonymous>", Path: "src/a.ts", Kind: "function"},
		{Name: "<lambda>", Path: "src/a.ts", Kind: "function"},
		{Name: "anonymous", Path: "src/a.ts", Kind: "function"},
		{Name: "default", Path: "src/a.ts", Kind: "function"},
		{Name: "exports", Path: "src/a.ts", Kind: "object"},
		{Name: "module.exports", Path: "src/a.ts", Kind: "object"},
		{Name: "__webpack_require__", Path: "src/a.ts", Kind: "function"},
		{Name: "keepMe", Path: "src/a.ts", Kind: "function"},
	}

	symbols := NormalizeEntries(entries, nil)

	require.Len(t, symbols, 1)
	assert.Equal(t, "keepMe", symbols[0].Name)
}

func TestNormalizeEntriesConstantPromotion(t *testing.T) {
	entries := []schema.RawSymbolEntry{
		{Name: "UserCard", Path: "src/UserCard.ts", Kind: "constant"},
		{Name: "useCartState", Path: "src/hooks.ts", Kind: "constant"},
		{Name: "MAX_RETRIES", Path: "src/config.ts", Kind: "constant"},
		{Name: "formatPrice", Path: "src/util.ts", Kind: "constant"},
		{Name: "formatPrice", Path: "src/Util.tsx", Kind: "constant"},
	}

	symbols := NormalizeEntries(entries, nil)

	// MAX_RETRIES never promotes; lowercase helpers promote only in .tsx.
	require.Len(t, symbols, 3)
	assert.Equal(t, "UserCard", symbols[0].Name)
	assert.Equal(t, schema.FunctionKind, symbols[0].Kind)
	assert.Equal(t, "useCartState", symbols[1].Name)
	assert.Equal(t, "/src/Util.tsx", symbols[2].Path)
}

func TestNormalizeEntriesExcludes(t *testing.T) {
	entries := []schema.RawSymbolEntry{
		{Name: "bundled", Path: "dist/app.js", Kind: "function"},
		{Name: "source", Path: "src/app.ts", Kind: "function"},
	}

	symbols := NormalizeEntries(entries, []string{"dist/"})

	require.Len(t, symbols, 1)
	assert.Equal(t, "source", symbols[0].Name)
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "/src/app.ts", NormalizePath("src/app.ts"))
	assert.Equal(t, "/src/app.ts", NormalizePath("./src/app.ts"))
	assert.Equal(t, "/src/app.ts", NormalizePath("/src/app.ts"))
}

func TestStripPatternAnchors(t *testing.T) {
	assert.Equal(t, "export function Banner() {", stripPatternAnchors("/^export function Banner() {$/"))
	assert.Equal(t, "", stripPatternAnchors(""))
}
