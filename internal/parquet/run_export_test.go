package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/featlens/featlens/schema"
)

func TestExportRunArtifacts(t *testing.T) {
	base := filepath.Join(t.TempDir(), "run")

	reports := []schema.FeatureReport{
		{
			ID:           "checkout",
			Name:         "Checkout",
			Category:     "Commerce",
			Functions:    12,
			Methods:      8,
			Classes:      3,
			Total:        23,
			Commits:      4,
			Churn:        100,
			HotspotScore: 200,
		},
		{ID: "search", Name: "Search", Category: "Discovery", Total: 5, Functions: 5},
	}
	symbols := []schema.CanonicalSymbol{
		{
			Name:        "addToCart",
			Kind:        schema.FunctionKind,
			Path:        "/src/checkout/cart.ts",
			Line:        10,
			FeatureID:   "checkout",
			FeatureName: "Checkout",
		},
		{
			Name:        "render",
			Kind:        schema.MethodKind,
			Path:        "/src/search/results.tsx",
			Line:        42,
			Scope:       "ResultsView",
			FeatureID:   "search",
			FeatureName: "Search",
		},
	}

	require.NoError(t, ExportRunArtifacts(base, reports, symbols))

	// Feature reports round-trip with rank assigned by position
	featFile, err := os.Open(base + ".features.parquet")
	require.NoError(t, err)
	defer featFile.Close()

	featReader := parquet.NewGenericReader[FeatureReportRow](featFile)
	defer featReader.Close()

	featRows := make([]FeatureReportRow, featReader.NumRows())
	n, err := featReader.Read(featRows)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	require.Equal(t, 2, n)
	assert.Equal(t, int64(1), featRows[0].Rank)
	assert.Equal(t, "checkout", featRows[0].FeatureID)
	assert.Equal(t, int64(200), featRows[0].HotspotScore)
	assert.Equal(t, int64(2), featRows[1].Rank)
	assert.Equal(t, "search", featRows[1].FeatureID)

	// Symbols round-trip
	symFile, err := os.Open(base + ".symbols.parquet")
	require.NoError(t, err)
	defer symFile.Close()

	symReader := parquet.NewGenericReader[SymbolRow](symFile)
	defer symReader.Close()

	symRows := make([]SymbolRow, symReader.NumRows())
	n, err = symReader.Read(symRows)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	require.Equal(t, 2, n)
	assert.Equal(t, "addToCart", symRows[0].Name)
	assert.Equal(t, "function", symRows[0].Kind)
	assert.Equal(t, "/src/checkout/cart.ts", symRows[0].Path)
	assert.Equal(t, "render", symRows[1].Name)
	assert.Equal(t, "ResultsView", symRows[1].Scope)
}

func TestExportRunArtifactsInvalidPath(t *testing.T) {
	err := ExportRunArtifacts("/nonexistent/directory/run", nil, nil)
	assert.Error(t, err, "Writing to invalid path should produce error")
}
