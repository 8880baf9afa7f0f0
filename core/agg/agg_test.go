package agg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/featlens/featlens/schema"
)

var bucketRules = []schema.FeatureRule{
	{ID: "checkout", Name: "Checkout", Category: "Commerce", Paths: []string{"/checkout/"}},
	{ID: "search", Name: "Search", Category: "Discovery", Paths: []string{"/search/"}},
}

func TestNewBucketSetSeedsDeclaredOrder(t *testing.T) {
	bs := NewBucketSet(bucketRules)
	reports := bs.Reports()

	require.Len(t, reports, 3)
	assert.Equal(t, "checkout", reports[0].ID)
	assert.Equal(t, "search", reports[1].ID)
	assert.Equal(t, schema.UncategorizedID, reports[2].ID)
	assert.Equal(t, schema.UnknownCategory, reports[2].Category)
}

func TestAddSymbolPreservesTotals(t *testing.T) {
	bs := NewBucketSet(bucketRules)
	symbols := []schema.CanonicalSymbol{
		{Kind: schema.FunctionKind, FeatureID: "checkout", FeatureName: "Checkout"},
		{Kind: schema.MethodKind, FeatureID: "checkout", FeatureName: "Checkout"},
		{Kind: schema.ClassKind, FeatureID: "search", FeatureName: "Search"},
		{Kind: schema.FunctionKind, FeatureID: schema.UncategorizedID, FeatureName: schema.UncategorizedName},
	}
	for _, sym := range symbols {
		bs.AddSymbol(sym)
	}

	reports := bs.Reports()
	assert.Equal(t, 1, reports[0].Functions)
	assert.Equal(t, 1, reports[0].Methods)
	assert.Equal(t, 2, reports[0].Total)
	assert.Equal(t, 1, reports[1].Classes)

	// Every symbol lands in exactly one bucket.
	assert.Equal(t, len(symbols), bs.SymbolTotal())
	assert.Equal(t, 1, bs.UncategorizedTotal())
}

func TestAddSymbolUnseededFeature(t *testing.T) {
	bs := NewBucketSet(bucketRules)
	bs.AddSymbol(schema.CanonicalSymbol{
		Kind: schema.FunctionKind, FeatureID: "drive-by", FeatureName: "Drive By",
	})

	reports := bs.Reports()
	require.Len(t, reports, 4)
	assert.Equal(t, "drive-by", reports[3].ID)
	assert.Equal(t, schema.UnknownCategory, reports[3].Category)
	assert.Equal(t, 1, reports[3].Total)
}

func TestAddChurnAndScore(t *testing.T) {
	bs := NewBucketSet(bucketRules)
	bs.AddChurn(bucketRules[0], schema.RawChurnRecord{Path: "/checkout/a.ts", Commits: 3, Churn: 60})
	bs.AddChurn(bucketRules[0], schema.RawChurnRecord{Path: "/checkout/b.ts", Commits: 1, Churn: 40})

	reports := bs.Reports()
	checkout := reports[0]

	assert.Equal(t, 4, checkout.Commits)
	assert.Equal(t, 100, checkout.Churn)
	assert.Equal(t, 200, checkout.HotspotScore) // 100 * sqrt(4)
	require.Len(t, checkout.TopFiles, 2)
	assert.Equal(t, "/checkout/a.ts", checkout.TopFiles[0].Path)
}

func TestReportsTrimsTopFiles(t *testing.T) {
	bs := NewBucketSet(bucketRules)
	for i := range 15 {
		bs.AddChurn(bucketRules[1], schema.RawChurnRecord{
			Path: "/search/f" + string(rune('a'+i)) + ".ts", Commits: 1, Churn: i + 1,
		})
	}

	search := bs.Reports()[1]
	require.Len(t, search.TopFiles, 10)
	assert.Equal(t, 15, search.TopFiles[0].Churn)
}
