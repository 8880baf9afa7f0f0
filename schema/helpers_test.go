package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnrichReports(t *testing.T) {
	reports := []FeatureReport{
		{ID: "checkout", Name: "Checkout", Total: 12},
		{ID: "search", Name: "Search", Total: 7},
	}

	enriched := EnrichReports(reports)

	assert.Len(t, enriched, 2)
	assert.Equal(t, 1, enriched[0].Rank)
	assert.Equal(t, "checkout", enriched[0].ID)
	assert.Equal(t, 2, enriched[1].Rank)
	assert.Equal(t, "search", enriched[1].ID)
}

func TestEnrichReportsEmpty(t *testing.T) {
	assert.Empty(t, EnrichReports(nil))
}

func TestIsUncategorized(t *testing.T) {
	assert.True(t, FeatureReport{ID: UncategorizedID}.IsUncategorized())
	assert.False(t, FeatureReport{ID: "checkout"}.IsUncategorized())
}

func TestHasActivity(t *testing.T) {
	assert.True(t, FeatureDelta{BaseChurn: 5}.HasActivity())
	assert.True(t, FeatureDelta{TargetChurn: 3}.HasActivity())
	assert.False(t, FeatureDelta{}.HasActivity())
}
