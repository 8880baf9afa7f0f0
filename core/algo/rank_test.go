package algo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/featlens/featlens/schema"
)

func TestRankReportsUnwindowed(t *testing.T) {
	reports := []schema.FeatureReport{
		{ID: "small", Total: 2},
		{ID: "big", Total: 40},
		{ID: "empty", Total: 0},
		{ID: "medium", Total: 10},
	}

	ranked := RankReports(reports, false, 25)

	require.Len(t, ranked, 3)
	assert.Equal(t, "big", ranked[0].ID)
	assert.Equal(t, "medium", ranked[1].ID)
	assert.Equal(t, "small", ranked[2].ID)
}

func TestRankReportsWindowed(t *testing.T) {
	reports := []schema.FeatureReport{
		{ID: "cold", Total: 100},                                 // no churn, score undefined
		{ID: "warm", Total: 5, Churn: 40, Commits: 2, HotspotScore: 57},
		{ID: "hot", Total: 1, Churn: 500, Commits: 9, HotspotScore: 1500},
	}

	ranked := RankReports(reports, true, 25)

	require.Len(t, ranked, 3)
	// Defined scores rank above the undefined one regardless of totals.
	assert.Equal(t, "hot", ranked[0].ID)
	assert.Equal(t, "warm", ranked[1].ID)
	assert.Equal(t, "cold", ranked[2].ID)
}

func TestRankReportsWindowedTieBreaksOnTotal(t *testing.T) {
	reports := []schema.FeatureReport{
		{ID: "a", Total: 3, Churn: 10, Commits: 1, HotspotScore: 10},
		{ID: "b", Total: 9, Churn: 10, Commits: 1, HotspotScore: 10},
	}

	ranked := RankReports(reports, true, 25)

	assert.Equal(t, "b", ranked[0].ID)
}

func TestRankReportsDropsOnlyFullyEmptyBuckets(t *testing.T) {
	reports := []schema.FeatureReport{
		{ID: "symbols-only", Total: 4},
		{ID: "churn-only", Total: 0, Churn: 25, Commits: 3, HotspotScore: 43},
		{ID: "dead", Total: 0, Churn: 0},
	}

	ranked := RankReports(reports, true, 25)

	require.Len(t, ranked, 2)
	assert.Equal(t, "churn-only", ranked[0].ID)
	assert.Equal(t, "symbols-only", ranked[1].ID)
}

func TestRankReportsLimit(t *testing.T) {
	reports := []schema.FeatureReport{
		{ID: "a", Total: 3},
		{ID: "b", Total: 2},
		{ID: "c", Total: 1},
	}

	ranked := RankReports(reports, false, 2)

	require.Len(t, ranked, 2)
	assert.Equal(t, "a", ranked[0].ID)
}

func TestTrimTopFiles(t *testing.T) {
	files := make([]schema.TopFile, 0, 12)
	for i := range 12 {
		files = append(files, schema.TopFile{Path: string(rune('a'+i)), Churn: i})
	}

	trimmed := TrimTopFiles(files)

	require.Len(t, trimmed, 10)
	assert.Equal(t, 11, trimmed[0].Churn)
	assert.Equal(t, 2, trimmed[9].Churn)
}

func TestTrimTopFilesStableOnTies(t *testing.T) {
	files := []schema.TopFile{
		{Path: "/first.ts", Churn: 5},
		{Path: "/second.ts", Churn: 5},
		{Path: "/third.ts", Churn: 9},
	}

	trimmed := TrimTopFiles(files)

	assert.Equal(t, "/third.ts", trimmed[0].Path)
	assert.Equal(t, "/first.ts", trimmed[1].Path)
	assert.Equal(t, "/second.ts", trimmed[2].Path)
}
