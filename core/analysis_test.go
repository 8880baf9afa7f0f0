package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/featlens/featlens/internal/contract"
	"github.com/featlens/featlens/internal/iocache"
	"github.com/featlens/featlens/schema"
)

// analysisExtractorOutput is a small ctags-style JSON-lines capture covering
// all three canonical kinds plus an unmatched path.
const analysisExtractorOutput = `{"_type":"tag","name":"addToCart","path":"src/checkout/cart.ts","line":10,"kind":"function","pattern":"/^export function addToCart() {$/"}
{"_type":"tag","name":"CartService","path":"src/checkout/service.ts","line":3,"kind":"class"}
{"_type":"tag","name":"render","path":"src/checkout/service.ts","line":12,"kind":"method","scope":"CartService"}
{"_type":"tag","name":"searchIndex","path":"src/search/index.ts","line":5,"kind":"function"}
{"_type":"tag","name":"helper","path":"src/util/strings.ts","line":2,"kind":"function"}
`

// analysisChurnLog is a one-pass numstat capture touching two features.
const analysisChurnLog = "'--abc123|Alice|2025-06-01T10:00:00+00:00'\n" +
	"10\t5\tsrc/checkout/cart.ts\n" +
	"3\t1\tsrc/search/index.ts\n"

func analysisConfig(t *testing.T) *contract.Config {
	t.Helper()
	return &contract.Config{
		ScanRoot:    t.TempDir(),
		ResultLimit: 25,
		Output:      schema.JSONOut,
		FeatureMap: &schema.FeatureMap{
			Project: "shop",
			Rules: []schema.FeatureRule{
				{ID: "checkout", Name: "Checkout", Category: "Commerce", Paths: []string{"/checkout/"}},
				{ID: "search", Name: "Search", Category: "Discovery", Paths: []string{"/search/"}},
			},
		},
	}
}

func analysisExtractor(cfg *contract.Config, output string) *contract.MockExtractorClient {
	extractor := &contract.MockExtractorClient{}
	extractor.On("Extract", mock.Anything, cfg.ScanRoot).Return([]byte(output), nil)
	return extractor
}

func TestRunAnalysisCoreUnwindowed(t *testing.T) {
	cfg := analysisConfig(t)
	extractor := analysisExtractor(cfg, analysisExtractorOutput)
	git := &contract.MockGitClient{}

	out, err := runAnalysisCore(context.Background(), cfg, extractor, git, nil)
	require.NoError(t, err)

	assert.Equal(t, 5, out.TotalSymbols)
	assert.Equal(t, 1, out.Uncategorized)
	assert.InDelta(t, 80.0, out.CoverageRate, 0.001)
	assert.False(t, out.Windowed)
	assert.Len(t, out.Symbols, 5)

	require.Len(t, out.Reports, 3)
	checkout := out.Reports[0]
	assert.Equal(t, "checkout", checkout.ID)
	assert.Equal(t, 1, checkout.Functions)
	assert.Equal(t, 1, checkout.Methods)
	assert.Equal(t, 1, checkout.Classes)
	assert.Equal(t, 3, checkout.Total)
	assert.Zero(t, checkout.Commits)
	assert.Zero(t, checkout.HotspotScore)
	assert.Equal(t, "search", out.Reports[1].ID)
	assert.Equal(t, schema.UncategorizedID, out.Reports[2].ID)

	git.AssertNotCalled(t, "GetChurnLog", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	extractor.AssertExpectations(t)
}

func TestRunAnalysisCoreWindowed(t *testing.T) {
	cfg := analysisConfig(t)
	cfg.Windowed = true
	extractor := analysisExtractor(cfg, analysisExtractorOutput)
	git := &contract.MockGitClient{}
	git.On("GetChurnLog", mock.Anything, cfg.ScanRoot, cfg.StartTime, cfg.EndTime).
		Return([]byte(analysisChurnLog), nil)

	out, err := runAnalysisCore(context.Background(), cfg, extractor, git, nil)
	require.NoError(t, err)

	assert.True(t, out.Windowed)
	require.NotEmpty(t, out.Reports)
	checkout := out.Reports[0]
	assert.Equal(t, "checkout", checkout.ID)
	assert.Equal(t, 1, checkout.Commits)
	assert.Equal(t, 15, checkout.Churn)
	assert.Equal(t, 15, checkout.HotspotScore) // round(15 * sqrt(1))
	require.Len(t, checkout.TopFiles, 1)
	assert.Equal(t, "/src/checkout/cart.ts", checkout.TopFiles[0].Path)

	search := out.Reports[1]
	assert.Equal(t, "search", search.ID)
	assert.Equal(t, 4, search.Churn)

	git.AssertExpectations(t)
}

func TestRunAnalysisCoreOrphanRecovery(t *testing.T) {
	cfg := analysisConfig(t)

	// The extractor saw the file but dropped the arrow-function component.
	componentDir := filepath.Join(cfg.ScanRoot, "src", "checkout")
	require.NoError(t, os.MkdirAll(componentDir, 0o755))
	componentSrc := "import React from 'react';\n\nexport const CartBanner = () => <div />;\n"
	require.NoError(t, os.WriteFile(filepath.Join(componentDir, "Banner.tsx"), []byte(componentSrc), 0o644))

	extractorOutput := `{"_type":"tag","name":"addToCart","path":"src/checkout/cart.ts","line":10,"kind":"function"}
{"_type":"tag","name":"<anonymous>","path":"src/checkout/Banner.tsx","line":3,"kind":"function"}
`
	extractor := analysisExtractor(cfg, extractorOutput)

	out, err := runAnalysisCore(context.Background(), cfg, extractor, &contract.MockGitClient{}, nil)
	require.NoError(t, err)

	require.Equal(t, 2, out.TotalSymbols)
	recovered := out.Symbols[1]
	assert.Equal(t, "CartBanner", recovered.Name)
	assert.Equal(t, schema.FunctionKind, recovered.Kind)
	assert.Equal(t, "/src/checkout/Banner.tsx", recovered.Path)
	assert.Equal(t, 3, recovered.Line)
	assert.Equal(t, "checkout", recovered.FeatureID)
}

func TestRunAnalysisCoreExtractorFailure(t *testing.T) {
	cfg := analysisConfig(t)
	extractor := &contract.MockExtractorClient{}
	extractor.On("Extract", mock.Anything, cfg.ScanRoot).
		Return([]byte(nil), errors.New("ctags not found"))

	out, err := runAnalysisCore(context.Background(), cfg, extractor, &contract.MockGitClient{}, nil)
	assert.Nil(t, out)
	assert.ErrorContains(t, err, "ctags not found")
}

func TestRunAnalysisCoreDegenerateInput(t *testing.T) {
	cfg := analysisConfig(t)
	extractor := analysisExtractor(cfg, "")

	out, err := runAnalysisCore(context.Background(), cfg, extractor, &contract.MockGitClient{}, nil)
	require.NoError(t, err)

	assert.Zero(t, out.TotalSymbols)
	assert.Zero(t, out.CoverageRate)
	assert.Empty(t, out.Reports) // all-zero buckets rank out
}

func TestRunAnalysisCoreRecordsHistory(t *testing.T) {
	cfg := analysisConfig(t)
	extractor := analysisExtractor(cfg, analysisExtractorOutput)

	history := &iocache.MockHistoryStore{}
	history.On("BeginRun", mock.Anything, mock.Anything).Return(int64(7), nil)
	history.On("RecordFeatureStats", int64(7), mock.Anything, mock.Anything).Return(nil)
	history.On("EndRun", int64(7), mock.Anything, 5).Return(nil)

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetActivityStore").Return(nil)
	mgr.On("GetHistoryStore").Return(history)

	_, err := runAnalysisCore(context.Background(), cfg, extractor, &contract.MockGitClient{}, mgr)
	require.NoError(t, err)

	history.AssertExpectations(t)
}

func TestRunAnalysisCoreHistoryFailureIsNonFatal(t *testing.T) {
	cfg := analysisConfig(t)
	extractor := analysisExtractor(cfg, analysisExtractorOutput)

	history := &iocache.MockHistoryStore{}
	history.On("BeginRun", mock.Anything, mock.Anything).Return(int64(0), errors.New("db locked"))

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetActivityStore").Return(nil)
	mgr.On("GetHistoryStore").Return(history)

	out, err := runAnalysisCore(context.Background(), cfg, extractor, &contract.MockGitClient{}, mgr)
	require.NoError(t, err)
	assert.Equal(t, 5, out.TotalSymbols)

	history.AssertNotCalled(t, "EndRun", mock.Anything, mock.Anything, mock.Anything)
	history.AssertNotCalled(t, "RecordFeatureStats", mock.Anything, mock.Anything, mock.Anything)
}

func TestFilterSymbols(t *testing.T) {
	symbols := []schema.CanonicalSymbol{
		{Name: "addToCart", FeatureID: "checkout"},
		{Name: "searchIndex", FeatureID: "search"},
		{Name: "CartService", FeatureID: "checkout"},
		{Name: "helper", FeatureID: schema.UncategorizedID},
	}

	tests := []struct {
		name     string
		filter   string
		limit    int
		expected []string
	}{
		{name: "no filter", filter: "", limit: 25, expected: []string{"addToCart", "searchIndex", "CartService", "helper"}},
		{name: "feature filter", filter: "checkout", limit: 25, expected: []string{"addToCart", "CartService"}},
		{name: "uncategorized filter", filter: schema.UncategorizedID, limit: 25, expected: []string{"helper"}},
		{name: "limit applies after filter", filter: "checkout", limit: 1, expected: []string{"addToCart"}},
		{name: "no match", filter: "payments", limit: 25, expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &contract.Config{FeatureFilter: tt.filter, ResultLimit: tt.limit}
			got := filterSymbols(symbols, cfg)
			names := make([]string, 0, len(got))
			for _, sym := range got {
				names = append(names, sym.Name)
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestShouldSuppressHeader(t *testing.T) {
	ctx := context.Background()
	assert.False(t, shouldSuppressHeader(ctx))
	assert.True(t, shouldSuppressHeader(withSuppressHeader(ctx)))
}
