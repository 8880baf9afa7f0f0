package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/featlens/featlens/internal/contract"
	"github.com/featlens/featlens/schema"
)

func validFeatureMap() *schema.FeatureMap {
	return &schema.FeatureMap{
		Project: "shop",
		Rules: []schema.FeatureRule{
			{ID: "checkout", Name: "Checkout", Category: "Commerce", Paths: []string{"/checkout/"}},
			{ID: "search", Name: "Search", Category: "Discovery", Paths: []string{"/search/"}},
		},
	}
}

func TestLintFeatureMapClean(t *testing.T) {
	assert.Empty(t, LintFeatureMap(validFeatureMap()))
}

func TestLintFeatureMapViolations(t *testing.T) {
	tests := []struct {
		name         string
		rules        []schema.FeatureRule
		expectedKind string
		expectedRule string
	}{
		{
			name: "duplicate id",
			rules: []schema.FeatureRule{
				{ID: "checkout", Name: "Checkout", Paths: []string{"/checkout/"}},
				{ID: "checkout", Name: "Checkout Again", Paths: []string{"/cart/"}},
			},
			expectedKind: "duplicate-id",
			expectedRule: "checkout",
		},
		{
			name: "reserved id",
			rules: []schema.FeatureRule{
				{ID: schema.UncategorizedID, Name: "Catch All", Paths: []string{"/misc/"}},
			},
			expectedKind: "reserved-id",
			expectedRule: schema.UncategorizedID,
		},
		{
			name: "invalid slug",
			rules: []schema.FeatureRule{
				{ID: "Check_Out", Name: "Checkout", Paths: []string{"/checkout/"}},
			},
			expectedKind: "invalid-id",
			expectedRule: "Check_Out",
		},
		{
			name: "missing id",
			rules: []schema.FeatureRule{
				{Name: "Checkout", Paths: []string{"/checkout/"}},
			},
			expectedKind: "invalid-id",
		},
		{
			name: "no path substrings",
			rules: []schema.FeatureRule{
				{ID: "checkout", Name: "Checkout"},
			},
			expectedKind: "empty-paths",
			expectedRule: "checkout",
		},
		{
			name: "empty path substring",
			rules: []schema.FeatureRule{
				{ID: "checkout", Name: "Checkout", Paths: []string{"/checkout/", ""}},
			},
			expectedKind: "empty-paths",
			expectedRule: "checkout",
		},
		{
			name: "fully shadowed rule",
			rules: []schema.FeatureRule{
				{ID: "commerce", Name: "Commerce", Paths: []string{"/checkout/"}},
				{ID: "cart", Name: "Cart", Paths: []string{"/checkout/cart"}},
			},
			expectedKind: "shadowed",
			expectedRule: "cart",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := LintFeatureMap(&schema.FeatureMap{Rules: tt.rules})
			require.Len(t, violations, 1)
			assert.Equal(t, tt.expectedKind, violations[0].Kind)
			assert.Equal(t, tt.expectedRule, violations[0].RuleID)
			assert.NotEmpty(t, violations[0].Detail)
		})
	}
}

func TestLintFeatureMapEmpty(t *testing.T) {
	violations := LintFeatureMap(&schema.FeatureMap{})
	require.Len(t, violations, 1)
	assert.Equal(t, "empty-paths", violations[0].Kind)
	assert.Contains(t, violations[0].Detail, "declares no features")
}

func TestLintFeatureMapPartialOverlapIsNotShadowed(t *testing.T) {
	fm := &schema.FeatureMap{Rules: []schema.FeatureRule{
		{ID: "commerce", Name: "Commerce", Paths: []string{"/checkout/"}},
		// The second substring can still win, so the rule is reachable.
		{ID: "cart", Name: "Cart", Paths: []string{"/checkout/cart", "/basket/"}},
	}}
	assert.Empty(t, LintFeatureMap(fm))
}

func TestLintFeatureMapCollectsMultipleViolations(t *testing.T) {
	fm := &schema.FeatureMap{Rules: []schema.FeatureRule{
		{ID: "checkout", Name: "Checkout", Paths: []string{"/checkout/"}},
		{ID: "checkout", Name: "Checkout Again"},
		{ID: "Bad Slug", Name: "Bad", Paths: []string{"/bad/"}},
	}}

	violations := LintFeatureMap(fm)
	require.Len(t, violations, 3)

	kinds := make([]string, len(violations))
	for i, v := range violations {
		kinds[i] = v.Kind
	}
	assert.ElementsMatch(t, []string{"duplicate-id", "empty-paths", "invalid-id"}, kinds)
}

func TestBuildCheckResultAllGood(t *testing.T) {
	cfg := &contract.Config{ScanRoot: "/repo", FeatureMap: validFeatureMap()}

	extractor := &contract.MockExtractorClient{}
	extractor.On("Probe", mock.Anything).Return("Universal Ctags 6.1.0", nil)
	git := &contract.MockGitClient{}
	git.On("Run", mock.Anything, "/repo", []string{"rev-parse", "--git-dir"}).
		Return([]byte(".git\n"), nil)

	result := BuildCheckResult(context.Background(), cfg, extractor, git)

	assert.True(t, result.Passed)
	assert.Equal(t, 2, result.RuleCount)
	assert.Empty(t, result.Violations)
	assert.True(t, result.ExtractorOK)
	assert.Equal(t, "Universal Ctags 6.1.0", result.ExtractorVersion)
	assert.True(t, result.GitOK)
}

func TestBuildCheckResultMissingTools(t *testing.T) {
	cfg := &contract.Config{ScanRoot: "/repo", FeatureMap: validFeatureMap()}

	extractor := &contract.MockExtractorClient{}
	extractor.On("Probe", mock.Anything).Return("", errors.New("ctags not available"))
	git := &contract.MockGitClient{}
	git.On("Run", mock.Anything, "/repo", []string{"rev-parse", "--git-dir"}).
		Return([]byte(nil), errors.New("not a git repository"))

	result := BuildCheckResult(context.Background(), cfg, extractor, git)

	assert.False(t, result.Passed)
	assert.False(t, result.ExtractorOK)
	assert.Empty(t, result.ExtractorVersion)
	assert.False(t, result.GitOK)
	assert.Empty(t, result.Violations)
}

func TestBuildCheckResultViolationsFail(t *testing.T) {
	fm := &schema.FeatureMap{Rules: []schema.FeatureRule{
		{ID: "checkout", Name: "Checkout"},
	}}
	cfg := &contract.Config{ScanRoot: "/repo", FeatureMap: fm}

	extractor := &contract.MockExtractorClient{}
	extractor.On("Probe", mock.Anything).Return("Universal Ctags 6.1.0", nil)
	git := &contract.MockGitClient{}
	git.On("Run", mock.Anything, "/repo", []string{"rev-parse", "--git-dir"}).
		Return([]byte(".git\n"), nil)

	result := BuildCheckResult(context.Background(), cfg, extractor, git)

	assert.False(t, result.Passed)
	require.Len(t, result.Violations, 1)
	assert.Equal(t, "empty-paths", result.Violations[0].Kind)
}
