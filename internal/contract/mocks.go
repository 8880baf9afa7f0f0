package contract

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockGitClient is a mock implementation of the GitClient interface for testing.
type MockGitClient struct {
	mock.Mock
}

var _ GitClient = &MockGitClient{} // Compile-time check

// Run mocks the raw git command execution.
func (m *MockGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	callArgs := m.Called(ctx, repoPath, args)
	return callArgs.Get(0).([]byte), callArgs.Error(1)
}

// GetChurnLog mocks the numstat activity log query.
func (m *MockGitClient) GetChurnLog(ctx context.Context, repoPath string, startTime, endTime time.Time) ([]byte, error) {
	callArgs := m.Called(ctx, repoPath, startTime, endTime)
	return callArgs.Get(0).([]byte), callArgs.Error(1)
}

// GetRepoHash mocks the HEAD hash query.
func (m *MockGitClient) GetRepoHash(ctx context.Context, repoPath string) (string, error) {
	callArgs := m.Called(ctx, repoPath)
	return callArgs.String(0), callArgs.Error(1)
}

// GetRepoRoot mocks the repository root query.
func (m *MockGitClient) GetRepoRoot(ctx context.Context, contextPath string) (string, error) {
	callArgs := m.Called(ctx, contextPath)
	return callArgs.String(0), callArgs.Error(1)
}

// MockExtractorClient is a mock implementation of the ExtractorClient
// interface for testing.
type MockExtractorClient struct {
	mock.Mock
}

var _ ExtractorClient = &MockExtractorClient{} // Compile-time check

// Extract mocks the extractor invocation.
func (m *MockExtractorClient) Extract(ctx context.Context, scanRoot string) ([]byte, error) {
	callArgs := m.Called(ctx, scanRoot)
	return callArgs.Get(0).([]byte), callArgs.Error(1)
}

// Probe mocks the extractor availability probe.
func (m *MockExtractorClient) Probe(ctx context.Context) (string, error) {
	callArgs := m.Called(ctx)
	return callArgs.String(0), callArgs.Error(1)
}
