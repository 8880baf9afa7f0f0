package contract

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// LocalCtagsClient implements the ExtractorClient interface by executing
// the local 'ctags' binary (universal-ctags) installed on the machine.
type LocalCtagsClient struct{}

var _ ExtractorClient = &LocalCtagsClient{} // Compile-time check

// NewLocalCtagsClient creates a new instance of the local ctags client.
func NewLocalCtagsClient() *LocalCtagsClient {
	return &LocalCtagsClient{}
}

// Extract implements the ExtractorClient interface. It emits one JSON
// object per line on stdout, which the classifier parses downstream.
func (c *LocalCtagsClient) Extract(_ context.Context, scanRoot string) ([]byte, error) {
	cmd := exec.Command("ctags",
		"--output-format=json",
		"--fields=+nzZ",
		"--extras=+q",
		"--recurse",
		"-f", "-",
		".")
	cmd.Dir = scanRoot
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return nil, fmt.Errorf("ctags failed in %q: %s. Verify the scan root is readable", scanRoot, stderr)
	} else if err != nil {
		return nil, fmt.Errorf("ctags failed: %w. Install universal-ctags and ensure it is on your PATH", err)
	}
	return out, nil
}

// Probe implements the ExtractorClient interface. It returns the first
// line of 'ctags --version'.
func (c *LocalCtagsClient) Probe(_ context.Context) (string, error) {
	out, err := exec.Command("ctags", "--version").Output()
	if err != nil {
		return "", fmt.Errorf("ctags not available: %w. Install universal-ctags and ensure it is on your PATH", err)
	}
	lines := strings.SplitN(strings.TrimSpace(string(out)), "\n", 2)
	return strings.TrimSpace(lines[0]), nil
}
