package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/featlens/featlens/core"
	"github.com/featlens/featlens/internal/contract"
	"github.com/featlens/featlens/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

func (h *toolHandler) handleGetFeatureHotspots(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if d := request.GetInt("days", 0); d > 0 {
		now := time.Now()
		cfg = cfg.CloneWithTimeWindow(now.Add(-time.Duration(d)*24*time.Hour), now)
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	out, err := core.GetFeatureResults(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	payload := struct {
		Features      []schema.EnrichedFeatureReport `json:"features"`
		TotalSymbols  int                            `json:"total_symbols"`
		Uncategorized int                            `json:"uncategorized"`
		CoverageRate  float64                        `json:"coverage_rate"`
		Windowed      bool                           `json:"windowed"`
	}{
		Features:      schema.EnrichReports(out.Reports),
		TotalSymbols:  out.TotalSymbols,
		Uncategorized: out.Uncategorized,
		CoverageRate:  out.CoverageRate,
		Windowed:      out.Windowed,
	}
	jsonData, _ := json.MarshalIndent(payload, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetFeatureSymbols(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if f := request.GetString("feature", ""); f != "" {
		if f != schema.UncategorizedID && !contract.FeatureIDPattern.MatchString(f) {
			return mcp.NewToolResultError(fmt.Sprintf("invalid feature id %q", f)), nil
		}
		cfg.FeatureFilter = f
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	symbols, err := core.GetSymbolResults(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("symbol extraction failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(symbols, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleCheckFeatureMap(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result := core.GetCheckResult(ctx, h.baseCfg.Clone())

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
