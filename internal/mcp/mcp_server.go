// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/featlens/featlens/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the featlens MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Featlens Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: get_feature_hotspots ---
	s.AddTool(mcp.NewTool("get_feature_hotspots",
		mcp.WithDescription("Rank product features by development activity: symbol counts plus git churn over a time window."),
		mcp.WithNumber("days", mcp.Description("Churn window in days. Omit or pass 0 for a symbol-only report without churn.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of features returned.")),
	), h.handleGetFeatureHotspots)

	// --- 2. Tool: get_feature_symbols ---
	s.AddTool(mcp.NewTool("get_feature_symbols",
		mcp.WithDescription("List the classified symbols (functions, methods, classes) with their feature attribution."),
		mcp.WithString("feature", mcp.Description("Restrict results to one feature id, or 'uncategorized'.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of symbols returned.")),
	), h.handleGetFeatureSymbols)

	// --- 3. Tool: check_feature_map ---
	s.AddTool(mcp.NewTool("check_feature_map",
		mcp.WithDescription("Lint the feature map (duplicate, reserved, invalid, empty, shadowed rules) and probe ctags and git availability."),
	), h.handleCheckFeatureMap)

	return s
}

// StartMCPServer starts the featlens MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
