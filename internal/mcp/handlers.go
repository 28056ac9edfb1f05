package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/standardbeagle/bigo/internal/debug"
	"github.com/standardbeagle/bigo/internal/grammar"
	"github.com/standardbeagle/bigo/internal/types"
	"github.com/standardbeagle/bigo/internal/version"
)

// AnalyzeParams are the arguments of both analysis tools.
type AnalyzeParams struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

func (s *Server) handleAnalyze(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.runAnalysis(ctx, req, "analyze_complexity", s.engine.Analyze)
}

func (s *Server) handleAnalyzeRules(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.runAnalysis(ctx, req, "analyze_complexity_rules", s.engine.AnalyzeRules)
}

func (s *Server) runAnalysis(ctx context.Context, req *mcp.CallToolRequest, operation string, analyze func(context.Context, string, string) (*types.Result, error)) (result *mcp.CallToolResult, err error) {
	// A tree-sitter crash must surface as a tool error, not kill the
	// transport.
	defer func() {
		if r := recover(); r != nil {
			debug.LogMCP("panic in %s: %v", operation, r)
			result, err = createErrorResponse(operation, fmt.Errorf("internal error: %v", r))
		}
	}()

	var params AnalyzeParams
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return createErrorResponse(operation, fmt.Errorf("invalid parameters: %w", err))
	}

	res, err := analyze(ctx, params.Code, params.Language)
	if err != nil {
		return createErrorResponse(operation, err)
	}
	return createJSONResponse(res)
}

func (s *Server) handleInfo(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	registry := s.engine.Registry()
	return createJSONResponse(map[string]interface{}{
		"name":        "bigo",
		"version":     version.Version,
		"build_id":    version.BuildID(),
		"languages":   grammar.Registered(),
		"model_count": registry.Size(),
		"model_ids":   registry.ModelIDs(),
		"fingerprint": fmt.Sprintf("%016x", registry.Fingerprint()),
	})
}
