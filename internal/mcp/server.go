// Package mcp exposes the complexity engine over the Model Context
// Protocol with a stdio transport. All diagnostics go to the debug log
// file; stdout and stderr belong to the protocol.
package mcp

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/standardbeagle/bigo/internal/debug"
	"github.com/standardbeagle/bigo/internal/engine"
	"github.com/standardbeagle/bigo/internal/version"
)

// Server wraps the engine behind MCP tools.
type Server struct {
	engine *engine.Engine
	server *mcp.Server
}

// NewServer builds the MCP server and registers its tools.
func NewServer(eng *engine.Engine) *Server {
	s := &Server{
		engine: eng,
		server: mcp.NewServer(&mcp.Implementation{
			Name:    "bigo",
			Version: version.Version,
		}, nil),
	}
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	codeSchema := func() map[string]*jsonschema.Schema {
		return map[string]*jsonschema.Schema{
			"code": {
				Type:        "string",
				Description: "Source code to analyze (required, non-empty)",
			},
			"language": {
				Type:        "string",
				Description: "Language hint (python, cpp, java, javascript, typescript, go, rust, csharp, php, zig); unknown values degrade to a generic grammar",
			},
		}
	}

	s.server.AddTool(&mcp.Tool{
		Name:        "analyze_complexity",
		Description: "Estimate time and space complexity of a code snippet using heuristic rules plus a model ensemble. Returns complexity classes, confidence, evidence breakdown, suggestions, and per-model agreement.",
		InputSchema: &jsonschema.Schema{
			Type:       "object",
			Properties: codeSchema(),
			Required:   []string{"code"},
		},
	}, s.handleAnalyze)

	s.server.AddTool(&mcp.Tool{
		Name:        "analyze_complexity_rules",
		Description: "Estimate complexity using only the heuristic rule classifier, skipping the model ensemble. Faster and fully explainable; useful for comparing against the combined analysis.",
		InputSchema: &jsonschema.Schema{
			Type:       "object",
			Properties: codeSchema(),
			Required:   []string{"code"},
		},
	}, s.handleAnalyzeRules)

	s.server.AddTool(&mcp.Tool{
		Name:        "info",
		Description: "Server status: version, registered languages, and the loaded model set.",
		InputSchema: &jsonschema.Schema{
			Type:       "object",
			Properties: map[string]*jsonschema.Schema{},
		},
	}, s.handleInfo)
}

// Run serves MCP over stdio until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	debug.LogMCP("starting MCP server, version %s", version.Version)
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
