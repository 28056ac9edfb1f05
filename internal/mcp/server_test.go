package mcp

import (
	"context"
	"encoding/json"
	"testing"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/bigo/internal/config"
	"github.com/standardbeagle/bigo/internal/engine"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	eng, err := engine.New(config.Default())
	require.NoError(t, err)
	t.Cleanup(func() { _ = eng.Close() })
	return NewServer(eng)
}

func callRequest(t *testing.T, args map[string]interface{}) *sdk.CallToolRequest {
	t.Helper()
	raw, err := json.Marshal(args)
	require.NoError(t, err)
	return &sdk.CallToolRequest{
		Params: &sdk.CallToolParamsRaw{Arguments: json.RawMessage(raw)},
	}
}

func resultText(t *testing.T, res *sdk.CallToolResult) map[string]interface{} {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(*sdk.TextContent)
	require.True(t, ok)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(text.Text), &decoded))
	return decoded
}

// TestHandleAnalyze tests the combined tool over a nested-loop snippet.
func TestHandleAnalyze(t *testing.T) {
	s := newTestServer(t)

	res, err := s.handleAnalyze(context.Background(), callRequest(t, map[string]interface{}{
		"code":     "def f(xs):\n    for a in xs:\n        for b in xs:\n            pass\n",
		"language": "python",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	body := resultText(t, res)
	assert.Equal(t, "O(n²)", body["time_complexity"])
	assert.NotEmpty(t, body["breakdown"])
	assert.NotNil(t, body["model_agreement"])
}

// TestHandleAnalyzeRules tests the heuristic-only tool.
func TestHandleAnalyzeRules(t *testing.T) {
	s := newTestServer(t)

	res, err := s.handleAnalyzeRules(context.Background(), callRequest(t, map[string]interface{}{
		"code":     "total = sum(values)\n",
		"language": "python",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	body := resultText(t, res)
	assert.Equal(t, "rule_based", body["analysis_method"])
	assert.Nil(t, body["model_agreement"])
}

// TestHandleAnalyze_EmptyCode tests that validation failures surface as
// tool errors with IsError set.
func TestHandleAnalyze_EmptyCode(t *testing.T) {
	s := newTestServer(t)

	res, err := s.handleAnalyze(context.Background(), callRequest(t, map[string]interface{}{
		"code": "   ",
	}))
	require.NoError(t, err)

	assert.True(t, res.IsError)
	body := resultText(t, res)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "analyze_complexity", body["operation"])
}

// TestHandleAnalyze_BadArguments tests malformed argument JSON.
func TestHandleAnalyze_BadArguments(t *testing.T) {
	s := newTestServer(t)

	res, err := s.handleAnalyze(context.Background(), &sdk.CallToolRequest{
		Params: &sdk.CallToolParamsRaw{Arguments: json.RawMessage(`{"code": 42}`)},
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

// TestHandleInfo tests the status tool.
func TestHandleInfo(t *testing.T) {
	s := newTestServer(t)

	res, err := s.handleInfo(context.Background(), callRequest(t, map[string]interface{}{}))
	require.NoError(t, err)

	body := resultText(t, res)
	assert.Equal(t, "bigo", body["name"])
	assert.EqualValues(t, 5, body["model_count"])
	assert.NotEmpty(t, body["languages"])
}
