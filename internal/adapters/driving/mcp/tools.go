package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/retrieval-engine/internal/adapters/driving/tools"
)

// IndexDataInput is the (empty) input schema for the index_data tool.
type IndexDataInput struct{}

// SearchNotesInput is the input schema for the search_notes tool.
type SearchNotesInput struct {
	Query string `json:"query" jsonschema:"the question or keywords to look up in the indexed notes"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: tools.IndexDataName,
		Description: "Ingest the PDF, TXT and Markdown files of the data directory into the " +
			"vector index. Run again after adding files; re-ingesting duplicates chunks.",
	}, s.handleIndexData)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        tools.SearchNotesName,
		Description: "Search the indexed notes and return the most relevant passages.",
	}, s.handleSearchNotes)
}

// handleIndexData handles the index_data tool invocation.
func (s *Server) handleIndexData(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ IndexDataInput,
) (*mcp.CallToolResult, any, error) {
	return textResult(s.surface.IndexData(ctx)), nil, nil
}

// handleSearchNotes handles the search_notes tool invocation.
func (s *Server) handleSearchNotes(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchNotesInput,
) (*mcp.CallToolResult, any, error) {
	return textResult(s.surface.SearchNotes(ctx, input.Query)), nil, nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}
