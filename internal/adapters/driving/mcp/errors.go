// Package mcp provides an MCP (Model Context Protocol) server adapter.
// It exposes the index_data and search_notes tools and an index status
// resource to AI assistants over stdio or streamable HTTP.
package mcp

import "errors"

// Errors returned when required ports are not provided.
var (
	ErrMissingIngestService = errors.New("mcp: ingest service is required")
	ErrMissingQueryService  = errors.New("mcp: query service is required")
)
