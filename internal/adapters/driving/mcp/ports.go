package mcp

import (
	"github.com/custodia-labs/retrieval-engine/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Ingest runs index_data.
	Ingest driving.IngestService

	// Query runs search_notes.
	Query driving.QueryService

	// Status backs the index resource. Optional.
	Status driving.StatusService

	// DataDir is named in index_data replies.
	DataDir string
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Ingest == nil {
		return ErrMissingIngestService
	}
	if p.Query == nil {
		return ErrMissingQueryService
	}
	return nil
}
