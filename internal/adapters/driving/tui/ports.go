// Package tui provides an interactive terminal view for searching the
// index and re-running ingestion.
package tui

import (
	"github.com/custodia-labs/retrieval-engine/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the TUI.
type Ports struct {
	// Ingest re-runs ingestion of the data directory.
	Ingest driving.IngestService

	// Query answers searches.
	Query driving.QueryService

	// DataDir is named in ingestion replies.
	DataDir string
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Ingest == nil {
		return ErrMissingIngestService
	}
	if p.Query == nil {
		return ErrMissingQueryService
	}
	return nil
}
