// Package tools renders engine results as the plain-text replies of the
// index_data and search_notes tools. It is the only place where results and
// errors become strings; the MCP server and the CLI both speak through it.
package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/retrieval-engine/internal/core/ports/driving"
	"github.com/custodia-labs/retrieval-engine/internal/logger"
)

// Tool names as exposed to MCP clients.
const (
	IndexDataName   = "index_data"
	SearchNotesName = "search_notes"
)

// Reply texts.
const (
	msgIngestDone     = "Data ingestion completed successfully. Ingested %d chunks from %d documents."
	msgDataDirCreated = "Created data directory %s. Add PDF, TXT or Markdown files and run index_data again."
	msgNoDocuments    = "No documents found in %s."
	msgIngestError    = "Error during data ingestion: %v"
	msgFoundNotes     = "Found relevant notes:\n\n"
	msgNoNotes        = "No relevant notes found."
	msgNoIndex        = "No index found. Please ingest data first."
	msgSearchError    = "Error during search: %v"

	snippetSeparator = "\n\n---\n\n"
)

// Surface turns engine calls into tool replies. Its methods never fail;
// errors are reported in the returned text.
type Surface struct {
	ingest  driving.IngestService
	query   driving.QueryService
	dataDir string
}

// New creates a surface over the given services. dataDir is only used in
// reply texts.
func New(ingest driving.IngestService, query driving.QueryService, dataDir string) *Surface {
	return &Surface{ingest: ingest, query: query, dataDir: dataDir}
}

// IndexData ingests the data directory and describes the outcome.
func (s *Surface) IndexData(ctx context.Context) string {
	result, err := s.ingest.Ingest(ctx)
	switch {
	case err != nil:
		logger.Debug("index_data failed: %v", err)
		return fmt.Sprintf(msgIngestError, err)
	case result.DataDirCreated:
		return fmt.Sprintf(msgDataDirCreated, s.dataDir)
	case result.Documents == 0:
		return fmt.Sprintf(msgNoDocuments, s.dataDir)
	default:
		return fmt.Sprintf(msgIngestDone, result.Chunks, result.Documents)
	}
}

// SearchNotes queries the index and joins the matching snippets.
func (s *Surface) SearchNotes(ctx context.Context, query string) string {
	result, err := s.query.Query(ctx, query)
	switch {
	case err != nil:
		logger.Debug("search_notes failed: %v", err)
		return fmt.Sprintf(msgSearchError, err)
	case result.IndexMissing:
		return msgNoIndex
	case len(result.Snippets) == 0:
		return msgNoNotes
	default:
		return msgFoundNotes + strings.Join(result.Snippets, snippetSeparator)
	}
}
