package driving

import (
	"context"

	"github.com/custodia-labs/retrieval-engine/internal/core/domain"
)

// IngestService loads, chunks, embeds and stores the data directory.
type IngestService interface {
	// Ingest runs one full ingestion of the data directory.
	// Calls are serialised; a failed call leaves the index unchanged.
	Ingest(ctx context.Context) (domain.IngestResult, error)
}
