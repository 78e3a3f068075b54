package driven

import (
	"context"

	"github.com/custodia-labs/retrieval-engine/internal/core/domain"
)

// Normaliser transforms raw file bytes into documents.
// Each normaliser handles specific MIME types (e.g., PDF, Markdown).
type Normaliser interface {
	// SupportedMIMETypes returns the MIME types this normaliser handles.
	SupportedMIMETypes() []string

	// Priority returns the selection priority (higher = preferred).
	// MIME-specific normalisers return 50-89, fallbacks 1-9.
	Priority() int

	// Normalise transforms a raw file into one or more documents.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*NormaliseResult, error)
}

// NormaliseResult contains the output of normalisation.
// Paged formats produce one document per page; other formats produce one.
// Chunking is handled by the PostProcessor pipeline.
type NormaliseResult struct {
	// Documents are the normalised documents with Content populated.
	Documents []domain.Document
}
