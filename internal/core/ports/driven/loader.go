package driven

import (
	"context"

	"github.com/custodia-labs/retrieval-engine/internal/core/domain"
)

// DocumentLoader reads every supported file beneath a directory.
type DocumentLoader interface {
	// Load walks root recursively and returns the documents of every
	// supported file, in lexical path order. A file that cannot be read
	// or parsed fails the whole load.
	Load(ctx context.Context, root string) ([]domain.Document, error)

	// SupportedExtensions returns the file extensions the loader accepts.
	SupportedExtensions() []string
}
