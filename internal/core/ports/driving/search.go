package driving

import (
	"context"

	"github.com/custodia-labs/retrieval-engine/internal/core/domain"
)

// QueryService answers similarity queries against the index.
type QueryService interface {
	// Query returns the most similar chunk texts for the query.
	// A missing index is reported through QueryResult.IndexMissing, not an error.
	Query(ctx context.Context, text string) (domain.QueryResult, error)
}
