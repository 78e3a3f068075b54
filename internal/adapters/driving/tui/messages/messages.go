// Package messages defines Bubbletea message types for the TUI.
package messages

import (
	"github.com/custodia-labs/retrieval-engine/internal/core/domain"
)

// SearchCompleted carries a query result back to the model.
type SearchCompleted struct {
	Query  string
	Result domain.QueryResult
	Err    error
}

// IndexCompleted carries the index_data reply back to the model.
type IndexCompleted struct {
	Reply string
}
