package services

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/custodia-labs/retrieval-engine/internal/core/domain"
	"github.com/custodia-labs/retrieval-engine/internal/logger"
)

// Query embeds text and returns the texts of the closest chunks, most
// similar first. Without an index the result has IndexMissing set, even
// for an empty query.
func (e *Engine) Query(ctx context.Context, text string) (domain.QueryResult, error) {
	ctx, span := tracer.Start(ctx, "Engine.Query")
	defer span.End()

	result, err := e.query(ctx, text)
	finishSpan(span, err,
		attribute.Bool("query.index_missing", result.IndexMissing),
		attribute.Int("query.results", len(result.Snippets)),
	)
	return result, err
}

func (e *Engine) query(ctx context.Context, text string) (domain.QueryResult, error) {
	logger.Section("Query")
	logger.Debug("Query: %q", text)

	store, err := e.ensureStoreLoaded(ctx)
	if err != nil {
		return domain.QueryResult{}, err
	}
	if store == nil {
		return domain.QueryResult{IndexMissing: true}, nil
	}

	text = strings.TrimSpace(text)
	if text == "" {
		logger.Debug("Empty query, returning no results")
		return domain.QueryResult{}, nil
	}

	vector, err := e.embedder.Embed(ctx, text)
	if err != nil {
		return domain.QueryResult{}, fmt.Errorf("%w: embed query: %w", domain.ErrModel, err)
	}

	results, err := store.Search(ctx, vector, e.settings.Search.TopK)
	if err != nil {
		return domain.QueryResult{}, fmt.Errorf("%w: search: %w", domain.ErrStore, err)
	}
	logger.Debug("Search returned %d results", len(results))

	snippets := make([]string, len(results))
	for i := range results {
		snippets[i] = results[i].Chunk.Content
	}
	return domain.QueryResult{Snippets: snippets}, nil
}
