package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/custodia-labs/retrieval-engine/internal/core/domain"
	"github.com/custodia-labs/retrieval-engine/internal/core/ports/driven"
	"github.com/custodia-labs/retrieval-engine/internal/logger"
)

// Ingest loads every supported file in the data directory, splits the
// documents into chunks, embeds them and appends them to the index.
//
// Loading, splitting and embedding all finish before the store is touched,
// so a failure in any of them leaves the index as it was. Re-ingesting the
// same files appends duplicate chunks.
func (e *Engine) Ingest(ctx context.Context) (domain.IngestResult, error) {
	ctx, span := tracer.Start(ctx, "Engine.Ingest")
	defer span.End()

	result, err := e.ingest(ctx)
	finishSpan(span, err,
		attribute.Int("ingest.documents", result.Documents),
		attribute.Int("ingest.chunks", result.Chunks),
	)
	return result, err
}

func (e *Engine) ingest(ctx context.Context) (domain.IngestResult, error) {
	e.ingestMu.Lock()
	defer e.ingestMu.Unlock()

	logger.Section("Ingestion")

	// 1. Make sure the data directory exists
	created, err := ensureDir(e.settings.DataDir)
	if err != nil {
		return domain.IngestResult{}, err
	}
	if created {
		logger.Info("Created data directory %s", e.settings.DataDir)
		return domain.IngestResult{DataDirCreated: true}, nil
	}

	// 2. Load documents
	logger.Debug("Scanning %s for %s", e.settings.DataDir, strings.Join(e.loader.SupportedExtensions(), ", "))
	docs, err := e.loader.Load(ctx, e.settings.DataDir)
	if err != nil {
		return domain.IngestResult{}, fmt.Errorf("load documents: %w", err)
	}
	logger.Debug("Loaded %d documents from %s", len(docs), e.settings.DataDir)
	if len(docs) == 0 {
		return domain.IngestResult{}, nil
	}

	// 3. Split
	chunks, err := e.split(ctx, docs)
	if err != nil {
		return domain.IngestResult{}, err
	}
	logger.Debug("Split into %d chunks", len(chunks))
	if len(chunks) == 0 {
		return domain.IngestResult{Documents: len(docs)}, nil
	}

	// 4. Embed
	if err := e.embed(ctx, chunks); err != nil {
		return domain.IngestResult{}, err
	}

	// 5. Store
	if err := e.addToStore(ctx, chunks); err != nil {
		return domain.IngestResult{}, err
	}

	logger.Info("Ingested %d chunks from %d documents", len(chunks), len(docs))
	return domain.IngestResult{Documents: len(docs), Chunks: len(chunks)}, nil
}

// split runs every document through the pipeline independently.
func (e *Engine) split(ctx context.Context, docs []domain.Document) ([]domain.Chunk, error) {
	var chunks []domain.Chunk
	for i := range docs {
		docChunks, err := e.pipeline.Process(ctx, &docs[i])
		if err != nil {
			return nil, fmt.Errorf("split %s: %w", docs[i].Source(), err)
		}
		chunks = append(chunks, docChunks...)
	}
	return chunks, nil
}

// embed fills in the embedding of every chunk with one batch call.
func (e *Engine) embed(ctx context.Context, chunks []domain.Chunk) error {
	texts := make([]string, len(chunks))
	for i := range chunks {
		texts[i] = chunks[i].Content
	}

	vectors, err := e.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("%w: embed chunks: %w", domain.ErrModel, err)
	}
	if len(vectors) != len(chunks) {
		return fmt.Errorf("%w: embed chunks: got %d vectors for %d chunks",
			domain.ErrModel, len(vectors), len(chunks))
	}

	for i := range chunks {
		chunks[i].Embedding = vectors[i]
	}
	return nil
}

// addToStore appends chunks to the loaded index, creating the index if
// none exists. A newly created index whose first add fails is discarded.
func (e *Engine) addToStore(ctx context.Context, chunks []domain.Chunk) error {
	e.storeMu.Lock()
	defer e.storeMu.Unlock()

	store, err := e.loadStoreLocked(ctx)
	if err != nil {
		return err
	}

	if store != nil {
		if err := store.Add(ctx, chunks); err != nil {
			return fmt.Errorf("%w: add chunks: %w", domain.ErrStore, err)
		}
		return nil
	}

	store, err = e.factory.Create(ctx, e.embedder.ModelName(), e.embedder.Dimensions())
	if err != nil {
		return fmt.Errorf("%w: create index: %w", domain.ErrStore, err)
	}
	logger.Debug("Created %s index in %s", e.settings.Store.Backend, e.settings.IndexDir)

	if err := store.Add(ctx, chunks); err != nil {
		discardErr := e.discard(ctx, store)
		return errors.Join(fmt.Errorf("%w: add chunks: %w", domain.ErrStore, err), discardErr)
	}

	e.store = store
	e.mismatch = nil
	return nil
}

// discard closes and removes an index that never became ready.
func (e *Engine) discard(ctx context.Context, store driven.VectorStore) error {
	closeErr := store.Close()
	if err := e.factory.Discard(ctx); err != nil {
		return fmt.Errorf("%w: discard index: %w", domain.ErrStore, errors.Join(closeErr, err))
	}
	return nil
}

// ensureDir creates dir if it does not exist and reports whether it did.
func ensureDir(dir string) (bool, error) {
	info, err := os.Stat(dir)
	switch {
	case err == nil && info.IsDir():
		return false, nil
	case err == nil:
		return false, fmt.Errorf("%w: %s is not a directory", domain.ErrFileSystem, dir)
	case !errors.Is(err, os.ErrNotExist):
		return false, fmt.Errorf("%w: stat %s: %w", domain.ErrFileSystem, dir, err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, fmt.Errorf("%w: create %s: %w", domain.ErrFileSystem, dir, err)
	}
	return true, nil
}
