package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/custodia-labs/retrieval-engine/internal/core/domain"
	"github.com/custodia-labs/retrieval-engine/internal/core/ports/driven"
	"github.com/custodia-labs/retrieval-engine/internal/core/ports/driving"
	"github.com/custodia-labs/retrieval-engine/internal/logger"
)

// Ensure Engine implements the driving interfaces.
var (
	_ driving.IngestService = (*Engine)(nil)
	_ driving.QueryService  = (*Engine)(nil)
	_ driving.StatusService = (*Engine)(nil)
)

// Engine ingests the data directory into a vector store and answers
// similarity queries against it.
//
// The store is either uninitialised or ready. It becomes ready when a
// persisted index is found or after the first successful ingestion, and
// never goes back.
type Engine struct {
	settings domain.Settings
	loader   driven.DocumentLoader
	pipeline driven.PostProcessorPipeline
	embedder driven.EmbeddingService
	factory  driven.VectorStoreFactory

	// ingestMu serialises Ingest calls.
	ingestMu sync.Mutex

	// storeMu guards store and mismatch.
	storeMu  sync.RWMutex
	store    driven.VectorStore
	mismatch error
}

// NewEngine creates an engine and loads the persisted index if one exists.
// An index built by a different embedding model does not fail construction;
// it is reported by every later Ingest and Query call.
func NewEngine(
	ctx context.Context,
	settings domain.Settings,
	loader driven.DocumentLoader,
	pipeline driven.PostProcessorPipeline,
	embedder driven.EmbeddingService,
	factory driven.VectorStoreFactory,
) (*Engine, error) {
	if loader == nil || pipeline == nil || embedder == nil || factory == nil {
		return nil, fmt.Errorf("%w: engine dependencies must not be nil", domain.ErrInvalidInput)
	}
	if settings.Search.TopK <= 0 {
		settings.Search.TopK = domain.DefaultTopK
	}

	e := &Engine{
		settings: settings,
		loader:   loader,
		pipeline: pipeline,
		embedder: embedder,
		factory:  factory,
	}

	store, err := e.ensureStoreLoaded(ctx)
	switch {
	case errors.Is(err, domain.ErrModelMismatch):
		logger.Warn("%v", err)
	case err != nil:
		return nil, err
	case store != nil:
		logger.Debug("Loaded existing index from %s", settings.IndexDir)
	default:
		logger.Debug("No index found in %s", settings.IndexDir)
	}

	return e, nil
}

// Close releases the store handle. The embedder is owned by the caller.
func (e *Engine) Close() error {
	e.storeMu.Lock()
	defer e.storeMu.Unlock()
	if e.store == nil {
		return nil
	}
	err := e.store.Close()
	e.store = nil
	e.mismatch = nil
	return err
}

// Status reports the engine configuration and index state.
func (e *Engine) Status(ctx context.Context) (driving.IndexStatus, error) {
	status := driving.IndexStatus{
		DataDir:        e.settings.DataDir,
		IndexDir:       e.settings.IndexDir,
		Backend:        e.settings.Store.Backend,
		EmbeddingModel: e.embedder.ModelName(),
	}

	store, err := e.ensureStoreLoaded(ctx)
	if err != nil && !errors.Is(err, domain.ErrModelMismatch) {
		return status, err
	}
	if store == nil {
		return status, nil
	}

	info, err := store.Info(ctx)
	if err != nil {
		return status, fmt.Errorf("%w: index info: %w", domain.ErrStore, err)
	}
	status.Ready = true
	status.Index = info
	return status, nil
}

// ensureStoreLoaded returns the store handle, opening the persisted index
// on first use. It returns a nil store and nil error when no index exists.
// A loaded index built by another embedding model is returned together
// with an ErrModelMismatch error.
func (e *Engine) ensureStoreLoaded(ctx context.Context) (driven.VectorStore, error) {
	e.storeMu.RLock()
	store, mismatch := e.store, e.mismatch
	e.storeMu.RUnlock()
	if store != nil {
		return store, mismatch
	}

	e.storeMu.Lock()
	defer e.storeMu.Unlock()
	return e.loadStoreLocked(ctx)
}

// loadStoreLocked is ensureStoreLoaded with storeMu held for writing.
func (e *Engine) loadStoreLocked(ctx context.Context) (driven.VectorStore, error) {
	if e.store != nil {
		return e.store, e.mismatch
	}

	exists, err := e.factory.Exists(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: check index: %w", domain.ErrStore, err)
	}
	if !exists {
		return nil, nil
	}

	store, err := e.factory.Open(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: open index: %w", domain.ErrStore, err)
	}

	mismatch, err := e.checkModel(ctx, store)
	if err != nil {
		store.Close()
		return nil, err
	}

	e.store = store
	e.mismatch = mismatch
	return store, mismatch
}

// checkModel compares the index model and dimensions with the embedder.
// It returns the mismatch (if any) and, separately, any failure to read
// the index description.
func (e *Engine) checkModel(ctx context.Context, store driven.VectorStore) (mismatch, err error) {
	info, err := store.Info(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: index info: %w", domain.ErrStore, err)
	}

	model, dims := e.embedder.ModelName(), e.embedder.Dimensions()
	if (info.Model != "" && info.Model != model) || info.Dimensions != dims {
		return fmt.Errorf("%w: index was built with %s (%d dimensions), configured model is %s (%d dimensions)",
			domain.ErrModelMismatch, modelLabel(info.Model), info.Dimensions, model, dims), nil
	}
	return nil, nil
}

func modelLabel(model string) string {
	if model == "" {
		return "an unrecorded model"
	}
	return model
}
