package cli

import (
	"context"
	"fmt"

	"github.com/custodia-labs/retrieval-engine/internal/adapters/driven/ai"
	"github.com/custodia-labs/retrieval-engine/internal/adapters/driven/config/file"
	"github.com/custodia-labs/retrieval-engine/internal/adapters/driven/storage"
	"github.com/custodia-labs/retrieval-engine/internal/connectors/filesystem"
	"github.com/custodia-labs/retrieval-engine/internal/core/ports/driven"
	"github.com/custodia-labs/retrieval-engine/internal/core/services"
	"github.com/custodia-labs/retrieval-engine/internal/logger"
	"github.com/custodia-labs/retrieval-engine/internal/normalisers"
	"github.com/custodia-labs/retrieval-engine/internal/postprocessors"
)

// initServices builds the engine from the config file unless services are
// already set. With validate the embedding service is pinged first.
func initServices(ctx context.Context, validate bool) error {
	if ingestService != nil && queryService != nil {
		return nil
	}

	logger.Section("Setup")

	configStore, err := file.NewConfigStore(cfgFile)
	if err != nil {
		return err
	}
	settings, err := services.LoadSettings(configStore)
	if err != nil {
		return err
	}
	logger.Debug("Config: %s", configStore.Path())
	logger.Debug("Embedding: %s %s", settings.Embedding.Provider, settings.Embedding.Model)
	logger.Debug("Store: %s", settings.Store.Backend)

	var embedder driven.EmbeddingService
	if validate {
		embedder, err = ai.CreateAndValidateEmbeddingService(ctx, settings.Embedding)
	} else {
		embedder, err = ai.CreateEmbeddingService(settings.Embedding)
	}
	if err != nil {
		return err
	}

	registry := normalisers.NewRegistry()
	normalisers.RegisterDefaults(registry)
	loader := filesystem.New(registry)

	pipeline, err := postprocessors.NewDefaultPipeline(settings.Chunking)
	if err != nil {
		embedder.Close()
		return fmt.Errorf("building chunking pipeline: %w", err)
	}

	factory, err := storage.NewFactory(settings)
	if err != nil {
		embedder.Close()
		return err
	}

	engine, err := services.NewEngine(ctx, settings, loader, pipeline, embedder, factory)
	if err != nil {
		embedder.Close()
		return err
	}

	closers = append(closers, embedder.Close, engine.Close)
	appSettings = settings
	ingestService = engine
	queryService = engine
	statusService = engine
	return nil
}
