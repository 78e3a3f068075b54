package services

import (
	"fmt"
	"os"
	"time"

	"github.com/custodia-labs/retrieval-engine/internal/core/domain"
	"github.com/custodia-labs/retrieval-engine/internal/core/ports/driven"
)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyDataDir          = "data_dir"
	keyIndexDir         = "index_dir"
	keyChunkSize        = "chunking.size"
	keyChunkOverlap     = "chunking.overlap"
	keyTopK             = "search.top_k"
	keyEmbedProvider    = "embedding.provider"
	keyEmbedModel       = "embedding.model"
	keyEmbedBaseURL     = "embedding.base_url"
	keyEmbedDimensions  = "embedding.dimensions"
	keyEmbedAPIKey      = "embedding.api_key"
	keyEmbedAPIKeyEnv   = "embedding.api_key_env"
	keyEmbedTimeout     = "embedding.timeout_seconds"
	keyEmbedRPS         = "embedding.requests_per_second"
	keyStoreBackend     = "store.backend"
	keyQdrantAddr       = "store.qdrant.addr"
	keyQdrantCollection = "store.qdrant.collection"
)

// DefaultAPIKeyEnv is the environment variable read for the embedding API
// key when embedding.api_key_env is not set.
const DefaultAPIKeyEnv = "OPENAI_API_KEY"

// LoadSettings reads the engine settings from the config store, falling
// back to domain.DefaultSettings for absent keys, and validates them.
//
// The default model and dimensions belong to the default (ollama)
// provider. Selecting another provider or model without naming the
// dimensions leaves Dimensions at 0 for the adapter to resolve.
func LoadSettings(store driven.ConfigStore) (domain.Settings, error) {
	s := domain.DefaultSettings()
	r := settingsReader{store: store}

	s.DataDir = r.getString(keyDataDir, s.DataDir)
	s.IndexDir = r.getString(keyIndexDir, s.IndexDir)

	s.Chunking.Size = r.getInt(keyChunkSize, s.Chunking.Size)
	s.Chunking.Overlap = r.getInt(keyChunkOverlap, s.Chunking.Overlap)
	s.Search.TopK = r.getInt(keyTopK, s.Search.TopK)

	s.Embedding.Provider = domain.EmbeddingProvider(r.getString(keyEmbedProvider, s.Embedding.Provider.String()))
	if s.Embedding.Provider != domain.EmbeddingProviderOllama {
		s.Embedding.Model = ""
		s.Embedding.Dimensions = 0
	}
	if model := store.GetString(keyEmbedModel); model != "" && model != s.Embedding.Model {
		s.Embedding.Model = model
		s.Embedding.Dimensions = 0
	}
	s.Embedding.Dimensions = r.getInt(keyEmbedDimensions, s.Embedding.Dimensions)
	s.Embedding.BaseURL = store.GetString(keyEmbedBaseURL)
	if secs := r.getInt(keyEmbedTimeout, 0); secs > 0 {
		s.Embedding.Timeout = time.Duration(secs) * time.Second
	}
	s.Embedding.RequestsPerSecond = store.GetFloat(keyEmbedRPS)
	s.Embedding.APIKey = store.GetString(keyEmbedAPIKey)
	if s.Embedding.APIKey == "" {
		s.Embedding.APIKey = os.Getenv(r.getString(keyEmbedAPIKeyEnv, DefaultAPIKeyEnv))
	}

	s.Store.Backend = domain.StoreBackend(r.getString(keyStoreBackend, s.Store.Backend.String()))
	s.Store.QdrantAddr = r.getString(keyQdrantAddr, s.Store.QdrantAddr)
	s.Store.QdrantCollection = r.getString(keyQdrantCollection, s.Store.QdrantCollection)

	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("invalid configuration %s: %w", store.Path(), err)
	}
	return s, nil
}

// settingsReader reads config values with defaults.
type settingsReader struct {
	store driven.ConfigStore
}

func (r settingsReader) getString(key, defaultVal string) string {
	val := r.store.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getInt returns defaultVal only when the key is absent, so an explicit 0
// (chunking.overlap = 0) is kept.
func (r settingsReader) getInt(key string, defaultVal int) int {
	if _, exists := r.store.Get(key); !exists {
		return defaultVal
	}
	return r.store.GetInt(key)
}
