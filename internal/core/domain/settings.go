package domain

import (
	"fmt"
	"time"
)

const unknownDescription = "Unknown"

// Default settings. The chunking values match the splitter the index
// format was first built with; changing them only affects new chunks.
const (
	DefaultDataDir      = "./data"
	DefaultIndexDir     = "./chroma_db"
	DefaultChunkSize    = 500
	DefaultChunkOverlap = 50
	DefaultTopK         = 3

	DefaultEmbeddingModel      = "all-minilm"
	DefaultEmbeddingDimensions = 384
	DefaultEmbeddingTimeout    = 30 * time.Second

	DefaultQdrantAddr       = "localhost:6334"
	DefaultQdrantCollection = "notes"
)

// EmbeddingProvider identifies the service that turns text into vectors.
type EmbeddingProvider string

// Available embedding providers.
const (
	// EmbeddingProviderOllama is a local Ollama instance.
	EmbeddingProviderOllama EmbeddingProvider = "ollama"

	// EmbeddingProviderOpenAI is the OpenAI cloud API.
	EmbeddingProviderOpenAI EmbeddingProvider = "openai"

	// EmbeddingProviderHash is the in-process feature hashing embedder.
	EmbeddingProviderHash EmbeddingProvider = "hash"
)

// IsValid returns true if the provider is recognised.
func (p EmbeddingProvider) IsValid() bool {
	switch p {
	case EmbeddingProviderOllama, EmbeddingProviderOpenAI, EmbeddingProviderHash:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p EmbeddingProvider) RequiresAPIKey() bool {
	return p == EmbeddingProviderOpenAI
}

// String returns the string representation.
func (p EmbeddingProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p EmbeddingProvider) Description() string {
	switch p {
	case EmbeddingProviderOllama:
		return "Ollama (local)"
	case EmbeddingProviderOpenAI:
		return "OpenAI (cloud)"
	case EmbeddingProviderHash:
		return "Feature hashing (offline)"
	default:
		return unknownDescription
	}
}

// StoreBackend identifies where vectors are persisted.
type StoreBackend string

// Available vector store backends.
const (
	// StoreBackendSQLite persists the index in a SQLite file under the index directory.
	StoreBackendSQLite StoreBackend = "sqlite"

	// StoreBackendQdrant stores vectors in a Qdrant collection.
	StoreBackendQdrant StoreBackend = "qdrant"

	// StoreBackendMemory keeps vectors in process memory only.
	StoreBackendMemory StoreBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b StoreBackend) IsValid() bool {
	switch b {
	case StoreBackendSQLite, StoreBackendQdrant, StoreBackendMemory:
		return true
	default:
		return false
	}
}

// IsPersistent returns true if the index survives a process restart.
func (b StoreBackend) IsPersistent() bool {
	return b == StoreBackendSQLite || b == StoreBackendQdrant
}

// String returns the string representation.
func (b StoreBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StoreBackend) Description() string {
	switch b {
	case StoreBackendSQLite:
		return "SQLite (local file)"
	case StoreBackendQdrant:
		return "Qdrant (gRPC)"
	case StoreBackendMemory:
		return "In-memory (not persisted)"
	default:
		return unknownDescription
	}
}

// ChunkingSettings configures the splitter.
type ChunkingSettings struct {
	// Size is the maximum chunk length in characters.
	Size int

	// Overlap is the number of characters shared with the previous chunk.
	Overlap int
}

// SearchSettings configures similarity queries.
type SearchSettings struct {
	// TopK is the number of snippets returned per query.
	TopK int
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider EmbeddingProvider

	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint. Empty uses the provider default.
	BaseURL string

	// APIKey is the API key (for OpenAI).
	APIKey string

	// Dimensions is the embedding vector size.
	Dimensions int

	// Timeout bounds a single embedding request.
	Timeout time.Duration

	// RequestsPerSecond limits calls to remote providers. Zero uses the adapter default.
	RequestsPerSecond float64
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// StoreSettings selects and configures the vector store.
type StoreSettings struct {
	// Backend is the vector store implementation.
	Backend StoreBackend

	// QdrantAddr is the Qdrant gRPC address (host:port).
	QdrantAddr string

	// QdrantCollection is the collection holding the vectors.
	QdrantCollection string
}

// Settings is the complete runtime configuration of the engine.
type Settings struct {
	// DataDir is scanned recursively for documents.
	DataDir string

	// IndexDir holds the persisted vector index.
	IndexDir string

	Chunking  ChunkingSettings
	Search    SearchSettings
	Embedding EmbeddingSettings
	Store     StoreSettings
}

// DefaultSettings returns the settings used when no configuration exists.
func DefaultSettings() Settings {
	return Settings{
		DataDir:  DefaultDataDir,
		IndexDir: DefaultIndexDir,
		Chunking: ChunkingSettings{
			Size:    DefaultChunkSize,
			Overlap: DefaultChunkOverlap,
		},
		Search: SearchSettings{
			TopK: DefaultTopK,
		},
		Embedding: EmbeddingSettings{
			Provider:   EmbeddingProviderOllama,
			Model:      DefaultEmbeddingModel,
			Dimensions: DefaultEmbeddingDimensions,
			Timeout:    DefaultEmbeddingTimeout,
		},
		Store: StoreSettings{
			Backend:          StoreBackendSQLite,
			QdrantAddr:       DefaultQdrantAddr,
			QdrantCollection: DefaultQdrantCollection,
		},
	}
}

// Validate reports the first invalid setting, wrapped in ErrInvalidInput.
func (s Settings) Validate() error {
	switch {
	case s.DataDir == "":
		return fmt.Errorf("%w: data directory is empty", ErrInvalidInput)
	case s.IndexDir == "":
		return fmt.Errorf("%w: index directory is empty", ErrInvalidInput)
	case s.Chunking.Size <= 0:
		return fmt.Errorf("%w: chunk size must be positive, got %d", ErrInvalidInput, s.Chunking.Size)
	case s.Chunking.Overlap < 0 || s.Chunking.Overlap >= s.Chunking.Size:
		return fmt.Errorf("%w: chunk overlap must be in [0, %d), got %d",
			ErrInvalidInput, s.Chunking.Size, s.Chunking.Overlap)
	case s.Search.TopK <= 0:
		return fmt.Errorf("%w: top_k must be positive, got %d", ErrInvalidInput, s.Search.TopK)
	case !s.Embedding.Provider.IsValid():
		return fmt.Errorf("%w: embedding provider %q", ErrUnsupportedType, s.Embedding.Provider)
	case !s.Embedding.IsConfigured():
		return fmt.Errorf("%w: %s requires an API key", ErrInvalidInput, s.Embedding.Provider)
	case !s.Store.Backend.IsValid():
		return fmt.Errorf("%w: store backend %q", ErrUnsupportedType, s.Store.Backend)
	}
	return nil
}
