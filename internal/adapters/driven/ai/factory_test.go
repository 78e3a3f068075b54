package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hashembed "github.com/custodia-labs/retrieval-engine/internal/adapters/driven/embedding/hash"
	ollamaembed "github.com/custodia-labs/retrieval-engine/internal/adapters/driven/embedding/ollama"
	"github.com/custodia-labs/retrieval-engine/internal/core/domain"
)

func TestCreateEmbeddingService(t *testing.T) {
	tests := []struct {
		name      string
		settings  domain.EmbeddingSettings
		wantModel string
		wantDims  int
		wantErr   error
	}{
		{
			name:      "ollama default model",
			settings:  domain.DefaultSettings().Embedding,
			wantModel: "all-minilm",
			wantDims:  384,
		},
		{
			name:      "ollama known model resolves dimensions",
			settings:  domain.EmbeddingSettings{Provider: domain.EmbeddingProviderOllama, Model: "nomic-embed-text"},
			wantModel: "nomic-embed-text",
			wantDims:  768,
		},
		{
			name:      "ollama unknown model falls back to default dimensions",
			settings:  domain.EmbeddingSettings{Provider: domain.EmbeddingProviderOllama, Model: "custom"},
			wantModel: "custom",
			wantDims:  ollamaembed.DefaultDimensions,
		},
		{
			name:      "ollama explicit dimensions win",
			settings:  domain.EmbeddingSettings{Provider: domain.EmbeddingProviderOllama, Model: "custom", Dimensions: 512},
			wantModel: "custom",
			wantDims:  512,
		},
		{
			name:      "openai model",
			settings:  domain.EmbeddingSettings{Provider: domain.EmbeddingProviderOpenAI, APIKey: "test-key"},
			wantModel: "text-embedding-3-small",
			wantDims:  1536,
		},
		{
			name:      "hash embedder",
			settings:  domain.EmbeddingSettings{Provider: domain.EmbeddingProviderHash},
			wantModel: "feature-hash",
			wantDims:  hashembed.DefaultDimensions,
		},
		{
			name:     "openai without key",
			settings: domain.EmbeddingSettings{Provider: domain.EmbeddingProviderOpenAI},
			wantErr:  domain.ErrEmbeddingUnavailable,
		},
		{
			name:     "unknown provider",
			settings: domain.EmbeddingSettings{Provider: "cohere"},
			wantErr:  domain.ErrEmbeddingUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateEmbeddingService(tt.settings)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, svc)
				return
			}
			require.NoError(t, err)
			defer svc.Close()
			assert.Equal(t, tt.wantModel, svc.ModelName())
			assert.Equal(t, tt.wantDims, svc.Dimensions())
		})
	}
}

func TestOllamaDimensions(t *testing.T) {
	assert.Equal(t, 384, OllamaDimensions("all-minilm"))
	assert.Equal(t, 1024, OllamaDimensions("mxbai-embed-large"))
	assert.Zero(t, OllamaDimensions("unknown"))
}

func TestCreateAndValidateEmbeddingService(t *testing.T) {
	t.Run("hash always validates", func(t *testing.T) {
		svc, err := CreateAndValidateEmbeddingService(context.Background(),
			domain.EmbeddingSettings{Provider: domain.EmbeddingProviderHash})
		require.NoError(t, err)
		assert.NotNil(t, svc)
	})

	t.Run("reachable ollama", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		svc, err := CreateAndValidateEmbeddingService(context.Background(), domain.EmbeddingSettings{
			Provider: domain.EmbeddingProviderOllama,
			Model:    "all-minilm",
			BaseURL:  server.URL,
		})
		require.NoError(t, err)
		assert.Equal(t, "all-minilm", svc.ModelName())
	})

	t.Run("unreachable ollama", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
		url := server.URL
		server.Close()

		svc, err := CreateAndValidateEmbeddingService(context.Background(), domain.EmbeddingSettings{
			Provider: domain.EmbeddingProviderOllama,
			Model:    "all-minilm",
			BaseURL:  url,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
		assert.Nil(t, svc)
	})
}
