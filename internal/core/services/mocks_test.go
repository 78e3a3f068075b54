package services

import (
	"context"
	"errors"
	"sync"

	"github.com/custodia-labs/retrieval-engine/internal/core/domain"
	"github.com/custodia-labs/retrieval-engine/internal/core/ports/driven"
)

// mockEmbedder returns the same vector for every text.
type mockEmbedder struct {
	mu         sync.Mutex
	model      string
	vector     []float32
	embedErr   error
	batchErr   error
	embedCalls int
	batchCalls int
}

func newMockEmbedder(vector ...float32) *mockEmbedder {
	return &mockEmbedder{model: "mock-model", vector: vector}
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.embedCalls++
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	return append([]float32(nil), m.vector...), nil
}

func (m *mockEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.batchCalls++
	if m.batchErr != nil {
		return nil, m.batchErr
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = append([]float32(nil), m.vector...)
	}
	return out, nil
}

func (m *mockEmbedder) Dimensions() int { return len(m.vector) }
func (m *mockEmbedder) ModelName() string { return m.model }
func (m *mockEmbedder) Ping(_ context.Context) error { return nil }
func (m *mockEmbedder) Close() error { return nil }

func (m *mockEmbedder) calls() (embed, batch int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.embedCalls, m.batchCalls
}

// mockLoader returns fixed documents.
type mockLoader struct {
	docs []domain.Document
	err  error
}

func (m *mockLoader) Load(_ context.Context, _ string) ([]domain.Document, error) {
	return m.docs, m.err
}

func (m *mockLoader) SupportedExtensions() []string {
	return []string{".md", ".pdf", ".txt"}
}

// mockPipeline turns each document into one chunk, or fails.
type mockPipeline struct {
	err error
}

func (m *mockPipeline) Process(_ context.Context, doc *domain.Document) ([]domain.Chunk, error) {
	if m.err != nil {
		return nil, m.err
	}
	return []domain.Chunk{{ID: doc.ID + "-0", DocumentID: doc.ID, Content: doc.Content}}, nil
}

// faultyFactory wraps a factory and can fail Exists, Open or the first Add
// of a created store.
type faultyFactory struct {
	driven.VectorStoreFactory
	existsErr  error
	openErr    error
	addErr     error
	discarded  int
	discardErr error
}

func (f *faultyFactory) Exists(ctx context.Context) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	return f.VectorStoreFactory.Exists(ctx)
}

func (f *faultyFactory) Open(ctx context.Context) (driven.VectorStore, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	return f.VectorStoreFactory.Open(ctx)
}

func (f *faultyFactory) Create(ctx context.Context, model string, dimensions int) (driven.VectorStore, error) {
	store, err := f.VectorStoreFactory.Create(ctx, model, dimensions)
	if err != nil {
		return nil, err
	}
	return &faultyStore{VectorStore: store, addErr: f.addErr}, nil
}

func (f *faultyFactory) Discard(ctx context.Context) error {
	f.discarded++
	if f.discardErr != nil {
		return f.discardErr
	}
	return f.VectorStoreFactory.Discard(ctx)
}

// faultyStore fails Add with addErr when set.
type faultyStore struct {
	driven.VectorStore
	addErr error
}

func (s *faultyStore) Add(ctx context.Context, chunks []domain.Chunk) error {
	if s.addErr != nil {
		return s.addErr
	}
	return s.VectorStore.Add(ctx, chunks)
}

var errBoom = errors.New("boom")
