package cli

import (
	"context"

	"github.com/custodia-labs/retrieval-engine/internal/core/domain"
	"github.com/custodia-labs/retrieval-engine/internal/core/ports/driving"
)

type mockIngestService struct {
	result domain.IngestResult
	err    error
}

func (m *mockIngestService) Ingest(_ context.Context) (domain.IngestResult, error) {
	return m.result, m.err
}

type mockQueryService struct {
	result domain.QueryResult
	err    error
}

func (m *mockQueryService) Query(_ context.Context, _ string) (domain.QueryResult, error) {
	return m.result, m.err
}

type mockStatusService struct {
	status driving.IndexStatus
	err    error
}

func (m *mockStatusService) Status(_ context.Context) (driving.IndexStatus, error) {
	return m.status, m.err
}

// setupTestServices replaces the command services with mocks and returns
// a function restoring the previous state.
func setupTestServices() func() {
	prevIngest, prevQuery, prevStatus, prevSettings := ingestService, queryService, statusService, appSettings

	ingestService = &mockIngestService{result: domain.IngestResult{Documents: 1, Chunks: 3}}
	queryService = &mockQueryService{result: domain.QueryResult{Snippets: []string{"The quick brown fox"}}}
	statusService = &mockStatusService{status: driving.IndexStatus{
		DataDir:        "./data",
		IndexDir:       "./chroma_db",
		Backend:        domain.StoreBackendSQLite,
		EmbeddingModel: "all-minilm",
		Ready:          true,
		Index:          domain.IndexInfo{Model: "all-minilm", Dimensions: 384, Records: 3},
	}}
	appSettings = domain.DefaultSettings()

	return func() {
		ingestService, queryService, statusService, appSettings = prevIngest, prevQuery, prevStatus, prevSettings
		searchPlain = false
	}
}
