package mcp

import (
	"context"

	"github.com/custodia-labs/retrieval-engine/internal/core/domain"
	"github.com/custodia-labs/retrieval-engine/internal/core/ports/driving"
)

type mockIngestService struct {
	result domain.IngestResult
	err    error
	calls  int
}

func (m *mockIngestService) Ingest(_ context.Context) (domain.IngestResult, error) {
	m.calls++
	return m.result, m.err
}

type mockQueryService struct {
	result  domain.QueryResult
	err     error
	queries []string
}

func (m *mockQueryService) Query(_ context.Context, text string) (domain.QueryResult, error) {
	m.queries = append(m.queries, text)
	return m.result, m.err
}

type mockStatusService struct {
	status driving.IndexStatus
	err    error
}

func (m *mockStatusService) Status(_ context.Context) (driving.IndexStatus, error) {
	return m.status, m.err
}
