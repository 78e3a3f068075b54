package mcp

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/retrieval-engine/internal/core/domain"
)

func newTestServer(t *testing.T, ingest *mockIngestService, query *mockQueryService) *Server {
	t.Helper()
	s, err := NewServer(&Ports{Ingest: ingest, Query: query, DataDir: "./data"})
	require.NoError(t, err)
	return s
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return text.Text
}

func TestHandleIndexData(t *testing.T) {
	ingest := &mockIngestService{result: domain.IngestResult{Documents: 2, Chunks: 7}}
	s := newTestServer(t, ingest, &mockQueryService{})

	result, out, err := s.handleIndexData(context.Background(), nil, IndexDataInput{})
	require.NoError(t, err)
	assert.Nil(t, out)
	assert.False(t, result.IsError)
	assert.Equal(t,
		"Data ingestion completed successfully. Ingested 7 chunks from 2 documents.",
		resultText(t, result))
	assert.Equal(t, 1, ingest.calls)
}

func TestHandleIndexData_ErrorInText(t *testing.T) {
	ingest := &mockIngestService{err: domain.ErrModel}
	s := newTestServer(t, ingest, &mockQueryService{})

	result, _, err := s.handleIndexData(context.Background(), nil, IndexDataInput{})
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "Error during data ingestion:")
}

func TestHandleSearchNotes(t *testing.T) {
	query := &mockQueryService{result: domain.QueryResult{Snippets: []string{"first", "second"}}}
	s := newTestServer(t, &mockIngestService{}, query)

	result, _, err := s.handleSearchNotes(context.Background(), nil, SearchNotesInput{Query: "fox"})
	require.NoError(t, err)
	assert.Equal(t, "Found relevant notes:\n\nfirst\n\n---\n\nsecond", resultText(t, result))
	assert.Equal(t, []string{"fox"}, query.queries)
}

func TestHandleSearchNotes_NoIndex(t *testing.T) {
	query := &mockQueryService{result: domain.QueryResult{IndexMissing: true}}
	s := newTestServer(t, &mockIngestService{}, query)

	result, _, err := s.handleSearchNotes(context.Background(), nil, SearchNotesInput{Query: "fox"})
	require.NoError(t, err)
	assert.Equal(t, "No index found. Please ingest data first.", resultText(t, result))
}

func TestTools_OverTransport(t *testing.T) {
	ctx := context.Background()
	query := &mockQueryService{result: domain.QueryResult{Snippets: []string{"the quick brown fox"}}}
	s := newTestServer(t, &mockIngestService{}, query)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serverSession, err := s.server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	defer serverSession.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	defer session.Close()

	listed, err := session.ListTools(ctx, nil)
	require.NoError(t, err)
	names := make([]string, 0, len(listed.Tools))
	for _, tool := range listed.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"index_data", "search_notes"}, names)

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "search_notes",
		Arguments: map[string]any{"query": "fox"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Found relevant notes:\n\nthe quick brown fox", resultText(t, result))
	assert.Equal(t, []string{"fox"}, query.queries)
}
