package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for retrieval-engine resources.
	uriScheme = "retrieval://"

	// IndexResourceURI is the URI of the index status resource.
	IndexResourceURI = uriScheme + "index"
)

// indexInfo is the JSON body of the index resource.
type indexInfo struct {
	DataDir        string `json:"data_dir"`
	IndexDir       string `json:"index_dir"`
	Backend        string `json:"backend"`
	EmbeddingModel string `json:"embedding_model"`
	Ready          bool   `json:"ready"`
	IndexModel     string `json:"index_model,omitempty"`
	Dimensions     int    `json:"dimensions,omitempty"`
	Records        int    `json:"records"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	if s.ports.Status == nil {
		return
	}

	s.server.AddResource(&mcp.Resource{
		URI:         IndexResourceURI,
		Name:        "index",
		Description: "Status of the vector index: directories, backend, embedding model and record count",
		MIMEType:    "application/json",
	}, s.handleIndexResource)
}

// handleIndexResource returns the index status as JSON.
func (s *Server) handleIndexResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	status, err := s.ports.Status.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading index status: %w", err)
	}

	data, err := json.MarshalIndent(indexInfo{
		DataDir:        status.DataDir,
		IndexDir:       status.IndexDir,
		Backend:        status.Backend.String(),
		EmbeddingModel: status.EmbeddingModel,
		Ready:          status.Ready,
		IndexModel:     status.Index.Model,
		Dimensions:     status.Index.Dimensions,
		Records:        status.Index.Records,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling index status: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
