// Package qdrant provides a vector store backed by a Qdrant collection,
// reached over gRPC. Selected with store.backend = "qdrant".
//
// Each chunk becomes one point keyed by the chunk UUID. The chunk text,
// document ID, position and metadata travel in the point payload.
// Qdrant does not record the embedding model, so IndexInfo.Model is empty
// and model checks fall back to comparing dimensions.
package qdrant

import (
	"context"
	"fmt"

	pb "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"

	"github.com/custodia-labs/retrieval-engine/internal/core/domain"
	"github.com/custodia-labs/retrieval-engine/internal/core/ports/driven"
)

// Reserved payload keys.
const (
	payloadContent    = "content"
	payloadDocumentID = "document_id"
	payloadPosition   = "position"
)

// pointsClient is the subset of pb.PointsClient the store uses.
type pointsClient interface {
	Upsert(ctx context.Context, in *pb.UpsertPoints, opts ...grpc.CallOption) (*pb.PointsOperationResponse, error)
	Search(ctx context.Context, in *pb.SearchPoints, opts ...grpc.CallOption) (*pb.SearchResponse, error)
	Count(ctx context.Context, in *pb.CountPoints, opts ...grpc.CallOption) (*pb.CountResponse, error)
}

// collectionsClient is the subset of pb.CollectionsClient the factory uses.
type collectionsClient interface {
	List(ctx context.Context, in *pb.ListCollectionsRequest, opts ...grpc.CallOption) (*pb.ListCollectionsResponse, error)
	Get(ctx context.Context, in *pb.GetCollectionInfoRequest, opts ...grpc.CallOption) (*pb.GetCollectionInfoResponse, error)
	Create(ctx context.Context, in *pb.CreateCollection, opts ...grpc.CallOption) (*pb.CollectionOperationResponse, error)
	Delete(ctx context.Context, in *pb.DeleteCollection, opts ...grpc.CallOption) (*pb.CollectionOperationResponse, error)
}

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// Store is a driven.VectorStore over one Qdrant collection.
type Store struct {
	conn       *connection
	collection string
	dimensions int
}

// Add upserts the chunks as points in a single request.
func (s *Store) Add(ctx context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	points := make([]*pb.PointStruct, len(chunks))
	for i := range chunks {
		c := &chunks[i]
		if len(c.Embedding) != s.dimensions {
			return fmt.Errorf("%w: chunk %s has %d dimensions, index has %d",
				domain.ErrInvalidInput, c.ID, len(c.Embedding), s.dimensions)
		}
		points[i] = &pb.PointStruct{
			Id: &pb.PointId{
				PointIdOptions: &pb.PointId_Uuid{Uuid: c.ID},
			},
			Vectors: &pb.Vectors{
				VectorsOptions: &pb.Vectors_Vector{
					Vector: &pb.Vector{Data: c.Embedding},
				},
			},
			Payload: toPayload(c),
		}
	}

	wait := true
	_, err := s.conn.points.Upsert(ctx, &pb.UpsertPoints{
		CollectionName: s.collection,
		Wait:           &wait,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("qdrant: upsert %d points: %w", len(points), err)
	}
	return nil
}

// Search runs a k-NN query against the collection.
func (s *Store) Search(ctx context.Context, query []float32, k int) ([]domain.SearchResult, error) {
	if len(query) != s.dimensions {
		return nil, fmt.Errorf("%w: query has %d dimensions, index has %d",
			domain.ErrInvalidInput, len(query), s.dimensions)
	}
	if k <= 0 {
		return nil, nil
	}

	resp, err := s.conn.points.Search(ctx, &pb.SearchPoints{
		CollectionName: s.collection,
		Vector:         query,
		Limit:          uint64(k),
		WithPayload:    &pb.WithPayloadSelector{SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true}},
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant: search: %w", err)
	}

	results := make([]domain.SearchResult, len(resp.GetResult()))
	for i, r := range resp.GetResult() {
		chunk := fromPayload(r.GetPayload())
		chunk.ID = r.GetId().GetUuid()
		results[i] = domain.SearchResult{Chunk: chunk, Score: float64(r.GetScore())}
	}
	return results, nil
}

// Info returns the collection dimensions and exact point count.
func (s *Store) Info(ctx context.Context) (domain.IndexInfo, error) {
	exact := true
	resp, err := s.conn.points.Count(ctx, &pb.CountPoints{
		CollectionName: s.collection,
		Exact:          &exact,
	})
	if err != nil {
		return domain.IndexInfo{}, fmt.Errorf("qdrant: count %s: %w", s.collection, err)
	}
	return domain.IndexInfo{
		Dimensions: s.dimensions,
		Records:    int(resp.GetResult().GetCount()),
	}, nil
}

// Close closes the underlying gRPC connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// toPayload encodes a chunk's text, identity and metadata.
func toPayload(c *domain.Chunk) map[string]*pb.Value {
	payload := make(map[string]*pb.Value, len(c.Metadata)+3)
	for k, val := range c.Metadata {
		payload[k] = toValue(val)
	}
	payload[payloadContent] = toValue(c.Content)
	payload[payloadDocumentID] = toValue(c.DocumentID)
	payload[payloadPosition] = toValue(c.Position)
	return payload
}

func toValue(val any) *pb.Value {
	switch tv := val.(type) {
	case string:
		return &pb.Value{Kind: &pb.Value_StringValue{StringValue: tv}}
	case int:
		return &pb.Value{Kind: &pb.Value_IntegerValue{IntegerValue: int64(tv)}}
	case int64:
		return &pb.Value{Kind: &pb.Value_IntegerValue{IntegerValue: tv}}
	case float64:
		return &pb.Value{Kind: &pb.Value_DoubleValue{DoubleValue: tv}}
	case bool:
		return &pb.Value{Kind: &pb.Value_BoolValue{BoolValue: tv}}
	default:
		return &pb.Value{Kind: &pb.Value_StringValue{StringValue: fmt.Sprint(tv)}}
	}
}

// fromPayload rebuilds a chunk (without ID or embedding) from a payload.
func fromPayload(payload map[string]*pb.Value) domain.Chunk {
	chunk := domain.Chunk{Metadata: make(map[string]any, len(payload))}
	for k, val := range payload {
		switch k {
		case payloadContent:
			chunk.Content = val.GetStringValue()
		case payloadDocumentID:
			chunk.DocumentID = val.GetStringValue()
		case payloadPosition:
			chunk.Position = int(val.GetIntegerValue())
		default:
			chunk.Metadata[k] = fromValue(val)
		}
	}
	return chunk
}

func fromValue(val *pb.Value) any {
	switch kind := val.GetKind().(type) {
	case *pb.Value_StringValue:
		return kind.StringValue
	case *pb.Value_IntegerValue:
		return int(kind.IntegerValue)
	case *pb.Value_DoubleValue:
		return kind.DoubleValue
	case *pb.Value_BoolValue:
		return kind.BoolValue
	default:
		return nil
	}
}
