package qdrant

import (
	"context"
	"fmt"

	pb "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/custodia-labs/retrieval-engine/internal/core/domain"
	"github.com/custodia-labs/retrieval-engine/internal/core/ports/driven"
)

// Defaults for the Qdrant backend.
const (
	DefaultAddr       = "localhost:6334"
	DefaultCollection = "notes"
)

// connection bundles the gRPC clients with the connection that backs them.
type connection struct {
	grpcConn    *grpc.ClientConn
	points      pointsClient
	collections collectionsClient
}

// Close closes the gRPC connection if there is one.
func (c *connection) Close() error {
	if c.grpcConn == nil {
		return nil
	}
	return c.grpcConn.Close()
}

// dialFunc opens a connection to Qdrant.
type dialFunc func() (*connection, error)

// Ensure Factory implements the interface.
var _ driven.VectorStoreFactory = (*Factory)(nil)

// Factory manages one Qdrant collection as the persisted index.
type Factory struct {
	collection string
	dial       dialFunc
}

// NewFactory creates a factory for collection on the Qdrant gRPC endpoint at addr.
func NewFactory(addr, collection string) *Factory {
	if addr == "" {
		addr = DefaultAddr
	}
	if collection == "" {
		collection = DefaultCollection
	}
	return &Factory{
		collection: collection,
		dial: func() (*connection, error) {
			conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
			if err != nil {
				return nil, fmt.Errorf("qdrant: dial %s: %w", addr, err)
			}
			return &connection{
				grpcConn:    conn,
				points:      pb.NewPointsClient(conn),
				collections: pb.NewCollectionsClient(conn),
			}, nil
		},
	}
}

// newFactoryWithClients creates a factory over pre-built clients.
func newFactoryWithClients(points pointsClient, collections collectionsClient, collection string) *Factory {
	return &Factory{
		collection: collection,
		dial: func() (*connection, error) {
			return &connection{points: points, collections: collections}, nil
		},
	}
}

// Exists reports whether the collection is present.
func (f *Factory) Exists(ctx context.Context) (bool, error) {
	conn, err := f.dial()
	if err != nil {
		return false, err
	}
	defer conn.Close()

	return f.exists(ctx, conn)
}

func (f *Factory) exists(ctx context.Context, conn *connection) (bool, error) {
	list, err := conn.collections.List(ctx, &pb.ListCollectionsRequest{})
	if err != nil {
		return false, fmt.Errorf("qdrant: list collections: %w", err)
	}
	for _, c := range list.GetCollections() {
		if c.GetName() == f.collection {
			return true, nil
		}
	}
	return false, nil
}

// Open connects to the existing collection and reads its vector size.
func (f *Factory) Open(ctx context.Context) (driven.VectorStore, error) {
	conn, err := f.dial()
	if err != nil {
		return nil, err
	}

	exists, err := f.exists(ctx, conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	if !exists {
		conn.Close()
		return nil, fmt.Errorf("%w: qdrant collection %s", domain.ErrNotFound, f.collection)
	}

	info, err := conn.collections.Get(ctx, &pb.GetCollectionInfoRequest{CollectionName: f.collection})
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("qdrant: get collection %s: %w", f.collection, err)
	}

	size := info.GetResult().GetConfig().GetParams().GetVectorsConfig().GetParams().GetSize()
	if size == 0 {
		conn.Close()
		return nil, fmt.Errorf("qdrant: collection %s has no single unnamed vector", f.collection)
	}

	return &Store{conn: conn, collection: f.collection, dimensions: int(size)}, nil
}

// Create creates the collection with cosine distance.
func (f *Factory) Create(ctx context.Context, _ string, dimensions int) (driven.VectorStore, error) {
	if dimensions <= 0 {
		return nil, fmt.Errorf("%w: dimensions must be positive", domain.ErrInvalidInput)
	}

	conn, err := f.dial()
	if err != nil {
		return nil, err
	}

	_, err = conn.collections.Create(ctx, &pb.CreateCollection{
		CollectionName: f.collection,
		VectorsConfig: &pb.VectorsConfig{
			Config: &pb.VectorsConfig_Params{
				Params: &pb.VectorParams{
					Size:     uint64(dimensions),
					Distance: pb.Distance_Cosine,
				},
			},
		},
	})
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("qdrant: create collection %s: %w", f.collection, err)
	}

	return &Store{conn: conn, collection: f.collection, dimensions: dimensions}, nil
}

// Discard deletes the collection.
func (f *Factory) Discard(ctx context.Context) error {
	conn, err := f.dial()
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := conn.collections.Delete(ctx, &pb.DeleteCollection{CollectionName: f.collection}); err != nil {
		return fmt.Errorf("qdrant: delete collection %s: %w", f.collection, err)
	}
	return nil
}
