package sqlite

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/retrieval-engine/internal/core/domain"
	"github.com/custodia-labs/retrieval-engine/internal/core/ports/driven"
	"github.com/custodia-labs/retrieval-engine/internal/logger"
)

// DBFileName is the index database file created inside the index directory.
const DBFileName = "index.db"

// Ensure Factory implements the interface.
var _ driven.VectorStoreFactory = (*Factory)(nil)

// Factory manages the SQLite index file inside an index directory.
type Factory struct {
	dir string
}

// NewFactory creates a factory for the index stored under dir.
func NewFactory(dir string) *Factory {
	return &Factory{dir: dir}
}

// Path returns the index database file path.
func (f *Factory) Path() string {
	return filepath.Join(f.dir, DBFileName)
}

// Exists reports whether the index database file is present.
func (f *Factory) Exists(_ context.Context) (bool, error) {
	info, err := os.Stat(f.Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("checking index: %w", err)
	}
	if info.IsDir() {
		return false, fmt.Errorf("checking index: %s is a directory", f.Path())
	}
	return true, nil
}

// Open opens the existing index.
func (f *Factory) Open(ctx context.Context) (driven.VectorStore, error) {
	exists, err := f.Exists(ctx)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, f.Path())
	}

	db, err := openDB(ctx, f.Path())
	if err != nil {
		return nil, err
	}

	store, err := newStore(ctx, db, f.Path())
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// Create initialises a new index database recording model and dimensions.
// An index that already exists is an error. A database file without its
// metadata row, left by an interrupted Create, is removed first.
func (f *Factory) Create(ctx context.Context, model string, dimensions int) (driven.VectorStore, error) {
	if dimensions <= 0 {
		return nil, fmt.Errorf("%w: dimensions must be positive", domain.ErrInvalidInput)
	}

	exists, err := f.Exists(ctx)
	if err != nil {
		return nil, err
	}
	if exists {
		if err := f.discardIncomplete(ctx); err != nil {
			return nil, err
		}
	}

	// Ensure directory exists
	if err := os.MkdirAll(f.dir, 0700); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	db, err := openDB(ctx, f.Path())
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx,
		"INSERT INTO index_meta (id, model, dimensions) VALUES (1, ?, ?)",
		model, dimensions); err != nil {
		db.Close()
		return nil, fmt.Errorf("writing index metadata: %w", err)
	}

	return &Store{db: db, path: f.Path(), model: model, dimensions: dimensions}, nil
}

// Discard removes the index database and its WAL companions.
// Any open Store for this index must be closed first.
func (f *Factory) Discard(_ context.Context) error {
	for _, suffix := range []string{"", "-wal", "-shm"} {
		err := os.Remove(f.Path() + suffix)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("removing index: %w", err)
		}
	}
	return nil
}

// discardIncomplete removes an index database that has no metadata row.
// A complete index is reported as already existing.
func (f *Factory) discardIncomplete(ctx context.Context) error {
	store, err := f.Open(ctx)
	if err == nil {
		store.Close()
		return fmt.Errorf("index already exists at %s", f.Path())
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	logger.Warn("Removing incomplete index %s", f.Path())
	return f.Discard(ctx)
}
