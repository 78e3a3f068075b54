// Package filesystem loads documents from a local directory tree.
//
// Files are visited in lexical order. Hidden files and directories are
// skipped, as are files whose extension is not supported. Every supported
// file is read whole and handed to the normaliser registry.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/retrieval-engine/internal/core/domain"
	"github.com/custodia-labs/retrieval-engine/internal/core/ports/driven"
	"github.com/custodia-labs/retrieval-engine/internal/logger"
)

// extensionMIMETypes maps the supported lower-case extensions to MIME types.
var extensionMIMETypes = map[string]string{
	".pdf": "application/pdf",
	".txt": "text/plain",
	".md":  "text/markdown",
}

// maxParallelFiles bounds concurrent normalisation.
const maxParallelFiles = 8

// Ensure Loader implements the interface.
var _ driven.DocumentLoader = (*Loader)(nil)

// Loader reads supported files beneath a root directory.
type Loader struct {
	registry driven.NormaliserRegistry
}

// New creates a loader that normalises files with registry.
func New(registry driven.NormaliserRegistry) *Loader {
	return &Loader{registry: registry}
}

// SupportedExtensions returns the accepted extensions, sorted.
func (l *Loader) SupportedExtensions() []string {
	exts := make([]string, 0, len(extensionMIMETypes))
	for ext := range extensionMIMETypes {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Load scans root and normalises every supported file. Files are
// normalised concurrently; documents keep the lexical file order.
// Any read or parse failure aborts the load; errors wrap domain.ErrFileSystem.
func (l *Loader) Load(ctx context.Context, root string) ([]domain.Document, error) {
	raws, err := l.Scan(ctx, root)
	if err != nil {
		return nil, err
	}

	perFile := make([][]domain.Document, len(raws))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelFiles)

	for i := range raws {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result, err := l.registry.Normalise(gctx, &raws[i])
			if err != nil {
				return fmt.Errorf("%w: load %s: %w", domain.ErrFileSystem, raws[i].URI, err)
			}
			logger.Debug("loaded %s: %d document(s)", raws[i].URI, len(result.Documents))
			perFile[i] = result.Documents
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var docs []domain.Document
	for _, fileDocs := range perFile {
		docs = append(docs, fileDocs...)
	}
	return docs, nil
}

// Scan reads every supported, non-hidden file beneath root in lexical order.
func (l *Loader) Scan(ctx context.Context, root string) ([]domain.RawDocument, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: directory %s does not exist: %w", domain.ErrFileSystem, root, err)
		}
		return nil, fmt.Errorf("%w: stat %s: %w", domain.ErrFileSystem, root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrFileSystem, root)
	}

	var raws []domain.RawDocument
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if path != root && isHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		mimeType, ok := detectMIMEType(path)
		if !ok {
			logger.Debug("skipping unsupported file %s", path)
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		ext := strings.ToLower(filepath.Ext(path))
		raws = append(raws, domain.RawDocument{
			URI:      path,
			MIMEType: mimeType,
			Content:  content,
			Metadata: map[string]any{
				domain.MetadataSource: path,
				"filename":            d.Name(),
				"extension":           strings.TrimPrefix(ext, "."),
			},
		})
		return nil
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: scan %s: %w", domain.ErrFileSystem, root, err)
	}

	return raws, nil
}

// detectMIMEType returns the MIME type for a supported extension.
// Matching is case-insensitive.
func detectMIMEType(path string) (string, bool) {
	mimeType, ok := extensionMIMETypes[strings.ToLower(filepath.Ext(path))]
	return mimeType, ok
}

// isHidden reports whether a file or directory name is hidden.
// "." and ".." are not hidden.
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
