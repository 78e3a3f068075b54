// Package pdf provides the normaliser for PDF files.
// Each page with extractable text becomes its own document, tagged with
// its 0-based page index.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/retrieval-engine/internal/core/domain"
	"github.com/custodia-labs/retrieval-engine/internal/core/ports/driven"
)

// Format is recorded under domain.MetadataFormat.
const Format = "pdf"

// maxTitleLength bounds a first line used as the document title.
const maxTitleLength = 200

// pageExtractor returns the plain text of every page, in page order.
// Pages without text are returned as empty strings.
type pageExtractor interface {
	ExtractPages(content []byte) ([]string, error)
}

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles PDF documents.
type Normaliser struct {
	extractor pageExtractor
}

// New creates a PDF normaliser backed by the pure-Go PDF reader.
func New() *Normaliser {
	return &Normaliser{extractor: readerExtractor{}}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"application/pdf"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50
}

// Normalise converts a PDF into one document per page with non-empty text.
// A PDF whose pages are all empty yields no documents.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	pages, err := n.extractor.ExtractPages(raw.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: parse pdf %s: %w", domain.ErrInvalidInput, raw.URI, err)
	}

	title := ""
	docs := make([]domain.Document, 0, len(pages))
	for i, text := range pages {
		if strings.TrimSpace(text) == "" {
			continue
		}
		if title == "" {
			title = extractTitle(text, raw.URI)
		}

		metadata := domain.CopyMetadata(raw.Metadata)
		if _, ok := metadata[domain.MetadataSource]; !ok {
			metadata[domain.MetadataSource] = raw.URI
		}
		metadata[domain.MetadataPage] = i
		metadata[domain.MetadataMIMEType] = raw.MIMEType
		metadata[domain.MetadataFormat] = Format

		docs = append(docs, domain.Document{
			ID:       uuid.New().String(),
			URI:      raw.URI,
			Title:    title,
			Content:  text,
			Metadata: metadata,
		})
	}

	return &driven.NormaliseResult{Documents: docs}, nil
}

// extractTitle uses the first short non-empty line, or the filename.
func extractTitle(content, uri string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && len(line) <= maxTitleLength {
			return line
		}
	}

	filename := filepath.Base(uri)
	filename = strings.TrimSuffix(filename, filepath.Ext(filename))
	filename = strings.ReplaceAll(filename, "_", " ")
	filename = strings.ReplaceAll(filename, "-", " ")
	return filename
}

// readerExtractor extracts page text with github.com/ledongthuc/pdf.
type readerExtractor struct{}

// ExtractPages parses content in memory. The reader panics on some
// malformed inputs; those panics are returned as errors.
func (readerExtractor) ExtractPages(content []byte) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, err
	}

	n := reader.NumPage()
	pages = make([]string, 0, n)
	for i := 1; i <= n; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		pages = append(pages, text)
	}
	return pages, nil
}
