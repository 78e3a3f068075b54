// Package markdown provides the normaliser for Markdown files.
package markdown

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/custodia-labs/retrieval-engine/internal/core/domain"
	"github.com/custodia-labs/retrieval-engine/internal/core/ports/driven"
)

// Format is recorded under domain.MetadataFormat.
const Format = "markdown"

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles Markdown documents.
// The markup is kept as-is: headings and paragraph breaks are what the
// splitter uses to find chunk boundaries.
type Normaliser struct{}

// New creates a new Markdown normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/markdown", "text/x-markdown"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50 // Generic MIME normaliser, higher than plaintext
}

// Normalise converts a markdown file into a single document.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	if !utf8.Valid(raw.Content) {
		return nil, fmt.Errorf("%w: %s is not valid UTF-8 text", domain.ErrInvalidInput, raw.URI)
	}

	content := string(raw.Content)

	metadata := domain.CopyMetadata(raw.Metadata)
	if _, ok := metadata[domain.MetadataSource]; !ok {
		metadata[domain.MetadataSource] = raw.URI
	}
	metadata[domain.MetadataMIMEType] = raw.MIMEType
	metadata[domain.MetadataFormat] = Format

	doc := domain.Document{
		ID:       uuid.New().String(),
		URI:      raw.URI,
		Title:    extractMarkdownTitle(content, raw.URI),
		Content:  content,
		Metadata: metadata,
	}

	return &driven.NormaliseResult{
		Documents: []domain.Document{doc},
	}, nil
}

// extractMarkdownTitle returns the first H1 heading, or the filename.
// Headings inside fenced code blocks are ignored.
func extractMarkdownTitle(content, uri string) string {
	inFence := false
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "```") || strings.HasPrefix(line, "~~~") {
			inFence = !inFence
			continue
		}
		if !inFence && strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "#"))
		}
	}

	filename := filepath.Base(uri)
	filename = strings.TrimSuffix(filename, filepath.Ext(filename))
	filename = strings.ReplaceAll(filename, "_", " ")
	filename = strings.ReplaceAll(filename, "-", " ")
	return filename
}
