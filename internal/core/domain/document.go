package domain

// Metadata keys shared by documents and the chunks split from them.
const (
	// MetadataSource is the path of the file a document was loaded from.
	MetadataSource = "source"

	// MetadataPage is the 0-based page index for paged formats (PDF).
	MetadataPage = "page"

	// MetadataFormat names the loader format ("text", "markdown", "pdf").
	MetadataFormat = "format"

	// MetadataMIMEType is the MIME type the document was loaded as.
	MetadataMIMEType = "mime_type"
)

// Document represents a loaded unit of text with its source metadata.
// A text or markdown file yields one Document; a PDF yields one per page.
// Documents are immutable once created and only consumed by the splitter.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// URI is the file path the document was read from.
	URI string

	// Title is the human-readable title.
	Title string

	// Content is the full text of the document before chunking.
	Content string

	// Metadata always carries MetadataSource, and MetadataPage for PDF pages.
	Metadata map[string]any
}

// Source returns the file path recorded in the document metadata.
func (d *Document) Source() string {
	if s, ok := d.Metadata[MetadataSource].(string); ok {
		return s
	}
	return d.URI
}

// Chunk represents a searchable unit within a document.
// Chunks never span documents and inherit their parent's metadata.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// Content is the text content of this chunk.
	Content string

	// Position is the ordinal position within the document.
	Position int

	// Embedding is the vector representation for semantic search.
	Embedding []float32

	// Metadata is a copy of the parent document metadata.
	Metadata map[string]any
}

// CopyMetadata creates a shallow copy of metadata.
func CopyMetadata(src map[string]any) map[string]any {
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
