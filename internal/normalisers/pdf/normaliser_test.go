package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/retrieval-engine/internal/core/domain"
	"github.com/custodia-labs/retrieval-engine/internal/core/ports/driven"
)

// mockExtractor is a test double for pageExtractor.
type mockExtractor struct {
	pages []string
	err   error
}

func (m *mockExtractor) ExtractPages(_ []byte) ([]string, error) {
	return m.pages, m.err
}

// buildPDF writes a minimal single-font PDF with one text line per page.
func buildPDF(pages ...string) []byte {
	var objects []string
	pageCount := len(pages)

	kids := ""
	for i := range pages {
		kids += fmt.Sprintf("%d 0 R ", 4+2*i)
	}

	objects = append(objects,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", kids, pageCount),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	)
	for i, text := range pages {
		stream := fmt.Sprintf("BT /F1 12 Tf 72 712 Td (%s) Tj ET", text)
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] "+
				"/Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func TestNew(t *testing.T) {
	normaliser := New()
	require.NotNil(t, normaliser)
	assert.IsType(t, readerExtractor{}, normaliser.extractor)
}

func TestSupportedMIMETypes(t *testing.T) {
	assert.Equal(t, []string{"application/pdf"}, New().SupportedMIMETypes())
}

func TestPriority(t *testing.T) {
	assert.Equal(t, 50, New().Priority())
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.Normaliser = (*Normaliser)(nil)
}

func TestNormalise_NilDocument(t *testing.T) {
	result, err := New().Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, result)
}

func TestNormalise_OneDocumentPerPage(t *testing.T) {
	extractor := &mockExtractor{pages: []string{"Report Title\nFirst page.", "", "Third page."}}
	raw := &domain.RawDocument{
		URI:      "/data/report.pdf",
		MIMEType: "application/pdf",
		Content:  []byte("%PDF-1.4"),
		Metadata: map[string]any{domain.MetadataSource: "data/report.pdf"},
	}

	result, err := (&Normaliser{extractor: extractor}).Normalise(context.Background(), raw)
	require.NoError(t, err)
	require.Len(t, result.Documents, 2, "empty pages are skipped")

	first, third := result.Documents[0], result.Documents[1]
	assert.Equal(t, "Report Title\nFirst page.", first.Content)
	assert.Equal(t, 0, first.Metadata[domain.MetadataPage])
	assert.Equal(t, "Third page.", third.Content)
	assert.Equal(t, 2, third.Metadata[domain.MetadataPage], "page index is the physical page")

	for _, doc := range result.Documents {
		assert.Equal(t, "data/report.pdf", doc.Source())
		assert.Equal(t, "Report Title", doc.Title)
		assert.Equal(t, Format, doc.Metadata[domain.MetadataFormat])
		assert.Equal(t, "application/pdf", doc.Metadata[domain.MetadataMIMEType])
	}
	assert.NotEqual(t, first.ID, third.ID)
}

func TestNormalise_AllPagesEmpty(t *testing.T) {
	extractor := &mockExtractor{pages: []string{"", "  \n"}}
	raw := &domain.RawDocument{URI: "/scan.pdf", MIMEType: "application/pdf"}

	result, err := (&Normaliser{extractor: extractor}).Normalise(context.Background(), raw)
	require.NoError(t, err)
	assert.Empty(t, result.Documents)
}

func TestNormalise_ExtractorError(t *testing.T) {
	extractor := &mockExtractor{err: errors.New("bad xref")}
	raw := &domain.RawDocument{URI: "/broken.pdf", MIMEType: "application/pdf"}

	result, err := (&Normaliser{extractor: extractor}).Normalise(context.Background(), raw)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "bad xref")
	assert.Nil(t, result)
}

func TestReaderExtractor_CorruptFile(t *testing.T) {
	pages, err := readerExtractor{}.ExtractPages([]byte("this is definitely not a pdf"))
	assert.Error(t, err)
	assert.Nil(t, pages)
}

func TestReaderExtractor_TruncatedFile(t *testing.T) {
	valid := buildPDF("Hello")
	pages, err := readerExtractor{}.ExtractPages(valid[:len(valid)/2])
	assert.Error(t, err)
	assert.Nil(t, pages)
}

func TestReaderExtractor_ReadsPages(t *testing.T) {
	pages, err := readerExtractor{}.ExtractPages(buildPDF("Hello", "World"))
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Contains(t, pages[0], "Hello")
	assert.Contains(t, pages[1], "World")
}

func TestNormalise_RealPDF(t *testing.T) {
	raw := &domain.RawDocument{
		URI:      "/data/notes.pdf",
		MIMEType: "application/pdf",
		Content:  buildPDF("The quick brown fox"),
	}

	result, err := New().Normalise(context.Background(), raw)
	require.NoError(t, err)
	require.Len(t, result.Documents, 1)
	assert.Contains(t, result.Documents[0].Content, "The quick brown fox")
	assert.Equal(t, 0, result.Documents[0].Metadata[domain.MetadataPage])
}

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		uri      string
		expected string
	}{
		{
			name:     "first line as title",
			content:  "Document Title\n\nSome content here.",
			uri:      "/doc.pdf",
			expected: "Document Title",
		},
		{
			name:     "skip empty lines",
			content:  "\n\n\nActual Title\nContent",
			uri:      "/doc.pdf",
			expected: "Actual Title",
		},
		{
			name:     "fallback to filename",
			content:  "",
			uri:      "/path/to/my_document.pdf",
			expected: "my document",
		},
		{
			name:     "skip very long first line",
			content:  string(bytes.Repeat([]byte("x"), 250)) + "\nShort Title\nContent",
			uri:      "/doc.pdf",
			expected: "Short Title",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, extractTitle(tc.content, tc.uri))
		})
	}
}
