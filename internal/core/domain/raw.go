package domain

// RawDocument represents the opaque bytes of a file found under the
// data directory. It is the loader's input to normalisation.
type RawDocument struct {
	// URI is the file path.
	URI string

	// MIMEType is the content type derived from the file extension.
	MIMEType string

	// Content is the raw bytes.
	Content []byte

	// Metadata contains loader-specific key-value pairs.
	Metadata map[string]any
}
