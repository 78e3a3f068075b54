package domain

// SearchResult represents a single similarity hit returned by a vector store.
type SearchResult struct {
	// Chunk is the matched record.
	Chunk Chunk

	// Score is the store's similarity score (higher is closer).
	Score float64
}

// QueryResult is the outcome of a similarity query.
type QueryResult struct {
	// IndexMissing is set when no persisted index exists and nothing has
	// been ingested during this process lifetime. It is not an error.
	IndexMissing bool

	// Snippets holds the chunk texts, most similar first.
	Snippets []string
}

// IngestResult is the outcome of one ingestion run.
type IngestResult struct {
	// DataDirCreated is set when the data directory did not exist and was
	// created. Nothing was ingested in that case.
	DataDirCreated bool

	// Documents is the number of documents loaded.
	Documents int

	// Chunks is the number of chunks embedded and stored.
	Chunks int
}

// IndexInfo describes a persisted vector index.
type IndexInfo struct {
	// Model is the embedding model the index was created with.
	// Empty when the backend does not record it.
	Model string

	// Dimensions is the embedding vector size.
	Dimensions int

	// Records is the number of stored vector records.
	Records int
}
