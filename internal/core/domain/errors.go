package domain

import "errors"

// Error taxonomy. Services wrap underlying causes with one of the first
// three sentinels so callers can classify failures with errors.Is.
var (
	// ErrFileSystem indicates a missing, unreadable or corrupt input file.
	ErrFileSystem = errors.New("filesystem error")

	// ErrModel indicates the embedding model failed.
	ErrModel = errors.New("embedding model error")

	// ErrStore indicates vector store persistence or query failure.
	ErrStore = errors.New("vector store error")
)

var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown file type, provider or backend.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrModelMismatch indicates the persisted index was built with a
	// different embedding model or dimension than the one configured.
	ErrModelMismatch = errors.New("embedding model does not match index")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
)
