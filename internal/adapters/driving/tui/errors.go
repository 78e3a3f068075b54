package tui

import "errors"

// Errors returned when required ports are not provided.
var (
	ErrMissingIngestService = errors.New("tui: ingest service is required")
	ErrMissingQueryService  = errors.New("tui: query service is required")
)
