// Package connectors holds document loaders. Each loader reads a document
// source into domain.Document values through the normaliser registry.
package connectors
