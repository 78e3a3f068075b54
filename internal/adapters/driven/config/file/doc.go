// Package file provides a TOML-backed implementation of driven.ConfigStore.
//
// The file is read once at construction. Nested tables are exposed as
// dot-notation keys, so
//
//	[embedding]
//	provider = "openai"
//
// is read with GetString("embedding.provider"). Saving writes the keys
// back as nested tables.
package file
