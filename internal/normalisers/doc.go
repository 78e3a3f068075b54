// Package normalisers provides implementations of the Normaliser interface
// for the supported document formats, and the Registry that dispatches a
// raw file to the normaliser for its MIME type.
//
// Normalisers are registered with the Registry at startup via RegisterDefaults.
package normalisers
