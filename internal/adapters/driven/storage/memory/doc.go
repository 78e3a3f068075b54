// Package memory provides in-process implementations of the driven ports.
//
// VectorStore keeps vector records in a slice guarded by a RWMutex and is
// selected with store.backend = "memory". Nothing is persisted: the index
// lives only for the lifetime of the process. ConfigStore is a map-backed
// configuration store used by tests and embedded callers.
package memory
