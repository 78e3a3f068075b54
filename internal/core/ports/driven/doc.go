// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - DocumentLoader: Enumerates and loads files from the data directory
//   - Normaliser: Transforms raw file bytes into documents
//   - NormaliserRegistry: Selects the normaliser for a MIME type
//   - PostProcessor / PostProcessorPipeline: Splits documents into chunks
//   - EmbeddingService: Generates vector embeddings
//   - VectorStore / VectorStoreFactory: Persists and searches vector records
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
