// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Engine is the single service behind every driving adapter: it owns the
// vector store handle and runs ingestion and similarity queries. It is
// constructed explicitly and injected; there is no package-level instance.
//
// Services are pure Go with no CGO or external dependencies.
package services
