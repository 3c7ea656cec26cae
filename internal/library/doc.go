// Package library persists photo and album metadata as a single JSON document
// and exposes append/update/delete operations over the two collections.
//
// The document is loaded fully on every operation and rewritten fully (atomic
// temp-file rename) on every mutation; there is no indexing and all lookups are
// linear scans. All operations are funneled through one writer goroutine so the
// read-modify-write cycle can never lose a concurrent mutation, and a lock file
// beside the document rejects a second photovault instance instead of letting
// last-writer-wins corrupt the library.
//
// Treat this package as the single source of truth for record semantics; album
// membership is derived from each photo's Album field, never stored on the
// album itself.
package library
