// Package api is the boundary the presentation layer (the CLI) consumes. It
// composes the library store, blob manager, and import pipeline into the
// operations the original gallery surface exposed: list/query, full-resolution
// reads, favorite/tag/album mutations, batch delete, export, storage info, and
// full reset.
//
// Every operation returns explicit errors; batch operations isolate per-item
// failures so one bad item never aborts the batch.
package api
