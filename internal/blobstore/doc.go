// Package blobstore owns the two directory trees photovault keeps under the
// chosen storage root: originals under PhotoVault/photos, partitioned by the
// calendar year-month of import, and thumbnails under PhotoVault/thumbnails.
//
// Thumbnails are byte-for-byte copies of the source; there is no resampling
// pipeline. Deletion is best-effort and reports per-file failures in a
// structured result instead of propagating them, so a missing blob never blocks
// removing a record.
package blobstore
