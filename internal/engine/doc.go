// Package engine provides the data-transformation core for delimited files.
//
// This package contains all domain logic independent of any UI or transport
// layer: it consumes raw file bytes plus option records and returns new
// [Table] values or typed errors. It never touches the filesystem, the
// network, or a database; callers (web handlers, CLI commands, tests) own
// every I/O boundary.
//
// # Pipeline
//
// Raw bytes flow through the engine in one direction:
//
//	bytes -> Parse -> Table -> {MergeAppend | MergeJoin | Compare | ApplyMapping} -> Table / []DiffEntry
//
// Tables are immutable value objects: every operation returns a fresh Table
// and never mutates its inputs, so concurrent callers may share source
// tables freely without coordination.
//
// # Leniency policy
//
// Structurally invalid input (empty file, undecodable bytes, a missing key
// column) is a hard, typed failure. Anything cell-level — a short row, an
// unresolved mapping, a non-numeric value under a numeric filter — is
// absorbed into empty strings or non-matches so that partial, inspectable
// output is always produced for preview and export.
package engine
