// Package export serializes pipeline output into the run's artifacts.
//
// A run produces five files under one timestamp-derived base name: the raw
// HTML snapshot, an archival JSON document preserving the source field
// names and order, an archival semicolon-delimited mirror, and the two
// loader-ready delimited files consumed by the bulk loader. Every file is
// staged to a temporary name and renamed into place so an aborted run
// never leaves a torn artifact.
package export
