// Package cli provides the mega-history command-line interface.
//
// The root command runs the full history pipeline: fetch the operator's
// draws-history page, parse and verify it, and export the archival and
// loader-ready artifacts into the output directory.
package cli
