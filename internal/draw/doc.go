// Package draw provides the typed model for Mega-Sena draw history rows.
//
// The draw package converts the raw field-to-text rows produced by the scraper
// into typed Record and Location values, applying the Brazilian locale rules
// of the source table (dot thousands separator, comma decimal separator,
// SIM/NAO boolean tokens) and the documented corrections for known malformed
// historical entries. It also hosts the completeness gate that verifies the
// draw-number sequence has no gaps before anything is exported.
package draw
