// Package scraper provides HTTP fetching and HTML parsing for the
// Mega-Sena draws-history page.
//
// The scraper fetches the operator's public history endpoint and extracts
// the single history table into ordered field-to-text rows. It repairs the
// irregular layout used for draws with multiple top-tier winners, where
// the winner cities are embedded both inside the location cell and as
// redundant extra cells following it.
package scraper
