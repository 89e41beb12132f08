// Package store provides PostgreSQL access for the bulk loader and the
// query service.
//
// The loader side drops and recreates the draws and winners_locations
// tables, then streams loader-ready records in via COPY. The query side
// answers draw-number lookups against the loaded tables. Persistence
// ownership belongs here: the pipeline itself never touches the database.
package store
