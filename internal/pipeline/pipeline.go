// Package pipeline wires the scrape, parse, verify, normalize and export
// stages into a single sequential run.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/ofarias/mega-history/internal/draw"
	"github.com/ofarias/mega-history/internal/export"
	"github.com/ofarias/mega-history/internal/logger"
	"github.com/ofarias/mega-history/internal/scraper"
)

// Options configures a single pipeline run.
type Options struct {
	// SourceURL overrides the operator endpoint; empty means the default.
	SourceURL string

	// OutDir is the directory receiving all run artifacts.
	OutDir string

	// Timeout bounds the fetch; zero means the scraper default.
	Timeout time.Duration
}

// Result summarizes a completed run.
type Result struct {
	Draws       int
	Locations   int
	DroppedRows int
	Anomalies   int

	LastDraw     int
	LastDrawDate string

	Artifacts []string
	Elapsed   time.Duration
}

// Run executes the full pipeline. The first fatal error (fetch, parse,
// consistency, export) aborts the run; field anomalies are logged and
// counted but never abort.
func Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	res := &Result{}

	url := opts.SourceURL
	if url == "" {
		url = scraper.HistoryURL
	}
	sc := scraper.NewWithTimeout(url, opts.Timeout)

	logger.Info("fetching draws history", logger.Fields{"url": url})
	fetchStart := time.Now()
	raw, err := sc.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	logger.RecordTiming("fetch", time.Since(fetchStart))

	w, err := export.New(opts.OutDir)
	if err != nil {
		return nil, err
	}
	exportStart := time.Now()
	if err := res.addArtifact(w.WriteSnapshot(raw)); err != nil {
		return nil, err
	}
	exported := time.Since(exportStart)

	parseStart := time.Now()
	table, err := scraper.ParseTable(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	logger.RecordTiming("parse", time.Since(parseStart))
	res.DroppedRows = table.Dropped
	logger.IncrCounter("rows_dropped", int64(table.Dropped))
	logger.Info("parsed history table", logger.Fields{
		"fields":  len(table.Fields),
		"rows":    len(table.Rows),
		"dropped": table.Dropped,
	})

	// The completeness gate: nothing is exported past the raw snapshot
	// unless the draw-number sequence is gapless.
	if err := draw.CheckComplete(table.Rows); err != nil {
		return nil, err
	}

	exportStart = time.Now()
	if err := res.addArtifact(w.WriteJSON(table)); err != nil {
		return nil, err
	}
	if err := res.addArtifact(w.WriteCSV(table)); err != nil {
		return nil, err
	}
	exported += time.Since(exportStart)

	n := &draw.Normalizer{}
	records := make([]*draw.Record, 0, len(table.Rows))
	var locations []draw.Location
	for _, row := range table.Rows {
		rec, err := n.Record(row)
		if err != nil {
			return nil, fmt.Errorf("normalizing draw row: %w", err)
		}
		records = append(records, rec)

		locs, err := n.Locations(row)
		if err != nil {
			return nil, fmt.Errorf("normalizing winner locations: %w", err)
		}
		locations = append(locations, locs...)
	}
	res.Draws = len(records)
	res.Locations = len(locations)
	res.Anomalies = n.Anomalies
	logger.IncrCounter("field_anomalies", int64(n.Anomalies))

	exportStart = time.Now()
	if err := res.addArtifact(w.WriteLoaderDraws(records)); err != nil {
		return nil, err
	}
	if err := res.addArtifact(w.WriteLoaderLocations(locations)); err != nil {
		return nil, err
	}
	exported += time.Since(exportStart)
	logger.RecordTiming("export", exported)

	last := records[len(records)-1]
	res.LastDraw = last.Number
	res.LastDrawDate = last.Date
	res.Elapsed = time.Since(start)
	logger.RecordTiming("run", res.Elapsed)

	logger.Info("run complete", logger.Fields{
		"last_draw":      res.LastDraw,
		"last_draw_date": res.LastDrawDate,
		"draws":          res.Draws,
		"locations":      res.Locations,
		"anomalies":      res.Anomalies,
		"elapsed":        res.Elapsed.String(),
	})
	logger.Info("run metrics", logger.Fields(logger.MetricsSnapshot()))

	return res, nil
}

func (r *Result) addArtifact(path string, err error) error {
	if err != nil {
		return err
	}
	r.Artifacts = append(r.Artifacts, path)
	return nil
}
