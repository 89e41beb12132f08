// mega-load ingests the pipeline's loader-ready files into PostgreSQL.
//
// It recreates the draws and winners_locations tables, bulk-loads both
// files via COPY and prints the last ten draws as a smoke check.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/ofarias/mega-history/internal/config"
	"github.com/ofarias/mega-history/internal/draw"
	"github.com/ofarias/mega-history/internal/export"
	"github.com/ofarias/mega-history/internal/logger"
	"github.com/ofarias/mega-history/internal/store"
)

var (
	drawsFile  = flag.String("draws-file", "", "Path to the <base>_draws_table_load.csv artifact (required)")
	winlocFile = flag.String("winloc-file", "", "Path to the <base>_winloc_table_load.csv artifact (required)")
)

func main() {
	flag.Parse()

	if *drawsFile == "" || *winlocFile == "" {
		fmt.Fprintln(os.Stderr, "Error: --draws-file and --winloc-file are required")
		flag.Usage()
		os.Exit(1)
	}

	if err := godotenv.Load(); err == nil {
		logger.Info("loaded .env file", nil)
	}

	cfg, err := config.Load()
	if err != nil {
		fatal("loading configuration", err)
	}

	records, err := readDraws(*drawsFile)
	if err != nil {
		fatal("reading draws file", err)
	}
	locs, err := readLocations(*winlocFile)
	if err != nil {
		fatal("reading winner locations file", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	st, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		fatal("connecting to database", err)
	}
	defer st.Close()

	if err := st.CreateTables(ctx); err != nil {
		fatal("creating tables", err)
	}

	// The FK on winners_locations requires draws to land first.
	nDraws, err := st.LoadDraws(context.Background(), records)
	if err != nil {
		fatal("loading draws", err)
	}
	nLocs, err := st.LoadLocations(context.Background(), locs)
	if err != nil {
		fatal("loading winner locations", err)
	}

	logger.Info("database load completed", logger.Fields{
		"draws":     nDraws,
		"locations": nLocs,
	})

	last, err := st.LastDraws(context.Background(), 10)
	if err != nil {
		fatal("querying last draws", err)
	}

	fmt.Println("Last 10 records:")
	fmt.Println("(draw_number, date, winners_6, winners_5, winners_4)")
	for _, sm := range last {
		fmt.Printf("(%d, %s, %d, %d, %d)\n",
			sm.Number, sm.Date.Format("2006-01-02"), sm.Winners6, sm.Winners5, sm.Winners4)
	}
}

func readDraws(path string) ([]*draw.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return export.ReadLoaderDraws(f)
}

func readLocations(path string) ([]draw.Location, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return export.ReadLoaderLocations(f)
}

func fatal(msg string, err error) {
	logger.Error(msg, nil, err)
	os.Exit(1)
}
