// mega-api serves draw lookups from the loaded store.
//
// GET /{drawNumber} returns the draw's date and its six numbers, or 404
// when the draw does not exist. The service reads only the database; it
// never touches the pipeline's files.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/ofarias/mega-history/internal/config"
	"github.com/ofarias/mega-history/internal/logger"
	"github.com/ofarias/mega-history/internal/store"
)

type drawResponse struct {
	DrawNumber int    `json:"draw_number"`
	Date       string `json:"date"`
	Numbers    string `json:"numbers"`
}

func main() {
	if err := godotenv.Load(); err == nil {
		logger.Info("loaded .env file", nil)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("loading configuration", nil, err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	st, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("connecting to database", nil, err)
		os.Exit(1)
	}
	defer st.Close()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Get("/{drawNumber}", getDraw(st))

	logger.Info("query service listening", logger.Fields{"addr": cfg.ListenAddr})
	server := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	if err := server.ListenAndServe(); err != nil {
		logger.Error("server stopped", nil, err)
		os.Exit(1)
	}
}

func getDraw(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		number, err := strconv.Atoi(chi.URLParam(r, "drawNumber"))
		if err != nil || number < 1 {
			http.NotFound(w, r)
			return
		}

		res, err := st.GetDraw(r.Context(), number)
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		if err != nil {
			logger.Error("draw lookup failed", logger.Fields{"draw": number}, err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(drawResponse{
			DrawNumber: res.Number,
			Date:       res.Date.Format("2006-01-02"),
			Numbers:    formatNumbers(res.Numbers),
		})
	}
}

// formatNumbers renders the six numbers zero-padded and dash-joined,
// e.g. "04-08-15-16-23-42".
func formatNumbers(numbers [6]int) string {
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = fmt.Sprintf("%02d", n)
	}
	return strings.Join(parts, "-")
}
