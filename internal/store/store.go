package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ofarias/mega-history/internal/draw"
)

// ErrNotFound is returned when a draw number has no record.
var ErrNotFound = errors.New("draw not found")

// dateLayout matches the normalized date field (year/month/day).
const dateLayout = "2006/01/02"

// Store wraps a PostgreSQL connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// Connect opens a pool against the given connection string and verifies
// the connection.
func Connect(ctx context.Context, url string) (*Store, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Close releases the pool.
func (s *Store) Close() {
	s.pool.Close()
}

// CreateTables drops and recreates the draws and winners_locations
// tables. Each run replaces the previous load wholesale; the pipeline
// never updates rows in place.
func (s *Store) CreateTables(ctx context.Context) error {
	stmts := []string{
		`DROP TABLE IF EXISTS winners_locations`,
		`DROP TABLE IF EXISTS draws`,
		`CREATE TABLE draws (
			draw_number     INT PRIMARY KEY,
			draw_city       VARCHAR(50) NOT NULL,
			draw_state      CHAR(2) NOT NULL,
			date            DATE NOT NULL,
			number_1        SMALLINT NOT NULL,
			number_2        SMALLINT NOT NULL,
			number_3        SMALLINT NOT NULL,
			number_4        SMALLINT NOT NULL,
			number_5        SMALLINT NOT NULL,
			number_6        SMALLINT NOT NULL,
			winners_6       INT NOT NULL,
			winners_5       INT NOT NULL,
			winners_4       INT NOT NULL,
			prize_6         NUMERIC(12,2) NOT NULL,
			prize_5         NUMERIC(12,2) NOT NULL,
			prize_4         NUMERIC(12,2) NOT NULL,
			collected_value NUMERIC(13,2) NOT NULL,
			next_prize      NUMERIC(12,2) NOT NULL,
			to_next_draw    NUMERIC(12,2) NOT NULL,
			jackpot         SMALLINT,
			special_draw    SMALLINT,
			note            VARCHAR(400) NOT NULL
		)`,
		`CREATE TABLE winners_locations (
			draw_number  INT NOT NULL REFERENCES draws (draw_number),
			winner_city  VARCHAR(50) NOT NULL,
			winner_state CHAR(2) NOT NULL
		)`,
	}

	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("creating tables: %w", err)
		}
	}
	return nil
}

// LoadDraws bulk-inserts draw records via COPY and returns the number of
// rows written.
func (s *Store) LoadDraws(ctx context.Context, records []*draw.Record) (int64, error) {
	rows := make([][]interface{}, 0, len(records))
	for _, rec := range records {
		date, err := time.Parse(dateLayout, rec.Date)
		if err != nil {
			return 0, fmt.Errorf("draw %d date %q: %w", rec.Number, rec.Date, err)
		}
		rows = append(rows, []interface{}{
			rec.Number, rec.City, rec.State, date,
			rec.Numbers[0], rec.Numbers[1], rec.Numbers[2],
			rec.Numbers[3], rec.Numbers[4], rec.Numbers[5],
			rec.Winners6, rec.Winners5, rec.Winners4,
			rec.Prize6, rec.Prize5, rec.Prize4,
			rec.CollectedValue, rec.NextPrize, rec.ToNextDraw,
			flagValue(rec.Jackpot), flagValue(rec.SpecialDraw),
			rec.Note,
		})
	}

	n, err := s.pool.CopyFrom(ctx,
		pgx.Identifier{"draws"},
		[]string{
			"draw_number", "draw_city", "draw_state", "date",
			"number_1", "number_2", "number_3", "number_4", "number_5", "number_6",
			"winners_6", "winners_5", "winners_4",
			"prize_6", "prize_5", "prize_4",
			"collected_value", "next_prize", "to_next_draw",
			"jackpot", "special_draw", "note",
		},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return 0, fmt.Errorf("copying draws: %w", err)
	}
	return n, nil
}

// LoadLocations bulk-inserts winner locations via COPY.
func (s *Store) LoadLocations(ctx context.Context, locs []draw.Location) (int64, error) {
	rows := make([][]interface{}, 0, len(locs))
	for _, loc := range locs {
		rows = append(rows, []interface{}{loc.DrawNumber, loc.City, loc.State})
	}

	n, err := s.pool.CopyFrom(ctx,
		pgx.Identifier{"winners_locations"},
		[]string{"draw_number", "winner_city", "winner_state"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return 0, fmt.Errorf("copying winner locations: %w", err)
	}
	return n, nil
}

// flagValue maps an unset Flag to NULL.
func flagValue(f draw.Flag) interface{} {
	if !f.Valid {
		return nil
	}
	return f.Value
}

// DrawResult is the query service's answer for one draw.
type DrawResult struct {
	Number  int
	Date    time.Time
	Numbers [6]int
}

// GetDraw returns the date and the six numbers of a draw, or ErrNotFound.
func (s *Store) GetDraw(ctx context.Context, number int) (*DrawResult, error) {
	res := &DrawResult{Number: number}
	err := s.pool.QueryRow(ctx,
		`SELECT date, number_1, number_2, number_3, number_4, number_5, number_6
		   FROM draws
		  WHERE draw_number = $1`,
		number,
	).Scan(&res.Date,
		&res.Numbers[0], &res.Numbers[1], &res.Numbers[2],
		&res.Numbers[3], &res.Numbers[4], &res.Numbers[5],
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying draw %d: %w", number, err)
	}
	return res, nil
}

// Summary is one row of the post-load smoke query.
type Summary struct {
	Number   int
	Date     time.Time
	Winners6 int
	Winners5 int
	Winners4 int
}

// LastDraws returns the most recent n draws in ascending order.
func (s *Store) LastDraws(ctx context.Context, n int) ([]Summary, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT draw_number, date, winners_6, winners_5, winners_4 FROM (
			SELECT draw_number, date, winners_6, winners_5, winners_4
			  FROM draws
			 ORDER BY draw_number DESC LIMIT $1
		 ) sub
		 ORDER BY draw_number ASC`,
		n,
	)
	if err != nil {
		return nil, fmt.Errorf("querying last draws: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sm Summary
		if err := rows.Scan(&sm.Number, &sm.Date, &sm.Winners6, &sm.Winners5, &sm.Winners4); err != nil {
			return nil, fmt.Errorf("scanning summary row: %w", err)
		}
		out = append(out, sm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading last draws: %w", err)
	}
	return out, nil
}
