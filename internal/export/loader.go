package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/ofarias/mega-history/internal/draw"
)

// Column order expected by the bulk loader's ingestion schema. The loader
// skips the header row and maps columns by position.
var (
	DrawsHeader = []string{
		"draw_number", "draw_city", "draw_state", "date",
		"number_1", "number_2", "number_3", "number_4", "number_5", "number_6",
		"winners_6", "winners_5", "winners_4",
		"prize_6", "prize_5", "prize_4",
		"collected_value", "next_prize", "to_next_draw",
		"jackpot", "special_draw", "note",
	}

	LocationsHeader = []string{"draw_number", "winner_city", "winner_state"}
)

// WriteLoaderDraws persists the loader-ready draws file.
func (w *Writer) WriteLoaderDraws(records []*draw.Record) (string, error) {
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, DrawsHeader)
	for _, rec := range records {
		rows = append(rows, encodeDraw(rec))
	}

	data, err := marshalDelimited(rows)
	if err != nil {
		return "", err
	}
	path := w.Path(SuffixDraws)
	return path, w.write(path, data)
}

// WriteLoaderLocations persists the loader-ready winner-locations file.
func (w *Writer) WriteLoaderLocations(locs []draw.Location) (string, error) {
	rows := make([][]string, 0, len(locs)+1)
	rows = append(rows, LocationsHeader)
	for _, loc := range locs {
		rows = append(rows, []string{strconv.Itoa(loc.DrawNumber), loc.City, loc.State})
	}

	data, err := marshalDelimited(rows)
	if err != nil {
		return "", err
	}
	path := w.Path(SuffixLocations)
	return path, w.write(path, data)
}

// ReadLoaderDraws parses a loader-ready draws file back into records.
// Used by the bulk loader and by round-trip tests.
func ReadLoaderDraws(r io.Reader) ([]*draw.Record, error) {
	rows, err := readDelimited(r, len(DrawsHeader))
	if err != nil {
		return nil, err
	}

	records := make([]*draw.Record, 0, len(rows))
	for i, row := range rows {
		rec, err := decodeDraw(row)
		if err != nil {
			return nil, fmt.Errorf("draws row %d: %w", i+1, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// ReadLoaderLocations parses a loader-ready winner-locations file.
func ReadLoaderLocations(r io.Reader) ([]draw.Location, error) {
	rows, err := readDelimited(r, len(LocationsHeader))
	if err != nil {
		return nil, err
	}

	locs := make([]draw.Location, 0, len(rows))
	for i, row := range rows {
		number, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("locations row %d: %w", i+1, err)
		}
		locs = append(locs, draw.Location{DrawNumber: number, City: row[1], State: row[2]})
	}
	return locs, nil
}

func encodeDraw(rec *draw.Record) []string {
	row := make([]string, 0, len(DrawsHeader))
	row = append(row,
		strconv.Itoa(rec.Number),
		rec.City,
		rec.State,
		rec.Date,
	)
	for _, n := range rec.Numbers {
		row = append(row, strconv.Itoa(n))
	}
	row = append(row,
		strconv.Itoa(rec.Winners6),
		strconv.Itoa(rec.Winners5),
		strconv.Itoa(rec.Winners4),
		formatMoney(rec.Prize6),
		formatMoney(rec.Prize5),
		formatMoney(rec.Prize4),
		formatMoney(rec.CollectedValue),
		formatMoney(rec.NextPrize),
		formatMoney(rec.ToNextDraw),
		rec.Jackpot.String(),
		rec.SpecialDraw.String(),
		rec.Note,
	)
	return row
}

func decodeDraw(row []string) (*draw.Record, error) {
	rec := &draw.Record{
		City:  row[1],
		State: row[2],
		Date:  row[3],
		Note:  row[21],
	}

	var err error
	if rec.Number, err = strconv.Atoi(row[0]); err != nil {
		return nil, fmt.Errorf("draw_number: %w", err)
	}
	for i := 0; i < 6; i++ {
		if rec.Numbers[i], err = strconv.Atoi(row[4+i]); err != nil {
			return nil, fmt.Errorf("number_%d: %w", i+1, err)
		}
	}
	if rec.Winners6, err = strconv.Atoi(row[10]); err != nil {
		return nil, fmt.Errorf("winners_6: %w", err)
	}
	if rec.Winners5, err = strconv.Atoi(row[11]); err != nil {
		return nil, fmt.Errorf("winners_5: %w", err)
	}
	if rec.Winners4, err = strconv.Atoi(row[12]); err != nil {
		return nil, fmt.Errorf("winners_4: %w", err)
	}
	if rec.Prize6, err = strconv.ParseFloat(row[13], 64); err != nil {
		return nil, fmt.Errorf("prize_6: %w", err)
	}
	if rec.Prize5, err = strconv.ParseFloat(row[14], 64); err != nil {
		return nil, fmt.Errorf("prize_5: %w", err)
	}
	if rec.Prize4, err = strconv.ParseFloat(row[15], 64); err != nil {
		return nil, fmt.Errorf("prize_4: %w", err)
	}
	if rec.CollectedValue, err = strconv.ParseFloat(row[16], 64); err != nil {
		return nil, fmt.Errorf("collected_value: %w", err)
	}
	if rec.NextPrize, err = strconv.ParseFloat(row[17], 64); err != nil {
		return nil, fmt.Errorf("next_prize: %w", err)
	}
	if rec.ToNextDraw, err = strconv.ParseFloat(row[18], 64); err != nil {
		return nil, fmt.Errorf("to_next_draw: %w", err)
	}
	if rec.Jackpot, err = decodeFlag(row[19]); err != nil {
		return nil, fmt.Errorf("jackpot: %w", err)
	}
	if rec.SpecialDraw, err = decodeFlag(row[20]); err != nil {
		return nil, fmt.Errorf("special_draw: %w", err)
	}

	return rec, nil
}

func decodeFlag(s string) (draw.Flag, error) {
	if s == "" {
		return draw.Flag{}, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return draw.Flag{}, err
	}
	return draw.Flag{Value: v, Valid: true}, nil
}

// formatMoney renders a normalized currency value with "." as the
// decimal separator and no thousands grouping.
func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func marshalDelimited(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	cw.Comma = ';'
	if err := cw.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("encoding delimited rows: %w", err)
	}
	return buf.Bytes(), nil
}

// readDelimited reads a loader file, validates the column count and
// skips the header row.
func readDelimited(r io.Reader, columns int) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = columns

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading delimited rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("missing header row")
	}
	return rows[1:], nil
}
