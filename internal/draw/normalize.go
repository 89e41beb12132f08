package draw

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ofarias/mega-history/internal/logger"
)

// Boolean tokens used by the source table.
const (
	tokenYes = "SIM"
	tokenNo  = "NAO"
)

// LocationSeparator joins multiple winner locations inside a repaired
// location cell.
const LocationSeparator = "|"

// Normalizer converts raw rows into typed records. Field anomalies
// (unrecognized boolean tokens, malformed location strings) are logged,
// counted and left unset; they never abort a run.
type Normalizer struct {
	Anomalies int
}

// Record normalizes a single row into a Record. Numeric fields that fail
// to parse return an error, since a non-numeric draw number or ball
// column means the table layout itself is broken.
func (n *Normalizer) Record(row Row) (*Record, error) {
	number, err := parseInt(row, KeyNumber)
	if err != nil {
		return nil, err
	}

	rec := &Record{Number: number, Note: row[KeyNote]}
	rec.City, rec.State = n.location(row[KeyLocation])
	rec.Date = reverseDate(row[KeyDate])

	for i, key := range [6]string{KeyNumber1, KeyNumber2, KeyNumber3, KeyNumber4, KeyNumber5, KeyNumber6} {
		if rec.Numbers[i], err = parseInt(row, key); err != nil {
			return nil, err
		}
	}

	if rec.Winners6, err = parseInt(row, KeyWinners6); err != nil {
		return nil, err
	}
	if rec.Winners5, err = parseInt(row, KeyWinners5); err != nil {
		return nil, err
	}
	if rec.Winners4, err = parseInt(row, KeyWinners4); err != nil {
		return nil, err
	}

	if rec.Prize6, err = parseMoney(row, KeyPrize6); err != nil {
		return nil, err
	}
	if rec.Prize5, err = parseMoney(row, KeyPrize5); err != nil {
		return nil, err
	}
	if rec.Prize4, err = parseMoney(row, KeyPrize4); err != nil {
		return nil, err
	}
	if rec.CollectedValue, err = parseMoney(row, KeyCollected); err != nil {
		return nil, err
	}
	if rec.NextPrize, err = parseMoney(row, KeyNextPrize); err != nil {
		return nil, err
	}
	if rec.ToNextDraw, err = parseMoney(row, KeyToNextDraw); err != nil {
		return nil, err
	}

	rec.Jackpot = n.flag(row[KeyJackpot], KeyJackpot, number)
	rec.SpecialDraw = n.flag(row[KeySpecial], KeySpecial, number)

	return rec, nil
}

// Locations expands the row's winner-location field into Location values
// tied to the row's draw number. The field is empty for draws without
// top-tier winners.
func (n *Normalizer) Locations(row Row) ([]Location, error) {
	raw := row[KeyCities]
	if raw == "" {
		return nil, nil
	}

	number, err := parseInt(row, KeyNumber)
	if err != nil {
		return nil, err
	}

	var locs []Location
	for _, entry := range strings.Split(raw, LocationSeparator) {
		city, state := n.location(entry)
		locs = append(locs, Location{DrawNumber: number, City: city, State: state})
	}
	return locs, nil
}

// location splits a "CITY, ST" string after applying registered
// corrections. A single part is a bare state; anything beyond two parts
// is an anomaly and yields empty city and state.
func (n *Normalizer) location(s string) (city, state string) {
	s = correctLocation(s)
	parts := strings.Split(s, ", ")
	switch len(parts) {
	case 1:
		return "", parts[0]
	case 2:
		return parts[0], parts[1]
	default:
		n.Anomalies++
		logger.Warn("malformed location", logger.Fields{"location": s, "parts": len(parts)})
		return "", ""
	}
}

// flag maps the two boolean tokens to 1/0. Any other token is an anomaly
// and leaves the flag unset.
func (n *Normalizer) flag(token, field string, number int) Flag {
	switch token {
	case tokenYes:
		return Flag{Value: 1, Valid: true}
	case tokenNo:
		return Flag{Value: 0, Valid: true}
	default:
		n.Anomalies++
		logger.Warn("unrecognized boolean token", logger.Fields{
			"field": field,
			"token": token,
			"draw":  number,
		})
		return Flag{}
	}
}

// reverseDate flips day/month/year into year/month/day.
func reverseDate(date string) string {
	parts := strings.Split(date, "/")
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "/")
}

func parseInt(row Row, key string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(row[key]))
	if err != nil {
		return 0, fmt.Errorf("parsing %q value %q: %w", key, row[key], err)
	}
	return v, nil
}

// parseMoney converts the source's currency format, which uses "." as
// the thousands separator and "," as the decimal separator.
func parseMoney(row Row, key string) (float64, error) {
	s := strings.ReplaceAll(row[key], ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %q value %q: %w", key, row[key], err)
	}
	return v, nil
}
