package scraper

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ofarias/mega-history/internal/draw"
	"github.com/ofarias/mega-history/internal/logger"
)

// ParseError reports missing or malformed table structure in the
// snapshot. It is fatal: an unparseable page must not be mistaken for an
// empty history.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "parsing history table: " + e.Reason
}

// Table is the parsed history table. Fields holds the header labels in
// source order; Rows holds the data rows oldest-first. Dropped counts
// data rows discarded because their cell count still mismatched the
// header after repair.
type Table struct {
	Fields  []string
	Rows    []draw.Row
	Dropped int
}

// ParseTable extracts the single history table from the snapshot. Rows
// carrying layout attributes are skipped; rows with inline winner-location
// sub-entries are repaired before emission.
func ParseTable(r io.Reader) (*Table, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, &ParseError{Reason: err.Error()}
	}

	sel := doc.Find("table").First()
	if sel.Length() == 0 {
		return nil, &ParseError{Reason: "no table found"}
	}

	t := &Table{}
	sel.Find("th").Each(func(_ int, th *goquery.Selection) {
		t.Fields = append(t.Fields, strings.TrimSpace(th.Text()))
	})
	if len(t.Fields) == 0 {
		return nil, &ParseError{Reason: "table has no header cells"}
	}

	// Column offsets are resolved from the header once per run rather
	// than hardcoded, so a reordered source column shifts the repair
	// window with it.
	locIdx := -1
	for i, f := range t.Fields {
		if f == draw.KeyCities {
			locIdx = i
			break
		}
	}

	sel.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		// Rows with layout attributes are spacer/decoration rows.
		if node := tr.Get(0); len(node.Attr) > 0 {
			return
		}

		var cells []string
		tr.Find("td").Each(func(_ int, td *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(td.Text()))
		})
		if len(cells) == 0 {
			return
		}

		if len(cells) > len(t.Fields) && locIdx >= 0 {
			cells = repairRow(cells, locIdx)
		}

		if len(cells) != len(t.Fields) {
			t.Dropped++
			logger.Warn("dropping row with unexpected cell count", logger.Fields{
				"cells":  len(cells),
				"fields": len(t.Fields),
				"first":  cells[0],
			})
			return
		}

		row := make(draw.Row, len(t.Fields))
		for i, field := range t.Fields {
			row[field] = strings.ReplaceAll(cells[i], "\n", "")
		}
		t.Rows = append(t.Rows, row)
	})

	return t, nil
}

// repairRow collapses a multi-winner row back to the header's width. A
// draw with n top-tier winners repeats 2·n cells after the location
// column; those are removed and the location cell is rewritten so that
// entries are joined by the location separator and each entry's city and
// state by a comma.
func repairRow(cells []string, locIdx int) []string {
	entries := strings.Split(cells[locIdx], "\n\n")

	start := locIdx + 1
	end := start + 2*len(entries)
	if end > len(cells) {
		end = len(cells)
	}
	repaired := make([]string, 0, len(cells)-(end-start))
	repaired = append(repaired, cells[:start]...)
	repaired = append(repaired, cells[end:]...)

	loc := cells[locIdx]
	loc = strings.ReplaceAll(loc, "\n\n", draw.LocationSeparator)
	loc = strings.ReplaceAll(loc, "\n", ", ")
	loc = strings.ReplaceAll(loc, " , ", ", ")
	repaired[locIdx] = loc

	return repaired
}

// Delimited returns the table as semicolon-separated text: the header
// line followed by one line per row, newline-terminated. This is the
// archival flat mirror of the parsed rows.
func (t *Table) Delimited() string {
	var b strings.Builder
	b.WriteString(strings.Join(t.Fields, ";"))
	b.WriteByte('\n')
	for _, row := range t.Rows {
		for i, field := range t.Fields {
			if i > 0 {
				b.WriteByte(';')
			}
			b.WriteString(row[field])
		}
		b.WriteByte('\n')
	}
	return b.String()
}
