package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ofarias/mega-history/internal/logger"
	"github.com/ofarias/mega-history/internal/scraper"
)

// Artifact suffixes appended to the run's base name.
const (
	SuffixSnapshot  = ".html"
	SuffixJSON      = ".json"
	SuffixCSV       = ".csv"
	SuffixDraws     = "_draws_table_load.csv"
	SuffixLocations = "_winloc_table_load.csv"
)

// Writer stages a run's artifacts into an output directory under a
// timestamp-derived base name (ms_YYMMDD_HHMMSS).
type Writer struct {
	dir  string
	base string
}

// New creates a Writer rooted at dir, creating the directory if needed.
func New(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &Writer{
		dir:  dir,
		base: time.Now().Format("ms_060102_150405"),
	}, nil
}

// Base returns the run's artifact base name.
func (w *Writer) Base() string { return w.base }

// Path returns the artifact path for a given suffix.
func (w *Writer) Path(suffix string) string {
	return filepath.Join(w.dir, w.base+suffix)
}

// write stages data into a temporary file and renames it into place, then
// reports the artifact's byte size.
func (w *Writer) write(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("staging %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("publishing %s: %w", path, err)
	}

	logger.Info("artifact written", logger.Fields{
		"path":  path,
		"bytes": len(data),
	})
	logger.SetGauge("artifact_bytes."+filepath.Base(path), float64(len(data)))
	return nil
}

// WriteSnapshot persists the raw HTML snapshot verbatim.
func (w *Writer) WriteSnapshot(data []byte) (string, error) {
	path := w.Path(SuffixSnapshot)
	return path, w.write(path, data)
}

// WriteJSON persists the archival JSON document: an ordered array of draw
// objects whose keys follow the source header order.
func (w *Writer) WriteJSON(t *scraper.Table) (string, error) {
	path := w.Path(SuffixJSON)
	data, err := encodeJSON(t)
	if err != nil {
		return "", err
	}
	return path, w.write(path, data)
}

// WriteCSV persists the archival semicolon-delimited mirror of the
// parsed rows.
func (w *Writer) WriteCSV(t *scraper.Table) (string, error) {
	path := w.Path(SuffixCSV)
	return path, w.write(path, []byte(t.Delimited()))
}

// encodeJSON renders the table as indented JSON, keeping each object's
// keys in header order. encoding/json alone cannot do this for maps, so
// objects are assembled key by key.
func encodeJSON(t *scraper.Table) ([]byte, error) {
	if len(t.Rows) == 0 {
		return []byte("[]\n"), nil
	}

	var buf bytes.Buffer
	buf.WriteString("[\n")
	for i, row := range t.Rows {
		if i > 0 {
			buf.WriteString(",\n")
		}
		buf.WriteString("  {\n")
		for j, field := range t.Fields {
			if j > 0 {
				buf.WriteString(",\n")
			}
			buf.WriteString("    ")
			if err := writeJSONString(&buf, field); err != nil {
				return nil, err
			}
			buf.WriteString(": ")
			if err := writeJSONString(&buf, row[field]); err != nil {
				return nil, err
			}
		}
		buf.WriteString("\n  }")
	}
	buf.WriteString("\n]\n")
	return buf.Bytes(), nil
}

// writeJSONString encodes s without HTML escaping, keeping accented
// source text readable in the archive.
func writeJSONString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encoding JSON string: %w", err)
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}
