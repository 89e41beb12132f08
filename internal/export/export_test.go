package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ofarias/mega-history/internal/draw"
	"github.com/ofarias/mega-history/internal/scraper"
)

func testTable() *scraper.Table {
	return &scraper.Table{
		Fields: []string{draw.KeyNumber, draw.KeyDate, draw.KeyNote},
		Rows: []draw.Row{
			{draw.KeyNumber: "1", draw.KeyDate: "11/03/1996", draw.KeyNote: ""},
			{draw.KeyNumber: "2", draw.KeyDate: "18/03/1996", draw.KeyNote: "Observação especial"},
		},
	}
}

func TestWriteSnapshot(t *testing.T) {
	w, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	snapshot := []byte("<html><body>raw</body></html>")
	path, err := w.WriteSnapshot(snapshot)
	if err != nil {
		t.Fatalf("WriteSnapshot failed: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading snapshot: %v", err)
	}
	if string(got) != string(snapshot) {
		t.Error("snapshot not written verbatim")
	}
	if !strings.HasSuffix(path, SuffixSnapshot) {
		t.Errorf("unexpected path %q", path)
	}
	if !strings.HasPrefix(filepath.Base(path), "ms_") {
		t.Errorf("base name %q should start with ms_", filepath.Base(path))
	}
}

func TestWriteJSONPreservesOrder(t *testing.T) {
	w, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	path, err := w.WriteJSON(testTable())
	if err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading JSON artifact: %v", err)
	}

	var decoded []map[string]string
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("artifact is not valid JSON: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("expected 2 objects, got %d", len(decoded))
	}
	if decoded[1][draw.KeyNote] != "Observação especial" {
		t.Errorf("note = %q", decoded[1][draw.KeyNote])
	}

	// Keys must appear in source header order
	text := string(data)
	if strings.Index(text, draw.KeyNumber) > strings.Index(text, draw.KeyDate) {
		t.Error("field order not preserved in JSON output")
	}
	if strings.Contains(text, "\\u") {
		t.Error("accented text should not be escaped")
	}
}

func TestWriteCSV(t *testing.T) {
	w, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	path, err := w.WriteCSV(testTable())
	if err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading CSV artifact: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != draw.KeyNumber+";"+draw.KeyDate+";"+draw.KeyNote {
		t.Errorf("unexpected header: %q", lines[0])
	}
}

func TestNoStagingFilesLeftBehind(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := w.WriteSnapshot([]byte("x")); err != nil {
		t.Fatalf("WriteSnapshot failed: %v", err)
	}
	if _, err := w.WriteJSON(testTable()); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("staging file left behind: %s", e.Name())
		}
	}
}
