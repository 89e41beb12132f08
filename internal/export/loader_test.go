package export

import (
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/ofarias/mega-history/internal/draw"
)

func testRecords() []*draw.Record {
	return []*draw.Record{
		{
			Number:         1,
			City:           "SÃO PAULO",
			State:          "SP",
			Date:           "1996/03/11",
			Numbers:        [6]int{41, 5, 4, 52, 30, 33},
			Winners5:       17,
			Winners4:       2016,
			Prize5:         39158.92,
			Prize4:         330.21,
			NextPrize:      1714650.23,
			ToNextDraw:     1714650.23,
			Jackpot:        draw.Flag{Value: 1, Valid: true},
			SpecialDraw:    draw.Flag{Value: 0, Valid: true},
			CollectedValue: 0,
		},
		{
			Number:         2,
			City:           "SÃO PAULO",
			State:          "SP",
			Date:           "1996/03/18",
			Numbers:        [6]int{9, 39, 37, 49, 43, 41},
			Winners6:       2,
			Winners5:       65,
			Winners4:       4158,
			Prize6:         657165.44,
			Prize5:         5245.41,
			Prize4:         81.98,
			CollectedValue: 2803662.20,
			Jackpot:        draw.Flag{Value: 0, Valid: true},
			SpecialDraw:    draw.Flag{}, // anomaly: exported empty
			Note:           "observação; com separador",
		},
	}
}

func TestLoaderDrawsRoundTrip(t *testing.T) {
	w, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	records := testRecords()
	path, err := w.WriteLoaderDraws(records)
	if err != nil {
		t.Fatalf("WriteLoaderDraws failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	got, err := ReadLoaderDraws(f)
	if err != nil {
		t.Fatalf("ReadLoaderDraws failed: %v", err)
	}
	if len(got) != len(records) {
		t.Fatalf("round-trip returned %d records, want %d", len(got), len(records))
	}
	for i := range records {
		if !reflect.DeepEqual(got[i], records[i]) {
			t.Errorf("record %d round-trip mismatch:\n got %+v\nwant %+v", i, got[i], records[i])
		}
	}
}

func TestLoaderDrawsHeader(t *testing.T) {
	w, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	path, err := w.WriteLoaderDraws(testRecords())
	if err != nil {
		t.Fatalf("WriteLoaderDraws failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	first := strings.SplitN(string(data), "\n", 2)[0]
	want := strings.Join(DrawsHeader, ";")
	if first != want {
		t.Errorf("header = %q, want %q", first, want)
	}
}

func TestLoaderLocationsRoundTrip(t *testing.T) {
	w, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	locs := []draw.Location{
		{DrawNumber: 2, City: "SALVADOR", State: "BA"},
		{DrawNumber: 2, City: "BRASÍLIA", State: "DF"},
		{DrawNumber: 3, City: "SANTOS", State: "SP"},
	}

	path, err := w.WriteLoaderLocations(locs)
	if err != nil {
		t.Fatalf("WriteLoaderLocations failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	got, err := ReadLoaderLocations(f)
	if err != nil {
		t.Fatalf("ReadLoaderLocations failed: %v", err)
	}
	if !reflect.DeepEqual(got, locs) {
		t.Errorf("round-trip mismatch:\n got %+v\nwant %+v", got, locs)
	}
}

func TestReadLoaderDrawsMissingHeader(t *testing.T) {
	_, err := ReadLoaderDraws(strings.NewReader(""))
	if err == nil {
		t.Fatal("expected error for empty file")
	}
}
