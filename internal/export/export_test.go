package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sadopc/apptime/internal/series"
)

func sampleData() []series.TimeApp {
	day := time.Date(2024, time.June, 30, 0, 0, 0, 0, time.Local)
	return []series.TimeApp{
		{App: "editor", Date: day, Minutes: 95},
		{App: "editor", Date: day.AddDate(0, 0, -1), Minutes: 0},
		{App: "editor", Date: day.AddDate(0, 0, -2), Minutes: 40},
	}
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.csv")

	if err := ToCSV(sampleData(), path); err != nil {
		t.Fatalf("ToCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	// header + 3 data rows
	if len(records) != 4 {
		t.Fatalf("expected 4 rows (1 header + 3 data), got %d", len(records))
	}

	expectedHeader := []string{"Date", "App", "Minutes", "Duration"}
	for i, h := range expectedHeader {
		if records[0][i] != h {
			t.Fatalf("header[%d] = %q, want %q", i, records[0][i], h)
		}
	}

	row := records[1]
	if row[0] != "2024-06-30" || row[1] != "editor" || row[2] != "95" || row[3] != "1h35" {
		t.Fatalf("first row = %v", row)
	}
	if records[2][3] != "0m" {
		t.Fatalf("zero day duration = %q", records[2][3])
	}
}

func TestToCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatal(err)
	}
	records, _ := csv.NewReader(&buf).ReadAll()
	if len(records) != 1 {
		t.Fatalf("expected 1 row (header only), got %d", len(records))
	}
}

func TestToCSVBadPath(t *testing.T) {
	if err := ToCSV(nil, "/nonexistent/dir/file.csv"); err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestToCSVSpecialCharacters(t *testing.T) {
	values := []series.TimeApp{{App: `we"ird, app`, Date: time.Now(), Minutes: 1}}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, values); err != nil {
		t.Fatal(err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("CSV should be valid even with special chars: %v", err)
	}
	if records[1][1] != `we"ird, app` {
		t.Fatalf("app name mangled: %q", records[1][1])
	}
}

// ============================================================
// JSON
// ============================================================

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	at := time.Date(2024, time.June, 30, 12, 0, 0, 0, time.UTC)

	if err := WriteJSON(&buf, sampleData(), at); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var result jsonExport
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if result.ExportedAt != "2024-06-30T12:00:00Z" {
		t.Fatalf("exported_at = %q", result.ExportedAt)
	}
	if result.Count != 3 || len(result.Values) != 3 {
		t.Fatalf("count = %d, values = %d", result.Count, len(result.Values))
	}

	want := jsonStats{MaxMinutes: 95, MinMinutes: 0, SumMinutes: 135, MeanMinutes: 45}
	if result.Stats != want {
		t.Fatalf("stats = %+v, want %+v", result.Stats, want)
	}

	v := result.Values[0]
	if v.Date != "2024-06-30" || v.App != "editor" || v.Minutes != 95 || v.Duration != "1h35" {
		t.Fatalf("first value = %+v", v)
	}
}

func TestToJSONEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")

	if err := ToJSON(nil, path); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	var result jsonExport
	json.Unmarshal(data, &result)

	if result.Count != 0 {
		t.Fatalf("count = %d, want 0", result.Count)
	}
	if !strings.Contains(string(data), `"values": []`) {
		t.Fatalf("empty export should carry an empty list:\n%s", data)
	}
}

func TestToJSONBadPath(t *testing.T) {
	if err := ToJSON(nil, "/nonexistent/dir/file.json"); err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestToJSONPrettyPrinted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pretty.json")
	ToJSON(sampleData(), path)

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "\n  ") {
		t.Fatal("JSON should be indented with spaces")
	}
}
