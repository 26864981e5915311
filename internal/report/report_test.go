package report

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mgriffiths/gpsreport/internal/analysis"
)

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	rows := []Row{
		{
			Summary: analysis.Summary{
				Name:          "Morning Row",
				StartTime:     time.Date(2024, 5, 12, 8, 0, 0, 0, time.UTC),
				Distance:      12000,
				Duration:      time.Hour,
				MovingTime:    55 * time.Minute,
				ElevationGain: 5,
				ElevationLoss: 5,
				AvgSpeed:      12000 / (55 * 60.0),
			},
			Efforts: []analysis.Effort{
				{Label: "500m", Distance: 500, Time: 110 * time.Second, Split: 110 * time.Second},
				{Label: "1km", Distance: 1000, Time: 225 * time.Second, Split: 112*time.Second + 500*time.Millisecond},
			},
		},
		{
			Summary: analysis.Summary{Name: "stationary"},
		},
	}

	if err := Write(path, rows); err != nil {
		t.Fatalf("Write: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	get := func(sheet, cell string) string {
		t.Helper()
		v, err := f.GetCellValue(sheet, cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s!%s): %v", sheet, cell, err)
		}
		return v
	}

	if got := get("activities", "A1"); got != "activity" {
		t.Errorf("A1 = %q", got)
	}
	if got := get("activities", "A2"); got != "Morning Row" {
		t.Errorf("A2 = %q", got)
	}
	if got := get("activities", "C2"); got != "12" {
		t.Errorf("distance C2 = %q, want 12", got)
	}
	if got := get("activities", "D2"); got != "1:00:00" {
		t.Errorf("duration D2 = %q, want 1:00:00", got)
	}
	// Zeroed activity: empty pace, not a division error.
	if got := get("activities", "I3"); got != "" {
		t.Errorf("pace I3 = %q, want empty", got)
	}

	if got := get("best_efforts", "B2"); got != "500m" {
		t.Errorf("best_efforts B2 = %q", got)
	}
	if got := get("best_efforts", "C3"); got != "0:03:45" {
		t.Errorf("best_efforts C3 = %q, want 0:03:45", got)
	}
}

func TestWriteEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	if err := Write(path, nil); err != nil {
		t.Fatalf("Write: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("activities")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Errorf("got %d rows, want header only", len(rows))
	}
}

func TestFormatPace(t *testing.T) {
	tests := []struct {
		speed float64
		want  string
	}{
		{0, ""},
		{1000 / 300.0, "5:00"}, // 5 min/km
		{2.5, "6:40"},
	}
	for _, tt := range tests {
		if got := formatPace(tt.speed); got != tt.want {
			t.Errorf("formatPace(%v) = %q, want %q", tt.speed, got, tt.want)
		}
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.234, 1.23},
		{1.125, 1.13},
		{-1.125, -1.13},
		{-12.3456, -12.35},
		{1e10 + 0.456, 1e10 + 0.46},
		{0, 0},
	}
	for _, tt := range tests {
		if got := round2(tt.in); got != tt.want {
			t.Errorf("round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
