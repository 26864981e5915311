// Package report writes per-activity summaries to an XLSX workbook.
package report

import (
	"fmt"
	"math"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mgriffiths/gpsreport/internal/analysis"
)

const (
	activitiesSheet = "activities"
	effortsSheet    = "best_efforts"
)

// Row is one activity's worth of report data.
type Row struct {
	Summary analysis.Summary
	Efforts []analysis.Effort
}

var activityHeader = []any{
	"activity", "start time", "distance (km)", "duration", "moving time",
	"elevation gain (m)", "elevation loss (m)", "avg speed (km/h)", "pace (/km)",
}

var effortHeader = []any{"activity", "length", "time", "split (/500m)"}

// Write creates the workbook at path with one activities row per input
// row, in input order, plus a best-efforts sheet. An empty input yields
// header-only sheets.
func Write(path string, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", activitiesSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(effortsSheet); err != nil {
		return err
	}

	sw := sheetWriter{f: f, sheet: activitiesSheet}
	sw.row(1, activityHeader)
	for i, r := range rows {
		s := r.Summary
		sw.row(i+2, []any{
			s.Name,
			formatStart(s.StartTime),
			round2(s.Distance / 1000),
			formatDuration(s.Duration),
			formatDuration(s.MovingTime),
			round2(s.ElevationGain),
			round2(s.ElevationLoss),
			round2(s.AvgSpeed * 3.6),
			formatPace(s.AvgSpeed),
		})
	}

	ew := sheetWriter{f: f, sheet: effortsSheet}
	ew.row(1, effortHeader)
	n := 2
	for _, r := range rows {
		for _, e := range r.Efforts {
			ew.row(n, []any{
				r.Summary.Name,
				e.Label,
				formatDuration(e.Time),
				formatDuration(e.Split),
			})
			n++
		}
	}

	if err := firstErr(sw.err, ew.err); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}

type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func (w *sheetWriter) row(n int, values []any) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetSheetRow(w.sheet, cell, &values)
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func formatStart(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

// formatPace renders m/s as min:sec per kilometer, empty when stationary.
func formatPace(metersPerSecond float64) string {
	if metersPerSecond <= 0 {
		return ""
	}
	secPerKm := 1000 / metersPerSecond
	d := time.Duration(secPerKm * float64(time.Second)).Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
