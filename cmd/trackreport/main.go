// trackreport builds an XLSX summary report from local GPS track files.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mgriffiths/gpsreport/internal/analysis"
	"github.com/mgriffiths/gpsreport/internal/config"
	"github.com/mgriffiths/gpsreport/internal/parser"
	"github.com/mgriffiths/gpsreport/internal/report"
)

func main() {
	var (
		output     = flag.String("o", "report.xlsx", "Output XLSX file")
		stillSpeed = flag.Float64("still-speed", 0, "Stillness threshold in m/s (default from STILL_SPEED env)")
		verbose    = flag.Bool("v", false, "Verbose logging")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "trackreport - summarize GPS track files into a spreadsheet\n\n")
		fmt.Fprintf(os.Stderr, "usage: trackreport [options] file.gpx [file.fit ...]\n")
		fmt.Fprintf(os.Stderr, "       trackreport -o rides.xlsx 'activities/*.gpx'\n\n")
		fmt.Fprintf(os.Stderr, "options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	cfg := config.Load()
	opts := analysis.Options{StillSpeed: cfg.StillSpeed}
	if *stillSpeed > 0 {
		opts.StillSpeed = *stillSpeed
	}

	paths, unmatched, err := expandPatterns(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	// Arguments that matched nothing are never dropped silently: each is
	// reported, and a batch with no inputs at all is fatal.
	for _, arg := range unmatched {
		log.Warn("no files match", "pattern", arg)
	}
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no input files matched")
		os.Exit(1)
	}

	var rows []report.Row
	for _, path := range paths {
		t, err := parser.ParseFile(path)
		if err != nil {
			log.Warn("skipping file", "path", path, "error", err)
			continue
		}
		rows = append(rows, report.Row{
			Summary: analysis.Summarize(t, opts),
			Efforts: analysis.BestEfforts(t, nil),
		})
		log.Debug("parsed", "path", path, "points", len(t.Points))
	}

	if len(rows) == 0 {
		log.Warn("no files parsed successfully; writing empty report")
	}
	if err := report.Write(*output, rows); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log.Info("report written", "path", *output, "activities", len(rows))
}

// expandPatterns resolves arguments that may be literal paths or glob
// patterns, preserving argument order and de-duplicating. Glob matches a
// literal path only when the file exists, so any argument with zero
// matches is a missing file or an empty pattern; those come back in
// unmatched so the caller can report each one.
func expandPatterns(args []string) (paths, unmatched []string, err error) {
	seen := make(map[string]bool)
	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, nil, fmt.Errorf("bad pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			unmatched = append(unmatched, arg)
			continue
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}
	return paths, unmatched, nil
}
