// garminreport fetches activities from Garmin Connect and writes an
// XLSX summary report, optionally on a schedule.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mgriffiths/gpsreport/internal/analysis"
	"github.com/mgriffiths/gpsreport/internal/cache"
	"github.com/mgriffiths/gpsreport/internal/config"
	"github.com/mgriffiths/gpsreport/internal/garmin"
	"github.com/mgriffiths/gpsreport/internal/report"
	"github.com/mgriffiths/gpsreport/internal/sync"
)

const dateLayout = "2006-01-02"

func main() {
	var (
		output     = flag.String("o", "garmin-report.xlsx", "Output XLSX file")
		limit      = flag.Int("limit", 20, "Maximum number of activities to fetch")
		actType    = flag.String("type", "", "Activity type filter: rowing, cycling or running")
		minKm      = flag.Float64("min-km", 0, "Minimum distance in km (inclusive)")
		maxKm      = flag.Float64("max-km", 0, "Maximum distance in km (inclusive)")
		fromDate   = flag.String("from", "", "Earliest activity date (YYYY-MM-DD, inclusive)")
		toDate     = flag.String("to", "", "Latest activity date (YYYY-MM-DD, inclusive)")
		every      = flag.String("every", "", "Cron schedule for periodic regeneration (e.g. '@hourly')")
		stillSpeed = flag.Float64("still-speed", 0, "Stillness threshold in m/s (default from STILL_SPEED env)")
		verbose    = flag.Bool("v", false, "Verbose logging")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "garminreport - summarize Garmin Connect activities into a spreadsheet\n\n")
		fmt.Fprintf(os.Stderr, "usage: garminreport [options]\n")
		fmt.Fprintf(os.Stderr, "       garminreport -limit 50 -type rowing -min-km 5 -max-km 10 -o rows.xlsx\n\n")
		fmt.Fprintf(os.Stderr, "credentials come from GARMIN_EMAIL / GARMIN_PASSWORD (or a .env file)\n\n")
		fmt.Fprintf(os.Stderr, "options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	crit := garmin.Criteria{
		ActivityType: *actType,
		MinKm:        *minKm,
		MaxKm:        *maxKm,
	}
	var err error
	if crit.From, err = parseDateFlag(*fromDate); err != nil {
		fatal("invalid -from: %v", err)
	}
	if crit.To, err = parseDateFlag(*toDate); err != nil {
		fatal("invalid -to: %v", err)
	}
	if err := crit.Validate(); err != nil {
		fatal("invalid filter: %v", err)
	}

	cfg := config.Load()
	if cfg.GarminEmail == "" || cfg.GarminPassword == "" {
		fatal("GARMIN_EMAIL and GARMIN_PASSWORD must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := garmin.NewClient(cfg.GarminBaseURL)
	if err := client.Login(ctx, cfg.GarminEmail, cfg.GarminPassword); err != nil {
		if errors.Is(err, garmin.ErrAuthentication) {
			fatal("Garmin rejected the credentials")
		}
		fatal("login failed: %v", err)
	}

	c, err := cache.Open(cfg.CachePath)
	if err != nil {
		// A broken cache should not block report generation.
		log.Warn("cache unavailable, downloads will not be reused", "error", err)
		c = nil
	} else {
		defer c.Close()
	}

	svc := sync.New(client, c, cfg.DataDir, analysisOptions(cfg, *stillSpeed), log)

	run := func() error {
		start := time.Now()
		rows, err := svc.Fetch(ctx, *limit, crit)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			log.Warn("no activities matched the filter; writing empty report")
		}
		if err := report.Write(*output, rows); err != nil {
			return err
		}
		log.Info("report written", "path", *output, "activities", len(rows), "took", time.Since(start).Round(time.Millisecond))
		return nil
	}

	if *every == "" {
		if err := run(); err != nil {
			fatal("%v", err)
		}
		return
	}

	// Scheduled mode: regenerate until interrupted.
	sched := cron.New()
	if _, err := sched.AddFunc(*every, func() {
		if err := run(); err != nil {
			log.Error("scheduled run failed", "error", err)
		}
	}); err != nil {
		fatal("invalid -every schedule: %v", err)
	}

	if err := run(); err != nil {
		fatal("%v", err)
	}
	sched.Start()
	log.Info("scheduler started", "schedule", *every)

	<-ctx.Done()
	log.Info("shutting down")
	schedCtx := sched.Stop()
	<-schedCtx.Done()
}

// analysisOptions applies a -still-speed override on top of the
// configured threshold.
func analysisOptions(cfg config.Config, override float64) analysis.Options {
	opts := analysis.Options{StillSpeed: cfg.StillSpeed}
	if override > 0 {
		opts.StillSpeed = override
	}
	return opts
}

func parseDateFlag(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, s)
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
