// Package sync fetches remote activities, runs the metrics computation
// and assembles report rows.
package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/mgriffiths/gpsreport/internal/analysis"
	"github.com/mgriffiths/gpsreport/internal/cache"
	"github.com/mgriffiths/gpsreport/internal/garmin"
	"github.com/mgriffiths/gpsreport/internal/parser"
	"github.com/mgriffiths/gpsreport/internal/report"
)

// downloadWorkers bounds concurrent downloads against the remote API.
const downloadWorkers = 4

type Service struct {
	client  *garmin.Client
	cache   *cache.Cache
	dataDir string
	opts    analysis.Options
	log     *slog.Logger
}

// New wires a fetch pipeline. The cache may be nil, in which case every
// run downloads afresh.
func New(client *garmin.Client, c *cache.Cache, dataDir string, opts analysis.Options, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{client: client, cache: c, dataDir: dataDir, opts: opts, log: log}
}

// Fetch lists up to limit activities matching the criteria, downloads
// and analyzes each, and returns report rows in listing order. Failures
// on individual activities are logged and skipped; the error return is
// reserved for failures that sink the whole batch.
func (s *Service) Fetch(ctx context.Context, limit int, crit garmin.Criteria) ([]report.Row, error) {
	activities, err := s.client.ListActivities(ctx, limit, crit)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	// The server pre-filters where it can; apply the criteria locally as
	// well so unsupported parameters still hold.
	activities = crit.Filter(activities)
	s.log.Info("activities matched", "count", len(activities))

	rows := make([]*report.Row, len(activities))
	sem := make(chan struct{}, downloadWorkers)
	var wg sync.WaitGroup
	for i, a := range activities {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			row, err := s.fetchOne(ctx, a)
			if err != nil {
				s.log.Warn("skipping activity",
					"activityId", a.ActivityID,
					"name", a.ActivityName,
					"error", err)
				return
			}
			rows[i] = row
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]report.Row, 0, len(rows))
	for _, r := range rows {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *Service) fetchOne(ctx context.Context, a garmin.Activity) (*report.Row, error) {
	data, err := s.activityData(ctx, a)
	if err != nil {
		return nil, err
	}

	t, err := (&parser.GPXParser{}).Parse(data)
	if err != nil {
		return nil, err
	}
	if a.ActivityName != "" {
		t.Name = a.ActivityName
	}

	return &report.Row{
		Summary: analysis.Summarize(t, s.opts),
		Efforts: analysis.BestEfforts(t, nil),
	}, nil
}

// activityData returns the GPX bytes for an activity, from the local
// cache when possible, downloading and recording otherwise.
func (s *Service) activityData(ctx context.Context, a garmin.Activity) ([]byte, error) {
	if s.cache != nil {
		if entry, err := s.cache.Get(a.ActivityID); err == nil {
			if data, err := os.ReadFile(entry.Path); err == nil {
				s.log.Debug("cache hit", "activityId", a.ActivityID)
				return data, nil
			}
			// Cached file vanished; fall through to a fresh download.
		} else if !errors.Is(err, cache.ErrMiss) {
			return nil, err
		}
	}

	data, err := s.client.DownloadGPX(ctx, a.ActivityID)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}

	path := filepath.Join(s.dataDir, "activities", fmt.Sprintf("%d.gpx", a.ActivityID))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, err
	}

	if s.cache != nil {
		err := s.cache.Put(&cache.Entry{
			ActivityID:   a.ActivityID,
			ActivityName: a.ActivityName,
			ActivityType: a.ActivityType.TypeKey,
			StartTime:    a.StartTime(),
			Distance:     a.Distance,
			Path:         path,
		})
		if err != nil {
			s.log.Warn("cache update failed", "activityId", a.ActivityID, "error", err)
		}
	}
	return data, nil
}
