// Package analysis computes per-activity summary statistics from a track.
package analysis

import (
	"time"

	"github.com/mgriffiths/gpsreport/internal/geo"
	"github.com/mgriffiths/gpsreport/internal/track"
)

// DefaultStillSpeed is the speed below which a segment counts as paused
// rather than moving, in m/s. Roughly a very slow walk; drifting on the
// water or waiting at lights sits well under it.
const DefaultStillSpeed = 0.5

// Options tune the summary computation. The zero value selects defaults.
type Options struct {
	// StillSpeed is the minimum segment speed in m/s counted as moving.
	StillSpeed float64
}

func (o Options) stillSpeed() float64 {
	if o.StillSpeed > 0 {
		return o.StillSpeed
	}
	return DefaultStillSpeed
}

// Summary holds the derived statistics for one activity.
type Summary struct {
	Name          string
	StartTime     time.Time
	Distance      float64 // meters
	Duration      time.Duration
	MovingTime    time.Duration
	ElevationGain float64 // meters
	ElevationLoss float64 // meters
	AvgSpeed      float64 // m/s over moving time
	Points        int
}

// Summarize derives a Summary from a track. It is a pure function: the
// same track always yields the same summary. Tracks with fewer than two
// points produce a zeroed summary rather than an error so that report
// generation stays total.
func Summarize(t *track.Track, opts Options) Summary {
	s := Summary{
		Name:      t.Name,
		StartTime: t.StartTime(),
		Points:    len(t.Points),
	}
	if len(t.Points) < 2 {
		return s
	}

	still := opts.stillSpeed()
	var moving time.Duration
	var lastElev *float64

	if e := t.Points[0].Elevation; e != nil {
		lastElev = e
	}

	for i := 1; i < len(t.Points); i++ {
		prev, cur := t.Points[i-1], t.Points[i]

		dist := geo.Distance(prev.Lat, prev.Lon, cur.Lat, cur.Lon)
		s.Distance += dist

		// Segments with no elapsed time cannot have a meaningful speed;
		// they contribute distance but are never classified as paused.
		dt := cur.Time.Sub(prev.Time)
		if dt > 0 && dist/dt.Seconds() >= still {
			moving += dt
		}

		// Points without elevation are skipped without breaking the
		// chain: deltas are taken against the last point that had one.
		if cur.Elevation != nil {
			if lastElev != nil {
				delta := *cur.Elevation - *lastElev
				if delta > 0 {
					s.ElevationGain += delta
				} else {
					s.ElevationLoss += -delta
				}
			}
			lastElev = cur.Elevation
		}
	}

	s.Duration = t.Duration()
	s.MovingTime = moving
	if moving > 0 {
		s.AvgSpeed = s.Distance / moving.Seconds()
	}
	return s
}
