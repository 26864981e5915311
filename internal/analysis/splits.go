package analysis

import (
	"time"

	"github.com/mgriffiths/gpsreport/internal/geo"
	"github.com/mgriffiths/gpsreport/internal/track"
)

// StandardDistance is a named split distance for best-effort timing.
type StandardDistance struct {
	Label  string
	Meters float64
}

// StandardDistances are the split lengths reported for every activity
// long enough to cover them.
var StandardDistances = []StandardDistance{
	{"500m", 500},
	{"1km", 1000},
	{"2km", 2000},
	{"5km", 5000},
	{"10km", 10000},
}

// Effort is the fastest contiguous stretch of a track covering Distance.
type Effort struct {
	Label    string
	Distance float64 // meters
	Time     time.Duration
	Split    time.Duration // time per 500 m, the rowing convention
}

// BestEfforts finds, for each standard distance the track covers, the
// fastest contiguous time over that distance. Candidate windows start at
// trackpoints; the window end is interpolated linearly between the two
// points straddling the target distance.
func BestEfforts(t *track.Track, distances []StandardDistance) []Effort {
	if len(distances) == 0 {
		distances = StandardDistances
	}
	n := len(t.Points)
	if n < 2 {
		return nil
	}

	// Cumulative distance and elapsed seconds per point.
	cumDist := make([]float64, n)
	elapsed := make([]float64, n)
	start := t.Points[0].Time
	for i := 1; i < n; i++ {
		prev, cur := t.Points[i-1], t.Points[i]
		cumDist[i] = cumDist[i-1] + geo.Distance(prev.Lat, prev.Lon, cur.Lat, cur.Lon)
		elapsed[i] = cur.Time.Sub(start).Seconds()
	}
	total := cumDist[n-1]

	var efforts []Effort
	for _, d := range distances {
		if d.Meters > total {
			continue
		}
		best := bestWindow(cumDist, elapsed, d.Meters)
		if best <= 0 {
			continue
		}
		dur := time.Duration(best * float64(time.Second))
		efforts = append(efforts, Effort{
			Label:    d.Label,
			Distance: d.Meters,
			Time:     dur,
			Split:    time.Duration(best / d.Meters * 500 * float64(time.Second)),
		})
	}
	return efforts
}

// bestWindow returns the minimum elapsed seconds over any contiguous
// stretch of exactly target meters, starting at a trackpoint. The end
// pointer never moves backwards, so the scan is linear.
func bestWindow(cumDist, elapsed []float64, target float64) float64 {
	best := -1.0
	j := 0
	for i := 0; i < len(cumDist); i++ {
		end := cumDist[i] + target
		if end > cumDist[len(cumDist)-1] {
			break
		}
		if j < i+1 {
			j = i + 1
		}
		for cumDist[j] < end {
			j++
		}
		// Interpolate the crossing time between points j-1 and j.
		tEnd := elapsed[j]
		if span := cumDist[j] - cumDist[j-1]; span > 0 {
			frac := (end - cumDist[j-1]) / span
			tEnd = elapsed[j-1] + (elapsed[j]-elapsed[j-1])*frac
		}
		if dt := tEnd - elapsed[i]; best < 0 || dt < best {
			best = dt
		}
	}
	return best
}
