package analysis

import (
	"math"
	"testing"
	"time"

	"github.com/mgriffiths/gpsreport/internal/track"
)

// legs builds a northbound track from (speed m/s, meters) legs with a
// point every 10 m.
func legs(tb testing.TB, plan ...[2]float64) *track.Track {
	tb.Helper()
	const metersPerDegree = 111195.0
	points := []track.Point{{Time: base, Lat: 0, Lon: 0}}
	sec, lat := 0.0, 0.0
	for _, leg := range plan {
		speed, meters := leg[0], leg[1]
		for covered := 10.0; covered <= meters; covered += 10 {
			sec += 10 / speed
			lat += 10 / metersPerDegree
			points = append(points, track.Point{
				Time: base.Add(time.Duration(sec * float64(time.Second))),
				Lat:  lat,
			})
		}
	}
	tr, err := track.New("legs", points)
	if err != nil {
		tb.Fatalf("track.New: %v", err)
	}
	return tr
}

func TestBestEffortsConstantSpeed(t *testing.T) {
	// 4 m/s for 2500 m: 500m, 1km and 2km efforts exist, 5km+ do not.
	tr := line(t, 626, 4, time.Second)
	efforts := BestEfforts(tr, nil)

	if len(efforts) != 3 {
		t.Fatalf("got %d efforts, want 3: %+v", len(efforts), efforts)
	}
	wantTimes := map[string]float64{"500m": 125, "1km": 250, "2km": 500}
	for _, e := range efforts {
		want, ok := wantTimes[e.Label]
		if !ok {
			t.Errorf("unexpected effort %q", e.Label)
			continue
		}
		if math.Abs(e.Time.Seconds()-want) > 1 {
			t.Errorf("%s: time = %v, want ~%vs", e.Label, e.Time, want)
		}
	}
}

func TestBestEffortsFindsFastStretch(t *testing.T) {
	// 500 m easy, 500 m hard, 500 m easy: the best 500 m is the middle
	// leg at 5 m/s, 100 s.
	tr := legs(t, [2]float64{1, 500}, [2]float64{5, 500}, [2]float64{1, 500})
	efforts := BestEfforts(tr, []StandardDistance{{"500m", 500}})
	if len(efforts) != 1 {
		t.Fatalf("got %d efforts, want 1", len(efforts))
	}
	if math.Abs(efforts[0].Time.Seconds()-100) > 2 {
		t.Errorf("best 500m = %v, want ~100s", efforts[0].Time)
	}
	// At 500 m the per-500m split equals the effort time.
	if math.Abs(efforts[0].Split.Seconds()-efforts[0].Time.Seconds()) > 0.01 {
		t.Errorf("split = %v, want %v", efforts[0].Split, efforts[0].Time)
	}
}

func TestBestEffortsSplitConvention(t *testing.T) {
	// Constant 2 m/s over 1 km: effort 500 s, split 250 s per 500 m.
	tr := legs(t, [2]float64{2, 1000})
	efforts := BestEfforts(tr, []StandardDistance{{"1km", 1000}})
	if len(efforts) != 1 {
		t.Fatalf("got %d efforts, want 1", len(efforts))
	}
	if math.Abs(efforts[0].Split.Seconds()-250) > 2 {
		t.Errorf("split = %v, want ~250s", efforts[0].Split)
	}
}

func TestBestEffortsShortTrack(t *testing.T) {
	tr := line(t, 3, 10, time.Second) // 20 m total
	if efforts := BestEfforts(tr, nil); efforts != nil {
		t.Errorf("want no efforts for a 20 m track, got %+v", efforts)
	}
}

func TestBestEffortsEmptyTrack(t *testing.T) {
	tr := line(t, 0, 0, time.Second)
	if efforts := BestEfforts(tr, nil); efforts != nil {
		t.Errorf("want nil for empty track, got %+v", efforts)
	}
}
