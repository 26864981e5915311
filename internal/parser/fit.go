package parser

import (
	"bytes"
	"fmt"
	"math"

	"github.com/tormoder/fit"

	"github.com/mgriffiths/gpsreport/internal/track"
)

// FITParser decodes Garmin FIT activity files via tormoder/fit. Record
// messages without a valid position (indoor stretches, GPS dropouts) are
// skipped.
type FITParser struct{}

func (p *FITParser) Parse(data []byte) (*track.Track, error) {
	fitFile, err := fit.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode FIT: %w", err)
	}

	activity, err := fitFile.Activity()
	if err != nil {
		return nil, fmt.Errorf("not a FIT activity file: %w", err)
	}

	var name string
	if len(activity.Sessions) > 0 {
		name = activity.Sessions[0].Sport.String()
	}

	var points []track.Point
	for _, r := range activity.Records {
		lat := r.PositionLat.Degrees()
		lon := r.PositionLong.Degrees()
		if math.IsNaN(lat) || math.IsNaN(lon) {
			continue
		}
		pt := track.Point{
			Time: r.Timestamp.UTC(),
			Lat:  lat,
			Lon:  lon,
		}
		if alt := r.GetAltitudeScaled(); !math.IsNaN(alt) {
			pt.Elevation = &alt
		}
		points = append(points, pt)
	}
	if len(points) == 0 {
		return nil, ErrNoTrackData
	}

	t, err := track.New(name, points)
	if err != nil {
		return nil, fmt.Errorf("parse FIT: %w", err)
	}
	return t, nil
}
