// Package track defines the trackpoint data model shared by all parsers
// and the metrics computation.
package track

import (
	"fmt"
	"time"
)

// Point is a single timestamped GPS sample. Elevation is optional: many
// devices and export formats omit it, so it is carried as a pointer.
type Point struct {
	Time      time.Time
	Lat       float64
	Lon       float64
	Elevation *float64
}

// Track is an ordered sequence of points belonging to one activity.
type Track struct {
	Name   string
	Points []Point
}

// New validates and constructs a Track. Points must carry coordinates in
// range and non-decreasing timestamps. An empty point slice is legal and
// yields a track whose metrics are all zero.
func New(name string, points []Point) (*Track, error) {
	for i, p := range points {
		if p.Lat < -90 || p.Lat > 90 {
			return nil, fmt.Errorf("point %d: latitude %v out of range", i, p.Lat)
		}
		if p.Lon < -180 || p.Lon > 180 {
			return nil, fmt.Errorf("point %d: longitude %v out of range", i, p.Lon)
		}
		if i > 0 && p.Time.Before(points[i-1].Time) {
			return nil, fmt.Errorf("point %d: timestamp %s precedes previous point", i, p.Time.Format(time.RFC3339))
		}
	}
	return &Track{Name: name, Points: points}, nil
}

// StartTime returns the timestamp of the first point, or the zero time
// for an empty track.
func (t *Track) StartTime() time.Time {
	if len(t.Points) == 0 {
		return time.Time{}
	}
	return t.Points[0].Time
}

// Duration returns the elapsed time between the first and last point.
func (t *Track) Duration() time.Duration {
	if len(t.Points) < 2 {
		return 0
	}
	return t.Points[len(t.Points)-1].Time.Sub(t.Points[0].Time)
}

// Elev is a convenience for building optional elevations in literals.
func Elev(v float64) *float64 { return &v }
