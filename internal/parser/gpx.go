package parser

import (
	"encoding/xml"
	"fmt"
	"time"

	"github.com/mgriffiths/gpsreport/internal/track"
)

type gpxFile struct {
	XMLName xml.Name   `xml:"gpx"`
	Tracks  []gpxTrack `xml:"trk"`
}

type gpxTrack struct {
	Name     string       `xml:"name"`
	Segments []gpxSegment `xml:"trkseg"`
}

type gpxSegment struct {
	Points []gpxPoint `xml:"trkpt"`
}

type gpxPoint struct {
	Lat  float64  `xml:"lat,attr"`
	Lon  float64  `xml:"lon,attr"`
	Ele  *float64 `xml:"ele"`
	Time string   `xml:"time"`
}

// GPXParser decodes GPX 1.0/1.1 documents. All tracks and segments are
// flattened into one point sequence in document order.
type GPXParser struct{}

func (p *GPXParser) Parse(data []byte) (*track.Track, error) {
	var g gpxFile
	if err := xml.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("parse GPX: %w", err)
	}

	var name string
	var points []track.Point
	for _, trk := range g.Tracks {
		if name == "" {
			name = trk.Name
		}
		for _, seg := range trk.Segments {
			for _, pt := range seg.Points {
				ts, err := time.Parse(time.RFC3339, pt.Time)
				if err != nil {
					// Untimed points carry no information for the
					// metrics computation.
					continue
				}
				points = append(points, track.Point{
					Time:      ts.UTC(),
					Lat:       pt.Lat,
					Lon:       pt.Lon,
					Elevation: pt.Ele,
				})
			}
		}
	}
	if len(points) == 0 {
		return nil, ErrNoTrackData
	}

	t, err := track.New(name, points)
	if err != nil {
		return nil, fmt.Errorf("parse GPX: %w", err)
	}
	return t, nil
}
