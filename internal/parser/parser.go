// Package parser turns GPS track files (GPX, FIT) into track values.
package parser

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mgriffiths/gpsreport/internal/track"
)

var (
	// ErrNoTrackData means the file parsed but contained no trackpoints.
	ErrNoTrackData = errors.New("no track data found")
	// ErrUnsupported means the file is not a recognized track format.
	ErrUnsupported = errors.New("unsupported file type")
)

// Parser decodes one track file format.
type Parser interface {
	Parse(data []byte) (*track.Track, error)
}

// ForType returns the parser for a detected file type.
func ForType(ft FileType) (Parser, error) {
	switch ft {
	case FileTypeGPX:
		return &GPXParser{}, nil
	case FileTypeFIT:
		return &FITParser{}, nil
	default:
		return nil, ErrUnsupported
	}
}

// ParseFile reads and parses a track file, choosing the parser by
// extension first and content sniffing as a fallback. The track is named
// after the file.
func ParseFile(path string) (*track.Track, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	ft := FileTypeUnknown
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gpx":
		ft = FileTypeGPX
	case ".fit":
		ft = FileTypeFIT
	}
	if ft == FileTypeUnknown {
		ft = DetectFileType(data)
	}

	p, err := ForType(ft)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	t, err := p.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if t.Name == "" {
		t.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return t, nil
}
