package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandPatterns(t *testing.T) {
	dir := t.TempDir()
	ride := filepath.Join(dir, "ride.gpx")
	row := filepath.Join(dir, "row.fit")
	for _, p := range []string{ride, row} {
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	missing := filepath.Join(dir, "rdie.gpx")

	tests := []struct {
		name          string
		args          []string
		wantPaths     []string
		wantUnmatched []string
	}{
		{"literal paths", []string{ride, row}, []string{ride, row}, nil},
		{"glob pattern", []string{filepath.Join(dir, "*.gpx")}, []string{ride}, nil},
		{"missing literal reported", []string{ride, missing}, []string{ride}, []string{missing}},
		{"empty pattern reported", []string{filepath.Join(dir, "*.tcx")}, nil, []string{filepath.Join(dir, "*.tcx")}},
		{"duplicates collapsed", []string{ride, ride}, []string{ride}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paths, unmatched, err := expandPatterns(tt.args)
			if err != nil {
				t.Fatalf("expandPatterns: %v", err)
			}
			if !equalStrings(paths, tt.wantPaths) {
				t.Errorf("paths = %v, want %v", paths, tt.wantPaths)
			}
			if !equalStrings(unmatched, tt.wantUnmatched) {
				t.Errorf("unmatched = %v, want %v", unmatched, tt.wantUnmatched)
			}
		})
	}
}

func TestExpandPatternsBadPattern(t *testing.T) {
	if _, _, err := expandPatterns([]string{"[unclosed"}); err == nil {
		t.Error("expected error for malformed pattern")
	}
}

func equalStrings(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
