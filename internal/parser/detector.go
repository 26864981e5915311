package parser

import "bytes"

type FileType string

const (
	FileTypeGPX     FileType = "gpx"
	FileTypeFIT     FileType = "fit"
	FileTypeUnknown FileType = "unknown"
)

// DetectFileType sniffs the format from file content. FIT files carry a
// ".FIT" signature at byte 8 of the header; GPX files are XML with a gpx
// root element.
func DetectFileType(data []byte) FileType {
	if len(data) >= 12 && bytes.Equal(data[8:12], []byte(".FIT")) {
		return FileTypeFIT
	}

	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	if bytes.Contains(head, []byte("<gpx")) || bytes.Contains(head, []byte("topografix.com/GPX")) {
		return FileTypeGPX
	}

	return FileTypeUnknown
}
