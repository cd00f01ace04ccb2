// Package format provides artifact format detection for the blackout
// library.
package format

import (
	"bytes"
	"path/filepath"
	"strings"
)

// Format represents a supported artifact format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PNG indicates a PNG page surface.
	PNG
	// JPEG indicates a JPEG page surface.
	JPEG
	// TIFF indicates a TIFF page surface.
	TIFF
	// HOCR indicates an hOCR searchable rendition.
	HOCR
	// AnalysisJSON indicates a raw analysis response.
	AnalysisJSON
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PNG:
		return "PNG"
	case JPEG:
		return "JPEG"
	case TIFF:
		return "TIFF"
	case HOCR:
		return "hOCR"
	case AnalysisJSON:
		return "AnalysisJSON"
	default:
		return "Unknown"
	}
}

// IsSurface reports whether the format is a raster page surface.
func (f Format) IsSurface() bool {
	return f == PNG || f == JPEG || f == TIFF
}

// Detect determines artifact format from the filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return PNG
	case ".jpg", ".jpeg":
		return JPEG
	case ".tif", ".tiff":
		return TIFF
	case ".hocr", ".html", ".htm":
		return HOCR
	case ".json":
		return AnalysisJSON
	default:
		return Unknown
	}
}

var (
	pngMagic  = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	jpegMagic = []byte{0xff, 0xd8, 0xff}
	tiffLE    = []byte{'I', 'I', 0x2a, 0x00}
	tiffBE    = []byte{'M', 'M', 0x00, 0x2a}
)

// DetectContent determines artifact format from leading bytes, for
// artifacts whose names carry no useful extension.
func DetectContent(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, pngMagic):
		return PNG
	case bytes.HasPrefix(data, jpegMagic):
		return JPEG
	case bytes.HasPrefix(data, tiffLE), bytes.HasPrefix(data, tiffBE):
		return TIFF
	}

	trimmed := bytes.TrimLeft(data, " \t\r\n")
	switch {
	case bytes.HasPrefix(trimmed, []byte("{")), bytes.HasPrefix(trimmed, []byte("[")):
		return AnalysisJSON
	case bytes.HasPrefix(trimmed, []byte("<")):
		return HOCR
	}
	return Unknown
}
