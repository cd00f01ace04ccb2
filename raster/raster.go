package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"

	"github.com/tsawler/blackout/model"
)

// Margin is the number of pixels a redaction fill extends beyond the
// box's literal extent on every side, so that anti-aliased glyph edges
// do not survive at the rectangle border.
const Margin = 2

// Export composites the page surface with the page's redactions: the
// source is copied pixel-for-pixel onto a fresh surface at its intrinsic
// resolution, then every box is filled as an opaque black rectangle
// expanded by Margin. With no boxes the result is an unmodified copy.
//
// The surface must be fully decoded before calling; Export reads the
// intrinsic bounds from the image itself, never from document metadata,
// because the rendered surface is the sole source of truth for what
// pixels exist.
func Export(src image.Image, boxes []model.BoundingBox) *image.RGBA {
	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Copy(dst, image.Point{}, src, bounds, draw.Src, nil)

	fill := image.NewUniform(color.Black)
	for _, box := range boxes {
		rect := box.ToPixels(width, height).Inset(-Margin)
		draw.Draw(dst, rect, fill, image.Point{}, draw.Src)
	}

	return dst
}

// EncodePNG encodes the image as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return nil
}

// RedactedName derives the download file name for a redacted export from
// the original document name, replacing its extension with a
// "-REDACTED.png" suffix.
func RedactedName(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return base + "-REDACTED.png"
}
