package raster

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/tiff"
)

// DecodeSurface decodes a rendered page surface (PNG, JPEG, or TIFF).
// The returned image carries the surface's intrinsic pixel dimensions.
func DecodeSurface(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding page surface: %w", err)
	}
	return img, nil
}

// DecodeSurfaceBytes decodes a page surface from a byte slice.
func DecodeSurfaceBytes(data []byte) (image.Image, error) {
	return DecodeSurface(bytes.NewReader(data))
}

// Sink receives exported files, the download side of the pipeline.
type Sink interface {
	Save(name string, data []byte) error
}

// DirSink saves exported files into a directory.
type DirSink struct {
	Root string
}

// Save writes the file under the sink's directory, creating it if
// needed.
func (d DirSink) Save(name string, data []byte) error {
	if err := os.MkdirAll(d.Root, 0o755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}
	path := filepath.Join(d.Root, filepath.Base(name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("saving %s: %w", name, err)
	}
	return nil
}

// Save encodes the image as PNG and hands it to the sink under the given
// name.
func Save(sink Sink, name string, img image.Image) error {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		return err
	}
	return sink.Save(name, buf.Bytes())
}
