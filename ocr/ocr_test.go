//go:build ocr

package ocr

import (
	"image"
	"image/color"
	"testing"
)

// testSurface creates a white image with a black block, enough for
// Tesseract to run against even if it recognizes nothing.
func testSurface(width, height int) image.Image {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.White)
		}
	}
	for x := 10; x < 50; x++ {
		for y := 10; y < 30; y++ {
			img.Set(x, y, color.Black)
		}
	}
	return img
}

func TestRecognizeLines(t *testing.T) {
	client, err := New()
	if err != nil {
		t.Skipf("Tesseract not available: %v", err)
	}
	defer client.Close()

	lines, err := client.RecognizeLines(testSurface(200, 100), 1)
	if err != nil {
		t.Fatalf("RecognizeLines() error: %v", err)
	}

	// A synthetic block may or may not produce text; verify geometry
	// for whatever was recognized.
	for _, ln := range lines {
		if ln.PageNumber != 1 {
			t.Errorf("line %s has page %d, want 1", ln.ID, ln.PageNumber)
		}
		if ln.Box.Left < 0 || ln.Box.Right() > 1 || ln.Box.Top < 0 || ln.Box.Bottom() > 1 {
			t.Errorf("line %s box not normalized: %+v", ln.ID, ln.Box)
		}
	}
}
