//go:build ocr

// Package ocr recovers positioned text lines from a rendered page image
// when a document has no analysis result.
//
// This package wraps the Tesseract OCR engine via gosseract. It requires
// Tesseract to be installed on the system and the "ocr" build tag. On
// macOS, install via:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/tsawler/blackout/model"
)

// Client wraps Tesseract for recognizing page surfaces.
type Client struct {
	client *gosseract.Client
}

// New creates a new OCR client.
// The client should be closed when no longer needed to release resources.
func New() (*Client, error) {
	return &Client{client: gosseract.NewClient()}, nil
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c != nil && c.client != nil {
		return c.client.Close()
	}
	return nil
}

// SetLanguage sets the language(s) for recognition. Multiple languages
// can be specified as a "+" separated string (e.g., "eng+fra"). Default
// is "eng".
func (c *Client) SetLanguage(lang string) error {
	return c.client.SetLanguage(lang)
}

// RecognizeLines runs OCR on a rendered page surface and returns the
// recognized text lines for the given 1-indexed page, with bounding
// boxes normalized against the surface's intrinsic dimensions. The
// result slots directly into a model.Analysis in place of fetched
// lines.
func (c *Client) RecognizeLines(img image.Image, page int) ([]model.Line, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding surface for OCR: %w", err)
	}
	if err := c.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("setting OCR image: %w", err)
	}

	boxes, err := c.client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("recognizing lines: %w", err)
	}

	bounds := img.Bounds()
	w := float64(bounds.Dx())
	h := float64(bounds.Dy())

	var lines []model.Line
	for i, box := range boxes {
		text := strings.TrimSpace(box.Word)
		if text == "" {
			continue
		}
		lines = append(lines, model.Line{
			ID:         fmt.Sprintf("ocr-%d-%d", page, i),
			PageNumber: page,
			Text:       text,
			Box: model.BoundingBox{
				Left:   float64(box.Box.Min.X) / w,
				Top:    float64(box.Box.Min.Y) / h,
				Width:  float64(box.Box.Dx()) / w,
				Height: float64(box.Box.Dy()) / h,
			},
		})
	}
	return lines, nil
}
