package main

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/blackout"
	"github.com/tsawler/blackout/format"
	"github.com/tsawler/blackout/model"
	"github.com/tsawler/blackout/ocr"
	"github.com/tsawler/blackout/raster"
	"github.com/tsawler/blackout/remote"
	"github.com/tsawler/blackout/store"
)

var (
	surfacePath string
	outputDir   string
	searchTerm  string
	allValues   bool
	boxSpecs    []string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a redacted page image",
	Long: `Export composites a rendered page image with redaction boxes and
writes the result as PNG. Boxes come from --box flags, from lines
matching --search, and from --all-values (every form-field value on the
page). When --analysis is omitted, lines are recovered from the page
image itself via OCR (requires a build with the ocr tag).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		surface, err := loadSurface(surfacePath)
		if err != nil {
			return err
		}

		var sess *blackout.Session
		if analysisPath == "" {
			sess, err = ocrSession(cmd.Context(), surface)
		} else {
			sess, err = openSession(cmd.Context())
		}
		if err != nil {
			return err
		}
		defer sess.Unmount()

		for _, spec := range boxSpecs {
			box, err := parseBox(spec)
			if err != nil {
				return err
			}
			sess.Redact(box)
		}
		if searchTerm != "" {
			sess.Search(searchTerm)
			sess.RedactMatches()
		}
		if allValues {
			sess.RedactAllValues()
		}

		name, err := sess.ExportRedacted(surface, raster.DirSink{Root: outputDir})
		if err != nil {
			return err
		}

		fmt.Printf("wrote %s (%d redactions)\n", name, len(sess.Redactions()))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&surfacePath, "surface", "", "Path to the rendered page image (required)")
	exportCmd.Flags().StringVar(&outputDir, "out", ".", "Directory for the exported PNG")
	exportCmd.Flags().StringVar(&searchTerm, "search", "", "Redact every line matching this query")
	exportCmd.Flags().BoolVar(&allValues, "all-values", false, "Redact every form-field value on the page")
	exportCmd.Flags().StringArrayVar(&boxSpecs, "box", nil, "Redaction box as left,top,width,height fractions (repeatable)")
	_ = exportCmd.MarkFlagRequired("surface")
}

// loadSurface reads and decodes the rendered page image, rejecting
// artifacts that are not raster surfaces before decoding.
func loadSurface(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading page surface: %w", err)
	}
	if f := format.DetectContent(data); !f.IsSurface() {
		return nil, fmt.Errorf("%s is %s, not a page image", path, f)
	}
	return raster.DecodeSurfaceBytes(data)
}

// ocrSession recognizes lines directly from the page surface when no
// analysis artifact was given.
func ocrSession(ctx context.Context, surface image.Image) (*blackout.Session, error) {
	client, err := ocr.New()
	if err != nil {
		return nil, fmt.Errorf("--analysis omitted and OCR fallback unavailable: %w", err)
	}
	defer client.Close()

	lines, err := client.RecognizeLines(surface, pageNumber)
	if err != nil {
		return nil, fmt.Errorf("recognizing page %d: %w", pageNumber, err)
	}

	st := store.New()
	id := st.Put(model.Document{
		Name:     filepath.Base(surfacePath),
		Analysis: &model.Analysis{PageCount: pageNumber, Lines: lines},
	})

	sess := blackout.NewSession(st, remote.NewDir(filepath.Dir(surfacePath)))
	if err := sess.Mount(ctx, id); err != nil {
		return nil, err
	}
	return gotoRequestedPage(sess)
}

// parseBox parses "left,top,width,height" fractional coordinates.
func parseBox(spec string) (model.BoundingBox, error) {
	parts := strings.Split(spec, ",")
	if len(parts) != 4 {
		return model.BoundingBox{}, fmt.Errorf("box %q: want left,top,width,height", spec)
	}
	var vals [4]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return model.BoundingBox{}, fmt.Errorf("box %q: %w", spec, err)
		}
		vals[i] = v
	}
	return model.NewBoundingBox(vals[0], vals[1], vals[2], vals[3]), nil
}
