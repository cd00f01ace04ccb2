package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tsawler/blackout"
	"github.com/tsawler/blackout/format"
	"github.com/tsawler/blackout/model"
	"github.com/tsawler/blackout/remote"
	"github.com/tsawler/blackout/store"
)

var (
	analysisPath string
	pageNumber   int
)

var rootCmd = &cobra.Command{
	Use:   "blackout",
	Short: "Review and redact processed documents",
	Long: `blackout works with the extraction results of a document-analysis
pipeline: text lines, key-value form fields, and tables, each positioned
on its page. It can search that content, burn redaction boxes into a
page image, and emit the per-page forms CSV.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&analysisPath, "analysis", "", "Path to the analysis artifact: a response JSON or an hOCR rendition")
	rootCmd.PersistentFlags().IntVar(&pageNumber, "page", 1, "1-indexed page number")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(formsCmd)
	rootCmd.AddCommand(searchCmd)
}

// openSession registers the analysis artifact as a document and mounts
// a session over it. The artifact itself is resolved through the fetch
// pipeline, so a missing or malformed file surfaces as a fetch error
// and leaves the document in the error state.
func openSession(ctx context.Context) (*blackout.Session, error) {
	if analysisPath == "" {
		return nil, fmt.Errorf("--analysis is required")
	}

	doc, err := registerArtifact(analysisPath)
	if err != nil {
		return nil, err
	}

	st := store.New()
	id := st.Put(doc)

	sess := blackout.NewSession(st, remote.NewDir(filepath.Dir(analysisPath)))
	if err := sess.Mount(ctx, id); err != nil {
		return nil, err
	}
	if err := sess.Fetch(ctx); err != nil {
		return nil, err
	}
	return gotoRequestedPage(sess)
}

// registerArtifact classifies the --analysis artifact and builds the
// document record the fetch pipeline will resolve: an analysis response
// is fetched directly, an hOCR file becomes the searchable rendition.
// Detection goes by extension first and falls back to content sniffing
// when the name carries no useful one.
func registerArtifact(path string) (model.Document, error) {
	doc := model.Document{Name: filepath.Base(path)}

	f := format.Detect(path)
	if f == format.Unknown {
		data, err := os.ReadFile(path)
		if err != nil {
			return model.Document{}, fmt.Errorf("reading analysis: %w", err)
		}
		f = format.DetectContent(data)
	}

	switch {
	case f == format.AnalysisJSON:
		doc.ResultDirectory = doc.Name
	case f == format.HOCR:
		doc.SearchableURL = doc.Name
	case f.IsSurface():
		return model.Document{}, fmt.Errorf("%s is a %s page image; pass it to --surface", path, f)
	default:
		return model.Document{}, fmt.Errorf("%s: unrecognized analysis format", path)
	}
	return doc, nil
}

// gotoRequestedPage navigates to the --page flag and rejects pages the
// document does not have.
func gotoRequestedPage(sess *blackout.Session) (*blackout.Session, error) {
	sess.GoToPage(pageNumber)
	if sess.CurrentPage() != pageNumber {
		pages := 0
		if a := sess.Document().Analysis; a != nil {
			pages = a.PageCount
		}
		return nil, fmt.Errorf("page %d out of range (document has %d pages)", pageNumber, pages)
	}
	return sess, nil
}
