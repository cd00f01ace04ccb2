// Package fetch retrieves a document's analysis result and commits it to
// the store under a pending/success/error lifecycle.
//
// Fetching is the only asynchronous operation in a review session apart
// from minting download URLs. There is no retry: a failed fetch leaves
// the document in the error state until a caller starts a new fetch.
// Results resolving after the requesting view has been torn down are
// silently dropped via a liveness check, never surfaced.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tsawler/blackout/hocr"
	"github.com/tsawler/blackout/model"
	"github.com/tsawler/blackout/remote"
	"github.com/tsawler/blackout/store"
	"github.com/tsawler/blackout/textract"
)

// ResultDirectory returns the artifact prefix under which a document's
// analysis results are stored.
func ResultDirectory(name, id string) string {
	return fmt.Sprintf("%s-analysis/%s/", name, id)
}

// responseName is the analysis response artifact within a document's
// result directory. A result location without a trailing slash names
// the response artifact itself, for documents registered against a
// single file rather than a pipeline result directory.
func responseName(dir string) string {
	if dir != "" && !strings.HasSuffix(dir, "/") {
		return dir
	}
	return dir + "response.json"
}

// Fetcher loads analysis responses from remote storage into the store.
type Fetcher struct {
	store  *store.Store
	remote remote.Store
	logger *slog.Logger
}

// New creates a fetcher. A nil logger falls back to slog.Default.
func New(st *store.Store, rs remote.Store, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{store: st, remote: rs, logger: logger}
}

// Fetch retrieves and parses the analysis response for a registered
// document, committing the result to the store. The document's status
// moves to pending immediately and to success or error on completion.
//
// alive is consulted before any post-resolution commit; once it returns
// false the result (or failure) is dropped without touching the store,
// which guards against updating state for a view that no longer exists.
// A nil alive always commits.
func (f *Fetcher) Fetch(ctx context.Context, id string, alive func() bool) error {
	if alive == nil {
		alive = func() bool { return true }
	}

	doc, ok := f.store.Get(id)
	if !ok {
		return fmt.Errorf("document %s not registered", id)
	}

	f.store.SetStatus(id, store.StatusPending)
	f.logger.Debug("fetching analysis", "document", id)

	if doc.ResultDirectory == "" && doc.SearchableURL != "" {
		return f.fetchSearchable(ctx, id, doc, alive)
	}

	data, err := f.remote.Fetch(ctx, responseName(doc.ResultDirectory))
	if err != nil {
		if doc.SearchableURL != "" {
			f.logger.Info("analysis response missing, using searchable rendition",
				"document", id, "error", err)
			return f.fetchSearchable(ctx, id, doc, alive)
		}
		return f.fail(id, alive, fmt.Errorf("fetching analysis for %s: %w", id, err))
	}

	analysis, err := textract.Parse(data)
	if err != nil {
		return f.fail(id, alive, fmt.Errorf("parsing analysis for %s: %w", id, err))
	}

	if !alive() {
		f.logger.Debug("dropping stale analysis", "document", id)
		return nil
	}

	f.store.Put(model.Document{ID: id, Analysis: analysis})
	f.store.SetStatus(id, store.StatusSuccess)
	f.logger.Debug("analysis committed", "document", id, "pages", analysis.PageCount)
	return nil
}

// fetchSearchable recovers positioned lines from the document's
// searchable rendition (hOCR) when no analysis response exists. The
// recovered analysis carries lines only; a rendition has no key-value
// pairs or tables to extract.
func (f *Fetcher) fetchSearchable(ctx context.Context, id string, doc model.Document, alive func() bool) error {
	data, err := f.remote.Fetch(ctx, doc.SearchableURL)
	if err != nil {
		return f.fail(id, alive, fmt.Errorf("fetching searchable rendition for %s: %w", id, err))
	}

	rendition, err := hocr.Parse(bytes.NewReader(data))
	if err != nil {
		return f.fail(id, alive, fmt.Errorf("parsing searchable rendition for %s: %w", id, err))
	}

	if !alive() {
		f.logger.Debug("dropping stale rendition", "document", id)
		return nil
	}

	f.store.Put(model.Document{ID: id, Analysis: &model.Analysis{
		PageCount: rendition.PageCount,
		Lines:     rendition.Lines,
	}})
	f.store.SetStatus(id, store.StatusSuccess)
	f.logger.Debug("rendition committed", "document", id, "pages", rendition.PageCount)
	return nil
}

// fail records the error state unless the view is gone.
func (f *Fetcher) fail(id string, alive func() bool, err error) error {
	if !alive() {
		return nil
	}
	f.store.SetStatus(id, store.StatusError)
	f.logger.Warn("analysis fetch failed", "document", id, "error", err)
	return err
}
