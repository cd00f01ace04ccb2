package blackout

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"sync"
	"time"

	"github.com/tsawler/blackout/fetch"
	"github.com/tsawler/blackout/forms"
	"github.com/tsawler/blackout/model"
	"github.com/tsawler/blackout/raster"
	"github.com/tsawler/blackout/remote"
	"github.com/tsawler/blackout/search"
	"github.com/tsawler/blackout/store"
	"github.com/tsawler/blackout/view"
)

// Tab identifies which view of the document a session is showing.
type Tab int

const (
	// TabSearch shows the search view. It is the initial tab.
	TabSearch Tab = iota
	// TabText shows the raw extracted text.
	TabText
	// TabKeyValues shows extracted form fields.
	TabKeyValues
	// TabTables shows extracted tables.
	TabTables
)

// String returns a string representation of the tab.
func (t Tab) String() string {
	switch t {
	case TabText:
		return "text"
	case TabKeyValues:
		return "kv"
	case TabTables:
		return "tables"
	default:
		return "search"
	}
}

// formsURLTTL is how long a minted forms-CSV download URL stays valid.
const formsURLTTL = 300 * time.Second

// Session is one review session over one document. It reads and writes
// shared state through the store and holds only ephemeral view state of
// its own: the selected tab and a liveness flag. All redaction
// operations are in-memory, fire-and-forget mutations of the store.
type Session struct {
	st      *store.Store
	remote  remote.Store
	fetcher *fetch.Fetcher
	builder *view.Builder
	matcher *search.Matcher
	logger  *slog.Logger

	mu    sync.Mutex
	id    string
	tab   Tab
	alive bool
}

// NewSession creates a session over the given store and remote storage.
func NewSession(st *store.Store, rs remote.Store, opts ...Option) *Session {
	s := &Session{
		st:     st,
		remote: rs,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.matcher == nil {
		s.matcher = search.NewMatcher(search.Substring)
	}
	s.builder = view.NewBuilder(s.matcher)
	s.fetcher = fetch.New(st, rs, s.logger)
	return s
}

// Mount attaches the session to a registered document: the current page
// resets to 1 regardless of prior navigation, the tab resets to search,
// and the layout header takes the document's name. Mount does not fetch;
// callers start the asynchronous fetch with [Session.Fetch], typically
// in a goroutine.
func (s *Session) Mount(_ context.Context, id string) error {
	doc, ok := s.st.Get(id)
	if !ok {
		return fmt.Errorf("document %s not registered", id)
	}

	s.mu.Lock()
	s.id = id
	s.tab = TabSearch
	s.alive = true
	s.mu.Unlock()

	s.st.SetCurrentPage(id, 1)
	s.st.SetHeaderProps(store.HeaderProps{Title: doc.Name})
	return nil
}

// Unmount tears the session down: the document's redactions are cleared
// (they are session-scoped annotations, not saved edits), the header is
// reset, and any in-flight fetch resolving afterwards is suppressed.
// Unmount is idempotent.
func (s *Session) Unmount() {
	s.mu.Lock()
	if !s.alive {
		s.mu.Unlock()
		return
	}
	s.alive = false
	id := s.id
	s.mu.Unlock()

	s.st.ClearRedactions(id)
	s.st.SetHeaderProps(store.HeaderProps{})
}

// Fetch retrieves the mounted document's analysis result. Status moves
// through pending and lands on success or error; a result resolving
// after Unmount is dropped. Fetch blocks, so run it in a goroutine when
// the caller must stay responsive.
func (s *Session) Fetch(ctx context.Context) error {
	return s.fetcher.Fetch(ctx, s.documentID(), s.isAlive)
}

func (s *Session) documentID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

func (s *Session) isAlive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.alive
}

// Document returns the mounted document's current record.
func (s *Session) Document() model.Document {
	doc, _ := s.st.Get(s.documentID())
	return doc
}

// Status returns the fetch lifecycle state for the mounted document.
func (s *Session) Status() store.Status {
	return s.st.Status(s.documentID())
}

// Tab returns the selected tab.
func (s *Session) Tab() Tab {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tab
}

// SelectTab switches the visible tab. Transitions are driven solely by
// direct selection; there are no guards.
func (s *Session) SelectTab(t Tab) {
	s.mu.Lock()
	s.tab = t
	s.mu.Unlock()
}

// CurrentPage returns the page the session is showing.
func (s *Session) CurrentPage() int {
	return s.st.CurrentPage(s.documentID())
}

// GoToPage navigates to a page. Requests outside [1, PageCount] are
// ignored; when the page count is not yet known any page >= 1 is
// accepted.
func (s *Session) GoToPage(n int) {
	if n < 1 {
		return
	}
	doc := s.Document()
	if doc.Analysis != nil && n > doc.Analysis.PageCount {
		return
	}
	s.st.SetCurrentPage(s.documentID(), n)
}

// Search sets the active search query.
func (s *Session) Search(q string) {
	s.st.SetSearchQuery(q)
}

// View returns the derived view of the current page under the active
// search query. The same *PageView is returned while the underlying
// document, page, and query are unchanged.
func (s *Session) View() *view.PageView {
	return s.builder.Build(s.Document(), s.CurrentPage(), s.st.CleanSearchQuery())
}

// Redact appends one redaction box for the current page, or for an
// explicit page when given. Boxes are not deduplicated; repeated
// identical boxes are legal and additive.
func (s *Session) Redact(box model.BoundingBox, page ...int) {
	p := s.CurrentPage()
	if len(page) > 0 {
		p = page[0]
	}
	s.st.AddRedactions(s.documentID(), p, box)
}

// RedactMatches appends a redaction for every line on the current page
// matching the active search query, then clears the query so the search
// UI resets after the bulk redaction.
func (s *Session) RedactMatches() {
	matches := s.View().WordsMatchingSearch
	boxes := make([]model.BoundingBox, 0, len(matches))
	for _, ln := range matches {
		boxes = append(boxes, ln.Box)
	}

	s.st.AddRedactions(s.documentID(), s.CurrentPage(), boxes...)
	s.st.SetSearchQuery("")
}

// RedactAllValues appends the value box of every key-value pair on the
// current page, in the pairs' extraction order.
func (s *Session) RedactAllValues() {
	pairs := s.View().PageLevel.KeyValuePairs
	boxes := make([]model.BoundingBox, 0, len(pairs))
	for _, kv := range pairs {
		boxes = append(boxes, kv.ValueBox)
	}

	s.st.AddRedactions(s.documentID(), s.CurrentPage(), boxes...)
}

// ClearRedactions removes all redaction state for the mounted document,
// across all pages.
func (s *Session) ClearRedactions() {
	s.st.ClearRedactions(s.documentID())
}

// Redactions returns the current page's redactions in append order.
func (s *Session) Redactions() []model.BoundingBox {
	return s.st.Redactions(s.documentID(), s.CurrentPage())
}

// HasRedactions reports whether the document has any redactions on any
// page. Front ends gate the "download redacted" affordance on this; the
// export pipeline itself runs fine without redactions.
func (s *Session) HasRedactions() bool {
	return s.st.RedactionCount(s.documentID()) > 0
}

// ExportRedacted composites the rendered surface of the current page
// with the page's redactions and saves the PNG to the sink, returning
// the saved file name. The surface must be fully rendered; its intrinsic
// dimensions decide the export resolution.
func (s *Session) ExportRedacted(surface image.Image, sink raster.Sink) (string, error) {
	img := raster.Export(surface, s.Redactions())
	name := raster.RedactedName(s.Document().Name)
	if err := raster.Save(sink, name, img); err != nil {
		return "", fmt.Errorf("exporting redacted page: %w", err)
	}
	return name, nil
}

// FormsCSVURL mints a temporary download URL for the forms CSV of the
// given page, valid for 300 seconds.
func (s *Session) FormsCSVURL(page int) (string, error) {
	doc := s.Document()
	name := forms.PageFormsName(doc.ResultDirectory, page)
	url, err := s.remote.SignedURL(name, formsURLTTL)
	if err != nil {
		return "", fmt.Errorf("signing forms CSV for page %d: %w", page, err)
	}
	return url, nil
}
