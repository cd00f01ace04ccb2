package store

import (
	"sync"

	"github.com/google/uuid"

	"github.com/tsawler/blackout/model"
	"github.com/tsawler/blackout/search"
)

// Status is the lifecycle state of a document's fetch.
type Status int

const (
	// StatusUnfetched means no fetch has been started for the document.
	StatusUnfetched Status = iota
	// StatusPending means a fetch is in flight.
	StatusPending
	// StatusSuccess means the most recent fetch completed.
	StatusSuccess
	// StatusError means the most recent fetch failed.
	StatusError
)

// String returns a string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unfetched"
	}
}

// Track distinguishes a plain document-viewing session from a
// redaction-editing session. It gates which affordances a front end
// shows; the store itself treats both identically.
type Track int

const (
	// TrackSearch is the plain viewing/search mode.
	TrackSearch Track = iota
	// TrackRedaction enables the redaction workflow.
	TrackRedaction
)

// HeaderProps is the page heading shown by a surrounding layout shell.
type HeaderProps struct {
	Title    string
	Subtitle string
}

// Store holds all shared review state: documents and their fetch status,
// per-document redaction sets, and per-session view state (current page,
// search query, track, header). All methods are safe for concurrent use,
// though in practice there is one logical writer per redaction set and
// mutations are serialized by the caller's event handling.
//
// Every mutation notifies subscribers, which is how views learn to
// re-render without polling.
type Store struct {
	mu          sync.Mutex
	docs        map[string]*model.Document
	status      map[string]Status
	versions    map[string]int
	redactions  map[string]map[int][]model.BoundingBox
	currentPage map[string]int
	searchQuery string
	track       Track
	header      HeaderProps

	nextSubID int
	subs      map[int]func()
}

// New creates an empty store.
func New() *Store {
	return &Store{
		docs:        make(map[string]*model.Document),
		status:      make(map[string]Status),
		versions:    make(map[string]int),
		redactions:  make(map[string]map[int][]model.BoundingBox),
		currentPage: make(map[string]int),
		subs:        make(map[int]func()),
	}
}

// Subscribe registers fn to be called after every mutation and returns a
// function that removes the subscription. Callbacks run synchronously on
// the mutating goroutine, outside the store lock.
func (s *Store) Subscribe(fn func()) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// notify calls every subscriber. Must be called without the lock held.
func (s *Store) notify() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Put stores a document, merging into any existing record with the same
// ID. A document with an empty ID is assigned a generated one. When the
// incoming document carries a fresh analysis, the analysis is stamped
// with the next version number for that document so derived views can
// detect the change. The document's ID is returned.
func (s *Store) Put(doc model.Document) string {
	s.mu.Lock()
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}

	if doc.Analysis != nil {
		s.versions[doc.ID]++
		doc.Analysis.Version = s.versions[doc.ID]
	}

	if existing, ok := s.docs[doc.ID]; ok {
		existing.Merge(doc)
	} else {
		stored := doc
		s.docs[doc.ID] = &stored
	}
	id := doc.ID
	s.mu.Unlock()

	s.notify()
	return id
}

// Get returns the document with the given ID. The second return value is
// false when the document is unknown.
func (s *Store) Get(id string) (model.Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[id]
	if !ok {
		return model.Document{}, false
	}
	return *doc, true
}

// SetStatus records the fetch lifecycle state for a document.
func (s *Store) SetStatus(id string, status Status) {
	s.mu.Lock()
	s.status[id] = status
	s.mu.Unlock()

	s.notify()
}

// Status returns the fetch lifecycle state for a document.
func (s *Store) Status(id string) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status[id]
}

// AddRedactions appends boxes to the redaction set for (document, page),
// in order. Duplicate boxes are legal and additive.
func (s *Store) AddRedactions(id string, page int, boxes ...model.BoundingBox) {
	if len(boxes) == 0 {
		return
	}

	s.mu.Lock()
	pages, ok := s.redactions[id]
	if !ok {
		pages = make(map[int][]model.BoundingBox)
		s.redactions[id] = pages
	}
	pages[page] = append(pages[page], boxes...)
	s.mu.Unlock()

	s.notify()
}

// Redactions returns a copy of the redaction list for (document, page),
// in append order.
func (s *Store) Redactions(id string, page int) []model.BoundingBox {
	s.mu.Lock()
	defer s.mu.Unlock()

	pages, ok := s.redactions[id]
	if !ok {
		return nil
	}
	return append([]model.BoundingBox(nil), pages[page]...)
}

// AllRedactions returns a copy of every page's redaction list for a
// document.
func (s *Store) AllRedactions(id string) map[int][]model.BoundingBox {
	s.mu.Lock()
	defer s.mu.Unlock()

	pages, ok := s.redactions[id]
	if !ok {
		return nil
	}
	out := make(map[int][]model.BoundingBox, len(pages))
	for page, boxes := range pages {
		out[page] = append([]model.BoundingBox(nil), boxes...)
	}
	return out
}

// RedactionCount returns the total number of redactions across all pages
// of a document.
func (s *Store) RedactionCount(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, boxes := range s.redactions[id] {
		n += len(boxes)
	}
	return n
}

// ClearRedactions removes all redaction state for a document, across all
// pages.
func (s *Store) ClearRedactions(id string) {
	s.mu.Lock()
	delete(s.redactions, id)
	s.mu.Unlock()

	s.notify()
}

// SetCurrentPage records the page a document's view is showing.
func (s *Store) SetCurrentPage(id string, page int) {
	s.mu.Lock()
	s.currentPage[id] = page
	s.mu.Unlock()

	s.notify()
}

// CurrentPage returns the page a document's view is showing, defaulting
// to 1.
func (s *Store) CurrentPage(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	page, ok := s.currentPage[id]
	if !ok || page < 1 {
		return 1
	}
	return page
}

// SetSearchQuery records the active search query as typed.
func (s *Store) SetSearchQuery(q string) {
	s.mu.Lock()
	s.searchQuery = q
	s.mu.Unlock()

	s.notify()
}

// CleanSearchQuery returns the active search query with surrounding and
// internal whitespace normalized.
func (s *Store) CleanSearchQuery() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return search.CleanQuery(s.searchQuery)
}

// SetTrack records the session mode.
func (s *Store) SetTrack(t Track) {
	s.mu.Lock()
	s.track = t
	s.mu.Unlock()

	s.notify()
}

// Track returns the session mode.
func (s *Store) Track() Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.track
}

// SetHeaderProps records the heading for the surrounding layout shell.
func (s *Store) SetHeaderProps(h HeaderProps) {
	s.mu.Lock()
	s.header = h
	s.mu.Unlock()

	s.notify()
}

// HeaderProps returns the current heading.
func (s *Store) HeaderProps() HeaderProps {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.header
}
