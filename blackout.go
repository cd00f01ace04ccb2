// Package blackout provides page-level review and redaction of processed
// documents.
//
// A document arrives as an extraction result (text lines, key-value
// pairs, and tables, each positioned by normalized bounding boxes) plus
// rendered page images. blackout lets a reviewer browse that content by
// page, search it, mark rectangular regions for redaction, and export a
// raster image of a page with every marked region blacked out.
//
// Basic usage:
//
//	st := store.New()
//	st.Put(model.Document{ID: "d1", Name: "scan.pdf",
//		ResultDirectory: fetch.ResultDirectory("scan.pdf", "d1")})
//
//	sess := blackout.NewSession(st, remote.NewDir("artifacts"))
//	if err := sess.Mount(ctx, "d1"); err != nil {
//		// handle error
//	}
//	defer sess.Unmount()
//	go sess.Fetch(ctx)
//
// Once the fetch succeeds, the session serves derived views and accepts
// redaction commands:
//
//	sess.Search("account number")
//	sess.RedactMatches()
//	name, err := sess.ExportRedacted(pageImage, raster.DirSink{Root: "out"})
//
// State lives in the [store.Store], not the session: a session is a
// transient reader/writer, and redactions are cleared when it unmounts.
// Subscribing to the store is how a front end learns to re-render.
package blackout

import (
	"log/slog"

	"github.com/tsawler/blackout/search"
)

// Option configures a Session.
type Option func(*Session)

// WithMatcher sets the search-match policy for the session's derived
// views. The default is case-insensitive substring matching.
func WithMatcher(m *search.Matcher) Option {
	return func(s *Session) {
		s.matcher = m
	}
}

// WithLogger sets the logger used for fetch lifecycle events.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}
