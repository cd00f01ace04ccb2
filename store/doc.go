// Package store provides the shared in-memory state for document review
// sessions.
//
// The [Store] owns every piece of state that outlives a single event:
// fetched documents and their fetch [Status], the per-document redaction
// sets, the current page per document, the active search query, the
// session [Track], and the layout header. Views hold no authoritative
// copies; every mutation round-trips through the store, and subscribers
// are notified after each one so views re-render on change rather than
// polling.
//
// Redaction sets are append-only ordered lists per (document, page) and
// are deliberately session-scoped: they are cleared when a review session
// unmounts, not persisted.
package store
