// Package view computes derived, per-page views of a document's
// extraction result.
//
// Given a document, a current page, and a search query, [Builder.Build]
// produces a [PageView]: the document-level aggregates (all lines, all
// key-value pairs, table count), the page-level subsets, and the lines
// on the page that match the query.
//
// Build is memoized on an explicit [Key] of (document ID, analysis
// version, page, cleaned query). While the key is unchanged the same
// *PageView pointer is returned, so downstream consumers can use pointer
// identity to avoid redundant redraws.
package view
