// Package model provides the data model shared by the blackout library.
//
// This package defines the types that every other package produces or
// consumes: documents, extraction results, and the normalized geometry
// that positions extracted content and redactions on a page.
//
// # Documents and Analyses
//
// A [Document] identifies a file under review. Its [Analysis] holds the
// parsed extraction result: the [Line], [KeyValuePair], and [Table]
// values found on each page, plus a page count. Per-page accessors
// (LinesForPage, PairsForPage, TablesForPage) filter by 1-indexed page
// number while preserving extraction order.
//
// # Geometry
//
// All positions use [BoundingBox], a rectangle whose coordinates are
// fractions of the page dimensions (0..1) with the origin at the page's
// top-left corner. Fractional coordinates make boxes independent of the
// resolution at which a page is rendered; ToPixels converts a box to
// pixel coordinates for a concrete surface.
package model
