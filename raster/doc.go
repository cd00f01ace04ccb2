// Package raster produces downloadable redacted page images.
//
// The pipeline takes the rendered page surface and the page's redaction
// boxes, composites them, and emits a PNG:
//
//  1. Decode the surface and read its intrinsic pixel dimensions
//     ([DecodeSurface]).
//  2. Allocate a fresh raster at exactly that resolution and copy the
//     surface onto it pixel-for-pixel, no scaling.
//  3. Fill an opaque black rectangle for every redaction box, converting
//     normalized coordinates to pixels against the surface dimensions
//     and expanding each rectangle by [Margin] pixels on all sides.
//  4. Encode as PNG ([EncodePNG]) and hand the bytes to a [Sink]
//     ([Save]), named per [RedactedName].
//
// Export imposes no precondition on the box list: with no redactions it
// produces an unmodified copy. Callers gate the user-facing affordance
// on at least one redaction existing, not the pipeline.
package raster
