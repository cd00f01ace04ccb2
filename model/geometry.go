package model

import (
	"image"
	"math"
)

// BoundingBox represents a normalized rectangle positioned on a page.
// All four values are fractions of the page dimensions (0..1), with the
// origin at the top-left corner of the page. Values are not clamped by
// this layer; upstream extraction normally guarantees the 0..1 range,
// and callers that need a hard guarantee can use Clamp.
type BoundingBox struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// NewBoundingBox creates a bounding box from normalized coordinates.
func NewBoundingBox(left, top, width, height float64) BoundingBox {
	return BoundingBox{Left: left, Top: top, Width: width, Height: height}
}

// Right returns the right edge coordinate.
func (b BoundingBox) Right() float64 {
	return b.Left + b.Width
}

// Bottom returns the bottom edge coordinate.
func (b BoundingBox) Bottom() float64 {
	return b.Top + b.Height
}

// Center returns the center point as (x, y) fractions.
func (b BoundingBox) Center() (float64, float64) {
	return b.Left + b.Width/2, b.Top + b.Height/2
}

// Contains checks if a normalized point is inside the bounding box.
func (b BoundingBox) Contains(x, y float64) bool {
	return x >= b.Left && x <= b.Right() &&
		y >= b.Top && y <= b.Bottom()
}

// Intersects checks if two bounding boxes intersect.
func (b BoundingBox) Intersects(other BoundingBox) bool {
	return !(b.Right() < other.Left ||
		b.Left > other.Right() ||
		b.Bottom() < other.Top ||
		b.Top > other.Bottom())
}

// Intersection returns the intersection of two bounding boxes.
// The zero box is returned when they do not intersect.
func (b BoundingBox) Intersection(other BoundingBox) BoundingBox {
	if !b.Intersects(other) {
		return BoundingBox{}
	}

	left := math.Max(b.Left, other.Left)
	top := math.Max(b.Top, other.Top)
	right := math.Min(b.Right(), other.Right())
	bottom := math.Min(b.Bottom(), other.Bottom())

	return BoundingBox{
		Left:   left,
		Top:    top,
		Width:  right - left,
		Height: bottom - top,
	}
}

// Union returns the union of two bounding boxes.
func (b BoundingBox) Union(other BoundingBox) BoundingBox {
	left := math.Min(b.Left, other.Left)
	top := math.Min(b.Top, other.Top)
	right := math.Max(b.Right(), other.Right())
	bottom := math.Max(b.Bottom(), other.Bottom())

	return BoundingBox{
		Left:   left,
		Top:    top,
		Width:  right - left,
		Height: bottom - top,
	}
}

// Area returns the area of the bounding box in fractional units.
func (b BoundingBox) Area() float64 {
	return b.Width * b.Height
}

// Expand expands the bounding box by a margin on all sides.
func (b BoundingBox) Expand(margin float64) BoundingBox {
	return BoundingBox{
		Left:   b.Left - margin,
		Top:    b.Top - margin,
		Width:  b.Width + 2*margin,
		Height: b.Height + 2*margin,
	}
}

// Clamp restricts the bounding box to the 0..1 page range. Boxes entirely
// outside the page clamp to a zero-area box on the nearest edge.
func (b BoundingBox) Clamp() BoundingBox {
	left := math.Min(math.Max(b.Left, 0), 1)
	top := math.Min(math.Max(b.Top, 0), 1)
	right := math.Min(math.Max(b.Right(), 0), 1)
	bottom := math.Min(math.Max(b.Bottom(), 0), 1)

	return BoundingBox{
		Left:   left,
		Top:    top,
		Width:  right - left,
		Height: bottom - top,
	}
}

// ToPixels converts the normalized box to pixel coordinates for a surface
// of the given intrinsic dimensions. Left and Width scale by width, Top
// and Height by height. Edges are rounded to the nearest pixel.
func (b BoundingBox) ToPixels(width, height int) image.Rectangle {
	w := float64(width)
	h := float64(height)
	return image.Rect(
		int(math.Round(b.Left*w)),
		int(math.Round(b.Top*h)),
		int(math.Round(b.Right()*w)),
		int(math.Round(b.Bottom()*h)),
	)
}

// IsEmpty returns true if the bounding box has zero area.
func (b BoundingBox) IsEmpty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// IsValid returns true if the bounding box has positive dimensions.
func (b BoundingBox) IsValid() bool {
	return b.Width > 0 && b.Height > 0
}
