// Package geom provides the collision primitives used by the simulation.
// All predicates are pure and know nothing about entities; callers pass
// plain geometry.
package geom

import "github.com/jakecoffman/cp"

// Rect is an axis-aligned bounding box anchored at its top-left corner.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// RectCentered builds a Rect of the given size around a center point.
func RectCentered(center cp.Vector, width, height float64) Rect {
	return Rect{
		X:      center.X - width/2,
		Y:      center.Y - height/2,
		Width:  width,
		Height: height,
	}
}

// Center returns the rect's center point.
func (r Rect) Center() cp.Vector {
	return cp.Vector{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Overlaps reports whether two rects overlap. Separation is tested with
// strict inequalities, so rects that merely touch along an edge still count
// as overlapping. That is deliberate: at 60fps nothing is ever exactly
// pixel-aligned, and the forgiving edge keeps hits from slipping through.
func (r Rect) Overlaps(o Rect) bool {
	return !(r.X+r.Width < o.X || o.X+o.Width < r.X ||
		r.Y+r.Height < o.Y || o.Y+o.Height < r.Y)
}

// Overlaps reports whether rects a and b overlap. See Rect.Overlaps.
func Overlaps(a, b Rect) bool {
	return a.Overlaps(b)
}

// CircleOverlap reports whether two circles overlap: true when the center
// distance is strictly less than the sum of the radii.
func CircleOverlap(c1 cp.Vector, r1 float64, c2 cp.Vector, r2 float64) bool {
	return c1.Near(c2, r1+r2)
}

// PointInRect reports whether p lies inside r, inclusive on all four bounds.
func PointInRect(p cp.Vector, r Rect) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Clamp restricts v to the range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp linearly interpolates from a to b by t.
func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}
