package shape

import (
	"fmt"
	"math"
)

// BoundingBox is an axis-aligned box. Faces may be infinite. A box whose
// min exceeds its max on some axis is empty; that only arises from
// Shrink or a negative Expand and is never an error.
type BoundingBox struct {
	XMin, XMax float64
	YMin, YMax float64
	ZMin, ZMax float64
}

// NewBoundingBox returns a box with each min/max pair sorted.
func NewBoundingBox(xmin, xmax, ymin, ymax, zmin, zmax float64) BoundingBox {
	xmin, xmax = order(xmin, xmax)
	ymin, ymax = order(ymin, ymax)
	zmin, zmax = order(zmin, zmax)
	return BoundingBox{xmin, xmax, ymin, ymax, zmin, zmax}
}

// Infinite returns the box covering all of space.
func Infinite() BoundingBox {
	inf := math.Inf(1)
	return BoundingBox{-inf, inf, -inf, inf, -inf, inf}
}

func order(a, b float64) (float64, float64) {
	if b < a {
		return b, a
	}
	return a, b
}

// Merge returns the smallest box containing both b and o.
func (b BoundingBox) Merge(o BoundingBox) BoundingBox {
	return BoundingBox{
		math.Min(b.XMin, o.XMin), math.Max(b.XMax, o.XMax),
		math.Min(b.YMin, o.YMin), math.Max(b.YMax, o.YMax),
		math.Min(b.ZMin, o.ZMin), math.Max(b.ZMax, o.ZMax),
	}
}

// Shrink returns the overlap of b and o. Disjoint inputs give an empty box.
func (b BoundingBox) Shrink(o BoundingBox) BoundingBox {
	return BoundingBox{
		math.Max(b.XMin, o.XMin), math.Min(b.XMax, o.XMax),
		math.Max(b.YMin, o.YMin), math.Min(b.YMax, o.YMax),
		math.Max(b.ZMin, o.ZMin), math.Min(b.ZMax, o.ZMax),
	}
}

// KeepLeft returns b. Removing material never grows a shape, so the left
// operand's box still contains a difference.
func (b BoundingBox) KeepLeft(BoundingBox) BoundingBox { return b }

// Translate moves the box by (dx, dy, dz).
func (b BoundingBox) Translate(dx, dy, dz float64) BoundingBox {
	return BoundingBox{
		b.XMin + dx, b.XMax + dx,
		b.YMin + dy, b.YMax + dy,
		b.ZMin + dz, b.ZMax + dz,
	}
}

// Expand grows every face outward by amount; a negative amount shrinks.
func (b BoundingBox) Expand(amount float64) BoundingBox {
	return BoundingBox{
		b.XMin - amount, b.XMax + amount,
		b.YMin - amount, b.YMax + amount,
		b.ZMin - amount, b.ZMax + amount,
	}
}

// IsFinite reports whether all six faces are finite.
func (b BoundingBox) IsFinite() bool {
	for _, v := range b.faces() {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return false
		}
	}
	return true
}

// IsEmpty reports whether some axis has min > max.
func (b BoundingBox) IsEmpty() bool {
	return b.XMin > b.XMax || b.YMin > b.YMax || b.ZMin > b.ZMax
}

// Overlaps reports whether b and o share interior volume. Boxes that only
// touch on a face do not overlap.
func (b BoundingBox) Overlaps(o BoundingBox) bool {
	return b.XMin < o.XMax && o.XMin < b.XMax &&
		b.YMin < o.YMax && o.YMin < b.YMax &&
		b.ZMin < o.ZMax && o.ZMin < b.ZMax
}

// NormalizeForMeshing replaces every non-finite min face with -1 and every
// non-finite max face with +1. The flag reports whether anything changed.
func (b BoundingBox) NormalizeForMeshing() (BoundingBox, bool) {
	f := b.faces()
	changed := false
	for i, v := range f {
		if !math.IsInf(v, 0) && !math.IsNaN(v) {
			continue
		}
		changed = true
		if i%2 == 0 {
			f[i] = -1
		} else {
			f[i] = 1
		}
	}
	if !changed {
		return b, false
	}
	return NewBoundingBox(f[0], f[1], f[2], f[3], f[4], f[5]), true
}

func (b BoundingBox) faces() [6]float64 {
	return [6]float64{b.XMin, b.XMax, b.YMin, b.YMax, b.ZMin, b.ZMax}
}

func (b BoundingBox) XLength() float64 { return b.XMax - b.XMin }
func (b BoundingBox) YLength() float64 { return b.YMax - b.YMin }
func (b BoundingBox) ZLength() float64 { return b.ZMax - b.ZMin }

// Center returns the midpoint of the box.
func (b BoundingBox) Center() [3]float64 {
	return [3]float64{
		(b.XMin + b.XMax) / 2,
		(b.YMin + b.YMax) / 2,
		(b.ZMin + b.ZMax) / 2,
	}
}

// DiagonalLength returns the distance between opposite corners.
func (b BoundingBox) DiagonalLength() float64 {
	return math.Sqrt(b.XLength()*b.XLength() + b.YLength()*b.YLength() + b.ZLength()*b.ZLength())
}

func (b BoundingBox) String() string {
	return fmt.Sprintf("[%g, %g] x [%g, %g] x [%g, %g]", b.XMin, b.XMax, b.YMin, b.YMax, b.ZMin, b.ZMax)
}
