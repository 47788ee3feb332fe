// Package geometry provides the 2D vector and axis-aligned bounding-box
// primitives shared by the keyframe track, the square objects and the
// engine's hit-test and viewport-cull logic.
package geometry

// AABB is an axis-aligned bounding box in canvas coordinates.
type AABB struct {
	MinX, MinY, MaxX, MaxY float64
}

// NewAABBFromMinMax builds an AABB from its min and max corners.
func NewAABBFromMinMax(minX, minY, maxX, maxY float64) AABB {
	return AABB{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}

// NewAABBFromOriginSize builds an AABB from an origin (top-left corner)
// and a width/height. Produces identical semantics to NewAABBFromMinMax.
func NewAABBFromOriginSize(originX, originY, width, height float64) AABB {
	return AABB{
		MinX: originX,
		MinY: originY,
		MaxX: originX + width,
		MaxY: originY + height,
	}
}

// Contains reports whether (x, y) falls within the box, inclusive of edges.
func (b AABB) Contains(x, y float64) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// Intersects reports whether b and other overlap, via the standard
// separating-axis test on the two axes.
func (b AABB) Intersects(other AABB) bool {
	return b.MinX < other.MaxX && b.MaxX > other.MinX &&
		b.MinY < other.MaxY && b.MaxY > other.MinY
}
