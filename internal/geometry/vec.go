package geometry

import "github.com/go-gl/mathgl/mgl32"

// Vec2 is a 2D point or offset in canvas pixels.
type Vec2 = mgl32.Vec2

// NewAABBFromOriginSizeVec is NewAABBFromOriginSize taking the origin and
// size as Vec2, for callers already holding mgl32 vectors.
func NewAABBFromOriginSizeVec(origin, size Vec2) AABB {
	return NewAABBFromOriginSize(float64(origin[0]), float64(origin[1]), float64(size[0]), float64(size[1]))
}
