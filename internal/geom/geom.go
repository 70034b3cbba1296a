// Package geom provides the small vector toolkit the collision core works in.
package geom

import "math"

// Vec2 is a point or direction in the plane.
type Vec2 struct {
	X, Y float64
}

// Vec3 is a planar position carrying a third component.
// Z is a layer value: it is passed through results, never used for distance.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale multiplies both components by f.
func (v Vec2) Scale(f float64) Vec2 {
	return Vec2{v.X * f, v.Y * f}
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// LenSq returns the squared length.
// Use this when comparing lengths to avoid the sqrt cost.
func (v Vec2) LenSq() float64 { return v.X*v.X + v.Y*v.Y }

// Len returns the Euclidean length.
func (v Vec2) Len() float64 { return math.Sqrt(v.LenSq()) }

// Distance calculates the Euclidean distance between two points.
func (v Vec2) Distance(o Vec2) float64 {
	return Distance(v.X, v.Y, o.X, o.Y)
}

// WithZ lifts v into three components.
func (v Vec2) WithZ(z float64) Vec3 { return Vec3{v.X, v.Y, z} }

// Add returns v + o, layer included.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v - o, layer included.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale multiplies all three components by f.
func (v Vec3) Scale(f float64) Vec3 {
	return Vec3{v.X * f, v.Y * f, v.Z * f}
}

// XY drops the layer component.
func (v Vec3) XY() Vec2 { return Vec2{v.X, v.Y} }

// IsFinite reports whether every component is a finite number.
func (v Vec3) IsFinite() bool {
	return IsFinite(v.X) && IsFinite(v.Y) && IsFinite(v.Z)
}

// IsFinite reports whether f is neither NaN nor an infinity.
func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Sqrt(DistanceSquared(x1, y1, x2, y2))
}

// DistanceSquared calculates the squared distance between two points.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// LocalToWorld rotates a local-frame point counter-clockwise by rotation
// (radians) and then translates it.
func LocalToWorld(p Vec2, rotation float64, translation Vec2) Vec2 {
	sin, cos := math.Sincos(rotation)
	return Vec2{
		X: p.X*cos - p.Y*sin + translation.X,
		Y: p.X*sin + p.Y*cos + translation.Y,
	}
}

// Rotate applies the rotation part of LocalToWorld only. Used for directions.
func Rotate(p Vec2, rotation float64) Vec2 {
	return LocalToWorld(p, rotation, Vec2{})
}
