package physics

import (
	"slices"

	"github.com/tomz197/collide/internal/geom"
)

// Body is the rigid-body state a collider reads from. The integrator owns it;
// the collision core only writes Inertia.
type Body struct {
	ID       int
	Name     string
	Position geom.Vec3 // Z is a layer, carried into contacts but not used for distance
	Rotation float64   // radians, counter-clockwise
	Mass     float64
	Inertia  float64
	Ignored  []int // body IDs the caller skips when pairing
}

// Pose is the part of a body a collision query depends on.
type Pose struct {
	Position geom.Vec3
	Rotation float64
}

// Pose returns the body's current position and rotation.
func (b *Body) Pose() Pose {
	return Pose{Position: b.Position, Rotation: b.Rotation}
}

// Ignores reports whether id is in the body's ignored list.
func (b *Body) Ignores(id int) bool {
	return slices.Contains(b.Ignored, id)
}
