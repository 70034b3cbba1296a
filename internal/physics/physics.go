// Package physics provides narrow-phase collision detection between circles
// and convex polygons attached to rigid bodies.
package physics

import (
	"errors"
	"fmt"

	"github.com/tomz197/collide/internal/geom"
)

// Kind names a collider variant. The values double as factory names.
type Kind string

const (
	KindCircle        Kind = "Circle"
	KindConvexPolygon Kind = "ConvexPolygon"
)

// Collider is a shape attached to a body.
// The closed variant set is {*Circle, *ConvexPolygon}; Collide matches on it.
type Collider interface {
	Kind() Kind
	// Body returns the body this collider was built for. It never changes.
	Body() *Body
	// GenerateInertia writes the body's rotational inertia from its mass and
	// this shape. It is a one-shot initialization call.
	GenerateInertia()
	// CollisionInfo tests this collider against other at the bodies' current poses.
	CollisionInfo(other Collider) (Contact, error)
}

// Contact is the result of a collision query. The zero value means no collision.
type Contact struct {
	Collision bool
	// Point is a representative world-space contact point.
	Point geom.Vec3
	// Vector is the minimum translation that separates the querying shape
	// from the other one. Its length is the penetration depth.
	Vector geom.Vec3
}

// Depth returns the planar length of the contact vector.
func (c Contact) Depth() float64 {
	return c.Vector.XY().Len()
}

// ErrDegenerateGeometry is returned when a contact vector would need a
// division by zero: coincident circle centres, or a circle centre lying
// exactly on a polygon edge.
var ErrDegenerateGeometry = errors.New("degenerate geometry")

// ErrNilCollider is returned when a query is handed no collider.
var ErrNilCollider = errors.New("nil collider")

// UnsupportedShapePairError is returned when neither collider knows how to
// test against the other.
type UnsupportedShapePairError struct {
	Self, Other Kind
}

// Error names both kinds.
func (e *UnsupportedShapePairError) Error() string {
	return fmt.Sprintf("collision not handled: %s to %s", e.Self, e.Other)
}

// Collide tests a against b with explicit poses. CollisionInfo is Collide
// with the bodies' current poses; World calls it on snapshotted poses.
func Collide(a Collider, pa Pose, b Collider, pb Pose) (Contact, error) {
	if a == nil || b == nil {
		return Contact{}, ErrNilCollider
	}
	switch self := a.(type) {
	case *Circle:
		switch other := b.(type) {
		case *Circle:
			return collideCircles(self, pa, other, pb)
		case *ConvexPolygon:
			return collideCirclePolygon(self, pa, other, pb)
		}
	case *ConvexPolygon:
		switch other := b.(type) {
		case *Circle:
			return collideCirclePolygon(other, pb, self, pa)
		case *ConvexPolygon:
			c, _ := collidePolygons(self, pa, other, pb)
			return c, nil
		}
	}
	return Contact{}, &UnsupportedShapePairError{Self: a.Kind(), Other: b.Kind()}
}

// collisionInfo backs every variant's CollisionInfo.
func collisionInfo(self, other Collider) (Contact, error) {
	if other == nil {
		return Contact{}, ErrNilCollider
	}
	return Collide(self, self.Body().Pose(), other, other.Body().Pose())
}
