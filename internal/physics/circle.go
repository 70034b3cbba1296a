package physics

import (
	"fmt"

	"github.com/tomz197/collide/internal/geom"
)

// DefaultCircleRadius is used when a circle config omits its radius.
const DefaultCircleRadius = 100

// Circle is a disk centred on its body's position.
type Circle struct {
	Radius float64
	body   *Body
}

// NewCircle attaches a circle of the given radius to body.
func NewCircle(body *Body, radius float64) *Circle {
	return &Circle{Radius: radius, body: body}
}

// Kind returns KindCircle.
func (c *Circle) Kind() Kind { return KindCircle }

// Body returns the body the circle is attached to.
func (c *Circle) Body() *Body { return c.body }

// GenerateInertia sets the solid-disk inertia about the centre.
func (c *Circle) GenerateInertia() {
	c.body.Inertia = 0.5 * c.body.Mass * c.Radius * c.Radius
}

// CollisionInfo tests the circle against other at both bodies' current poses.
func (c *Circle) CollisionInfo(other Collider) (Contact, error) {
	return collisionInfo(c, other)
}

// collideCircles separates on planar centre distance. The contact point sits
// on the centre line, pulled from the edge of a toward the overlap midpoint
// by half the relative overlap.
func collideCircles(a *Circle, pa Pose, b *Circle, pb Pose) (Contact, error) {
	disp := pb.Position.Sub(pa.Position)
	dist := disp.XY().Len()
	radii := a.Radius + b.Radius
	// Written as a negated < so NaN positions report no collision.
	if !(dist < radii) {
		return Contact{}, nil
	}
	if dist == 0 {
		return Contact{}, fmt.Errorf("circle centres coincide at (%g, %g): %w",
			pa.Position.X, pa.Position.Y, ErrDegenerateGeometry)
	}
	return Contact{
		Collision: true,
		Point:     disp.Scale(a.Radius/dist - 0.5*(1-dist/radii)).Add(pa.Position),
		Vector:    disp.Scale(-(radii - dist) / dist),
	}, nil
}

// collideCirclePolygon finds the point on the polygon boundary closest to the
// circle centre. The first edge wins exact ties.
func collideCirclePolygon(c *Circle, pc Pose, p *ConvexPolygon, pp Pose) (Contact, error) {
	centre := pc.Position.XY()
	origin := pp.Position.XY()

	bestDist := c.Radius + 100
	var best geom.Vec2
	for i := 0; i+1 < len(p.Verts); i++ {
		a := geom.LocalToWorld(p.Verts[i], pp.Rotation, origin)
		b := geom.LocalToWorld(p.Verts[i+1], pp.Rotation, origin)
		edge := b.Sub(a)
		edgeLen := edge.Len()
		dir := edge.Scale(1 / edgeLen)

		var closest geom.Vec2
		switch t := centre.Sub(a).Dot(dir); {
		case t < 0:
			closest = a
		case t > edgeLen:
			closest = b
		default:
			closest = a.Add(dir.Scale(t))
		}

		if d := closest.Distance(centre); d < bestDist {
			bestDist = d
			best = closest
		}
	}

	if !(bestDist < c.Radius) {
		return Contact{}, nil
	}
	if bestDist == 0 {
		return Contact{}, fmt.Errorf("circle centre on polygon boundary at (%g, %g): %w",
			best.X, best.Y, ErrDegenerateGeometry)
	}
	point := best.WithZ(pc.Position.Z)
	return Contact{
		Collision: true,
		Point:     point,
		Vector:    pc.Position.Sub(point).Scale((c.Radius - bestDist) / bestDist),
	}, nil
}
