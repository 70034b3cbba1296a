package physics

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/tomz197/collide/internal/geom"
)

// ExtremumEpsilon is the tolerance under which two vertex projections count
// as the same extremum.
const ExtremumEpsilon = 1e-6

// ErrInvalidPolygon is returned for vertex loops that are not closed, convex
// and counter-clockwise.
var ErrInvalidPolygon = errors.New("invalid convex polygon")

// DefaultPolygonVerts is the closed diamond used when a config omits verts.
func DefaultPolygonVerts() []geom.Vec2 {
	return []geom.Vec2{{X: 0, Y: 1}, {X: -1, Y: 0}, {X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}}
}

// ConvexPolygon is a convex shape given by centroid-relative vertices in
// counter-clockwise order. The loop is closed: the first vertex is repeated
// last, so (Verts[i], Verts[i+1]) enumerates every edge.
type ConvexPolygon struct {
	Verts []geom.Vec2
	// Normals[i] is the outward normal of edge i, not normalized.
	Normals []geom.Vec2
	body    *Body
}

// NewConvexPolygon validates verts and attaches the polygon to body.
func NewConvexPolygon(body *Body, verts []geom.Vec2) (*ConvexPolygon, error) {
	if err := ValidatePolygon(verts); err != nil {
		return nil, err
	}
	verts = slices.Clone(verts)
	normals := make([]geom.Vec2, len(verts)-1)
	for i := range normals {
		e := verts[i+1].Sub(verts[i])
		normals[i] = geom.Vec2{X: e.Y, Y: -e.X}
	}
	return &ConvexPolygon{Verts: verts, Normals: normals, body: body}, nil
}

// ValidatePolygon checks the closed counter-clockwise convex loop precondition
// the collision routines rely on.
func ValidatePolygon(verts []geom.Vec2) error {
	if len(verts) < 4 {
		return fmt.Errorf("%w: need at least 3 vertices plus the closing repeat, got %d entries",
			ErrInvalidPolygon, len(verts))
	}
	if verts[0] != verts[len(verts)-1] {
		return fmt.Errorf("%w: loop is not closed, first %v last %v",
			ErrInvalidPolygon, verts[0], verts[len(verts)-1])
	}
	var area float64
	for i := 0; i+1 < len(verts); i++ {
		if verts[i] == verts[i+1] {
			return fmt.Errorf("%w: zero-length edge %d", ErrInvalidPolygon, i)
		}
		area += cross(verts[i], verts[i+1])
	}
	if area <= 0 {
		return fmt.Errorf("%w: vertices wind clockwise", ErrInvalidPolygon)
	}
	n := len(verts) - 1
	for i := 0; i < n; i++ {
		e1 := verts[i+1].Sub(verts[i])
		e2 := verts[(i+1)%n+1].Sub(verts[i+1])
		if cross(e1, e2) < 0 {
			return fmt.Errorf("%w: reflex vertex %d", ErrInvalidPolygon, (i+1)%n)
		}
	}
	return nil
}

func cross(a, b geom.Vec2) float64 { return a.X*b.Y - a.Y*b.X }

// Kind returns KindConvexPolygon.
func (p *ConvexPolygon) Kind() Kind { return KindConvexPolygon }

// Body returns the body the polygon is attached to.
func (p *ConvexPolygon) Body() *Body { return p.body }

// GenerateInertia sums the per-edge triangle terms against the centroid and
// scales by mass.
func (p *ConvexPolygon) GenerateInertia() {
	var sum float64
	for i := 0; i+1 < len(p.Verts); i++ {
		a, b := p.Verts[i], p.Verts[i+1]
		sum += (a.LenSq() + b.LenSq() + a.Dot(b)) / 6
	}
	p.body.Inertia = sum * p.body.Mass
}

// CollisionInfo tests the polygon against other at both bodies' current poses.
func (p *ConvexPolygon) CollisionInfo(other Collider) (Contact, error) {
	return collisionInfo(p, other)
}

// extremum is a projected value together with every vertex that reached it
// within ExtremumEpsilon.
type extremum struct {
	value float64
	verts []int
}

func (e extremum) has(i int) bool { return slices.Contains(e.verts, i) }

// span is the projection of a vertex loop on one axis.
type span struct {
	min, max extremum
}

// project tracks near-ties as sets. A tie takes the latest value and adds its
// index in front.
func project(points []geom.Vec2, axis geom.Vec2) span {
	s := span{
		min: extremum{value: math.Inf(1)},
		max: extremum{value: math.Inf(-1)},
	}
	for i, pt := range points {
		v := pt.Dot(axis)
		switch {
		case v-ExtremumEpsilon > s.max.value:
			s.max = extremum{value: v, verts: []int{i}}
		case v+ExtremumEpsilon > s.max.value:
			s.max = extremum{value: v, verts: append([]int{i}, s.max.verts...)}
		}
		switch {
		case v+ExtremumEpsilon < s.min.value:
			s.min = extremum{value: v, verts: []int{i}}
		case v-ExtremumEpsilon < s.min.value:
			s.min = extremum{value: v, verts: append([]int{i}, s.min.verts...)}
		}
	}
	return s
}

// axis is a world-space edge normal and the edge it came from.
type axis struct {
	normal geom.Vec2
	own    bool // true when the edge belongs to the querying polygon
	edge   int
}

func worldPoints(p *ConvexPolygon, pose Pose) []geom.Vec2 {
	out := make([]geom.Vec2, len(p.Verts))
	origin := pose.Position.XY()
	for i, v := range p.Verts {
		out[i] = geom.LocalToWorld(v, pose.Rotation, origin)
	}
	return out
}

// penetration is the best contact candidate found so far.
type penetration struct {
	depth  float64
	point  geom.Vec2
	vector geom.Vec2
	found  bool
}

// consider records a vertex of the penetrating loop that lies within the
// extent of edge on the axis-owning loop, keeping the deepest overlap.
func (b *penetration) consider(owner []geom.Vec2, edge int, n geom.Vec2, pts []geom.Vec2, cand []int, depth, sign float64) {
	dir := owner[edge].Sub(owner[edge+1])
	e1, e2 := dir.Dot(owner[edge]), dir.Dot(owner[edge+1])
	lo, hi := min(e1, e2), max(e1, e2)
	for _, i := range cand {
		pt := pts[i]
		if d := dir.Dot(pt); d < lo || d > hi {
			continue
		}
		if depth <= b.depth {
			continue
		}
		b.depth = depth
		b.point = pt
		b.vector = n.Scale(sign * n.Dot(pt.Sub(owner[edge+1])) / n.LenSq())
		b.found = true
	}
}

// collidePolygons runs the separating axis test over both polygons' edge
// normals and rebuilds a contact from the deepest vertex that crosses an
// extreme edge. It also returns how many axes were examined before it stopped.
func collidePolygons(a *ConvexPolygon, pa Pose, b *ConvexPolygon, pb Pose) (Contact, int) {
	axes := make([]axis, 0, len(a.Normals)+len(b.Normals))
	for i, n := range a.Normals {
		axes = append(axes, axis{normal: geom.Rotate(n, pa.Rotation), own: true, edge: i})
	}
	for i, n := range b.Normals {
		axes = append(axes, axis{normal: geom.Rotate(n, pb.Rotation), own: false, edge: i})
	}

	selfPts := worldPoints(a, pa)
	otherPts := worldPoints(b, pb)

	best := penetration{depth: -1}
	for k, ax := range axes {
		n := ax.normal
		s := project(selfPts, n)
		o := project(otherPts, n)

		if s.min.value > o.max.value || s.max.value < o.min.value {
			return Contact{}, k + 1
		}

		if ax.own {
			if s.min.value < o.min.value && o.min.value < s.max.value && s.max.has(ax.edge) {
				best.consider(selfPts, ax.edge, n, otherPts, o.min.verts, s.max.value-o.min.value, 1)
			}
			if s.max.value > o.max.value && o.max.value > s.min.value && s.min.has(ax.edge) {
				best.consider(selfPts, ax.edge, n, otherPts, o.max.verts, o.max.value-s.min.value, 1)
			}
		} else {
			if o.min.value < s.min.value && s.min.value < o.max.value && o.max.has(ax.edge) {
				best.consider(otherPts, ax.edge, n, selfPts, s.min.verts, o.max.value-s.min.value, -1)
			}
			if o.max.value > s.max.value && s.max.value > o.min.value && o.min.has(ax.edge) {
				best.consider(otherPts, ax.edge, n, selfPts, s.max.verts, s.max.value-o.min.value, -1)
			}
		}
	}

	// Overlap with no tracked vertex inside an extreme edge counts as no
	// collision.
	if !best.found {
		return Contact{}, len(axes)
	}
	z := pa.Position.Z
	return Contact{
		Collision: true,
		Point:     best.point.WithZ(z),
		Vector:    best.vector.WithZ(z),
	}, len(axes)
}
