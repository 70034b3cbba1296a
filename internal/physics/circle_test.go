package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/tomz197/collide/internal/geom"
)

const tol = 1e-9

func nearVec(a, b geom.Vec3) bool {
	return math.Abs(a.X-b.X) < tol && math.Abs(a.Y-b.Y) < tol && math.Abs(a.Z-b.Z) < tol
}

func circleAt(x, y, z, r float64) *Circle {
	return NewCircle(&Body{Position: geom.Vec3{X: x, Y: y, Z: z}, Mass: 1}, r)
}

func TestCircleInertia(t *testing.T) {
	c := NewCircle(&Body{Mass: 10}, 2)
	c.GenerateInertia()
	if got := c.Body().Inertia; got != 20 {
		t.Errorf("inertia = %v, want 20", got)
	}
}

func TestCircleCircle(t *testing.T) {
	tests := []struct {
		name       string
		a, b       *Circle
		collision  bool
		wantPoint  geom.Vec3
		wantVector geom.Vec3
	}{
		{
			name: "separated",
			a:    circleAt(0, 0, 0, 1),
			b:    circleAt(3, 0, 0, 1),
		},
		{
			name: "touching is not a collision",
			a:    circleAt(0, 0, 0, 1),
			b:    circleAt(2, 0, 0, 1),
		},
		{
			name:       "overlap by one",
			a:          circleAt(0, 0, 0, 1),
			b:          circleAt(1, 0, 0, 1),
			collision:  true,
			wantPoint:  geom.Vec3{X: 0.75},
			wantVector: geom.Vec3{X: -1},
		},
		{
			name:       "overlap seen from the other side",
			a:          circleAt(1, 0, 0, 1),
			b:          circleAt(0, 0, 0, 1),
			collision:  true,
			wantPoint:  geom.Vec3{X: 0.25},
			wantVector: geom.Vec3{X: 1},
		},
		{
			name:       "layer passes through the displacement",
			a:          circleAt(0, 0, 2, 1),
			b:          circleAt(1, 0, 4, 1),
			collision:  true,
			wantPoint:  geom.Vec3{X: 0.75, Z: 3.5},
			wantVector: geom.Vec3{X: -1, Z: -2},
		},
		{
			name:       "unequal radii on a diagonal",
			a:          circleAt(0, 0, 0, 2),
			b:          circleAt(3, 4, 0, 4),
			collision:  true,
			wantPoint:  geom.Vec3{X: 3 * (0.4 - 0.5/6), Y: 4 * (0.4 - 0.5/6)},
			wantVector: geom.Vec3{X: -0.6, Y: -0.8},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.a.CollisionInfo(tt.b)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Collision != tt.collision {
				t.Fatalf("collision = %v, want %v", got.Collision, tt.collision)
			}
			if !tt.collision {
				if got != (Contact{}) {
					t.Errorf("non-colliding result carries data: %+v", got)
				}
				return
			}
			if !nearVec(got.Point, tt.wantPoint) {
				t.Errorf("point = %v, want %v", got.Point, tt.wantPoint)
			}
			if !nearVec(got.Vector, tt.wantVector) {
				t.Errorf("vector = %v, want %v", got.Vector, tt.wantVector)
			}
		})
	}
}

func TestCircleCirclePenetrationDepth(t *testing.T) {
	a, b := circleAt(0, 0, 0, 1), circleAt(1, 0, 0, 1)
	got, err := a.CollisionInfo(b)
	if err != nil {
		t.Fatal(err)
	}
	// radii 2, distance 1: depth 1 along the centre line.
	if d := got.Depth(); math.Abs(d-1) > tol {
		t.Errorf("depth = %v, want 1", d)
	}
}

func TestCircleCircleCoincidentCentres(t *testing.T) {
	a, b := circleAt(4, 4, 0, 1), circleAt(4, 4, 0, 2)
	_, err := a.CollisionInfo(b)
	if !errors.Is(err, ErrDegenerateGeometry) {
		t.Fatalf("err = %v, want ErrDegenerateGeometry", err)
	}
}

func squareVerts(half float64) []geom.Vec2 {
	return []geom.Vec2{
		{X: -half, Y: -half}, {X: half, Y: -half}, {X: half, Y: half}, {X: -half, Y: half}, {X: -half, Y: -half},
	}
}

func polygonAt(t *testing.T, x, y, z, rot float64, verts []geom.Vec2) *ConvexPolygon {
	t.Helper()
	p, err := NewConvexPolygon(&Body{Position: geom.Vec3{X: x, Y: y, Z: z}, Rotation: rot, Mass: 1}, verts)
	if err != nil {
		t.Fatalf("NewConvexPolygon: %v", err)
	}
	return p
}

func TestCirclePolygon(t *testing.T) {
	tests := []struct {
		name       string
		circle     *Circle
		poly       func(t *testing.T) *ConvexPolygon
		collision  bool
		wantPoint  geom.Vec3
		wantVector geom.Vec3
	}{
		{
			name:   "clear of the square",
			circle: circleAt(3, 0, 0, 1),
			poly:   func(t *testing.T) *ConvexPolygon { return polygonAt(t, 0, 0, 0, 0, squareVerts(1)) },
		},
		{
			name:       "overlapping the right edge",
			circle:     circleAt(1.5, 0, 0, 1),
			poly:       func(t *testing.T) *ConvexPolygon { return polygonAt(t, 0, 0, 0, 0, squareVerts(1)) },
			collision:  true,
			wantPoint:  geom.Vec3{X: 1},
			wantVector: geom.Vec3{X: 0.5},
		},
		{
			name:       "circle layer is kept on the point only",
			circle:     circleAt(1.5, 0, 7, 1),
			poly:       func(t *testing.T) *ConvexPolygon { return polygonAt(t, 0, 0, 3, 0, squareVerts(1)) },
			collision:  true,
			wantPoint:  geom.Vec3{X: 1, Z: 7},
			wantVector: geom.Vec3{X: 0.5},
		},
		{
			name:       "first edge wins an exact tie",
			circle:     circleAt(0, 0, 0, 2),
			poly:       func(t *testing.T) *ConvexPolygon { return polygonAt(t, 0, 0, 0, 0, squareVerts(1)) },
			collision:  true,
			wantPoint:  geom.Vec3{Y: -1},
			wantVector: geom.Vec3{Y: 1},
		},
		{
			name:       "rotated square corner",
			circle:     circleAt(1.7, 0, 0, 0.5),
			poly:       func(t *testing.T) *ConvexPolygon { return polygonAt(t, 0, 0, 0, math.Pi/4, squareVerts(1)) },
			collision:  true,
			wantPoint:  geom.Vec3{X: math.Sqrt2},
			wantVector: geom.Vec3{X: 0.5 - (1.7 - math.Sqrt2)},
		},
		{
			name:   "translated square out of reach",
			circle: circleAt(0, 0, 0, 1),
			poly:   func(t *testing.T) *ConvexPolygon { return polygonAt(t, 5, 5, 0, 0.3, squareVerts(1)) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.poly(t)
			got, err := tt.circle.CollisionInfo(p)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Collision != tt.collision {
				t.Fatalf("collision = %v, want %v", got.Collision, tt.collision)
			}
			if tt.collision {
				if !nearVec(got.Point, tt.wantPoint) {
					t.Errorf("point = %v, want %v", got.Point, tt.wantPoint)
				}
				if !nearVec(got.Vector, tt.wantVector) {
					t.Errorf("vector = %v, want %v", got.Vector, tt.wantVector)
				}
			}

			// The polygon side delegates and must return the same result.
			back, err := p.CollisionInfo(tt.circle)
			if err != nil {
				t.Fatalf("reverse: unexpected error: %v", err)
			}
			if back != got {
				t.Errorf("reverse = %+v, want %+v", back, got)
			}
		})
	}
}

func TestCirclePolygonCentreOnEdge(t *testing.T) {
	c := circleAt(1, 0, 0, 0.5)
	p := polygonAt(t, 0, 0, 0, 0, squareVerts(1))
	if _, err := c.CollisionInfo(p); !errors.Is(err, ErrDegenerateGeometry) {
		t.Fatalf("err = %v, want ErrDegenerateGeometry", err)
	}
	if _, err := p.CollisionInfo(c); !errors.Is(err, ErrDegenerateGeometry) {
		t.Fatalf("reverse err = %v, want ErrDegenerateGeometry", err)
	}
}

func TestNonFinitePositionsDoNotCollide(t *testing.T) {
	nan := math.NaN()
	square := polygonAt(t, 0, 0, 0, 0, squareVerts(1))
	tests := []struct {
		name string
		a, b Collider
	}{
		{"nan circle vs circle", circleAt(nan, 0, 0, 1), circleAt(0, 0, 0, 1)},
		{"circle vs far nan circle", circleAt(1000, 1000, 0, 1), circleAt(nan, 0, 0, 1)},
		{"nan circle vs polygon", circleAt(nan, 0, 0, 1), square},
		{"polygon vs nan circle", square, circleAt(0, nan, 0, 1)},
		{"nan polygon vs polygon", polygonAt(t, nan, 0, 0, 0, squareVerts(1)), square},
		{"polygon vs nan polygon", square, polygonAt(t, 0, nan, 0, 0, squareVerts(1))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.a.CollisionInfo(tt.b)
			if err != nil {
				t.Fatal(err)
			}
			if got.Collision {
				t.Errorf("got collision %+v, want none", got)
			}
		})
	}
}

func TestCollisionInfoNilOther(t *testing.T) {
	for _, self := range []Collider{circleAt(0, 0, 0, 1), polygonAt(t, 0, 0, 0, 0, squareVerts(1))} {
		if _, err := self.CollisionInfo(nil); !errors.Is(err, ErrNilCollider) {
			t.Errorf("%s: err = %v, want ErrNilCollider", self.Kind(), err)
		}
	}
	if _, err := Collide(nil, Pose{}, circleAt(0, 0, 0, 1), Pose{}); !errors.Is(err, ErrNilCollider) {
		t.Errorf("Collide(nil, ...) err = %v, want ErrNilCollider", err)
	}
}
