package physics

import (
	"errors"
	"testing"

	"github.com/tomz197/collide/internal/geom"
)

func TestNewColliderCircle(t *testing.T) {
	tests := []struct {
		name string
		cfg  map[string]any
		want float64
	}{
		{"explicit float", map[string]any{"radius": 5.0}, 5},
		{"explicit int", map[string]any{"radius": 5}, 5},
		{"default", nil, DefaultCircleRadius},
		{"unrelated keys ignored", map[string]any{"verts": "nope"}, DefaultCircleRadius},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := &Body{Mass: 1}
			c, err := NewCollider(body, "Circle", tt.cfg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			circle, ok := c.(*Circle)
			if !ok {
				t.Fatalf("got %T, want *Circle", c)
			}
			if circle.Radius != tt.want {
				t.Errorf("radius = %v, want %v", circle.Radius, tt.want)
			}
			if c.Body() != body {
				t.Error("collider is not attached to the given body")
			}
			if c.Kind() != KindCircle {
				t.Errorf("kind = %q", c.Kind())
			}
		})
	}
}

func TestNewColliderPolygon(t *testing.T) {
	square := []any{
		[]any{-1, -1}, []any{1, -1}, []any{1.0, 1.0}, []any{-1, 1}, []any{-1, -1},
	}
	tests := []struct {
		name string
		cfg  map[string]any
		want []geom.Vec2
	}{
		{"default diamond", map[string]any{}, DefaultPolygonVerts()},
		{"parsed lists", map[string]any{"verts": square}, squareVerts(1)},
		{"fixed pairs", map[string]any{"verts": [][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}, {-1, -1}}}, squareVerts(1)},
		{"vectors", map[string]any{"verts": squareVerts(1)}, squareVerts(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCollider(&Body{Mass: 1}, "ConvexPolygon", tt.cfg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			p, ok := c.(*ConvexPolygon)
			if !ok {
				t.Fatalf("got %T, want *ConvexPolygon", c)
			}
			if len(p.Verts) != len(tt.want) {
				t.Fatalf("got %d verts, want %d", len(p.Verts), len(tt.want))
			}
			for i := range tt.want {
				if p.Verts[i] != tt.want[i] {
					t.Errorf("vert %d = %v, want %v", i, p.Verts[i], tt.want[i])
				}
			}
			if p.Verts[0] != p.Verts[len(p.Verts)-1] {
				t.Error("vertex loop is not closed")
			}
		})
	}
}

func TestNewColliderErrors(t *testing.T) {
	t.Run("unknown kind", func(t *testing.T) {
		_, err := NewCollider(&Body{}, "Capsule", nil)
		var kindErr *UnknownColliderKindError
		if !errors.As(err, &kindErr) {
			t.Fatalf("err = %v, want *UnknownColliderKindError", err)
		}
		if kindErr.Kind != "Capsule" {
			t.Errorf("kind = %q, want Capsule", kindErr.Kind)
		}
	})

	tests := []struct {
		name    string
		kind    string
		cfg     map[string]any
		wantErr error
	}{
		{"radius not a number", "Circle", map[string]any{"radius": "big"}, ErrInvalidConfig},
		{"zero radius", "Circle", map[string]any{"radius": 0}, ErrInvalidConfig},
		{"negative radius", "Circle", map[string]any{"radius": -2.5}, ErrInvalidConfig},
		{"verts not a list", "ConvexPolygon", map[string]any{"verts": 3}, ErrInvalidConfig},
		{"short pair", "ConvexPolygon", map[string]any{"verts": []any{[]any{1}}}, ErrInvalidConfig},
		{"clockwise verts", "ConvexPolygon", map[string]any{"verts": [][2]float64{{-1, -1}, {-1, 1}, {1, 1}, {1, -1}, {-1, -1}}}, ErrInvalidPolygon},
		{"open loop", "ConvexPolygon", map[string]any{"verts": [][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}}, ErrInvalidPolygon},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCollider(&Body{}, tt.kind, tt.cfg)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// capsule is a collider no built-in variant handles.
type capsule struct{ body *Body }

func (c *capsule) Kind() Kind                              { return "Capsule" }
func (c *capsule) Body() *Body                             { return c.body }
func (c *capsule) GenerateInertia()                        {}
func (c *capsule) CollisionInfo(Collider) (Contact, error) { return Contact{}, nil }

func TestUnsupportedShapePair(t *testing.T) {
	foreign := &capsule{body: &Body{Mass: 1}}
	circle := NewCircle(&Body{Mass: 1}, 1)
	poly, err := NewConvexPolygon(&Body{Mass: 1}, squareVerts(1))
	if err != nil {
		t.Fatal(err)
	}
	for _, self := range []Collider{circle, poly} {
		_, err := self.CollisionInfo(foreign)
		var pairErr *UnsupportedShapePairError
		if !errors.As(err, &pairErr) {
			t.Fatalf("%s: err = %v, want *UnsupportedShapePairError", self.Kind(), err)
		}
		if pairErr.Self != self.Kind() || pairErr.Other != "Capsule" {
			t.Errorf("error names %s/%s, want %s/Capsule", pairErr.Self, pairErr.Other, self.Kind())
		}
	}
	if _, err := Collide(foreign, Pose{}, circle, Pose{}); err == nil {
		t.Error("foreign querying collider was accepted")
	}
}
