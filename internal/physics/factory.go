package physics

import (
	"errors"
	"fmt"

	"github.com/tomz197/collide/internal/geom"
)

// ErrInvalidConfig is returned when a collider config value has the wrong shape.
var ErrInvalidConfig = errors.New("invalid collider config")

// UnknownColliderKindError is returned by NewCollider for a name that matches
// no variant.
type UnknownColliderKindError struct {
	Kind string
}

// Error names the unknown kind.
func (e *UnknownColliderKindError) Error() string {
	return fmt.Sprintf("unknown collider %q", e.Kind)
}

// NewCollider builds the collider named by kind from an already-parsed
// config map and attaches it to body.
//
//	Circle:        radius (number, default 100)
//	ConvexPolygon: verts  (closed CCW loop of [x, y] pairs, default diamond)
func NewCollider(body *Body, kind string, cfg map[string]any) (Collider, error) {
	switch Kind(kind) {
	case KindCircle:
		radius := float64(DefaultCircleRadius)
		if v, ok := cfg["radius"]; ok {
			r, err := toFloat(v)
			if err != nil {
				return nil, fmt.Errorf("%w: radius: %v", ErrInvalidConfig, err)
			}
			if !bounded(r) {
				return nil, fmt.Errorf("%w: radius must be positive and finite, got %v", ErrInvalidConfig, r)
			}
			radius = r
		}
		return NewCircle(body, radius), nil

	case KindConvexPolygon:
		verts := DefaultPolygonVerts()
		if v, ok := cfg["verts"]; ok {
			vs, err := toVerts(v)
			if err != nil {
				return nil, fmt.Errorf("%w: verts: %v", ErrInvalidConfig, err)
			}
			verts = vs
		}
		return NewConvexPolygon(body, verts)
	}
	return nil, &UnknownColliderKindError{Kind: kind}
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	}
	return 0, fmt.Errorf("expected a number, got %T", v)
}

func toVerts(v any) ([]geom.Vec2, error) {
	switch vs := v.(type) {
	case []geom.Vec2:
		return vs, nil
	case [][2]float64:
		out := make([]geom.Vec2, len(vs))
		for i, p := range vs {
			out[i] = geom.Vec2{X: p[0], Y: p[1]}
		}
		return out, nil
	case [][]float64:
		out := make([]geom.Vec2, len(vs))
		for i, p := range vs {
			if len(p) != 2 {
				return nil, fmt.Errorf("vertex %d: expected 2 components, got %d", i, len(p))
			}
			out[i] = geom.Vec2{X: p[0], Y: p[1]}
		}
		return out, nil
	case []any:
		out := make([]geom.Vec2, len(vs))
		for i, p := range vs {
			pair, ok := p.([]any)
			if !ok || len(pair) != 2 {
				return nil, fmt.Errorf("vertex %d: expected an [x, y] pair, got %v", i, p)
			}
			x, err := toFloat(pair[0])
			if err != nil {
				return nil, fmt.Errorf("vertex %d: x: %v", i, err)
			}
			y, err := toFloat(pair[1])
			if err != nil {
				return nil, fmt.Errorf("vertex %d: y: %v", i, err)
			}
			out[i] = geom.Vec2{X: x, Y: y}
		}
		return out, nil
	}
	return nil, fmt.Errorf("expected a list of [x, y] pairs, got %T", v)
}

// bounded reports whether r is finite and positive.
func bounded(r float64) bool {
	return r > 0 && geom.IsFinite(r)
}
