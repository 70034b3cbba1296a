// Package scene loads body and collider descriptions from YAML and builds a
// physics world from them.
package scene

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tomz197/collide/internal/geom"
	"github.com/tomz197/collide/internal/physics"
)

// ErrInvalidScene wraps every structural problem found while building.
var ErrInvalidScene = errors.New("invalid scene")

// Scene is the decoded scene file.
type Scene struct {
	Bodies []BodyDef `yaml:"bodies"`
}

// BodyDef describes one body. Collider is passed to physics.NewCollider as
// is, apart from the name key which selects the variant.
type BodyDef struct {
	Name     string         `yaml:"name"`
	Position []float64      `yaml:"position"` // [x, y] or [x, y, layer]
	Rotation float64        `yaml:"rotation"`
	Mass     *float64       `yaml:"mass"` // nil means 1
	Collider map[string]any `yaml:"collider"`
	Ignore   []string       `yaml:"ignore"`
}

// Load decodes a scene from r. Unknown keys are rejected.
func Load(r io.Reader) (*Scene, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var s Scene
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return &s, nil
		}
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	return &s, nil
}

// LoadFile reads and decodes the scene at path.
func LoadFile(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Build creates every body in order, then applies ignore lists.
// Mass defaults to 1 when omitted; an explicit value is passed through and
// validated by the world.
func (s *Scene) Build() (*physics.World, error) {
	w := physics.NewWorld()
	for i, def := range s.Bodies {
		name := def.Name
		if name == "" {
			name = fmt.Sprintf("body%d", i)
		}
		pos, err := position(def.Position)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidScene, name, err)
		}
		kind, cfg, err := collider(def.Collider)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidScene, name, err)
		}
		mass := 1.0
		if def.Mass != nil {
			mass = *def.Mass
		}
		if _, err := w.Add(name, pos, def.Rotation, mass, kind, cfg); err != nil {
			return nil, err
		}
	}

	for i, def := range s.Bodies {
		for _, other := range def.Ignore {
			id, ok := w.Lookup(other)
			if !ok {
				return nil, fmt.Errorf("%w: body %d ignores unknown body %q", ErrInvalidScene, i, other)
			}
			if err := w.Ignore(i, id); err != nil {
				return nil, err
			}
		}
	}
	return w, nil
}

func position(p []float64) (geom.Vec3, error) {
	switch len(p) {
	case 0:
		return geom.Vec3{}, nil
	case 2:
		return geom.Vec3{X: p[0], Y: p[1]}, nil
	case 3:
		return geom.Vec3{X: p[0], Y: p[1], Z: p[2]}, nil
	}
	return geom.Vec3{}, fmt.Errorf("position needs 2 or 3 components, got %d", len(p))
}

func collider(def map[string]any) (string, map[string]any, error) {
	raw, ok := def["name"]
	if !ok {
		return "", nil, errors.New("collider has no name")
	}
	kind, ok := raw.(string)
	if !ok {
		return "", nil, fmt.Errorf("collider name must be a string, got %T", raw)
	}
	cfg := make(map[string]any, len(def))
	for k, v := range def {
		if k != "name" {
			cfg[k] = v
		}
	}
	return kind, cfg, nil
}
