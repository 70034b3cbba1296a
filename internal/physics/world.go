package physics

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"
	"sync"

	"github.com/jinzhu/copier"
	"golang.org/x/sync/errgroup"

	"github.com/tomz197/collide/internal/geom"
)

// World is a body table with one collider per body. It plays the caller's
// role around the collision core: it owns the bodies, enforces ignore lists
// and pairs everything with everything (there is no broad phase).
type World struct {
	mu        sync.RWMutex
	bodies    []*Body
	colliders []Collider
	byName    map[string]int
}

// ErrInvalidBody is returned by Add and SetPose for non-positive or non-finite
// mass, and for non-finite position or rotation.
var ErrInvalidBody = errors.New("invalid body")

// PairContact is a colliding pair reported by Contacts. The contact is
// expressed from A's point of view.
type PairContact struct {
	A, B    int // body IDs, A < B
	Contact Contact
}

// NewWorld returns an empty world.
func NewWorld() *World {
	return &World{byName: make(map[string]int)}
}

// Add creates a body, builds its collider through NewCollider and generates
// its inertia. Body IDs are assigned in insertion order starting at 0.
func (w *World) Add(name string, position geom.Vec3, rotation, mass float64, kind string, cfg map[string]any) (*Body, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, dup := w.byName[name]; dup && name != "" {
		return nil, fmt.Errorf("body %q already exists", name)
	}
	if !(mass > 0) || !geom.IsFinite(mass) {
		return nil, fmt.Errorf("%w: %q: mass must be positive and finite, got %v", ErrInvalidBody, name, mass)
	}
	if err := checkPose(Pose{Position: position, Rotation: rotation}); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidBody, name, err)
	}

	b := &Body{
		ID:       len(w.bodies),
		Name:     name,
		Position: position,
		Rotation: rotation,
		Mass:     mass,
	}
	c, err := NewCollider(b, kind, cfg)
	if err != nil {
		return nil, fmt.Errorf("body %q: %w", name, err)
	}
	c.GenerateInertia()

	w.bodies = append(w.bodies, b)
	w.colliders = append(w.colliders, c)
	if name != "" {
		w.byName[name] = b.ID
	}
	return b, nil
}

// Lookup returns the ID of the named body.
func (w *World) Lookup(name string) (int, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	id, ok := w.byName[name]
	return id, ok
}

// Len returns the number of bodies.
func (w *World) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.bodies)
}

// Collider returns the collider attached to body id.
func (w *World) Collider(id int) (Collider, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if id < 0 || id >= len(w.colliders) {
		return nil, false
	}
	return w.colliders[id], true
}

// Ignore excludes the pair (a, b) from Contacts in both directions.
func (w *World) Ignore(a, b int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.valid(a) || !w.valid(b) {
		return fmt.Errorf("ignore %d/%d: no such body", a, b)
	}
	if !w.bodies[a].Ignores(b) {
		w.bodies[a].Ignored = append(w.bodies[a].Ignored, b)
	}
	if !w.bodies[b].Ignores(a) {
		w.bodies[b].Ignored = append(w.bodies[b].Ignored, a)
	}
	return nil
}

// SetPose moves body id. This is the integrator's write path.
func (w *World) SetPose(id int, pose Pose) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.valid(id) {
		return fmt.Errorf("set pose: no body %d", id)
	}
	if err := checkPose(pose); err != nil {
		return fmt.Errorf("%w: body %d: %v", ErrInvalidBody, id, err)
	}
	w.bodies[id].Position = pose.Position
	w.bodies[id].Rotation = pose.Rotation
	return nil
}

func (w *World) valid(id int) bool { return id >= 0 && id < len(w.bodies) }

func checkPose(p Pose) error {
	if !p.Position.IsFinite() {
		return fmt.Errorf("position %v is not finite", p.Position)
	}
	if !geom.IsFinite(p.Rotation) {
		return fmt.Errorf("rotation %v is not finite", p.Rotation)
	}
	return nil
}

// Snapshot returns deep copies of every body, in ID order.
func (w *World) Snapshot() ([]Body, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]Body, len(w.bodies))
	for i, b := range w.bodies {
		if err := copier.CopyWithOption(&out[i], b, copier.Option{DeepCopy: true}); err != nil {
			return nil, fmt.Errorf("snapshot body %d: %w", b.ID, err)
		}
	}
	return out, nil
}

// Contacts tests every pair not excluded by an ignore list against poses
// captured at call time. Pairs run concurrently; the first error cancels the
// rest. Only colliding pairs are returned, ordered by (A, B).
func (w *World) Contacts(ctx context.Context) ([]PairContact, error) {
	type pair struct{ a, b int }

	w.mu.RLock()
	poses := make([]Pose, len(w.bodies))
	names := make([]string, len(w.bodies))
	for i, b := range w.bodies {
		poses[i] = b.Pose()
		names[i] = b.Name
	}
	colliders := slices.Clone(w.colliders)
	var pairs []pair
	for i := range w.bodies {
		for j := i + 1; j < len(w.bodies); j++ {
			if w.bodies[i].Ignores(j) || w.bodies[j].Ignores(i) {
				continue
			}
			pairs = append(pairs, pair{i, j})
		}
	}
	w.mu.RUnlock()

	results := make([]Contact, len(pairs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for k, p := range pairs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c, err := Collide(colliders[p.a], poses[p.a], colliders[p.b], poses[p.b])
			if err != nil {
				return fmt.Errorf("%s vs %s: %w", names[p.a], names[p.b], err)
			}
			results[k] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []PairContact
	for k, p := range pairs {
		if results[k].Collision {
			out = append(out, PairContact{A: p.a, B: p.b, Contact: results[k]})
		}
	}
	return out, nil
}
