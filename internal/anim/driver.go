package anim

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/san-kum/eduverse/internal/geometry"
	"github.com/san-kum/eduverse/internal/logging"
	"github.com/san-kum/eduverse/internal/scene"
)

// Resolver looks up group handles; *scene.Scene satisfies it.
type Resolver interface {
	Lookup(id scene.GroupID) (*scene.Group, bool)
}

type Binding struct {
	Group  scene.GroupID
	Axis   Axis
	Policy Policy
}

// Driver applies bindings on every clock sample and keeps the resulting
// rotations. Groups themselves are never mutated.
type Driver struct {
	log logging.Logger

	mu       sync.Mutex
	resolver Resolver
	bindings []Binding
	state    map[scene.GroupID]geometry.Vec3
	last     ClockSample
	ticks    int
}

func NewDriver(log logging.Logger) *Driver {
	if log == nil {
		log = logging.Discard()
	}
	return &Driver{log: log, state: make(map[scene.GroupID]geometry.Vec3)}
}

// Attach binds handles once. Each bound group's render state starts from
// its base rotation. Groups that cannot be resolved yet are left out of the
// table and picked up on the first tick that finds them.
func (d *Driver) Attach(r Resolver, bindings []Binding) error {
	if r == nil {
		return errors.New("anim: attach with nil resolver")
	}
	for i, b := range bindings {
		if b.Policy == nil {
			return errors.Errorf("anim: binding %d (%s) has no policy", i, b.Group)
		}
		if !b.Axis.valid() {
			return errors.Errorf("anim: binding %d (%s) has invalid axis %d", i, b.Group, b.Axis)
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.resolver = r
	d.bindings = append([]Binding(nil), bindings...)
	d.state = make(map[scene.GroupID]geometry.Vec3)
	d.last, d.ticks = 0, 0
	for _, b := range d.bindings {
		if _, seen := d.state[b.Group]; seen {
			continue
		}
		if g, ok := r.Lookup(b.Group); ok && g != nil {
			d.state[b.Group] = g.Rotation
		}
	}
	return nil
}

// Tick advances every binding to t. A sample earlier than the previous one
// is clamped to it. Bindings whose group is missing are skipped.
func (d *Driver) Tick(t ClockSample) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.resolver == nil {
		return
	}
	if d.ticks > 0 && t < d.last {
		t = d.last
	}
	d.last = t
	d.ticks++
	for _, b := range d.bindings {
		d.apply(b, t)
	}
}

func (d *Driver) apply(b Binding, t ClockSample) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Errorf("anim: %s.%s policy panicked: %v", b.Group, b.Axis, r)
		}
	}()

	g, ok := d.resolver.Lookup(b.Group)
	if !ok || g == nil {
		d.log.Debugf("anim: group %s not available, skipping", b.Group)
		return
	}
	rot, ok := d.state[b.Group]
	if !ok {
		rot = g.Rotation
	}
	rot[b.Axis] = b.Policy.Next(rot[b.Axis], t)
	d.state[b.Group] = rot
}

func (d *Driver) Rotation(id scene.GroupID) (geometry.Vec3, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	r, ok := d.state[id]
	return r, ok
}

// Snapshot copies the render-state table.
func (d *Driver) Snapshot() map[scene.GroupID]geometry.Vec3 {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make(map[scene.GroupID]geometry.Vec3, len(d.state))
	for k, v := range d.state {
		out[k] = v
	}
	return out
}

func (d *Driver) Bindings() []Binding {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Binding(nil), d.bindings...)
}

func (d *Driver) Ticks() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ticks
}

func (d *Driver) Last() ClockSample {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.last
}

// Release drops the resolver, bindings and render state. Later ticks are
// no-ops until the next Attach.
func (d *Driver) Release() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.resolver = nil
	d.bindings = nil
	d.state = make(map[scene.GroupID]geometry.Vec3)
}

func (d *Driver) Attached() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.resolver != nil
}
