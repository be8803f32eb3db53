package scene

import (
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/san-kum/eduverse/internal/geometry"
)

// Group is a named node of the hierarchy. Rotation is the base orientation
// set at assembly time; live rotation is owned by the animation driver.
type Group struct {
	ID         GroupID              `json:"id" yaml:"id"`
	Position   geometry.Vec3        `json:"position" yaml:"position"`
	Rotation   geometry.Vec3        `json:"rotation" yaml:"rotation"`
	Scale      geometry.Vec3        `json:"scale" yaml:"scale"`
	Placements []geometry.Placement `json:"placements" yaml:"placements"`
	Children   []*Group             `json:"children,omitempty" yaml:"children,omitempty"`
}

func newGroup(id GroupID, placements ...geometry.Placement) *Group {
	if placements == nil {
		placements = []geometry.Placement{}
	}
	return &Group{ID: id, Scale: geometry.Vec3{1, 1, 1}, Placements: placements}
}

func (g *Group) add(children ...*Group) {
	g.Children = append(g.Children, children...)
}

// Scene is one assembled model. It is safe to look groups up from the
// render goroutine while another goroutine refreshes the scene.
type Scene struct {
	Kind       Kind       `json:"kind" yaml:"kind"`
	Descriptor Descriptor `json:"descriptor" yaml:"descriptor"`
	Root       *Group     `json:"root" yaml:"root"`

	mu    sync.RWMutex
	index map[GroupID]*Group
	down  bool
}

func newScene(desc Descriptor, root *Group) (*Scene, error) {
	s := &Scene{Kind: desc.Kind, Descriptor: desc, Root: root, index: make(map[GroupID]*Group)}
	var dup GroupID
	walk(root, func(g *Group, _ int) {
		if _, ok := s.index[g.ID]; ok {
			dup = g.ID
		}
		s.index[g.ID] = g
	})
	if dup != "" {
		return nil, errors.Errorf("scene: duplicate group id %q", dup)
	}
	return s, nil
}

func walk(g *Group, fn func(*Group, int)) {
	var visit func(*Group, int)
	visit = func(g *Group, depth int) {
		fn(g, depth)
		for _, c := range g.Children {
			visit(c, depth+1)
		}
	}
	if g != nil {
		visit(g, 0)
	}
}

// Lookup resolves a group handle. It fails once the scene is torn down.
func (s *Scene) Lookup(id GroupID) (*Group, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.down {
		return nil, false
	}
	g, ok := s.index[id]
	return g, ok
}

// Groups lists group IDs in pre-order.
func (s *Scene) Groups() []GroupID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]GroupID, 0, len(s.index))
	walk(s.Root, func(g *Group, _ int) { ids = append(ids, g.ID) })
	return ids
}

// Walk visits every group in pre-order with its depth below the root.
func (s *Scene) Walk(fn func(g *Group, depth int)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	walk(s.Root, fn)
}

// Placements flattens all placements in pre-order.
func (s *Scene) Placements() []geometry.Placement {
	var out []geometry.Placement
	s.Walk(func(g *Group, _ int) { out = append(out, g.Placements...) })
	return out
}

// Refresh replaces the contents of every group with those of next while
// keeping the existing *Group values, so bindings held by ID or pointer stay
// valid. The group sets must match exactly; on mismatch nothing changes.
func (s *Scene) Refresh(next *Scene) error {
	if next == nil {
		return errors.New("scene: refresh with nil scene")
	}
	if next.Kind != s.Kind {
		return errors.Errorf("scene: refresh %s with %s", s.Kind, next.Kind)
	}
	have, want := s.Groups(), next.Groups()
	if !sameIDs(have, want) {
		return errors.Errorf("scene: group set changed from %v to %v", have, want)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, g := range s.index {
		ng := next.index[id]
		g.Position = ng.Position
		g.Rotation = ng.Rotation
		g.Scale = ng.Scale
		g.Placements = ng.Placements
	}
	s.Descriptor = next.Descriptor
	return nil
}

func sameIDs(a, b []GroupID) bool {
	if len(a) != len(b) {
		return false
	}
	a = append([]GroupID(nil), a...)
	b = append([]GroupID(nil), b...)
	sort.Slice(a, func(i, j int) bool { return a[i] < a[j] })
	sort.Slice(b, func(i, j int) bool { return b[i] < b[j] })
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Teardown releases all group handles. Subsequent lookups fail.
func (s *Scene) Teardown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.down = true
}

func (s *Scene) TornDown() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.down
}

// WalkTree visits every group in pre-order together with its parent, which
// is nil for the root.
func (s *Scene) WalkTree(fn func(g, parent *Group)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var visit func(g, parent *Group)
	visit = func(g, parent *Group) {
		fn(g, parent)
		for _, c := range g.Children {
			visit(c, g)
		}
	}
	if s.Root != nil {
		visit(s.Root, nil)
	}
}

// FromRoot wraps an existing hierarchy, such as one decoded from JSON.
func FromRoot(desc Descriptor, root *Group) (*Scene, error) {
	if root == nil || root.ID != Root {
		return nil, errors.New("scene: hierarchy has no root group")
	}
	return newScene(desc, root)
}
