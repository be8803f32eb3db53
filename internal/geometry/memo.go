package geometry

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

const DefaultMemoSize = 64

// Memo caches deterministic generator output keyed by the full parameter
// tuple. Cached slices are shared between callers and must not be mutated.
type Memo struct {
	orbits  *lru.Cache[string, []Orbit]
	helices *lru.Cache[string, Helix]
	grids   *lru.Cache[string, []Placement]
}

func NewMemo(size int) *Memo {
	if size <= 0 {
		size = DefaultMemoSize
	}
	// lru.New only fails for a non-positive size.
	orbits, _ := lru.New[string, []Orbit](size)
	helices, _ := lru.New[string, Helix](size)
	grids, _ := lru.New[string, []Placement](size)
	return &Memo{orbits: orbits, helices: helices, grids: grids}
}

func key(p interface{}) string {
	return fmt.Sprintf("%#v", p)
}

func (m *Memo) Orbits(p OrbitParams) ([]Orbit, error) {
	k := key(p)
	if v, ok := m.orbits.Get(k); ok {
		return v, nil
	}
	v, err := GenerateOrbits(p)
	if err != nil {
		return nil, err
	}
	m.orbits.Add(k, v)
	return v, nil
}

func (m *Memo) Helix(p HelixParams) (Helix, error) {
	k := key(p)
	if v, ok := m.helices.Get(k); ok {
		return v, nil
	}
	v, err := GenerateHelix(p)
	if err != nil {
		return Helix{}, err
	}
	m.helices.Add(k, v)
	return v, nil
}

func (m *Memo) Surface(p SurfaceParams) ([]Placement, error) {
	k := key(p)
	if v, ok := m.grids.Get(k); ok {
		return v, nil
	}
	v, err := Surface(p)
	if err != nil {
		return nil, err
	}
	m.grids.Add(k, v)
	return v, nil
}

// Len reports the number of cached entries across all generators.
func (m *Memo) Len() int {
	return m.orbits.Len() + m.helices.Len() + m.grids.Len()
}

func (m *Memo) Purge() {
	m.orbits.Purge()
	m.helices.Purge()
	m.grids.Purge()
}
