package scene

import (
	"math"
	"sort"

	"github.com/pkg/errors"

	"github.com/san-kum/eduverse/internal/geometry"
)

// Assembler turns descriptors into scenes using a registry of builders and
// a shared generator memo.
type Assembler struct {
	builders map[Kind]Builder
	memo     *geometry.Memo
}

func NewAssembler(memo *geometry.Memo) *Assembler {
	if memo == nil {
		memo = geometry.NewMemo(0)
	}
	a := &Assembler{builders: make(map[Kind]Builder), memo: memo}
	a.builders[Atom] = buildAtom
	a.builders[Cell] = buildCell
	a.builders[DNA] = buildDNA
	a.builders[MathSurface] = buildSurface
	return a
}

// Register installs or replaces the builder for k. A replacement must keep
// the kind's group set stable across builds.
func (a *Assembler) Register(k Kind, b Builder) {
	a.builders[k] = b
}

func (a *Assembler) Kinds() []Kind {
	kinds := make([]Kind, 0, len(a.builders))
	for k := range a.builders {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

func (a *Assembler) Memo() *geometry.Memo {
	return a.memo
}

// Build assembles desc with p. The scale factor lands on the root group's
// scale only.
func (a *Assembler) Build(desc Descriptor, p Params) (*Scene, error) {
	b, ok := a.builders[desc.Kind]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownKind, "%q", desc.Kind)
	}
	if !(desc.ScaleFactor >= 0) || math.IsInf(desc.ScaleFactor, 0) {
		return nil, errors.Wrapf(geometry.ErrParameterBounds, "scale factor %g", desc.ScaleFactor)
	}

	root, err := b(p, a.memo)
	if err != nil {
		return nil, errors.Wrapf(err, "build %s", desc.Kind)
	}
	if root == nil || root.ID != Root {
		return nil, errors.Errorf("scene: %s builder returned no root group", desc.Kind)
	}
	s := desc.ScaleFactor
	root.Scale = geometry.Vec3{s, s, s}
	return newScene(desc, root)
}
