package config

import (
	"math"
	"sort"

	"github.com/pkg/errors"

	"github.com/san-kum/eduverse/internal/geometry"
	"github.com/san-kum/eduverse/internal/scene"
)

// ErrUnknownPreset is returned by ApplyPreset for unknown kind/name pairs.
var ErrUnknownPreset = errors.New("config: unknown preset")

// Preset adjusts a config for one look of a model.
type Preset struct {
	Description string
	Apply       func(*Config)
}

var Presets = map[string]map[string]Preset{
	"atom": {
		"hydrogen": {"single orbit", func(c *Config) {
			c.Params.Atom.Orbits.Count = 1
			c.Params.Atom.NucleusRadius = 0.3
		}},
		"lithium": {"two orbits", func(c *Config) {
			c.Params.Atom.Orbits.Count = 2
		}},
		"neon": {"three full orbits", func(c *Config) {
			c.Params.Atom.Orbits.Count = 3
			c.Params.Atom.NucleusColor = "#ff9f43"
		}},
	},
	"cell": {
		"sparse": {"few organelles", func(c *Config) {
			c.Params.Cell.Mitochondria.Count = 4
			c.Params.Cell.Ribosomes.Count = 15
		}},
		"dense": {"crowded cytoplasm", func(c *Config) {
			c.Params.Cell.Mitochondria.Count = 16
			c.Params.Cell.Ribosomes.Count = 120
		}},
	},
	"dna": {
		"short": {"one turn", func(c *Config) {
			c.Params.DNA.Turns = 1
			c.Params.DNA.Samples = 10
			c.Params.DNA.Height = 2
		}},
		"long": {"four turns", func(c *Config) {
			c.Params.DNA.Turns = 4
			c.Params.DNA.Samples = 40
			c.Params.DNA.Height = 8
			c.Scale = 0.5
		}},
		"triple": {"three strands", func(c *Config) {
			c.Params.DNA.Strands = 3
			c.Params.DNA.Phase = 2 * math.Pi / 3
			c.Params.DNA.StrandColors = []string{"#ff6b6b", "#4ecdc4", "#a29bfe"}
		}},
	},
	"mathSurface": {
		"wave":       {"sin x cos y", surface("wave")},
		"saddle":     {"hyperbolic paraboloid", surface("saddle")},
		"ripple":     {"radial ripple", surface("ripple")},
		"paraboloid": {"bowl", surface("paraboloid")},
		"hires": {"fine grid", func(c *Config) {
			c.Params.Surface.Resolution = 40
		}},
	},
}

func surface(fn string) func(*Config) {
	return func(c *Config) { c.Params.Surface.Function = fn }
}

// ApplyPreset applies the named preset of kind to c and sets c.Kind.
func ApplyPreset(c *Config, kind, name string) error {
	k, err := scene.ParseKind(kind)
	if err != nil {
		return err
	}
	p, ok := Presets[string(k)][name]
	if !ok {
		return errors.Wrapf(ErrUnknownPreset, "%s/%s", k, name)
	}
	c.Kind = string(k)
	p.Apply(c)
	return nil
}

// GetPreset returns the default config with the preset applied, or nil.
func GetPreset(kind, name string) *Config {
	cfg := DefaultConfig()
	if err := ApplyPreset(cfg, kind, name); err != nil {
		return nil
	}
	return cfg
}

func ListPresets(kind string) []string {
	k, err := scene.ParseKind(kind)
	if err != nil {
		return nil
	}
	presets, ok := Presets[string(k)]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SurfaceFunctions lists the height functions a surface preset can pick.
func SurfaceFunctions() []string {
	return geometry.HeightFuncNames()
}
