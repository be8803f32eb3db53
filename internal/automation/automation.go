// Package automation runs scripted batches of model builds: YAML lesson
// scenarios that record and save animation runs, parameter sweeps, and
// seed ensembles of procedurally placed models.
package automation

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/eduverse/internal/anim"
	"github.com/san-kum/eduverse/internal/config"
	"github.com/san-kum/eduverse/internal/export"
	"github.com/san-kum/eduverse/internal/geometry"
	"github.com/san-kum/eduverse/internal/logging"
	"github.com/san-kum/eduverse/internal/scene"
	"github.com/san-kum/eduverse/internal/storage"
	"github.com/san-kum/eduverse/internal/viz"
)

var ErrUnknownParam = errors.New("automation: unknown sweep parameter")

// Scenario is a scripted sequence of model recordings.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step overrides the base config for one recording. Zero fields keep the
// base value.
type Step struct {
	Kind     string  `yaml:"kind"`
	Preset   string  `yaml:"preset"`
	Scale    float64 `yaml:"scale"`
	Seed     int64   `yaml:"seed"`
	FPS      int     `yaml:"fps"`
	Duration float64 `yaml:"duration"`
	SVG      string  `yaml:"svg"`
}

type StepResult struct {
	Step   int    `json:"step"`
	Kind   string `json:"kind"`
	RunID  string `json:"runId"`
	Frames int    `json:"frames"`
	SVG    string `json:"svg,omitempty"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, errors.Wrapf(err, "automation: parse %s", path)
	}
	if len(sc.Steps) == 0 {
		return nil, errors.Errorf("automation: scenario %q has no steps", sc.Name)
	}
	return &sc, nil
}

// Runner executes batches against one assembler and run store.
type Runner struct {
	base  *config.Config
	asm   *scene.Assembler
	store *storage.Store
	log   logging.Logger
}

func NewRunner(base *config.Config, asm *scene.Assembler, store *storage.Store, log logging.Logger) *Runner {
	if base == nil {
		base = config.DefaultConfig()
	}
	if asm == nil {
		asm = scene.NewAssembler(nil)
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Runner{base: base, asm: asm, store: store, log: log}
}

func (r *Runner) stepConfig(step Step) (*config.Config, error) {
	cfg := *r.base
	if step.Kind != "" {
		cfg.Kind = step.Kind
	}
	if step.Preset != "" {
		if err := config.ApplyPreset(&cfg, cfg.Kind, step.Preset); err != nil {
			return nil, err
		}
	}
	if step.Scale > 0 {
		cfg.Scale = step.Scale
	}
	if step.Seed != 0 {
		cfg.Seed = step.Seed
	}
	if step.FPS > 0 {
		cfg.FPS = step.FPS
	}
	if step.Duration > 0 {
		cfg.Duration = step.Duration
	}
	return &cfg, cfg.Validate()
}

func (r *Runner) build(cfg *config.Config) (*scene.Scene, error) {
	desc, err := cfg.Descriptor()
	if err != nil {
		return nil, err
	}
	return r.asm.Build(desc, cfg.SceneParams())
}

// RunScenario records and saves every step in order, stopping at the first
// failure or when ctx is cancelled.
func (r *Runner) RunScenario(ctx context.Context, sc *Scenario) ([]StepResult, error) {
	if r.store == nil {
		return nil, errors.New("automation: scenario needs a run store")
	}
	if err := r.store.Init(); err != nil {
		return nil, err
	}
	results := make([]StepResult, 0, len(sc.Steps))

	for i, step := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, err := r.runStep(i+1, step)
		if err != nil {
			return results, errors.Wrapf(err, "step %d", i+1)
		}
		r.log.Infof("automation: step %d/%d %s saved as %s", i+1, len(sc.Steps), res.Kind, res.RunID)
		results = append(results, res)
	}
	return results, nil
}

func (r *Runner) runStep(n int, step Step) (StepResult, error) {
	cfg, err := r.stepConfig(step)
	if err != nil {
		return StepResult{}, err
	}
	sc, err := r.build(cfg)
	if err != nil {
		return StepResult{}, err
	}
	defer sc.Teardown()

	bindings, err := cfg.AnimBindings(sc.Kind)
	if err != nil {
		return StepResult{}, err
	}
	samples, err := anim.Samples(float64(cfg.FPS), cfg.Duration)
	if err != nil {
		return StepResult{}, err
	}
	d := anim.NewDriver(r.log)
	if err := d.Attach(sc, bindings); err != nil {
		return StepResult{}, err
	}
	defer d.Release()
	tr := anim.Record(d, samples)

	specs := make([]anim.Spec, len(bindings))
	for i, b := range bindings {
		specs[i] = anim.SpecOf(b)
	}
	id, err := r.store.Save(storage.RunMetadata{
		Kind:     string(sc.Kind),
		Seed:     cfg.Seed,
		Scale:    cfg.Scale,
		Preset:   step.Preset,
		FPS:      float64(cfg.FPS),
		Duration: cfg.Duration,
		Bindings: specs,
	}, tr)
	if err != nil {
		return StepResult{}, err
	}

	res := StepResult{Step: n, Kind: string(sc.Kind), RunID: id, Frames: len(tr.Rows)}
	if step.SVG != "" {
		if err := writeSVG(step.SVG, sc, d.Snapshot()); err != nil {
			return res, err
		}
		res.SVG = step.SVG
	}
	return res, nil
}

func writeSVG(path string, sc *scene.Scene, rotations map[scene.GroupID]geometry.Vec3) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.SceneToSVG(f, sc, rotations, viz.NewCamera(), 800, 600); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// sweepParams maps sweep parameter names onto config fields.
var sweepParams = map[string]func(*config.Config, float64){
	"scale":        func(c *config.Config, v float64) { c.Scale = v },
	"orbits":       func(c *config.Config, v float64) { c.Params.Atom.Orbits.Count = int(math.Round(v)) },
	"membrane":     func(c *config.Config, v float64) { c.Params.Cell.MembraneRadius = v },
	"mitochondria": func(c *config.Config, v float64) { c.Params.Cell.Mitochondria.Count = int(math.Round(v)) },
	"ribosomes":    func(c *config.Config, v float64) { c.Params.Cell.Ribosomes.Count = int(math.Round(v)) },
	"strands":      func(c *config.Config, v float64) { c.Params.DNA.Strands = int(math.Round(v)) },
	"turns":        func(c *config.Config, v float64) { c.Params.DNA.Turns = v },
	"samples":      func(c *config.Config, v float64) { c.Params.DNA.Samples = int(math.Round(v)) },
	"resolution":   func(c *config.Config, v float64) { c.Params.Surface.Resolution = int(math.Round(v)) },
	"extent":       func(c *config.Config, v float64) { c.Params.Surface.Extent = v },
}

func SweepParams() []string {
	names := make([]string, 0, len(sweepParams))
	for name := range sweepParams {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParameterSweep builds Kind at Steps evenly spaced values of Param.
type ParameterSweep struct {
	Kind     string
	Param    string
	ParamMin float64
	ParamMax float64
	Steps    int
}

// SweepResult describes one built model. Err is set instead when the value
// is out of the generator's bounds.
type SweepResult struct {
	ParamValue float64 `json:"value"`
	Groups     int     `json:"groups"`
	Placements int     `json:"placements"`
	Extent     float64 `json:"extent"`
	Err        string  `json:"error,omitempty"`
}

func (r *Runner) RunSweep(ctx context.Context, sw ParameterSweep) ([]SweepResult, error) {
	set, ok := sweepParams[strings.ToLower(sw.Param)]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownParam, "%q (known: %s)", sw.Param, strings.Join(SweepParams(), ", "))
	}
	if sw.Steps < 1 {
		return nil, errors.Errorf("automation: sweep needs at least one step, got %d", sw.Steps)
	}
	step := 0.0
	if sw.Steps > 1 {
		step = (sw.ParamMax - sw.ParamMin) / float64(sw.Steps-1)
	}

	results := make([]SweepResult, 0, sw.Steps)
	for i := 0; i < sw.Steps; i++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		v := sw.ParamMin + float64(i)*step
		cfg := *r.base
		if sw.Kind != "" {
			cfg.Kind = sw.Kind
		}
		set(&cfg, v)

		res := SweepResult{ParamValue: v}
		sc, err := r.build(&cfg)
		if err != nil {
			res.Err = err.Error()
			r.log.Debugf("automation: sweep %s=%g: %v", sw.Param, v, err)
		} else {
			res.Groups, res.Placements, res.Extent = measure(sc)
			sc.Teardown()
		}
		results = append(results, res)
	}
	return results, nil
}

// EnsembleResult describes one seeded build.
type EnsembleResult struct {
	Seed       int64   `json:"seed"`
	Placements int     `json:"placements"`
	Extent     float64 `json:"extent"`
}

// RunEnsemble builds the base kind n times with seeds seedStart,
// seedStart+1, ... concurrently. Results are in seed order.
func (r *Runner) RunEnsemble(ctx context.Context, n int, seedStart int64) ([]EnsembleResult, error) {
	if seedStart == 0 {
		seedStart = 1
	}
	results := make([]EnsembleResult, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			if errs[idx] = ctx.Err(); errs[idx] != nil {
				return
			}
			cfg := *r.base
			cfg.Seed = seedStart + int64(idx)
			sc, err := r.build(&cfg)
			if err != nil {
				errs[idx] = err
				return
			}
			defer sc.Teardown()
			_, placements, extent := measure(sc)
			results[idx] = EnsembleResult{Seed: cfg.Seed, Placements: placements, Extent: extent}
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// measure counts groups and placements and returns the largest absolute
// coordinate of the unrotated wireframe.
func measure(sc *scene.Scene) (groups, placements int, extent float64) {
	groups = len(sc.Groups())
	placements = len(sc.Placements())
	lo, hi := viz.FromScene(sc, nil).Bounds()
	for i := 0; i < 3; i++ {
		extent = math.Max(extent, math.Max(math.Abs(lo[i]), math.Abs(hi[i])))
	}
	return groups, placements, extent
}
