package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/san-kum/eduverse/internal/anim"
	"github.com/san-kum/eduverse/internal/config"
	"github.com/san-kum/eduverse/internal/geometry"
	"github.com/san-kum/eduverse/internal/logging"
	"github.com/san-kum/eduverse/internal/scene"
)

type modelApi struct {
	base *config.Config
	asm  *scene.Assembler
	log  logging.Logger
}

type (
	kindInfo struct {
		Kind        scene.Kind `json:"kind"`
		Description string     `json:"description"`
		Presets     []string   `json:"presets"`
	}

	framesResponse struct {
		Kind      scene.Kind                       `json:"kind"`
		FPS       float64                          `json:"fps"`
		Time      float64                          `json:"t"`
		Trace     anim.Trace                       `json:"trace"`
		Bindings  []anim.Spec                      `json:"bindings"`
		Rotations map[scene.GroupID]geometry.Vec3 `json:"rotations"`
	}
)

func registerModelAPI(g *echo.Group, base *config.Config, asm *scene.Assembler, log logging.Logger) {
	api := modelApi{base: base, asm: asm, log: log}

	mg := g.Group("/models")
	mg.GET("", api.kinds)
	mg.GET("/:kind", api.model)
	mg.GET("/:kind/frames", api.frames)
}

func (api *modelApi) kinds(ctx echo.Context) error {
	kinds := api.asm.Kinds()
	out := make([]kindInfo, 0, len(kinds))
	for _, k := range kinds {
		presets := config.ListPresets(string(k))
		if presets == nil {
			presets = []string{}
		}
		out = append(out, kindInfo{Kind: k, Description: scene.Describe(k), Presets: presets})
	}
	return ctx.JSON(http.StatusOK, out)
}

// resolve builds the config a request asks for: the server config with the
// path kind, an optional preset, then scale and seed overrides.
func (api *modelApi) resolve(ctx echo.Context) (*config.Config, scene.Kind, error) {
	k, err := scene.ParseKind(ctx.Param("kind"))
	if err != nil {
		return nil, "", err
	}
	cfg := *api.base
	cfg.Kind = string(k)

	var preset string
	if err := echo.QueryParamsBinder(ctx).String("preset", &preset).BindError(); err != nil {
		return nil, "", err
	}
	if preset != "" {
		if err := config.ApplyPreset(&cfg, string(k), preset); err != nil {
			return nil, "", err
		}
	}
	err = echo.QueryParamsBinder(ctx).
		Float64("scale", &cfg.Scale).
		Int64("seed", &cfg.Seed).
		BindError()
	if err != nil {
		return nil, "", err
	}
	return &cfg, k, nil
}

func (api *modelApi) build(cfg *config.Config) (*scene.Scene, error) {
	desc, err := cfg.Descriptor()
	if err != nil {
		return nil, err
	}
	return api.asm.Build(desc, cfg.SceneParams())
}

func (api *modelApi) model(ctx echo.Context) error {
	cfg, _, err := api.resolve(ctx)
	if err != nil {
		return err
	}
	sc, err := api.build(cfg)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sc)
}

// frames replays the kind's bindings at 0, 1/fps, ..., t and returns the
// recorded rotations. The result depends only on the query.
func (api *modelApi) frames(ctx echo.Context) error {
	cfg, k, err := api.resolve(ctx)
	if err != nil {
		return err
	}
	t, fps := 1.0, float64(cfg.FPS)
	err = echo.QueryParamsBinder(ctx).
		Float64("t", &t).
		Float64("fps", &fps).
		BindError()
	if err != nil {
		return err
	}
	if fps*t >= maxFrameSamples {
		return errors.Wrapf(anim.ErrClock, "too many samples: fps=%g t=%g", fps, t)
	}
	samples, err := anim.Samples(fps, t)
	if err != nil {
		return err
	}

	sc, err := api.build(cfg)
	if err != nil {
		return err
	}
	defer sc.Teardown()
	bindings, err := cfg.AnimBindings(k)
	if err != nil {
		return err
	}
	d := anim.NewDriver(api.log)
	if err := d.Attach(sc, bindings); err != nil {
		return err
	}
	defer d.Release()

	specs := make([]anim.Spec, len(bindings))
	for i, b := range bindings {
		specs[i] = anim.SpecOf(b)
	}
	tr := anim.Record(d, samples)
	return ctx.JSON(http.StatusOK, framesResponse{
		Kind:      k,
		FPS:       fps,
		Time:      t,
		Trace:     tr,
		Bindings:  specs,
		Rotations: d.Snapshot(),
	})
}
