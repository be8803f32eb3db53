package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/labstack/gommon/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/san-kum/eduverse/internal/anim"
	"github.com/san-kum/eduverse/internal/config"
	"github.com/san-kum/eduverse/internal/export"
	"github.com/san-kum/eduverse/internal/geometry"
	"github.com/san-kum/eduverse/internal/logging"
	"github.com/san-kum/eduverse/internal/scene"
	"github.com/san-kum/eduverse/internal/storage"
	"github.com/san-kum/eduverse/internal/viz"
)

var (
	configFile string
	preset     string
	scale      float64
	seed       int64
	dataDir    string
	logLevel   string
	format     string
	fps        int
	duration   float64
	theme      string
	gifPath    string
	outPath    string
	svgWidth   int
	svgHeight  int
	braille    bool
	fromFile   string
	runID      string
	live       bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "eduverse",
		Short:         "procedural 3D models for the classroom",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runMenu,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.Float64Var(&scale, "scale", config.DefaultScale, "model scale factor")
	pf.Int64Var(&seed, "seed", 0, "organelle seed (0 = random)")
	pf.StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	pf.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug|info|warn|error|off)")
	pf.StringVar(&theme, "theme", config.DefaultTheme, "terminal theme ("+strings.Join(viz.ThemeNames(), "|")+")")

	sceneCmd := &cobra.Command{
		Use:   "scene [kind]",
		Short: "print the assembled scene graph",
		Args:  cobra.MaximumNArgs(1),
		RunE:  printScene,
	}
	sceneCmd.Flags().StringVar(&format, "format", "json", "output format (json|yaml)")

	previewCmd := &cobra.Command{
		Use:   "preview [kind]",
		Short: "animate a model in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPreview,
	}
	previewCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	previewCmd.Flags().StringVar(&gifPath, "gif", "", "gif output path for recordings")

	traceCmd := &cobra.Command{
		Use:   "trace [kind]",
		Short: "record animated rotations and save them as a run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  recordTrace,
	}
	traceCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "sample rate")
	traceCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration in seconds")
	traceCmd.Flags().BoolVar(&live, "live", false, "drive the model from the wall clock instead of saving a run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run rotations",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	svgCmd := &cobra.Command{
		Use:   "export-svg [kind]",
		Short: "render a model, a saved scene or a run to SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportSVG,
	}
	svgCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default <kind>.svg)")
	svgCmd.Flags().Float64Var(&duration, "time", 0, "animation time to render at")
	svgCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "sample rate used to reach --time")
	svgCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	svgCmd.Flags().IntVar(&svgHeight, "height", 600, "image height")
	svgCmd.Flags().BoolVar(&braille, "braille", false, "render through the terminal canvas")
	svgCmd.Flags().StringVar(&fromFile, "from", "", "render a scene saved with `scene --format json`")
	svgCmd.Flags().StringVar(&runID, "run", "", "plot a saved run instead of a model")

	presetsCmd := &cobra.Command{
		Use:   "presets [kind]",
		Short: "list available presets for a model",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	rootCmd.AddCommand(sceneCmd, previewCmd, traceCmd, listCmd, plotCmd, svgCmd, presetsCmd,
		normalizeCmd(), speakCmd(), serveCmd())
	rootCmd.AddCommand(batchCmds()...)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig layers defaults, the config file, .env and EDUVERSE_* variables,
// the preset, then any flag the user set.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			return nil, errors.Wrap(err, "failed to load config")
		}
	}
	if err := cfg.LoadEnv(".env"); err != nil {
		return nil, err
	}
	if len(args) > 0 {
		cfg.Kind = args[0]
	}
	if preset != "" {
		if err := config.ApplyPreset(cfg, cfg.Kind, preset); err != nil {
			return nil, errors.Wrapf(err, "available: %v", config.ListPresets(cfg.Kind))
		}
	}

	flags := cmd.Flags()
	if flags.Changed("scale") {
		cfg.Scale = scale
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Lookup("fps") != nil && flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Lookup("time") != nil && flags.Changed("time") {
		cfg.Duration = duration
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*log.Logger, error) {
	return logging.New("eduverse", cfg.LogLevel, nil)
}

// build assembles the configured kind and resolves its bindings.
func build(cfg *config.Config) (*scene.Scene, []anim.Binding, error) {
	desc, err := cfg.Descriptor()
	if err != nil {
		return nil, nil, err
	}
	sc, err := scene.NewAssembler(nil).Build(desc, cfg.SceneParams())
	if err != nil {
		return nil, nil, err
	}
	bindings, err := cfg.AnimBindings(desc.Kind)
	if err != nil {
		return nil, nil, err
	}
	return sc, bindings, nil
}

func previewOptions(cfg *config.Config, lg logging.Logger) viz.PreviewOptions {
	return viz.PreviewOptions{
		FPS:     cfg.FPS,
		Theme:   cfg.Theme,
		GIFPath: gifPath,
		Seed:    cfg.Seed,
		Logger:  lg,
	}
}

func runMenu(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	// the terminal belongs to the menu; keep log output off it
	cfg.LogLevel = "off"
	lg, err := newLogger(cfg)
	if err != nil {
		return err
	}
	asm := scene.NewAssembler(nil)

	open := func(k scene.Kind) (viz.Preview, error) {
		c := *cfg
		c.Kind = string(k)
		bindings, err := c.AnimBindings(k)
		if err != nil {
			return viz.Preview{}, err
		}
		desc := scene.Descriptor{Kind: k, ScaleFactor: c.Scale}
		return viz.NewPreview(asm, desc, c.Params, bindings, previewOptions(&c, lg))
	}
	return viz.RunApp(viz.NewApp(asm.Kinds(), open))
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	cfg.LogLevel = "off"
	lg, err := newLogger(cfg)
	if err != nil {
		return err
	}
	desc, err := cfg.Descriptor()
	if err != nil {
		return err
	}
	bindings, err := cfg.AnimBindings(desc.Kind)
	if err != nil {
		return err
	}
	p, err := viz.NewPreview(scene.NewAssembler(nil), desc, cfg.Params, bindings, previewOptions(cfg, lg))
	if err != nil {
		return err
	}
	return viz.RunPreview(p)
}

func printScene(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	sc, _, err := build(cfg)
	if err != nil {
		return err
	}
	return export.Encode(os.Stdout, f, sc)
}

func recordTrace(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	lg, err := newLogger(cfg)
	if err != nil {
		return err
	}
	sc, bindings, err := build(cfg)
	if err != nil {
		return err
	}
	defer sc.Teardown()

	samples, err := anim.Samples(float64(cfg.FPS), cfg.Duration)
	if err != nil {
		return err
	}
	if live {
		return liveTrace(cmd.Context(), cfg, sc, bindings, lg)
	}
	d := anim.NewDriver(lg)
	if err := d.Attach(sc, bindings); err != nil {
		return err
	}
	defer d.Release()
	tr := anim.Record(d, samples)

	specs := make([]anim.Spec, len(bindings))
	for i, b := range bindings {
		specs[i] = anim.SpecOf(b)
	}
	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(storage.RunMetadata{
		Kind:     string(sc.Kind),
		Seed:     cfg.Seed,
		Scale:    cfg.Scale,
		Preset:   preset,
		FPS:      float64(cfg.FPS),
		Duration: cfg.Duration,
		Bindings: specs,
	}, tr)
	if err != nil {
		return err
	}

	fmt.Printf("run id: %s\n", id)
	fmt.Printf("frames: %d\n", len(tr.Rows))
	final := d.Snapshot()
	for _, b := range bindings {
		fmt.Printf("  %s.%s: %.4f\n", b.Group, b.Axis, final[b.Group][b.Axis])
	}
	return nil
}

// liveTrace mounts sc on a ticker for cfg.Duration of wall-clock time and
// reports where the bindings ended up.
func liveTrace(ctx context.Context, cfg *config.Config, sc *scene.Scene, bindings []anim.Binding, lg logging.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Duration*float64(time.Second)))
	defer cancel()

	host := anim.NewTickerHost(ctx, time.Second/time.Duration(cfg.FPS))
	sess, err := anim.Mount(host, sc, bindings, lg)
	if err != nil {
		return err
	}
	<-ctx.Done()
	final := sess.Driver.Snapshot()
	ticks, last := sess.Driver.Ticks(), sess.Driver.Last()
	sess.Unmount()

	fmt.Printf("ticks: %d\n", ticks)
	fmt.Printf("elapsed: %.3fs\n", float64(last))
	for _, b := range bindings {
		fmt.Printf("  %s.%s: %.4f\n", b.Group, b.Axis, final[b.Group][b.Axis])
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}
	runs, err := storage.New(cfg.DataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tTIME\tDURATION\tFPS\tFRAMES\tPRESET")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%g\t%d\t%s\n",
			run.ID,
			run.Kind,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.FPS,
			run.Frames,
			run.Preset,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}
	st := storage.New(cfg.DataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	tr, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}
	if len(tr.Rows) == 0 {
		return errors.New("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("kind: %s\n", meta.Kind)
	fmt.Printf("samples: %d\n\n", len(tr.Rows))

	for _, col := range tr.Columns {
		graph := asciigraph.Plot(tr.Column(col),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(col+" (rad)"),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	if runID != "" {
		tr, err := storage.New(cfg.DataDir).LoadTrace(runID)
		if err != nil {
			return err
		}
		return writeOut(runID+".svg", export.TraceToSVG(tr, svgWidth, svgHeight))
	}

	var sc *scene.Scene
	var bindings []anim.Binding
	if fromFile != "" {
		f, err := os.Open(fromFile)
		if err != nil {
			return err
		}
		sc, err = export.DecodeScene(f)
		f.Close()
		if err != nil {
			return err
		}
		if bindings, err = cfg.AnimBindings(sc.Kind); err != nil {
			return err
		}
	} else if sc, bindings, err = build(cfg); err != nil {
		return err
	}

	lg, err := newLogger(cfg)
	if err != nil {
		return err
	}
	rotations := map[scene.GroupID]geometry.Vec3{}
	if cmd.Flags().Changed("time") && cfg.Duration > 0 {
		samples, err := anim.Samples(float64(cfg.FPS), cfg.Duration)
		if err != nil {
			return err
		}
		d := anim.NewDriver(lg)
		if err := d.Attach(sc, bindings); err != nil {
			return err
		}
		anim.Record(d, samples)
		rotations = d.Snapshot()
	}

	cam := viz.NewCamera()
	if braille {
		c := viz.NewCanvas(svgWidth/8, svgHeight/16)
		viz.Render3D(c, viz.FromScene(sc, rotations), cam)
		return writeOut(string(sc.Kind)+".svg", export.CanvasToSVG(c, 4))
	}
	var sb strings.Builder
	if err := export.SceneToSVG(&sb, sc, rotations, cam, svgWidth, svgHeight); err != nil {
		return err
	}
	return writeOut(string(sc.Kind)+".svg", sb.String())
}

func writeOut(fallback, content string) error {
	path := outPath
	if path == "" {
		path = fallback
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return err
	}
	fmt.Printf("saved %s\n", path)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	kinds := []string{string(scene.Atom), string(scene.Cell), string(scene.DNA), string(scene.MathSurface)}
	if len(args) > 0 {
		k, err := scene.ParseKind(args[0])
		if err != nil {
			return err
		}
		kinds = []string{string(k)}
	}
	for _, k := range kinds {
		fmt.Printf("presets for %s:\n", k)
		for _, name := range config.ListPresets(k) {
			fmt.Printf("  %-12s %s\n", name, config.Presets[k][name].Description)
		}
	}
	return nil
}
