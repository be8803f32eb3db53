package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/eduverse/internal/automation"
	"github.com/san-kum/eduverse/internal/storage"
)

var (
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	runs       int
)

func batchCmds() []*cobra.Command {
	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "record every step of a yaml lesson scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [kind]",
		Short: "build a model across a range of one parameter",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "scale", "parameter ("+strings.Join(automation.SweepParams(), "|")+")")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.5, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 2, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble [kind]",
		Short: "build seeded variants of a model concurrently",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEnsemble,
	}
	ensembleCmd.Flags().IntVar(&runs, "runs", 8, "number of variants")

	return []*cobra.Command{scenarioCmd, sweepCmd, ensembleCmd}
}

func newRunner(cmd *cobra.Command, args []string) (*automation.Runner, error) {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return nil, err
	}
	lg, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}
	return automation.NewRunner(cfg, nil, storage.New(cfg.DataDir), lg), nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	r, err := newRunner(cmd, nil)
	if err != nil {
		return err
	}
	fmt.Printf("scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Printf("  %s\n", sc.Description)
	}
	results, err := r.RunScenario(cmd.Context(), sc)
	for _, res := range results {
		fmt.Printf("  step %d: %s run %s (%d frames)", res.Step, res.Kind, res.RunID, res.Frames)
		if res.SVG != "" {
			fmt.Printf(" svg %s", res.SVG)
		}
		fmt.Println()
	}
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	r, err := newRunner(cmd, args)
	if err != nil {
		return err
	}
	kind := ""
	if len(args) > 0 {
		kind = args[0]
	}
	results, err := r.RunSweep(cmd.Context(), automation.ParameterSweep{
		Kind:     kind,
		Param:    sweepParam,
		ParamMin: sweepMin,
		ParamMax: sweepMax,
		Steps:    sweepSteps,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tGROUPS\tPLACEMENTS\tEXTENT\tERROR\n", strings.ToUpper(sweepParam))
	extents := make([]float64, 0, len(results))
	for _, res := range results {
		fmt.Fprintf(w, "%.4g\t%d\t%d\t%.3f\t%s\n", res.ParamValue, res.Groups, res.Placements, res.Extent, res.Err)
		extents = append(extents, res.Extent)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if len(extents) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(extents, asciigraph.Height(8), asciigraph.Caption("extent by "+sweepParam)))
	}
	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	r, err := newRunner(cmd, args)
	if err != nil {
		return err
	}
	start := seed
	if start == 0 {
		start = 1
	}
	results, err := r.RunEnsemble(cmd.Context(), runs, start)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tPLACEMENTS\tEXTENT")
	for _, res := range results {
		fmt.Fprintf(w, "%d\t%d\t%.3f\n", res.Seed, res.Placements, res.Extent)
	}
	return w.Flush()
}
