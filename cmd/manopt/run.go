package main

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/manopt/internal/config"
	"github.com/katalvlaran/manopt/optimize"
)

// summary is the YAML report printed after a run.
type summary struct {
	Manifold        string   `yaml:"manifold"`
	Problem         string   `yaml:"problem"`
	Status          string   `yaml:"status"`
	Objective       float64  `yaml:"objective"`
	Optimum         *float64 `yaml:"optimum,omitempty"`
	Iterations      int      `yaml:"iterations"`
	FuncEvaluations int      `yaml:"func_evaluations"`
	GradEvaluations int      `yaml:"grad_evaluations"`
	GradNorm        float64  `yaml:"grad_norm"`
	OnManifold      bool     `yaml:"on_manifold"`
}

func runCmd(ctx context.Context) *cobra.Command {
	var (
		cfgPath string
		flags   config.Run
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Minimize a built-in problem on St(n,p)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if cfgPath != "" {
				loaded, err := config.Load(cfgPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			overlayFlags(cmd, &cfg, flags)
			if err := cfg.Validate(); err != nil {
				return err
			}

			s, err := execute(ctx, cfg, log.Logger)
			if err != nil {
				return err
			}
			out, err := yaml.Marshal(s)
			if err != nil {
				return fmt.Errorf("encode summary: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)

			return err
		},
	}

	f := cmd.Flags()
	f.StringVarP(&cfgPath, "config", "c", "", "YAML run configuration")
	f.StringVar(&flags.Problem, "problem", config.ProblemDistance, "distance | pca | procrustes")
	f.IntVar(&flags.N, "n", 5, "ambient rows")
	f.IntVar(&flags.P, "p", 2, "orthonormal columns")
	f.IntVar(&flags.Samples, "samples", 200, "observations for pca")
	f.Int64Var(&flags.Seed, "seed", 1, "random seed (0 selects the default)")
	f.Float64Var(&flags.Threshold, "threshold", optimize.DefaultConvergenceThreshold, "mean squared step below which the run converges")
	f.IntVar(&flags.MaxIter, "max-iter", optimize.DefaultMaxIter, "iteration budget")
	f.BoolVar(&flags.NumericGrad, "numeric-grad", false, "use finite differences instead of the analytic gradient")
	f.Float64Var(&flags.LineSearch.InitialStep, "step", 0, "first trial step of each line search")
	f.Float64Var(&flags.LineSearch.Contraction, "contraction", 0, "backtracking factor in (0,1)")
	f.Float64Var(&flags.LineSearch.Decrease, "decrease", 0, "Armijo constant in (0,1)")

	return cmd
}

// overlayFlags copies every flag the user set explicitly onto cfg.
func overlayFlags(cmd *cobra.Command, cfg *config.Run, fl config.Run) {
	set := cmd.Flags().Changed
	if set("problem") {
		cfg.Problem = fl.Problem
	}
	if set("n") {
		cfg.N = fl.N
	}
	if set("p") {
		cfg.P = fl.P
	}
	if set("samples") {
		cfg.Samples = fl.Samples
	}
	if set("seed") {
		cfg.Seed = fl.Seed
	}
	if set("threshold") {
		cfg.Threshold = fl.Threshold
	}
	if set("max-iter") {
		cfg.MaxIter = fl.MaxIter
	}
	if set("numeric-grad") {
		cfg.NumericGrad = fl.NumericGrad
	}
	if set("step") {
		cfg.LineSearch.InitialStep = fl.LineSearch.InitialStep
	}
	if set("contraction") {
		cfg.LineSearch.Contraction = fl.LineSearch.Contraction
	}
	if set("decrease") {
		cfg.LineSearch.Decrease = fl.LineSearch.Decrease
	}
}

// execute builds the instance described by cfg and minimizes it.
// Cancelling ctx aborts the run after the current iteration.
func execute(ctx context.Context, cfg config.Run, logger zerolog.Logger) (*summary, error) {
	inst, err := buildInstance(cfg)
	if err != nil {
		return nil, err
	}

	opts := append(cfg.LineSearch.Options(),
		optimize.WithLogger(logger),
		optimize.WithRecorder(optimize.RecorderFunc(func(optimize.Stats) error { return ctx.Err() })),
	)
	logger.Info().
		Str("problem", cfg.Problem).
		Stringer("manifold", inst.stiefel).
		Int64("seed", cfg.Seed).
		Bool("numeric_grad", cfg.NumericGrad).
		Msg("starting run")

	res, err := optimize.ProjGradDescent(inst.x0, inst.stiefel, inst.problem, cfg.Threshold, cfg.MaxIter, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s on %v: %w", cfg.Problem, inst.stiefel, err)
	}
	on, err := inst.stiefel.Contains(res.X)
	if err != nil {
		return nil, err
	}

	s := &summary{
		Manifold:        inst.stiefel.String(),
		Problem:         cfg.Problem,
		Status:          res.Status.String(),
		Objective:       res.F,
		Iterations:      res.Iterations,
		FuncEvaluations: res.FuncEvaluations,
		GradEvaluations: res.GradEvaluations,
		GradNorm:        res.GradNorm,
		OnManifold:      on,
	}
	if !math.IsNaN(inst.optimum) {
		opt := inst.optimum
		s.Optimum = &opt
	}

	return s, nil
}
