// SPDX-License-Identifier: MIT

// Package config holds the run configuration of the manopt CLI: a YAML
// file overlaid by command-line flags, validated before any optimizer
// option is built from it.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/manopt/optimize"
)

// Problem names accepted by Run.Problem.
const (
	ProblemDistance   = "distance"
	ProblemPCA        = "pca"
	ProblemProcrustes = "procrustes"
)

// ErrInvalid indicates a configuration value outside its domain.
var ErrInvalid = errors.New("config: invalid value")

// Run is one optimizer invocation.
type Run struct {
	Problem     string     `yaml:"problem"`
	N           int        `yaml:"n"`
	P           int        `yaml:"p"`
	Samples     int        `yaml:"samples"`
	Seed        int64      `yaml:"seed"`
	Threshold   float64    `yaml:"threshold"`
	MaxIter     int        `yaml:"max_iter"`
	NumericGrad bool       `yaml:"numeric_grad"`
	LineSearch  LineSearch `yaml:"line_search"`
}

// LineSearch carries the backtracking tunables. Zero fields keep the
// optimizer defaults.
type LineSearch struct {
	InitialStep float64 `yaml:"initial_step"`
	Contraction float64 `yaml:"contraction"`
	Decrease    float64 `yaml:"decrease"`
	MinStep     float64 `yaml:"min_step"`
}

// Default returns the configuration used when no file is given.
func Default() Run {
	return Run{
		Problem:   ProblemDistance,
		N:         5,
		P:         2,
		Samples:   200,
		Seed:      1,
		Threshold: optimize.DefaultConvergenceThreshold,
		MaxIter:   optimize.DefaultMaxIter,
	}
}

// Load reads path and overlays it on Default. Unknown keys are rejected.
func Load(path string) (Run, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Run{}, fmt.Errorf("read config %s: %w", path, err)
	}

	return Parse(raw)
}

// Parse decodes a YAML document over Default and validates the result.
func Parse(raw []byte) (Run, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Run{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Run{}, err
	}

	return cfg, nil
}

// Validate checks every field against its domain.
func (r Run) Validate() error {
	switch r.Problem {
	case ProblemDistance, ProblemPCA, ProblemProcrustes:
	default:
		return fmt.Errorf("problem %q: %w", r.Problem, ErrInvalid)
	}
	if r.N < 1 || r.P < 1 || r.P > r.N {
		return fmt.Errorf("shape %dx%d: need 1 <= p <= n: %w", r.N, r.P, ErrInvalid)
	}
	if r.Problem == ProblemPCA && r.Samples < 2 {
		return fmt.Errorf("samples %d: need at least 2: %w", r.Samples, ErrInvalid)
	}
	if !(r.Threshold > 0) || math.IsInf(r.Threshold, 1) {
		return fmt.Errorf("threshold %v: %w", r.Threshold, ErrInvalid)
	}
	if r.MaxIter < 1 {
		return fmt.Errorf("max_iter %d: %w", r.MaxIter, ErrInvalid)
	}

	return r.LineSearch.Validate()
}

// Validate checks the non-zero tunables.
func (ls LineSearch) Validate() error {
	if ls.InitialStep != 0 && !positiveFinite(ls.InitialStep) {
		return fmt.Errorf("line_search.initial_step %v: %w", ls.InitialStep, ErrInvalid)
	}
	if ls.Contraction != 0 && !unitOpen(ls.Contraction) {
		return fmt.Errorf("line_search.contraction %v: %w", ls.Contraction, ErrInvalid)
	}
	if ls.Decrease != 0 && !unitOpen(ls.Decrease) {
		return fmt.Errorf("line_search.decrease %v: %w", ls.Decrease, ErrInvalid)
	}
	if ls.MinStep != 0 && !positiveFinite(ls.MinStep) {
		return fmt.Errorf("line_search.min_step %v: %w", ls.MinStep, ErrInvalid)
	}

	return nil
}

// Options converts the set tunables into optimizer options.
// Call Validate first; invalid values make the WithX constructors panic.
func (ls LineSearch) Options() []optimize.Option {
	var opts []optimize.Option
	if ls.InitialStep != 0 {
		opts = append(opts, optimize.WithInitialStep(ls.InitialStep))
	}
	if ls.Contraction != 0 {
		opts = append(opts, optimize.WithContraction(ls.Contraction))
	}
	if ls.Decrease != 0 {
		opts = append(opts, optimize.WithDecrease(ls.Decrease))
	}
	if ls.MinStep != 0 {
		opts = append(opts, optimize.WithMinStep(ls.MinStep))
	}

	return opts
}

func positiveFinite(v float64) bool { return v > 0 && !math.IsInf(v, 1) }

func unitOpen(v float64) bool { return v > 0 && v < 1 }
