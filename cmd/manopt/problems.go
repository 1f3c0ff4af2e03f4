package main

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/manopt/internal/config"
	"github.com/katalvlaran/manopt/manifold"
	"github.com/katalvlaran/manopt/objectives"
	"github.com/katalvlaran/manopt/optimize"
)

// instance is a random problem on St(n,p) together with its start point.
type instance struct {
	stiefel *manifold.Stiefel
	problem optimize.Problem
	x0      *mat.Dense
	optimum float64 // NaN when unknown
}

// buildInstance draws a reproducible instance of cfg.Problem from cfg.Seed.
func buildInstance(cfg config.Run) (*instance, error) {
	st := manifold.NewStiefel(cfg.N, cfg.P)
	rng := manifold.NewRNG(cfg.Seed)
	inst := &instance{stiefel: st, optimum: math.NaN()}

	switch cfg.Problem {
	case config.ProblemDistance:
		target, err := manifold.RandomPoint(st, rng)
		if err != nil {
			return nil, fmt.Errorf("distance target: %w", err)
		}
		inst.problem = objectives.Distance(target)
		inst.optimum = 0

	case config.ProblemPCA:
		// Column j is scaled by n−j so the spectrum is well separated.
		data := mat.NewDense(cfg.Samples, cfg.N, nil)
		for i := 0; i < cfg.Samples; i++ {
			for j := 0; j < cfg.N; j++ {
				data.Set(i, j, float64(cfg.N-j)*rng.NormFloat64())
			}
		}
		cov, err := objectives.Covariance(data)
		if err != nil {
			return nil, fmt.Errorf("pca covariance: %w", err)
		}
		inst.problem = objectives.Brockett(cov)
		inst.optimum = -topEigenSum(cov, cfg.P)

	case config.ProblemProcrustes:
		q, err := manifold.RandomPoint(st, rng)
		if err != nil {
			return nil, fmt.Errorf("procrustes rotation: %w", err)
		}
		a := mat.NewDense(2*cfg.N, cfg.N, nil)
		for i := 0; i < 2*cfg.N; i++ {
			for j := 0; j < cfg.N; j++ {
				a.Set(i, j, rng.NormFloat64())
			}
		}
		var b mat.Dense
		b.Mul(a, q)
		if inst.problem, err = objectives.Procrustes(a, &b); err != nil {
			return nil, err
		}
		inst.optimum = 0

	default:
		return nil, fmt.Errorf("problem %q: %w", cfg.Problem, config.ErrInvalid)
	}

	x0, err := manifold.RandomPoint(st, rng)
	if err != nil {
		return nil, fmt.Errorf("start point: %w", err)
	}
	inst.x0 = x0
	if cfg.NumericGrad {
		inst.problem.Grad = nil
	}

	return inst, nil
}

// topEigenSum returns the sum of the k largest eigenvalues of a.
func topEigenSum(a mat.Symmetric, k int) float64 {
	var eig mat.EigenSym
	if !eig.Factorize(a, false) {
		return math.NaN()
	}
	vals := eig.Values(nil)
	sort.Sort(sort.Reverse(sort.Float64Slice(vals)))

	return floats.Sum(vals[:k])
}
