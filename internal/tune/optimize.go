// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tune

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/rand"

	"github.com/pdiddy/slicebench/pkg/types"
)

// Objective evaluates the model being tuned at one regularization
// strength and returns its validation RMSE.
type Objective func(ctx context.Context, lambda float64) (float64, error)

// Observation is one evaluated point of a tuning run.
type Observation struct {
	// LogLambda is the searched coordinate, log10 of the strength.
	LogLambda float64 `json:"log_lambda" yaml:"log_lambda"`

	// Lambda is the regularization strength passed to the objective.
	Lambda float64 `json:"lambda" yaml:"lambda"`

	// RMSE is the objective value at Lambda.
	RMSE float64 `json:"rmse" yaml:"rmse"`
}

// Result is the trace and best point of a tuning run.
type Result struct {
	Trace []Observation `json:"trace" yaml:"trace"`
	Best  Observation   `json:"best" yaml:"best"`
}

// Optimize searches log10(lambda) over the configured interval. It
// evaluates an evenly spaced initial design, then runs the configured
// number of surrogate-guided iterations: each scores a sampled candidate
// set with the acquisition rule, evaluates the winner, and updates the
// surrogate. Deterministic for a fixed seed and objective.
func Optimize(ctx context.Context, cfg types.TuneConfig, objective Objective, w io.Writer) (Result, error) {
	if cfg.LogLambdaMin >= cfg.LogLambdaMax {
		return Result{}, fmt.Errorf("empty search interval [%v, %v]", cfg.LogLambdaMin, cfg.LogLambdaMax)
	}
	if cfg.InitialSamples < 1 {
		return Result{}, fmt.Errorf("initial sample count %d must be at least 1", cfg.InitialSamples)
	}
	if cfg.Candidates < 1 {
		return Result{}, fmt.Errorf("candidate count %d must be at least 1", cfg.Candidates)
	}

	acquire, err := ForKind(cfg.Acquisition)
	if err != nil {
		return Result{}, err
	}

	gp, err := NewGP(cfg.KernelWidth, cfg.Noise)
	if err != nil {
		return Result{}, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	interval := Range[float64]{Min: cfg.LogLambdaMin, Max: cfg.LogLambdaMax}

	result := Result{Best: Observation{RMSE: math.Inf(1)}}

	evaluate := func(logLambda float64, phase string) error {
		lambda := math.Pow(10, logLambda)
		rmse, err := objective(ctx, lambda)
		if err != nil {
			return fmt.Errorf("evaluating lambda=%.3g: %w", lambda, err)
		}

		obs := Observation{LogLambda: logLambda, Lambda: lambda, RMSE: rmse}
		result.Trace = append(result.Trace, obs)
		if rmse < result.Best.RMSE {
			result.Best = obs
		}

		fmt.Fprintf(w, "%s: lambda %.4g rmse %.4f (best %.4f at lambda %.4g)\n",
			phase, lambda, rmse, result.Best.RMSE, result.Best.Lambda)

		return gp.Observe([]float64{logLambda}, rmse)
	}

	// Initial design: even coverage of the interval.
	for _, logLambda := range interval.Grid(cfg.InitialSamples) {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}
		if err := evaluate(logLambda, "init"); err != nil {
			return result, err
		}
	}

	// Surrogate-guided iterations.
	for i := 0; i < cfg.Iterations; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		params := AcqParams{Best: result.Best.RMSE, Xi: cfg.Xi, Beta: cfg.Beta}

		next := interval.Sample(rng)
		bestScore := math.Inf(-1)
		for j := 0; j < cfg.Candidates; j++ {
			candidate := interval.Sample(rng)
			mean, variance := gp.Predict([]float64{candidate})
			if score := acquire(mean, variance, params); score > bestScore {
				bestScore = score
				next = candidate
			}
		}

		if err := evaluate(next, fmt.Sprintf("iter %d/%d", i+1, cfg.Iterations)); err != nil {
			return result, err
		}
	}

	return result, nil
}
