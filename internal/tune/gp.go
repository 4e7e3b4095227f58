// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tune selects hyperparameters by Bayesian optimization: a
// Gaussian-process surrogate over observed objective values and an
// acquisition rule that picks the next candidate to evaluate.
package tune

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// GP is a Gaussian-process regression surrogate with an RBF kernel and
// fixed observation-noise jitter. The posterior is maintained through a
// Cholesky factorization of the kernel Gram matrix; it is refit on each
// observation, which is cheap at the handful of points a tuning run
// accumulates.
type GP struct {
	width float64
	noise float64

	x [][]float64
	y []float64

	chol  mat.Cholesky
	alpha *mat.VecDense
}

// NewGP returns an empty surrogate. width is the RBF length scale; noise
// is added to the Gram diagonal to keep the factorization stable.
func NewGP(width, noise float64) (*GP, error) {
	if width <= 0 {
		return nil, fmt.Errorf("kernel width %v must be positive", width)
	}
	if noise <= 0 {
		return nil, fmt.Errorf("noise jitter %v must be positive", noise)
	}
	return &GP{width: width, noise: noise}, nil
}

// Kernel is the RBF (squared-exponential) kernel.
func (gp *GP) Kernel(a, b []float64) float64 {
	var sum float64
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return math.Exp(-sum / (2 * gp.width * gp.width))
}

// Observations returns the number of points the surrogate has seen.
func (gp *GP) Observations() int {
	return len(gp.x)
}

// Observe adds a point and refits the posterior. The input is copied.
func (gp *GP) Observe(x []float64, y float64) error {
	if len(gp.x) > 0 && len(x) != len(gp.x[0]) {
		return fmt.Errorf("observation has %d dimensions, surrogate has %d", len(x), len(gp.x[0]))
	}

	point := make([]float64, len(x))
	copy(point, x)
	gp.x = append(gp.x, point)
	gp.y = append(gp.y, y)

	return gp.refit()
}

// refit rebuilds the Cholesky factorization of K + noise·I and the
// weight vector alpha = K⁻¹y.
func (gp *GP) refit() error {
	n := len(gp.x)

	gram := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			gram.SetSym(i, j, gp.Kernel(gp.x[i], gp.x[j]))
		}
		gram.SetSym(i, i, gram.At(i, i)+gp.noise)
	}

	if ok := gp.chol.Factorize(gram); !ok {
		return fmt.Errorf("kernel matrix not positive definite with %d observations; increase noise jitter", n)
	}

	gp.alpha = mat.NewVecDense(n, nil)
	if err := gp.chol.SolveVecTo(gp.alpha, mat.NewVecDense(n, gp.y)); err != nil {
		return fmt.Errorf("solving for surrogate weights: %w", err)
	}
	return nil
}

// Predict returns the posterior mean and variance at x. With no
// observations it returns the prior: mean 0, variance 1.
func (gp *GP) Predict(x []float64) (mean, variance float64) {
	n := len(gp.x)
	if n == 0 {
		return 0, 1
	}

	k := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		k.SetVec(i, gp.Kernel(x, gp.x[i]))
	}

	mean = mat.Dot(k, gp.alpha)

	// variance = k(x,x) − k*ᵀ K⁻¹ k*, via the existing factorization.
	var solved mat.VecDense
	if err := gp.chol.SolveVecTo(&solved, k); err != nil {
		return mean, gp.Kernel(x, x)
	}
	variance = gp.Kernel(x, x) - mat.Dot(k, &solved)
	if variance < 0 {
		variance = 0
	}
	return mean, variance
}
