// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package linear fits L2-regularized least-squares regression two ways:
// a direct normal-equations solve and full-batch gradient descent. Both
// minimize ½‖Xw−y‖² + ½λ‖w‖², so their solutions agree up to solver
// tolerance. Inputs are assumed standardized with a centered target, so
// no intercept is fitted.
package linear

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Ridge solves (XᵀX + λI)w = Xᵀy by Cholesky factorization and returns
// the coefficient vector. lambda must be non-negative; a positive lambda
// also guarantees the system is positive definite.
func Ridge(x *mat.Dense, y []float64, lambda float64) ([]float64, error) {
	n, d := x.Dims()
	if n != len(y) {
		return nil, fmt.Errorf("feature/target row mismatch: %d vs %d", n, len(y))
	}
	if lambda < 0 {
		return nil, fmt.Errorf("negative regularization strength %v", lambda)
	}

	var xtx mat.Dense
	xtx.Mul(x.T(), x)

	gram := mat.NewSymDense(d, nil)
	for i := 0; i < d; i++ {
		for j := i; j < d; j++ {
			gram.SetSym(i, j, xtx.At(i, j))
		}
		gram.SetSym(i, i, xtx.At(i, i)+lambda)
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(gram); !ok {
		return nil, fmt.Errorf("normal equations not positive definite (lambda=%v); increase regularization", lambda)
	}

	var xty mat.VecDense
	xty.MulVec(x.T(), mat.NewVecDense(n, y))

	var w mat.VecDense
	if err := chol.SolveVecTo(&w, &xty); err != nil {
		return nil, fmt.Errorf("solving normal equations: %w", err)
	}

	out := make([]float64, d)
	copy(out, w.RawVector().Data)
	return out, nil
}

// Predict returns Xw.
func Predict(x *mat.Dense, w []float64) []float64 {
	n, _ := x.Dims()
	var pred mat.VecDense
	pred.MulVec(x, mat.NewVecDense(len(w), w))

	out := make([]float64, n)
	copy(out, pred.RawVector().Data)
	return out
}
