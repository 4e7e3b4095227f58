// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package linear

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// RidgeGD minimizes the same objective as Ridge by full-batch gradient
// descent from a zero start. The gradient is scaled by 1/n so the
// learning rate is insensitive to dataset size. Cancellation is checked
// between iterations.
func RidgeGD(ctx context.Context, x *mat.Dense, y []float64, lambda, learningRate float64, iterations int) ([]float64, error) {
	n, d := x.Dims()
	if n != len(y) {
		return nil, fmt.Errorf("feature/target row mismatch: %d vs %d", n, len(y))
	}
	if learningRate <= 0 {
		return nil, fmt.Errorf("learning rate %v must be positive", learningRate)
	}
	if iterations <= 0 {
		return nil, fmt.Errorf("iteration count %v must be positive", iterations)
	}

	w := mat.NewVecDense(d, nil)
	yVec := mat.NewVecDense(n, y)

	var residual, grad mat.VecDense
	scale := 1 / float64(n)

	for iter := 0; iter < iterations; iter++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		// residual = Xw − y; grad = (Xᵀ residual + λw) / n.
		residual.MulVec(x, w)
		residual.SubVec(&residual, yVec)
		grad.MulVec(x.T(), &residual)
		grad.AddScaledVec(&grad, lambda, w)
		w.AddScaledVec(w, -learningRate*scale, &grad)

		if !floats.HasNaN(w.RawVector().Data) {
			continue
		}
		return nil, fmt.Errorf("gradient descent diverged at iteration %d; lower the learning rate", iter)
	}

	out := make([]float64, d)
	copy(out, w.RawVector().Data)
	return out, nil
}
