// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logistic fits banks of binary logistic regressions over
// thresholded versions of the regression target. The per-task predicted
// probabilities serve as engineered features for a second-stage linear
// model and as a warm start for the neural stage.
package logistic

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Model is one fitted logistic regression together with the target
// threshold that defined its binary task.
type Model struct {
	W         []float64
	B         float64
	Threshold float64
}

// Sigmoid is the standard logistic function.
func Sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

// Labels converts the continuous target into binary labels for a
// threshold: 1 where y >= threshold, else 0.
func Labels(y []float64, threshold float64) []float64 {
	labels := make([]float64, len(y))
	for i, v := range y {
		if v >= threshold {
			labels[i] = 1
		}
	}
	return labels
}

// Fit trains an L2-regularized logistic regression by full-batch
// gradient descent on the mean cross-entropy. labels must be 0/1.
// Cancellation is checked between iterations.
func Fit(ctx context.Context, x *mat.Dense, labels []float64, threshold, lambda, learningRate float64, iterations int) (Model, error) {
	n, d := x.Dims()
	if n != len(labels) {
		return Model{}, fmt.Errorf("feature/label row mismatch: %d vs %d", n, len(labels))
	}
	if learningRate <= 0 {
		return Model{}, fmt.Errorf("learning rate %v must be positive", learningRate)
	}

	w := mat.NewVecDense(d, nil)
	var b float64

	z := mat.NewVecDense(n, nil)
	errs := make([]float64, n)
	var grad mat.VecDense
	scale := 1 / float64(n)

	for iter := 0; iter < iterations; iter++ {
		select {
		case <-ctx.Done():
			return Model{}, ctx.Err()
		default:
		}

		z.MulVec(x, w)

		// errs = sigmoid(z+b) − labels; also the bias gradient summand.
		var bGrad float64
		for i := 0; i < n; i++ {
			errs[i] = Sigmoid(z.AtVec(i)+b) - labels[i]
			bGrad += errs[i]
		}

		grad.MulVec(x.T(), mat.NewVecDense(n, errs))
		grad.AddScaledVec(&grad, lambda, w)
		w.AddScaledVec(w, -learningRate*scale, &grad)
		b -= learningRate * scale * bGrad
	}

	out := make([]float64, d)
	copy(out, w.RawVector().Data)
	return Model{W: out, B: b, Threshold: threshold}, nil
}

// Probabilities returns the model's predicted probability for each row.
func (m Model) Probabilities(x *mat.Dense) []float64 {
	n, _ := x.Dims()
	var z mat.VecDense
	z.MulVec(x, mat.NewVecDense(len(m.W), m.W))

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = Sigmoid(z.AtVec(i) + m.B)
	}
	return out
}
