// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package neural

import (
	"context"
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/pdiddy/slicebench/pkg/types"
)

// reportEvery controls how often Train writes a progress line.
const reportEvery = 100

// Train runs full-batch gradient descent on the mean squared error plus
// L2 weight decay on W1 and W2 (biases are not penalized). Progress is
// written to w every hundred epochs. Cancellation is checked between
// epochs.
func (n *Network) Train(ctx context.Context, x *mat.Dense, y []float64, cfg types.NeuralConfig, w io.Writer) error {
	rows, d := x.Dims()
	if rows != len(y) {
		return fmt.Errorf("feature/target row mismatch: %d vs %d", rows, len(y))
	}
	if d1, _ := n.W1.Dims(); d1 != d {
		return fmt.Errorf("network expects %d inputs, data has %d", d1, d)
	}
	if cfg.LearningRate <= 0 {
		return fmt.Errorf("learning rate %v must be positive", cfg.LearningRate)
	}

	h := len(n.W2)
	scale := 1 / float64(rows)

	delta := make([]float64, rows)
	var gradW1, gradZ mat.Dense
	var gradW2 mat.VecDense

	for epoch := 1; epoch <= cfg.Epochs; epoch++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		a := n.hidden(x)

		// delta = (ŷ − y) / n.
		var sse float64
		for i := 0; i < rows; i++ {
			pred := n.B2
			for j := 0; j < h; j++ {
				pred += a.At(i, j) * n.W2[j]
			}
			diff := pred - y[i]
			sse += diff * diff
			delta[i] = diff * scale
		}

		if math.IsNaN(sse) || math.IsInf(sse, 0) {
			return fmt.Errorf("training diverged at epoch %d; lower the learning rate", epoch)
		}

		// Output layer gradients.
		deltaVec := mat.NewVecDense(rows, delta)
		gradW2.MulVec(a.T(), deltaVec)
		var gradB2 float64
		for i := 0; i < rows; i++ {
			gradB2 += delta[i]
		}

		// Hidden layer: gradZ = (delta w2ᵀ) ⊙ a(1−a).
		gradZ.Reset()
		gradZ.Outer(1, deltaVec, mat.NewVecDense(h, n.W2))
		for i := 0; i < rows; i++ {
			for j := 0; j < h; j++ {
				av := a.At(i, j)
				gradZ.Set(i, j, gradZ.At(i, j)*av*(1-av))
			}
		}
		gradW1.Reset()
		gradW1.Mul(x.T(), &gradZ)

		// Apply updates with weight decay.
		lr := cfg.LearningRate
		n.W1.Apply(func(i, j int, v float64) float64 {
			return v - lr*(gradW1.At(i, j)+cfg.WeightDecay*scale*v)
		}, n.W1)
		for j := 0; j < h; j++ {
			var gradB1 float64
			for i := 0; i < rows; i++ {
				gradB1 += gradZ.At(i, j)
			}
			n.B1[j] -= lr * gradB1
			n.W2[j] -= lr * (gradW2.AtVec(j) + cfg.WeightDecay*scale*n.W2[j])
		}
		n.B2 -= lr * gradB2

		if epoch%reportEvery == 0 || epoch == cfg.Epochs {
			fmt.Fprintf(w, "epoch %4d/%d: rmse %.4f\n", epoch, cfg.Epochs, math.Sqrt(sse*scale))
		}
	}

	return nil
}
