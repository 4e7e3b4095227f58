// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package neural implements a two-layer regression network: sigmoid
// hidden units and a linear output, trained by full-batch gradient
// descent with L2 weight decay. The hidden layer can be warm-started
// from a fitted logistic bank.
package neural

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/pdiddy/slicebench/internal/logistic"
)

// Network holds the weights of the two-layer model. W1 is d×h, so each
// hidden unit is a column, mirroring a logistic model over the inputs.
type Network struct {
	W1 *mat.Dense
	B1 []float64
	W2 []float64
	B2 float64
}

// New returns a network with small seeded Gaussian weights and zero
// biases.
func New(inputs, hidden int, seed int64) *Network {
	rng := rand.New(rand.NewSource(seed))

	w1 := mat.NewDense(inputs, hidden, nil)
	for i := 0; i < inputs; i++ {
		for j := 0; j < hidden; j++ {
			w1.Set(i, j, rng.NormFloat64()*0.1)
		}
	}

	w2 := make([]float64, hidden)
	for j := range w2 {
		w2[j] = rng.NormFloat64() * 0.1
	}

	return &Network{
		W1: w1,
		B1: make([]float64, hidden),
		W2: w2,
		B2: 0,
	}
}

// FromBank builds a network whose hidden units reproduce the logistic
// bank and whose output layer applies ridge coefficients fitted on
// standardized probability features. mean and std are the scaler
// statistics of those features; standardization is folded into the
// output weights so the network operates on raw sigmoid activations.
func FromBank(bank *logistic.Bank, ridgeW, mean, std []float64) (*Network, error) {
	h := len(bank.Models)
	if h == 0 {
		return nil, fmt.Errorf("logistic bank is empty")
	}
	if len(ridgeW) != h || len(mean) != h || len(std) != h {
		return nil, fmt.Errorf("output layer size mismatch: %d hidden units, %d ridge weights, %d/%d scaler stats",
			h, len(ridgeW), len(mean), len(std))
	}

	d := len(bank.Models[0].W)
	w1 := mat.NewDense(d, h, nil)
	b1 := make([]float64, h)
	for j, model := range bank.Models {
		if len(model.W) != d {
			return nil, fmt.Errorf("logistic model %d has %d weights, want %d", j, len(model.W), d)
		}
		w1.SetCol(j, model.W)
		b1[j] = model.B
	}

	// (a−μ)/σ · w  ==  a · (w/σ) − Σ μw/σ.
	w2 := make([]float64, h)
	var b2 float64
	for j := range ridgeW {
		w2[j] = ridgeW[j] / std[j]
		b2 -= mean[j] * ridgeW[j] / std[j]
	}

	return &Network{W1: w1, B1: b1, W2: w2, B2: b2}, nil
}

// Predict returns the network output for each row of x.
func (n *Network) Predict(x *mat.Dense) []float64 {
	a := n.hidden(x)
	rows, _ := a.Dims()

	var out mat.VecDense
	out.MulVec(a, mat.NewVecDense(len(n.W2), n.W2))

	pred := make([]float64, rows)
	for i := 0; i < rows; i++ {
		pred[i] = out.AtVec(i) + n.B2
	}
	return pred
}

// hidden returns the n×h matrix of sigmoid activations for x.
func (n *Network) hidden(x *mat.Dense) *mat.Dense {
	var z mat.Dense
	z.Mul(x, n.W1)

	rows, h := z.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < h; j++ {
			z.Set(i, j, logistic.Sigmoid(z.At(i, j)+n.B1[j]))
		}
	}
	return &z
}
