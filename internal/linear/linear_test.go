// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package linear

import (
	"context"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// exactData builds a well-conditioned system with a known solution
// y = 3·x1 − 2·x2.
func exactData() (*mat.Dense, []float64) {
	x := mat.NewDense(6, 2, []float64{
		1, 0,
		0, 1,
		1, 1,
		-1, 1,
		2, -1,
		-1, -2,
	})
	w := []float64{3, -2}

	y := make([]float64, 6)
	for i := range y {
		y[i] = w[0]*x.At(i, 0) + w[1]*x.At(i, 1)
	}
	return x, y
}

func TestRidgeRecoversCoefficients(t *testing.T) {
	x, y := exactData()

	w, err := Ridge(x, y, 1e-10)
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(w[0]-3) > 1e-6 || math.Abs(w[1]+2) > 1e-6 {
		t.Errorf("Ridge() = %v, want [3 -2]", w)
	}
}

func TestRidgeShrinksCoefficients(t *testing.T) {
	x, y := exactData()

	small, err := Ridge(x, y, 0.01)
	if err != nil {
		t.Fatal(err)
	}
	large, err := Ridge(x, y, 100)
	if err != nil {
		t.Fatal(err)
	}

	if floats.Norm(large, 2) >= floats.Norm(small, 2) {
		t.Errorf("norm did not shrink: lambda=0.01 gives %v, lambda=100 gives %v",
			floats.Norm(small, 2), floats.Norm(large, 2))
	}
}

func TestRidgeValidation(t *testing.T) {
	x, y := exactData()

	if _, err := Ridge(x, y[:3], 1); err == nil {
		t.Error("Ridge() accepted mismatched rows")
	}
	if _, err := Ridge(x, y, -1); err == nil {
		t.Error("Ridge() accepted negative lambda")
	}
}

func TestRidgeGDMatchesClosedForm(t *testing.T) {
	x, y := exactData()
	const lambda = 0.1

	closed, err := Ridge(x, y, lambda)
	if err != nil {
		t.Fatal(err)
	}

	descended, err := RidgeGD(context.Background(), x, y, lambda, 0.5, 5000)
	if err != nil {
		t.Fatal(err)
	}

	if dist := floats.Distance(closed, descended, 2); dist > 1e-6 {
		t.Errorf("solver distance = %v, want < 1e-6 (closed %v, gd %v)", dist, closed, descended)
	}
}

func TestRidgeGDValidation(t *testing.T) {
	x, y := exactData()

	if _, err := RidgeGD(context.Background(), x, y, 1, 0, 10); err == nil {
		t.Error("RidgeGD() accepted zero learning rate")
	}
	if _, err := RidgeGD(context.Background(), x, y, 1, 0.1, 0); err == nil {
		t.Error("RidgeGD() accepted zero iterations")
	}
}

func TestRidgeGDCancellation(t *testing.T) {
	x, y := exactData()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := RidgeGD(ctx, x, y, 1, 0.1, 1000); err != context.Canceled {
		t.Errorf("RidgeGD() error = %v, want context.Canceled", err)
	}
}

func TestPredict(t *testing.T) {
	x := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	pred := Predict(x, []float64{1, -1})

	want := []float64{-1, -1}
	for i := range want {
		if math.Abs(pred[i]-want[i]) > 1e-12 {
			t.Errorf("Predict()[%d] = %v, want %v", i, pred[i], want[i])
		}
	}
}
