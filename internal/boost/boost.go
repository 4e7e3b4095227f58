// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package boost

import (
	"context"
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/pdiddy/slicebench/pkg/types"
)

// Model is a fitted gradient-boosted ensemble: an initial mean plus
// shrinkage-weighted tree outputs.
type Model struct {
	Base      float64
	Shrinkage float64
	Trees     []*Tree
}

// Fit boosts cfg.Rounds regression trees against the residuals of the
// running prediction. Training progress is written to w every ten
// rounds. Cancellation is checked between rounds.
func Fit(ctx context.Context, x *mat.Dense, y []float64, cfg types.BoostConfig, w io.Writer) (*Model, error) {
	n, _ := x.Dims()
	if n != len(y) {
		return nil, fmt.Errorf("feature/target row mismatch: %d vs %d", n, len(y))
	}
	if cfg.Rounds <= 0 {
		return nil, fmt.Errorf("round count %d must be positive", cfg.Rounds)
	}
	if cfg.Shrinkage <= 0 || cfg.Shrinkage > 1 {
		return nil, fmt.Errorf("shrinkage %v out of range (0, 1]", cfg.Shrinkage)
	}

	model := &Model{
		Base:      stat.Mean(y, nil),
		Shrinkage: cfg.Shrinkage,
	}

	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}

	pred := make([]float64, n)
	for i := range pred {
		pred[i] = model.Base
	}
	residual := make([]float64, n)

	for round := 1; round <= cfg.Rounds; round++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		var sse float64
		for i := range residual {
			residual[i] = y[i] - pred[i]
			sse += residual[i] * residual[i]
		}

		tree := fitTree(x, residual, rows, cfg)
		model.Trees = append(model.Trees, tree)

		for i := range pred {
			pred[i] += cfg.Shrinkage * tree.PredictRow(x.RawRowView(i))
		}

		if round%10 == 0 || round == cfg.Rounds {
			fmt.Fprintf(w, "round %3d/%d: train rmse %.4f\n", round, cfg.Rounds, math.Sqrt(sse/float64(n)))
		}
	}

	return model, nil
}

// Predict returns the ensemble output for each row of x.
func (m *Model) Predict(x *mat.Dense) []float64 {
	n, _ := x.Dims()
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		row := x.RawRowView(i)
		v := m.Base
		for _, tree := range m.Trees {
			v += m.Shrinkage * tree.PredictRow(row)
		}
		out[i] = v
	}
	return out
}
