// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package boost implements gradient-boosted regression trees: shallow
// variance-reduction trees fitted to residuals, combined with shrinkage.
package boost

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/pdiddy/slicebench/pkg/types"
)

// node is one split or leaf of a regression tree.
type node struct {
	feature   int
	threshold float64
	left      *node
	right     *node
	value     float64
	leaf      bool
}

// Tree is a depth-limited regression tree.
type Tree struct {
	root *node
}

// PredictRow returns the tree's output for one feature row.
func (t *Tree) PredictRow(row []float64) float64 {
	n := t.root
	for !n.leaf {
		if row[n.feature] <= n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.value
}

// fitTree grows a tree on the given rows of x against target, greedily
// choosing the split with the largest reduction in squared error.
func fitTree(x *mat.Dense, target []float64, rows []int, cfg types.BoostConfig) *Tree {
	return &Tree{root: buildNode(x, target, rows, 0, cfg)}
}

func buildNode(x *mat.Dense, target []float64, rows []int, depth int, cfg types.BoostConfig) *node {
	mean := meanOver(target, rows)

	if depth >= cfg.MaxDepth || len(rows) < 2*cfg.MinLeaf {
		return &node{leaf: true, value: mean}
	}

	feature, threshold, ok := bestSplit(x, target, rows, cfg)
	if !ok {
		return &node{leaf: true, value: mean}
	}

	var left, right []int
	for _, r := range rows {
		if x.At(r, feature) <= threshold {
			left = append(left, r)
		} else {
			right = append(right, r)
		}
	}

	return &node{
		feature:   feature,
		threshold: threshold,
		left:      buildNode(x, target, left, depth+1, cfg),
		right:     buildNode(x, target, right, depth+1, cfg),
	}
}

// bestSplit scans every feature's quantile candidate thresholds and
// returns the split minimizing the summed squared deviation of the two
// sides. ok is false when no split satisfies the leaf-size minimum.
func bestSplit(x *mat.Dense, target []float64, rows []int, cfg types.BoostConfig) (feature int, threshold float64, ok bool) {
	_, d := x.Dims()

	bestSSE := sseOver(target, rows)
	values := make([]float64, len(rows))

	for j := 0; j < d; j++ {
		for i, r := range rows {
			values[i] = x.At(r, j)
		}
		for _, t := range candidates(values, cfg.CandidateSplits) {
			sse, valid := splitSSE(x, target, rows, j, t, cfg.MinLeaf)
			if valid && sse < bestSSE {
				bestSSE = sse
				feature = j
				threshold = t
				ok = true
			}
		}
	}
	return feature, threshold, ok
}

// candidates returns up to k distinct quantile thresholds of values.
func candidates(values []float64, k int) []float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	var out []float64
	for i := 1; i <= k; i++ {
		idx := i * (len(sorted) - 1) / (k + 1)
		t := sorted[idx]
		if len(out) == 0 || t != out[len(out)-1] {
			out = append(out, t)
		}
	}
	return out
}

// splitSSE computes the post-split squared error for one candidate, or
// valid=false if either side is below the leaf minimum.
func splitSSE(x *mat.Dense, target []float64, rows []int, feature int, threshold float64, minLeaf int) (sse float64, valid bool) {
	var nL, nR int
	var sumL, sumR, sqL, sqR float64
	for _, r := range rows {
		v := target[r]
		if x.At(r, feature) <= threshold {
			nL++
			sumL += v
			sqL += v * v
		} else {
			nR++
			sumR += v
			sqR += v * v
		}
	}
	if nL < minLeaf || nR < minLeaf {
		return 0, false
	}

	// Σ(v−mean)² = Σv² − (Σv)²/n for each side.
	sse = sqL - sumL*sumL/float64(nL) + sqR - sumR*sumR/float64(nR)
	return sse, true
}

func meanOver(target []float64, rows []int) float64 {
	var sum float64
	for _, r := range rows {
		sum += target[r]
	}
	return sum / float64(len(rows))
}

func sseOver(target []float64, rows []int) float64 {
	mean := meanOver(target, rows)
	var sse float64
	for _, r := range rows {
		d := target[r] - mean
		sse += d * d
	}
	return sse
}
