// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics provides the evaluation measures shared by all stages.
package metrics

import (
	"fmt"
	"math"
)

// RMSE returns the root-mean-square error between predictions and targets.
func RMSE(pred, y []float64) (float64, error) {
	if len(pred) != len(y) {
		return 0, fmt.Errorf("prediction/target length mismatch: %d vs %d", len(pred), len(y))
	}
	if len(y) == 0 {
		return 0, fmt.Errorf("empty prediction slice")
	}

	var sum float64
	for i := range y {
		d := pred[i] - y[i]
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(y))), nil
}

// Accuracy returns the share of probabilities that round to the correct
// binary label. Labels must be 0 or 1.
func Accuracy(prob, labels []float64) (float64, error) {
	if len(prob) != len(labels) {
		return 0, fmt.Errorf("probability/label length mismatch: %d vs %d", len(prob), len(labels))
	}
	if len(labels) == 0 {
		return 0, fmt.Errorf("empty label slice")
	}

	correct := 0
	for i := range labels {
		predicted := 0.0
		if prob[i] >= 0.5 {
			predicted = 1.0
		}
		if predicted == labels[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(labels)), nil
}
