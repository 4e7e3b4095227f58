// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package metrics

import (
	"math"
	"testing"
)

func TestRMSE(t *testing.T) {
	tests := []struct {
		name    string
		pred    []float64
		y       []float64
		want    float64
		wantErr bool
	}{
		{"perfect", []float64{1, 2, 3}, []float64{1, 2, 3}, 0, false},
		{"constant offset", []float64{2, 3, 4}, []float64{1, 2, 3}, 1, false},
		{"mixed", []float64{0, 0}, []float64{3, -4}, math.Sqrt(12.5), false},
		{"length mismatch", []float64{1}, []float64{1, 2}, 0, true},
		{"empty", nil, nil, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RMSE(tt.pred, tt.y)
			if (err != nil) != tt.wantErr {
				t.Fatalf("RMSE() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("RMSE() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAccuracy(t *testing.T) {
	tests := []struct {
		name    string
		prob    []float64
		labels  []float64
		want    float64
		wantErr bool
	}{
		{"all correct", []float64{0.9, 0.1, 0.8}, []float64{1, 0, 1}, 1, false},
		{"half correct", []float64{0.9, 0.9}, []float64{1, 0}, 0.5, false},
		{"boundary rounds up", []float64{0.5}, []float64{1}, 1, false},
		{"length mismatch", []float64{0.5}, []float64{1, 0}, 0, true},
		{"empty", nil, nil, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Accuracy(tt.prob, tt.labels)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Accuracy() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("Accuracy() = %v, want %v", got, tt.want)
			}
		})
	}
}
