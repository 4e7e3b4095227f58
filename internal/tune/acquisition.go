// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tune

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/pdiddy/slicebench/pkg/types"
)

// AcqParams carries the tunable constants of the acquisition rules.
type AcqParams struct {
	// Best is the lowest objective value observed so far.
	Best float64

	// Xi is the minimum-improvement margin for PI and EI.
	Xi float64

	// Beta is the exploration weight for LCB.
	Beta float64
}

// Acquisition scores a surrogate prediction; the candidate with the
// highest score is evaluated next. The objective is minimized.
type Acquisition func(mean, variance float64, p AcqParams) float64

// ProbabilityOfImprovement returns the probability, under the surrogate
// posterior, that the candidate beats the best observation by at least
// Xi. With zero variance it degenerates to a 0/1 indicator.
func ProbabilityOfImprovement(mean, variance float64, p AcqParams) float64 {
	sigma := math.Sqrt(variance)
	if sigma == 0 {
		if mean < p.Best-p.Xi {
			return 1
		}
		return 0
	}
	return distuv.UnitNormal.CDF((p.Best - p.Xi - mean) / sigma)
}

// ExpectedImprovement weighs the probability of improvement by its
// expected magnitude.
func ExpectedImprovement(mean, variance float64, p AcqParams) float64 {
	sigma := math.Sqrt(variance)
	improvement := p.Best - p.Xi - mean
	if sigma == 0 {
		return math.Max(improvement, 0)
	}

	z := improvement / sigma
	return improvement*distuv.UnitNormal.CDF(z) + sigma*distuv.UnitNormal.Prob(z)
}

// LowerConfidenceBound favors candidates whose optimistic estimate
// (mean − Beta·sigma) is lowest. Returned negated so that, like the
// other rules, higher scores are better.
func LowerConfidenceBound(mean, variance float64, p AcqParams) float64 {
	return -(mean - p.Beta*math.Sqrt(variance))
}

// ForKind maps a configured acquisition name to its implementation.
func ForKind(kind types.AcquisitionKind) (Acquisition, error) {
	switch kind {
	case types.AcquisitionPI, "":
		return ProbabilityOfImprovement, nil
	case types.AcquisitionEI:
		return ExpectedImprovement, nil
	case types.AcquisitionLCB:
		return LowerConfidenceBound, nil
	default:
		return nil, fmt.Errorf("unknown acquisition rule %q: use pi, ei, or lcb", kind)
	}
}
