// Package risk evaluates the probability that a station's accumulated
// stochastic workload overruns the line's cycle time. Station work is the sum
// of independent normally distributed task times, so the total is normal with
// the summed mean and variance; everything here is closed-form evaluation of
// that distribution, never sampling, so results are deterministic.
package risk

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// InvalidParameterError reports a parameter outside its valid domain.
type InvalidParameterError struct {
	Param string
	Value float64
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s = %v", e.Param, e.Value)
}

// Overrun returns the probability that a station with accumulated mean and
// variance exceeds the cycle time: 1 - Phi((Tc - M) / sqrt(S2)).
//
// variance = 0 is the degenerate deterministic limit: 0 if mean <= cycleTime,
// 1 otherwise. It fails with InvalidParameterError for variance < 0 or
// cycleTime <= 0.
func Overrun(mean, variance, cycleTime float64) (float64, error) {
	if variance < 0 {
		return 0, &InvalidParameterError{Param: "variance", Value: variance}
	}
	if cycleTime <= 0 {
		return 0, &InvalidParameterError{Param: "cycle time", Value: cycleTime}
	}
	if variance == 0 {
		if mean <= cycleTime {
			return 0, nil
		}
		return 1, nil
	}
	return stdNormal.Survival(ZScore(mean, variance, cycleTime)), nil
}

// ZScore returns the normalized slack (Tc - M) / sqrt(S2). For zero variance
// it degenerates to +Inf (mean within the cycle time) or -Inf (beyond it).
func ZScore(mean, variance, cycleTime float64) float64 {
	if variance == 0 {
		if mean <= cycleTime {
			return math.Inf(1)
		}
		return math.Inf(-1)
	}
	return (cycleTime - mean) / math.Sqrt(variance)
}

// ZLimit returns the z value at which the Kottas-Lau inequality is tight:
// inline = Overrun * outline, i.e. Phi^-1(1 - inline/outline). A station z
// above the limit makes the task desirable. The cost ratio is clamped to
// [0, 1]: a task whose in-line cost already exceeds its out-of-line
// completion cost is desirable at any z (-Inf limit).
func ZLimit(inline, outline float64) float64 {
	if outline <= 0 || inline >= outline {
		return math.Inf(-1)
	}
	if inline <= 0 {
		return math.Inf(1)
	}
	return stdNormal.Quantile(1 - inline/outline)
}
