package returns

import "math"

const (
	irrSeed          = 0.10
	irrTolerance     = 1e-7
	irrDerivStep     = 1e-7
	irrMaxIterations = 1000

	// Bisection fallback bracket: -99% to +1000% annual.
	bisectLow  = -0.99
	bisectHigh = 10.0
	bisectMax  = 200
)

// IRRResult carries the solved rate and how it was obtained. Callers should
// treat RatePercent as a best estimate whenever Converged is false.
type IRRResult struct {
	RatePercent float64 `json:"rate_percent"`
	Converged   bool    `json:"converged"`
	Iterations  int     `json:"iterations"`
	Method      string  `json:"method"` // "newton", "bisection" or "none"
}

// NPV discounts a cash-flow stream at the given rate. flows[0] is the
// time-zero flow and is not discounted.
func NPV(flows []float64, rate float64) float64 {
	total := 0.0
	for t, flow := range flows {
		total += flow / math.Pow(1+rate, float64(t))
	}
	return total
}

// SolveIRR finds the rate where NPV(flows) = 0.
//
// Strategy, deterministic by construction:
//  1. If the stream has no sign change, no real root exists; return the zero
//     sentinel with Converged=false.
//  2. Newton's method with a central-difference derivative, seeded at 10%.
//  3. If Newton fails to converge (or walks past the -100% pole), bounded
//     bisection over [-0.99, 10.0]. If even the bracket has no sign change,
//     return Newton's last estimate flagged as unconverged.
func SolveIRR(flows []float64) IRRResult {
	if len(flows) < 2 || !hasSignChange(flows) {
		return IRRResult{RatePercent: 0, Converged: false, Method: "none"}
	}

	rate := irrSeed
	for i := 0; i < irrMaxIterations; i++ {
		npv := NPV(flows, rate)
		if math.Abs(npv) < irrTolerance {
			return IRRResult{RatePercent: rate * 100, Converged: true, Iterations: i, Method: "newton"}
		}

		deriv := (NPV(flows, rate+irrDerivStep) - NPV(flows, rate-irrDerivStep)) / (2 * irrDerivStep)
		if math.Abs(deriv) < 1e-12 {
			// Flat curve: Newton cannot make progress from here.
			break
		}

		next := rate - npv/deriv
		if next <= -1 || math.IsNaN(next) || math.IsInf(next, 0) {
			// Stepped past the discounting pole; hand off to bisection.
			break
		}
		if math.Abs(next-rate) < irrTolerance {
			return IRRResult{RatePercent: next * 100, Converged: true, Iterations: i + 1, Method: "newton"}
		}
		rate = next
	}

	if res, ok := bisect(flows); ok {
		return res
	}
	return IRRResult{RatePercent: rate * 100, Converged: false, Iterations: irrMaxIterations, Method: "newton"}
}

// bisect runs a bounded bisection search over the fallback bracket.
func bisect(flows []float64) (IRRResult, bool) {
	lo, hi := bisectLow, bisectHigh
	fLo, fHi := NPV(flows, lo), NPV(flows, hi)
	if fLo*fHi > 0 {
		return IRRResult{}, false
	}

	for i := 0; i < bisectMax; i++ {
		mid := (lo + hi) / 2
		fMid := NPV(flows, mid)
		if math.Abs(fMid) < irrTolerance || (hi-lo)/2 < irrTolerance {
			return IRRResult{RatePercent: mid * 100, Converged: true, Iterations: i, Method: "bisection"}, true
		}
		if fLo*fMid < 0 {
			hi = mid
		} else {
			lo, fLo = mid, fMid
		}
	}

	mid := (lo + hi) / 2
	return IRRResult{RatePercent: mid * 100, Converged: false, Iterations: bisectMax, Method: "bisection"}, true
}

func hasSignChange(flows []float64) bool {
	sign := 0
	for _, f := range flows {
		if f == 0 {
			continue
		}
		cur := 1
		if f < 0 {
			cur = -1
		}
		if sign != 0 && cur != sign {
			return true
		}
		sign = cur
	}
	return false
}
