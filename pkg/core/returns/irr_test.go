package returns

import (
	"math"
	"testing"
)

func TestIRRRoundTrip(t *testing.T) {
	// Flat 11% coupon on 100k for 10 years with full principal back at the
	// end: the analytic IRR is exactly 11%.
	flows := make([]float64, 11)
	flows[0] = -100000
	for i := 1; i <= 10; i++ {
		flows[i] = 11000
	}
	flows[10] += 100000

	res := SolveIRR(flows)
	if !res.Converged {
		t.Fatalf("Expected convergence, got %+v", res)
	}
	if math.Abs(res.RatePercent-11.0) > 0.01 {
		t.Errorf("Expected IRR ~11%%, got %f", res.RatePercent)
	}
}

func TestIRRSimpleTwoFlow(t *testing.T) {
	// -100 now, 150 in one year: exactly 50%.
	res := SolveIRR([]float64{-100, 150})
	if !res.Converged {
		t.Fatalf("Expected convergence, got %+v", res)
	}
	if math.Abs(res.RatePercent-50.0) > 0.001 {
		t.Errorf("Expected 50%%, got %f", res.RatePercent)
	}
}

func TestIRRNegativeRate(t *testing.T) {
	// Losing deal: -100 now, 90 back. IRR = -10%.
	res := SolveIRR([]float64{-100, 90})
	if !res.Converged {
		t.Fatalf("Expected convergence, got %+v", res)
	}
	if math.Abs(res.RatePercent-(-10.0)) > 0.001 {
		t.Errorf("Expected -10%%, got %f", res.RatePercent)
	}
}

func TestIRRDegenerateFlows(t *testing.T) {
	// All-zero follow-on flows: no root exists. Must not spin and must
	// return the documented zero sentinel with the flag cleared.
	flows := make([]float64, 11)
	flows[0] = -100000

	res := SolveIRR(flows)
	if res.Converged {
		t.Errorf("Degenerate stream should not report convergence: %+v", res)
	}
	if res.RatePercent != 0 {
		t.Errorf("Expected zero sentinel, got %f", res.RatePercent)
	}

	// Same-sign streams have no root either.
	res = SolveIRR([]float64{100, 50, 25})
	if res.Converged || res.RatePercent != 0 {
		t.Errorf("Same-sign stream should return sentinel, got %+v", res)
	}
}

func TestIRRDeterministic(t *testing.T) {
	flows := []float64{-50000, 4000, 4500, 5000, 5500, 70000}
	a := SolveIRR(flows)
	b := SolveIRR(flows)
	if a != b {
		t.Errorf("Solver not deterministic: %+v vs %+v", a, b)
	}
	if !a.Converged {
		t.Errorf("Expected convergence for well-behaved stream, got %+v", a)
	}
	// Sanity: solved rate actually zeroes the NPV.
	if npv := NPV(flows, a.RatePercent/100); math.Abs(npv) > 0.01 {
		t.Errorf("NPV at solved rate should be ~0, got %f", npv)
	}
}

func TestNPVAtZeroRate(t *testing.T) {
	flows := []float64{-100, 40, 40, 40}
	if got := NPV(flows, 0); math.Abs(got-20) > 1e-9 {
		t.Errorf("NPV at 0%% should be the plain sum, got %f", got)
	}
}
