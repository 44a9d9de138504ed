package mortgage

import (
	"math"
	"testing"

	"dealscope/pkg/core/finance"
)

func TestComputeMonthlyPayment(t *testing.T) {
	// $240,000 at 6% over 30 years. Standard annuity tables give $1,438.92.
	loan, err := Compute(240000, 6.0, 30)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if math.Abs(loan.MonthlyPayment-1438.92) > 0.01 {
		t.Errorf("Expected payment ~1438.92, got %.4f", loan.MonthlyPayment)
	}
	if math.Abs(loan.AnnualDebtService()-loan.MonthlyPayment*12) > 1e-9 {
		t.Errorf("Annual debt service should be 12x monthly payment")
	}
}

func TestZeroRateStraightLine(t *testing.T) {
	loan, err := Compute(120000, 0, 10)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	// 120 payments, no interest: exactly 1000/month.
	if loan.MonthlyPayment != 120000.0/120.0 {
		t.Errorf("Expected exact straight-line payment 1000, got %f", loan.MonthlyPayment)
	}

	// Balance declines linearly and hits zero at term.
	if got := loan.BalanceAfter(60); math.Abs(got-60000) > 1e-6 {
		t.Errorf("Expected balance 60000 at midpoint, got %f", got)
	}
	if got := loan.BalanceAfter(120); got != 0 {
		t.Errorf("Expected zero balance at term, got %f", got)
	}
}

func TestBalanceInvariants(t *testing.T) {
	loan, err := Compute(240000, 6.0, 30)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if got := loan.BalanceAfter(0); got != loan.Principal {
		t.Errorf("Balance before any payment should equal principal, got %f", got)
	}

	// Non-increasing over the full schedule, zero at maturity.
	prev := loan.Principal
	for n := 1; n <= 360; n++ {
		cur := loan.BalanceAfter(n)
		if cur < 0 {
			t.Fatalf("Negative balance %f after %d payments", cur, n)
		}
		if cur > prev+1e-6 {
			t.Fatalf("Balance increased from %f to %f at payment %d", prev, cur, n)
		}
		prev = cur
	}
	if got := loan.BalanceAfter(360); math.Abs(got) > 1e-6 {
		t.Errorf("Expected zero balance at term*12, got %f", got)
	}

	// Past-maturity queries stay at zero.
	if got := loan.BalanceAfter(400); got != 0 {
		t.Errorf("Expected zero balance past maturity, got %f", got)
	}
}

func TestComputeRejectsBadInputs(t *testing.T) {
	cases := []struct {
		name   string
		amount float64
		rate   float64
		term   int
	}{
		{"negative amount", -1, 6, 30},
		{"zero term", 100000, 6, 0},
		{"negative term", 100000, 6, -5},
		{"negative rate", 100000, -0.5, 30},
	}

	for _, tc := range cases {
		_, err := Compute(tc.amount, tc.rate, tc.term)
		if err == nil {
			t.Errorf("%s: expected error, got nil", tc.name)
			continue
		}
		if !finance.IsInvalidInput(err) {
			t.Errorf("%s: expected InvalidInputError, got %v", tc.name, err)
		}
	}
}

func TestAllCashLoan(t *testing.T) {
	// Zero principal is valid (all-cash purchase): payment and balances are 0.
	loan, err := Compute(0, 6.0, 30)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if loan.MonthlyPayment != 0 {
		t.Errorf("Expected zero payment, got %f", loan.MonthlyPayment)
	}
	if loan.BalanceAfter(120) != 0 {
		t.Errorf("Expected zero balance, got %f", loan.BalanceAfter(120))
	}
}
