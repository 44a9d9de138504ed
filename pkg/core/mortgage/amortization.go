// Package mortgage implements fixed-rate loan amortization: the closed-form
// annuity payment and the outstanding balance after any number of payments.
package mortgage

import (
	"math"

	"dealscope/pkg/core/finance"
)

// Loan is the derived financing state for a fixed-rate mortgage.
// It is computed once per analysis and never mutated.
type Loan struct {
	Principal         float64 `json:"principal"`
	AnnualRatePercent float64 `json:"annual_rate_percent"`
	TermYears         int     `json:"term_years"`
	MonthlyPayment    float64 `json:"monthly_payment"`
}

// Compute derives the fixed monthly payment for a loan.
// Payment = P*r*(1+r)^N / ((1+r)^N - 1), with r the monthly rate and N the
// number of payments. A zero rate degenerates to straight-line P/N.
func Compute(loanAmount, annualRatePercent float64, termYears int) (*Loan, error) {
	if loanAmount < 0 {
		return nil, finance.Invalidf("loanAmount", "must be non-negative, got %.2f", loanAmount)
	}
	if termYears <= 0 {
		return nil, finance.Invalidf("termYears", "must be positive, got %d", termYears)
	}
	if annualRatePercent < 0 {
		return nil, finance.Invalidf("annualRatePercent", "must be non-negative, got %.4f", annualRatePercent)
	}

	loan := &Loan{
		Principal:         loanAmount,
		AnnualRatePercent: annualRatePercent,
		TermYears:         termYears,
	}

	n := float64(termYears * 12)
	r := annualRatePercent / 100 / 12

	if r == 0 {
		// Interest-free edge case: the annuity formula divides by zero here.
		loan.MonthlyPayment = loanAmount / n
		return loan, nil
	}

	growth := math.Pow(1+r, n)
	loan.MonthlyPayment = loanAmount * r * growth / (growth - 1)
	return loan, nil
}

// BalanceAfter returns the outstanding principal after n monthly payments,
// using the future-value-of-annuity closed form:
//
//	B(n) = P*(1+r)^n - payment*((1+r)^n - 1)/r
//
// The result is clamped at zero so floating-point overshoot past the final
// payment never reports a negative balance.
func (l *Loan) BalanceAfter(n int) float64 {
	if n <= 0 {
		return l.Principal
	}
	if n >= l.TermYears*12 {
		return 0
	}

	r := l.AnnualRatePercent / 100 / 12
	if r == 0 {
		return math.Max(0, l.Principal-l.MonthlyPayment*float64(n))
	}

	growth := math.Pow(1+r, float64(n))
	balance := l.Principal*growth - l.MonthlyPayment*(growth-1)/r
	return math.Max(0, balance)
}

// AnnualDebtService is the constant yearly payment total for the loan.
func (l *Loan) AnnualDebtService() float64 {
	return l.MonthlyPayment * 12
}
