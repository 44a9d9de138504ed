package returns

import (
	"dealscope/pkg/core/proforma"
)

// Summary aggregates the deal's lifetime performance.
type Summary struct {
	TotalCashFlow     float64 `json:"total_cash_flow"`
	TotalAppreciation float64 `json:"total_appreciation"`
	TotalReturn       float64 `json:"total_return"`
	IRRPercent        float64 `json:"irr_percent"`
	IRRConverged      bool    `json:"irr_converged"`
	CapRatePercent    float64 `json:"cap_rate_percent"`
	CashOnCashPercent float64 `json:"cash_on_cash_percent"`
	DSCR              float64 `json:"dscr"`
	EquityMultiple    float64 `json:"equity_multiple"`
}

// Summarize assembles the full cash-flow stream and derives the summary
// metrics. The terminal year's flow is augmented with net sale proceeds
// rather than appended as an extra period.
//
// Every ratio guards its denominator and reports 0 instead of NaN/Inf.
func Summarize(initialInvestment float64, series []proforma.YearlyProjection, exit ExitAnalysis) Summary {
	if len(series) == 0 {
		panic("returns: summary requires a non-empty projection series")
	}

	flows := make([]float64, len(series)+1)
	flows[0] = -initialInvestment

	totalCashFlow := 0.0
	for i, y := range series {
		flows[i+1] = y.CashFlow
		totalCashFlow += y.CashFlow
	}
	flows[len(series)] += exit.NetProceedsFromSale

	irr := SolveIRR(flows)

	first := series[0]
	final := series[len(series)-1]

	// Year 1 carries no appreciation, so its property value IS the
	// purchase price; the cap-rate and appreciation bases come from there.
	purchasePrice := first.PropertyValue

	totalReturn := totalCashFlow + exit.NetProceedsFromSale - initialInvestment

	return Summary{
		TotalCashFlow:     totalCashFlow,
		TotalAppreciation: final.PropertyValue - purchasePrice,
		TotalReturn:       totalReturn,
		IRRPercent:        irr.RatePercent,
		IRRConverged:      irr.Converged,
		CapRatePercent:    safeRatio(first.NOI, purchasePrice) * 100,
		CashOnCashPercent: safeRatio(first.CashFlow, initialInvestment) * 100,
		DSCR:              safeRatio(first.NOI, first.DebtService),
		EquityMultiple:    safeRatio(initialInvestment+totalReturn, initialInvestment),
	}
}

func safeRatio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
