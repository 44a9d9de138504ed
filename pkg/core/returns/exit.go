// Package returns computes the exit analysis and aggregate return metrics
// (IRR, cap rate, cash-on-cash, DSCR, equity multiple) for a projected deal.
package returns

import (
	"dealscope/pkg/core/proforma"
)

// ExitAnalysis models the terminal sale at the end of the hold.
type ExitAnalysis struct {
	SalePrice           float64 `json:"sale_price"`
	SellingCosts        float64 `json:"selling_costs"`
	MortgagePayoff      float64 `json:"mortgage_payoff"`
	NetProceedsFromSale float64 `json:"net_proceeds_from_sale"`
}

// AnalyzeExit derives the sale outcome from the final projection year.
// The sale price is the final year's property value; the payoff is that
// year's remaining mortgage balance.
//
// An empty series is a broken calling sequence inside the core, not a user
// error, so it panics.
func AnalyzeExit(series []proforma.YearlyProjection, sellingCostsPercent float64) ExitAnalysis {
	if len(series) == 0 {
		panic("returns: exit analysis requires a non-empty projection series")
	}

	final := series[len(series)-1]
	salePrice := final.PropertyValue
	sellingCosts := salePrice * sellingCostsPercent / 100

	return ExitAnalysis{
		SalePrice:           salePrice,
		SellingCosts:        sellingCosts,
		MortgagePayoff:      final.MortgageBalance,
		NetProceedsFromSale: salePrice - sellingCosts - final.MortgageBalance,
	}
}
