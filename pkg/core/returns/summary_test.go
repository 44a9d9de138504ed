package returns

import (
	"math"
	"testing"

	"dealscope/pkg/core/proforma"
)

func flatSeries(years int, cashFlow, noi, debtService, value float64) []proforma.YearlyProjection {
	series := make([]proforma.YearlyProjection, years)
	for i := range series {
		series[i] = proforma.YearlyProjection{
			Year:            i + 1,
			PropertyValue:   value,
			NOI:             noi,
			DebtService:     debtService,
			CashFlow:        cashFlow,
			MortgageBalance: 0,
		}
	}
	return series
}

func TestAnalyzeExit(t *testing.T) {
	series := flatSeries(5, 5000, 12000, 7000, 400000)
	series[4].MortgageBalance = 210000

	exit := AnalyzeExit(series, 6)
	if exit.SalePrice != 400000 {
		t.Errorf("Expected sale price 400000, got %f", exit.SalePrice)
	}
	if math.Abs(exit.SellingCosts-24000) > 1e-9 {
		t.Errorf("Expected selling costs 24000, got %f", exit.SellingCosts)
	}
	if exit.MortgagePayoff != 210000 {
		t.Errorf("Expected payoff 210000, got %f", exit.MortgagePayoff)
	}
	want := 400000.0 - 24000.0 - 210000.0
	if math.Abs(exit.NetProceedsFromSale-want) > 1e-9 {
		t.Errorf("Expected net proceeds %f, got %f", want, exit.NetProceedsFromSale)
	}
}

func TestAnalyzeExitPanicsOnEmptySeries(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for empty series")
		}
	}()
	AnalyzeExit(nil, 6)
}

func TestSummarizeMetrics(t *testing.T) {
	// 10 flat years of 11,000 on 100,000 invested, with terminal proceeds
	// equal to the investment: IRR is the 11% round-trip case.
	series := flatSeries(10, 11000, 18000, 7000, 250000)
	exit := ExitAnalysis{SalePrice: 250000, SellingCosts: 0, MortgagePayoff: 150000, NetProceedsFromSale: 100000}

	sum := Summarize(100000, series, exit)

	if math.Abs(sum.TotalCashFlow-110000) > 1e-9 {
		t.Errorf("Expected total cash flow 110000, got %f", sum.TotalCashFlow)
	}
	if math.Abs(sum.TotalReturn-(110000+100000-100000)) > 1e-9 {
		t.Errorf("Expected total return 110000, got %f", sum.TotalReturn)
	}
	if !sum.IRRConverged || math.Abs(sum.IRRPercent-11.0) > 0.01 {
		t.Errorf("Expected IRR ~11%%, got %f (converged=%v)", sum.IRRPercent, sum.IRRConverged)
	}
	// Cap rate = 18000 / 250000 (year-1 value doubles as purchase price).
	if math.Abs(sum.CapRatePercent-7.2) > 1e-9 {
		t.Errorf("Expected cap rate 7.2%%, got %f", sum.CapRatePercent)
	}
	if math.Abs(sum.CashOnCashPercent-11.0) > 1e-9 {
		t.Errorf("Expected cash-on-cash 11%%, got %f", sum.CashOnCashPercent)
	}
	if math.Abs(sum.DSCR-18000.0/7000.0) > 1e-9 {
		t.Errorf("Expected DSCR %f, got %f", 18000.0/7000.0, sum.DSCR)
	}
	// Equity multiple = (100000 + 110000) / 100000 = 2.1x
	if math.Abs(sum.EquityMultiple-2.1) > 1e-9 {
		t.Errorf("Expected equity multiple 2.1, got %f", sum.EquityMultiple)
	}
}

func TestSummarizeGuardsZeroDenominators(t *testing.T) {
	series := flatSeries(3, 0, 0, 0, 0)
	exit := ExitAnalysis{}

	sum := Summarize(0, series, exit)
	checks := map[string]float64{
		"cap rate":        sum.CapRatePercent,
		"cash-on-cash":    sum.CashOnCashPercent,
		"dscr":            sum.DSCR,
		"equity multiple": sum.EquityMultiple,
		"irr":             sum.IRRPercent,
	}
	for name, v := range checks {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("%s should be guarded, got %f", name, v)
		}
		if v != 0 {
			t.Errorf("%s should be 0 for degenerate inputs, got %f", name, v)
		}
	}
}
