package proforma

import (
	"math"

	"dealscope/pkg/core/finance"
	"dealscope/pkg/core/mortgage"
)

// BuildSeries iterates the period calculator across the projection horizon,
// applying compounding growth, and returns one YearlyProjection per year.
//
// Growth conventions:
//   - Property value and rent compound from year 1 with exponent (year-1),
//     so year 1 equals the purchase price and base rent exactly.
//   - Tax and insurance recompute from the current property value (they track
//     appreciation); dollar overrides and the maintenance/prep-fee bases are
//     inflated by the general inflation rate instead.
//   - Appreciation for year 1 is reported as 0: the series measures gains
//     over the hold, not the purchase itself.
func BuildSeries(in *PropertyInputs, loan *mortgage.Loan) ([]YearlyProjection, error) {
	years := in.Growth.ProjectionYears
	if years <= 0 {
		return nil, finance.Invalidf("growth.projection_years", "must be at least 1, got %d", years)
	}

	baseAnnualRent := in.GrossMonthlyRent() * 12
	appreciation := 1 + in.Growth.AppreciationPercent/100
	rentGrowth := 1 + in.Growth.RentGrowthPercent/100
	inflation := 1 + in.Growth.InflationPercent/100
	debtService := loan.AnnualDebtService()

	series := make([]YearlyProjection, 0, years)
	prevValue := in.PurchasePrice

	for year := 1; year <= years; year++ {
		compound := float64(year - 1)
		value := in.PurchasePrice * math.Pow(appreciation, compound)
		grossRent := baseAnnualRent * math.Pow(rentGrowth, compound)
		inflate := math.Pow(inflation, compound)

		bases := PeriodBases{
			GrossRent:         grossRent,
			PropertyValue:     value,
			PropertyTaxAnnual: in.PropertyTaxAnnual * inflate,
			InsuranceAnnual:   in.InsuranceAnnual * inflate,
			MaintenanceAnnual: in.MaintenanceAnnual * inflate,
		}
		if in.Turnover != nil {
			bases.TurnoverPrepFee = in.Turnover.PrepFee * inflate
		}

		period := ComputePeriod(in, bases)

		capital := 0.0
		if year == 1 {
			capital = in.CapitalImprovements
		}

		balance := loan.BalanceAfter(year * 12)

		yearGain := 0.0
		if year > 1 {
			yearGain = value - prevValue
		}

		cashFlow := period.NOI - debtService - capital

		series = append(series, YearlyProjection{
			Year:                 year,
			PropertyValue:        value,
			GrossRent:            period.GrossRent,
			EffectiveGrossIncome: period.EffectiveGrossIncome,
			Expenses: ExpenseBreakdown{
				PropertyTax:         period.PropertyTax,
				Insurance:           period.Insurance,
				Maintenance:         period.Maintenance,
				Management:          period.Management,
				VacancyLoss:         period.VacancyLoss,
				Turnover:            period.Turnover,
				CapitalImprovements: capital,
			},
			OperatingExpenses: period.OperatingExpenses,
			NOI:               period.NOI,
			DebtService:       debtService,
			CashFlow:          cashFlow,
			MortgageBalance:   balance,
			Equity:            value - balance,
			Appreciation:      yearGain,
			TotalReturn:       cashFlow + yearGain,
		})

		prevValue = value
	}

	return series, nil
}
