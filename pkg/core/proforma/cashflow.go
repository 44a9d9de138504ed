package proforma

import "math"

// Annualized turnover probability is capped so very short tenancies cannot
// produce more than 0.9 expected turnovers per year.
const maxTurnoverProbability = 0.9

// PeriodBases carries the already-grown dollar bases for one projection year.
// The series builder owns growth/inflation; this calculator is a pure
// snapshot of a single period.
type PeriodBases struct {
	GrossRent          float64 // annual scheduled rent, growth-adjusted
	PropertyValue      float64 // appreciated value for the year
	PropertyTaxAnnual  float64 // inflated dollar override, 0 when rate-based
	InsuranceAnnual    float64 // inflated dollar override, 0 when rate-based
	MaintenanceAnnual  float64 // inflated dollar override, 0 to use the default reserve
	TurnoverPrepFee    float64 // inflated per-turnover prep fee
}

// PeriodCashFlow is one period's income and expense snapshot.
type PeriodCashFlow struct {
	GrossRent            float64
	EffectiveGrossIncome float64
	PropertyTax          float64
	Insurance            float64
	Maintenance          float64
	Management           float64
	VacancyLoss          float64
	Turnover             float64
	OperatingExpenses    float64
	NOI                  float64
}

// ComputePeriod derives income, the expense breakdown and NOI for one period.
//
// Vacancy is subtracted exactly once, via effective gross income. It still
// appears as the VacancyLoss line item, but adding it to OperatingExpenses
// as well would double-count it against NOI.
func ComputePeriod(in *PropertyInputs, b PeriodBases) PeriodCashFlow {
	vacancyRate := in.Growth.VacancyPercent / 100

	cf := PeriodCashFlow{
		GrossRent:            b.GrossRent,
		VacancyLoss:          b.GrossRent * vacancyRate,
		EffectiveGrossIncome: b.GrossRent * (1 - vacancyRate),
	}

	// Tax and insurance track property value unless a dollar figure was given.
	if b.PropertyTaxAnnual > 0 {
		cf.PropertyTax = b.PropertyTaxAnnual
	} else {
		cf.PropertyTax = b.PropertyValue * in.PropertyTaxRatePercent / 100
	}
	if b.InsuranceAnnual > 0 {
		cf.Insurance = b.InsuranceAnnual
	} else {
		cf.Insurance = b.PropertyValue * in.InsuranceRatePercent / 100
	}

	// Maintenance defaults to a reserve proportional to rent.
	if b.MaintenanceAnnual > 0 {
		cf.Maintenance = b.MaintenanceAnnual
	} else {
		cf.Maintenance = b.GrossRent * defaultMaintenancePercent / 100
	}

	// Management is a percentage of scheduled rent.
	cf.Management = b.GrossRent * in.ManagementFeePercent / 100

	cf.Turnover = turnoverCost(in, b)

	cf.OperatingExpenses = cf.PropertyTax + cf.Insurance + cf.Maintenance + cf.Management + cf.Turnover
	cf.NOI = cf.EffectiveGrossIncome - cf.OperatingExpenses
	return cf
}

// turnoverCost estimates the annualized expected cost of tenant churn for a
// single-family rental. The probability term normalizes the vacancy rate
// against a 5% baseline: higher vacancy markets see more churn.
func turnoverCost(in *PropertyInputs, b PeriodBases) float64 {
	if in.Turnover == nil || in.MultiFamily() {
		return 0
	}
	t := in.Turnover
	if t.AverageTenancyYears <= 0 {
		return 0
	}

	probability := math.Min(maxTurnoverProbability,
		(1/t.AverageTenancyYears)*(in.Growth.VacancyPercent/5))

	oneMonthRent := b.GrossRent / 12
	perTurnover := b.TurnoverPrepFee + oneMonthRent*t.CommissionMonths
	return perTurnover * probability
}
