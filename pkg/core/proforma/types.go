// Package proforma models a rental property purchase and builds its
// multi-year operating projection: income, expense breakdown, NOI and cash
// flow per year, with rent growth, appreciation and expense inflation applied.
package proforma

import (
	"dealscope/pkg/core/finance"
)

// Fallback maintenance reserve when the user supplies no dollar figure,
// expressed as a percent of gross scheduled rent.
const defaultMaintenancePercent = 5.0

// UnitType describes one unit class in a multi-family property.
type UnitType struct {
	Label       string  `json:"label" validate:"required"`
	Count       int     `json:"count" validate:"gt=0"`
	SquareFeet  float64 `json:"square_feet" validate:"gte=0"`
	MonthlyRent float64 `json:"monthly_rent" validate:"gt=0"`
}

// TurnoverAssumptions models expected tenant churn for single-family rentals.
// The annualized cost is (prep fee + one month rent * commission multiplier)
// scaled by the turnover probability for the year.
type TurnoverAssumptions struct {
	AverageTenancyYears float64 `json:"average_tenancy_years" validate:"gt=0"`
	PrepFee             float64 `json:"prep_fee" validate:"gte=0"`
	CommissionMonths    float64 `json:"commission_months" validate:"gte=0"`
}

// GrowthAssumptions drives the multi-year projection.
type GrowthAssumptions struct {
	ProjectionYears     int     `json:"projection_years" validate:"gte=1"`
	RentGrowthPercent   float64 `json:"rent_growth_percent"`
	AppreciationPercent float64 `json:"appreciation_percent"`
	InflationPercent    float64 `json:"inflation_percent"`
	VacancyPercent      float64 `json:"vacancy_percent" validate:"gte=0,lte=100"`
	SellingCostsPercent float64 `json:"selling_costs_percent" validate:"gte=0,lte=100"`
}

// PropertyInputs is the immutable record describing one deal. Every analysis
// value downstream is a pure function of this struct.
//
// Tax, insurance and maintenance each accept either a rate or a dollar
// override; a positive dollar figure wins over the rate.
type PropertyInputs struct {
	PurchasePrice       float64 `json:"purchase_price" validate:"gt=0"`
	DownPayment         float64 `json:"down_payment" validate:"gte=0"`
	InterestRatePercent float64 `json:"interest_rate_percent" validate:"gte=0"`
	LoanTermYears       int     `json:"loan_term_years" validate:"gte=1"`

	// Single-family rent. Ignored when Units is non-empty.
	MonthlyRent float64    `json:"monthly_rent" validate:"gte=0"`
	Units       []UnitType `json:"units,omitempty" validate:"dive"`

	PropertyTaxRatePercent float64 `json:"property_tax_rate_percent" validate:"gte=0"`
	PropertyTaxAnnual      float64 `json:"property_tax_annual" validate:"gte=0"`
	InsuranceRatePercent   float64 `json:"insurance_rate_percent" validate:"gte=0"`
	InsuranceAnnual        float64 `json:"insurance_annual" validate:"gte=0"`
	MaintenanceAnnual      float64 `json:"maintenance_annual" validate:"gte=0"`
	ManagementFeePercent   float64 `json:"management_fee_percent" validate:"gte=0,lte=100"`

	ClosingCosts        float64 `json:"closing_costs" validate:"gte=0"`
	CapitalImprovements float64 `json:"capital_improvements" validate:"gte=0"`

	// Turnover applies to single-family deals only; nil disables the model.
	Turnover *TurnoverAssumptions `json:"turnover,omitempty"`

	Growth GrowthAssumptions `json:"growth"`
}

// MultiFamily reports whether the deal is modeled from a unit mix.
func (p *PropertyInputs) MultiFamily() bool {
	return len(p.Units) > 0
}

// GrossMonthlyRent is the scheduled rent across all units before vacancy.
func (p *PropertyInputs) GrossMonthlyRent() float64 {
	if !p.MultiFamily() {
		return p.MonthlyRent
	}
	total := 0.0
	for _, u := range p.Units {
		total += float64(u.Count) * u.MonthlyRent
	}
	return total
}

// LoanAmount is purchase price minus down payment.
func (p *PropertyInputs) LoanAmount() float64 {
	return p.PurchasePrice - p.DownPayment
}

// TotalInitialInvestment is all cash in at close: down payment, closing
// costs and day-one capital improvements.
func (p *PropertyInputs) TotalInitialInvestment() float64 {
	return p.DownPayment + p.ClosingCosts + p.CapitalImprovements
}

// Validate enforces the numeric domain the projection math assumes. The HTTP
// layer runs struct-tag validation first; this covers the cross-field rules
// tags cannot express.
func (p *PropertyInputs) Validate() error {
	if p.PurchasePrice <= 0 {
		return finance.Invalidf("purchase_price", "must be positive, got %.2f", p.PurchasePrice)
	}
	if p.DownPayment < 0 || p.DownPayment > p.PurchasePrice {
		return finance.Invalidf("down_payment", "must be between 0 and the purchase price, got %.2f", p.DownPayment)
	}
	if p.InterestRatePercent < 0 {
		return finance.Invalidf("interest_rate_percent", "must be non-negative, got %.4f", p.InterestRatePercent)
	}
	if p.LoanTermYears <= 0 {
		return finance.Invalidf("loan_term_years", "must be positive, got %d", p.LoanTermYears)
	}
	if p.GrossMonthlyRent() <= 0 {
		return finance.Invalidf("monthly_rent", "scheduled rent must be positive")
	}
	if p.Growth.ProjectionYears <= 0 {
		return finance.Invalidf("growth.projection_years", "must be at least 1, got %d", p.Growth.ProjectionYears)
	}
	if p.Growth.VacancyPercent < 0 || p.Growth.VacancyPercent > 100 {
		return finance.Invalidf("growth.vacancy_percent", "must be between 0 and 100, got %.2f", p.Growth.VacancyPercent)
	}
	if p.Growth.SellingCostsPercent < 0 || p.Growth.SellingCostsPercent > 100 {
		return finance.Invalidf("growth.selling_costs_percent", "must be between 0 and 100, got %.2f", p.Growth.SellingCostsPercent)
	}
	if p.Turnover != nil {
		if p.MultiFamily() {
			return finance.Invalidf("turnover", "turnover model applies to single-family deals only")
		}
		if p.Turnover.AverageTenancyYears <= 0 {
			return finance.Invalidf("turnover.average_tenancy_years", "must be positive, got %.2f", p.Turnover.AverageTenancyYears)
		}
		if p.Turnover.PrepFee < 0 || p.Turnover.CommissionMonths < 0 {
			return finance.Invalidf("turnover", "prep fee and commission multiplier must be non-negative")
		}
	}
	for i, u := range p.Units {
		if u.Count <= 0 {
			return finance.Invalidf("units", "unit type %d: count must be positive", i)
		}
		if u.MonthlyRent <= 0 {
			return finance.Invalidf("units", "unit type %d: monthly rent must be positive", i)
		}
	}
	return nil
}

// ExpenseBreakdown itemizes one year's operating costs. VacancyLoss is
// reported for transparency but is already netted out of effective gross
// income, so it is NOT part of the operating-expense total that feeds NOI.
type ExpenseBreakdown struct {
	PropertyTax         float64 `json:"property_tax"`
	Insurance           float64 `json:"insurance"`
	Maintenance         float64 `json:"maintenance"`
	Management          float64 `json:"management"`
	VacancyLoss         float64 `json:"vacancy_loss"`
	Turnover            float64 `json:"turnover"`
	CapitalImprovements float64 `json:"capital_improvements"`
}

// YearlyProjection is one row of the pro-forma ledger.
//
// Invariants:
//
//	NOI      = EffectiveGrossIncome - OperatingExpenses
//	CashFlow = NOI - DebtService - CapitalImprovements
type YearlyProjection struct {
	Year                 int              `json:"year"`
	PropertyValue        float64          `json:"property_value"`
	GrossRent            float64          `json:"gross_rent"`
	EffectiveGrossIncome float64          `json:"effective_gross_income"`
	Expenses             ExpenseBreakdown `json:"expenses"`
	OperatingExpenses    float64          `json:"operating_expenses"`
	NOI                  float64          `json:"noi"`
	DebtService          float64          `json:"debt_service"`
	CashFlow             float64          `json:"cash_flow"`
	MortgageBalance      float64          `json:"mortgage_balance"`
	Equity               float64          `json:"equity"`
	Appreciation         float64          `json:"appreciation"`
	TotalReturn          float64          `json:"total_return"`
}
