// Package pipeline wires the numeric core end to end: validated inputs ->
// loan derivation -> yearly projection series -> exit analysis -> returns
// summary. Every stage is a pure function of its predecessor, so a single
// pass produces a consistent result with no downstream repair step.
package pipeline

import (
	"fmt"

	"dealscope/pkg/core/mortgage"
	"dealscope/pkg/core/proforma"
	"dealscope/pkg/core/returns"
)

// AnalysisResult is the full output of one analysis run. Callers own
// persistence; the pipeline never stores anything.
type AnalysisResult struct {
	Inputs      proforma.PropertyInputs     `json:"inputs"`
	Loan        *mortgage.Loan              `json:"loan"`
	Projections []proforma.YearlyProjection `json:"projections"`
	Exit        returns.ExitAnalysis        `json:"exit"`
	Returns     returns.Summary             `json:"returns"`
}

// Run executes the full analysis for one deal.
func Run(in *proforma.PropertyInputs) (*AnalysisResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	loan, err := mortgage.Compute(in.LoanAmount(), in.InterestRatePercent, in.LoanTermYears)
	if err != nil {
		return nil, fmt.Errorf("loan derivation: %w", err)
	}

	series, err := proforma.BuildSeries(in, loan)
	if err != nil {
		return nil, fmt.Errorf("projection series: %w", err)
	}

	exit := returns.AnalyzeExit(series, in.Growth.SellingCostsPercent)
	summary := returns.Summarize(in.TotalInitialInvestment(), series, exit)

	return &AnalysisResult{
		Inputs:      *in,
		Loan:        loan,
		Projections: series,
		Exit:        exit,
		Returns:     summary,
	}, nil
}
