// Package report renders a saved deal analysis as a Markdown document and,
// for the HTTP surface, as HTML.
package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"dealscope/pkg/core/pipeline"
	"dealscope/pkg/models"
)

// Markdown renders the full deal report: input summary, yearly ledger,
// exit analysis and return metrics.
func Markdown(deal *models.Deal) string {
	var b strings.Builder
	res := deal.Analysis

	title := deal.Name
	if title == "" {
		title = "Deal Analysis"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	if deal.Address != "" {
		fmt.Fprintf(&b, "%s\n\n", deal.Address)
	}

	writeInputs(&b, res)
	writeLedger(&b, res)
	writeExit(&b, res)
	writeReturns(&b, res)

	return b.String()
}

// HTML converts the Markdown report using Goldmark with GFM tables enabled.
func HTML(deal *models.Deal) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	var out bytes.Buffer
	if err := md.Convert([]byte(Markdown(deal)), &out); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return out.String(), nil
}

func writeInputs(b *strings.Builder, res *pipeline.AnalysisResult) {
	in := res.Inputs
	b.WriteString("## Purchase\n\n")
	fmt.Fprintf(b, "- Purchase price: %s\n", money(in.PurchasePrice))
	fmt.Fprintf(b, "- Down payment: %s (%.1f%%)\n", money(in.DownPayment), in.DownPayment/in.PurchasePrice*100)
	fmt.Fprintf(b, "- Loan: %s at %.2f%% over %d years, %s/month\n",
		money(res.Loan.Principal), in.InterestRatePercent, in.LoanTermYears, money(res.Loan.MonthlyPayment))
	fmt.Fprintf(b, "- Gross scheduled rent: %s/month\n", money(in.GrossMonthlyRent()))
	if in.MultiFamily() {
		for _, u := range in.Units {
			fmt.Fprintf(b, "  - %d x %s at %s\n", u.Count, u.Label, money(u.MonthlyRent))
		}
	}
	fmt.Fprintf(b, "- Total cash invested: %s\n\n", money(in.TotalInitialInvestment()))
}

func writeLedger(b *strings.Builder, res *pipeline.AnalysisResult) {
	b.WriteString("## Yearly Projection\n\n")
	b.WriteString("| Year | Value | Gross Rent | EGI | OpEx | NOI | Debt Service | Cash Flow | Equity |\n")
	b.WriteString("|---:|---:|---:|---:|---:|---:|---:|---:|---:|\n")
	for _, y := range res.Projections {
		fmt.Fprintf(b, "| %d | %s | %s | %s | %s | %s | %s | %s | %s |\n",
			y.Year, money(y.PropertyValue), money(y.GrossRent), money(y.EffectiveGrossIncome),
			money(y.OperatingExpenses), money(y.NOI), money(y.DebtService), money(y.CashFlow), money(y.Equity))
	}
	b.WriteString("\n")
}

func writeExit(b *strings.Builder, res *pipeline.AnalysisResult) {
	b.WriteString("## Exit\n\n")
	fmt.Fprintf(b, "- Projected sale price: %s\n", money(res.Exit.SalePrice))
	fmt.Fprintf(b, "- Selling costs: %s\n", money(res.Exit.SellingCosts))
	fmt.Fprintf(b, "- Mortgage payoff: %s\n", money(res.Exit.MortgagePayoff))
	fmt.Fprintf(b, "- Net proceeds from sale: %s\n\n", money(res.Exit.NetProceedsFromSale))
}

func writeReturns(b *strings.Builder, res *pipeline.AnalysisResult) {
	r := res.Returns
	b.WriteString("## Returns\n\n")
	fmt.Fprintf(b, "- Total cash flow: %s\n", money(r.TotalCashFlow))
	fmt.Fprintf(b, "- Total appreciation: %s\n", money(r.TotalAppreciation))
	fmt.Fprintf(b, "- Total return: %s\n", money(r.TotalReturn))
	irr := fmt.Sprintf("%.2f%%", r.IRRPercent)
	if !r.IRRConverged {
		irr += " (approximate)"
	}
	fmt.Fprintf(b, "- IRR: %s\n", irr)
	fmt.Fprintf(b, "- Cap rate: %.2f%%\n", r.CapRatePercent)
	fmt.Fprintf(b, "- Cash-on-cash return: %.2f%%\n", r.CashOnCashPercent)
	fmt.Fprintf(b, "- DSCR: %.2f\n", r.DSCR)
	fmt.Fprintf(b, "- Equity multiple: %.2fx\n", r.EquityMultiple)
}

// money formats a dollar amount with thousands separators, negative values
// in parentheses.
func money(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}

	whole := int64(v + 0.5)
	s := fmt.Sprintf("%d", whole)
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)

	out := "$" + strings.Join(parts, ",")
	if neg {
		return "(" + out + ")"
	}
	return out
}
